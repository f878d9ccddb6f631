package secp256k1

import (
	"errors"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/athanorlabs/go-ecsig/types"
)

type Curve = types.Curve
type Point = types.Point
type Scalar = types.Scalar

var _ Curve = &CurveImpl{}
var _ Scalar = &ScalarImpl{}
var _ Point = &PointImpl{}

const (
	// Name is the registry name of the curve.
	Name = "secp256k1"

	ScalarSize          = 32
	CompressedPointSize = 33
	SignatureSize       = 64

	// maxSampleAttempts bounds rejection sampling. An honest source fails a
	// single draw with probability below 2^-127.
	maxSampleAttempts = 64
)

var (
	errScalarOverflow    = errors.New("scalar is not less than the group order")
	errSampleExhausted   = errors.New("random source produced no valid scalar")
	errInvalidDigestSize = errors.New("digest must be 32 bytes")
	errZeroSigningKey    = errors.New("signing key is zero")
)

type CurveImpl struct{}

func NewCurve() Curve {
	return &CurveImpl{}
}

func (*CurveImpl) Name() string {
	return Name
}

func (*CurveImpl) ScalarSize() int {
	return ScalarSize
}

func (*CurveImpl) CompressedPointSize() int {
	return CompressedPointSize
}

func (*CurveImpl) SignatureSize() int {
	return SignatureSize
}

func (c *CurveImpl) BasePoint() Point {
	one := new(secp256k1.ModNScalar).SetInt(1)
	return c.ScalarBaseMul(&ScalarImpl{inner: one})
}

// NewRandomScalar draws 32 bytes at a time from r and rejects candidates that
// are zero or not below the group order.
func (*CurveImpl) NewRandomScalar(r io.Reader) (Scalar, error) {
	var b [ScalarSize]byte
	defer func() {
		for i := range b {
			b[i] = 0
		}
	}()

	for i := 0; i < maxSampleAttempts; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, fmt.Errorf("failed to read random bytes: %w", err)
		}

		s := new(secp256k1.ModNScalar)
		overflow := s.SetByteSlice(b[:])
		if overflow || s.IsZero() {
			s.Zero()
			continue
		}

		return &ScalarImpl{
			inner: s,
		}, nil
	}

	return nil, errSampleExhausted
}

func (*CurveImpl) ScalarBaseMul(s Scalar) Point {
	ss, ok := s.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *secp256k1.ScalarImpl")
	}

	var result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(ss.inner, &result)
	result.ToAffine()

	return &PointImpl{
		inner: secp256k1.NewPublicKey(&result.X, &result.Y),
	}
}

// DecodeToScalar parses a 32-byte big-endian scalar. Values not below the
// group order are rejected; zero is accepted.
func (*CurveImpl) DecodeToScalar(in []byte) (Scalar, error) {
	if len(in) != ScalarSize {
		return nil, fmt.Errorf("invalid scalar length: expected %d, got %d", ScalarSize, len(in))
	}

	s := new(secp256k1.ModNScalar)
	if overflow := s.SetByteSlice(in); overflow {
		return nil, errScalarOverflow
	}

	return &ScalarImpl{
		inner: s,
	}, nil
}

// DecodeToPoint parses a 33-byte SEC1 compressed point. The point must lie on
// the curve.
func (*CurveImpl) DecodeToPoint(in []byte) (Point, error) {
	if len(in) != CompressedPointSize {
		return nil, fmt.Errorf("invalid point length: expected %d, got %d", CompressedPointSize, len(in))
	}

	pub, err := secp256k1.ParsePubKey(in)
	if err != nil {
		return nil, fmt.Errorf("failed to parse point: %w", err)
	}

	return &PointImpl{
		inner: pub,
	}, nil
}

// Sign produces an ECDSA signature r || s over digest. The nonce is derived
// per RFC6979, so signing is deterministic and the zero-component retry
// happens inside the nonce loop. s is always normalised to the lower half of
// the order.
func (*CurveImpl) Sign(s Scalar, digest []byte) ([]byte, error) {
	ss, ok := s.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *secp256k1.ScalarImpl")
	}

	if len(digest) != 32 {
		return nil, errInvalidDigestSize
	}

	if ss.inner.IsZero() {
		return nil, errZeroSigningKey
	}

	priv := secp256k1.NewPrivateKey(ss.inner)
	defer priv.Zero()

	// compact form is recovery code || r || s
	compact := ecdsa.SignCompact(priv, digest, true)
	if len(compact) != SignatureSize+1 {
		return nil, fmt.Errorf("unexpected compact signature length %d", len(compact))
	}

	sig := make([]byte, SignatureSize)
	copy(sig, compact[1:])
	return sig, nil
}

func (*CurveImpl) Verify(pubkey Point, digest, sig []byte) bool {
	pp, ok := pubkey.(*PointImpl)
	if !ok || pp.inner == nil {
		return false
	}

	r, s, ok := splitSignature(sig)
	if !ok || r.IsZero() || s.IsZero() {
		return false
	}

	return ecdsa.NewSignature(r, s).Verify(digest, pp.inner)
}

func (*CurveImpl) ValidateSignature(sig []byte) error {
	if len(sig) != SignatureSize {
		return fmt.Errorf("invalid signature length: expected %d, got %d", SignatureSize, len(sig))
	}

	if _, _, ok := splitSignature(sig); !ok {
		return errScalarOverflow
	}

	return nil
}

// splitSignature returns the r and s components of a fixed-width signature.
func splitSignature(sig []byte) (*secp256k1.ModNScalar, *secp256k1.ModNScalar, bool) {
	if len(sig) != SignatureSize {
		return nil, nil, false
	}

	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(sig[:ScalarSize]) {
		return nil, nil, false
	}

	if s.SetByteSlice(sig[ScalarSize:]) {
		return nil, nil, false
	}

	return &r, &s, true
}

type ScalarImpl struct {
	inner *secp256k1.ModNScalar
}

func (s *ScalarImpl) Encode() []byte {
	b := s.inner.Bytes()
	return b[:]
}

func (s *ScalarImpl) Eq(b Scalar) bool {
	ss, ok := b.(*ScalarImpl)
	if !ok {
		return false
	}

	return s.inner.Equals(ss.inner)
}

func (s *ScalarImpl) IsZero() bool {
	return s.inner.IsZero()
}

func (s *ScalarImpl) Zero() {
	s.inner.Zero()
}

type PointImpl struct {
	inner *secp256k1.PublicKey
}

func (p *PointImpl) Encode() []byte {
	return p.inner.SerializeCompressed()
}

// IsZero reports whether p is the point at infinity.
func (p *PointImpl) IsZero() bool {
	var j secp256k1.JacobianPoint
	p.inner.AsJacobian(&j)
	return (j.X.IsZero() && j.Y.IsZero()) || j.Z.IsZero()
}

func (p *PointImpl) Equals(other Point) bool {
	pp, ok := other.(*PointImpl)
	if !ok {
		return false
	}

	return p.inner.IsEqual(pp.inner)
}
