package ed25519

import (
	"bytes"
	"crypto/sha512"
	"errors"
	"fmt"
	"io"

	"filippo.io/edwards25519"

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
	Name = "ed25519"

	ScalarSize          = 32
	CompressedPointSize = 32
	SignatureSize       = 64

	maxSampleAttempts = 64
	maxNonceAttempts  = 256
)

// nonceDomain separates prefix derivation from any other use of SHA-512 over
// the key bytes.
var nonceDomain = []byte("go-ecsig/ed25519/nonce")

// orderMinusOne is l-1, little-endian.
var orderMinusOne = mustScalar([]byte{
	0xec, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
})

var (
	errNonCanonicalPoint = errors.New("point encoding is not canonical")
	errTorsionPoint      = errors.New("point is not in the prime-order subgroup")
	errSampleExhausted   = errors.New("random source produced no valid scalar")
	errNonceExhausted    = errors.New("failed to derive a non-degenerate nonce")
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

func (*CurveImpl) BasePoint() Point {
	return &PointImpl{
		inner: edwards25519.NewGeneratorPoint(),
	}
}

// NewRandomScalar reduces 64 random bytes modulo the group order, which is
// uniform up to a negligible bias.
func (*CurveImpl) NewRandomScalar(r io.Reader) (Scalar, error) {
	var b [64]byte
	defer func() {
		for i := range b {
			b[i] = 0
		}
	}()

	for i := 0; i < maxSampleAttempts; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, fmt.Errorf("failed to read random bytes: %w", err)
		}

		s, err := edwards25519.NewScalar().SetUniformBytes(b[:])
		if err != nil {
			return nil, err
		}

		sc := &ScalarImpl{inner: s}
		if sc.IsZero() {
			continue
		}

		return sc, nil
	}

	return nil, errSampleExhausted
}

func (*CurveImpl) ScalarBaseMul(s Scalar) Point {
	ss, ok := s.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *ed25519.ScalarImpl")
	}

	return &PointImpl{
		inner: new(edwards25519.Point).ScalarBaseMult(ss.inner),
	}
}

// DecodeToScalar parses a canonical 32-byte little-endian scalar.
func (*CurveImpl) DecodeToScalar(in []byte) (Scalar, error) {
	if len(in) != ScalarSize {
		return nil, fmt.Errorf("invalid scalar length: expected %d, got %d", ScalarSize, len(in))
	}

	s, err := edwards25519.NewScalar().SetCanonicalBytes(in)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scalar: %w", err)
	}

	return &ScalarImpl{
		inner: s,
	}, nil
}

// DecodeToPoint parses a canonical 32-byte point encoding. Points outside the
// prime-order subgroup are rejected, so every accepted non-identity point is
// xG for some scalar x. The identity itself decodes; callers that need a
// usable key check IsZero.
func (*CurveImpl) DecodeToPoint(in []byte) (Point, error) {
	if len(in) != CompressedPointSize {
		return nil, fmt.Errorf("invalid point length: expected %d, got %d", CompressedPointSize, len(in))
	}

	p, err := decodeCanonicalPoint(in)
	if err != nil {
		return nil, err
	}

	if !inPrimeOrderSubgroup(p) {
		return nil, errTorsionPoint
	}

	return &PointImpl{
		inner: p,
	}, nil
}

// Sign produces a Schnorr signature R || s over digest with
// R = rG, s = r + H(R || A || digest)x. The nonce follows the RFC 8032
// construction: a secret prefix is the upper half of SHA-512 over the key,
// and r = SHA-512(prefix || digest) mod l. Equal inputs give equal
// signatures. A counter byte is appended only when retrying after a zero r
// or s.
func (c *CurveImpl) Sign(s Scalar, digest []byte) ([]byte, error) {
	ss, ok := s.(*ScalarImpl)
	if !ok {
		panic("invalid scalar; type is not *ed25519.ScalarImpl")
	}

	if len(digest) != 32 {
		return nil, errInvalidDigestSize
	}

	if ss.IsZero() {
		return nil, errZeroSigningKey
	}

	A := new(edwards25519.Point).ScalarBaseMult(ss.inner)
	prefix := noncePrefix(ss.inner)
	defer clear(prefix)

	for counter := 0; counter < maxNonceAttempts; counter++ {
		r, err := deriveNonce(prefix, digest, counter)
		if err != nil {
			return nil, err
		}

		if (&ScalarImpl{inner: r}).IsZero() {
			continue
		}

		R := new(edwards25519.Point).ScalarBaseMult(r)
		ch, err := challenge(R.Bytes(), A.Bytes(), digest)
		if err != nil {
			return nil, err
		}

		sigS := edwards25519.NewScalar().MultiplyAdd(ch, ss.inner, r)
		r.Set(edwards25519.NewScalar())
		if (&ScalarImpl{inner: sigS}).IsZero() {
			continue
		}

		return append(R.Bytes(), sigS.Bytes()...), nil
	}

	return nil, errNonceExhausted
}

func (*CurveImpl) Verify(pubkey Point, digest, sig []byte) bool {
	pp, ok := pubkey.(*PointImpl)
	if !ok || pp.inner == nil {
		return false
	}

	R, s, ok := splitSignature(sig)
	if !ok || (&ScalarImpl{inner: s}).IsZero() {
		return false
	}

	ch, err := challenge(sig[:CompressedPointSize], pp.inner.Bytes(), digest)
	if err != nil {
		return false
	}

	// sG - cA == R
	res := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(
		edwards25519.NewScalar().Negate(ch), pp.inner, s,
	)
	return res.Equal(R) == 1
}

func (*CurveImpl) ValidateSignature(sig []byte) error {
	if len(sig) != SignatureSize {
		return fmt.Errorf("invalid signature length: expected %d, got %d", SignatureSize, len(sig))
	}

	if _, err := decodeCanonicalPoint(sig[:CompressedPointSize]); err != nil {
		return fmt.Errorf("invalid signature commitment: %w", err)
	}

	if _, err := edwards25519.NewScalar().SetCanonicalBytes(sig[CompressedPointSize:]); err != nil {
		return fmt.Errorf("invalid signature scalar: %w", err)
	}

	return nil
}

func splitSignature(sig []byte) (*edwards25519.Point, *edwards25519.Scalar, bool) {
	if len(sig) != SignatureSize {
		return nil, nil, false
	}

	R, err := decodeCanonicalPoint(sig[:CompressedPointSize])
	if err != nil {
		return nil, nil, false
	}

	s, err := edwards25519.NewScalar().SetCanonicalBytes(sig[CompressedPointSize:])
	if err != nil {
		return nil, nil, false
	}

	return R, s, true
}

// noncePrefix returns the upper 32 bytes of SHA-512(domain || x).
func noncePrefix(x *edwards25519.Scalar) []byte {
	keyBytes := x.Bytes()
	defer clear(keyBytes)

	h := sha512.New()
	h.Write(nonceDomain)
	h.Write(keyBytes)
	sum := h.Sum(nil)
	defer clear(sum)

	return bytes.Clone(sum[32:])
}

// deriveNonce returns SHA-512(prefix || digest [|| counter]) mod l.
func deriveNonce(prefix, digest []byte, counter int) (*edwards25519.Scalar, error) {
	h := sha512.New()
	h.Write(prefix)
	h.Write(digest)
	if counter > 0 {
		h.Write([]byte{byte(counter)})
	}

	sum := h.Sum(nil)
	defer clear(sum)

	r, err := edwards25519.NewScalar().SetUniformBytes(sum)
	if err != nil {
		return nil, fmt.Errorf("failed to set bytes: %w", err)
	}

	return r, nil
}

// decodeCanonicalPoint is SetBytes plus a check that in is the encoding the
// point itself produces. SetBytes alone accepts y >= p.
func decodeCanonicalPoint(in []byte) (*edwards25519.Point, error) {
	p, err := new(edwards25519.Point).SetBytes(in)
	if err != nil {
		return nil, fmt.Errorf("failed to decode point: %w", err)
	}

	if !bytes.Equal(p.Bytes(), in) {
		return nil, errNonCanonicalPoint
	}

	return p, nil
}

// inPrimeOrderSubgroup reports whether [l]p is the identity, computed as
// [l-1]p + p.
func inPrimeOrderSubgroup(p *edwards25519.Point) bool {
	lp := new(edwards25519.Point).ScalarMult(orderMinusOne, p)
	lp.Add(lp, p)
	return lp.Equal(edwards25519.NewIdentityPoint()) == 1
}

func mustScalar(b []byte) *edwards25519.Scalar {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		panic(err)
	}

	return s
}

func challenge(R, A, digest []byte) (*edwards25519.Scalar, error) {
	h := sha512.New()
	h.Write(R)
	h.Write(A)
	h.Write(digest)
	return edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
}

type ScalarImpl struct {
	inner *edwards25519.Scalar
}

func (s *ScalarImpl) Encode() []byte {
	return s.inner.Bytes()
}

func (s *ScalarImpl) Eq(b Scalar) bool {
	ss, ok := b.(*ScalarImpl)
	if !ok {
		return false
	}

	return s.inner.Equal(ss.inner) == 1
}

func (s *ScalarImpl) IsZero() bool {
	return s.inner.Equal(edwards25519.NewScalar()) == 1
}

func (s *ScalarImpl) Zero() {
	s.inner.Set(edwards25519.NewScalar())
}

type PointImpl struct {
	inner *edwards25519.Point
}

func (p *PointImpl) Encode() []byte {
	return p.inner.Bytes()
}

// IsZero reports whether p is the identity element.
func (p *PointImpl) IsZero() bool {
	return p.inner.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (p *PointImpl) Equals(other Point) bool {
	pp, ok := other.(*PointImpl)
	if !ok {
		return false
	}

	return p.inner.Equal(pp.inner) == 1
}
