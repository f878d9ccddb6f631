package ecsig

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	artifactPrivateKey = "private key"
	artifactPublicKey  = "public key"
	artifactSignature  = "signature"
)

var (
	errZeroScalar    = errors.New("scalar is zero")
	errIdentityPoint = errors.New("point is the identity")
	errUppercaseHex  = errors.New("uppercase hex digit")
)

// Encode returns the fixed-width scalar encoding as lowercase hex. It returns
// the empty string for a nil or zeroed key.
func (k *PrivateKey) Encode() string {
	if !k.usable() {
		return ""
	}

	b := k.inner.Encode()
	defer clear(b)
	return hex.EncodeToString(b)
}

// Encode returns the compressed point encoding as lowercase hex.
func (k *PublicKey) Encode() string {
	if k == nil || k.inner == nil {
		return ""
	}

	return hex.EncodeToString(k.inner.Encode())
}

// Encode returns the fixed-width r || s encoding as lowercase hex.
func (s *Signature) Encode() string {
	if s == nil {
		return ""
	}

	return hex.EncodeToString(s.inner)
}

// DecodePrivateKey parses a hex private key for curve. The scalar must be
// non-zero and below the group order.
func DecodePrivateKey(curve Curve, in string) (*PrivateKey, error) {
	if curve == nil {
		return nil, ErrUnknownCurve
	}

	b, err := decodeHex(artifactPrivateKey, in, curve.ScalarSize())
	if err != nil {
		return nil, err
	}
	defer clear(b)

	s, err := curve.DecodeToScalar(b)
	if err != nil {
		return nil, decodeFailure(InvalidEncoding, artifactPrivateKey, err)
	}

	if s.IsZero() {
		return nil, decodeFailure(InvalidEncoding, artifactPrivateKey, errZeroScalar)
	}

	return &PrivateKey{
		curve: curve,
		inner: s,
	}, nil
}

// DecodePublicKey parses a hex compressed point for curve. The point must be
// on the curve and must not be the identity.
func DecodePublicKey(curve Curve, in string) (*PublicKey, error) {
	if curve == nil {
		return nil, ErrUnknownCurve
	}

	b, err := decodeHex(artifactPublicKey, in, curve.CompressedPointSize())
	if err != nil {
		return nil, err
	}

	p, err := curve.DecodeToPoint(b)
	if err != nil {
		return nil, decodeFailure(InvalidEncoding, artifactPublicKey, err)
	}

	if p.IsZero() {
		return nil, decodeFailure(InvalidEncoding, artifactPublicKey, errIdentityPoint)
	}

	return &PublicKey{
		curve: curve,
		inner: p,
	}, nil
}

// DecodeSignature parses a hex signature for curve. Both components must be
// canonical encodings; whether the signature verifies is not checked.
func DecodeSignature(curve Curve, in string) (*Signature, error) {
	if curve == nil {
		return nil, ErrUnknownCurve
	}

	b, err := decodeHex(artifactSignature, in, curve.SignatureSize())
	if err != nil {
		return nil, err
	}

	if err := curve.ValidateSignature(b); err != nil {
		return nil, decodeFailure(InvalidEncoding, artifactSignature, err)
	}

	return &Signature{
		curve: curve,
		inner: b,
	}, nil
}

// decodeHex parses in and checks that it holds exactly size bytes. Only the
// lowercase form produced by Encode is accepted.
func decodeHex(artifact, in string, size int) ([]byte, error) {
	if strings.ContainsAny(in, "ABCDEF") {
		return nil, decodeFailure(MalformedHex, artifact, errUppercaseHex)
	}

	b, err := hex.DecodeString(in)
	if err != nil {
		// hex errors quote the offending byte, which may belong to a secret
		return nil, decodeFailure(MalformedHex, artifact, hexErrorReason(err))
	}

	if len(b) != size {
		clear(b)
		return nil, decodeFailure(InvalidLength, artifact,
			fmt.Errorf("expected %d bytes, got %d", size, len(b)))
	}

	return b, nil
}

func hexErrorReason(err error) error {
	if errors.Is(err, hex.ErrLength) {
		return errors.New("odd length")
	}

	return errors.New("non-hex character")
}

func decodeFailure(kind DecodeErrorKind, artifact string, err error) error {
	log().Debug().Str("artifact", artifact).Stringer("kind", kind).Msg("rejected encoded input")
	return newDecodeError(kind, artifact, err)
}
