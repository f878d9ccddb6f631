package ecsig

import (
	"bytes"
	"fmt"

	"github.com/rs/zerolog"
)

// Signature is a fixed-width pair of scalar components bound to the curve that
// produced it.
type Signature struct {
	curve Curve
	inner []byte
}

var _ zerolog.LogObjectMarshaler = (*Signature)(nil)

// Sign signs digest with sk. The digest is used as given and is not hashed
// again. Nonces are derived deterministically from the key and digest, so
// repeated calls return identical signatures.
func Sign(digest Digest, sk *PrivateKey) (*Signature, error) {
	if !sk.usable() {
		return nil, fmt.Errorf("%w: private key is nil or zeroed", ErrInvalidKey)
	}

	sig, err := sk.curve.Sign(sk.inner, digest[:])
	if err != nil {
		log().Error().Str("curve", sk.curve.Name()).Err(err).Msg("failed to sign digest")
		return nil, fmt.Errorf("%w: %w", ErrSigning, err)
	}

	return &Signature{
		curve: sk.curve,
		inner: sig,
	}, nil
}

// Curve returns the curve the signature was produced on.
func (s *Signature) Curve() Curve {
	if s == nil {
		return nil
	}

	return s.curve
}

// Bytes returns a copy of the fixed-width encoding.
func (s *Signature) Bytes() []byte {
	if s == nil {
		return nil
	}

	return append([]byte(nil), s.inner...)
}

// Equal reports whether both signatures carry the same bytes for the same
// curve. A signature without a curve is equal to nothing.
func (s *Signature) Equal(other *Signature) bool {
	if s == nil || other == nil || s.curve == nil || other.curve == nil {
		return false
	}

	return s.curve.Name() == other.curve.Name() && bytes.Equal(s.inner, other.inner)
}

func (s *Signature) String() string {
	return s.Encode()
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (s *Signature) MarshalZerologObject(e *zerolog.Event) {
	if s == nil || s.curve == nil {
		return
	}

	e.Str("curve", s.curve.Name()).Str("signature", s.Encode())
}
