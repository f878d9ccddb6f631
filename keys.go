package ecsig

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"
)

// fingerprintSize is the number of SHA-256 bytes shown in a fingerprint.
const fingerprintSize = 10

// PrivateKey is a non-zero scalar bound to a curve. Its value can leave the
// process only through Encode; every fmt verb and log marshalling renders a
// placeholder instead.
type PrivateKey struct {
	curve Curve
	inner Scalar
}

// PublicKey is a non-identity curve point derived from a PrivateKey.
type PublicKey struct {
	curve Curve
	inner Point
}

var (
	_ fmt.Formatter              = (*PrivateKey)(nil)
	_ zerolog.LogObjectMarshaler = (*PrivateKey)(nil)
	_ zerolog.LogObjectMarshaler = (*PublicKey)(nil)
)

// GenerateKeyPair draws a private scalar from the process-wide random source
// and derives its public point.
func GenerateKeyPair(curve Curve) (*PrivateKey, *PublicKey, error) {
	if curve == nil {
		return nil, nil, ErrUnknownCurve
	}

	s, err := curve.NewRandomScalar(randSource)
	if err != nil {
		log().Error().Str("curve", curve.Name()).Err(err).Msg("failed to generate private key")
		return nil, nil, fmt.Errorf("%w: %w", ErrRandomnessUnavailable, err)
	}

	sk := &PrivateKey{
		curve: curve,
		inner: s,
	}
	pk := sk.Public()

	log().Debug().Object("public_key", pk).Msg("generated key pair")
	return sk, pk, nil
}

// Curve returns the curve the key belongs to.
func (k *PrivateKey) Curve() Curve {
	if k == nil {
		return nil
	}

	return k.curve
}

// Public derives the public key. It returns nil for a zeroed key.
func (k *PrivateKey) Public() *PublicKey {
	if !k.usable() {
		return nil
	}

	return &PublicKey{
		curve: k.curve,
		inner: k.curve.ScalarBaseMul(k.inner),
	}
}

// Sign signs digest with k. See Sign.
func (k *PrivateKey) Sign(digest Digest) (*Signature, error) {
	return Sign(digest, k)
}

// Equal compares two private keys in constant time.
func (k *PrivateKey) Equal(other *PrivateKey) bool {
	if !k.usable() || !other.usable() {
		return false
	}

	if k.curve.Name() != other.curve.Name() {
		return false
	}

	return k.inner.Eq(other.inner)
}

// Zero wipes the scalar. The key cannot be used afterwards.
func (k *PrivateKey) Zero() {
	if k == nil || k.inner == nil {
		return
	}

	k.inner.Zero()
}

func (k *PrivateKey) usable() bool {
	return k != nil && k.curve != nil && k.inner != nil && !k.inner.IsZero()
}

// Format implements fmt.Formatter so that no verb prints the scalar.
func (k *PrivateKey) Format(f fmt.State, _ rune) {
	name := "<nil>"
	if k != nil && k.curve != nil {
		name = k.curve.Name()
	}

	fmt.Fprintf(f, "PrivateKey(%s, %s)", name, redacted)
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (k *PrivateKey) MarshalZerologObject(e *zerolog.Event) {
	if k != nil && k.curve != nil {
		e.Str("curve", k.curve.Name())
	}

	e.Str("scalar", redacted)
}

// Curve returns the curve the key belongs to.
func (k *PublicKey) Curve() Curve {
	if k == nil {
		return nil
	}

	return k.curve
}

// Bytes returns the compressed point encoding, or nil for an empty key.
func (k *PublicKey) Bytes() []byte {
	if k == nil || k.inner == nil {
		return nil
	}

	return k.inner.Encode()
}

// Equal reports whether both keys are the same point on the same curve.
// Empty keys are equal to nothing, themselves included.
func (k *PublicKey) Equal(other *PublicKey) bool {
	if !k.populated() || !other.populated() {
		return false
	}

	if k.curve.Name() != other.curve.Name() {
		return false
	}

	return k.inner.Equals(other.inner)
}

func (k *PublicKey) populated() bool {
	return k != nil && k.curve != nil && k.inner != nil
}

// Fingerprint returns a short hex identifier of the key, suitable for display
// and logs. It is empty for an empty key.
func (k *PublicKey) Fingerprint() string {
	if !k.populated() {
		return ""
	}

	sum := sha256.Sum256(k.Bytes())
	return hex.EncodeToString(sum[:fingerprintSize])
}

func (k *PublicKey) String() string {
	return k.Encode()
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (k *PublicKey) MarshalZerologObject(e *zerolog.Event) {
	if !k.populated() {
		return
	}

	e.Str("curve", k.curve.Name()).Str("fingerprint", k.Fingerprint())
}

// checkPublicKey returns ErrInvalidKey unless k is a usable non-identity point.
func checkPublicKey(k *PublicKey) error {
	if !k.populated() {
		return fmt.Errorf("%w: public key is nil", ErrInvalidKey)
	}

	if k.inner.IsZero() {
		return fmt.Errorf("%w: public key is the identity point", ErrInvalidKey)
	}

	return nil
}
