package types

import "io"

// Curve is the set of primitives a signature suite needs from an elliptic
// curve implementation.
type Curve interface {
	Name() string
	ScalarSize() int
	CompressedPointSize() int
	SignatureSize() int
	BasePoint() Point
	// NewRandomScalar samples a uniformly random non-zero scalar from r.
	NewRandomScalar(r io.Reader) (Scalar, error)
	ScalarBaseMul(Scalar) Point
	DecodeToScalar([]byte) (Scalar, error)
	DecodeToPoint([]byte) (Point, error)
	// Sign signs a pre-computed digest. The digest is not hashed again.
	Sign(s Scalar, digest []byte) ([]byte, error)
	// Verify reports whether sig is a valid signature of digest by pubkey.
	// It must not panic on malformed signatures.
	Verify(pubkey Point, digest, sig []byte) bool
	// ValidateSignature checks that sig is a structurally well-formed
	// signature encoding for the curve.
	ValidateSignature(sig []byte) error
}

type Scalar interface {
	Encode() []byte
	Eq(Scalar) bool
	IsZero() bool
	// Zero overwrites the scalar value in place.
	Zero()
}

type Point interface {
	Encode() []byte
	IsZero() bool
	Equals(other Point) bool
}
