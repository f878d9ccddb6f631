package ecsig

import (
	"errors"
	"fmt"
)

var (
	// ErrRandomnessUnavailable is returned when the random source fails or
	// keeps producing unusable output during key generation.
	ErrRandomnessUnavailable = errors.New("randomness unavailable")

	// ErrSigning is returned when the curve fails to produce a signature for a
	// valid key. It is not expected under normal operation.
	ErrSigning = errors.New("signing failed")

	// ErrInvalidKey is returned when a key is structurally unusable at the
	// time it is used: nil, zeroed, the identity point, or bound to another
	// curve.
	ErrInvalidKey = errors.New("invalid key")

	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("decode error")

	ErrMalformedHex    = errors.New("malformed hex")
	ErrInvalidLength   = errors.New("invalid length")
	ErrInvalidEncoding = errors.New("invalid encoding")

	ErrUnknownCurve = errors.New("unknown curve")
	ErrUnknownHash  = errors.New("unknown hash type")

	// ErrBatchHasFailedSigs is returned by a BatchVerifier when at least one
	// enqueued signature does not verify.
	ErrBatchHasFailedSigs = errors.New("at least one signature didn't pass verification")
)

// DecodeErrorKind classifies codec failures.
type DecodeErrorKind int

const (
	// MalformedHex means the input has odd length or non-hex characters.
	MalformedHex DecodeErrorKind = iota + 1
	// InvalidLength means the input is hex but decodes to the wrong number of
	// bytes for the artifact.
	InvalidLength
	// InvalidEncoding means the bytes have the right size but are not a valid
	// scalar, point or signature for the curve.
	InvalidEncoding
)

func (k DecodeErrorKind) String() string {
	switch k {
	case MalformedHex:
		return "malformed hex"
	case InvalidLength:
		return "invalid length"
	case InvalidEncoding:
		return "invalid encoding"
	default:
		return "unknown"
	}
}

func (k DecodeErrorKind) sentinel() error {
	switch k {
	case MalformedHex:
		return ErrMalformedHex
	case InvalidLength:
		return ErrInvalidLength
	case InvalidEncoding:
		return ErrInvalidEncoding
	default:
		return nil
	}
}

// DecodeError is returned by the Decode* functions. It never carries the
// input text, which may be secret.
type DecodeError struct {
	Kind     DecodeErrorKind
	Artifact string
	Err      error
}

func newDecodeError(kind DecodeErrorKind, artifact string, err error) *DecodeError {
	return &DecodeError{
		Kind:     kind,
		Artifact: artifact,
		Err:      err,
	}
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to decode %s: %s", e.Artifact, e.Kind)
	}

	return fmt.Sprintf("failed to decode %s: %s: %s", e.Artifact, e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is matches ErrDecode and the sentinel for the error's kind.
func (e *DecodeError) Is(target error) bool {
	if target == ErrDecode {
		return true
	}

	s := e.Kind.sentinel()
	return s != nil && target == s
}
