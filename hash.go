package ecsig

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// DigestSize is the size in bytes of every Digest.
const DigestSize = 32

// Digest is the fixed-size hash of a message. It is what gets signed.
type Digest [DigestSize]byte

// Hash returns the SHA-256 digest of message.
func Hash(message []byte) Digest {
	return sha256.Sum256(message)
}

// HashType selects the function used to turn messages into digests. Signer
// and verifier must agree on it.
type HashType uint16

const (
	Sha256 HashType = iota
	Sha3_256
	Sha512_256
	MaxHashType
)

// Validate verifies that the hash type is in a valid range.
func (h HashType) Validate() error {
	if h >= MaxHashType {
		return fmt.Errorf("%w: %d", ErrUnknownHash, h)
	}
	return nil
}

func (h HashType) String() string {
	switch h {
	case Sha256:
		return "sha256"
	case Sha3_256:
		return "sha3_256"
	case Sha512_256:
		return "sha512_256"
	default:
		return ""
	}
}

// UnmarshalHashType decodes a string into the HashType enum.
func UnmarshalHashType(s string) (HashType, error) {
	switch s {
	case "sha256":
		return Sha256, nil
	case "sha3_256":
		return Sha3_256, nil
	case "sha512_256":
		return Sha512_256, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownHash, s)
	}
}

// Sum hashes message with h. An out-of-range type falls back to SHA-256;
// callers holding untrusted values should Validate first.
func (h HashType) Sum(message []byte) Digest {
	switch h {
	case Sha3_256:
		return sha3.Sum256(message)
	case Sha512_256:
		return sha512.Sum512_256(message)
	default:
		return Hash(message)
	}
}
