package ecsig

import (
	"fmt"

	"github.com/athanorlabs/go-ecsig/internal/config"
	"github.com/athanorlabs/go-ecsig/secp256k1"
)

// Suite pairs a curve with a hash function so that callers can work with
// messages instead of digests.
type Suite struct {
	Curve Curve
	Hash  HashType
}

// DefaultSuite is secp256k1 with SHA-256.
func DefaultSuite() *Suite {
	return &Suite{
		Curve: secp256k1.NewCurve(),
		Hash:  Sha256,
	}
}

// NewSuite returns a suite for the given curve and hash.
func NewSuite(curve Curve, hash HashType) (*Suite, error) {
	if curve == nil {
		return nil, ErrUnknownCurve
	}

	if err := hash.Validate(); err != nil {
		return nil, err
	}

	return &Suite{
		Curve: curve,
		Hash:  hash,
	}, nil
}

// LoadSuite builds a suite from the environment (ECSIG_CURVE, ECSIG_HASH),
// falling back to DefaultSuite values for anything unset.
func LoadSuite() (*Suite, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	curve, err := CurveByName(cfg.Curve)
	if err != nil {
		return nil, err
	}

	hash, err := UnmarshalHashType(cfg.Hash)
	if err != nil {
		return nil, err
	}

	s, err := NewSuite(curve, hash)
	if err != nil {
		return nil, err
	}

	log().Debug().Str("curve", curve.Name()).Stringer("hash", hash).Msg("loaded suite")
	return s, nil
}

func (s *Suite) GenerateKeyPair() (*PrivateKey, *PublicKey, error) {
	return GenerateKeyPair(s.Curve)
}

// HashMessage returns the suite's digest of message.
func (s *Suite) HashMessage(message []byte) Digest {
	return s.Hash.Sum(message)
}

// SignMessage hashes message and signs the digest with sk.
func (s *Suite) SignMessage(message []byte, sk *PrivateKey) (*Signature, error) {
	if sk != nil && sk.curve != nil && sk.curve.Name() != s.Curve.Name() {
		return nil, fmt.Errorf("%w: key is for %s, suite uses %s", ErrInvalidKey, sk.curve.Name(), s.Curve.Name())
	}

	return Sign(s.HashMessage(message), sk)
}

// VerifyMessage hashes message and verifies sig against pk.
func (s *Suite) VerifyMessage(message []byte, sig *Signature, pk *PublicKey) (bool, error) {
	if pk != nil && pk.curve != nil && pk.curve.Name() != s.Curve.Name() {
		return false, fmt.Errorf("%w: key is for %s, suite uses %s", ErrInvalidKey, pk.curve.Name(), s.Curve.Name())
	}

	return Verify(s.HashMessage(message), sig, pk)
}

func (s *Suite) DecodePrivateKey(in string) (*PrivateKey, error) {
	return DecodePrivateKey(s.Curve, in)
}

func (s *Suite) DecodePublicKey(in string) (*PublicKey, error) {
	return DecodePublicKey(s.Curve, in)
}

func (s *Suite) DecodeSignature(in string) (*Signature, error) {
	return DecodeSignature(s.Curve, in)
}
