// Package ecsig implements a minimal elliptic-curve signature workflow: key
// pair generation, message hashing, signing and verification of digests, and
// lossless hex encoding of keys and signatures.
//
// secp256k1 ECDSA with RFC6979 nonces is the default suite. An ed25519-based
// Schnorr suite is also available; see CurveByName.
package ecsig

import (
	"fmt"

	"github.com/athanorlabs/go-ecsig/ed25519"
	"github.com/athanorlabs/go-ecsig/secp256k1"
	"github.com/athanorlabs/go-ecsig/types"
)

type Curve = types.Curve
type Point = types.Point
type Scalar = types.Scalar

// CurveByName returns the curve registered under name.
func CurveByName(name string) (Curve, error) {
	switch name {
	case secp256k1.Name:
		return secp256k1.NewCurve(), nil
	case ed25519.Name:
		return ed25519.NewCurve(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
}
