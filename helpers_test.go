package ecsig

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func decoders() map[string]func(Curve, string) error {
	return map[string]func(Curve, string) error{
		artifactPrivateKey: func(c Curve, s string) error {
			_, err := DecodePrivateKey(c, s)
			return err
		},
		artifactPublicKey: func(c Curve, s string) error {
			_, err := DecodePublicKey(c, s)
			return err
		},
		artifactSignature: func(c Curve, s string) error {
			_, err := DecodeSignature(c, s)
			return err
		},
	}
}

func requireDecodeKind(t *testing.T, err error, kind DecodeErrorKind) {
	t.Helper()
	var de *DecodeError
	require.True(t, errors.As(err, &de), "expected *DecodeError, got %v", err)
	require.Equal(t, kind, de.Kind)
}
