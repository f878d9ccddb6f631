package ecsig

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/go-ecsig/ed25519"
	"github.com/athanorlabs/go-ecsig/secp256k1"
)

const (
	// secp256k1 group order n, big-endian
	secp256k1Order = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
	// ed25519 group order l, little-endian
	ed25519Order = "edd3f55c1a631258d69cf7a2def9de1400000000000000000000000000000010"
)

func TestPrivateKey_Serde(t *testing.T) {
	forEachCurve(t, func(t *testing.T, curve Curve) {
		sk, _, err := GenerateKeyPair(curve)
		require.NoError(t, err)

		enc := sk.Encode()
		require.Len(t, enc, curve.ScalarSize()*2)
		require.Equal(t, strings.ToLower(enc), enc)

		deser, err := DecodePrivateKey(curve, enc)
		require.NoError(t, err)
		require.True(t, sk.Equal(deser))
		require.Equal(t, enc, deser.Encode())
		require.True(t, sk.Public().Equal(deser.Public()))
	})
}

func TestPublicKey_Serde(t *testing.T) {
	forEachCurve(t, func(t *testing.T, curve Curve) {
		_, pk, err := GenerateKeyPair(curve)
		require.NoError(t, err)

		enc := pk.Encode()
		require.Len(t, enc, curve.CompressedPointSize()*2)
		require.Equal(t, strings.ToLower(enc), enc)
		require.Equal(t, enc, pk.String())

		deser, err := DecodePublicKey(curve, enc)
		require.NoError(t, err)
		require.True(t, pk.Equal(deser))
		require.Equal(t, enc, deser.Encode())
		require.Equal(t, pk.Fingerprint(), deser.Fingerprint())
	})
}

func TestSignature_Serde(t *testing.T) {
	forEachCurve(t, func(t *testing.T, curve Curve) {
		sk, pk, err := GenerateKeyPair(curve)
		require.NoError(t, err)

		digest := Hash([]byte("Test message"))
		sig, err := Sign(digest, sk)
		require.NoError(t, err)

		enc := sig.Encode()
		require.Len(t, enc, curve.SignatureSize()*2)
		require.Equal(t, strings.ToLower(enc), enc)

		deser, err := DecodeSignature(curve, enc)
		require.NoError(t, err)
		require.True(t, sig.Equal(deser))
		require.Equal(t, enc, deser.Encode())

		ok, err := Verify(digest, deser, pk)
		require.NoError(t, err)
		require.True(t, ok)
	})
}

func TestDecode_RejectsUppercase(t *testing.T) {
	forEachCurve(t, func(t *testing.T, curve Curve) {
		sk, pk, err := GenerateKeyPair(curve)
		require.NoError(t, err)
		sig, err := Sign(Hash([]byte("case")), sk)
		require.NoError(t, err)

		encoded := map[string]string{
			artifactPrivateKey: sk.Encode(),
			artifactPublicKey:  pk.Encode(),
			artifactSignature:  sig.Encode(),
		}

		for name, decode := range decoders() {
			upper := strings.ToUpper(encoded[name])
			require.NotEqual(t, encoded[name], upper)

			err := decode(curve, upper)
			requireDecodeKind(t, err, MalformedHex)
			require.NotContains(t, err.Error(), upper)

			require.NoError(t, decode(curve, encoded[name]))
		}
	})
}

func TestDecode_MalformedHex(t *testing.T) {
	inputs := []string{
		"abc",
		"0",
		"zz",
		"0x00",
		"gg" + strings.Repeat("00", 31),
		" " + strings.Repeat("00", 32),
	}

	forEachCurve(t, func(t *testing.T, curve Curve) {
		for name, decode := range decoders() {
			for _, in := range inputs {
				err := decode(curve, in)
				requireDecodeKind(t, err, MalformedHex)
				require.Contains(t, err.Error(), name)
			}
		}
	})
}

func TestDecode_InvalidLength(t *testing.T) {
	forEachCurve(t, func(t *testing.T, curve Curve) {
		sizes := map[string]int{
			artifactPrivateKey: curve.ScalarSize(),
			artifactPublicKey:  curve.CompressedPointSize(),
			artifactSignature:  curve.SignatureSize(),
		}

		for name, decode := range decoders() {
			size := sizes[name]
			for _, n := range []int{0, 1, size - 1, size + 1, size * 2} {
				err := decode(curve, strings.Repeat("01", n))
				requireDecodeKind(t, err, InvalidLength)
				require.False(t, errors.Is(err, ErrInvalidEncoding))
			}
		}
	})
}

func TestDecodePrivateKey_InvalidEncoding(t *testing.T) {
	cases := map[string][]string{
		secp256k1.Name: {
			strings.Repeat("00", 32),
			secp256k1Order,
			strings.Repeat("ff", 32),
		},
		ed25519.Name: {
			strings.Repeat("00", 32),
			ed25519Order,
			strings.Repeat("ff", 32),
		},
	}

	forEachCurve(t, func(t *testing.T, curve Curve) {
		for _, in := range cases[curve.Name()] {
			_, err := DecodePrivateKey(curve, in)
			requireDecodeKind(t, err, InvalidEncoding)
		}
	})
}

func TestDecodePublicKey_InvalidEncoding(t *testing.T) {
	cases := map[string][]string{
		secp256k1.Name: {
			// x = 5 has no point on the curve
			"02" + strings.Repeat("00", 31) + "05",
			// x not below the field prime
			"02" + strings.Repeat("ff", 32),
			// bad prefix
			"05" + strings.Repeat("00", 31) + "01",
			// uncompressed prefix with compressed length
			"04" + strings.Repeat("00", 31) + "01",
		},
		ed25519.Name: {
			// y = 2 has no point on the curve
			"02" + strings.Repeat("00", 31),
			// identity
			"01" + strings.Repeat("00", 31),
			// y = p + 4, the non-canonical form of y = 4
			"f1" + strings.Repeat("ff", 30) + "7f",
			"f0" + strings.Repeat("ff", 30) + "7f",
			// (0, -1), order 2
			"ec" + strings.Repeat("ff", 30) + "7f",
			// y = 0, order 4
			strings.Repeat("00", 32),
			// base point plus the order 2 point
			"95" + strings.Repeat("99", 31),
		},
	}

	forEachCurve(t, func(t *testing.T, curve Curve) {
		for _, in := range cases[curve.Name()] {
			_, err := DecodePublicKey(curve, in)
			requireDecodeKind(t, err, InvalidEncoding)
		}
	})
}

func TestDecodeSignature_InvalidEncoding(t *testing.T) {
	one := strings.Repeat("00", 31) + "01"
	cases := map[string][]string{
		secp256k1.Name: {
			secp256k1Order + one,
			one + secp256k1Order,
			strings.Repeat("ff", 64),
		},
		ed25519.Name: {
			// R is not a point
			"02" + strings.Repeat("00", 31) + strings.Repeat("00", 32),
			// s is not canonical
			"58" + strings.Repeat("66", 31) + ed25519Order,
			// R is a non-canonical encoding
			"f1" + strings.Repeat("ff", 30) + "7f" + strings.Repeat("00", 32),
		},
	}

	forEachCurve(t, func(t *testing.T, curve Curve) {
		for _, in := range cases[curve.Name()] {
			_, err := DecodeSignature(curve, in)
			requireDecodeKind(t, err, InvalidEncoding)
		}
	})
}

func TestDecodeSignature_ZeroComponentsVerifyFalse(t *testing.T) {
	curve := secp256k1.NewCurve()
	_, pk, err := GenerateKeyPair(curve)
	require.NoError(t, err)

	sig, err := DecodeSignature(curve, strings.Repeat("00", 64))
	require.NoError(t, err)

	ok, err := Verify(Hash(nil), sig, pk)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDecode_NilCurve(t *testing.T) {
	for _, decode := range decoders() {
		err := decode(nil, "00")
		require.ErrorIs(t, err, ErrUnknownCurve)
	}
}

func TestDecode_WrongCurveLength(t *testing.T) {
	// a secp256k1 public key is one byte longer than an ed25519 one
	_, pk, err := GenerateKeyPair(secp256k1.NewCurve())
	require.NoError(t, err)

	_, err = DecodePublicKey(ed25519.NewCurve(), pk.Encode())
	requireDecodeKind(t, err, InvalidLength)
}

func TestDecodeError_Message(t *testing.T) {
	err := newDecodeError(InvalidLength, artifactSignature, errors.New("expected 64 bytes, got 3"))
	require.Equal(t, "failed to decode signature: invalid length: expected 64 bytes, got 3", err.Error())

	err = newDecodeError(MalformedHex, artifactPublicKey, nil)
	require.Equal(t, "failed to decode public key: malformed hex", err.Error())
	require.False(t, errors.Is(err, ErrInvalidLength))
}
