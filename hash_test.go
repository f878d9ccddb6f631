package ecsig

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	empty := Hash(nil)
	require.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hex.EncodeToString(empty[:]))
	require.Equal(t, empty, Hash([]byte{}))

	d := Hash([]byte("Hello, world!"))
	require.Equal(t, "315f5bdb76d078c43b8ac0064e4a0164612b1fce77c869345bfc94c75894edd3", hex.EncodeToString(d[:]))
	require.Equal(t, d, Hash([]byte("Hello, world!")))
	require.NotEqual(t, d, Hash([]byte("Hello, world")))
}

func TestHashType_Sum(t *testing.T) {
	msg := []byte("Hello, world!")
	expected := map[HashType]string{
		Sha256:     "315f5bdb76d078c43b8ac0064e4a0164612b1fce77c869345bfc94c75894edd3",
		Sha3_256:   "f345a219da005ebe9c1a1eaad97bbf38a10c8473e41d0af7fb617caa0c6aa722",
		Sha512_256: "330c723f25267587db0b9f493463e017011239169cb57a6db216c63774367115",
	}

	for h, want := range expected {
		d := h.Sum(msg)
		require.Equal(t, want, hex.EncodeToString(d[:]), h.String())
	}
}

func TestHashType_Unmarshal(t *testing.T) {
	for h := HashType(0); h < MaxHashType; h++ {
		require.NoError(t, h.Validate())

		parsed, err := UnmarshalHashType(h.String())
		require.NoError(t, err)
		require.Equal(t, h, parsed)
	}

	_, err := UnmarshalHashType("md5")
	require.ErrorIs(t, err, ErrUnknownHash)

	require.ErrorIs(t, MaxHashType.Validate(), ErrUnknownHash)
	require.Empty(t, MaxHashType.String())
}
