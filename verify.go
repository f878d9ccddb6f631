package ecsig

// Verify reports whether sig is a valid signature of digest under pk.
//
// A signature that is nil, malformed, out of range, from another curve or
// simply wrong yields false with a nil error. An error is returned only when
// pk itself is unusable, and it matches ErrInvalidKey.
func Verify(digest Digest, sig *Signature, pk *PublicKey) (bool, error) {
	if err := checkPublicKey(pk); err != nil {
		log().Warn().Err(err).Msg("refusing to verify against invalid public key")
		return false, err
	}

	if sig == nil || sig.curve == nil || sig.curve.Name() != pk.curve.Name() {
		return false, nil
	}

	return pk.curve.Verify(pk.inner, digest[:], sig.inner), nil
}

// Verify reports whether sig is a valid signature of digest under k. See
// Verify.
func (k *PublicKey) Verify(digest Digest, sig *Signature) (bool, error) {
	return Verify(digest, sig, k)
}
