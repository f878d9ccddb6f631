package ecsig

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const minBatchVerifierAlloc = 16

type batchEntry struct {
	digest Digest
	sig    *Signature
	pk     *PublicKey
}

// BatchVerifier collects signatures and verifies them concurrently.
type BatchVerifier struct {
	entries []batchEntry
}

// NewBatchVerifier returns a BatchVerifier with room for hint signatures.
func NewBatchVerifier(hint int) *BatchVerifier {
	if hint < minBatchVerifierAlloc {
		hint = minBatchVerifierAlloc
	}

	return &BatchVerifier{
		entries: make([]batchEntry, 0, hint),
	}
}

// EnqueueSignature adds a signature to be checked by the next Verify call.
func (b *BatchVerifier) EnqueueSignature(digest Digest, sig *Signature, pk *PublicKey) {
	b.entries = append(b.entries, batchEntry{
		digest: digest,
		sig:    sig,
		pk:     pk,
	})
}

// Len returns the number of enqueued signatures.
func (b *BatchVerifier) Len() int {
	return len(b.entries)
}

// Verify returns nil if every enqueued signature is valid.
func (b *BatchVerifier) Verify(ctx context.Context) error {
	_, err := b.VerifyWithFeedback(ctx)
	return err
}

// VerifyWithFeedback verifies all enqueued signatures. failed[i] is true when
// entry i did not verify, in which case err is ErrBatchHasFailedSigs. An
// unusable public key or a cancelled context aborts the batch with that error
// and a nil failed slice.
func (b *BatchVerifier) VerifyWithFeedback(ctx context.Context) (failed []bool, err error) {
	if len(b.entries) == 0 {
		return nil, nil
	}

	failed = make([]bool, len(b.entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range b.entries {
		if gctx.Err() != nil {
			break
		}

		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			e := b.entries[i]
			ok, err := Verify(e.digest, e.sig, e.pk)
			if err != nil {
				return err
			}

			failed[i] = !ok
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	numFailed := 0
	for _, f := range failed {
		if f {
			numFailed++
		}
	}

	log().Debug().Int("total", len(failed)).Int("failed", numFailed).Msg("verified batch")

	if numFailed > 0 {
		return failed, ErrBatchHasFailedSigs
	}

	return failed, nil
}
