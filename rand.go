package ecsig

import (
	"crypto/rand"
	"io"
	"sync"
)

// randSource is the process-wide entropy source. It starts as the OS CSPRNG
// and is never torn down.
var randSource = &lockedReader{r: rand.Reader}

// lockedReader serialises reads so that sources which are not safe for
// concurrent use can be installed with SetRandReader.
type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

func (l *lockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(p)
}

func (l *lockedReader) swap(r io.Reader) io.Reader {
	l.mu.Lock()
	defer l.mu.Unlock()
	prev := l.r
	l.r = r
	return prev
}

// SetRandReader replaces the process-wide random source used for key
// generation and returns a function restoring the previous one. Passing nil
// restores crypto/rand.Reader.
func SetRandReader(r io.Reader) (restore func()) {
	if r == nil {
		r = rand.Reader
	}

	prev := randSource.swap(r)
	return func() {
		randSource.swap(prev)
	}
}
