package ecsig

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

const redacted = "[REDACTED]"

var logger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	logger.Store(&nop)
}

// SetLogger installs the logger used for diagnostic events. The package is
// silent until this is called. Secret key material is never logged.
func SetLogger(l zerolog.Logger) {
	tagged := l.With().Str("component", "ecsig").Logger()
	logger.Store(&tagged)
}

func log() *zerolog.Logger {
	return logger.Load()
}
