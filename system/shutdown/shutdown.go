package shutdown

import (
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

var closers []io.Closer

// Register adds a resource to close on shutdown, in reverse registration
// order.
func Register(c io.Closer) {
	closers = append(closers, c)
}

func Shutdown() {
	closeAll()
	log.Info().Msg("Hub stopped")
	os.Exit(0)
}

func ShutdownWithError(err error, msg string) {
	log.Error().Err(err).Msg(msg)
	closeAll()
	os.Exit(1)
}

func closeAll() {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close resource during shutdown")
		}
	}
	closers = nil
}
