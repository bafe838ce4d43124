package runtime

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger configures the global zerolog logger from the runtime flags.
// Silent maps to errors only, verbose to debug, otherwise info.
func SetupLogger(rt *Runtime) {
	switch {
	case rt.Silent:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case rt.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !rt.UseColor,
	}).With().Timestamp().Logger()
}

// Logger returns a logger tagged with a component name.
func Logger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
