package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/robopatrol/patrolsdk/internal/logging"
)

// NewLogger builds the SDK's console logger. The facade threads it through
// every component; timestamps ride on each line so caught internal errors
// and callback panics are datable.
func NewLogger(app string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    logging.NoColor(),
	}
	return zerolog.New(output).With().Timestamp().Str("app", app).Logger()
}
