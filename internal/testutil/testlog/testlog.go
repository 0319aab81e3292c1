package testlog

import (
	"testing"

	"github.com/robopatrol/patrolsdk/internal/logging"
	"github.com/robopatrol/patrolsdk/internal/observability"
)

func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	logger := observability.NewLogger("test")
	logger.Debug().Str("test", t.Name()).Msg("start")
}
