package tui

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/orb-dash/internal/games/runner"
)

// NewLogger builds the process logger with the given prefix.
func NewLogger(prefix string, level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// LogSink writes session milestones to a logger. Per-frame events (jumps,
// orbs, attacks) go to debug level only.
type LogSink struct {
	logger *log.Logger
	user   string
}

// NewLogSink creates a sink that tags every line with user.
// A nil logger discards everything.
func NewLogSink(logger *log.Logger, user string) *LogSink {
	return &LogSink{logger: logger, user: user}
}

// OnEvent implements runner.EventSink.
func (s *LogSink) OnEvent(e runner.Event) {
	if s == nil || s.logger == nil {
		return
	}

	kv := []any{"user", s.user, "level", e.Level, "score", int(e.Score)}
	switch e.Kind {
	case runner.EventPersistError:
		s.logger.Warn("best score not saved", append(kv, "error", e.Err)...)
	case runner.EventLoadError:
		s.logger.Warn("best score not loaded", append(kv, "error", e.Err)...)
	case runner.EventGameOver:
		s.logger.Info("game over", kv...)
	case runner.EventNewBest:
		s.logger.Info("new best", kv...)
	case runner.EventLevelComplete:
		s.logger.Info("level complete", append(kv, "health", e.Health)...)
	case runner.EventHurt:
		s.logger.Debug("hurt", append(kv, "health", e.Health)...)
	default:
		s.logger.Debug(string(e.Kind), append(kv, "combo", e.Combo, "gain", e.Gain)...)
	}
}
