package event

import (
	"github.com/rs/zerolog"
)

// LogSink mirrors feedback to a logger
type LogSink struct {
	Logger zerolog.Logger
}

// NewLogSink creates a sink tagged with component=feedback
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{Logger: logger.With().Str("component", "feedback").Logger()}
}

func (s *LogSink) Notify(f Feedback) {
	var e *zerolog.Event
	switch f.Kind {
	case KindSliceFail:
		e = s.Logger.Debug().Str("reason", f.Reason.String())
	case KindGeometryFallback:
		e = s.Logger.Warn()
	default:
		e = s.Logger.Info()
	}
	e.Str("kind", f.Kind.String()).
		Uint64("block", uint64(f.Block)).
		Str("saber", f.Saber.String()).
		Str("color", f.Color.String()).
		Float64("x", f.Position.X).
		Float64("y", f.Position.Y).
		Float64("z", f.Position.Z).
		Int64("frame", f.Frame).
		Msg("feedback")
}
