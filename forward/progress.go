package forward

import "github.com/charmbracelet/log"

// LogProgressSink logs each progress notification at Info (completed) or
// Warn (failed) level, in the teacher's key/value structured call shape.
type LogProgressSink struct {
	Logger *log.Logger
}

// NewLogProgressSink returns a ProgressSink backed by logger. A nil logger
// falls back to log.Default().
func NewLogProgressSink(logger *log.Logger) *LogProgressSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogProgressSink{Logger: logger}
}

// Notify implements ProgressSink.
func (s *LogProgressSink) Notify(state TransferState, iuid, cuid string, dicomStatusCode uint16, progress ProgressStatus, remaining int) {
	kv := []interface{}{
		"iuid", iuid,
		"cuid", cuid,
		"status", dicomStatusCode,
		"remaining", remaining,
	}
	if progress == ProgressCompleted && state == TransferSuccess {
		s.Logger.Info("instance forwarded", kv...)
		return
	}
	s.Logger.Warn("instance forward failed", kv...)
}
