package notify

import log "github.com/sirupsen/logrus"

// LogSink writes notifications to a logrus logger.
type LogSink struct {
	logger log.FieldLogger
}

func NewLogSink(logger log.FieldLogger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(n Notification) {
	entry := s.logger.WithField("level_ui", string(n.Level))
	switch n.Level {
	case LevelError:
		entry.Warn(n.Message)
	default:
		entry.Info(n.Message)
	}
}
