package dispatch

import (
	"os"

	"github.com/sirupsen/logrus"
)

// levelFlags maps the level internal parameters to logrus levels, most
// severe first.
var levelFlags = []struct {
	name  string
	level logrus.Level
}{
	{"critical", logrus.FatalLevel},
	{"error", logrus.ErrorLevel},
	{"warning", logrus.WarnLevel},
	{"info", logrus.InfoLevel},
	{"debug", logrus.DebugLevel},
}

// MessageFormatter formats a log entry as its bare message.
type MessageFormatter struct{}

// Format implements logrus.Formatter.
func (MessageFormatter) Format(e *logrus.Entry) ([]byte, error) {
	b := make([]byte, 0, len(e.Message)+1)
	b = append(b, e.Message...)
	return append(b, '\n'), nil
}

func newLogger(level logrus.Level) *logrus.Logger {
	return &logrus.Logger{
		Out:       os.Stderr,
		Formatter: MessageFormatter{},
		Hooks:     make(logrus.LevelHooks),
		Level:     level,
		ExitFunc:  os.Exit,
	}
}
