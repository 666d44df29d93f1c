package flashctrl

import "github.com/sirupsen/logrus"

// Logger is an optional logging interface that can be provided to the
// controller. This allows integration with any logging framework.
//
// Example with the standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	ctrl := flashctrl.New(array, flashctrl.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

// NewLogrusLogger adapts a logrus logger to the Logger interface.
// Key-value pairs become logrus fields.
//
// Example:
//
//	log := logrus.New()
//	log.SetLevel(logrus.DebugLevel)
//	ctrl := flashctrl.New(array, flashctrl.WithLogger(flashctrl.NewLogrusLogger(log)))
func NewLogrusLogger(l *logrus.Logger) Logger {
	return &logrusLogger{l: l}
}

type logrusLogger struct {
	l *logrus.Logger
}

func (a *logrusLogger) Debug(msg string, keysAndValues ...interface{}) {
	a.l.WithFields(logrusFields(keysAndValues)).Debug(msg)
}

func (a *logrusLogger) Info(msg string, keysAndValues ...interface{}) {
	a.l.WithFields(logrusFields(keysAndValues)).Info(msg)
}

func (a *logrusLogger) Error(msg string, keysAndValues ...interface{}) {
	a.l.WithFields(logrusFields(keysAndValues)).Error(msg)
}

// logrusFields converts alternating key-value pairs to logrus fields.
// Non-string keys and trailing unpaired values are dropped.
func logrusFields(keysAndValues []interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}
