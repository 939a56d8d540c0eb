package pageseg

// Logger is the logging interface used by the processing packages.  It is
// satisfied by *logrus.Logger and *logrus.Entry so callers can attach
// fields such as the page ID before passing it in.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// NopLogger discards all log output
type NopLogger struct{}

// Debugf discards the message
func (NopLogger) Debugf(string, ...interface{}) {}

// Infof discards the message
func (NopLogger) Infof(string, ...interface{}) {}

// Warnf discards the message
func (NopLogger) Warnf(string, ...interface{}) {}

// OrNop returns log, or a NopLogger when log is nil
func OrNop(log Logger) Logger {
	if log == nil {
		return NopLogger{}
	}
	return log
}
