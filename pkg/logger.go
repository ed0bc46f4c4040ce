package sndisplay

type Logger interface {
	Info(message string, module string)
	Error(string)
}

type discardLogger struct{}

func (discardLogger) Info(string, string) {}
func (discardLogger) Error(string)        {}

var logger Logger = discardLogger{}

func SetLogger(l Logger) {
	if l == nil {
		logger = discardLogger{}
		return
	}
	logger = l
}
