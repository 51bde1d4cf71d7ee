package app

import (
	"fmt"
	"io"
	"sync"
	"time"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// FileLogger writes one line per entry. Writes are serialized because the
// render loop, input readers and screens all log.
type FileLogger struct {
	mu *sync.Mutex
	w  io.Writer
}

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{mu: &sync.Mutex{}, w: w} }

func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	l.write("INFO", component, format, args...)
}

func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.write("ERROR", component, format, args...)
}

func (l FileLogger) write(level, component, format string, args ...interface{}) {
	if l.mu != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	writeLog(l.w, time.Now(), level, component, format, args...)
}

func writeLog(w io.Writer, at time.Time, level, component, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, at.Format(time.RFC3339)+" ["+level+"] "+component+": "+msg+"\n")
}

// ErrorsOnly drops Infof so a non-debug run only records failures.
type ErrorsOnly struct{ Logger }

func (ErrorsOnly) Infof(component, format string, args ...interface{}) {}
