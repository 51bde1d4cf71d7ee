// Package system wraps the console and power capabilities of the device.
// Every call is best-effort: callers log failures and carry on.
package system

import (
	"fmt"
	"os"
	"sync"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// DefaultVTPaths are tried in order; /dev/tty is the active VT when run from
// a console, /dev/tty0 otherwise.
var DefaultVTPaths = []string{"/dev/tty", "/dev/tty0"}

// Console writes control sequences to the first virtual terminal that opens.
type Console struct {
	Paths []string
}

func NewConsole() *Console { return &Console{Paths: DefaultVTPaths} }

func (c *Console) paths() []string {
	if c == nil || len(c.Paths) == 0 {
		return DefaultVTPaths
	}
	return c.Paths
}

func (c *Console) write(s string) error {
	var lastErr error
	for _, p := range c.paths() {
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_APPEND, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return fmt.Errorf("write VT: %w", lastErr)
	}
	return fmt.Errorf("write VT: no terminal paths")
}

// HideCursor writes the ANSI escape to hide the cursor to the active VT.
func (c *Console) HideCursor() error { return c.write("\x1b[?25l") }
func (c *Console) ShowCursor() error { return c.write("\x1b[?25h") }

// Console blanking and powerdown intervals (setterm -blank / -powerdown).
const (
	blankOff         = "\x1b[9;0]"
	powerdownOff     = "\x1b[14;0]"
	blankDefault     = "\x1b[9;10]"
	powerdownDefault = "\x1b[14;10]"
)

// KeepAwake keeps the display lit while a message is being shown.
type KeepAwake interface {
	Acquire() error
	Release() error
}

type NoopKeepAwake struct{}

func (NoopKeepAwake) Acquire() error { return nil }
func (NoopKeepAwake) Release() error { return nil }

// ConsoleKeepAwake disables console blanking for as long as it is held.
// Acquire and Release are reference counted so nested holders are safe.
type ConsoleKeepAwake struct {
	Console *Console
	Logger  logger

	mu    sync.Mutex
	holds int
}

func NewConsoleKeepAwake(console *Console, l logger) *ConsoleKeepAwake {
	return &ConsoleKeepAwake{Console: console, Logger: l}
}

func (k *ConsoleKeepAwake) Acquire() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.holds++
	if k.holds > 1 {
		return nil
	}
	err := k.Console.write(blankOff + powerdownOff)
	k.log(err, "disable console blanking")
	if err != nil {
		k.holds--
	}
	return err
}

func (k *ConsoleKeepAwake) Release() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.holds == 0 {
		return nil
	}
	k.holds--
	if k.holds > 0 {
		return nil
	}
	err := k.Console.write(blankDefault + powerdownDefault)
	k.log(err, "restore console blanking")
	return err
}

func (k *ConsoleKeepAwake) log(err error, action string) {
	if k.Logger == nil {
		return
	}
	if err != nil {
		k.Logger.Errorf("power", "%s failed: %v", action, err)
		return
	}
	k.Logger.Infof("power", "%s done", action)
}
