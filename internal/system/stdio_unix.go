//go:build unix

package system

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// RedirectStdIO appends stdout and stderr, including panic traces, to path.
// The console is in graphics mode while the app runs, so crashes are
// otherwise invisible.
func RedirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open stdio log: %w", err)
	}
	defer f.Close()

	if err := unix.Dup2(int(f.Fd()), int(os.Stdout.Fd())); err != nil {
		return fmt.Errorf("redirect stdout: %w", err)
	}
	if err := unix.Dup2(int(f.Fd()), int(os.Stderr.Fd())); err != nil {
		return fmt.Errorf("redirect stderr: %w", err)
	}
	return nil
}
