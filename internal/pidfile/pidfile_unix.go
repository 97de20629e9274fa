//go:build unix

// Package pidfile guards long-running commands with a <name>.pid file,
// detecting and clearing files left behind by dead processes.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// Lock represents a held pidfile.
type Lock struct {
	path string
}

// Acquire creates <dir>/<name>.pid containing the current PID. If the file
// already exists it is read back: when the recorded process is gone the file
// is stale and removed, and the create is retried. Three attempts cover the
// race between two starters observing the same stale file.
func Acquire(dir, name string) (*Lock, error) {
	path := filepath.Join(dir, name+".pid")

	for attempt := 0; attempt < 3; attempt++ {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			if _, err := fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
				file.Close()
				os.Remove(path)
				return nil, err
			}
			if err := file.Close(); err != nil {
				os.Remove(path)
				return nil, err
			}
			return &Lock{path: path}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, err
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			// Holder may have just released; retry the create.
			continue
		}
		pid, _ := strconv.Atoi(strings.TrimSpace(string(data)))
		if pid < 1 || processGone(pid) {
			os.Remove(path)
		}
	}

	return nil, fmt.Errorf("pidfile %s: held by a running process", path)
}

// Path returns the location of the held pidfile.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the pidfile.
func (l *Lock) Release() error {
	return os.Remove(l.path)
}

func processGone(pid int) bool {
	return errors.Is(unix.Kill(pid, 0), unix.ESRCH)
}
