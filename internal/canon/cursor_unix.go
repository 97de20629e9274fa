//go:build unix

package canon

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"pathpack/internal/sysx"
)

// cursor owns the single directory descriptor that tracks where resolution
// currently stands. At most one descriptor is open at any instant.
type cursor struct {
	fd int
}

func openRootCursor() (*cursor, error) {
	fd, err := sysx.OpenDir("/")
	if err != nil {
		return nil, classify("/", err)
	}
	return &cursor{fd: fd}, nil
}

// descend opens name relative to the current descriptor and replaces it,
// closing the old descriptor. On failure the cursor is unchanged.
func (c *cursor) descend(name string) error {
	fd, err := sysx.OpenDirAt(c.fd, name)
	if err != nil {
		return classify(name, err)
	}
	sysx.Close(c.fd)
	c.fd = fd
	return nil
}

// reset returns the cursor to the root directory.
func (c *cursor) reset() error {
	fd, err := sysx.OpenDir("/")
	if err != nil {
		return classify("/", err)
	}
	sysx.Close(c.fd)
	c.fd = fd
	return nil
}

// readlinkRelative probes name relative to the current descriptor without
// moving it. It reports (target, true, nil) for a symlink and ("", false, nil)
// for an entry that exists but is not one. The probe buffer is local to the
// call; a target that fills it is rejected rather than truncated.
func (c *cursor) readlinkRelative(name string) (string, bool, error) {
	buf := make([]byte, 4096)
	n, err := sysx.ReadlinkAt(c.fd, name, buf)
	if err != nil {
		if errors.Is(err, unix.EINVAL) {
			// Exists, not a symlink.
			return "", false, nil
		}
		return "", false, classify(name, err)
	}
	if n >= len(buf) {
		return "", false, fmt.Errorf("%s: %w", name, ErrComponentTooLong)
	}
	return string(buf[:n]), true, nil
}

func (c *cursor) close() {
	if c.fd >= 0 {
		sysx.Close(c.fd)
		c.fd = -1
	}
}

// classify maps an errno from a descriptor operation onto the package
// taxonomy, keeping the offending name in the message.
func classify(name string, err error) error {
	var sentinel error
	switch {
	case errors.Is(err, unix.ENOENT):
		sentinel = ErrNotFound
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		sentinel = ErrPermissionDenied
	case errors.Is(err, unix.ENOTDIR):
		sentinel = ErrNotADirectory
	case errors.Is(err, unix.ELOOP):
		sentinel = ErrTooManySymlinks
	default:
		sentinel = ErrIO
	}
	return fmt.Errorf("%s: %w", name, sentinel)
}
