//go:build unix

package sysx

import "golang.org/x/sys/unix"

// Readlink reads the full target of the symlink at path, growing the buffer
// until the target fits. Unlike ReadlinkAt it imposes no fixed cap.
func Readlink(path string) (string, error) {
	for size := 64; ; size *= 2 {
		buf := make([]byte, size)
		n, err := unix.Readlink(path, buf)
		if err != nil {
			return "", err
		}
		if n < size {
			return string(buf[:n]), nil
		}
	}
}
