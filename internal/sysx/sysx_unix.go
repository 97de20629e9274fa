//go:build unix

// Package sysx wraps the raw descriptor syscalls the resolver and its
// surrounding tooling consume. Every function returns the error instead of
// deciding policy; callers choose whether a failure is fatal.
package sysx

import "golang.org/x/sys/unix"

const openFlags = unix.O_RDONLY | unix.O_DIRECTORY | unix.O_CLOEXEC

// OpenDir opens path as a directory descriptor.
func OpenDir(path string) (int, error) {
	return unix.Open(path, openFlags, 0)
}

// OpenDirAt opens name as a directory descriptor relative to dirfd.
func OpenDirAt(dirfd int, name string) (int, error) {
	return unix.Openat(dirfd, name, openFlags, 0)
}

// ReadlinkAt reads the target of the symlink name relative to dirfd into buf,
// returning the number of bytes written. A full buffer means the target may
// have been truncated; the caller decides how to treat that.
func ReadlinkAt(dirfd int, name string, buf []byte) (int, error) {
	return unix.Readlinkat(dirfd, name, buf)
}

// Getwd returns the current working directory.
func Getwd() (string, error) {
	return unix.Getwd()
}

// Close releases fd. Close errors carry no actionable information for a
// read-only descriptor, so none is returned.
func Close(fd int) {
	_ = unix.Close(fd)
}
