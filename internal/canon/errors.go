package canon

import "errors"

// Resolution failures map onto exactly one of these sentinels. Callers match
// with errors.Is; the wrapped message carries the offending component.
var (
	ErrTooManySymlinks  = errors.New("too many levels of symbolic links")
	ErrComponentTooLong = errors.New("symlink target too long")
	ErrNotFound         = errors.New("no such file or directory")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotADirectory    = errors.New("not a directory")
	ErrIO               = errors.New("i/o error")
)
