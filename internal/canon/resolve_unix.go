//go:build unix

package canon

import (
	"errors"
	"fmt"
	"strings"

	"pathpack/internal/sysx"
)

// loopBudget bounds the number of pending components a single resolution may
// process; a symlink cycle exhausts it.
const loopBudget = 9999

// Resolve turns path into its canonical absolute form: symlinks expanded,
// "." and ".." removed, separators collapsed. With exact set every component
// must exist; otherwise a missing final component is accepted verbatim.
//
// Resolution walks one open directory descriptor through the tree rather than
// rebuilding ever-longer path strings, so each step sees the directory the
// already-resolved prefix actually refers to.
func Resolve(path string, exact bool) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path: %w", ErrNotFound)
	}

	var pending []string
	if strings.HasPrefix(path, "/") {
		pending = splitPath(path)
	} else {
		wd, err := sysx.Getwd()
		if err != nil {
			return "", classify("getwd", err)
		}
		pending = append(splitPath(wd), splitPath(path)...)
	}

	cur, err := openRootCursor()
	if err != nil {
		return "", err
	}
	defer cur.close()

	var resolved []string // root-to-leaf; the tail is the cursor's directory
	budget := loopBudget

	for len(pending) > 0 {
		budget--
		if budget <= 0 {
			return "", fmt.Errorf("%s: %w", path, ErrTooManySymlinks)
		}

		name := pending[0]
		pending = pending[1:]

		switch name {
		case ".":
			continue
		case "..":
			if len(resolved) > 0 {
				resolved = resolved[:len(resolved)-1]
			}
			// Move the real cursor up as well; at the root ".." opens the
			// root again.
			if err := cur.descend(".."); err != nil {
				return "", err
			}
			continue
		}

		target, isLink, err := cur.readlinkRelative(name)
		if err != nil {
			if errors.Is(err, ErrNotFound) && !exact && len(pending) == 0 {
				// Tolerated missing final component: the caller asked for
				// the normalized name, not verified existence.
				resolved = append(resolved, name)
				break
			}
			return "", err
		}

		if !isLink {
			resolved = append(resolved, name)
			if len(pending) == 0 {
				// The final component may be a plain file; never enter it.
				break
			}
			if err := cur.descend(name); err != nil {
				return "", err
			}
			continue
		}

		// A symlink to an absolute path invalidates everything resolved so
		// far. A target of exactly "/" splits to nothing and contributes no
		// further components.
		if strings.HasPrefix(target, "/") {
			resolved = resolved[:0]
			if err := cur.reset(); err != nil {
				return "", err
			}
		}
		pending = append(splitPath(target), pending...)
	}

	return joinPath(resolved), nil
}
