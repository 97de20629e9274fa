// Package canon resolves filesystem paths to their canonical absolute form:
// symlinks expanded, "." and ".." eliminated, separators collapsed.
package canon

import "strings"

// splitPath breaks path into its non-empty components. Repeated, leading and
// trailing separators collapse away; the root path yields no components.
func splitPath(path string) []string {
	var components []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			components = append(components, part)
		}
	}
	return components
}

// joinPath assembles components back into an absolute path: "/" when no
// components remain, otherwise a single leading separator, components joined
// by single separators, no trailing separator.
func joinPath(components []string) string {
	if len(components) == 0 {
		return "/"
	}
	return "/" + strings.Join(components, "/")
}
