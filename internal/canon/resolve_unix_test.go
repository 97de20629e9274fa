//go:build unix

package canon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// canonicalBase returns a temp dir with any symlinks in its own path already
// resolved (t.TempDir often sits under a symlinked /tmp), so expectations can
// be built by plain string concatenation.
func canonicalBase(t *testing.T) string {
	t.Helper()
	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("eval temp dir: %v", err)
	}
	return base
}

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func mustSymlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink %s -> %s: %v", link, target, err)
	}
}

func mustWriteFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestResolveAlreadyCanonical(t *testing.T) {
	base := canonicalBase(t)
	mustMkdirAll(t, filepath.Join(base, "a", "b"))

	got, err := Resolve(base+"/a/b", true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != base+"/a/b" {
		t.Fatalf("expected %s, got %s", base+"/a/b", got)
	}
}

func TestResolveNormalizesDotsAndSeparators(t *testing.T) {
	base := canonicalBase(t)
	mustMkdirAll(t, filepath.Join(base, "a", "b"))
	mustMkdirAll(t, filepath.Join(base, "a", "c"))

	got, err := Resolve(base+"/a/./b/../c", true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != base+"/a/c" {
		t.Fatalf("expected %s, got %s", base+"/a/c", got)
	}

	got, err = Resolve(base+"//a///c/", true)
	if err != nil {
		t.Fatalf("resolve repeated separators: %v", err)
	}
	if got != base+"/a/c" {
		t.Fatalf("expected %s, got %s", base+"/a/c", got)
	}
}

func TestResolveIdempotent(t *testing.T) {
	base := canonicalBase(t)
	mustMkdirAll(t, filepath.Join(base, "a", "b"))
	mustMkdirAll(t, filepath.Join(base, "a", "c"))

	first, err := Resolve(base+"/a/./b/../c", true)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := Resolve(first, true)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if first != second {
		t.Fatalf("not idempotent: %s vs %s", first, second)
	}
}

func TestResolveSymlinkChainToFile(t *testing.T) {
	base := canonicalBase(t)
	mustMkdirAll(t, filepath.Join(base, "c"))
	mustWriteFile(t, filepath.Join(base, "c", "file"))
	mustSymlink(t, base+"/c/file", filepath.Join(base, "b"))
	mustSymlink(t, base+"/b", filepath.Join(base, "a"))

	got, err := Resolve(base+"/a", true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != base+"/c/file" {
		t.Fatalf("expected %s, got %s", base+"/c/file", got)
	}
}

func TestResolveAbsoluteSymlinkReset(t *testing.T) {
	base := canonicalBase(t)
	mustMkdirAll(t, filepath.Join(base, "x"))
	mustMkdirAll(t, filepath.Join(base, "z", "w"))
	mustSymlink(t, base+"/z", filepath.Join(base, "x", "y"))

	got, err := Resolve(base+"/x/y/w", true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != base+"/z/w" {
		t.Fatalf("expected %s, got %s", base+"/z/w", got)
	}
}

func TestResolveRelativeSymlink(t *testing.T) {
	base := canonicalBase(t)
	mustMkdirAll(t, filepath.Join(base, "d"))
	mustMkdirAll(t, filepath.Join(base, "other"))
	mustSymlink(t, "../other", filepath.Join(base, "d", "link"))

	got, err := Resolve(base+"/d/link", true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != base+"/other" {
		t.Fatalf("expected %s, got %s", base+"/other", got)
	}
}

func TestResolveSymlinkToRoot(t *testing.T) {
	base := canonicalBase(t)
	mustSymlink(t, "/", filepath.Join(base, "r"))

	got, err := Resolve(base+"/r", true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "/" {
		t.Fatalf("expected /, got %s", got)
	}
}

func TestResolveMissingFinalComponent(t *testing.T) {
	base := canonicalBase(t)
	mustMkdirAll(t, filepath.Join(base, "d"))

	got, err := Resolve(base+"/d/ghost", false)
	if err != nil {
		t.Fatalf("non-exact resolve: %v", err)
	}
	if got != base+"/d/ghost" {
		t.Fatalf("expected %s, got %s", base+"/d/ghost", got)
	}

	if _, err := Resolve(base+"/d/ghost", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("exact resolve: expected ErrNotFound, got %v", err)
	}

	// A missing component is only tolerated in final position.
	if _, err := Resolve(base+"/d/ghost/x", false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing middle component: expected ErrNotFound, got %v", err)
	}
}

func TestResolveSymlinkCycle(t *testing.T) {
	base := canonicalBase(t)
	mustSymlink(t, base+"/b", filepath.Join(base, "a"))
	mustSymlink(t, base+"/a", filepath.Join(base, "b"))

	if _, err := Resolve(base+"/a", true); !errors.Is(err, ErrTooManySymlinks) {
		t.Fatalf("expected ErrTooManySymlinks, got %v", err)
	}
}

func TestResolveRootClamp(t *testing.T) {
	got, err := Resolve("/../..", true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "/" {
		t.Fatalf("expected /, got %s", got)
	}
}

func TestResolveRelativePathUsesCwd(t *testing.T) {
	base := canonicalBase(t)
	mustMkdirAll(t, filepath.Join(base, "sub"))

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	defer os.Chdir(cwd)
	if err := os.Chdir(base); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	got, err := Resolve("sub", true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != base+"/sub" {
		t.Fatalf("expected %s, got %s", base+"/sub", got)
	}

	got, err = Resolve(".", true)
	if err != nil {
		t.Fatalf("resolve dot: %v", err)
	}
	if got != base {
		t.Fatalf("expected %s, got %s", base, got)
	}
}

func TestResolveNotADirectory(t *testing.T) {
	base := canonicalBase(t)
	mustWriteFile(t, filepath.Join(base, "f"))

	if _, err := Resolve(base+"/f/x", true); !errors.Is(err, ErrNotADirectory) {
		t.Fatalf("expected ErrNotADirectory, got %v", err)
	}
}

func TestResolveEmptyPath(t *testing.T) {
	if _, err := Resolve("", true); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestResolveMatchesEvalSymlinks(t *testing.T) {
	base := canonicalBase(t)
	mustMkdirAll(t, filepath.Join(base, "real", "nested"))
	mustSymlink(t, "real", filepath.Join(base, "alias"))
	mustSymlink(t, base+"/alias/nested", filepath.Join(base, "deep"))

	for _, path := range []string{base + "/alias", base + "/alias/nested", base + "/deep", base + "/deep/.."} {
		want, err := filepath.EvalSymlinks(path)
		if err != nil {
			t.Fatalf("EvalSymlinks(%s): %v", path, err)
		}
		got, err := Resolve(path, true)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", path, err)
		}
		if got != want {
			t.Fatalf("Resolve(%s) = %s, EvalSymlinks = %s", path, got, want)
		}
	}
}
