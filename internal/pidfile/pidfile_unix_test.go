//go:build unix

package pidfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAcquireWritesOwnPid(t *testing.T) {
	dir := t.TempDir()

	lock, err := Acquire(dir, "pth-test")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	data, err := os.ReadFile(lock.Path())
	if err != nil {
		t.Fatalf("read pidfile: %v", err)
	}
	want := fmt.Sprintf("%d\n", os.Getpid())
	if string(data) != want {
		t.Fatalf("expected %q, got %q", want, string(data))
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Fatalf("pidfile still present after release: %v", err)
	}
}

func TestAcquireRefusesLivePid(t *testing.T) {
	dir := t.TempDir()

	lock, err := Acquire(dir, "pth-test")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	defer lock.Release()

	if _, err := Acquire(dir, "pth-test"); err == nil {
		t.Fatal("second acquire should fail while the holder is alive")
	} else if !strings.Contains(err.Error(), "held by a running process") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAcquireReclaimsStalePid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pth-test.pid")

	// A PID far above any real pid_max cannot belong to a live process.
	if err := os.WriteFile(path, []byte("1073741824\n"), 0o644); err != nil {
		t.Fatalf("write stale pidfile: %v", err)
	}

	lock, err := Acquire(dir, "pth-test")
	if err != nil {
		t.Fatalf("acquire over stale pidfile: %v", err)
	}
	defer lock.Release()
}

func TestAcquireReclaimsGarbagePidfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pth-test.pid")

	if err := os.WriteFile(path, []byte("not a pid\n"), 0o644); err != nil {
		t.Fatalf("write garbage pidfile: %v", err)
	}

	lock, err := Acquire(dir, "pth-test")
	if err != nil {
		t.Fatalf("acquire over garbage pidfile: %v", err)
	}
	defer lock.Release()
}
