package health

import (
	"path/filepath"
	"testing"
	"time"

	"pathpack/internal/config"
	"pathpack/internal/store"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	base := t.TempDir()
	return config.Config{
		ConfigDir:       filepath.Join(base, "config"),
		DataDir:         filepath.Join(base, "data"),
		ReportRetention: "30d",
	}
}

func TestCheckHealthyWithoutDB(t *testing.T) {
	cfg := testConfig(t)

	report := Check(cfg)
	if !report.OK {
		t.Fatalf("expected healthy report, got error %q", report.Error)
	}
	if report.DB.Exists {
		t.Fatal("db should not exist yet")
	}
	if !report.Retention.Valid {
		t.Fatal("default retention should be valid")
	}
}

func TestCheckFlagsInvalidRetention(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReportRetention = "10q"

	report := Check(cfg)
	if report.OK {
		t.Fatal("expected unhealthy report for bad retention")
	}
	if report.Retention.Valid {
		t.Fatal("retention should be flagged invalid")
	}
}

func TestCheckCountsSweeps(t *testing.T) {
	cfg := testConfig(t)

	st, err := store.Open(cfg.DBPath())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	now := store.FormatTime(time.Now())
	sweep := store.Sweep{ID: "S-1", Root: "/srv", StartedAt: now, FinishedAt: now}
	if err := st.RecordSweep(sweep, nil); err != nil {
		st.Close()
		t.Fatalf("record: %v", err)
	}
	st.Close()

	report := Check(cfg)
	if !report.OK {
		t.Fatalf("expected healthy report, got %q", report.Error)
	}
	if !report.DB.Exists || !report.DB.Openable {
		t.Fatalf("db should exist and open: %+v", report.DB)
	}
	if report.DB.Sweeps != 1 {
		t.Fatalf("expected 1 sweep, got %d", report.DB.Sweeps)
	}
}
