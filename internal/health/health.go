// Package health inspects the tool's own plumbing: config validity, data
// directory, and the sweep-report database.
package health

import (
	"fmt"
	"os"

	"pathpack/internal/config"
	"pathpack/internal/store"
	"pathpack/internal/timespan"
)

type Report struct {
	OK        bool      `json:"ok"`
	ConfigDir string    `json:"config_dir"`
	DataDir   string    `json:"data_dir"`
	Retention Retention `json:"retention"`
	DB        DBReport  `json:"db"`
	Error     string    `json:"error,omitempty"`
}

type Retention struct {
	Span  string `json:"span"`
	Valid bool   `json:"valid"`
}

type DBReport struct {
	Path      string `json:"path"`
	Exists    bool   `json:"exists"`
	SizeBytes int64  `json:"size_bytes"`
	Openable  bool   `json:"openable"`
	Sweeps    int    `json:"sweeps"`
}

// Check verifies the configuration and, when the report database already
// exists, that it opens and answers a query. A missing database is healthy:
// it appears on the first recorded sweep.
func Check(cfg config.Config) Report {
	report := Report{
		OK:        true,
		ConfigDir: cfg.ConfigDir,
		DataDir:   cfg.ResolvedDataDir(),
	}

	report.Retention.Span = cfg.ReportRetention
	if cfg.ReportRetention != "" {
		if _, err := timespan.Parse(cfg.ReportRetention); err != nil {
			report.Retention.Valid = false
			report.OK = false
			report.Error = fmt.Sprintf("report_retention: %v", err)
		} else {
			report.Retention.Valid = true
		}
	} else {
		report.Retention.Valid = true
	}

	if err := os.MkdirAll(report.DataDir, 0o755); err != nil {
		report.OK = false
		report.Error = fmt.Sprintf("data dir: %v", err)
		return report
	}

	report.DB.Path = cfg.DBPath()
	info, err := os.Stat(report.DB.Path)
	if err == nil {
		report.DB.Exists = true
		report.DB.SizeBytes = info.Size()
	}

	if report.DB.Exists {
		st, err := store.Open(report.DB.Path)
		if err != nil {
			report.OK = false
			report.Error = fmt.Sprintf("store: %v", err)
			return report
		}
		defer st.Close()
		report.DB.Openable = true

		sweeps, err := st.ListSweeps(1000)
		if err != nil {
			report.OK = false
			report.Error = fmt.Sprintf("store query: %v", err)
			return report
		}
		report.DB.Sweeps = len(sweeps)
	}

	return report
}
