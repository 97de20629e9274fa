package app

import (
	"flag"
	"fmt"
	"io"

	"pathpack/internal/health"
)

func runDoctor(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(errOut)
	jsonOut := fs.Bool("json", false, "Output machine-readable JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(errOut, "config error: %v\n", err)
		return 1
	}

	report := health.Check(cfg)

	if *jsonOut {
		if code := writeJSON(out, errOut, report); code != 0 {
			return code
		}
		if !report.OK {
			return 1
		}
		return 0
	}

	writeDoctorReport(out, report)
	if !report.OK {
		return 1
	}
	return 0
}

func writeDoctorReport(out io.Writer, report health.Report) {
	if report.OK {
		fmt.Fprintln(out, "pathpack doctor: ok")
	} else if report.Error != "" {
		fmt.Fprintf(out, "pathpack doctor: error: %s\n", report.Error)
	} else {
		fmt.Fprintln(out, "pathpack doctor: error")
	}

	fmt.Fprintf(out, "config_dir: %s\n", report.ConfigDir)
	fmt.Fprintf(out, "data_dir: %s\n", report.DataDir)
	if report.Retention.Span != "" {
		status := "ok"
		if !report.Retention.Valid {
			status = "invalid"
		}
		fmt.Fprintf(out, "retention: %s (%s)\n", report.Retention.Span, status)
	}
	if report.DB.Exists {
		fmt.Fprintf(out, "db: %s (%d bytes, %d sweeps)\n", report.DB.Path, report.DB.SizeBytes, report.DB.Sweeps)
	} else {
		fmt.Fprintf(out, "db: %s (missing)\n", report.DB.Path)
	}
}
