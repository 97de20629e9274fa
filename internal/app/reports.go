package app

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"pathpack/internal/store"
	"pathpack/internal/timespan"
)

type PruneResponse struct {
	Pruned int    `json:"pruned"`
	Cutoff string `json:"cutoff"`
}

func runReports(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("reports", flag.ContinueOnError)
	fs.SetOutput(errOut)
	limit := fs.Int("limit", 10, "Max sweeps to list")
	show := fs.String("show", "", "Show the entries of one sweep")
	prune := fs.String("prune", "", "Delete sweeps older than a span (e.g. 7d)")
	expire := fs.Bool("expire", false, "Delete sweeps older than the configured report_retention")
	format := fs.String("format", "", "Output format (json)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(errOut, "config error: %v\n", err)
		return 1
	}

	st, err := store.Open(cfg.DBPath())
	if err != nil {
		fmt.Fprintf(errOut, "store open error: %v\n", err)
		return 1
	}
	defer st.Close()

	span := strings.TrimSpace(*prune)
	if span == "" && *expire {
		span = strings.TrimSpace(cfg.ReportRetention)
		if span == "" {
			fmt.Fprintln(errOut, "report_retention is not configured")
			return 2
		}
	}
	if span != "" {
		age, err := timespan.Parse(span)
		if err != nil {
			fmt.Fprintln(errOut, err.Error())
			return 2
		}
		cutoff := time.Now().UTC().Add(-age)
		pruned, err := st.PruneSweeps(cutoff)
		if err != nil {
			fmt.Fprintf(errOut, "prune error: %v\n", err)
			return 1
		}
		if *format == "json" {
			return writeJSON(out, errOut, PruneResponse{Pruned: pruned, Cutoff: store.FormatTime(cutoff)})
		}
		fmt.Fprintf(out, "pruned %d sweeps older than %s\n", pruned, span)
		return 0
	}

	if sweepID := strings.TrimSpace(*show); sweepID != "" {
		entries, err := st.SweepEntries(sweepID)
		if err != nil {
			fmt.Fprintf(errOut, "show error: %v\n", err)
			return 1
		}
		if *format == "json" {
			return writeJSON(out, errOut, entries)
		}
		for _, entry := range entries {
			fmt.Fprintf(out, "%-6s  %s -> %s\n", entry.Status, entry.Path, entry.Target)
		}
		return 0
	}

	sweeps, err := st.ListSweeps(*limit)
	if err != nil {
		fmt.Fprintf(errOut, "list error: %v\n", err)
		return 1
	}
	if *format == "json" {
		return writeJSON(out, errOut, sweeps)
	}
	if len(sweeps) == 0 {
		fmt.Fprintln(out, "no recorded sweeps")
		return 0
	}
	for _, sweep := range sweeps {
		fmt.Fprintf(out, "%s  %s  %d symlinks, %d broken, %d loops\n", sweep.ID, sweep.Root, sweep.Total, sweep.Broken, sweep.Loops)
	}
	return 0
}
