package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"pathpack/internal/canon"
	"pathpack/internal/pidfile"
	"pathpack/internal/store"
	"pathpack/internal/sysx"

	ignore "github.com/sabhiram/go-gitignore"
)

type SweepResponse struct {
	Sweep   store.Sweep   `json:"sweep"`
	Entries []store.Entry `json:"entries"`
}

type ignoreMatcher struct {
	matchers []*ignore.GitIgnore
}

func (m ignoreMatcher) Matches(path string) bool {
	for _, matcher := range m.matchers {
		if matcher != nil && matcher.MatchesPath(path) {
			return true
		}
	}
	return false
}

func runSweep(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	fs.SetOutput(errOut)
	report := fs.Bool("report", false, "Record the sweep in the report store")
	lock := fs.Bool("lock", false, "Serialize concurrent sweeps with a pidfile")
	format := fs.String("format", "", "Output format (json)")
	positional, flagArgs, err := splitFlagArgs(args, map[string]bool{
		"report": false,
		"lock":   false,
		"format": true,
	})
	if err != nil {
		fmt.Fprintln(errOut, err.Error())
		return 2
	}
	if err := fs.Parse(flagArgs); err != nil {
		return 2
	}

	rootArg := strings.TrimSpace(strings.Join(positional, " "))
	if rootArg == "" {
		fmt.Fprintln(errOut, "missing root")
		return 2
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(errOut, "config error: %v\n", err)
		return 1
	}

	if *lock {
		held, err := pidfile.Acquire(cfg.ResolvedPidDir(), "pth-sweep")
		if err != nil {
			fmt.Fprintf(errOut, "sweep lock: %v\n", err)
			return 1
		}
		defer held.Release()
	}

	root, err := canon.Resolve(rootArg, true)
	if err != nil {
		fmt.Fprintf(errOut, "sweep: %s\n", err.Error())
		return 1
	}

	startedAt := time.Now().UTC()
	entries, walkErr := sweepTree(root, loadIgnoreMatcher(root, cfg.SweepIgnore))
	if walkErr != nil {
		fmt.Fprintf(errOut, "sweep walk: %v\n", walkErr)
		return 1
	}
	finishedAt := time.Now().UTC()

	sweep := store.Sweep{
		ID:         store.NewSweepID(),
		Root:       root,
		StartedAt:  store.FormatTime(startedAt),
		FinishedAt: store.FormatTime(finishedAt),
		Total:      len(entries),
	}
	for _, entry := range entries {
		switch entry.Status {
		case "broken":
			sweep.Broken++
		case "loop":
			sweep.Loops++
		}
	}

	if *report {
		st, err := store.Open(cfg.DBPath())
		if err != nil {
			fmt.Fprintf(errOut, "store open error: %v\n", err)
			return 1
		}
		defer st.Close()
		if err := st.RecordSweep(sweep, entries); err != nil {
			fmt.Fprintf(errOut, "store record error: %v\n", err)
			return 1
		}
	}

	if *format == "json" {
		return writeJSON(out, errOut, SweepResponse{Sweep: sweep, Entries: entries})
	}

	fmt.Fprintf(out, "sweep %s: %d symlinks, %d broken, %d loops\n", root, sweep.Total, sweep.Broken, sweep.Loops)
	for _, entry := range entries {
		if entry.Status == "ok" {
			continue
		}
		fmt.Fprintf(out, "  %-6s  %s -> %s\n", entry.Status, entry.Path, entry.Target)
	}
	if *report {
		fmt.Fprintf(out, "recorded as %s\n", sweep.ID)
	}
	return 0
}

// sweepTree walks root and classifies every symlink that is not ignored.
func sweepTree(root string, matcher ignoreMatcher) ([]store.Entry, error) {
	var entries []store.Entry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable subtree is reported, not fatal.
			entries = append(entries, store.Entry{Path: path, Status: "error", Detail: err.Error()})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if matcher.Matches(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		entries = append(entries, classifySymlink(path))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func classifySymlink(path string) store.Entry {
	entry := store.Entry{Path: path}
	if target, err := sysx.Readlink(path); err == nil {
		entry.Target = target
	}

	canonical, err := canon.Resolve(path, true)
	switch {
	case err == nil:
		entry.Status = "ok"
		entry.Detail = canonical
	case errors.Is(err, canon.ErrNotFound):
		entry.Status = "broken"
	case errors.Is(err, canon.ErrTooManySymlinks):
		entry.Status = "loop"
	case errors.Is(err, canon.ErrPermissionDenied):
		entry.Status = "denied"
	default:
		entry.Status = "error"
		entry.Detail = err.Error()
	}
	return entry
}

func loadIgnoreMatcher(root string, extra []string) ignoreMatcher {
	matchers := []*ignore.GitIgnore{}
	matchers = append(matchers, ignore.CompileIgnoreLines(defaultIgnoreLines()...))
	if len(extra) > 0 {
		matchers = append(matchers, ignore.CompileIgnoreLines(extra...))
	}

	gitignorePath := filepath.Join(root, ".gitignore")
	if matcher, err := ignore.CompileIgnoreFile(gitignorePath); err == nil {
		matchers = append(matchers, matcher)
	}
	pthIgnorePath := filepath.Join(root, ".pthignore")
	if matcher, err := ignore.CompileIgnoreFile(pthIgnorePath); err == nil {
		matchers = append(matchers, matcher)
	}
	return ignoreMatcher{matchers: matchers}
}

func defaultIgnoreLines() []string {
	return []string{
		".git/",
		"node_modules/",
		"venv/",
		".venv/",
		"__pycache__/",
		".gradle/",
	}
}
