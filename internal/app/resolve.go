package app

import (
	"flag"
	"fmt"
	"io"

	"pathpack/internal/canon"
)

type ResolveResult struct {
	Path      string `json:"path"`
	Canonical string `json:"canonical,omitempty"`
	Error     string `json:"error,omitempty"`
}

func runResolve(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var missingOK bool
	fs.BoolVar(&missingOK, "missing-ok", false, "Tolerate a nonexistent final component")
	fs.BoolVar(&missingOK, "m", false, "Shorthand for --missing-ok")
	format := fs.String("format", "", "Output format (json)")
	positional, flagArgs, err := splitFlagArgs(args, map[string]bool{
		"missing-ok": false,
		"m":          false,
		"format":     true,
	})
	if err != nil {
		fmt.Fprintln(errOut, err.Error())
		return 2
	}
	if err := fs.Parse(flagArgs); err != nil {
		return 2
	}

	if len(positional) == 0 {
		fmt.Fprintln(errOut, "missing path")
		return 2
	}

	results := make([]ResolveResult, 0, len(positional))
	failed := false
	for _, path := range positional {
		result := ResolveResult{Path: path}
		canonical, err := canon.Resolve(path, !missingOK)
		if err != nil {
			result.Error = err.Error()
			failed = true
		} else {
			result.Canonical = canonical
		}
		results = append(results, result)
	}

	if *format == "json" {
		if code := writeJSON(out, errOut, results); code != 0 {
			return code
		}
	} else {
		for _, result := range results {
			if result.Error != "" {
				fmt.Fprintf(errOut, "resolve: %s\n", result.Error)
				continue
			}
			fmt.Fprintln(out, result.Canonical)
		}
	}

	if failed {
		return 1
	}
	return 0
}
