package app

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"pathpack/internal/canon"
	"pathpack/internal/sysx"
)

func runReadlink(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("readlink", flag.ContinueOnError)
	fs.SetOutput(errOut)
	follow := fs.Bool("f", false, "Canonicalize fully, tolerating a missing final component")
	positional, flagArgs, err := splitFlagArgs(args, map[string]bool{
		"f": false,
	})
	if err != nil {
		fmt.Fprintln(errOut, err.Error())
		return 2
	}
	if err := fs.Parse(flagArgs); err != nil {
		return 2
	}

	path := strings.TrimSpace(strings.Join(positional, " "))
	if path == "" {
		fmt.Fprintln(errOut, "missing path")
		return 2
	}

	if *follow {
		canonical, err := canon.Resolve(path, false)
		if err != nil {
			fmt.Fprintf(errOut, "readlink: %s\n", err.Error())
			return 1
		}
		fmt.Fprintln(out, canonical)
		return 0
	}

	target, err := sysx.Readlink(path)
	if err != nil {
		fmt.Fprintf(errOut, "readlink %s: %v\n", path, err)
		return 1
	}
	fmt.Fprintln(out, target)
	return 0
}
