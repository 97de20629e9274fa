package app

import (
	"fmt"
	"io"
	"strings"

	"pathpack/internal/config"
)

func Run(args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		writeUsage(out)
		return 2
	}

	parsedArgs, globals, err := splitGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(errOut, err.Error())
		writeUsage(errOut)
		return 2
	}
	if strings.TrimSpace(globals.DataDir) != "" {
		config.SetDataDirOverride(globals.DataDir)
	}
	args = parsedArgs
	if len(args) == 0 {
		writeUsage(out)
		return 2
	}

	if isVersionCommand(args[0]) {
		fmt.Fprintln(out, VersionString())
		return 0
	}

	cmd := strings.ToLower(args[0])
	switch cmd {
	case "resolve":
		return runResolve(args[1:], out, errOut)
	case "readlink":
		return runReadlink(args[1:], out, errOut)
	case "sweep":
		return runSweep(args[1:], out, errOut)
	case "reports":
		return runReports(args[1:], out, errOut)
	case "doctor":
		return runDoctor(args[1:], out, errOut)
	case "help", "-h", "--help":
		writeUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n", cmd)
		writeUsage(errOut)
		return 2
	}
}

func isVersionCommand(arg string) bool {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "version", "--version", "-v":
		return true
	default:
		return false
	}
}

func loadConfig() (config.Config, error) {
	return config.Load()
}
