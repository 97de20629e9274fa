package app

import (
	"io"
	"os"
)

func writeUsage(w io.Writer) {
	useColor := shouldColorize(w)
	title := colorize(useColor, "pathpack - canonical path toolkit")
	usage := colorize(useColor, "Usage:")
	commands := colorize(useColor, "Commands:")

	io.WriteString(w, title+"\n\n")
	io.WriteString(w, usage+"\n")
	io.WriteString(w, "  pth [--data-dir <path>] <command> [options]\n\n")
	io.WriteString(w, colorize(useColor, "Global options:")+"\n")
	io.WriteString(w, "  --data-dir <path>  Override data dir (PTH_DATA_DIR)\n\n")
	io.WriteString(w, "Version:\n")
	io.WriteString(w, "  pth version | pth --version | pth -v\n\n")
	io.WriteString(w, commands+"\n")
	io.WriteString(w, "  resolve         pth resolve [-m|--missing-ok] [--format json] <path>...\n")
	io.WriteString(w, "  readlink        pth readlink [-f] <path>\n")
	io.WriteString(w, "  sweep           pth sweep [--report] [--lock] [--format json] <root>\n")
	io.WriteString(w, "  reports         pth reports [--limit 10] [--show <sweep_id>] [--prune <span>] [--expire] [--format json]\n")
	io.WriteString(w, "  doctor          pth doctor [--json]\n")
}

func shouldColorize(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func colorize(enabled bool, text string) string {
	if !enabled {
		return text
	}
	const purple = "\x1b[35m"
	const bold = "\x1b[1m"
	const reset = "\x1b[0m"
	return bold + purple + text + reset
}
