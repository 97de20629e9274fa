package app

import (
	"fmt"
	"strings"
)

// globalFlags are recognized ahead of the subcommand and apply to every
// command; currently just the data-dir override.
type globalFlags struct {
	DataDir string
}

func splitGlobalFlags(args []string) ([]string, globalFlags, error) {
	var rest []string
	var globals globalFlags
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			rest = append(rest, args[i:]...)
			break
		}
		name, value, hasValue := cutFlag(args[i])
		if name != "data-dir" {
			rest = append(rest, args[i])
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				return nil, globals, fmt.Errorf("missing value for --data-dir")
			}
			i++
			value = args[i]
		}
		if strings.TrimSpace(value) == "" {
			return nil, globals, fmt.Errorf("missing value for --data-dir")
		}
		globals.DataDir = value
	}
	return rest, globals, nil
}

// splitFlagArgs separates a command's positional arguments from its flags so
// paths and flags may appear in either order. takesValue names the command's
// flags and whether each consumes the following argument; anything else stays
// positional.
func splitFlagArgs(args []string, takesValue map[string]bool) ([]string, []string, error) {
	var positional []string
	var flagArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		name, _, hasValue := cutFlag(arg)
		wantsValue, known := takesValue[name]
		if name == "" || !known {
			positional = append(positional, arg)
			continue
		}
		flagArgs = append(flagArgs, arg)
		if wantsValue && !hasValue {
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("missing value for --%s", name)
			}
			i++
			flagArgs = append(flagArgs, args[i])
		}
	}
	return positional, flagArgs, nil
}

// cutFlag splits "--name=value" into its parts; name is empty when arg is
// not flag-shaped.
func cutFlag(arg string) (name, value string, hasValue bool) {
	if !strings.HasPrefix(arg, "-") {
		return "", "", false
	}
	name = strings.TrimLeft(arg, "-")
	if name == "" {
		return "", "", false
	}
	name, value, hasValue = strings.Cut(name, "=")
	return name, value, hasValue
}
