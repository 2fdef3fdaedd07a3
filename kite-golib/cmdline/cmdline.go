package cmdline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	arg "github.com/alexflint/go-arg"
)

// Command represents an action that can be run from the command line
type Command struct {
	Name     string
	Synopsis string
	Args     Handler
}

// Handler represents a function that gets called for an action
type Handler interface {
	Handle() error
}

// Validator is the interface for custom validation of command line arguments
type Validator interface {
	Validate() error
}

// Exit codes returned by Dispatch
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

func prog(args []string) string {
	if len(args) > 0 {
		return filepath.Base(args[0])
	}
	return "program"
}

func writeUsage(w io.Writer, prog string, cmds ...Command) {
	fmt.Fprintf(w, "Usage: %s COMMAND [ARGS]\n", prog)
	fmt.Fprintf(w, "Command can be one of:\n")
	for _, cmd := range cmds {
		fmt.Fprintf(w, "  %-20s %s\n", cmd.Name, cmd.Synopsis)
	}
	fmt.Fprintf(w, "  %-20s %s\n", "help", "display this help and exit")
	fmt.Fprintf(w, "  %-20s %s\n", "help COMMAND", "display help for command and exit")
}

func find(name string, cmds []Command) *Command {
	for i := range cmds {
		if cmds[i].Name == name {
			return &cmds[i]
		}
	}
	return nil
}

// Dispatch parses args (args[0] being the program name), runs the selected
// command and returns the process exit code. Usage and errors go to w.
func Dispatch(w io.Writer, args []string, cmds ...Command) int {
	prog := prog(args)
	if len(args) < 2 {
		writeUsage(w, prog, cmds...)
		fmt.Fprintln(w, "\nError: no command provided")
		return ExitUsage
	}

	var help bool
	action := args[1]
	if action == "help" {
		if len(args) < 3 {
			// write help for overall command
			writeUsage(w, prog, cmds...)
			fmt.Fprintf(w, "\nFor help on a specific command use %s help COMMAND\n", prog)
			return ExitOK
		}
		help = true
		action = args[2]
	}

	cmd := find(action, cmds)
	if cmd == nil {
		writeUsage(w, prog, cmds...)
		fmt.Fprintln(w, "\nError: unknown command", action)
		return ExitUsage
	}

	// Create parser for this command
	config := arg.Config{
		Program: prog + " " + action,
	}
	parser, err := arg.NewParser(config, cmd.Args)
	if err != nil {
		fmt.Fprintln(w, err)
		return ExitFailure
	}

	// Show help for this command if requested
	if help {
		parser.WriteHelp(w)
		return ExitOK
	}

	// Parse the command line args
	switch err := parser.Parse(args[2:]); {
	case err == arg.ErrHelp:
		parser.WriteHelp(w)
		return ExitOK
	case err != nil:
		parser.WriteUsage(w)
		fmt.Fprintln(w, "error:", err)
		return ExitUsage
	}

	// Validate
	if v, ok := cmd.Args.(Validator); ok {
		if err := v.Validate(); err != nil {
			parser.WriteUsage(w)
			fmt.Fprintln(w, "error:", err)
			return ExitUsage
		}
	}

	// Dispatch the handler
	if err := cmd.Args.Handle(); err != nil {
		fmt.Fprintln(w, err)
		return ExitFailure
	}
	return ExitOK
}

// MustDispatch dispatches one of the commands from os.Args and exits the
// process if the command fails
func MustDispatch(cmds ...Command) {
	if code := Dispatch(os.Stdout, os.Args, cmds...); code != ExitOK {
		os.Exit(code)
	}
}
