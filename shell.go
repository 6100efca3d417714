package cmdstreamer

import (
	"fmt"
	"strings"
)

// Shell describes the program used to interpret a command: the
// program itself plus the argv prefix that makes it read a command
// string, e.g. {"/bin/sh", ["-c"]}.  The command handed to New is
// passed as one argument; no splitting or meta-interpretation happens
// on this side of the exec.
type Shell struct {
	// Program is either the absolute path to the executable, or a
	// $PATH relative command name.
	Program string

	// Options has the arguments, flags and flag arguments placed
	// before the command string.
	Options []string
}

// LocalShell returns the bourne shell found on most platforms.
func LocalShell() Shell {
	return Shell{Program: "/bin/sh", Options: []string{"-c"}}
}

// Validate returns an error if there's a problem in the Shell.
func (s Shell) Validate() error {
	if s.Program == "" {
		return fmt.Errorf("must specify Program of the shell to run")
	}
	return nil
}

// args returns the argv tail for the given command.
func (s Shell) args(command string) []string {
	return append(append([]string{}, s.Options...), command)
}

func (s Shell) String() string {
	return strings.Join(append([]string{s.Program}, s.Options...), " ")
}
