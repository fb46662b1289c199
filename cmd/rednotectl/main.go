package main

import (
	"os"
)

func main() {
	if err := execute(&app{}, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// execute runs the command line and releases storage whether or not the
// command succeeded.
func execute(a *app, args []string) error {
	defer a.close()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	return cmd.Execute()
}
