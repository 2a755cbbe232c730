package main

import (
	"os"
)

// Version is set at build time.
var Version = "0.1.0"

func main() {
	if err := execute(newRootCmd(os.Stdin, os.Stdout, os.Stderr), os.Stderr); err != nil {
		os.Exit(1)
	}
}
