package main

import (
	"fmt"
	"os"
)

// Exit codes for the different failure modes
const (
	ExitSuccess = 0 // Run completed, even if some conversations failed
	ExitError   = 1 // Fatal error: bad input file, unusable output root
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitError)
	}
}
