package main

import (
	"fmt"
	"os"

	"github.com/zeu5/room-explorer/benchmarks"
)

// main entry point to all the commands
func main() {
	// rootCommand parses the shared flags and dispatches to a subcommand
	rootCommand := benchmarks.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
