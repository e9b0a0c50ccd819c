// main is the entry point for the workbench CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/workbench/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
