package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", color.RedString("error"), err)
		os.Exit(1)
	}
}
