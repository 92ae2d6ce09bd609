package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func init() {
	rootCmd.AddCommand(replCmd)
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run commands interactively",
	Long: `Run jn commands in an interactive loop.

Each line is parsed as a jn command line, e.g. "list -a" or
"open 2024-01-01.md -w work". Type exit or quit to leave.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Fprint(os.Stderr, ">> ")
			if !scanner.Scan() {
				fmt.Fprintln(os.Stderr)
				return scanner.Err()
			}

			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}
			switch fields[0] {
			case "exit", "quit":
				return nil
			case "repl":
				fmt.Fprintln(os.Stderr, color.YellowString("already in a repl"))
				continue
			}

			resetFlags(rootCmd)
			rootCmd.SetArgs(fields)
			if err := rootCmd.Execute(); err != nil {
				fmt.Fprintln(os.Stderr, color.RedString("error")+": "+err.Error())
			}
		}
	},
}

// resetFlags restores every flag in the command tree to its default so a
// flag set on one repl line does not leak into the next.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
