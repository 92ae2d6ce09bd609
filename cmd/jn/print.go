package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	printWorkspace string
	printMatches   bool
)

func init() {
	rootCmd.AddCommand(printCmd)

	printCmd.Flags().StringVarP(&printWorkspace, "workspace", "w", "", "Workspace to use (defaults to the configured default)")
	printCmd.Flags().BoolVarP(&printMatches, "matches", "m", false, "Match the name as a substring instead of exactly")
}

var printCmd = &cobra.Command{
	Use:     "print <name>",
	Aliases: []string{"p", "cat"},
	Short:   "Print a journal entry to stdout",
	Long: `Print a journal entry's content to stdout.

Encrypted entries prompt for the passphrase. The plaintext is written
as-is, so the output can be piped to other tools.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := currentWorkspace(printWorkspace)
		if err != nil {
			return err
		}

		entry, err := findEntry(ws, args[0], printMatches)
		if err != nil {
			return err
		}

		content, _, done, err := readEntry(entry)
		if err != nil {
			return err
		}
		defer done()

		_, err = os.Stdout.Write(content)
		return err
	},
}
