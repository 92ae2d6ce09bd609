package main

import (
	"bytes"
	"fmt"

	"github.com/jn-tool/jn/internal/editor"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	openWorkspace string
	openMatches   bool
)

func init() {
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().StringVarP(&openWorkspace, "workspace", "w", "", "Workspace to use (defaults to the configured default)")
	openCmd.Flags().BoolVarP(&openMatches, "matches", "m", false, "Match the name as a substring instead of exactly")
}

var openCmd = &cobra.Command{
	Use:     "open <name>",
	Aliases: []string{"o"},
	Short:   "Open an existing journal entry in your editor",
	Long: `Open an existing journal entry in your editor.

Encrypted entries prompt for the passphrase before opening and are
re-encrypted on save. If the content is unchanged the entry is left
untouched.

Examples:
  # Open an entry by exact name
  jn open 2024-01-01.md

  # Open the single entry containing "01-01" in the work workspace
  jn open 01-01 -w work -m`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := currentWorkspace(openWorkspace)
		if err != nil {
			return err
		}

		entry, err := findEntry(ws, args[0], openMatches)
		if err != nil {
			return err
		}

		content, codec, done, err := readEntry(entry)
		if err != nil {
			return err
		}
		defer done()

		edited, err := editor.New().EditTemp(entry.Name(), content)
		if err != nil {
			return err
		}
		if bytes.Equal(edited, content) {
			fmt.Println("No changes to " + color.CyanString(ws+"/"+entry.Name()))
			return nil
		}

		if err := store.Write(ws, entry.ID, entry.Ext, edited, codec); err != nil {
			return err
		}

		fmt.Println(color.GreenString("✓") + " Saved " + color.CyanString(ws+"/"+entry.Name()))
		return nil
	},
}
