package main

import (
	"fmt"

	"github.com/jn-tool/jn/internal/cli"
	"github.com/jn-tool/jn/pkg/journal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var removeWorkspace string

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().StringVarP(&removeWorkspace, "workspace", "w", "", "Workspace to use (defaults to the configured default)")
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>...",
	Aliases: []string{"rm"},
	Short:   "Remove journal entries",
	Long: `Remove one or more journal entries.

Names may contain glob characters (*, ?, [...]) which are expanded
against the entries in the workspace.

Examples:
  # Remove a single entry
  jn remove 2024-01-01.md

  # Remove every January entry in the work workspace
  jn remove '2024-01-*' -w work`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := currentWorkspace(removeWorkspace)
		if err != nil {
			return err
		}

		entries, err := listEntries(ws)
		if err != nil {
			return err
		}
		byName := make(map[string]journal.Entry, len(entries))
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			byName[e.Name()] = e
			names = append(names, e.Name())
		}

		var targets []string
		for _, pattern := range args {
			matched, err := cli.ExpandPattern(pattern, names)
			if err != nil {
				return err
			}
			targets = append(targets, matched...)
		}

		seen := make(map[string]bool, len(targets))
		for _, name := range cli.SortNames(targets) {
			if seen[name] {
				continue
			}
			seen[name] = true
			entry := byName[name]
			if err := store.Remove(ws, entry.ID, entry.Ext); err != nil {
				return err
			}
			fmt.Println(color.GreenString("✓") + " Removed " + color.CyanString(ws+"/"+name))
		}
		return nil
	},
}
