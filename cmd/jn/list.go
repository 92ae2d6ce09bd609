package main

import (
	"fmt"

	"github.com/jn-tool/jn/internal/cli"
	"github.com/jn-tool/jn/pkg/journal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	listWorkspace string
	listAll       bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listWorkspace, "workspace", "w", "", "Workspace to list (defaults to the configured default)")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "List entries in every workspace")
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List journal entries",
	Long: `List journal entries grouped by workspace.

Encrypted entries are marked with a lock indicator.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var workspaces []string
		if listAll {
			var err error
			if workspaces, err = store.Workspaces(); err != nil {
				return err
			}
		} else {
			ws, err := currentWorkspace(listWorkspace)
			if err != nil {
				return err
			}
			workspaces = []string{ws}
		}

		bold := color.New(color.Bold)
		for _, ws := range workspaces {
			entries, err := store.Entries(ws)
			if err != nil {
				return err
			}

			var names []string
			for entry := range entries {
				name := entry.Name()
				if entry.Encrypted {
					name += " " + color.YellowString("[encrypted]")
				}
				names = append(names, name)
			}
			names = cli.SortNames(names)

			bold.Println(ws)
			if len(names) == 0 {
				fmt.Println("    (empty)")
			}
			for _, name := range names {
				fmt.Println("    " + name)
			}
		}
		return nil
	},
}

func listEntries(ws string) ([]journal.Entry, error) {
	seq, err := store.Entries(ws)
	if err != nil {
		return nil, err
	}
	var entries []journal.Entry
	for entry := range seq {
		entries = append(entries, entry)
	}
	return entries, nil
}
