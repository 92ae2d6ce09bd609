package main

import (
	"fmt"

	"github.com/jn-tool/jn/pkg/journal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var renameWorkspace string

func init() {
	rootCmd.AddCommand(renameCmd)

	renameCmd.Flags().StringVarP(&renameWorkspace, "workspace", "w", "", "Workspace to use (defaults to the configured default)")
}

var renameCmd = &cobra.Command{
	Use:     "rename <old> <new>",
	Aliases: []string{"mv"},
	Short:   "Rename a journal entry",
	Long: `Rename a journal entry within its workspace.

The entry's content and encryption state are preserved.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := currentWorkspace(renameWorkspace)
		if err != nil {
			return err
		}

		oldID, oldExt := journal.SplitName(args[0])
		newID, newExt := journal.SplitName(args[1])
		if err := store.Rename(ws, oldID, oldExt, newID, newExt); err != nil {
			return err
		}

		fmt.Println(color.GreenString("✓") + " Renamed " +
			color.CyanString(ws+"/"+args[0]) + " to " + color.CyanString(ws+"/"+args[1]))
		return nil
	},
}
