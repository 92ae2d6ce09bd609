package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jn-tool/jn/pkg/crypto"
	"github.com/jn-tool/jn/pkg/journal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	searchWorkspace  string
	searchAll        bool
	searchIgnoreCase bool
	searchDecrypt    bool
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchWorkspace, "workspace", "w", "", "Workspace to search (defaults to the configured default)")
	searchCmd.Flags().BoolVarP(&searchAll, "all", "a", false, "Search every workspace")
	searchCmd.Flags().BoolVarP(&searchIgnoreCase, "ignore-case", "i", false, "Case-insensitive matching")
	searchCmd.Flags().BoolVarP(&searchDecrypt, "decrypt", "d", false, "Also search encrypted entries (prompts for the passphrase)")
}

var searchCmd = &cobra.Command{
	Use:     "search <pattern>",
	Aliases: []string{"grep"},
	Short:   "Search journal entries",
	Long: `Search journal entry content with a regular expression.

Matching lines are printed with their entry name and line number.
Encrypted entries are skipped unless --decrypt is given; entries the
passphrase cannot decrypt are skipped rather than failing the search.

Examples:
  # Search the default workspace
  jn search 'standup'

  # Case-insensitive search across all workspaces, encrypted included
  jn search -ai -d 'project x'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := args[0]
		if searchIgnoreCase {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", args[0], err)
		}

		var workspaces []string
		if searchAll {
			if workspaces, err = store.Workspaces(); err != nil {
				return err
			}
		} else {
			ws, err := currentWorkspace(searchWorkspace)
			if err != nil {
				return err
			}
			workspaces = []string{ws}
		}

		codec := journal.Plain()
		if searchDecrypt {
			key, err := promptKey()
			if err != nil {
				return err
			}
			defer crypto.SecureWipe(key)
			if codec, err = journal.Encrypted(key); err != nil {
				return err
			}
		}

		header := color.New(color.Bold, color.FgMagenta)
		skipped := 0
		for _, ws := range workspaces {
			entries, err := listEntries(ws)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				if entry.Encrypted && !searchDecrypt {
					skipped++
					continue
				}
				entryCodec := journal.Plain()
				if entry.Encrypted {
					entryCodec = codec
				}
				content, err := store.Read(ws, entry.ID, entry.Ext, entryCodec)
				if err != nil {
					skipped++
					continue
				}
				printMatches := false
				for i, line := range strings.Split(string(content), "\n") {
					if !re.MatchString(line) {
						continue
					}
					if !printMatches {
						header.Println(ws + "/" + entry.Name())
						printMatches = true
					}
					fmt.Printf("%s: %s\n", color.GreenString("%d", i+1), line)
				}
			}
		}
		if skipped > 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("skipped %d unreadable or encrypted entries", skipped))
		}
		return nil
	},
}
