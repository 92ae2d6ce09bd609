package main

import (
	"errors"
	"fmt"

	"github.com/jn-tool/jn/internal/editor"
	"github.com/jn-tool/jn/pkg/crypto"
	"github.com/jn-tool/jn/pkg/journal"
	"github.com/jn-tool/jn/pkg/template"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	createWorkspace string
	createEncrypt   bool
)

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVarP(&createWorkspace, "workspace", "w", "", "Workspace to use (defaults to the configured default)")
	createCmd.Flags().BoolVarP(&createEncrypt, "encrypt", "e", false, "Encrypt the entry with a passphrase")
}

var createCmd = &cobra.Command{
	Use:     "create <name>",
	Aliases: []string{"c"},
	Short:   "Create a new journal entry",
	Long: `Create a new journal entry and open it in your editor.

The entry name is an identifier plus an optional extension, e.g.
2024-01-01.md. If a template is configured for the extension, its
placeholders are expanded into the initial content.

Examples:
  # Create today's entry in the default workspace
  jn create 2024-01-01.md

  # Create an encrypted entry in the work workspace
  jn create 2024-01-01.md -w work -e`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := currentWorkspace(createWorkspace)
		if err != nil {
			return err
		}

		id, ext := journal.SplitName(args[0])
		if _, err := store.Stat(ws, id, ext); err == nil {
			return fmt.Errorf("entry %s already exists in workspace %s (hint: jn open %s)", args[0], ws, args[0])
		} else if !errors.Is(err, journal.ErrEntryNotFound) {
			return err
		}

		codec := journal.Plain()
		if createEncrypt {
			key, err := promptNewKey()
			if err != nil {
				return err
			}
			defer crypto.SecureWipe(key)
			if codec, err = journal.Encrypted(key); err != nil {
				return err
			}
		}

		var body string
		if tmpl, ok := cfg.Template(ext); ok {
			body = template.Expand(tmpl, template.Context{Workspace: ws, Title: id})
		}

		content, err := editor.New().EditTemp(args[0], []byte(body))
		if err != nil {
			return err
		}

		if err := store.Write(ws, id, ext, content, codec); err != nil {
			return err
		}

		fmt.Println(color.GreenString("✓") + " Created " + color.CyanString(ws+"/"+args[0]))
		return nil
	},
}
