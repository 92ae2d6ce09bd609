// Package main provides the jn CLI commands.
package main

import (
	"bytes"
	"fmt"
	"os"
	"syscall"

	"github.com/jn-tool/jn/pkg/config"
	"github.com/jn-tool/jn/pkg/crypto"
	"github.com/jn-tool/jn/pkg/journal"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfg   *config.Config
	store *journal.Store
)

var rootCmd = &cobra.Command{
	Use:   "jn",
	Short: "jn is a personal journaling tool with encrypted storage",
	Long: `A journaling tool that keeps dated notes in named workspaces,
optionally encrypted at rest with a passphrase.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// PersistentPreRunE runs before every subcommand and wires the
	// configuration and the journal store.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		root, err := cfg.JournalRoot()
		if err != nil {
			return err
		}
		store = journal.New(root)
		return nil
	},
}

// currentWorkspace resolves and validates the workspace for a command:
// the explicit -w value if given, else the configured default.
func currentWorkspace(explicit string) (string, error) {
	return journal.NormalizeName(cfg.Workspace(explicit))
}

// readPassphrase prompts on stderr and reads a passphrase without echo.
// The caller wipes the returned bytes.
func readPassphrase(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	return passphrase, nil
}

// promptKey prompts once for a passphrase and derives the journal key.
// The caller wipes the returned key.
func promptKey() ([]byte, error) {
	passphrase, err := readPassphrase("Passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.SecureWipe(passphrase)
	return store.DeriveKey(passphrase)
}

// promptNewKey prompts twice for a new passphrase and derives the journal
// key. The caller wipes the returned key.
func promptNewKey() ([]byte, error) {
	first, err := readPassphrase("Passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.SecureWipe(first)

	second, err := readPassphrase("Confirm passphrase: ")
	if err != nil {
		return nil, err
	}
	defer crypto.SecureWipe(second)

	if !bytes.Equal(first, second) {
		return nil, fmt.Errorf("passphrases do not match")
	}
	return store.DeriveKey(first)
}
