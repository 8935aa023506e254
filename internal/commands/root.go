package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/buildinfo"
	"github.com/daybook-dev/daybook/internal/categories"
	"github.com/daybook-dev/daybook/internal/config"
	"github.com/daybook-dev/daybook/internal/ledger"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "daybook",
		Short:   "Plain-text personal finance ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAddCommand())
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newDueCommand())
	rootCmd.AddCommand(newSavingsCommand())
	rootCmd.AddCommand(newRemindCommand())

	return rootCmd
}

// ledgerEnv bundles the services every data command needs.
type ledgerEnv struct {
	root string
	cfg  *config.Config
	cats *categories.Service
	led  *ledger.Service
}

// openLedger resolves dir and loads config, categories, and the ledger service.
func openLedger(dir string) (*ledgerEnv, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, "daybook.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading config (is this a daybook directory?): %w", err)
	}

	cats, err := categories.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}

	return &ledgerEnv{
		root: root,
		cfg:  cfg,
		cats: cats,
		led:  ledger.NewService(root, cats),
	}, nil
}
