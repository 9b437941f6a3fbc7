package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valeriy-chepelev/costsheet/internal/config"
	"github.com/valeriy-chepelev/costsheet/internal/journal"
)

var journalCmd = GroupCommand{
	Use:   "journal",
	Short: "Inspect or reset recorded allocation runs",
	Subcommands: []*cobra.Command{
		correctionsCmd,
		forgetCmd,
	},
}.Build()

// openJournal opens the journal configured at configPath.
func openJournal(cmd *cobra.Command, configPath string) (context.Context, *journal.Store, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Files.Journal == "" {
		return nil, nil, fmt.Errorf("no journal configured")
	}

	store, err := journal.Open(cfg.Files.Journal)
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx, store, nil
}
