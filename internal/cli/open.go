package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/warefloor/pirs/internal/config"
	"github.com/warefloor/pirs/internal/desk"
	"github.com/warefloor/pirs/internal/ledger"
)

// newFormatter builds the output formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// loadConfig resolves thresholds: defaults, overridden by --config when set.
func loadConfig(opts *RootOptions) (config.Config, error) {
	if opts.ConfigPath == "" {
		return config.Default(), nil
	}
	return config.Load(opts.ConfigPath)
}

// openStore opens the ledger at --db.
func openStore(opts *RootOptions) (*ledger.Store, error) {
	store, err := ledger.Open(opts.DBPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open ledger", err)
	}
	return store, nil
}

// openDesk opens the ledger and builds a loaded desk over it.
// The caller owns the returned store and must Close it.
func openDesk(ctx context.Context, opts *RootOptions) (*desk.Desk, *ledger.Store, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "load config", err)
	}

	store, err := openStore(opts)
	if err != nil {
		return nil, nil, err
	}

	d := desk.New(cfg, store)
	if err := d.Load(ctx); err != nil {
		_ = store.Close()
		return nil, nil, WrapExitError(ExitFailure, "load desk", err)
	}
	return d, store, nil
}
