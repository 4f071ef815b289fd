package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/feedstore/internal/config"
	"github.com/roach88/feedstore/internal/transit"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	WriteConfig bool
}

// InitResult is the init command's output.
type InitResult struct {
	Database string `json:"database"`
	Tables   int    `json:"tables"`
	Config   string `json:"config,omitempty"`
}

func (r InitResult) String() string {
	s := fmt.Sprintf("Initialized %s (%d tables)", r.Database, r.Tables)
	if r.Config != "" {
		s += fmt.Sprintf("\nWrote %s", r.Config)
	}
	return s
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the feed tables and indices",
		Long: `Create every feed table and its indices in the database.

Tables are created once; running init against an initialized database fails.

Examples:
  feedstore init --db ./feeds.db
  feedstore init --db ./feeds.db --write-config`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.WriteConfig, "write-config", false, "also write the effective settings to the config file")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	cur, err := st.Cursor()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to get cursor", err)
	}
	defer cur.Close()

	if err := transit.CreateAll(ctx, cur); err != nil {
		return WrapExitError(ExitFailure, "failed to create tables", err)
	}

	result := InitResult{
		Database: st.Path(),
		Tables:   len(transit.Schema()),
	}

	if opts.WriteConfig {
		path := opts.Config
		if path == "" {
			path = config.DefaultFile
		}
		if err := opts.settings().Save(path); err != nil {
			return WrapExitError(ExitCommandError, "failed to write config", err)
		}
		result.Config = path
	}

	opts.Logger().Info("database initialized", "path", result.Database, "tables", result.Tables)
	return opts.formatter(cmd).Success(result)
}
