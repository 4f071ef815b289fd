package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/feedstore/internal/persist"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	Where    []string
	Tolerant bool
	All      bool
}

// DeleteResult is the delete command's output.
type DeleteResult struct {
	Table   string `json:"table"`
	Deleted int64  `json:"deleted"`
}

func (r DeleteResult) String() string {
	return fmt.Sprintf("Deleted %d rows from %s", r.Deleted, r.Table)
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <table>",
		Short: "Delete records matching filters",
		Long: `Delete every record of a table matching the given filters.

Deleting nothing is an error unless --tolerant is set. Deleting without
filters empties the table and requires --all.

Examples:
  feedstore delete stop_times --where trip_id=T1
  feedstore delete stops --where stop_id=S9 --tolerant
  feedstore delete feed_loads --all`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Where, "where", "w", nil, "filter as name=value (repeatable)")
	cmd.Flags().BoolVar(&opts.Tolerant, "tolerant", false, "do not fail when nothing matches")
	cmd.Flags().BoolVar(&opts.All, "all", false, "allow deleting without filters")

	return cmd
}

func runDelete(opts *DeleteOptions, table string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	def, err := lookupTable(table)
	if err != nil {
		return err
	}
	fields, err := parseWhere(def, opts.Where)
	if err != nil {
		return err
	}
	if len(fields) == 0 && !opts.All {
		return NewExitError(ExitCommandError, "refusing to delete every row without --all")
	}
	if len(fields) > 0 && opts.All {
		return NewExitError(ExitCommandError, "--all cannot be combined with --where")
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

	if err := def.Delete(ctx, cur, opts.Tolerant, fields); err != nil {
		if persist.IsNotFound(err) {
			return WrapExitError(ExitFailure, "nothing deleted", err)
		}
		return WrapExitError(ExitFailure, "delete failed", err)
	}

	result := DeleteResult{Table: def.Name(), Deleted: cur.RowCount()}
	opts.Logger().Info("rows deleted", "table", result.Table, "count", result.Deleted)
	return opts.formatter(cmd).Success(result)
}
