package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// TableStatus is the row count of one table.
type TableStatus struct {
	Name string `json:"name"`
	Rows int64  `json:"rows"`
}

// StatusResult is the status command's output.
type StatusResult struct {
	Database string        `json:"database"`
	Tables   []TableStatus `json:"tables"`
}

func (r StatusResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Database: %s", r.Database)
	if len(r.Tables) == 0 {
		b.WriteString("\nNo tables (run feedstore init)")
	}
	for _, t := range r.Tables {
		fmt.Fprintf(&b, "\n  %-12s %d", t.Name, t.Rows)
	}
	return b.String()
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "List tables and row counts",
		Long: `List the tables in the database with their row counts.

Example:
  feedstore status --db ./feeds.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(rootOpts, cmd)
		},
	}

	return cmd
}

func runStatus(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tables, err := st.Tables(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list tables", err)
	}

	result := StatusResult{Database: st.Path(), Tables: make([]TableStatus, 0, len(tables))}
	for _, name := range tables {
		n, err := st.Count(ctx, name)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to count rows", err)
		}
		result.Tables = append(result.Tables, TableStatus{Name: name, Rows: n})
	}

	return opts.formatter(cmd).Success(result)
}
