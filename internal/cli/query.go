package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Where []string
}

// QueryResult is the query command's output.
type QueryResult struct {
	Table  string           `json:"table"`
	Fields []string         `json:"fields"`
	Rows   []map[string]any `json:"rows"`
}

func (r QueryResult) String() string {
	if len(r.Rows) == 0 {
		return fmt.Sprintf("No rows in %s", r.Table)
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(r.Fields, "\t"))
	for _, row := range r.Rows {
		cells := make([]string, len(r.Fields))
		for i, f := range r.Fields {
			if v := row[f]; v != nil {
				cells[i] = fmt.Sprint(v)
			} else {
				cells[i] = "NULL"
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	_ = w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <table>",
		Short: "Select records from a table",
		Long: `Select records from a feed table, optionally filtered by field equality.

Filters combine with AND.

Examples:
  feedstore query stops
  feedstore query stop_times --where trip_id=T1
  feedstore query routes --where agency_id=metro --where route_type=3 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Where, "where", "w", nil, "filter as name=value (repeatable)")

	return cmd
}

func runQuery(opts *QueryOptions, table string, cmd *cobra.Command) error {
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

	records, err := def.SelectAny(ctx, cur, fields)
	if err != nil {
		return WrapExitError(ExitFailure, "query failed", err)
	}

	result := QueryResult{
		Table:  def.Name(),
		Fields: def.FieldNames(),
		Rows:   make([]map[string]any, 0, len(records)),
	}
	for _, rec := range records {
		values, err := def.ValuesOf(rec)
		if err != nil {
			return WrapExitError(ExitFailure, "query failed", err)
		}
		row := make(map[string]any, len(values))
		for i, name := range result.Fields {
			row[name] = values[i]
		}
		result.Rows = append(result.Rows, row)
	}

	opts.formatter(cmd).VerboseLog("%d rows from %s", len(result.Rows), def.Name())
	return opts.formatter(cmd).Success(result)
}
