package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/feedstore/internal/transit"
)

// SchemaResult is the schema command's output.
type SchemaResult struct {
	Statements []string `json:"statements"`
}

func (r SchemaResult) String() string {
	return strings.Join(r.Statements, "\n")
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the DDL init would run",
		Long: `Print the CREATE TABLE and CREATE INDEX statements for every feed table,
in the order init executes them. No database is opened.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.formatter(cmd).Success(SchemaResult{Statements: transit.Statements()})
		},
	}

	return cmd
}
