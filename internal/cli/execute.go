package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// Execute runs the CLI with args and returns the process exit code.
// Failures are reported through an OutputFormatter: on stderr in text
// mode, as a JSON error response on stdout with --format json.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return ExitSuccess
	}

	f := &OutputFormatter{Format: "text", Writer: stdout, ErrWriter: stderr}
	if cmd != nil && cmd != root {
		f.Command = cmd.Name()
	}
	if flag := root.PersistentFlags().Lookup("format"); flag != nil && flag.Value.String() == "json" {
		f.Format = "json"
	}
	_ = f.Error(ErrorCode(err), err.Error(), nil)
	return GetExitCode(err)
}
