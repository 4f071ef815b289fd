package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/feedstore/internal/feed"
)

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions
	Force bool
}

// LoadResult is the load command's output.
type LoadResult struct {
	LoadID   string    `json:"load_id"`
	Source   string    `json:"source"`
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loaded_at"`
	Digest   string    `json:"digest"`
}

func (r LoadResult) String() string {
	return fmt.Sprintf("Loaded %d records from %s (load %s)", r.Records, r.Source, r.LoadID)
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Load a feed document",
		Long: `Parse a feed document and save its records.

YAML (.yaml, .yml) and CUE (.cue) documents are accepted. Records are saved
one by one; a failure part way leaves the earlier records in place.

A document identical to one loaded before is refused unless --force is given.

Examples:
  feedstore load --db ./feeds.db metro.yaml
  feedstore load --db ./feeds.db metro.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "load even if the same document was loaded before")

	return cmd
}

func runLoad(opts *LoadOptions, path string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	doc, err := feed.Parse(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse feed", err)
	}
	opts.formatter(cmd).VerboseLog("Parsed %s: %d records", path, doc.Len())

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	loader := feed.NewLoader(
		feed.WithLogger(opts.Logger()),
		feed.WithAllowDuplicates(opts.Force),
	)
	load, err := loader.Load(ctx, st, doc, path)
	if err != nil {
		var dup *feed.DuplicateError
		if errors.As(err, &dup) {
			return WrapExitError(ExitFailure, "nothing loaded (use --force to load again)", err)
		}
		return WrapExitError(ExitFailure, "failed to load feed", err)
	}

	return opts.formatter(cmd).Success(LoadResult{
		LoadID:   load.LoadID,
		Source:   load.Source,
		Records:  load.Records,
		LoadedAt: load.LoadedAt,
		Digest:   load.Digest,
	})
}
