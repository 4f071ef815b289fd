package transit

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/feedstore/internal/persist"
)

// FeedLoad records one import of a feed document.
type FeedLoad struct {
	persist.Model `json:"-"`
	LoadID        string    `json:"load_id"`
	Source        string    `json:"source"`
	LoadedAt      time.Time `json:"loaded_at"`
	Records       int       `json:"records"`
	Digest        string    `json:"digest"`
}

// NewFeedLoad returns an unsaved FeedLoad with a fresh time-ordered
// (version 7) id.
func NewFeedLoad(p persist.CursorProvider, source string, at time.Time) *FeedLoad {
	return &FeedLoad{
		Model:    persist.Bind(p),
		LoadID:   uuid.Must(uuid.NewV7()).String(),
		Source:   source,
		LoadedAt: at.UTC(),
	}
}

// FeedLoadTable describes the feed_loads table.
var FeedLoadTable = persist.NewTable[FeedLoad]("feed_loads",
	[]persist.Column[FeedLoad]{
		persist.Text("load_id", func(l *FeedLoad) *string { return &l.LoadID }),
		persist.Text("source", func(l *FeedLoad) *string { return &l.Source }),
		timestamp("loaded_at", func(l *FeedLoad) *time.Time { return &l.LoadedAt }),
		persist.Int("records", func(l *FeedLoad) *int { return &l.Records }),
		persist.Text("digest", func(l *FeedLoad) *string { return &l.Digest }),
	},
	"load_id", "digest",
)

// LoadsWithDigest returns earlier loads of a document with the given
// digest, oldest first.
func LoadsWithDigest(ctx context.Context, cur persist.Cursor, digest string) ([]*FeedLoad, error) {
	it, err := FeedLoadTable.Select(ctx, cur, persist.Fields{persist.F("digest", digest)})
	if err != nil {
		return nil, err
	}
	loads, err := it.Collect()
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(loads, func(a, b *FeedLoad) int {
		return a.LoadedAt.Compare(b.LoadedAt)
	})
	return loads, nil
}

// timestamp stores a time as RFC 3339 text in UTC. The column is declared
// TEXT so the driver hands back the string unparsed.
func timestamp[T any](name string, field func(*T) *time.Time) persist.Column[T] {
	return persist.Column[T]{
		Name: name,
		Type: "TEXT",
		Get: func(r *T) any {
			t := *field(r)
			if t.IsZero() {
				return nil
			}
			return t.UTC().Format(time.RFC3339Nano)
		},
		Set: func(r *T, v any) error {
			s, err := persist.AsString(v)
			if err != nil {
				return err
			}
			if s == "" {
				*field(r) = time.Time{}
				return nil
			}
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return fmt.Errorf("parse %s: %w", name, err)
			}
			*field(r) = t
			return nil
		},
	}
}
