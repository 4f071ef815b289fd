package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/feedstore/internal/persist"
	"github.com/roach88/feedstore/internal/transit"
)

// DuplicateError is returned when a document with the same digest has
// already been loaded.
type DuplicateError struct {
	Digest   string
	Previous *transit.FeedLoad
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("feed already loaded as %s from %s at %s",
		e.Previous.LoadID, e.Previous.Source, e.Previous.LoadedAt.Format(time.RFC3339))
}

// Loader saves documents into a store.
type Loader struct {
	now             func() time.Time
	newID           func() string
	logger          *slog.Logger
	allowDuplicates bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithClock sets the clock used for FeedLoad.LoadedAt.
func WithClock(now func() time.Time) LoaderOption {
	return func(l *Loader) { l.now = now }
}

// WithIDGenerator replaces the generated load id.
func WithIDGenerator(newID func() string) LoaderOption {
	return func(l *Loader) { l.newID = newID }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// WithAllowDuplicates lets Load save a document whose digest matches an
// earlier load.
func WithAllowDuplicates(allow bool) LoaderOption {
	return func(l *Loader) { l.allowDuplicates = allow }
}

// NewLoader returns a Loader using the wall clock and generated load ids.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load saves every record of doc through p and then records the load
// itself. The returned FeedLoad has been saved and carries its row id.
//
// A document already loaded (same digest) is refused with a
// *DuplicateError unless the loader allows duplicates.
func (l *Loader) Load(ctx context.Context, p persist.CursorProvider, doc *Document, source string) (*transit.FeedLoad, error) {
	digest, err := doc.Digest()
	if err != nil {
		return nil, err
	}
	if !l.allowDuplicates {
		if err := l.checkDuplicate(ctx, p, digest); err != nil {
			return nil, err
		}
	}

	n := 0

	for _, a := range doc.Agencies {
		rec := &transit.Agency{
			Model:    persist.Bind(p),
			AgencyID: a.ID,
			Name:     a.Name,
			URL:      a.URL,
			Timezone: a.Timezone,
		}
		if err := transit.AgencyTable.Save(ctx, rec, nil); err != nil {
			return nil, fmt.Errorf("agency %q: %w", a.ID, err)
		}
		n++
	}

	for _, s := range doc.Stops {
		rec := &transit.Stop{
			Model:  persist.Bind(p),
			StopID: s.ID,
			Name:   s.Name,
			Lat:    s.Lat,
			Lon:    s.Lon,
			Code:   s.Code,
		}
		if err := transit.StopTable.Save(ctx, rec, nil); err != nil {
			return nil, fmt.Errorf("stop %q: %w", s.ID, err)
		}
		n++
	}

	for _, r := range doc.Routes {
		rec := &transit.Route{
			Model:     persist.Bind(p),
			RouteID:   r.ID,
			AgencyID:  r.Agency,
			ShortName: r.ShortName,
			LongName:  r.LongName,
			Type:      r.Type,
		}
		if err := transit.RouteTable.Save(ctx, rec, nil); err != nil {
			return nil, fmt.Errorf("route %q: %w", r.ID, err)
		}
		n++
	}

	for _, t := range doc.Trips {
		trip := &transit.Trip{
			Model:     persist.Bind(p),
			TripID:    t.ID,
			RouteID:   t.Route,
			ServiceID: t.Service,
			Headsign:  t.Headsign,
		}
		if err := transit.TripTable.Save(ctx, trip, nil); err != nil {
			return nil, fmt.Errorf("trip %q: %w", t.ID, err)
		}
		n++

		for _, st := range t.StopTimes {
			rec := &transit.StopTime{
				ArrivalTime:   st.Arrival,
				DepartureTime: st.Departure,
				StopID:        st.Stop,
				StopSequence:  st.Sequence,
			}
			if err := trip.AddStopTime(ctx, rec); err != nil {
				return nil, fmt.Errorf("trip %q stop %d: %w", t.ID, st.Sequence, err)
			}
			n++
		}
	}

	load := transit.NewFeedLoad(p, source, l.now())
	if l.newID != nil {
		load.LoadID = l.newID()
	}
	load.Records = n
	load.Digest = digest
	if err := transit.FeedLoadTable.Save(ctx, load, nil); err != nil {
		return nil, fmt.Errorf("record load: %w", err)
	}

	l.logger.Info("feed loaded",
		"source", source,
		"load_id", load.LoadID,
		"records", n,
	)
	return load, nil
}

func (l *Loader) checkDuplicate(ctx context.Context, p persist.CursorProvider, digest string) error {
	cur, err := p.Cursor()
	if err != nil {
		return err
	}
	defer cur.Close()

	previous, err := transit.LoadsWithDigest(ctx, cur, digest)
	if err != nil {
		return fmt.Errorf("check previous loads: %w", err)
	}
	if len(previous) > 0 {
		l.logger.Debug("duplicate feed", "digest", digest, "previous", previous[0].LoadID)
		return &DuplicateError{Digest: digest, Previous: previous[0]}
	}
	return nil
}
