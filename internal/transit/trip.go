package transit

import (
	"cmp"
	"context"
	"slices"

	"github.com/roach88/feedstore/internal/persist"
)

// Trip is one vehicle journey along a route.
type Trip struct {
	persist.Model `json:"-" yaml:"-"`
	TripID        string `json:"trip_id" yaml:"trip_id"`
	RouteID       string `json:"route_id" yaml:"route_id"`
	ServiceID     string `json:"service_id" yaml:"service_id"`
	Headsign      string `json:"trip_headsign,omitempty" yaml:"trip_headsign,omitempty"`
}

// TripTable describes the trips table.
var TripTable = persist.NewTable[Trip]("trips",
	[]persist.Column[Trip]{
		persist.Text("trip_id", func(t *Trip) *string { return &t.TripID }),
		persist.Text("route_id", func(t *Trip) *string { return &t.RouteID }),
		persist.Text("service_id", func(t *Trip) *string { return &t.ServiceID }),
		persist.Text("trip_headsign", func(t *Trip) *string { return &t.Headsign }),
	},
	"route_id", "service_id",
)

// StopTime is a trip's arrival at and departure from one stop.
//
// The trip_id column is not a field: it belongs to the Trip, which passes
// it to Save through extra fields (see Trip.AddStopTime). Records read
// back from the store expose it through TripID.
type StopTime struct {
	persist.Model `json:"-" yaml:"-"`
	ArrivalTime   string `json:"arrival_time" yaml:"arrival_time"`
	DepartureTime string `json:"departure_time" yaml:"departure_time"`
	StopID        string `json:"stop_id" yaml:"stop_id"`
	StopSequence  int    `json:"stop_sequence" yaml:"stop_sequence"`

	tripID string
}

// TripID returns the trip id read back from the store, if any.
func (st *StopTime) TripID() string {
	return st.tripID
}

// StopTimeTable describes the stop_times table.
var StopTimeTable = persist.NewTable[StopTime]("stop_times",
	[]persist.Column[StopTime]{
		{
			Name: "trip_id",
			Type: "TEXT",
			// NULL unless the owning trip supplies it or the record was read
			// back from the store.
			Get: func(st *StopTime) any {
				if st.tripID == "" {
					return nil
				}
				return st.tripID
			},
			Set: func(st *StopTime, v any) error {
				s, err := persist.AsString(v)
				st.tripID = s
				return err
			},
		},
		persist.Text("arrival_time", func(st *StopTime) *string { return &st.ArrivalTime }),
		persist.Text("departure_time", func(st *StopTime) *string { return &st.DepartureTime }),
		persist.Text("stop_id", func(st *StopTime) *string { return &st.StopID }),
		persist.Int("stop_sequence", func(st *StopTime) *int { return &st.StopSequence }),
	},
	"trip_id",
)

// AddStopTime saves st as part of this trip. An unbound st is bound to the
// trip's provider first.
func (t *Trip) AddStopTime(ctx context.Context, st *StopTime) error {
	if !st.Bound() {
		st.Bind(t.Provider())
	}
	return StopTimeTable.Save(ctx, st, map[string]any{"trip_id": t.TripID})
}

// StopTimes returns the trip's stop times ordered by stop_sequence.
func (t *Trip) StopTimes(ctx context.Context, cur persist.Cursor) ([]*StopTime, error) {
	it, err := StopTimeTable.Select(ctx, cur, persist.Fields{persist.F("trip_id", t.TripID)})
	if err != nil {
		return nil, err
	}
	stopTimes, err := it.Collect()
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(stopTimes, func(a, b *StopTime) int {
		return cmp.Compare(a.StopSequence, b.StopSequence)
	})
	return stopTimes, nil
}
