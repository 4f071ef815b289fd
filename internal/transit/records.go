package transit

import (
	"github.com/roach88/feedstore/internal/persist"
)

// Agency operates one or more routes.
type Agency struct {
	persist.Model `json:"-" yaml:"-"`
	AgencyID      string `json:"agency_id" yaml:"agency_id"`
	Name          string `json:"agency_name" yaml:"agency_name"`
	URL           string `json:"agency_url" yaml:"agency_url"`
	Timezone      string `json:"agency_timezone" yaml:"agency_timezone"`
}

// AgencyTable describes the agency table.
var AgencyTable = persist.NewTable[Agency]("agency",
	[]persist.Column[Agency]{
		persist.Text("agency_id", func(a *Agency) *string { return &a.AgencyID }),
		persist.Text("agency_name", func(a *Agency) *string { return &a.Name }),
		persist.Text("agency_url", func(a *Agency) *string { return &a.URL }),
		persist.Text("agency_timezone", func(a *Agency) *string { return &a.Timezone }),
	},
)

// Stop is a place where vehicles pick up or drop off riders.
type Stop struct {
	persist.Model `json:"-" yaml:"-"`
	StopID        string  `json:"stop_id" yaml:"stop_id"`
	Name          string  `json:"stop_name" yaml:"stop_name"`
	Lat           float64 `json:"stop_lat" yaml:"stop_lat"`
	Lon           float64 `json:"stop_lon" yaml:"stop_lon"`
	Code          string  `json:"stop_code,omitempty" yaml:"stop_code,omitempty"`
}

// StopTable describes the stops table.
var StopTable = persist.NewTable[Stop]("stops",
	[]persist.Column[Stop]{
		persist.Text("stop_id", func(s *Stop) *string { return &s.StopID }),
		persist.Text("stop_name", func(s *Stop) *string { return &s.Name }),
		persist.Real("stop_lat", func(s *Stop) *float64 { return &s.Lat }),
		persist.Real("stop_lon", func(s *Stop) *float64 { return &s.Lon }),
		persist.Text("stop_code", func(s *Stop) *string { return &s.Code }),
	},
	"stop_id",
)

// Route type codes.
const (
	RouteTypeTram   = 0
	RouteTypeSubway = 1
	RouteTypeRail   = 2
	RouteTypeBus    = 3
	RouteTypeFerry  = 4
)

// Route is a group of trips shown to riders as a single service.
type Route struct {
	persist.Model `json:"-" yaml:"-"`
	RouteID       string `json:"route_id" yaml:"route_id"`
	AgencyID      string `json:"agency_id,omitempty" yaml:"agency_id,omitempty"`
	ShortName     string `json:"route_short_name" yaml:"route_short_name"`
	LongName      string `json:"route_long_name" yaml:"route_long_name"`
	Type          int    `json:"route_type" yaml:"route_type"`
}

// RouteTable describes the routes table.
var RouteTable = persist.NewTable[Route]("routes",
	[]persist.Column[Route]{
		persist.Text("route_id", func(r *Route) *string { return &r.RouteID }),
		persist.Text("agency_id", func(r *Route) *string { return &r.AgencyID }),
		persist.Text("route_short_name", func(r *Route) *string { return &r.ShortName }),
		persist.Text("route_long_name", func(r *Route) *string { return &r.LongName }),
		persist.Int("route_type", func(r *Route) *int { return &r.Type }),
	},
	"agency_id",
)
