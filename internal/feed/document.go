package feed

import (
	"fmt"
	"math"

	"golang.org/x/text/unicode/norm"
)

// Document is the on-disk shape of a feed.
type Document struct {
	Agencies []Agency `yaml:"agencies" json:"agencies"`
	Stops    []Stop   `yaml:"stops" json:"stops"`
	Routes   []Route  `yaml:"routes" json:"routes"`
	Trips    []Trip   `yaml:"trips" json:"trips"`
}

// Agency is an agency entry.
type Agency struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	URL      string `yaml:"url" json:"url"`
	Timezone string `yaml:"timezone" json:"timezone"`
}

// Stop is a stop entry.
type Stop struct {
	ID   string  `yaml:"id" json:"id"`
	Name string  `yaml:"name" json:"name"`
	Lat  float64 `yaml:"lat" json:"lat"`
	Lon  float64 `yaml:"lon" json:"lon"`
	Code string  `yaml:"code,omitempty" json:"code,omitempty"`
}

// Route is a route entry.
type Route struct {
	ID        string `yaml:"id" json:"id"`
	Agency    string `yaml:"agency,omitempty" json:"agency,omitempty"`
	ShortName string `yaml:"short_name" json:"short_name"`
	LongName  string `yaml:"long_name" json:"long_name"`
	Type      int    `yaml:"type" json:"type"`
}

// Trip is a trip entry with its stop times.
type Trip struct {
	ID        string     `yaml:"id" json:"id"`
	Route     string     `yaml:"route" json:"route"`
	Service   string     `yaml:"service" json:"service"`
	Headsign  string     `yaml:"headsign,omitempty" json:"headsign,omitempty"`
	StopTimes []StopTime `yaml:"stop_times" json:"stop_times"`
}

// StopTime is one stop of a trip.
type StopTime struct {
	Stop      string `yaml:"stop" json:"stop"`
	Arrival   string `yaml:"arrival" json:"arrival"`
	Departure string `yaml:"departure" json:"departure"`
	Sequence  int    `yaml:"sequence" json:"sequence"`
}

// Len returns the number of records the document holds.
func (d *Document) Len() int {
	n := len(d.Agencies) + len(d.Stops) + len(d.Routes) + len(d.Trips)
	for _, t := range d.Trips {
		n += len(t.StopTimes)
	}
	return n
}

// Validate checks ids and references inside the document.
func (d *Document) Validate() error {
	stops := make(map[string]bool, len(d.Stops))
	for i, s := range d.Stops {
		if s.ID == "" {
			return fmt.Errorf("stops[%d]: id is required", i)
		}
		if stops[s.ID] {
			return fmt.Errorf("stops[%d]: duplicate id %q", i, s.ID)
		}
		stops[s.ID] = true
		if math.IsNaN(s.Lat) || math.IsNaN(s.Lon) ||
			s.Lat < -90 || s.Lat > 90 || s.Lon < -180 || s.Lon > 180 {
			return fmt.Errorf("stop %q: coordinates (%v, %v) out of range", s.ID, s.Lat, s.Lon)
		}
	}

	routes := make(map[string]bool, len(d.Routes))
	for i, r := range d.Routes {
		if r.ID == "" {
			return fmt.Errorf("routes[%d]: id is required", i)
		}
		routes[r.ID] = true
	}

	for i, t := range d.Trips {
		if t.ID == "" {
			return fmt.Errorf("trips[%d]: id is required", i)
		}
		if !routes[t.Route] {
			return fmt.Errorf("trip %q: unknown route %q", t.ID, t.Route)
		}
		for j, st := range t.StopTimes {
			if !stops[st.Stop] {
				return fmt.Errorf("trip %q stop_times[%d]: unknown stop %q", t.ID, j, st.Stop)
			}
		}
	}
	return nil
}

// Normalize rewrites every text value to Unicode NFC in place.
func (d *Document) Normalize() {
	for i := range d.Agencies {
		a := &d.Agencies[i]
		nfc(&a.ID, &a.Name, &a.URL, &a.Timezone)
	}
	for i := range d.Stops {
		s := &d.Stops[i]
		nfc(&s.ID, &s.Name, &s.Code)
	}
	for i := range d.Routes {
		r := &d.Routes[i]
		nfc(&r.ID, &r.Agency, &r.ShortName, &r.LongName)
	}
	for i := range d.Trips {
		t := &d.Trips[i]
		nfc(&t.ID, &t.Route, &t.Service, &t.Headsign)
		for j := range t.StopTimes {
			st := &t.StopTimes[j]
			nfc(&st.Stop, &st.Arrival, &st.Departure)
		}
	}
}

func nfc(fields ...*string) {
	for _, f := range fields {
		*f = norm.NFC.String(*f)
	}
}
