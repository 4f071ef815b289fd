package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/feedstore/internal/persist"
	"github.com/roach88/feedstore/internal/transit"
)

// lookupTable finds a transit table by name.
func lookupTable(name string) (persist.Definition, error) {
	def, ok := persist.Lookup(transit.Schema(), name)
	if !ok {
		names := make([]string, 0, len(transit.Schema()))
		for _, d := range transit.Schema() {
			names = append(names, d.Name())
		}
		return nil, NewExitError(ExitCommandError,
			fmt.Sprintf("unknown table %q: must be one of %v", name, names))
	}
	return def, nil
}

// parseWhere turns repeated name=value flags into ordered filters. Values
// are passed as text; SQLite applies the column's affinity when comparing.
func parseWhere(def persist.Definition, where []string) (persist.Fields, error) {
	fields := make(persist.Fields, 0, len(where))
	for _, w := range where {
		name, value, ok := strings.Cut(w, "=")
		if !ok || name == "" {
			return nil, NewExitError(ExitCommandError,
				fmt.Sprintf("invalid --where %q: expected name=value", w))
		}
		if !slices.Contains(def.FieldNames(), name) {
			return nil, NewExitError(ExitCommandError,
				fmt.Sprintf("table %s has no field %q", def.Name(), name))
		}
		fields = append(fields, persist.F(name, value))
	}
	return fields, nil
}
