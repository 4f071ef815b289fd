// Package transit defines the feed record types stored by feedstore:
// agencies, stops, routes, trips and stop times, plus the feed_loads
// bookkeeping table.
//
// Each type embeds persist.Model and has a package-level descriptor
// (AgencyTable, StopTable, ...). StopTime does not carry its trip id;
// the owning Trip supplies it as an extra field when saving.
//
// Index names are <field>_index and SQLite index names are global to a
// database, so a field name is indexable on at most one table here.
package transit
