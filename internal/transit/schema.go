package transit

import (
	"context"

	"github.com/roach88/feedstore/internal/persist"
)

// Schema returns every table definition in creation order.
func Schema() []persist.Definition {
	return []persist.Definition{
		AgencyTable,
		StopTable,
		RouteTable,
		TripTable,
		StopTimeTable,
		FeedLoadTable,
	}
}

// CreateAll creates every table and its indices on cur.
func CreateAll(ctx context.Context, cur persist.Cursor) error {
	for _, def := range Schema() {
		if err := def.CreateTable(ctx, cur); err != nil {
			return err
		}
		if err := def.CreateIndices(ctx, cur); err != nil {
			return err
		}
	}
	return nil
}

// Statements returns the DDL CreateAll would execute, in order.
func Statements() []string {
	var stmts []string
	for _, def := range Schema() {
		stmts = append(stmts, def.CreateTableSQL())
		stmts = append(stmts, def.CreateIndicesSQL()...)
	}
	return stmts
}
