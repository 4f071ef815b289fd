// Package persist maps record types onto relational tables through a small
// declarative contract.
//
// A record type embeds Model and is described once by a package-level
// Table value: a table name, an ordered list of columns (name, SQL type,
// getter, setter) and optionally the columns to index. From that
// descriptor the Table derives every statement it needs:
//
//	var People = persist.NewTable[Person]("people",
//	    []persist.Column[Person]{
//	        persist.Int64("id", func(p *Person) *int64 { return &p.ID }),
//	        persist.Text("name", func(p *Person) *string { return &p.Name }),
//	    },
//	    "name",
//	)
//
//	p := &Person{Model: persist.Bind(db), ID: 1, Name: "a"}
//	err := People.Save(ctx, p, nil)
//	err = People.Update(ctx, p, persist.Fields{persist.F("name", "b")})
//	it, err := People.Select(ctx, cur, persist.Fields{persist.F("id", 1)})
//
// # Column order
//
// Column order is fixed at definition time. It is the column order of
// CREATE TABLE and INSERT, the order of SQLValues, and the order in which
// SELECT * rows are zipped back onto a record. Reordering columns of an
// existing table is therefore a schema change.
//
// # Cursors
//
// Instance operations (Save, Update) obtain a fresh Cursor from the
// record's CursorProvider and close it before returning. Type-level
// operations (CreateTable, CreateIndices, Delete, Select) run on a cursor
// supplied by the caller. The package holds no locks and starts no
// transactions; every operation is one statement.
//
// # Errors
//
// Store errors are returned wrapped with the operation and table name.
// ErrNotBound, ErrNoRowID and ErrEmptyUpdate report misuse before any SQL
// runs. A non-tolerant Delete that matches nothing returns a
// *DeletionError, which matches ErrRecordNotFound.
package persist
