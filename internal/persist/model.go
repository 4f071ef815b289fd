package persist

// Model carries the per-instance persistence state of a record: the
// CursorProvider it writes through and the row id assigned by Save.
// Record types embed it by value.
type Model struct {
	provider CursorProvider
	rowID    int64
	hasRowID bool
}

// Entity is satisfied by any type embedding Model.
type Entity interface {
	persistModel() *Model
}

// Bind returns a Model that persists through p. A nil p yields an unbound
// model, suitable for records that are never written.
func Bind(p CursorProvider) Model {
	return Model{provider: p}
}

func (m *Model) persistModel() *Model {
	return m
}

// Bind attaches the record to a CursorProvider. The row id is kept.
func (m *Model) Bind(p CursorProvider) {
	m.provider = p
}

// Provider returns the CursorProvider the record persists through, or nil.
func (m *Model) Provider() CursorProvider {
	return m.provider
}

// Bound reports whether the record has a CursorProvider.
func (m *Model) Bound() bool {
	return m.provider != nil
}

// RowID returns the store-assigned row id and whether one was assigned.
func (m *Model) RowID() (int64, bool) {
	return m.rowID, m.hasRowID
}

// Cursor obtains a fresh cursor from the record's provider.
func (m *Model) Cursor() (Cursor, error) {
	if m.provider == nil {
		return nil, ErrNotBound
	}
	return m.provider.Cursor()
}

func (m *Model) setRowID(id int64) {
	m.rowID = id
	m.hasRowID = true
}
