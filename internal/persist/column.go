package persist

// Column describes one persisted field of record type T.
//
// Get reads the field for INSERT. Set writes a value read back from the
// store; it receives whatever the driver produced for the column (for
// SQLite: int64, float64, string, []byte, bool or nil), so setters should
// go through the As* conversions.
type Column[T any] struct {
	Name string
	Type string
	Get  func(*T) any
	Set  func(*T, any) error
}

// Text is a TEXT column backed by a string field.
func Text[T any](name string, field func(*T) *string) Column[T] {
	return Column[T]{
		Name: name,
		Type: "TEXT",
		Get:  func(r *T) any { return *field(r) },
		Set: func(r *T, v any) error {
			s, err := AsString(v)
			if err != nil {
				return err
			}
			*field(r) = s
			return nil
		},
	}
}

// Int64 is an INTEGER column backed by an int64 field.
func Int64[T any](name string, field func(*T) *int64) Column[T] {
	return Column[T]{
		Name: name,
		Type: "INTEGER",
		Get:  func(r *T) any { return *field(r) },
		Set: func(r *T, v any) error {
			n, err := AsInt64(v)
			if err != nil {
				return err
			}
			*field(r) = n
			return nil
		},
	}
}

// Int is an INTEGER column backed by an int field.
func Int[T any](name string, field func(*T) *int) Column[T] {
	return Column[T]{
		Name: name,
		Type: "INTEGER",
		Get:  func(r *T) any { return int64(*field(r)) },
		Set: func(r *T, v any) error {
			n, err := AsInt64(v)
			if err != nil {
				return err
			}
			*field(r) = int(n)
			return nil
		},
	}
}

// Real is a REAL column backed by a float64 field.
func Real[T any](name string, field func(*T) *float64) Column[T] {
	return Column[T]{
		Name: name,
		Type: "REAL",
		Get:  func(r *T) any { return *field(r) },
		Set: func(r *T, v any) error {
			f, err := AsFloat64(v)
			if err != nil {
				return err
			}
			*field(r) = f
			return nil
		},
	}
}

// WithType returns a copy of c declared with a different SQL type, for
// columns such as "INTEGER NOT NULL", "VARCHAR(32)" or "TEXT DEFAULT 'x'".
// The declaration may use letters, digits, spaces, underscores, commas,
// dots, hyphens, parentheses and balanced single quotes; NewTable panics
// on anything else.
func (c Column[T]) WithType(sqlType string) Column[T] {
	c.Type = sqlType
	return c
}
