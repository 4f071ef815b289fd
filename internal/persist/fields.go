package persist

// Field is one named value used as an assignment or an equality filter.
type Field struct {
	Name  string
	Value any
}

// F builds a Field.
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// Fields is an ordered list of named values. Order is preserved in the
// generated SQL and in the bound parameters.
type Fields []Field

// Names returns the field names in order.
func (fs Fields) Names() []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	return names
}

// Values returns the field values in order.
func (fs Fields) Values() []any {
	values := make([]any, len(fs))
	for i, f := range fs {
		values[i] = f.Value
	}
	return values
}
