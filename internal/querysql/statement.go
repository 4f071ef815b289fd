package querysql

// Statement is a single SQL statement to be rendered by Compile.
//
// This is a sealed interface - only types in this package implement it.
type Statement interface {
	statementNode()
}

// Column is one (name, SQL type) entry of a table definition.
type Column struct {
	Name string
	Type string
}

// CreateTable renders CREATE TABLE with the columns in the given order.
type CreateTable struct {
	Table   string
	Columns []Column
}

// CreateIndex renders a single-column index named <field>_index.
type CreateIndex struct {
	Table string
	Field string
}

// Insert renders an INSERT with one placeholder per column.
// Placeholder order matches Columns, so the caller's value slice must too.
type Insert struct {
	Table   string
	Columns []string
}

// Update renders an UPDATE addressing a single row by rowid.
type Update struct {
	Table string
	Set   []string
	RowID int64
}

// Delete renders a DELETE conjoining one equality per filter field.
// An empty Where deletes every row in the table.
type Delete struct {
	Table string
	Where []string
}

// Select renders SELECT * with an optional equality filter.
type Select struct {
	Table string
	Where []string
}

func (CreateTable) statementNode() {}
func (CreateIndex) statementNode() {}
func (Insert) statementNode()      {}
func (Update) statementNode()      {}
func (Delete) statementNode()      {}
func (Select) statementNode()      {}
