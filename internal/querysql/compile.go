package querysql

import (
	"fmt"
	"strings"
)

// Compile renders a statement to SQL text.
//
// Names are validated before rendering; an invalid name returns an
// *IdentifierError and no SQL.
func Compile(s Statement) (string, error) {
	if s == nil {
		return "", fmt.Errorf("cannot compile nil statement")
	}

	switch stmt := s.(type) {
	case CreateTable:
		return compileCreateTable(stmt)
	case *CreateTable:
		return compileCreateTable(*stmt)
	case CreateIndex:
		return compileCreateIndex(stmt)
	case *CreateIndex:
		return compileCreateIndex(*stmt)
	case Insert:
		return compileInsert(stmt)
	case *Insert:
		return compileInsert(*stmt)
	case Update:
		return compileUpdate(stmt)
	case *Update:
		return compileUpdate(*stmt)
	case Delete:
		return compileDelete(stmt)
	case *Delete:
		return compileDelete(*stmt)
	case Select:
		return compileSelect(stmt)
	case *Select:
		return compileSelect(*stmt)
	default:
		return "", fmt.Errorf("unsupported statement type: %T", s)
	}
}

func compileCreateTable(s CreateTable) (string, error) {
	if err := validateTable(s.Table); err != nil {
		return "", err
	}
	if len(s.Columns) == 0 {
		return "", fmt.Errorf("create table %s: no columns", s.Table)
	}

	parts := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		if err := ValidateIdentifier(c.Name); err != nil {
			return "", err
		}
		if err := validateType(c.Type); err != nil {
			return "", err
		}
		parts = append(parts, c.Name+" "+c.Type)
	}

	return fmt.Sprintf("CREATE TABLE %s (%s);", s.Table, strings.Join(parts, ",")), nil
}

func compileCreateIndex(s CreateIndex) (string, error) {
	if err := validateTable(s.Table); err != nil {
		return "", err
	}
	if err := ValidateIdentifier(s.Field); err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATE INDEX %s_index ON %s (%s);", s.Field, s.Table, s.Field), nil
}

func compileInsert(s Insert) (string, error) {
	if err := validateTable(s.Table); err != nil {
		return "", err
	}
	if len(s.Columns) == 0 {
		return "", fmt.Errorf("insert into %s: no columns", s.Table)
	}
	if err := validateColumns(s.Columns); err != nil {
		return "", err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(s.Columns)), ",")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		s.Table,
		strings.Join(s.Columns, ","),
		placeholders), nil
}

func compileUpdate(s Update) (string, error) {
	if err := validateTable(s.Table); err != nil {
		return "", err
	}
	if len(s.Set) == 0 {
		return "", fmt.Errorf("update %s: no columns", s.Table)
	}
	if err := validateColumns(s.Set); err != nil {
		return "", err
	}

	setters := make([]string, len(s.Set))
	for i, name := range s.Set {
		setters[i] = name + "=?"
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE rowid=%d;",
		s.Table,
		strings.Join(setters, ","),
		s.RowID), nil
}

func compileDelete(s Delete) (string, error) {
	if err := validateTable(s.Table); err != nil {
		return "", err
	}
	where, err := whereClause(s.Where)
	if err != nil {
		return "", err
	}
	return "DELETE FROM " + s.Table + where + ";", nil
}

// compileSelect never appends a terminating semicolon, matching the
// shape consumers of this layer already expect.
func compileSelect(s Select) (string, error) {
	if err := validateTable(s.Table); err != nil {
		return "", err
	}
	where, err := whereClause(s.Where)
	if err != nil {
		return "", err
	}
	return "SELECT * FROM " + s.Table + where, nil
}

// whereClause returns " WHERE a=? and b=?" or "" for no fields.
func whereClause(fields []string) (string, error) {
	if len(fields) == 0 {
		return "", nil
	}
	if err := validateColumns(fields); err != nil {
		return "", err
	}

	conds := make([]string, len(fields))
	for i, name := range fields {
		conds[i] = name + "=?"
	}
	return " WHERE " + strings.Join(conds, " and "), nil
}
