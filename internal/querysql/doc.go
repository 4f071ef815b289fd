// Package querysql renders declarative statement values into the SQL text
// executed by the persistence layer.
//
// Every statement the persist package issues goes through Compile, so the
// shapes below are produced in exactly one place:
//
//	CREATE TABLE <table> (<f1> <t1>,<f2> <t2>,...);
//	CREATE INDEX <f>_index ON <table> (<f>);
//	INSERT INTO <table> (<f1>,<f2>,...) VALUES (?,?,...);
//	UPDATE <table> SET <f1>=?,<f2>=?,... WHERE rowid=<id>;
//	DELETE FROM <table> WHERE <f1>=? and <f2>=?...;
//	SELECT * FROM <table> WHERE <f1>=? and <f2>=?...
//
// Table and column names are interpolated, so they are checked against an
// identifier allow-list before any text is produced. Values are never
// interpolated; callers pass them as bound parameters. The one exception is
// the UPDATE row id, which is an int64 and is formatted as a decimal.
//
// Statement is a sealed interface. Only the types in this package implement
// it, which keeps the type switch in Compile exhaustive.
package querysql
