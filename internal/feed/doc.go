// Package feed reads transit feed documents and loads them into a store.
//
// A document lists agencies, stops, routes and trips, each trip carrying
// its stop times. Documents are YAML (.yaml, .yml) or CUE (.cue); CUE
// files are evaluated and must be concrete. Text values are normalized to
// Unicode NFC before they are stored, so equality filters on names match
// regardless of how the source composed accented characters.
//
// Load writes record by record. There is no enclosing transaction: if a
// save fails, the records before it stay in the store.
package feed
