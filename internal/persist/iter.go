package persist

// Iter is a forward-only, single-pass sequence of records built from the
// rows of one SELECT. It cannot be rewound; run the Select again to read
// the rows again.
//
//	it, err := People.Select(ctx, cur, nil)
//	if err != nil { ... }
//	defer it.Close()
//	for it.Next() {
//	    p := it.Record()
//	}
//	if err := it.Err(); err != nil { ... }
type Iter[T any] struct {
	cur   Cursor
	build func([]any) (*T, error)
	rec   *T
	err   error
	done  bool
}

func newIter[T any](cur Cursor, build func([]any) (*T, error)) *Iter[T] {
	return &Iter[T]{cur: cur, build: build}
}

// Next advances to the next record. It returns false when the rows are
// exhausted, on the first error, or after Close.
func (it *Iter[T]) Next() bool {
	if it.done {
		return false
	}

	if !it.cur.Next() {
		it.err = it.cur.Err()
		it.finish()
		return false
	}

	values, err := it.cur.Values()
	if err != nil {
		it.err = err
		it.finish()
		return false
	}

	rec, err := it.build(values)
	if err != nil {
		it.err = err
		it.finish()
		return false
	}

	it.rec = rec
	return true
}

// Record returns the record produced by the last successful Next.
func (it *Iter[T]) Record() *T {
	return it.rec
}

// Err returns the error, if any, that stopped iteration.
func (it *Iter[T]) Err() error {
	return it.err
}

// Close stops iteration and releases the cursor's rows. It is safe to call
// more than once.
func (it *Iter[T]) Close() error {
	if it.done {
		return nil
	}
	it.done = true
	it.rec = nil
	return it.cur.Close()
}

// Collect drains the remaining records into a slice and closes the
// iterator. It returns an empty, non-nil slice when no rows remain.
func (it *Iter[T]) Collect() ([]*T, error) {
	defer it.Close()

	records := []*T{}
	for it.Next() {
		records = append(records, it.Record())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (it *Iter[T]) finish() {
	it.done = true
	it.rec = nil
	it.cur.Close()
}
