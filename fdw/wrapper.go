package fdw

import "context"

// Qual is a pushed-down filter condition.
type Qual struct {
	Field    string
	Operator string
	Value    any
	UseOr    bool
}

// Sort is a pushed-down ordering.
type Sort struct {
	Field      string
	Reversed   bool
	NullsFirst bool
}

// Limit is a pushed-down row window.
type Limit struct {
	Count  int64
	Offset int64
}

// ForeignDataWrapper is the scan lifecycle a host drives. Calls for one
// scan are sequential: BeginScan, IterScan until ok is false, EndScan.
type ForeignDataWrapper interface {
	// BeginScan fetches and buffers everything the scan will return.
	BeginScan(ctx context.Context, quals []Qual, columns []string, sorts []Sort, limit *Limit, options Options) error
	// IterScan returns the next buffered row. ok is false at end of data.
	IterScan(ctx context.Context) (row Row, ok bool, err error)
	// EndScan releases the scan. It is safe to call without an open scan.
	EndScan(ctx context.Context) error
}

// Factory builds a wrapper from its construction options.
type Factory func(options Options) (ForeignDataWrapper, error)

// Collect runs one full scan on w and returns every row in order.
func Collect(ctx context.Context, w ForeignDataWrapper, columns []string, options Options) ([]Row, error) {
	if err := w.BeginScan(ctx, nil, columns, nil, nil, options); err != nil {
		return nil, err
	}
	defer func() { _ = w.EndScan(ctx) }()

	var rows []Row
	for {
		row, ok, err := w.IterScan(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return rows, nil
		}
		rows = append(rows, row)
	}
}
