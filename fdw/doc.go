// Package fdw defines the host-facing side of a foreign data wrapper: the
// scan lifecycle interface, the row and cell values handed back to the
// host, the per-scan row buffer, option lookup, and fatal error reporting.
//
// A wrapper is driven through one scan at a time:
//
//	if err := w.BeginScan(ctx, nil, cols, nil, nil, opts); err != nil {
//	    return err
//	}
//	defer w.EndScan(ctx)
//	for {
//	    row, ok, err := w.IterScan(ctx)
//	    if err != nil || !ok {
//	        break
//	    }
//	    ...
//	}
//
// Collect runs that loop and returns the rows.
package fdw
