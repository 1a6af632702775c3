// Package errs provides the typed errors shared by the storefront core.
//
// Every error type follows the same shape: a sentinel (ErrObjectNotFound,
// ErrValueIsInvalid, ...), a struct carrying the offending parameter, two
// constructors (with and without cause) and an Unwrap method returning the
// sentinel so callers can classify failures with errors.Is:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return c.NoContent(http.StatusNotFound)
//	}
//
// ErrVersionIsInvalid is used for optimistic concurrency conflicts on
// versioned aggregates such as orders.
package errs
