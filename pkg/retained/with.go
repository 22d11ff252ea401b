package retained

import "context"

// With constructs the instance if needed, invokes body with it once, and
// returns whatever body returns.
//
// With runs synchronously on the calling goroutine and returns when body
// does, so no other UI work can interleave with it. Failures are the
// caller's: a panic inside body propagates unchanged, and a body that can
// fail simply returns error as (part of) R:
//
//	n := retained.With(s.index, func(ix *SearchIndex) int {
//	    ix.Refresh()
//	    return ix.Len()
//	})
//
//	err := retained.With(s.index, func(ix *SearchIndex) error {
//	    return ix.Compact()
//	})
func With[T, R any](o *Owner[T], body func(T) R) R {
	return body(o.Value())
}

// WithUnsafe constructs the instance if needed, then hands the live
// reference to a body that may block, perform I/O, or be reached from
// outside the UI thread. The call returns when body returns, with body's
// result and error passed through unchanged.
//
// This is a deliberate escape hatch. Widget state is UI-thread-affine, and
// handing its contents across a blocking call or a goroutine boundary
// normally requires dispatching back to the UI thread first. WithUnsafe
// skips that: the reference crosses the boundary as-is, and freedom from
// data races becomes the caller's obligation. Keep at most one WithUnsafe
// call in flight per Owner, or restrict the body to operations that cannot
// conflict. Two concurrent calls receive the same instance and interleave
// with no ordering guarantee and no mutual exclusion.
//
// The wrapper performs no cancellation checks; ctx is passed to body
// untouched, and observing it is body's job.
//
//	results, err := retained.WithUnsafe(ctx, s.index,
//	    func(ctx context.Context, ix *SearchIndex) ([]Hit, error) {
//	        return ix.Query(ctx, term) // may block
//	    })
func WithUnsafe[T, R any](ctx context.Context, o *Owner[T], body func(context.Context, T) (R, error)) (R, error) {
	return body(ctx, o.Value())
}
