package retained

// Disposable is implemented by controllers that hold resources needing
// explicit cleanup. It matches the framework's controller contract.
type Disposable interface {
	Dispose()
}

// DisposeHost registers cleanup callbacks tied to a state's lifetime.
// *core.StateBase satisfies it, so host states pass themselves:
//
//	s.player = retained.Use(&s.StateBase, func() *VideoController {
//	    return NewVideoController(url)
//	})
//
// The returned function unregisters the callback.
type DisposeHost interface {
	OnDispose(cleanup func()) func()
}

// Use creates a deferred controller slot tied to the host state's lifetime.
// It is the lazy counterpart of the eager controller hook: the controller
// is constructed on first access rather than up front, and is disposed when
// the state is disposed, but only if it was ever built. A page the user
// never interacts with pays neither construction nor disposal.
func Use[C Disposable](host DisposeHost, create func() C) *Owner[C] {
	owner := New(create)
	host.OnDispose(func() {
		owner.IfBuilt(func(c C) {
			c.Dispose()
		})
	})
	return owner
}
