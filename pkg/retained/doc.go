// Package retained provides deferred, identity-stable ownership of
// reference-typed objects held inside widget state.
//
// In a declarative UI, widgets are cheap value types that get rebuilt on
// every render. Controllers and services are the opposite: long-lived,
// mutable reference types that must be constructed exactly once and reused
// across rebuilds. The persistent home for such objects is the widget's
// state slot, which survives rebuilds; this package adds the missing piece
// for controllers that are expensive to construct or that should not exist
// until they are actually needed.
//
// # Owner
//
// Owner wraps a constructor expression and delays it until first use:
//
//	type searchState struct {
//	    core.StateBase
//	    index *retained.Owner[*SearchIndex]
//	}
//
//	func (s *searchState) InitState() {
//	    // Nothing is constructed here. The index is built the first
//	    // time s.index is touched, and never again after that.
//	    s.index = retained.New(func() *SearchIndex {
//	        return NewSearchIndex(corpusPath)
//	    })
//	}
//
// Every access after the first returns the same instance, so mutations made
// through one access are visible through all later ones.
//
// # Access modes
//
// There are three ways to reach the wrapped object. Value returns the live
// reference for direct field and method access. With groups a sequence of
// reads and writes into one call and returns the body's result. WithUnsafe
// does the same for bodies that block or cross goroutine boundaries, and is
// the only part of this package that is not safe by construction; see its
// documentation for the discipline it demands.
//
// # Thread affinity
//
// Like the rest of widget state, an Owner must be confined to the UI
// thread. It takes no locks. WithUnsafe is the single, explicitly labeled
// exception, and it shifts race freedom from the type to the caller.
//
// # Lifecycle
//
// Use ties a deferred controller to its host state's disposal, mirroring
// the framework's eager controller hook. A controller that was never built
// is never disposed, so tearing down a state cannot trigger construction.
package retained
