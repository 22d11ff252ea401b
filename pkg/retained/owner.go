package retained

// Owner holds a reference-typed value whose construction is deferred until
// first use. The constructor runs at most once; every later access returns
// the same instance, so identity (and therefore mutation visibility) is
// stable across widget rebuilds.
//
// Owner is NOT thread-safe. Like Managed state, it must only be accessed
// from the UI thread; WithUnsafe is the documented escape hatch for work
// that has to leave it.
//
// Example:
//
//	type playerState struct {
//	    core.StateBase
//	    audio *retained.Owner[*AudioPipeline]
//	}
//
//	func (s *playerState) InitState() {
//	    s.audio = retained.New(func() *AudioPipeline {
//	        return NewAudioPipeline() // runs on first access, not here
//	    })
//	}
type Owner[T any] struct {
	create func() T
	value  T
	built  bool
}

// New creates an Owner from a constructor thunk. The thunk is not invoked;
// construction happens on the first access through Value, Mutate, With or
// WithUnsafe. If the thunk panics, the Owner stays unbuilt and the next
// access runs it again.
func New[T any](create func() T) *Owner[T] {
	return &Owner[T]{create: create}
}

// Value returns the wrapped instance, constructing it on first call.
// Callers read and write the instance directly through the returned
// reference:
//
//	s.audio.Value().Volume = 0.5
//	s.audio.Value().Play(track)
//
// Both lines above touch the same instance; so does every later access.
func (o *Owner[T]) Value() T {
	if !o.built {
		o.value = o.create()
		o.built = true
		o.create = nil // release captures
	}
	return o.value
}

// Built reports whether the constructor has run.
func (o *Owner[T]) Built() bool {
	return o.built
}

// Mutate constructs the instance if needed and passes it to body, grouping
// a sequence of reads and writes into one call site. For a body that
// produces a result, use With.
func (o *Owner[T]) Mutate(body func(T)) {
	body(o.Value())
}

// IfBuilt passes the instance to body only if it has been constructed.
// It never triggers construction, which makes it safe to call from
// teardown paths:
//
//	base.OnDispose(func() {
//	    s.audio.IfBuilt(func(p *AudioPipeline) { p.Close() })
//	})
func (o *Owner[T]) IfBuilt(body func(T)) {
	if o.built {
		body(o.value)
	}
}
