// Package promise implements a single-assignment future value with a
// one-shot continuation, chained via Then, following spec §4.5. It is a
// partial A+ promise: no rejection path, at most one handler per promise,
// and every handler — including one attached to an already-resolved
// promise — runs through an Executor rather than inline, re-expressing
// original_source/lib/promise.h's template-specialized Promise<void> /
// Promise<T> split as one generic Promise[T] with Unit standing in for
// void.
package promise

// Promise is a read-only handle to a (possibly future) value of type T.
type Promise[T any] struct {
	s *state[T]
}

// Resolver is the write-only counterpart created alongside a Promise,
// used at the promise's source to eventually produce its value.
type Resolver[T any] struct {
	s *state[T]
}

// New returns a fresh, unresolved, unattached promise/resolver pair.
func New[T any]() (Promise[T], Resolver[T]) {
	s := newState[T]()
	return Promise[T]{s}, Resolver[T]{s}
}

// Resolved returns a Promise that is already resolved with v.
func Resolved[T any](v T) Promise[T] {
	s := newState[T]()
	s.resolved = true
	s.value = v
	return Promise[T]{s}
}

// IsResolved reports whether the promise has been resolved. Debug/test
// only — production code should never branch on it, only attach a
// handler.
func (p Promise[T]) IsResolved() bool {
	return p.s.isResolved()
}

// Resolve sets the promise's value. Calling it twice is fatal
// (CodeDoubleResolve). If a handler is already attached, it is posted to
// that handler's executor for execution.
func (r Resolver[T]) Resolve(v T) {
	r.s.resolve("Resolve", v)
}

// ResolveWith chains this promise to inner: once inner resolves (now or
// later), r resolves with inner's value. Always goes through ex, even if
// inner is already resolved.
func ResolveWith[T any](r Resolver[T], ex Executor, inner Promise[T]) {
	ThenVoid(inner, ex, func(v T) {
		r.Resolve(v)
	})
}

// ThenVoid registers f to run, via ex, when p resolves. Ends the chain —
// unlike Then, it returns nothing to attach further continuations to. At
// most one Then/ThenVoid per promise; a second call is fatal
// (CodeDoubleAttach).
func ThenVoid[T any](p Promise[T], ex Executor, f func(T)) {
	p.s.attach("ThenVoid", func(v T) {
		ex.Post(func() { f(v) })
	})
}

// Then registers a value handler f, returning a child promise resolved
// with f's return value once p resolves and f has run. The handler always
// runs in a new stack frame, via ex, even if p is already resolved.
func Then[T, U any](p Promise[T], ex Executor, f func(T) U) Promise[U] {
	child, resolver := New[U]()
	p.s.attach("Then", func(v T) {
		ex.Post(func() {
			resolver.Resolve(f(v))
		})
	})
	return child
}

// ThenFlat is Then's flattening overload: f returns a Promise[U] itself,
// and the returned child promise is resolved with that inner promise's
// eventual value rather than with the inner Promise[U] handle.
func ThenFlat[T, U any](p Promise[T], ex Executor, f func(T) Promise[U]) Promise[U] {
	child, resolver := New[U]()
	p.s.attach("ThenFlat", func(v T) {
		ex.Post(func() {
			inner := f(v)
			ResolveWith(resolver, ex, inner)
		})
	})
	return child
}
