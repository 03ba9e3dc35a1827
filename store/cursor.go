package store

// Cursor is the continuity state of a repeated observer: the tick at which
// the observer last ran.
//
// A fresh Cursor (zero value) has seen nothing, so every existing resource
// reads as changed on first observation. After each access the bridge
// advances the cursor past the ticks that access could observe, including
// the observer's own writes - an observer does not re-trigger on itself.
//
// Ownership: a Cursor is exclusively owned by whichever handle holds it.
// It is deliberately unlocked; overlapping use is a caller error rejected
// upstream by the handle's reentrancy guard.
type Cursor struct {
	lastRun int64
}

// LastRun returns the tick at which the owning observer last ran
// (0 if it never ran).
func (c *Cursor) LastRun() int64 {
	return c.lastRun
}

// Advance moves the cursor to the given tick. Advance never moves backwards.
func (c *Cursor) Advance(tick int64) {
	if tick > c.lastRun {
		c.lastRun = tick
	}
}

// Realizer materializes a capability descriptor D from a borrowed View,
// consulting and later advancing the observer's Cursor. The set of Realizer
// constructors below is the registry of "how to realize descriptor D";
// callers may add their own for composite descriptors.
type Realizer[D any] func(v *View, cur *Cursor) D

// Tracked is read/write access to the resource of type T with change
// detection relative to an observer's Cursor.
type Tracked[T any] struct {
	view   *View
	cursor *Cursor
}

// Get returns a mutable pointer to the resource, stamping its changed tick.
// Returns false if the resource is absent.
func (t Tracked[T]) Get() (*T, bool) {
	return Res[T](t.view)
}

// Read returns a copy of the resource without stamping anything.
func (t Tracked[T]) Read() (T, bool) {
	return ReadRes[T](t.view)
}

// Changed reports whether the resource changed since this observer last ran.
// An absent resource reads as unchanged.
func (t Tracked[T]) Changed() bool {
	t.view.check()
	entry, ok := lookup[T](t.view.store)
	if !ok {
		return false
	}
	return entry.changed > t.cursor.lastRun
}

// TrackedResource realizes change-tracked access to the resource of type T.
func TrackedResource[T any]() Realizer[Tracked[T]] {
	return func(v *View, cur *Cursor) Tracked[T] {
		return Tracked[T]{view: v, cursor: cur}
	}
}

// ViewAccess realizes the full capability surface - the View itself - for
// handles that want everything and only reuse the cursor implicitly.
func ViewAccess() Realizer[*View] {
	return func(v *View, cur *Cursor) *View {
		return v
	}
}
