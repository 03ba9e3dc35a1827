package store

// View is a scoped borrow of a Store: the capability token handed to a
// continuation for the duration of exactly one driver turn.
//
// A View is borrowed, not stored. Its validity is tied to the borrow that
// created it - once the borrow ends (Close or Discard), resource and command
// access through the View panics. This is the structural enforcement of
// "capability never outlives its turn": a continuation that smuggles a View
// out of its invocation frame fails fast on the next access instead of
// silently racing the host loop.
//
// StoreID and Tick remain callable after the borrow ends; they expose no
// access to store contents.
type View struct {
	store   *Store
	cmds    *CommandBuffer
	expired bool
}

// StoreID returns the identity of the borrowed store.
func (v *View) StoreID() Identity {
	return v.store.id
}

// Tick returns the store clock's current tick.
// Cursors advanced to this tick will not re-observe writes stamped so far.
func (v *View) Tick() int64 {
	return v.store.clock.Current()
}

// Commands returns the View's deferred-mutation buffer, creating it on first
// use. Buffered commands are applied in order when the borrow ends via Close.
func (v *View) Commands() *CommandBuffer {
	v.check()
	if v.cmds == nil {
		v.cmds = &CommandBuffer{}
	}
	return v.cmds
}

// Query enumerates the store's entries and their ticks, sorted by type name.
func (v *View) Query() []ResourceInfo {
	v.check()
	return v.store.queryInfo()
}

// Close ends the borrow, applying any deferred commands in the order they
// were buffered. Applying happens while exclusive access is still held, so a
// later request in the same turn observes this one's effects.
//
// Close on an already-ended View is a no-op.
func (v *View) Close() {
	if v.expired {
		return
	}
	v.expired = true
	if v.cmds != nil {
		v.cmds.apply(v.store)
		v.cmds = nil
	}
}

// Discard ends the borrow WITHOUT applying deferred commands.
// Used by the driver when a continuation panics mid-turn: whatever the
// continuation already committed through Res stands, but its buffered
// commands are dropped.
func (v *View) Discard() {
	v.expired = true
	v.cmds = nil
}

// check panics if the borrow has ended. Fail-fast: an expired View in a live
// code path is always a caller bug (a capability escaped its turn).
func (v *View) check() {
	if v.expired {
		panic("store: View used outside its turn (capability is borrowed, not stored)")
	}
}

// Res returns a mutable pointer to the resource of type T through a View,
// stamping the entry's changed tick. Returns false if the resource is absent.
//
// The stamp happens at acquisition: the mechanism assumes a mutable borrow
// mutates. Use ReadRes for access that must not trip change detection.
func Res[T any](v *View) (*T, bool) {
	v.check()
	entry, ok := lookup[T](v.store)
	if !ok {
		return nil, false
	}
	entry.changed = v.store.clock.Next()
	return entry.value.(*T), true
}

// ReadRes returns a copy of the resource of type T through a View.
// Does not stamp the changed tick. Returns the zero value and false if the
// resource is absent.
func ReadRes[T any](v *View) (T, bool) {
	v.check()
	entry, ok := lookup[T](v.store)
	if !ok {
		var zero T
		return zero, false
	}
	return *entry.value.(*T), true
}
