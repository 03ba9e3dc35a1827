package store

import (
	"reflect"
	"sort"
)

// Store is the shared mutable resource table driven by a host loop.
//
// Resources are singletons keyed by their Go type. Each entry carries the
// logical ticks at which it was added and last changed; those ticks feed the
// continuity capability (Cursor / Tracked).
//
// Thread-safety model:
//   - ID(): safe from any goroutine (immutable after construction)
//   - Everything else: single-owner only. The host loop owns the store
//     outside turns; a bridge driver owns it for the duration of one turn.
//     There is no internal locking - exclusive access is structural.
type Store struct {
	id        Identity
	clock     *TickClock
	resources map[reflect.Type]*resourceEntry
}

type resourceEntry struct {
	value   any // always a *T for the entry's resource type
	added   int64
	changed int64
}

// Option configures a Store at construction time.
type Option func(*storeConfig)

type storeConfig struct {
	idGen IdentityGenerator
	clock *TickClock
}

// WithIdentityGenerator overrides the identity generator.
// Tests use fixed generators for deterministic identities.
func WithIdentityGenerator(g IdentityGenerator) Option {
	return func(c *storeConfig) {
		c.idGen = g
	}
}

// WithTickClock overrides the store's change clock.
// Tests use pre-positioned clocks to pin change detection to known ticks.
func WithTickClock(clock *TickClock) Option {
	return func(c *storeConfig) {
		c.clock = clock
	}
}

// New creates an empty Store with a fresh identity.
//
// Defaults: UUIDv7 identities, a zero-positioned TickClock.
func New(opts ...Option) *Store {
	cfg := storeConfig{
		idGen: UUIDv7Generator{},
		clock: NewTickClock(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Store{
		id:        cfg.idGen.Generate(),
		clock:     cfg.clock,
		resources: make(map[reflect.Type]*resourceEntry),
	}
}

// ID returns the store's identity.
//
// This is the synchronous answer to "which store am I in" for code running
// inside a normal host turn, which holds the *Store directly. Bridged
// continuations use View.StoreID instead.
func (s *Store) ID() Identity {
	return s.id
}

// Clock returns the store's change clock.
// Used by external code to read the current tick (e.g. to position cursors).
func (s *Store) Clock() *TickClock {
	return s.clock
}

// Len returns the number of resources currently in the store.
func (s *Store) Len() int {
	return len(s.resources)
}

// Borrow begins a scoped borrow of the store and returns the View for it.
//
// The caller must end the borrow with View.Close (applies deferred commands)
// or View.Discard (drops them). The bridge driver opens one borrow per
// request; host-side code that wants the same capability surface may borrow
// directly between turns.
func (s *Store) Borrow() *View {
	return &View{store: s}
}

// Insert adds or replaces the resource of type T, stamping its changed tick.
// Host-side mutation; continuations mutate through a View instead.
func Insert[T any](s *Store, value T) {
	key := resourceKey[T]()
	tick := s.clock.Next()

	if entry, ok := s.resources[key]; ok {
		entry.value = &value
		entry.changed = tick
		return
	}
	s.resources[key] = &resourceEntry{
		value:   &value,
		added:   tick,
		changed: tick,
	}
}

// Get returns a pointer to the resource of type T, or false if absent.
//
// Get does NOT stamp the changed tick. Host-side callers that mutate through
// the returned pointer and want change detection to observe it should use
// Touch afterwards, or Insert a replacement value.
func Get[T any](s *Store) (*T, bool) {
	entry, ok := s.resources[resourceKey[T]()]
	if !ok {
		return nil, false
	}
	return entry.value.(*T), true
}

// Touch stamps the changed tick of the resource of type T, if present.
// Returns false if the resource is absent.
func Touch[T any](s *Store) bool {
	entry, ok := s.resources[resourceKey[T]()]
	if !ok {
		return false
	}
	entry.changed = s.clock.Next()
	return true
}

// Remove deletes the resource of type T. Removing an absent resource is a
// no-op; returns whether anything was removed.
func Remove[T any](s *Store) bool {
	key := resourceKey[T]()
	if _, ok := s.resources[key]; !ok {
		return false
	}
	delete(s.resources, key)
	return true
}

// ResourceInfo describes one store entry for query access.
type ResourceInfo struct {
	// Type is the fully qualified resource type name.
	Type string

	// Added is the tick at which the resource was first inserted.
	Added int64

	// Changed is the tick of the most recent mutation.
	Changed int64
}

// queryInfo enumerates entries sorted by type name for deterministic output.
func (s *Store) queryInfo() []ResourceInfo {
	infos := make([]ResourceInfo, 0, len(s.resources))
	for key, entry := range s.resources {
		infos = append(infos, ResourceInfo{
			Type:    key.String(),
			Added:   entry.added,
			Changed: entry.changed,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Type < infos[j].Type })
	return infos
}

// lookup returns the entry for type T without stamping anything.
func lookup[T any](s *Store) (*resourceEntry, bool) {
	entry, ok := s.resources[resourceKey[T]()]
	return entry, ok
}

func resourceKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
