package store

// A command is one deferred mutation, applied against the store when the
// borrow that buffered it ends.
type command interface {
	apply(s *Store)
}

// CommandBuffer collects deferred mutations in submission order.
//
// Continuations that only need to mutate "eventually, before the next
// request sees the store" buffer commands instead of taking Res pointers.
// The driver applies each request's buffer before the next request in the
// same turn runs, so effects are observed in submission order.
//
// A CommandBuffer belongs to exactly one View and is not safe for concurrent
// use - the turn is single-threaded by construction.
type CommandBuffer struct {
	cmds []command
}

// Len returns the number of buffered commands.
func (b *CommandBuffer) Len() int {
	return len(b.cmds)
}

func (b *CommandBuffer) apply(s *Store) {
	for _, cmd := range b.cmds {
		cmd.apply(s)
	}
	b.cmds = nil
}

// AddInsert buffers an insert-or-replace of the resource of type T.
func AddInsert[T any](b *CommandBuffer, value T) {
	b.cmds = append(b.cmds, insertCmd[T]{value: value})
}

// AddRemove buffers a removal of the resource of type T.
// Applying against an absent resource is a no-op.
func AddRemove[T any](b *CommandBuffer) {
	b.cmds = append(b.cmds, removeCmd[T]{})
}

// AddUpdate buffers an in-place update of the resource of type T.
// The function runs at apply time; if the resource is absent by then, the
// update is skipped.
func AddUpdate[T any](b *CommandBuffer, fn func(*T)) {
	b.cmds = append(b.cmds, updateCmd[T]{fn: fn})
}

type insertCmd[T any] struct {
	value T
}

func (c insertCmd[T]) apply(s *Store) {
	Insert(s, c.value)
}

type removeCmd[T any] struct{}

func (c removeCmd[T]) apply(s *Store) {
	Remove[T](s)
}

type updateCmd[T any] struct {
	fn func(*T)
}

func (c updateCmd[T]) apply(s *Store) {
	entry, ok := lookup[T](s)
	if !ok {
		return
	}
	c.fn(entry.value.(*T))
	entry.changed = s.clock.Next()
}
