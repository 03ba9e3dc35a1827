package bridge

import (
	"sync"

	"github.com/roach88/turnstile/store"
)

// registry is the process-wide table mapping a live store identity to its
// pending queues, one per recognized stage.
//
// Entries are added by NewDriver and removed by Driver.Close. Submissions
// look identities up here; a missing entry is a stale identity and fails the
// submission synchronously - never a silent misroute to a different store.
type registry struct {
	mu     sync.Mutex
	stores map[store.Identity]*registration
}

// registration is one live store's bridge state.
type registration struct {
	st     *store.Store
	queues [numStages]*pendingQueue
}

func newRegistry() *registry {
	return &registry{stores: make(map[store.Identity]*registration)}
}

// defaultRegistry backs the package-level Submit/NewHandle API, mirroring
// the process-wide table the host loop's stores live in.
var defaultRegistry = newRegistry()

// add registers a store and builds its per-stage queues.
// capacityFor returns the queue bound for each stage (0 = unbounded).
func (r *registry) add(st *store.Store, capacityFor func(Stage) int) (*registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stores[st.ID()]; exists {
		return nil, newDuplicateStoreError(st.ID())
	}

	reg := &registration{st: st}
	for _, stage := range stageOrder {
		reg.queues[stage] = newPendingQueue(capacityFor(stage))
	}
	r.stores[st.ID()] = reg
	return reg, nil
}

// lookup resolves an identity to its live registration.
func (r *registry) lookup(id store.Identity) (*registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.stores[id]
	if !ok {
		return nil, newStaleStoreError(id)
	}
	return reg, nil
}

// remove deletes an identity's registration. Requests already holding the
// registration race its closing queues, not the map.
func (r *registry) remove(id store.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, id)
}

// submit enqueues a request with its target's queue, translating queue
// sentinels into caller-facing errors. The closed-queue case means the store
// was torn down between lookup and enqueue - still a stale identity from the
// submitter's point of view.
func (reg *registration) submit(req *request) error {
	q := reg.queues[req.stage]
	if err := q.enqueue(req); err != nil {
		switch err {
		case errQueueClosed:
			return newStaleStoreError(req.id)
		case errQueueFull:
			return newQueueOverflowError(req.id, req.stage, q.capacity)
		default:
			return err
		}
	}
	return nil
}
