package bridge

import (
	"log/slog"
	"sync"

	"github.com/roach88/turnstile/store"
)

// Cycle is the host loop's registration surface: one callable turn per
// recognized stage. The host invokes installed turns in the documented stage
// order exactly once per stage per cycle (fixed-step stages zero or more
// times, a detail the host owns).
type Cycle interface {
	AddTurn(stage Stage, turn func())
}

// Driver exposes one turn per stage over one registered store.
//
// Creating a Driver registers the store's identity and pending queues in the
// process-wide registry; Close tears them down and cancels whatever is still
// pending. The host loop calls Turn (directly or via Install); everything
// the driver does to the store happens inside those calls, so exclusive
// access never spans more than one turn.
type Driver struct {
	st        *store.Store
	reg       *registration
	registry  *registry
	logger    *slog.Logger
	closeOnce sync.Once
}

// DriverOption configures a Driver at construction time.
type DriverOption func(*driverConfig)

type driverConfig struct {
	logger    *slog.Logger
	queueCap  int
	stageCaps map[Stage]int
}

// WithLogger overrides the driver's logger (default: slog.Default()).
func WithLogger(logger *slog.Logger) DriverOption {
	return func(c *driverConfig) {
		c.logger = logger
	}
}

// WithQueueCapacity bounds every stage queue to n pending requests.
// Submissions beyond the bound fail synchronously with QUEUE_OVERFLOW; the
// caller may retry on a later turn. 0 means unbounded (the default).
func WithQueueCapacity(n int) DriverOption {
	return func(c *driverConfig) {
		c.queueCap = n
	}
}

// WithStageQueueCapacity bounds one stage's queue, overriding
// WithQueueCapacity for that stage.
func WithStageQueueCapacity(stage Stage, n int) DriverOption {
	return func(c *driverConfig) {
		if c.stageCaps == nil {
			c.stageCaps = make(map[Stage]int)
		}
		c.stageCaps[stage] = n
	}
}

// NewDriver registers st and returns its driver.
//
// Fails with DUPLICATE_STORE if a driver is already registered for the
// store's identity. The registration lives until Close.
func NewDriver(st *store.Store, opts ...DriverOption) (*Driver, error) {
	cfg := driverConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	capacityFor := func(stage Stage) int {
		if n, ok := cfg.stageCaps[stage]; ok {
			return n
		}
		return cfg.queueCap
	}

	reg, err := defaultRegistry.add(st, capacityFor)
	if err != nil {
		return nil, err
	}

	d := &Driver{
		st:       st,
		reg:      reg,
		registry: defaultRegistry,
		logger:   cfg.logger,
	}
	d.logger.Info("driver registered", "store", st.ID())
	return d, nil
}

// Store returns the driven store.
func (d *Driver) Store() *store.Store {
	return d.st
}

// PendingLen returns the number of requests waiting for the given stage.
// Useful for monitoring and testing.
func (d *Driver) PendingLen(stage Stage) int {
	return d.reg.queues[stage].len()
}

// Install registers one turn per recognized stage into the host loop.
// The host is assumed to exist externally and to invoke the turns per the
// Cycle contract.
func (d *Driver) Install(c Cycle) {
	for _, stage := range stageOrder {
		c.AddTurn(stage, func() { d.Turn(stage) })
	}
}

// Turn runs one turn of the given stage: snapshot the stage's queue, gain
// exclusive store access, execute each request in FIFO order (applying its
// deferred mutations before the next request runs), fill completion slots,
// release.
//
// Must be called from the host loop's goroutine. Requests enqueued while the
// turn runs are excluded from its snapshot and wait for the next turn. A
// continuation that fails - even one that panics - never aborts the turn;
// the driver proceeds to later requests regardless.
func (d *Driver) Turn(stage Stage) {
	batch := d.reg.queues[stage].detach()
	if len(batch) == 0 {
		return
	}

	d.logger.Debug("stage turn draining",
		"store", d.st.ID(),
		"stage", stage,
		"requests", len(batch),
	)

	for _, req := range batch {
		if !req.begin() {
			// Cancelled strictly before processing: the continuation
			// never runs.
			d.logger.Debug("request cancelled before execution",
				"store", d.st.ID(),
				"stage", stage,
				"seq", req.seq,
			)
			continue
		}
		d.execute(req)
	}
}

// execute runs one claimed request against a fresh scoped borrow.
func (d *Driver) execute(req *request) {
	view := d.st.Borrow()
	defer func() {
		if r := recover(); r != nil {
			view.Discard()
			req.fail(r)
			d.logger.Error("continuation panicked",
				"store", d.st.ID(),
				"stage", req.stage,
				"seq", req.seq,
				"panic", r,
			)
		}
	}()

	req.run(view)
	req.finish()
}

// Close deregisters the store and cancels all pending requests. Their
// waiters observe CANCELLED; new submissions against the identity fail with
// STALE_STORE. Close is idempotent.
func (d *Driver) Close() {
	d.closeOnce.Do(func() {
		d.registry.remove(d.st.ID())

		cancelled := 0
		for _, stage := range stageOrder {
			for _, req := range d.reg.queues[stage].close() {
				if req.cancel() {
					cancelled++
				}
			}
		}

		d.logger.Info("driver closed",
			"store", d.st.ID(),
			"cancelled", cancelled,
		)
	})
}
