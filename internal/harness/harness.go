package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/turnstile/bridge"
	"github.com/roach88/turnstile/internal/testutil"
	"github.com/roach88/turnstile/store"
)

// Counter is the scenario resource every op works against.
type Counter struct {
	Value int
}

// Harness executes one scenario against a real store and driver.
type Harness struct {
	driver *bridge.Driver
	cycle  *hostCycle
	clock  *testutil.DeterministicClock
	handle *bridge.Handle[store.Tracked[Counter]]
	logger *slog.Logger
}

// pendingFuture pairs a submission with its future for post-cycle resolution.
type pendingFuture struct {
	sub    Submission
	future *bridge.Future[int]
}

// waitTimeout bounds every future resolution; a scenario that leaves a
// future unresolved is a harness bug, not a hang.
const waitTimeout = 5 * time.Second

// Run executes a scenario and returns its result.
//
// Each scenario runs against a fresh store with a fixed identity and a
// fresh driver, registered through bridge.Install on a scripted host cycle.
// Deterministic helpers ensure reproducible traces:
// 1. Create store (fixed identity) and driver
// 2. For each round: submit, apply cancels, drive the round's host cycles
// 3. Resolve the round's futures in submission order, tracing outcomes
// 4. Read the final counter host-side and evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	st := store.New(store.WithIdentityGenerator(
		testutil.NewFixedIdentityGenerator(store.Identity(scenario.StoreID)),
	))
	store.Insert(st, Counter{Value: scenario.Initial})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // suppress logs in tests
	driver, err := bridge.NewDriver(st, bridge.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("register driver: %w", err)
	}
	defer driver.Close()

	cycle := newHostCycle()
	driver.Install(cycle)

	h := &Harness{
		driver: driver,
		cycle:  cycle,
		clock:  testutil.NewDeterministicClock(),
		logger: logger,
	}

	result := NewResult()
	for i, round := range scenario.Rounds {
		if err := h.executeRound(round, result); err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}
	}

	final, ok := store.Get[Counter](st)
	if !ok {
		return nil, fmt.Errorf("counter resource missing after execution")
	}
	result.FinalCounter = final.Value

	evaluateAssertions(scenario.Assertions, result)
	return result, nil
}

// executeRound submits the round's work, drives its cycles, and resolves
// its futures in submission order.
func (h *Harness) executeRound(round Round, result *Result) error {
	pending := make([]pendingFuture, 0, len(round.Submit))
	for _, sub := range round.Submit {
		f, err := h.submit(sub)
		if err != nil {
			return fmt.Errorf("submit %s/%s: %w", sub.Stage, sub.Op, err)
		}
		result.addSubmitted(sub.Stage, sub.Op, h.clock.Next())
		pending = append(pending, pendingFuture{sub: sub, future: f})
	}

	// Cancels land strictly before any turn runs.
	for _, p := range pending {
		if p.sub.Cancel {
			p.future.Cancel()
		}
	}

	cycles := round.Cycles
	if cycles == 0 {
		cycles = 1
	}
	for i := 0; i < cycles; i++ {
		h.cycle.RunCycle()
	}

	for _, p := range pending {
		if err := h.resolve(p, result); err != nil {
			return err
		}
	}
	return nil
}

// submit builds the future for one submission.
func (h *Harness) submit(sub Submission) (*bridge.Future[int], error) {
	stage, err := bridge.ParseStage(sub.Stage)
	if err != nil {
		return nil, err
	}
	id := h.driver.Store().ID()

	switch sub.Op {
	case OpAdd:
		n := sub.Value
		return bridge.Submit(id, stage, func(v *store.View) int {
			observed, _ := store.ReadRes[Counter](v)
			store.AddUpdate(v.Commands(), func(c *Counter) { c.Value += n })
			return observed.Value
		})

	case OpRead:
		return bridge.Submit(id, stage, func(v *store.View) int {
			observed, _ := store.ReadRes[Counter](v)
			return observed.Value
		})

	case OpTrack:
		if h.handle == nil {
			handle, err := bridge.NewHandle(id, store.TrackedResource[Counter]())
			if err != nil {
				return nil, err
			}
			h.handle = handle
		}
		return bridge.Run(h.handle, stage, func(tr store.Tracked[Counter]) int {
			if tr.Changed() {
				return 1
			}
			return 0
		})

	default:
		return nil, fmt.Errorf("unknown op %q", sub.Op)
	}
}

// resolve waits for one future and traces its terminal outcome.
func (h *Harness) resolve(p pendingFuture, result *Result) error {
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()

	output, err := p.future.Wait(ctx)
	switch {
	case err == nil:
		result.addResolved(p.sub.Stage, p.sub.Op, h.clock.Next(), output)
	case bridge.IsCancelled(err):
		result.addCancelled(p.sub.Stage, p.sub.Op, h.clock.Next())
	default:
		return fmt.Errorf("resolve %s/%s: %w", p.sub.Stage, p.sub.Op, err)
	}
	return nil
}

// hostCycle is the harness's scripted host loop: it holds the driver's
// installed turns and invokes them in the documented stage order.
type hostCycle struct {
	turns map[bridge.Stage]func()
}

func newHostCycle() *hostCycle {
	return &hostCycle{turns: make(map[bridge.Stage]func())}
}

// AddTurn implements bridge.Cycle.
func (c *hostCycle) AddTurn(stage bridge.Stage, turn func()) {
	c.turns[stage] = turn
}

// RunCycle drives one full host cycle: every installed turn once, in order.
func (c *hostCycle) RunCycle() {
	for _, stage := range bridge.Stages() {
		if turn, ok := c.turns[stage]; ok {
			turn()
		}
	}
}
