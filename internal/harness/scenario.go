package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/turnstile/bridge"
)

// Submission ops recognized by the harness.
const (
	// OpAdd observes the counter, buffers a deferred increment by Value,
	// and outputs the observed (pre-increment) value.
	OpAdd = "add"

	// OpRead outputs the counter's current value.
	OpRead = "read"

	// OpTrack runs on the scenario's persistent handle and outputs 1 if the
	// counter changed since the handle last looked, else 0.
	OpTrack = "track"
)

// Scenario defines a conformance test scenario.
// Scenarios validate the bridge's ordering, continuity, and cancellation
// guarantees by submitting work over rounds of host cycles and asserting on
// the resulting trace.
type Scenario struct {
	// Name uniquely identifies this scenario (and its golden file).
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// StoreID is the fixed store identity for deterministic traces.
	// Defaults to the testutil fixed-generator default when empty.
	StoreID string `yaml:"store_id,omitempty"`

	// Initial is the counter's starting value.
	Initial int `yaml:"initial"`

	// Rounds run in order: each round submits, then drives host cycles,
	// then resolves its futures in submission order.
	Rounds []Round `yaml:"rounds"`

	// Assertions validate the final trace and counter.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Round is one batch of submissions followed by one or more host cycles.
type Round struct {
	// Submit lists the submissions made before this round's cycles run.
	Submit []Submission `yaml:"submit,omitempty"`

	// Cycles is the number of full host cycles to drive (default 1).
	Cycles int `yaml:"cycles,omitempty"`
}

// Submission is one unit of work in a scenario.
type Submission struct {
	// Stage is the snake_case stage name to submit to.
	Stage string `yaml:"stage"`

	// Op is one of OpAdd, OpRead, OpTrack.
	Op string `yaml:"op"`

	// Value is the increment for OpAdd.
	Value int `yaml:"value,omitempty"`

	// Cancel drops the future before the round's cycles run, so the
	// continuation must never execute.
	Cancel bool `yaml:"cancel,omitempty"`
}

// Assertion validates the executed scenario.
// Supported types: output_order, final_counter, trace_count.
type Assertion struct {
	Type string `yaml:"type"`

	// Outputs is the expected resolved-output sequence (output_order).
	Outputs []int `yaml:"outputs,omitempty"`

	// Value is the expected final counter (final_counter).
	Value int `yaml:"value,omitempty"`

	// Event and Count select and count trace events (trace_count).
	Event string `yaml:"event,omitempty"`
	Count int    `yaml:"count,omitempty"`
}

// LoadScenario reads and validates a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("validate scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Validate checks the scenario's structure before execution.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	for i, round := range s.Rounds {
		if round.Cycles < 0 {
			return fmt.Errorf("round %d: cycles must be >= 0", i)
		}
		for j, sub := range round.Submit {
			if _, err := bridge.ParseStage(sub.Stage); err != nil {
				return fmt.Errorf("round %d submission %d: %w", i, j, err)
			}
			switch sub.Op {
			case OpAdd, OpRead, OpTrack:
			default:
				return fmt.Errorf("round %d submission %d: unknown op %q", i, j, sub.Op)
			}
		}
	}
	for i, a := range s.Assertions {
		switch a.Type {
		case AssertOutputOrder, AssertFinalCounter, AssertTraceCount:
		default:
			return fmt.Errorf("assertion %d: unknown type %q", i, a.Type)
		}
	}
	return nil
}
