package harness

import (
	"fmt"
	"strings"
)

// Assertion types.
const (
	// AssertOutputOrder checks the resolved outputs, in order.
	AssertOutputOrder = "output_order"

	// AssertFinalCounter checks the counter's value after all rounds.
	AssertFinalCounter = "final_counter"

	// AssertTraceCount checks the number of trace events of one type.
	AssertTraceCount = "trace_count"
)

// AssertionError is returned when an assertion fails.
// It includes the full trace to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for i, event := range e.Trace {
		if event.Output != nil {
			fmt.Fprintf(&buf, "  [%d] %s %s/%s -> %d\n", i+1, event.Type, event.Stage, event.Op, *event.Output)
		} else {
			fmt.Fprintf(&buf, "  [%d] %s %s/%s\n", i+1, event.Type, event.Stage, event.Op)
		}
	}

	return buf.String()
}

// evaluateAssertions runs every assertion, recording failures on the result.
// All assertions run regardless of earlier failures, so one run reports
// everything that is wrong.
func evaluateAssertions(assertions []Assertion, result *Result) {
	for _, a := range assertions {
		if err := evaluate(a, result); err != nil {
			result.AddError(err.Error())
		}
	}
}

func evaluate(a Assertion, result *Result) error {
	switch a.Type {
	case AssertOutputOrder:
		return assertOutputOrder(a, result)
	case AssertFinalCounter:
		return assertFinalCounter(a, result)
	case AssertTraceCount:
		return assertTraceCount(a, result)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertOutputOrder(a Assertion, result *Result) error {
	if len(result.Outputs) != len(a.Outputs) {
		return &AssertionError{
			Type:     AssertOutputOrder,
			Expected: fmt.Sprintf("%d outputs %v", len(a.Outputs), a.Outputs),
			Actual:   fmt.Sprintf("%d outputs %v", len(result.Outputs), result.Outputs),
			Trace:    result.Trace,
		}
	}
	for i, want := range a.Outputs {
		if result.Outputs[i] != want {
			return &AssertionError{
				Type:     AssertOutputOrder,
				Expected: fmt.Sprintf("output[%d] = %d in %v", i, want, a.Outputs),
				Actual:   fmt.Sprintf("output[%d] = %d in %v", i, result.Outputs[i], result.Outputs),
				Trace:    result.Trace,
			}
		}
	}
	return nil
}

func assertFinalCounter(a Assertion, result *Result) error {
	if result.FinalCounter != a.Value {
		return &AssertionError{
			Type:     AssertFinalCounter,
			Expected: fmt.Sprintf("final counter %d", a.Value),
			Actual:   fmt.Sprintf("final counter %d", result.FinalCounter),
			Trace:    result.Trace,
		}
	}
	return nil
}

func assertTraceCount(a Assertion, result *Result) error {
	got := result.CountEvents(a.Event)
	if got != a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d %q events", a.Count, a.Event),
			Actual:   fmt.Sprintf("%d %q events", got, a.Event),
			Trace:    result.Trace,
		}
	}
	return nil
}
