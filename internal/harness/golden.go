package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// Struct field order is the serialization order; with no maps involved the
// JSON is byte-deterministic.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	StoreID      string       `json:"store_id,omitempty"`
	Trace        []TraceEvent `json:"trace"`
	FinalCounter int          `json:"final_counter"`
}

// RunWithGolden executes a scenario and compares the trace against a golden
// file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails; trace mismatch is a test
// failure via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, scenario.StoreID, result)
}

// AssertGolden compares an already-executed result's trace against the named
// golden file.
func AssertGolden(t *testing.T, scenarioName, storeID string, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		StoreID:      storeID,
		Trace:        result.Trace,
		FinalCounter: result.FinalCounter,
	}

	traceJSON, err := json.MarshalIndent(&snapshot, "", "  ")
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
