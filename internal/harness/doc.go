// Package harness provides a conformance testing framework for the bridge.
//
// A scenario describes rounds of submissions against a counter resource and
// the host cycles that drive them; the harness executes it end to end against
// a real store and driver and records a deterministic trace:
//
//   - deterministic store identity (internal/testutil fixed generator)
//   - deterministic event sequence numbers (internal/testutil clock)
//   - futures resolved and traced in submission order
//
// Traces are validated two ways: scenario assertions (output order, final
// counter value, event counts) and goldie golden files for byte-exact
// comparison across runs.
//
// Scenarios are defined in Go or loaded from YAML files under
// testdata/scenarios.
package harness
