package harness

// Trace event types recorded during scenario execution.
const (
	// EventSubmitted records a request entering its stage queue.
	EventSubmitted = "submitted"

	// EventResolved records a future resolving with an output.
	EventResolved = "resolved"

	// EventCancelled records a future whose continuation never ran.
	EventCancelled = "cancelled"
)

// TraceEvent is one entry in a scenario's deterministic trace.
// Field order is the golden-file serialization order.
type TraceEvent struct {
	Type  string `json:"type"`
	Stage string `json:"stage"`
	Op    string `json:"op"`
	Seq   int64  `json:"seq"`

	// Output is set on resolved events only; a pointer keeps legitimate
	// zero outputs distinguishable from "no output".
	Output *int `json:"output,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: all assertions held.
	Pass bool `json:"pass"`

	// Trace contains all submitted/resolved/cancelled events in order.
	Trace []TraceEvent `json:"trace"`

	// Outputs are the resolved outputs in submission order.
	Outputs []int `json:"outputs"`

	// FinalCounter is the counter's value after all rounds.
	FinalCounter int `json:"final_counter"`

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result. Execution and assertions may
// downgrade it.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Outputs: []int{},
	}
}

// AddError adds a failure message and marks the result failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

func (r *Result) addSubmitted(stage, op string, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{Type: EventSubmitted, Stage: stage, Op: op, Seq: seq})
}

func (r *Result) addResolved(stage, op string, seq int64, output int) {
	r.Trace = append(r.Trace, TraceEvent{Type: EventResolved, Stage: stage, Op: op, Seq: seq, Output: &output})
	r.Outputs = append(r.Outputs, output)
}

func (r *Result) addCancelled(stage, op string, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{Type: EventCancelled, Stage: stage, Op: op, Seq: seq})
}

// CountEvents returns the number of trace events of the given type.
func (r *Result) CountEvents(eventType string) int {
	n := 0
	for _, e := range r.Trace {
		if e.Type == eventType {
			n++
		}
	}
	return n
}
