package bridge

import "fmt"

// Stage names one recognized turn of the host loop's repeating cycle.
//
// The driver exposes exactly one turn per Stage. Within a cycle the host
// invokes the stages in the fixed order returned by Stages; FixedUpdate is
// the fixed-timestep variant and may run zero or more times per cycle
// depending on accumulated time - a detail owned by the host and merely
// observed here.
type Stage int

const (
	// First runs before anything else in the cycle.
	First Stage = iota
	// PreUpdate runs before the host's main update work.
	PreUpdate
	// FixedUpdate runs zero or more times per cycle on the fixed timestep.
	FixedUpdate
	// Update is the host's main update turn.
	Update
	// PostUpdate runs after the main update work.
	PostUpdate
	// Last runs after everything else in the cycle.
	Last

	numStages = int(Last) + 1
)

// stageOrder is the documented host-cycle order. Resolution order across
// stages within one cycle follows this sequence.
var stageOrder = [numStages]Stage{First, PreUpdate, FixedUpdate, Update, PostUpdate, Last}

var stageNames = [numStages]string{
	First:       "first",
	PreUpdate:   "pre_update",
	FixedUpdate: "fixed_update",
	Update:      "update",
	PostUpdate:  "post_update",
	Last:        "last",
}

// Stages returns all recognized stages in host-cycle order.
// The returned slice is a copy; callers may reorder it freely.
func Stages() []Stage {
	out := make([]Stage, numStages)
	copy(out, stageOrder[:])
	return out
}

// Valid reports whether s names a recognized stage.
func (s Stage) Valid() bool {
	return s >= First && s <= Last
}

// String returns the stage's snake_case name, as used in config and
// scenario files.
func (s Stage) String() string {
	if !s.Valid() {
		return fmt.Sprintf("unknown(%d)", int(s))
	}
	return stageNames[s]
}

// ParseStage parses a snake_case stage name.
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", name)
}
