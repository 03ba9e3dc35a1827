package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_CounterRounds(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("testdata", "scenarios", "counter_rounds.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "counter_rounds", sc.Name)
	assert.Equal(t, "test-store-yaml-counter", sc.StoreID)
	require.Len(t, sc.Rounds, 2)
	assert.Len(t, sc.Rounds[0].Submit, 2)
	assert.Len(t, sc.Assertions, 3)

	result, err := Run(sc)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestLoadScenario_TrackedChanges(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("testdata", "scenarios", "tracked_changes.yaml"))
	require.NoError(t, err)

	result, err := Run(sc)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, []int{1, 0, 1, 0}, result.Outputs)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "scenarios", "no_such_scenario.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read scenario")
}

func TestLoadScenario_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [unclosed"), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse scenario")
}

func TestScenarioValidate(t *testing.T) {
	valid := func() *Scenario {
		return &Scenario{
			Name: "valid",
			Rounds: []Round{
				{Submit: []Submission{{Stage: "update", Op: OpRead}}},
			},
		}
	}

	t.Run("valid scenario", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		sc := valid()
		sc.Name = ""
		err := sc.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("negative cycles", func(t *testing.T) {
		sc := valid()
		sc.Rounds[0].Cycles = -1
		err := sc.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cycles")
	})

	t.Run("unknown stage", func(t *testing.T) {
		sc := valid()
		sc.Rounds[0].Submit[0].Stage = "render"
		assert.Error(t, sc.Validate())
	})

	t.Run("unknown op", func(t *testing.T) {
		sc := valid()
		sc.Rounds[0].Submit[0].Op = "multiply"
		err := sc.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown op")
	})

	t.Run("unknown assertion type", func(t *testing.T) {
		sc := valid()
		sc.Assertions = []Assertion{{Type: "exact_trace"}}
		err := sc.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown assertion type")
	})
}
