package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStages_HostCycleOrder(t *testing.T) {
	assert.Equal(t,
		[]Stage{First, PreUpdate, FixedUpdate, Update, PostUpdate, Last},
		Stages(),
	)
}

func TestStages_ReturnsCopy(t *testing.T) {
	a := Stages()
	a[0] = Last

	assert.Equal(t, First, Stages()[0])
}

func TestStage_StringRoundTrip(t *testing.T) {
	for _, stage := range Stages() {
		parsed, err := ParseStage(stage.String())
		require.NoError(t, err, "stage %v", stage)
		assert.Equal(t, stage, parsed)
	}
}

func TestStage_StringNames(t *testing.T) {
	assert.Equal(t, "first", First.String())
	assert.Equal(t, "pre_update", PreUpdate.String())
	assert.Equal(t, "fixed_update", FixedUpdate.String())
	assert.Equal(t, "update", Update.String())
	assert.Equal(t, "post_update", PostUpdate.String())
	assert.Equal(t, "last", Last.String())
}

func TestStage_Unknown(t *testing.T) {
	_, err := ParseStage("startup")
	assert.Error(t, err)

	assert.False(t, Stage(99).Valid())
	assert.Equal(t, "unknown(99)", Stage(99).String())
	assert.True(t, Update.Valid())
}
