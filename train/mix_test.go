package train

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMixCountsAddUp(t *testing.T) {
	plan, err := Mix("hopper", 1000000, []string{"random-v2", "expert-v2"}, []float64{0.9, 0.1})
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "hopper-random-v2", plan[0].Dataset)
	assert.Equal(t, 900000, plan[0].Count)
	assert.Equal(t, 100000, plan[1].Count)
	assert.Equal(t, 1000000, plan.Total())
}

func TestMixNormalizesAndHandsOutRemainder(t *testing.T) {
	plan, err := Mix("ant", 10, []string{"a", "b", "c"}, []float64{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 10, plan.Total())
	assert.Equal(t, 4, plan[0].Count)
	assert.Equal(t, 3, plan[1].Count)
	assert.Equal(t, 3, plan[2].Count)
	assert.InDelta(t, 1.0/3, plan[2].Ratio, 1e-12)
}

func TestMixErrors(t *testing.T) {
	_, err := Mix("ant", 10, nil, nil)
	assert.ErrorIs(t, err, ErrMissingDatasets)

	_, err = Mix("ant", 10, []string{"a"}, []float64{-1})
	assert.Error(t, err)

	for _, bad := range [][]float64{
		{math.Inf(1), 1},
		{1, math.Inf(-1)},
		{math.NaN(), 1},
		{math.MaxFloat64, math.MaxFloat64},
	} {
		_, err = Mix("ant", 1000000, []string{"a", "b"}, bad)
		assert.Error(t, err, "%v", bad)
	}
}

func TestParseMixedEnv(t *testing.T) {
	env, types, ratios, err := ParseMixedEnv("hopper-random-expert-0.1-v2")
	require.NoError(t, err)
	assert.Equal(t, "hopper", env)
	assert.Equal(t, []string{"random-v2", "expert-v2"}, types)
	require.Len(t, ratios, 2)
	assert.InDelta(t, 0.9, ratios[0], 1e-12)
	assert.InDelta(t, 0.1, ratios[1], 1e-12)

	for _, bad := range []string{"hopper-medium-v2", "hopper-random-expert-x-v2", "hopper-random-expert-1-v2", "hopper-random-expert-nan-v2"} {
		_, _, _, err := ParseMixedEnv(bad)
		assert.Error(t, err, bad)
	}
}
