package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorSizes(t *testing.T) {
	assert.Len(t, Mixed(), 32)
	assert.Len(t, MujocoRegular(), 24)
	assert.Len(t, AntmazeRegular(), 6)
	assert.Len(t, AntmazeBiased(), 4)
	assert.Len(t, Maze2dRegular(), 8)
	assert.Len(t, HandRegular(), 12)
	assert.Len(t, KitchenRegular(), 3)
}

func TestMixedNames(t *testing.T) {
	mixed := Mixed()
	assert.Equal(t, "ant-random-medium-0.01-v2", mixed[0].Env)
	assert.Equal(t, "walker2d-random-expert-0.5-v2", mixed[len(mixed)-1].Env)
	assert.Equal(t, "implicit_q_learning/configs/mujoco_config.py", mixed[0].ConfigPath())
}

func TestFamilies(t *testing.T) {
	assert.Equal(t, "implicit_q_learning/configs/antmaze_config.py", Maze2dRegular()[0].ConfigPath())
	assert.Equal(t, "implicit_q_learning/configs/kitchen_config.py", KitchenRegular()[0].ConfigPath())
	assert.Equal(t, "implicit_q_learning/configs/mujoco_config.py", Dataset{Env: "x"}.ConfigPath())
}

func TestKitchenOverrides(t *testing.T) {
	k := KitchenRegular()[1]
	assert.Equal(t, "kitchen-partial-v0", k.Env)
	require.Len(t, k.CQLOverrides, 4)
	assert.Equal(t, "--policy_arch=512-512-512", k.CQLOverrides[2].Render(EqualsStyle))
}

func TestGenerate(t *testing.T) {
	ds, err := Generate("mixed", "kitchen")
	require.NoError(t, err)
	assert.Len(t, ds, 35)

	_, err = Generate("atari")
	assert.Error(t, err)
}

func TestGeneratorNamesAreAccepted(t *testing.T) {
	names := GeneratorNames()
	assert.Len(t, names, len(generators))
	for _, n := range names {
		ds, err := Generate(n)
		require.NoError(t, err, n)
		assert.NotEmpty(t, ds, n)
	}
}

func TestFlagRender(t *testing.T) {
	f := Flag{Key: "env_name", Value: "hopper-medium-v2"}
	assert.Equal(t, "--env_name hopper-medium-v2", f.Render(SpaceStyle))
	assert.Equal(t, "--env_name=hopper-medium-v2", f.Render(EqualsStyle))
}
