package train

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArgs() *Args {
	a := DefaultArgs()
	a.DatasetTypes = []string{"random-v2", "expert-v2"}
	a.DatasetRatios = []float64{0.9, 0.1}
	return a
}

func TestExperimentName(t *testing.T) {
	assert.Equal(t, "CQL_random-v2+expert-v2_0.9+0.1_1000000_1", ExperimentName(CQL, testArgs()))
}

func TestNewCQLPlan(t *testing.T) {
	p, err := NewCQLPlan(testArgs())
	require.NoError(t, err)
	require.NotNil(t, p.CQL)
	assert.Nil(t, p.IQL)
	assert.Nil(t, p.GPU)
	assert.Equal(t, 5.0, p.CQL.ConservativeWeight)
	assert.Equal(t, []int{256, 256, 256}, p.CQL.EncoderHiddenUnits)
	assert.Equal(t, 500000, p.Fit.NSteps)
	assert.Equal(t, 1000000, p.Mix.Total())
}

func TestNewIQLPlanWithPreset(t *testing.T) {
	args := testArgs()
	args.GPU = 1
	p, err := NewIQLPlan(args, "mujoco_expa_50")
	require.NoError(t, err)
	require.NotNil(t, p.IQL)
	require.NotNil(t, p.GPU)
	assert.Equal(t, 1, *p.GPU)
	assert.Equal(t, []int{128, 128}, p.IQL.HiddenUnits)
	assert.Equal(t, 100.0, p.IQL.MaxWeight)
	assert.Equal(t, 0.99, p.IQL.Discount)
	assert.Equal(t, 1000.0, p.IQL.RewardScale)
	assert.Equal(t, p.Fit.NSteps, p.IQL.ActorCosineSteps)

	_, err = NewIQLPlan(args, "nope")
	assert.Error(t, err)
}

func TestPlanInvalidArgs(t *testing.T) {
	_, err := NewCQLPlan(DefaultArgs())
	assert.ErrorIs(t, err, ErrMissingDatasets)
}

func TestRunnerRun(t *testing.T) {
	dir := t.TempDir()
	out := new(bytes.Buffer)

	args := testArgs()
	args.GPU = 3
	p, err := NewCQLPlan(args)
	require.NoError(t, err)

	// stand in for the python side: print the device and the plan argument
	r := NewRunner("/bin/sh", dir, "-c", `echo "$CUDA_VISIBLE_DEVICES $1 $2"`, "sh")
	r.Stdout = out
	require.NoError(t, r.Run(context.Background(), p))

	planPath := path.Join(dir, p.Experiment, "plan.json")
	assert.Equal(t, "3 --plan "+planPath, strings.TrimSpace(out.String()))

	bs, err := os.ReadFile(planPath)
	require.NoError(t, err)
	stored := &Plan{}
	require.NoError(t, json.Unmarshal(bs, stored))
	assert.Equal(t, p.Experiment, stored.Experiment)
	assert.Equal(t, p.Mix, stored.Mix)
}

func TestRunnerScriptCommand(t *testing.T) {
	args := testArgs()
	args.GPU = 2
	p, err := NewIQLPlan(args, "")
	require.NoError(t, err)

	cmd := NewRunner("python3", t.TempDir()).Command(context.Background(), p)
	assert.Equal(t, []string{
		"python3", "d3rlpy_impls/train_iql.py",
		"--env", "hopper",
		"--sampler", "uniform",
		"--dataset_size", "1000000",
		"--dataset_types", "random-v2", "expert-v2",
		"--dataset_ratios", "0.9", "0.1",
		"--seed", "1",
		"--gpu", "0",
	}, cmd.Args)
	assert.Contains(t, cmd.Env, "CUDA_VISIBLE_DEVICES=2")
}

func TestRunnerScriptCommandCPU(t *testing.T) {
	p, err := NewCQLPlan(testArgs())
	require.NoError(t, err)

	cmd := NewRunner("python3", t.TempDir()).Command(context.Background(), p)
	assert.Equal(t, "d3rlpy_impls/train_cql.py", cmd.Args[1])
	assert.NotContains(t, cmd.Args, "--gpu")
}

func TestRunnerRunFailure(t *testing.T) {
	p, err := NewIQLPlan(testArgs(), "")
	require.NoError(t, err)

	r := NewRunner("/bin/sh", t.TempDir(), "-c", "exit 2", "sh")
	r.Stdout, r.Stderr = new(bytes.Buffer), new(bytes.Buffer)
	err = r.Run(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), p.Experiment)
}

func TestPresetNames(t *testing.T) {
	assert.Contains(t, PresetNames(), "mujoco_expa_50")
}
