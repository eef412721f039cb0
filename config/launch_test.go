package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchArgsFlags(t *testing.T) {
	a := DefaultLaunchArgs()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	a.AddFlags(fs)

	require.NoError(t, fs.Parse([]string{"--gpus", "0,1,3", "--n_jobs", "2", "--mode", "print", "--task_id", "1:2", "--debug"}))
	assert.Equal(t, []int{0, 1, 3}, a.GPUs)
	assert.Equal(t, 2, a.NJobs)
	assert.Equal(t, "print", a.Mode)
	assert.Equal(t, "1:2", a.TaskID)
	assert.True(t, a.Debug)
	assert.NoError(t, a.Validate())
}

func TestLaunchArgsDefaults(t *testing.T) {
	a := DefaultLaunchArgs()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	a.AddFlags(fs)
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, []int{0}, a.GPUs)
	assert.Equal(t, "local", a.Mode)
	assert.NoError(t, a.Validate())
}

func TestLaunchArgsValidate(t *testing.T) {
	a := DefaultLaunchArgs()
	a.NJobs = 0
	assert.Error(t, a.Validate())

	a = DefaultLaunchArgs()
	a.GPUs = nil
	assert.Error(t, a.Validate())
}
