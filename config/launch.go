package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// LaunchArgs are the command line arguments shared by every sweep
type LaunchArgs struct {
	GPUs        []int  // devices jobs are assigned to
	NJobs       int    // jobs running at the same time on one device
	Mode        string // local, print or redis
	TaskID      string // index:count shard of the sweep handled here
	Debug       bool
	StatusAddr  string // serve job status over http when set
	ShuffleSeed uint64
	Live        bool // live terminal status lines
}

func DefaultLaunchArgs() *LaunchArgs {
	return &LaunchArgs{
		GPUs:  []int{0},
		NJobs: 1,
		Mode:  "local",
	}
}

// AddFlags registers the launch flags on fs
func (a *LaunchArgs) AddFlags(fs *pflag.FlagSet) {
	fs.IntSliceVar(&a.GPUs, "gpus", a.GPUs, "GPU devices to spread the jobs on")
	fs.IntVar(&a.NJobs, "n_jobs", a.NJobs, "Number of parallel jobs per GPU")
	fs.StringVar(&a.Mode, "mode", a.Mode, "Launch mode: local, print or redis")
	fs.StringVar(&a.TaskID, "task_id", a.TaskID, "Shard of the sweep to launch, as index:count")
	fs.BoolVar(&a.Debug, "debug", a.Debug, "Launch only the first job, without tracking")
	fs.StringVar(&a.StatusAddr, "status-addr", a.StatusAddr, "Address to serve job status on (empty to disable)")
	fs.Uint64Var(&a.ShuffleSeed, "shuffle-seed", a.ShuffleSeed, "Seed of the job order shuffle")
	fs.BoolVar(&a.Live, "live", a.Live, "Print live per slot status")
}

func (a *LaunchArgs) Validate() error {
	if len(a.GPUs) == 0 {
		return fmt.Errorf("at least one gpu is required")
	}
	if a.NJobs < 1 {
		return fmt.Errorf("n_jobs must be at least 1, got %d", a.NJobs)
	}
	return nil
}

// Printable is the human readable summary stored next to the launch records
func (a *LaunchArgs) Printable() string {
	return fmt.Sprintf("Launch:\n  GPUs: %v\n  Jobs per GPU: %d\n  Mode: %s\n  Task: %q\n  Debug: %t\n  Shuffle seed: %d",
		a.GPUs, a.NJobs, a.Mode, a.TaskID, a.Debug, a.ShuffleSeed)
}
