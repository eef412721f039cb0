package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/zeu5/offline-subopt/types"
	"github.com/zeu5/offline-subopt/util"
)

var deviceRe = regexp.MustCompile(`CUDA_VISIBLE_DEVICES=\d+`)

// Executor runs the tasks of a job as shell subprocesses, their output goes
// to <LogDir>/<job>_<task>.out|.err
type Executor struct {
	Shell  string
	LogDir string
	// when set, replaces the device baked into the commands
	Device *int
}

func NewExecutor(shell, logDir string) *Executor {
	return &Executor{Shell: shell, LogDir: logDir}
}

// Retarget points the job commands to another device
func Retarget(job types.Job, device int) types.Job {
	out := job
	out.Device = device
	out.Tasks = make([]string, len(job.Tasks))
	for i, t := range job.Tasks {
		out.Tasks[i] = deviceRe.ReplaceAllString(t, "CUDA_VISIBLE_DEVICES="+strconv.Itoa(device))
	}
	return out
}

// Run blocks until every task of the job exited. The exit code is the first
// non zero one among the tasks
func (e *Executor) Run(ctx context.Context, job types.Job) types.Result {
	if e.Device != nil {
		job = Retarget(job, *e.Device)
	}
	result := types.Result{
		JobID:  job.ID,
		Device: job.Device,
		Start:  time.Now(),
		Logs:   make([]string, 0, 2*len(job.Tasks)),
	}
	if err := util.EnsureDir(e.LogDir); err != nil {
		result.Error = err.Error()
		result.ExitCode = -1
		return result
	}

	codes := make([]int, len(job.Tasks))
	errs := make([]error, len(job.Tasks))
	wg := new(sync.WaitGroup)
	for i, task := range job.Tasks {
		base := path.Join(e.LogDir, job.ID+"_"+strconv.Itoa(i))
		result.Logs = append(result.Logs, base+".out", base+".err")

		wg.Add(1)
		go func(i int, task, base string) {
			defer wg.Done()
			codes[i], errs[i] = e.runTask(ctx, task, base)
		}(i, task, base)
	}
	wg.Wait()
	result.Duration = time.Since(result.Start)

	for i := range job.Tasks {
		if codes[i] != 0 && result.ExitCode == 0 {
			result.ExitCode = codes[i]
		}
		if errs[i] != nil && result.Error == "" {
			result.Error = fmt.Sprintf("task %d: %s", i, errs[i])
		}
	}
	return result
}

func (e *Executor) runTask(ctx context.Context, task, base string) (int, error) {
	stdout, err := os.Create(base + ".out")
	if err != nil {
		return -1, err
	}
	defer stdout.Close()
	stderr, err := os.Create(base + ".err")
	if err != nil {
		return -1, err
	}
	defer stderr.Close()

	cmd := exec.CommandContext(ctx, e.Shell, "-c", task)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err = cmd.Run()
	if err == nil {
		return 0, nil
	}
	exitErr := &exec.ExitError{}
	if errors.As(err, &exitErr) {
		if ctx.Err() != nil {
			return exitErr.ExitCode(), ctx.Err()
		}
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
