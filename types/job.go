package types

import (
	"fmt"
	"strings"
	"time"
)

// Job is one unit handed to the launcher: a device and the shell commands
// (tasks) that run on it side by side
type Job struct {
	ID     string   `json:"id"`
	Index  int      `json:"index"`  // position in the sweep, before sharding
	Device int      `json:"device"` // GPU the tasks are pinned to
	Tasks  []string `json:"tasks"`
}

// Command returns the job as a single shell line. Multiple tasks are started
// in the background and waited on
func (j Job) Command() string {
	if len(j.Tasks) == 1 {
		return j.Tasks[0]
	}
	return strings.Join(j.Tasks, " & ") + " & wait"
}

func (j Job) String() string {
	return fmt.Sprintf("[%s | gpu:%d | tasks:%d]", j.ID, j.Device, len(j.Tasks))
}

// JobState tracks where a job is in its (single) execution
type JobState string

const (
	JobPending JobState = "pending"
	JobRunning JobState = "running"
	JobDone    JobState = "done"
	JobFailed  JobState = "failed"
	JobQueued  JobState = "queued"
)

// Result is recorded once a job has finished
type Result struct {
	JobID    string        `json:"job_id"`
	Device   int           `json:"device"`
	Worker   string        `json:"worker,omitempty"`
	ExitCode int           `json:"exit_code"`
	Error    string        `json:"error,omitempty"`
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
	Logs     []string      `json:"logs,omitempty"`
}

func (r Result) Failed() bool {
	return r.ExitCode != 0 || r.Error != ""
}

func (r Result) State() JobState {
	if r.Failed() {
		return JobFailed
	}
	return JobDone
}
