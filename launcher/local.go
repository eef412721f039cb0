package launcher

import (
	"context"
	"fmt"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/zeu5/offline-subopt/types"
	"github.com/zeu5/offline-subopt/util"
)

// Local runs jobs on this machine, NJobs at a time on each device
type Local struct {
	cfg      *Config
	tracker  *Tracker
	executor *Executor
	results  *util.JSONLWriter
}

func NewLocal(cfg *Config) *Local {
	cfg.setDefaults()
	return &Local{
		cfg:      cfg,
		tracker:  NewTracker(),
		executor: NewExecutor(cfg.Shell, path.Join(cfg.RecordPath, "logs")),
		results:  util.NewJSONLWriter(path.Join(cfg.RecordPath, "jobs.jsonl")),
	}
}

func (l *Local) Tracker() *Tracker {
	return l.tracker
}

func (l *Local) prepare(jobs []types.Job) error {
	if l.cfg.Clean {
		if err := util.EnsureDir(l.cfg.RecordPath); err != nil {
			return err
		}
		if err := util.RemoveContents(l.cfg.RecordPath); err != nil {
			return err
		}
	}
	for _, dir := range []string{l.cfg.RecordPath, l.executor.LogDir} {
		if err := util.EnsureDir(dir); err != nil {
			return err
		}
	}
	return l.cfg.recordConfig(jobs)
}

// Run blocks until every job ran or the context is cancelled. Cancelling
// kills the running subprocesses and skips the jobs not yet started
func (l *Local) Run(ctx context.Context, jobs []types.Job) ([]types.Result, error) {
	if err := l.prepare(jobs); err != nil {
		return nil, fmt.Errorf("prepare %s: %w", l.cfg.RecordPath, err)
	}
	l.tracker.Add(types.JobPending, jobs...)

	if l.cfg.StatusAddr != "" {
		status := NewStatusServer(l.cfg.StatusAddr, l.tracker)
		if err := status.Start(); err != nil {
			return nil, err
		}
		defer status.Stop(context.Background())
	}

	// one queue per device, in job order
	queues := make(map[int]chan types.Job)
	devices := make([]int, 0)
	for _, j := range jobs {
		if _, ok := queues[j.Device]; !ok {
			devices = append(devices, j.Device)
			queues[j.Device] = make(chan types.Job, len(jobs))
		}
		queues[j.Device] <- j
	}
	sort.Ints(devices)
	for _, q := range queues {
		close(q)
	}

	slotDevices := make([]int, 0, len(devices)*l.cfg.NJobs)
	outputs := make([]*SlotOutput, 0, len(devices)*l.cfg.NJobs)
	for _, d := range devices {
		for s := 0; s < l.cfg.NJobs; s++ {
			slotDevices = append(slotDevices, d)
			outputs = append(outputs, NewSlotOutput(fmt.Sprintf("gpu:%d slot:%d", d, s)))
		}
	}
	if l.cfg.Live && len(outputs) > 0 {
		printer := NewTerminalPrinter(ctx, l.cfg.Out, outputs, time.Second)
		printer.Start()
		defer printer.Stop()
	}

	resultsMu := new(sync.Mutex)
	results := make([]types.Result, 0, len(jobs))
	recordErrs := make([]error, 0)

	wg := new(sync.WaitGroup)
	for i, output := range outputs {
		wg.Add(1)
		go func(queue <-chan types.Job, output *SlotOutput) {
			defer wg.Done()
			for job := range queue {
				select {
				case <-ctx.Done():
					return
				default:
				}

				l.tracker.Start(job, output.name)
				output.Set("%s running since %s", job.ID, time.Now().Format(time.TimeOnly))
				r := l.executor.Run(ctx, job)
				l.tracker.Finish(r)
				output.Set("%s %s after %s (exit %d)", job.ID, r.State(), r.Duration.Round(time.Second), r.ExitCode)

				err := l.results.Write(r)
				resultsMu.Lock()
				results = append(results, r)
				if err != nil {
					recordErrs = append(recordErrs, err)
				}
				resultsMu.Unlock()
			}
			output.Set("idle")
		}(queues[slotDevices[i]], output)
	}
	wg.Wait()

	if len(recordErrs) > 0 {
		return results, fmt.Errorf("record results: %w", recordErrs[0])
	}
	return results, nil
}
