package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/zeu5/offline-subopt/types"
)

// WorkerConfig configures a queue worker
type WorkerConfig struct {
	Name   string
	Device *int // run the jobs on this device instead of the one they were assigned
	// wait this long for a job before checking the context again
	PollTimeout time.Duration
	// stop once the queue is empty instead of waiting for more jobs
	ExitWhenEmpty bool
	MaxJobs       int // 0 for no limit
	Out           io.Writer
}

// Worker pops jobs from a queue and runs them one at a time
type Worker struct {
	cfg      WorkerConfig
	queue    *Queue
	executor *Executor
	tracker  *Tracker
	logger   *log.Logger
}

func NewWorker(cfg WorkerConfig, queue *Queue, executor *Executor) *Worker {
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 5 * time.Second
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Name == "" {
		host, _ := os.Hostname()
		cfg.Name = fmt.Sprintf("%s-%d", host, os.Getpid())
	}
	executor.Device = cfg.Device
	return &Worker{
		cfg:      cfg,
		queue:    queue,
		executor: executor,
		tracker:  NewTracker(),
		logger:   log.New(cfg.Out, "["+cfg.Name+"] ", log.LstdFlags),
	}
}

func (w *Worker) Tracker() *Tracker {
	return w.tracker
}

// Run processes jobs until the context is done, MaxJobs ran, or (with
// ExitWhenEmpty) the queue is drained
func (w *Worker) Run(ctx context.Context) error {
	done := 0
	for w.cfg.MaxJobs == 0 || done < w.cfg.MaxJobs {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		job, err := w.queue.Pop(ctx, w.cfg.PollTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if job == nil {
			if w.cfg.ExitWhenEmpty {
				return nil
			}
			continue
		}

		w.tracker.Start(*job, w.cfg.Name)
		w.logger.Printf("running %s", job)
		r := w.executor.Run(ctx, *job)
		r.Worker = w.cfg.Name
		w.tracker.Finish(r)
		w.logger.Printf("%s %s after %s (exit %d)", job.ID, r.State(), r.Duration.Round(time.Millisecond), r.ExitCode)

		// the context might be done already, the result is still worth keeping
		if err := w.queue.PushResult(context.Background(), r); err != nil {
			return fmt.Errorf("push result of %s: %w", job.ID, err)
		}
		done++
	}
	return nil
}

// Counts is a short summary of what the worker did
func (w *Worker) Counts() map[types.JobState]int {
	return w.tracker.Counts()
}
