package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zeu5/offline-subopt/types"
	"github.com/zeu5/offline-subopt/util"
)

var ErrUnknownMode = errors.New("unknown launch mode")

// Mode decides what happens to the generated jobs
type Mode string

const (
	LocalMode Mode = "local" // run on this machine, n_jobs per device
	PrintMode Mode = "print" // only print the commands
	RedisMode Mode = "redis" // push to a redis queue served by workers
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case LocalMode, PrintMode, RedisMode:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Config of a launch
type Config struct {
	Experiment string
	Mode       Mode
	NJobs      int // jobs running at the same time on one device

	// launch records (logs, results, report) are stored here
	RecordPath string
	Clean      bool // wipe RecordPath before launching

	Shell      string // runs each task with <Shell> -c <task>
	StatusAddr string // serve job status over http when not empty
	Live       bool   // live terminal status lines

	Redis       *redis.Options
	QueuePrefix string

	// extra lines stored in config.txt
	Printables []string

	Out io.Writer
}

func (c *Config) setDefaults() {
	if c.NJobs < 1 {
		c.NJobs = 1
	}
	if c.Shell == "" {
		c.Shell = "/bin/sh"
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.QueuePrefix == "" {
		c.QueuePrefix = DefaultQueuePrefix
	}
}

// record the configuration of the launch
func (c *Config) recordConfig(jobs []types.Job) error {
	devices := make([]int, 0)
	seen := make(map[int]bool)
	for _, j := range jobs {
		if !seen[j.Device] {
			seen[j.Device] = true
			devices = append(devices, j.Device)
		}
	}

	out := make(map[string]interface{})
	out["experiment"] = c.Experiment
	out["mode"] = c.Mode
	out["n_jobs"] = c.NJobs
	out["jobs"] = len(jobs)
	out["devices"] = devices
	out["shell"] = c.Shell
	out["started"] = time.Now().Format(time.RFC3339)

	if err := util.WriteJSON(path.Join(c.RecordPath, "launch_config.json"), out); err != nil {
		return err
	}
	if len(c.Printables) > 0 {
		return util.WriteToFile(path.Join(c.RecordPath, "config.txt"), c.Printables...)
	}
	return nil
}

// queued.jsonl lists what was handed to the workers, results come back on
// the redis results list
func recordQueued(dir string, jobs []types.Job) error {
	tracker := NewTracker()
	tracker.Add(types.JobQueued, jobs...)
	w := util.NewJSONLWriter(path.Join(dir, "queued.jsonl"))
	for _, s := range tracker.List() {
		if err := w.Write(s); err != nil {
			return fmt.Errorf("record queued jobs: %w", err)
		}
	}
	return nil
}

// Launch dispatches the jobs following the configured mode
func Launch(ctx context.Context, cfg *Config, jobs []types.Job) error {
	cfg.setDefaults()

	switch cfg.Mode {
	case PrintMode:
		for _, j := range jobs {
			fmt.Fprintln(cfg.Out, j.Command())
		}
		return nil
	case LocalMode:
		results, err := NewLocal(cfg).Run(ctx, jobs)
		if err != nil {
			return err
		}
		if len(results) > 0 {
			if err := WriteReport(cfg.RecordPath, results); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			s := Summarize(results)
			fmt.Fprintf(cfg.Out, "%s\n", s.Printable())
		}
		return ctx.Err()
	case RedisMode:
		if cfg.Redis == nil {
			return errors.New("redis mode needs redis options")
		}
		client := redis.NewClient(cfg.Redis)
		defer client.Close()

		q := NewQueue(client, cfg.QueuePrefix, cfg.Experiment)
		if err := q.Push(ctx, jobs...); err != nil {
			return err
		}
		if cfg.RecordPath != "" {
			if err := cfg.recordConfig(jobs); err != nil {
				return err
			}
			if err := recordQueued(cfg.RecordPath, jobs); err != nil {
				return err
			}
		}
		fmt.Fprintf(cfg.Out, "Queued %d jobs on %s\n", len(jobs), q.Key())
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
}
