package sweep

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
)

var ErrNoDevices = errors.New("no devices to assign jobs to")

// Assignment groups the points run together by one job on one device
type Assignment struct {
	Device int
	Points [][]int
}

// DeviceConfig controls how product points become device jobs
type DeviceConfig struct {
	Devices       []int
	NParallelTask int    // points (tasks) per job
	Shuffle       bool   // shuffle the points before grouping
	Seed          uint64 // shuffle seed, the same seed gives the same sweep
}

// WithDevices groups the points into jobs of NParallelTask tasks and hands
// the jobs to devices in round robin order
func WithDevices(points [][]int, cfg DeviceConfig) ([]Assignment, error) {
	if len(cfg.Devices) == 0 {
		return nil, ErrNoDevices
	}
	if cfg.NParallelTask < 1 {
		return nil, fmt.Errorf("tasks per job must be at least 1, got %d", cfg.NParallelTask)
	}

	ordered := make([][]int, len(points))
	copy(ordered, points)
	if cfg.Shuffle {
		r := rand.New(rand.NewSource(cfg.Seed))
		r.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}

	out := make([]Assignment, 0, (len(ordered)+cfg.NParallelTask-1)/cfg.NParallelTask)
	for start := 0; start < len(ordered); start += cfg.NParallelTask {
		end := start + cfg.NParallelTask
		if end > len(ordered) {
			end = len(ordered)
		}
		jobIdx := len(out)
		out = append(out, Assignment{
			Device: cfg.Devices[jobIdx%len(cfg.Devices)],
			Points: ordered[start:end],
		})
	}
	return out, nil
}
