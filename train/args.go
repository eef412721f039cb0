package train

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/zeu5/offline-subopt/sweep"
)

var ErrMissingDatasets = errors.New("dataset types and ratios are required")

// NoGPU leaves training on the CPU
const NoGPU = -1

// Args are the command line arguments of the training entry points
type Args struct {
	Env           string
	Sampler       string
	DatasetSize   int
	DatasetTypes  []string
	DatasetRatios []float64
	Seed          int
	GPU           int
}

func DefaultArgs() *Args {
	return &Args{
		Env:         "hopper",
		Sampler:     "uniform",
		DatasetSize: 1000000,
		Seed:        1,
		GPU:         NoGPU,
	}
}

func (a *Args) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&a.Env, "env", a.Env, "Environment the datasets belong to")
	fs.StringVar(&a.Sampler, "sampler", a.Sampler, "Batch sampler: uniform, Top-<p>, RW-<alpha>, AW-<alpha>")
	fs.IntVar(&a.DatasetSize, "dataset_size", a.DatasetSize, "Number of transitions in the mixed dataset")
	fs.StringSliceVar(&a.DatasetTypes, "dataset_types", a.DatasetTypes, "Datasets to mix, e.g. random-v2,expert-v2")
	fs.Float64SliceVar(&a.DatasetRatios, "dataset_ratios", a.DatasetRatios, "Share of each dataset in the mix")
	fs.IntVar(&a.Seed, "seed", a.Seed, "Random seed")
	fs.IntVar(&a.GPU, "gpu", a.GPU, "GPU to train on, -1 for CPU")
}

func (a *Args) Validate() error {
	if a.Env == "" {
		return errors.New("env is required")
	}
	if _, err := sweep.ParseSampler(a.Sampler); err != nil {
		return err
	}
	if a.DatasetSize < 1 {
		return fmt.Errorf("dataset_size must be positive, got %d", a.DatasetSize)
	}
	if len(a.DatasetTypes) == 0 || len(a.DatasetRatios) == 0 {
		return ErrMissingDatasets
	}
	if len(a.DatasetTypes) != len(a.DatasetRatios) {
		return fmt.Errorf("got %d dataset types but %d ratios", len(a.DatasetTypes), len(a.DatasetRatios))
	}
	for i, r := range a.DatasetRatios {
		if !positiveFinite(r) {
			return fmt.Errorf("ratio of %s must be positive and finite, got %v", a.DatasetTypes[i], r)
		}
	}
	if a.GPU < NoGPU {
		return fmt.Errorf("invalid gpu %d", a.GPU)
	}
	return nil
}

func (a *Args) UseGPU() bool {
	return a.GPU != NoGPU
}
