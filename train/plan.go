package train

import (
	"fmt"
	"strconv"
	"strings"
)

// Algo names the offline RL algorithm a plan trains
type Algo string

const (
	CQL Algo = "CQL"
	IQL Algo = "IQL"
)

// Plan is everything the framework side needs to run one training
type Plan struct {
	Algo       Algo       `json:"algo"`
	Experiment string     `json:"experiment_name"`
	Env        string     `json:"env"`
	Sampler    string     `json:"sampler"`
	Seed       int        `json:"seed"`
	GPU        *int       `json:"gpu"` // nil trains on the CPU
	Size       int        `json:"dataset_size"`
	Types      []string   `json:"dataset_types"`
	Ratios     []float64  `json:"dataset_ratios"`
	Mix        MixPlan    `json:"mix"`
	Fit        FitConfig  `json:"fit"`
	CQL        *CQLConfig `json:"cql,omitempty"`
	IQL        *IQLConfig `json:"iql,omitempty"`
	Preset     string     `json:"preset,omitempty"`
}

// ExperimentName is <ALGO>_<types>_<ratios>_<size>_<seed>, lists joined with "+"
func ExperimentName(algo Algo, args *Args) string {
	ratios := make([]string, len(args.DatasetRatios))
	for i, r := range args.DatasetRatios {
		ratios[i] = strconv.FormatFloat(r, 'g', -1, 64)
	}
	return fmt.Sprintf("%s_%s_%s_%d_%d", algo,
		strings.Join(args.DatasetTypes, "+"), strings.Join(ratios, "+"), args.DatasetSize, args.Seed)
}

func newPlan(algo Algo, args *Args) (*Plan, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	mix, err := Mix(args.Env, args.DatasetSize, args.DatasetTypes, args.DatasetRatios)
	if err != nil {
		return nil, err
	}
	p := &Plan{
		Algo:       algo,
		Experiment: ExperimentName(algo, args),
		Env:        args.Env,
		Sampler:    args.Sampler,
		Seed:       args.Seed,
		Size:       args.DatasetSize,
		Types:      append([]string{}, args.DatasetTypes...),
		Ratios:     append([]float64{}, args.DatasetRatios...),
		Mix:        mix,
		Fit:        DefaultFit(),
	}
	if args.UseGPU() {
		gpu := args.GPU
		p.GPU = &gpu
	}
	return p, nil
}

func NewCQLPlan(args *Args) (*Plan, error) {
	p, err := newPlan(CQL, args)
	if err != nil {
		return nil, err
	}
	cfg := DefaultCQL()
	p.CQL = &cfg
	return p, nil
}

// NewIQLPlan builds an IQL plan, preset may be empty for the d3rlpy defaults
func NewIQLPlan(args *Args, preset string) (*Plan, error) {
	p, err := newPlan(IQL, args)
	if err != nil {
		return nil, err
	}
	cfg := DefaultIQL()
	if preset != "" {
		pr, err := GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = pr.Apply(cfg)
		p.Preset = preset
	}
	cfg.ActorCosineSteps = p.Fit.NSteps
	p.IQL = &cfg
	return p, nil
}
