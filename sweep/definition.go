package sweep

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/zeu5/offline-subopt/types"
)

var ErrMissingEnv = errors.New("missing required environment variable")

// Definition describes a whole sweep: what is crossed with what, and how the
// resulting points are rendered into training commands
type Definition struct {
	Name string `yaml:"name"` // experiment name, used for queues and record folders
	Algo string `yaml:"algo"` // CQL or IQL, part of the results path

	// script templates, {gpu} is replaced with the assigned device
	Scripts   []string  `yaml:"scripts"`
	FlagStyle FlagStyle `yaml:"flag_style"` // how dataset flags are rendered
	EnvKey    string    `yaml:"env_key"`    // flag carrying the dataset name
	// also pass --config <family config> (implicit_q_learning)
	AttachConfig bool `yaml:"attach_config"`
	// also pass the cql.* overrides of the dataset (JaxCQL)
	AttachCQLOverrides bool `yaml:"attach_cql_overrides"`

	// datasets: named generators first, then explicit entries
	Generators []string  `yaml:"generators,omitempty"`
	Datasets   []Dataset `yaml:"datasets,omitempty"`

	Samplers    []string `yaml:"samplers"`
	RewardNorms []string `yaml:"reward_norms,omitempty"` // omitted from commands when empty
	Seeds       []int    `yaml:"seeds"`

	// args added to every command, $VARS are expanded from the environment
	CommonArgs   []string `yaml:"common_args"`
	TrackingArgs []string `yaml:"tracking_args"` // only when not in debug mode
	DebugArgs    []string `yaml:"debug_args"`    // only in debug mode
	SaveDirFlag  string   `yaml:"save_dir_flag"`
	RequiredEnv  []string `yaml:"required_env,omitempty"`

	NParallelTask int  `yaml:"n_parallel_task"`
	Shuffle       bool `yaml:"shuffle"`
}

// Options are the launch time inputs to the expansion of a sweep
type Options struct {
	Devices     []int
	Debug       bool   // keep only the first job, swap tracking args for debug args
	Seed        uint64 // shuffle seed
	StoragePath string // root of the results folder
	LookupEnv   func(string) (string, bool)
}

func (d *Definition) Validate() error {
	if d.Name == "" {
		return errors.New("sweep definition needs a name")
	}
	if d.Algo == "" {
		return fmt.Errorf("sweep %s: algo is required", d.Name)
	}
	if d.EnvKey == "" {
		return fmt.Errorf("sweep %s: env_key is required", d.Name)
	}
	if d.FlagStyle != "" && d.FlagStyle != SpaceStyle && d.FlagStyle != EqualsStyle {
		return fmt.Errorf("sweep %s: unknown flag style %q", d.Name, d.FlagStyle)
	}
	if len(d.Scripts) == 0 {
		return fmt.Errorf("sweep %s: no scripts", d.Name)
	}
	if len(d.Samplers) == 0 {
		return fmt.Errorf("sweep %s: no samplers", d.Name)
	}
	if len(d.Seeds) == 0 {
		return fmt.Errorf("sweep %s: no seeds", d.Name)
	}
	if d.NParallelTask < 0 {
		return fmt.Errorf("sweep %s: negative n_parallel_task", d.Name)
	}
	for _, s := range d.Samplers {
		if _, err := ParseSampler(s); err != nil {
			return fmt.Errorf("sweep %s: %w", d.Name, err)
		}
	}
	return nil
}

// AllDatasets resolves the generators and appends the explicit datasets
func (d *Definition) AllDatasets() ([]Dataset, error) {
	out, err := Generate(d.Generators...)
	if err != nil {
		return nil, fmt.Errorf("sweep %s: %w", d.Name, err)
	}
	out = append(out, d.Datasets...)
	if len(out) == 0 {
		return nil, fmt.Errorf("sweep %s: no datasets", d.Name)
	}
	return out, nil
}

// Size is the number of tasks (product points) in the sweep
func (d *Definition) Size() (int, error) {
	ds, err := d.AllDatasets()
	if err != nil {
		return 0, err
	}
	return len(ds) * len(d.Scripts) * len(d.Samplers) * len(d.rewardNorms()) * len(d.Seeds), nil
}

func (d *Definition) rewardNorms() []string {
	if len(d.RewardNorms) == 0 {
		return []string{""}
	}
	return d.RewardNorms
}

func (d *Definition) commonArgs(opts Options) ([]string, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range d.RequiredEnv {
		if v, ok := lookup(key); !ok || v == "" {
			return nil, fmt.Errorf("sweep %s: %w: %s", d.Name, ErrMissingEnv, key)
		}
	}

	args := make([]string, 0, len(d.CommonArgs)+len(d.TrackingArgs))
	args = append(args, d.CommonArgs...)
	if opts.Debug {
		args = append(args, d.DebugArgs...)
	} else {
		args = append(args, d.TrackingArgs...)
	}
	for i, a := range args {
		args[i] = os.Expand(a, func(key string) string {
			v, _ := lookup(key)
			return v
		})
	}
	return args, nil
}

// Jobs expands the sweep into launchable jobs. Points are ordered as
// datasets x scripts x samplers x reward norms x seeds
func (d *Definition) Jobs(opts Options) ([]types.Job, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	datasets, err := d.AllDatasets()
	if err != nil {
		return nil, err
	}
	common, err := d.commonArgs(opts)
	if err != nil {
		return nil, err
	}
	norms := d.rewardNorms()

	nParallel := d.NParallelTask
	if nParallel == 0 {
		nParallel = 1
	}

	points := Product(len(datasets), len(d.Scripts), len(d.Samplers), len(norms), len(d.Seeds))
	assignments, err := WithDevices(points, DeviceConfig{
		Devices:       opts.Devices,
		NParallelTask: nParallel,
		Shuffle:       d.Shuffle,
		Seed:          opts.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("sweep %s: %w", d.Name, err)
	}

	jobs := make([]types.Job, 0, len(assignments))
	for idx, a := range assignments {
		tasks := make([]string, len(a.Points))
		for t, p := range a.Points {
			tasks[t] = d.command(a.Device, common, opts.StoragePath,
				datasets[p[0]], d.Scripts[p[1]], d.Samplers[p[2]], norms[p[3]], d.Seeds[p[4]])
		}
		jobs = append(jobs, types.Job{
			ID:     fmt.Sprintf("%s-%04d", d.Name, idx),
			Index:  idx,
			Device: a.Device,
			Tasks:  tasks,
		})
		if opts.Debug {
			break
		}
	}
	return jobs, nil
}

func (d *Definition) command(device int, common []string, storage string, dataset Dataset, script, sampler, norm string, seed int) string {
	style := d.FlagStyle
	if style == "" {
		style = SpaceStyle
	}

	args := []string{strings.ReplaceAll(script, "{gpu}", strconv.Itoa(device))}
	args = append(args, common...)

	dFlags := []Flag{{Key: d.EnvKey, Value: dataset.Env}}
	if d.AttachConfig {
		dFlags = append(dFlags, Flag{Key: "config", Value: dataset.ConfigPath()})
	}
	if d.AttachCQLOverrides {
		dFlags = append(dFlags, dataset.CQLOverrides...)
	}
	for _, f := range dFlags {
		args = append(args, f.Render(style))
	}

	args = append(args, Flag{Key: "sampler", Value: sampler}.Render(SpaceStyle))
	if norm != "" {
		args = append(args, Flag{Key: "reward_norm", Value: norm}.Render(SpaceStyle))
	}
	args = append(args, Flag{Key: "seed", Value: strconv.Itoa(seed)}.Render(SpaceStyle))

	if d.SaveDirFlag != "" {
		args = append(args, d.SaveDirFlag+" "+d.SaveDir(storage, dataset.Env, sampler, norm, seed))
	}
	return strings.Join(args, " ")
}

// SaveDir is where a single run stores its outputs:
// <storage>/results/<ALGO>/<env>/<sampler>[/<norm>]/<seed>
func (d *Definition) SaveDir(storage, env, sampler, norm string, seed int) string {
	parts := []string{storage, "results", d.Algo, env, sampler}
	if norm != "" {
		parts = append(parts, norm)
	}
	parts = append(parts, strconv.Itoa(seed))
	return path.Join(parts...)
}
