package sweep

import (
	"fmt"
	"sort"
)

var defaultSeeds = []int{100, 200, 300, 400, 500}

// IQL is the implicit_q_learning sweep over every D4RL family
func IQL() *Definition {
	return &Definition{
		Name:         "d4rl_iql",
		Algo:         "IQL",
		Scripts:      []string{"CUDA_VISIBLE_DEVICES={gpu} python3 implicit_q_learning/train_offline.py"},
		FlagStyle:    SpaceStyle,
		EnvKey:       "env_name",
		AttachConfig: true,
		Generators:   []string{"mixed", "mujoco", "antmaze", "maze2d", "hand", "kitchen"},
		Samplers:     Samplers(true, []string{"0.1"}, []string{"0.1"}, []string{"0.1"}),
		Seeds:        defaultSeeds,
		CommonArgs:   []string{"--project offline-subopt-iql"},
		TrackingArgs: []string{"--track"},
		DebugArgs:    []string{"--offline"},
		SaveDirFlag:  "--save_dir",

		NParallelTask: 1,
		Shuffle:       true,
	}
}

// IQLBiasedAntmaze runs the weighted samplers on the noisy/biased antmaze data
func IQLBiasedAntmaze() *Definition {
	d := IQL()
	d.Name = "d4rl_iql_biasedantmaze"
	d.Generators = []string{"antmaze-biased"}
	d.Samplers = Samplers(false, nil, []string{"0.1"}, []string{"0.1"})
	d.Seeds = []int{100, 200, 300, 400}
	return d
}

// CQL is the JaxCQL sweep, it logs to wandb so WANDB_API_KEY must be set
func CQL() *Definition {
	return &Definition{
		Name:               "d4rl_cql",
		Algo:               "CQL",
		Scripts:            []string{"CUDA_VISIBLE_DEVICES={gpu} python3 -m JaxCQL.conservative_sac_main"},
		FlagStyle:          EqualsStyle,
		EnvKey:             "env",
		AttachCQLOverrides: true,
		Generators:         []string{"mixed", "mujoco", "antmaze", "maze2d", "hand", "kitchen"},
		Samplers:           Samplers(true, []string{"0.1"}, []string{"0.2"}, []string{"0.2"}),
		RewardNorms:        []string{"max-min"},
		Seeds:              defaultSeeds,
		CommonArgs: []string{
			"--cql.cql_min_q_weight=10.0",
			"--logging.wandb_api_key ${WANDB_API_KEY}",
			"--logging.prefix=offline-subopt-",
			"--logging.project=cql",
		},
		TrackingArgs: []string{"--logging.online"},
		SaveDirFlag:  "--logging.output_dir",
		RequiredEnv:  []string{"WANDB_API_KEY"},

		NParallelTask: 1,
		Shuffle:       true,
	}
}

var builtins = map[string]func() *Definition{
	"iql":        IQL,
	"iql-biased": IQLBiasedAntmaze,
	"cql":        CQL,
}

// Builtin returns a fresh copy of a named built-in sweep
func Builtin(name string) (*Definition, error) {
	ctor, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown sweep %q", name)
	}
	return ctor(), nil
}

func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
