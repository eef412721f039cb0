package sweep

import (
	"fmt"
	"strings"
)

// Flag is a single "--key value" pair passed to a training script
type Flag struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// FlagStyle controls how a flag is rendered on the command line
type FlagStyle string

const (
	SpaceStyle  FlagStyle = "space"  // --key value
	EqualsStyle FlagStyle = "equals" // --key=value
)

func (f Flag) Render(style FlagStyle) string {
	if style == EqualsStyle {
		return fmt.Sprintf("--%s=%s", f.Key, f.Value)
	}
	return fmt.Sprintf("--%s %s", f.Key, f.Value)
}

// Config families of the implicit_q_learning scripts
const (
	MujocoFamily  = "mujoco"
	AntmazeFamily = "antmaze"
	KitchenFamily = "kitchen"
)

// Dataset is one D4RL (or mixed) dataset entry of a sweep
type Dataset struct {
	Env    string `yaml:"env"`
	Family string `yaml:"family"` // selects implicit_q_learning/configs/<family>_config.py
	// flags only the JaxCQL script understands
	CQLOverrides []Flag `yaml:"cql_overrides,omitempty"`
}

// ConfigPath is the IQL config file for the dataset family
func (d Dataset) ConfigPath() string {
	family := d.Family
	if family == "" {
		family = MujocoFamily
	}
	return fmt.Sprintf("implicit_q_learning/configs/%s_config.py", family)
}

func datasets(family string, envs []string) []Dataset {
	out := make([]Dataset, len(envs))
	for i, e := range envs {
		out[i] = Dataset{Env: e, Family: family}
	}
	return out
}

// Mixed datasets combine two D4RL quality levels, the ratio being the share
// of the better one, e.g. hopper-random-expert-0.1-v2
func Mixed() []Dataset {
	envs := []string{"ant", "hopper", "halfcheetah", "walker2d"}
	levels := []string{"random-medium", "random-expert"}
	ratios := []string{"0.01", "0.05", "0.1", "0.5"}
	names := Cross("-", envs, levels, ratios)
	for i := range names {
		names[i] += "-v2"
	}
	return datasets(MujocoFamily, names)
}

func MujocoRegular() []Dataset {
	envs := []string{"hopper", "halfcheetah", "ant", "walker2d"}
	types := []string{
		"random-v2",
		"medium-expert-v2",
		"medium-replay-v2",
		"full-replay-v2",
		"medium-v2",
		"expert-v2",
	}
	return datasets(MujocoFamily, Cross("-", envs, types))
}

func AntmazeRegular() []Dataset {
	types := []string{
		"umaze-v0",
		"umaze-diverse-v0",
		"medium-diverse-v0",
		"medium-play-v0",
		"large-diverse-v0",
		"large-play-v0",
	}
	return datasets(AntmazeFamily, Cross("-", []string{"antmaze"}, types))
}

// AntmazeBiased are the noisy/biased antmaze variants
func AntmazeBiased() []Dataset {
	types := []string{
		"medium-noisy-v2",
		"medium-biased-v2",
		"large-noisy-v2",
		"large-biased-v2",
	}
	return datasets(AntmazeFamily, Cross("-", []string{"antmaze"}, types))
}

// maze2d uses the antmaze config
func Maze2dRegular() []Dataset {
	types := []string{
		"umaze-v1",
		"medium-v1",
		"large-v1",
		"open-v0",
		"open-dense-v0",
		"umaze-dense-v1",
		"medium-dense-v1",
		"large-dense-v1",
	}
	return datasets(AntmazeFamily, Cross("-", []string{"maze2d"}, types))
}

func HandRegular() []Dataset {
	objects := []string{"pen", "hammer", "door", "relocate"}
	types := []string{"human-v1", "cloned-v1", "expert-v1"}
	return datasets(MujocoFamily, Cross("-", objects, types))
}

func KitchenRegular() []Dataset {
	out := datasets(KitchenFamily, []string{
		"kitchen-complete-v0",
		"kitchen-partial-v0",
		"kitchen-mixed-v0",
	})
	for i := range out {
		out[i].CQLOverrides = []Flag{
			{Key: "cql.cql_max_target_backup", Value: "true"},
			{Key: "cql.cql_importance_sample", Value: "false"},
			{Key: "policy_arch", Value: "512-512-512"},
			{Key: "qf_arch", Value: "512-512-512"},
		}
	}
	return out
}

// generators by name, used by sweep files
var generators = map[string]func() []Dataset{
	"mixed":          Mixed,
	"mujoco":         MujocoRegular,
	"antmaze":        AntmazeRegular,
	"antmaze-biased": AntmazeBiased,
	"maze2d":         Maze2dRegular,
	"hand":           HandRegular,
	"kitchen":        KitchenRegular,
}

// Generate concatenates the datasets of the named generators, in order
func Generate(names ...string) ([]Dataset, error) {
	out := make([]Dataset, 0)
	for _, n := range names {
		gen, ok := generators[strings.ToLower(n)]
		if !ok {
			return nil, fmt.Errorf("unknown dataset generator %q", n)
		}
		out = append(out, gen()...)
	}
	return out, nil
}

// GeneratorNames lists the names accepted by Generate
func GeneratorNames() []string {
	return []string{"mixed", "mujoco", "antmaze", "antmaze-biased", "maze2d", "hand", "kitchen"}
}
