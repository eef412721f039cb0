package train

import (
	"fmt"
	"sort"
)

// Preset is a named implicit_q_learning config
type Preset struct {
	Name        string   `json:"name"`
	ActorLR     float64  `json:"actor_lr"`
	ValueLR     float64  `json:"value_lr"`
	CriticLR    float64  `json:"critic_lr"`
	HiddenDims  []int    `json:"hidden_dims"`
	Discount    float64  `json:"discount"`
	Expectile   float64  `json:"expectile"`
	Temperature float64  `json:"temperature"`
	DropoutRate *float64 `json:"dropout_rate"`
	Tau         float64  `json:"tau"` // soft target update
	ExpAClip    float64  `json:"exp_a_clip"`
}

var presets = map[string]Preset{
	"mujoco_expa_50": {
		Name:        "mujoco_expa_50",
		ActorLR:     3e-4,
		ValueLR:     3e-4,
		CriticLR:    3e-4,
		HiddenDims:  []int{128, 128},
		Discount:    0.99,
		Expectile:   0.7,
		Temperature: 3.0,
		Tau:         0.005,
		ExpAClip:    100,
	},
}

func GetPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q", name)
	}
	return p, nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Apply maps the preset onto the d3rlpy IQL arguments
func (p Preset) Apply(c IQLConfig) IQLConfig {
	c.ActorLearningRate = p.ActorLR
	c.CriticLearningRate = p.CriticLR
	c.Expectile = p.Expectile
	c.WeightTemp = p.Temperature
	c.MaxWeight = p.ExpAClip
	c.Discount = p.Discount
	c.Tau = p.Tau
	c.HiddenUnits = append([]int(nil), p.HiddenDims...)
	return c
}
