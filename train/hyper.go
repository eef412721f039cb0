package train

// FitConfig is shared by both algorithms: how long to train and how to score
type FitConfig struct {
	NSteps         int      `json:"n_steps"`
	NStepsPerEpoch int      `json:"n_steps_per_epoch"`
	SaveInterval   int      `json:"save_interval"`
	TestSize       float64  `json:"test_size"` // share of episodes held out for evaluation
	Scorers        []string `json:"scorers"`
}

func DefaultFit() FitConfig {
	return FitConfig{
		NSteps:         500000,
		NStepsPerEpoch: 1000,
		SaveInterval:   10,
		TestSize:       0.2,
		Scorers:        []string{"environment", "value_scale"},
	}
}

// CQLConfig are the d3rlpy CQL constructor arguments
type CQLConfig struct {
	ActorLearningRate  float64 `json:"actor_learning_rate"`
	CriticLearningRate float64 `json:"critic_learning_rate"`
	TempLearningRate   float64 `json:"temp_learning_rate"`
	AlphaLearningRate  float64 `json:"alpha_learning_rate"`
	EncoderHiddenUnits []int   `json:"encoder_hidden_units"` // actor and critic vector encoder
	BatchSize          int     `json:"batch_size"`
	NActionSamples     int     `json:"n_action_samples"`
	ConservativeWeight float64 `json:"conservative_weight"`
}

func DefaultCQL() CQLConfig {
	return CQLConfig{
		ActorLearningRate:  1e-4,
		CriticLearningRate: 3e-4,
		TempLearningRate:   1e-4,
		AlphaLearningRate:  0.0,
		EncoderHiddenUnits: []int{256, 256, 256},
		BatchSize:          256,
		NActionSamples:     10,
		ConservativeWeight: 5.0,
	}
}

// IQLConfig are the d3rlpy IQL constructor arguments
type IQLConfig struct {
	ActorLearningRate  float64 `json:"actor_learning_rate"`
	CriticLearningRate float64 `json:"critic_learning_rate"`
	BatchSize          int     `json:"batch_size"`
	WeightTemp         float64 `json:"weight_temp"`
	MaxWeight          float64 `json:"max_weight"`
	Expectile          float64 `json:"expectile"`
	Discount           float64 `json:"discount,omitempty"`
	Tau                float64 `json:"tau,omitempty"`
	HiddenUnits        []int   `json:"hidden_units,omitempty"`
	// return based reward scaler multiplier
	RewardScale float64 `json:"reward_scale"`
	// the actor learning rate follows a cosine annealing over this many steps
	ActorCosineSteps int `json:"actor_cosine_steps"`
}

func DefaultIQL() IQLConfig {
	return IQLConfig{
		ActorLearningRate:  3e-4,
		CriticLearningRate: 3e-4,
		BatchSize:          256,
		WeightTemp:         3.0,
		MaxWeight:          100.0,
		Expectile:          0.7,
		RewardScale:        1000.0,
		ActorCosineSteps:   DefaultFit().NSteps,
	}
}
