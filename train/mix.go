package train

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MixEntry is the number of transitions taken from one dataset
type MixEntry struct {
	Dataset string  `json:"dataset"`
	Ratio   float64 `json:"ratio"`
	Count   int     `json:"count"`
}

type MixPlan []MixEntry

func (m MixPlan) Total() int {
	total := 0
	for _, e := range m {
		total += e.Count
	}
	return total
}

// Mix splits n transitions between env datasets following the ratios.
// Ratios are normalized, counts are floored and the remainder is handed out
// one by one from the first dataset, so the counts always add up to n
func Mix(env string, n int, types []string, ratios []float64) (MixPlan, error) {
	if len(types) == 0 || len(types) != len(ratios) {
		return nil, fmt.Errorf("mix %s: %w", env, ErrMissingDatasets)
	}
	sum := 0.0
	for _, r := range ratios {
		if !positiveFinite(r) {
			return nil, fmt.Errorf("mix %s: ratio must be positive and finite, got %v", env, r)
		}
		sum += r
	}
	if math.IsInf(sum, 0) {
		return nil, fmt.Errorf("mix %s: ratios overflow", env)
	}

	plan := make(MixPlan, len(types))
	assigned := 0
	for i, t := range types {
		ratio := ratios[i] / sum
		count := int(math.Floor(float64(n) * ratio))
		plan[i] = MixEntry{Dataset: env + "-" + t, Ratio: ratio, Count: count}
		assigned += count
	}
	for i := 0; assigned < n; i = (i + 1) % len(plan) {
		plan[i].Count++
		assigned++
	}
	return plan, nil
}

// ParseMixedEnv reads the mixed dataset names of the sweeps:
// <env>-<low>-<high>-<ratio>-<version>, ratio being the share of <high>
func ParseMixedEnv(name string) (string, []string, []float64, error) {
	parts := strings.Split(name, "-")
	if len(parts) != 5 {
		return "", nil, nil, fmt.Errorf("not a mixed dataset name: %q", name)
	}
	ratio, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return "", nil, nil, fmt.Errorf("mixed dataset %q: bad ratio: %w", name, err)
	}
	if !positiveFinite(ratio) || ratio >= 1 {
		return "", nil, nil, fmt.Errorf("mixed dataset %q: ratio must be in (0, 1)", name)
	}
	version := parts[4]
	types := []string{parts[1] + "-" + version, parts[2] + "-" + version}
	return parts[0], types, []float64{1 - ratio, ratio}, nil
}

func positiveFinite(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}
