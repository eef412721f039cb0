package sweep

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidSampler = errors.New("invalid sampler")

// SamplerKind is the batch sampling strategy used on the offline dataset
type SamplerKind string

const (
	Uniform  SamplerKind = "uniform"
	TopK     SamplerKind = "Top"
	Reweight SamplerKind = "RW"
	AdvWeigh SamplerKind = "AW"
)

// Sampler is a parsed sampler name, e.g. "uniform", "Top-0.1", "RW-0.2", "AW-0.1"
type Sampler struct {
	Kind  SamplerKind
	Param float64
	// raw parameter text, kept so that "0.1" and ".1" are not rewritten in commands
	raw string
}

func (s Sampler) String() string {
	if s.Kind == Uniform {
		return string(Uniform)
	}
	raw := s.raw
	if raw == "" {
		raw = strconv.FormatFloat(s.Param, 'g', -1, 64)
	}
	return string(s.Kind) + "-" + raw
}

// ParseSampler checks the sampler name the training scripts understand
func ParseSampler(name string) (Sampler, error) {
	if name == string(Uniform) {
		return Sampler{Kind: Uniform}, nil
	}
	kind, raw, ok := strings.Cut(name, "-")
	if !ok || raw == "" {
		return Sampler{}, fmt.Errorf("%w: %q", ErrInvalidSampler, name)
	}
	param, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Sampler{}, fmt.Errorf("%w: %q: %v", ErrInvalidSampler, name, err)
	}

	if math.IsNaN(param) || math.IsInf(param, 0) {
		return Sampler{}, fmt.Errorf("%w: %q: parameter must be finite", ErrInvalidSampler, name)
	}

	s := Sampler{Kind: SamplerKind(kind), Param: param, raw: raw}
	switch s.Kind {
	case TopK:
		if param <= 0 || param > 1 {
			return Sampler{}, fmt.Errorf("%w: %q: top fraction must be in (0, 1]", ErrInvalidSampler, name)
		}
	case Reweight, AdvWeigh:
		if param <= 0 {
			return Sampler{}, fmt.Errorf("%w: %q: temperature must be positive", ErrInvalidSampler, name)
		}
	default:
		return Sampler{}, fmt.Errorf("%w: %q: unknown kind %q", ErrInvalidSampler, name, kind)
	}
	return s, nil
}

// Samplers builds a sampler list the way the sweep scripts do: uniform plus
// one entry per parameter of each kind
func Samplers(uniform bool, top []string, rw []string, aw []string) []string {
	out := make([]string, 0)
	if uniform {
		out = append(out, string(Uniform))
	}
	for _, p := range top {
		out = append(out, string(TopK)+"-"+p)
	}
	for _, p := range rw {
		out = append(out, string(Reweight)+"-"+p)
	}
	for _, p := range aw {
		out = append(out, string(AdvWeigh)+"-"+p)
	}
	return out
}
