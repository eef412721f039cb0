package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSampler(t *testing.T) {
	cases := []struct {
		name  string
		kind  SamplerKind
		param float64
	}{
		{"uniform", Uniform, 0},
		{"Top-0.1", TopK, 0.1},
		{"RW-0.2", Reweight, 0.2},
		{"AW-0.1", AdvWeigh, 0.1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := ParseSampler(c.name)
			require.NoError(t, err)
			assert.Equal(t, c.kind, s.Kind)
			assert.InDelta(t, c.param, s.Param, 1e-12)
			assert.Equal(t, c.name, s.String())
		})
	}
}

func TestParseSamplerInvalid(t *testing.T) {
	for _, name := range []string{"", "Top", "Top-", "Top-0", "Top-1.5", "RW-0", "AW--1", "XX-0.1", "RW-abc", "Top-NaN", "RW-Inf", "AW-nan", "AW-+Inf"} {
		_, err := ParseSampler(name)
		assert.ErrorIs(t, err, ErrInvalidSampler, name)
	}
}

func TestSamplersList(t *testing.T) {
	assert.Equal(t,
		[]string{"uniform", "Top-0.1", "RW-0.2", "AW-0.2"},
		Samplers(true, []string{"0.1"}, []string{"0.2"}, []string{"0.2"}))
	assert.Equal(t, []string{"RW-0.1"}, Samplers(false, nil, []string{"0.1"}, nil))
}
