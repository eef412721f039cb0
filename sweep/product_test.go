package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductOrder(t *testing.T) {
	points := Product(2, 3)
	expected := [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	assert.Equal(t, expected, points)
}

func TestProductCount(t *testing.T) {
	assert.Len(t, Product(4, 2, 4, 5), 4*2*4*5)
	assert.Empty(t, Product(3, 0, 2))
	assert.Empty(t, Product())
}

func TestProductPointsAreIndependent(t *testing.T) {
	points := Product(2, 2)
	points[0][0] = 9
	assert.Equal(t, []int{0, 1}, points[1])
}

func TestCross(t *testing.T) {
	out := Cross("-", []string{"hopper", "ant"}, []string{"random-v2", "expert-v2"})
	require.Len(t, out, 4)
	assert.Equal(t, []string{"hopper-random-v2", "hopper-expert-v2", "ant-random-v2", "ant-expert-v2"}, out)
}
