package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentileInterpolatesBetweenRanks(t *testing.T) {
	values := []float64{100, 200, 300, 400, 500}

	p99, ok := percentile(values, 0.99)
	require.True(t, ok)
	assert.InDelta(t, 496.0, p99, 1e-9)

	median, ok := percentile(values, 0.5)
	require.True(t, ok)
	assert.InDelta(t, 300.0, median, 1e-9)
}

func TestPercentileBounds(t *testing.T) {
	values := []float64{10, 20, 30}

	lo, ok := percentile(values, 0)
	require.True(t, ok)
	assert.Equal(t, 10.0, lo)

	hi, ok := percentile(values, 1)
	require.True(t, ok)
	assert.Equal(t, 30.0, hi)
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	values := []float64{30, 10, 20}
	_, ok := percentile(values, 0.5)
	require.True(t, ok)
	assert.Equal(t, []float64{30, 10, 20}, values)
}

func TestPercentileEmptyInput(t *testing.T) {
	_, ok := percentile(nil, 0.99)
	assert.False(t, ok)
}

func TestPercentileSingleValue(t *testing.T) {
	v, ok := percentile([]float64{42}, 0.99)
	require.True(t, ok)
	assert.Equal(t, 42.0, v)
}

func TestClampFloat(t *testing.T) {
	assert.Equal(t, 1.0, clampFloat(0.5, 1, 5))
	assert.Equal(t, 5.0, clampFloat(5.4, 1, 5))
	assert.Equal(t, 4.2, clampFloat(4.2, 1, 5))
}
