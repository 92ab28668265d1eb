package belief

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

func TestUpdate(t *testing.T) {
	post, ok := Update([]float64{0.5, 0.5}, []float64{0.9, 0.1})
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0.9, 0.1}, post, 1e-12)

	post, ok = Update(post, []float64{0.9, 0.1})
	require.True(t, ok)
	assert.InDelta(t, 0.81/0.82, post[0], 1e-12)
	assert.InDelta(t, 0.01/0.82, post[1], 1e-12)
}

func TestUpdate_Degenerate(t *testing.T) {
	prior := []float64{1, 0}
	post, ok := Update(prior, []float64{0, 0.7})
	assert.False(t, ok)
	assert.Equal(t, prior, post)

	post, ok = Update(prior, []float64{math.NaN(), 1})
	assert.False(t, ok)
	assert.Equal(t, prior, post)

	_, ok = Update(prior, []float64{1})
	assert.False(t, ok)
}

func TestBelief_Threshold(t *testing.T) {
	b := New(2, DefaultThreshold)
	assert.Equal(t, []float64{0.5, 0.5}, b.Probabilities())

	changed, err := b.Observe([]float64{0.9, 0.1})
	require.NoError(t, err)
	assert.True(t, changed)
	_, decided := b.Decision()
	assert.False(t, decided, "0.9 is below 0.95")

	_, err = b.Observe([]float64{0.9, 0.1})
	require.NoError(t, err)
	h, decided := b.Decision()
	assert.True(t, decided)
	assert.Equal(t, 0, h)
	assert.InDelta(t, 0.9878, b.Probabilities()[0], 1e-4)
	assert.Equal(t, 2, b.Updates())
}

func TestBelief_Rejected(t *testing.T) {
	b := New(3, 0.9)
	_, err := b.Observe([]float64{1, 0, 0})
	require.NoError(t, err)

	changed, err := b.Observe([]float64{0, 1, 1})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, b.Rejected())
	assert.Equal(t, []float64{1, 0, 0}, b.Probabilities())

	_, err = b.Observe([]float64{1, 1})
	assert.ErrorIs(t, err, ErrDimension)
}

func TestBelief_BestTies(t *testing.T) {
	b := New(3, 0)
	assert.Equal(t, DefaultThreshold, b.Threshold())
	assert.Equal(t, 0, b.Best())

	_, err := b.Observe([]float64{0.2, 0.5, 0.5})
	require.NoError(t, err)
	assert.Equal(t, 1, b.Best())
}

func TestBelief_StaysNormalised(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := New(4, 1)
	for i := 0; i < 500; i++ {
		lik := make([]float64, 4)
		for j := range lik {
			if rng.Float64() < 0.2 {
				continue
			}
			lik[j] = rng.Float64()
		}
		_, err := b.Observe(lik)
		require.NoError(t, err)

		p := b.Probabilities()
		for _, v := range p {
			assert.GreaterOrEqual(t, v, 0.0)
		}
		assert.InDelta(t, 1.0, floats.Sum(p), 1e-9)
	}
}
