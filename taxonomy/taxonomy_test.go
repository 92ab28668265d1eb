package taxonomy

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoRooms() ([]Clue, []Goal) {
	return []Clue{
			{Name: "apple", Symbols: "%", Color: Red, Likelihoods: []float64{0.9, 0.1}},
			{Name: "armour", Symbols: "[]", Color: Gray, Likelihoods: []float64{0.2, 0.7}},
		}, []Goal{
			{Name: "key", Symbol: "(", Color: Yellow},
			{Name: "ring", Symbol: "=", Color: Red},
		}
}

func TestNew(t *testing.T) {
	clues, goals := twoRooms()
	tax, err := New(clues, goals)
	require.NoError(t, err)
	assert.Equal(t, 2, tax.Hypotheses())
	assert.Equal(t, 1, tax.Goal(1).Hypothesis)

	// the caller's slices are copied
	clues[0].Likelihoods[0] = 0
	assert.Equal(t, 0.9, tax.Clues()[0].Likelihoods[0])
}

func TestNew_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c []Clue, g []Goal) ([]Clue, []Goal)
		want   error
	}{
		{
			name:   "no goals",
			mutate: func(c []Clue, g []Goal) ([]Clue, []Goal) { return c, nil },
			want:   ErrCardinality,
		},
		{
			name: "short likelihoods",
			mutate: func(c []Clue, g []Goal) ([]Clue, []Goal) {
				c[0].Likelihoods = []float64{0.9}
				return c, g
			},
			want: ErrLikelihoodLength,
		},
		{
			name: "negative likelihood",
			mutate: func(c []Clue, g []Goal) ([]Clue, []Goal) {
				c[1].Likelihoods = []float64{-0.1, 0.5}
				return c, g
			},
			want: ErrNegativeLikelihood,
		},
		{
			name: "nan likelihood",
			mutate: func(c []Clue, g []Goal) ([]Clue, []Goal) {
				c[0].Likelihoods = []float64{math.NaN(), 0.1}
				return c, g
			},
			want: ErrNegativeLikelihood,
		},
		{
			name: "duplicate",
			mutate: func(c []Clue, g []Goal) ([]Clue, []Goal) {
				c[0].Symbols = "="
				return c, g
			},
			want: ErrDuplicateLandmark,
		},
		{
			name: "terrain symbol",
			mutate: func(c []Clue, g []Goal) ([]Clue, []Goal) {
				c[0].Symbols = "|"
				return c, g
			},
			want: ErrSymbolConflict,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := New(c.mutate(twoRooms()))
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestLookup(t *testing.T) {
	tax, err := New(twoRooms())
	require.NoError(t, err)

	l, ok := tax.Lookup('%', Red)
	require.True(t, ok)
	clue, isClue := l.(*Clue)
	require.True(t, isClue)
	assert.Equal(t, "apple", clue.Name)

	l, ok = tax.Lookup(']', Gray)
	require.True(t, ok)
	assert.Equal(t, "armour", l.LandmarkName())

	l, ok = tax.Lookup('=', Red)
	require.True(t, ok)
	goal, isGoal := l.(*Goal)
	require.True(t, isGoal)
	assert.Equal(t, 1, goal.Hypothesis)

	_, ok = tax.Lookup('%', Green)
	assert.False(t, ok)
}

func TestWalkableSymbols(t *testing.T) {
	tax, err := New(twoRooms())
	require.NoError(t, err)
	assert.ElementsMatch(t, []byte(".{@%[](="), tax.WalkableSymbols())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "objects.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
clues:
  - name: apple
    symbols: "%"
    color: 1
    likelihoods: [0.9, 0.1]
goals:
  - {name: key, symbol: "(", color: 11}
  - {name: ring, symbol: "=", color: 1}
`), 0o644))
	tax, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 2, tax.Hypotheses())

	jsonPath := filepath.Join(dir, "objects.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  "clues": [{"name": "apple", "symbols": "%", "color": 1, "likelihoods": [0.9, 0.1]}],
  "goals": [{"name": "key", "symbol": "(", "color": 11}]
}`), 0o644))
	_, err = Load(jsonPath)
	assert.ErrorIs(t, err, ErrLikelihoodLength)

	tax, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, tax.Hypotheses())
}
