package taxonomy

import (
	"errors"
	"fmt"

	"github.com/zeu5/room-explorer/grid"
)

var (
	ErrCardinality        = errors.New("need one goal landmark per hypothesis")
	ErrLikelihoodLength   = errors.New("likelihood vector length differs from hypothesis count")
	ErrNegativeLikelihood = errors.New("likelihood outside [0, 1]")
	ErrDuplicateLandmark  = errors.New("landmark symbol and colour already taken")
	ErrSymbolConflict     = errors.New("landmark symbol collides with a terrain symbol")
)

// Landmark is either a *Clue or a *Goal.
type Landmark interface {
	LandmarkName() string
	landmark()
}

// Clue is an object whose presence is evidence for some hypotheses over
// others. Likelihoods[h] is the chance it spawns in a room of hypothesis h.
type Clue struct {
	Name        string    `json:"name" yaml:"name"`
	Symbols     string    `json:"symbols" yaml:"symbols"`
	Color       int       `json:"color" yaml:"color"`
	Likelihoods []float64 `json:"likelihoods" yaml:"likelihoods"`
}

// Goal marks the exit of one hypothesis. Every room holds all goals; which
// one is real is hidden from the explorer.
type Goal struct {
	Name       string `json:"name" yaml:"name"`
	Symbol     string `json:"symbol" yaml:"symbol"`
	Color      int    `json:"color" yaml:"color"`
	Hypothesis int    `json:"-" yaml:"-"`
}

func (c *Clue) LandmarkName() string { return c.Name }
func (*Clue) landmark()              {}

func (g *Goal) LandmarkName() string { return g.Name }
func (*Goal) landmark()              {}

type key struct {
	symbol byte
	color  int
}

// Taxonomy is the read-only landmark catalogue of an episode.
type Taxonomy struct {
	clues  []*Clue
	goals  []*Goal
	lookup map[key]Landmark
	table  *grid.Table
}

// New validates the catalogues and builds the (symbol, colour) index and
// the terrain table with every landmark symbol marked walkable.
func New(clues []Clue, goals []Goal) (*Taxonomy, error) {
	if len(goals) == 0 {
		return nil, fmt.Errorf("%w: no goals", ErrCardinality)
	}
	t := &Taxonomy{
		clues:  make([]*Clue, len(clues)),
		goals:  make([]*Goal, len(goals)),
		lookup: make(map[key]Landmark),
	}
	symbols := make([]byte, 0)
	add := func(b byte, color int, l Landmark) error {
		k := key{symbol: b, color: color}
		if prev, ok := t.lookup[k]; ok {
			return fmt.Errorf("%w: %q colour %d used by %s and %s", ErrDuplicateLandmark, b, color, prev.LandmarkName(), l.LandmarkName())
		}
		t.lookup[k] = l
		symbols = append(symbols, b)
		return nil
	}

	for i := range goals {
		g := goals[i]
		if len(g.Symbol) != 1 {
			return nil, fmt.Errorf("goal %s: symbol must be a single character, got %q", g.Name, g.Symbol)
		}
		g.Hypothesis = i
		t.goals[i] = &g
		if err := add(g.Symbol[0], g.Color, t.goals[i]); err != nil {
			return nil, err
		}
	}
	for i := range clues {
		c := clues[i]
		c.Likelihoods = append([]float64(nil), c.Likelihoods...)
		if len(c.Likelihoods) != len(goals) {
			return nil, fmt.Errorf("%w: clue %s has %d, want %d", ErrLikelihoodLength, c.Name, len(c.Likelihoods), len(goals))
		}
		for _, p := range c.Likelihoods {
			if !(p >= 0 && p <= 1) {
				return nil, fmt.Errorf("%w: clue %s has %v", ErrNegativeLikelihood, c.Name, p)
			}
		}
		if len(c.Symbols) == 0 {
			return nil, fmt.Errorf("clue %s: no symbols", c.Name)
		}
		t.clues[i] = &c
		for j := 0; j < len(c.Symbols); j++ {
			if err := add(c.Symbols[j], c.Color, t.clues[i]); err != nil {
				return nil, err
			}
		}
	}

	table, err := grid.NewTable(grid.DefaultSymbols().WithLandmarks(dedup(symbols)))
	if err != nil {
		if errors.Is(err, grid.ErrSymbolConflict) {
			return nil, fmt.Errorf("%w: %v", ErrSymbolConflict, err)
		}
		return nil, err
	}
	t.table = table
	return t, nil
}

func dedup(b []byte) []byte {
	var seen [256]bool
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Hypotheses is the number of room hypotheses, equal to the goal count.
func (t *Taxonomy) Hypotheses() int {
	return len(t.goals)
}

func (t *Taxonomy) Clues() []*Clue {
	return t.clues
}

func (t *Taxonomy) Goals() []*Goal {
	return t.goals
}

// Goal returns the goal landmark of hypothesis h.
func (t *Taxonomy) Goal(h int) *Goal {
	return t.goals[h]
}

// Lookup resolves an observed (symbol, colour) pair.
func (t *Taxonomy) Lookup(symbol byte, color int) (Landmark, bool) {
	l, ok := t.lookup[key{symbol: symbol, color: color}]
	return l, ok
}

// Table is the terrain table for maps populated from this taxonomy.
func (t *Taxonomy) Table() *grid.Table {
	return t.table
}

// WalkableSymbols returns floor, virtual floor, player and every landmark symbol.
func (t *Taxonomy) WalkableSymbols() []byte {
	return t.table.WalkableSymbols()
}
