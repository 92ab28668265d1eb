package room

import (
	"errors"
	"fmt"
	"time"

	"github.com/zeu5/room-explorer/grid"
	"github.com/zeu5/room-explorer/taxonomy"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

var ErrRoomFull = errors.New("not enough free floor for the objects")

// DefaultSpins is how many times every clue gets a chance to spawn.
const DefaultSpins = 2

// PlayerColor is the display colour of the player marker.
const PlayerColor = taxonomy.White

// Object is a landmark placed in a room.
type Object struct {
	Name     string        `json:"name"`
	Symbol   byte          `json:"symbol"`
	Color    int           `json:"color"`
	Location grid.Location `json:"location"`
	// Hypothesis is the goal's hypothesis, -1 for clues
	Hypothesis int `json:"hypothesis"`
	// Blessed marks the goal of the true hypothesis. The explorer never
	// sees it.
	Blessed bool `json:"-"`
}

// Room is a generated level: a pattern populated with objects and a
// player start, plus the hypothesis it was generated for.
type Room struct {
	Pattern string
	Rows    [][]byte
	Colors  [][]int
	Start   grid.Location
	Truth   int
	Objects []Object
}

// Generator populates patterns with landmarks from a taxonomy.
type Generator struct {
	tax      *taxonomy.Taxonomy
	patterns []*Pattern
	spins    int
	rand     *rand.Rand
}

// NewGenerator seeds its randomness with seed, or the clock when seed is 0.
func NewGenerator(tax *taxonomy.Taxonomy, patterns []*Pattern, spins int, seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if spins <= 0 {
		spins = DefaultSpins
	}
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}
	return &Generator{
		tax:      tax,
		patterns: patterns,
		spins:    spins,
		rand:     rand.New(rand.NewSource(seed)),
	}
}

// Generate draws a pattern and a hypothesis uniformly, places every goal
// once, spawns each clue with its likelihood under the drawn hypothesis
// once per spin, and puts the player on a free floor cell.
func (g *Generator) Generate() (*Room, error) {
	return g.GenerateFor(g.rand.Intn(g.tax.Hypotheses()))
}

// GenerateFor is Generate with a fixed hypothesis.
func (g *Generator) GenerateFor(truth int) (*Room, error) {
	if truth < 0 || truth >= g.tax.Hypotheses() {
		return nil, fmt.Errorf("hypothesis %d out of range", truth)
	}
	pattern := g.patterns[g.rand.Intn(len(g.patterns))]
	base, err := pattern.Grid(g.tax.Table())
	if err != nil {
		return nil, err
	}

	objects := make([]Object, 0)
	for _, goal := range g.tax.Goals() {
		objects = append(objects, Object{
			Name:       goal.Name,
			Symbol:     goal.Symbol[0],
			Color:      goal.Color,
			Hypothesis: goal.Hypothesis,
			Blessed:    goal.Hypothesis == truth,
		})
	}
	for spin := 0; spin < g.spins; spin++ {
		for _, clue := range g.tax.Clues() {
			if g.rand.Float64() > clue.Likelihoods[truth] {
				continue
			}
			objects = append(objects, Object{
				Name:       clue.Name,
				Symbol:     clue.Symbols[g.rand.Intn(len(clue.Symbols))],
				Color:      clue.Color,
				Hypothesis: -1,
			})
		}
	}

	free := make([]grid.Location, 0)
	base.ForEach(func(l grid.Location, _ byte, k grid.Kind) {
		if k == grid.Floor {
			free = append(free, l)
		}
	})
	// one more cell for the player
	need := len(objects) + 1
	if need > len(free) {
		return nil, fmt.Errorf("%w: %s has %d cells, need %d", ErrRoomFull, pattern.Name, len(free), need)
	}
	picks := make([]int, need)
	sampleuv.WithoutReplacement(picks, len(free), g.rand)

	r := &Room{
		Pattern: pattern.Name,
		Rows:    base.Rows(),
		Colors:  make([][]int, base.Height()),
		Truth:   truth,
		Start:   free[picks[len(picks)-1]],
	}
	for y := range r.Colors {
		r.Colors[y] = make([]int, base.Width())
		for x := range r.Colors[y] {
			r.Colors[y][x] = taxonomy.NoColor
		}
	}
	for i := range objects {
		l := free[picks[i]]
		objects[i].Location = l
		r.Rows[l.Y][l.X] = objects[i].Symbol
		r.Colors[l.Y][l.X] = objects[i].Color
	}
	r.Objects = objects
	return r, nil
}
