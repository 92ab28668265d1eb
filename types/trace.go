package types

import "github.com/zeu5/room-explorer/grid"

// Step is one primitive move of an episode and where it left the agent.
type Step struct {
	Move     Move          `json:"move"`
	Position grid.Location `json:"position"`
	Target   grid.Location `json:"target"`
}

// Trace records an episode for replay and offline analysis.
type Trace struct {
	EpisodeID string        `json:"episode_id"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Start     grid.Location `json:"start"`
	Steps     []Step        `json:"steps"`
	Guess     int           `json:"guess"`
	Truth     int           `json:"truth"`
	Belief    []float64     `json:"belief,omitempty"`
}

func NewTrace(episodeID string, width, height int, start grid.Location) *Trace {
	return &Trace{
		EpisodeID: episodeID,
		Width:     width,
		Height:    height,
		Start:     start,
		Steps:     make([]Step, 0),
		Guess:     -1,
		Truth:     -1,
	}
}

func (t *Trace) Append(s Step) {
	t.Steps = append(t.Steps, s)
}

func (t *Trace) Len() int {
	return len(t.Steps)
}

func (t *Trace) Get(i int) (Step, bool) {
	if i < 0 || i >= len(t.Steps) {
		return Step{}, false
	}
	return t.Steps[i], true
}

func (t *Trace) Last() (Step, bool) {
	return t.Get(len(t.Steps) - 1)
}

// GetPrefix returns the trace cut after its first i steps.
func (t *Trace) GetPrefix(i int) (*Trace, bool) {
	if i > len(t.Steps) {
		return nil, false
	}
	prefix := *t
	prefix.Steps = t.Steps[0:i]
	return &prefix, true
}

// Positions lists every cell the agent stood on, the start included.
func (t *Trace) Positions() []grid.Location {
	out := make([]grid.Location, 0, len(t.Steps)+1)
	out = append(out, t.Start)
	for _, s := range t.Steps {
		out = append(out, s.Position)
	}
	return out
}

// Heatmap counts the visits of Positions.
func (t *Trace) Heatmap() *grid.Heatmap {
	h := grid.NewHeatmap(t.Width, t.Height)
	for _, l := range t.Positions() {
		h.Visit(l)
	}
	return h
}
