package types

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/room-explorer/grid"
)

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
	assert.Equal(t, Summary{Count: 1, Mean: 4}, Summarize([]float64{4}))

	s := Summarize([]float64{2, 4, 6})
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 4, s.Mean, 1e-9)
	assert.InDelta(t, 2, s.StdDev, 1e-9)
}

func valid(o *Outcome) *EpisodeContext {
	eCtx := NewEpisodeContext(context.Background(), 0, 0, "x", 0, 1)
	eCtx.Cancel()
	eCtx.Outcome = o
	return eCtx
}

func TestAccuracyAnalyzer(t *testing.T) {
	a := NewAccuracyAnalyzer()
	a.Analyze(0, "x", valid(&Outcome{Guess: 1, Truth: 1, Confident: true}))
	a.Analyze(0, "x", valid(&Outcome{Guess: 0, Truth: 1}))
	failed := valid(nil)
	failed.SetError(assert.AnError)
	a.Analyze(0, "x", failed)

	data := a.DataSet().(*AccuracyData)
	assert.Equal(t, AccuracyData{Episodes: 3, Failed: 1, Correct: 1, Confident: 1}, *data)
	assert.InDelta(t, 0.5, data.WinRate(), 1e-9)

	a.Reset()
	assert.Equal(t, 0, a.DataSet().(*AccuracyData).Episodes)
	assert.Equal(t, 3, data.Episodes, "reset leaves returned datasets alone")
}

func TestUnknownTruthIsNeverCorrect(t *testing.T) {
	assert.False(t, (&Outcome{Guess: -1, Truth: -1}).Correct())
}

func TestComparatorsWriteFiles(t *testing.T) {
	dir := t.TempDir()
	names := []string{"manhattan", "euclidean"}

	StepsComparator(dir)(0, names, []DataSet{[]float64{3, 5}, []float64{4}})
	UnexploredComparator(dir, "threshold", []float64{0.7, 0.9})(0, names, []DataSet{[]float64{0.2}, []float64{0.1}})

	h := grid.NewHeatmap(3, 2)
	h.Visit(grid.Location{X: 1, Y: 1})
	HeatmapComparator(dir)(0, names[:1], []DataSet{h})

	for _, f := range []string{"0_steps.json", "0_steps.png", "0_unexplored.json", "0_unexplored.png", "0_manhattan_heatmap.json", "0_manhattan_heatmap.png"} {
		_, err := os.Stat(path.Join(dir, f))
		require.NoError(t, err, f)
	}
}

func TestPlotHeatmap_SkipsEmpty(t *testing.T) {
	file := path.Join(t.TempDir(), "empty.png")
	require.NoError(t, PlotHeatmap(grid.NewHeatmap(2, 2), "empty", file))
	_, err := os.Stat(file)
	assert.True(t, os.IsNotExist(err))
}
