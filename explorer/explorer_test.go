package explorer

import (
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/room-explorer/grid"
	"github.com/zeu5/room-explorer/types"
	"github.com/zeu5/room-explorer/util"
)

func testTrace(id string) *types.Trace {
	t := types.NewTrace(id, 4, 2, grid.Location{X: 0, Y: 0})
	t.Append(types.Step{Move: types.East, Position: grid.Location{X: 1, Y: 0}, Target: grid.Location{X: 2, Y: 0}})
	t.Append(types.Step{Move: types.East, Position: grid.Location{X: 2, Y: 0}, Target: grid.Location{X: 2, Y: 0}})
	t.Append(types.Step{Move: types.West, Position: grid.Location{X: 1, Y: 0}, Target: grid.Location{X: 1, Y: 0}})
	t.Guess, t.Truth = 1, 1
	t.Belief = []float64{0.04, 0.96}
	return t
}

func writeTraces(t *testing.T, traces ...*types.Trace) string {
	t.Helper()
	file := path.Join(t.TempDir(), "traces.jsonl")
	for _, tr := range traces {
		require.NoError(t, util.AppendJSONLine(file, tr))
	}
	return file
}

func TestReadTraces(t *testing.T) {
	file := writeTraces(t, testTrace("a"), testTrace("b"))
	traces, err := ReadTraces(file)
	require.NoError(t, err)
	require.Len(t, traces, 2)
	assert.Equal(t, "b", traces[1].EpisodeID)
	assert.Equal(t, 3, traces[0].Len())
	assert.Equal(t, types.West, traces[0].Steps[2].Move)
}

func TestReadTraces_SingleJSON(t *testing.T) {
	file := path.Join(t.TempDir(), "trace.json")
	require.NoError(t, util.WriteJSON(file, testTrace("single")))
	traces, err := ReadTraces(file)
	require.NoError(t, err)
	require.Len(t, traces, 1)
	assert.Equal(t, "single", traces[0].EpisodeID)
}

func TestReadTraces_Errors(t *testing.T) {
	_, err := ReadTraces(path.Join(t.TempDir(), "missing.jsonl"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	file := path.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(file, []byte("{\"episode_id\": \"x\"}\nnot json\n"), 0644))
	_, err = ReadTraces(file)
	assert.ErrorContains(t, err, "line 2")
}

func TestSummarize(t *testing.T) {
	s := Summarize(testTrace("a"))
	assert.Equal(t, Summary{
		EpisodeID: "a",
		Moves:     3,
		Distinct:  3,
		Revisits:  1,
		Guess:     1,
		Truth:     1,
		Correct:   true,
		Belief:    0.96,
	}, s)

	empty := Summarize(types.NewTrace("e", 1, 1, grid.Location{}))
	assert.Equal(t, 0, empty.Moves)
	assert.Equal(t, 1, empty.Distinct)
	assert.False(t, empty.Correct)
}

func TestExplorerHeatmap(t *testing.T) {
	e, err := NewExplorer(writeTraces(t, testTrace("a"), testTrace("b")))
	require.NoError(t, err)
	h := e.Heatmap()
	assert.Equal(t, 2, h.Count(grid.Location{X: 0, Y: 0}))
	assert.Equal(t, 4, h.Count(grid.Location{X: 1, Y: 0}))
	assert.Equal(t, 2, h.Count(grid.Location{X: 2, Y: 0}))
}

func TestPath(t *testing.T) {
	tr := testTrace("a")
	assert.Equal(t, "@...\n....", Path(tr, -1))
	assert.Equal(t, "*@*.\n....", Path(tr, 2))
}

func TestInteract(t *testing.T) {
	e, err := NewExplorer(writeTraces(t, testTrace("a")))
	require.NoError(t, err)

	var out strings.Builder
	e.Interact(strings.NewReader("1\n3\n1\ns\nl\nq\n4\n"), &out)
	text := out.String()
	assert.Contains(t, text, "1. a: moves=3")
	assert.Contains(t, text, "Step 1/3: E to")
	assert.Contains(t, text, "Step 3/3: W to")
	assert.Contains(t, text, "Quitting!")
}

func TestInteract_EndOfInput(t *testing.T) {
	e := &Explorer{Traces: []*types.Trace{testTrace("a")}}
	var out strings.Builder
	e.Interact(strings.NewReader("3\n1\ns\n"), &out)
	assert.Contains(t, out.String(), "Step 1/3")
}
