package benchmarks

import (
	"bytes"
	"context"
	"io"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/room-explorer/config"
	"github.com/zeu5/room-explorer/grid"
)

func testSetup(t *testing.T) *setup {
	t.Helper()
	c := config.Default()
	c.LogLevel = "none"
	c.ResultsDir = t.TempDir()
	s, err := newSetup(c, io.Discard)
	require.NoError(t, err)
	return s
}

func TestPlayIsDeterministic(t *testing.T) {
	s := testSetup(t)
	first, err := s.play(context.Background(), 11, true)
	require.NoError(t, err)
	second, err := s.play(context.Background(), 11, true)
	require.NoError(t, err)

	assert.Equal(t, first.Room.Pattern, second.Room.Pattern)
	assert.Equal(t, first.Room.Truth, second.Room.Truth)
	assert.Equal(t, first.Result.Moves, second.Result.Moves)
	assert.Equal(t, first.Result.Hypothesis, second.Result.Hypothesis)
	assert.Equal(t, first.Result.Trace.Positions(), second.Result.Trace.Positions())
	assert.NotEqual(t, first.Result.EpisodeID, second.Result.EpisodeID)
}

func TestEpisodeFuncOutcome(t *testing.T) {
	s := testSetup(t)
	ep, err := s.play(context.Background(), 3, false)
	require.NoError(t, err)

	o := ep.Result.Outcome(ep.Env.Truth())
	assert.Equal(t, ep.Room.Truth, o.Truth)
	assert.Equal(t, ep.Result.Moves, o.Moves)
	assert.NotNil(t, o.Heatmap)
	assert.Nil(t, o.Trace)
	assert.GreaterOrEqual(t, o.Unexplored, 0.0)
	assert.LessOrEqual(t, o.Unexplored, 1.0)
}

func TestExploreConfig(t *testing.T) {
	c := config.Default()
	_, err := exploreConfig(c, nil, false)
	require.NoError(t, err)

	c.Distance = "bogus"
	_, err = exploreConfig(c, nil, false)
	assert.Error(t, err)

	c = config.Default()
	c.Policy = "bogus"
	_, err = exploreConfig(c, nil, false)
	assert.Error(t, err)
}

func TestAccuracy(t *testing.T) {
	episodes, runs = 4, 1
	s := testSetup(t)
	s.cfg.Parallelism = 2
	s.cfg.Seed = 9
	require.NoError(t, Accuracy(s))

	for _, f := range []string{"comparison_config.json", "0_accuracy.json", "0_steps.json"} {
		_, err := os.Stat(path.Join(s.cfg.ResultsDir, f))
		assert.NoError(t, err, f)
	}
}

func TestSteps_UnknownDistance(t *testing.T) {
	episodes, runs = 1, 1
	s := testSetup(t)
	assert.Error(t, Steps(s, []string{"manhattan", "bogus"}))
}

func TestRenderGrid(t *testing.T) {
	s := testSetup(t)
	g := grid.MustParse(`
-----
|.@.|
|.{.|
-----`, s.tax.Table())

	plain := color.ClearCode(renderGrid(g, nil, nil))
	assert.Equal(t, g.String(), plain)

	withPath := color.ClearCode(renderGrid(g, nil, []grid.Location{{X: 1, Y: 1}, {X: 1, Y: 2}}))
	assert.Equal(t, "-----\n|*@.|\n|*{.|\n-----", withPath)
}

func TestFindPattern(t *testing.T) {
	s := testSetup(t)
	p, err := findPattern(s.patterns, "room2")
	require.NoError(t, err)
	assert.Equal(t, "room2", p.Name)

	_, err = findPattern(s.patterns, "attic")
	assert.ErrorContains(t, err, "room1")
}

func TestRootCommandRender(t *testing.T) {
	cmd := GetRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"render", "--pattern", "room1", "--seed", "3", "--log-level", "none"})
	require.NoError(t, cmd.Execute())

	text := color.ClearCode(out.String())
	assert.True(t, strings.HasPrefix(text, "Pattern: room1"), text)
	assert.Contains(t, text, "{")
	assert.Equal(t, uint64(3), cfg.Seed)
}

func TestRootCommandRejectsBadConfig(t *testing.T) {
	cmd := GetRootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"render", "--threshold", "1.5"})
	assert.ErrorIs(t, cmd.Execute(), config.ErrInvalidValue)
}
