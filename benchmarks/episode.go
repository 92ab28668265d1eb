package benchmarks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/go-kit/log"
	"github.com/zeu5/room-explorer/config"
	"github.com/zeu5/room-explorer/explore"
	"github.com/zeu5/room-explorer/pathfind"
	"github.com/zeu5/room-explorer/policies"
	"github.com/zeu5/room-explorer/room"
	"github.com/zeu5/room-explorer/taxonomy"
	"github.com/zeu5/room-explorer/types"
	"github.com/zeu5/room-explorer/util"
	"golang.org/x/exp/rand"
)

// setup is what every episode of a command shares. All of it is read-only
// once built.
type setup struct {
	cfg      config.Config
	tax      *taxonomy.Taxonomy
	patterns []*room.Pattern
	logger   log.Logger
}

func newSetup(c config.Config, logOut io.Writer) (*setup, error) {
	tax, err := taxonomy.Load(c.TaxonomyPath)
	if err != nil {
		return nil, err
	}
	patterns := room.DefaultPatterns()
	if c.PatternsDir != "" {
		patterns, err = room.LoadPatterns(c.PatternsDir)
		if err != nil {
			return nil, err
		}
	}
	return &setup{
		cfg:      c,
		tax:      tax,
		patterns: patterns,
		logger:   util.NewLogger(logOut, c.LogLevel),
	}, nil
}

// with returns a copy of s running under c.
func (s *setup) with(c config.Config) *setup {
	out := *s
	out.cfg = c
	return &out
}

// exploreConfig maps c onto the explorer, drawing randomness from r.
func exploreConfig(c config.Config, r *rand.Rand, record bool) (explore.Config, error) {
	dist, err := pathfind.ByName(c.Distance, c.WallPenalty)
	if err != nil {
		return explore.Config{}, err
	}
	h, err := pathfind.ByName(c.Heuristic, c.WallPenalty)
	if err != nil {
		return explore.Config{}, err
	}
	selector, err := policies.New(policies.Config{
		Name:        c.Policy,
		Bias:        c.Bias,
		Temperature: c.Temperature,
		Distance:    dist,
	}, r)
	if err != nil {
		return explore.Config{}, err
	}
	return explore.Config{
		Threshold:  c.Threshold,
		Selector:   selector,
		Heuristic:  h,
		Diagonal:   c.Diagonal,
		MaxMoves:   c.MaxMoves,
		FollowExit: c.FollowExit,
		Record:     record,
	}, nil
}

// episode is one generated room explored to the end.
type episode struct {
	Room   *room.Room
	Env    *room.Env
	Result *explore.Result
}

// play generates a room from seed and explores it. Everything random in
// the episode derives from seed.
func (s *setup) play(ctx context.Context, seed uint64, record bool) (*episode, error) {
	gen := room.NewGenerator(s.tax, s.patterns, s.cfg.Spins, seed)
	r, err := gen.Generate()
	if err != nil {
		return nil, err
	}
	return s.playRoom(ctx, r, seed, record)
}

func (s *setup) playRoom(ctx context.Context, r *room.Room, seed uint64, record bool) (*episode, error) {
	env, err := room.NewEnv(r, s.tax.Table())
	if err != nil {
		return nil, err
	}
	ecfg, err := exploreConfig(s.cfg, rand.New(rand.NewSource(seed)), record)
	if err != nil {
		return nil, err
	}
	result, err := explore.New(env, s.tax, ecfg, s.logger).Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", r.Pattern, err)
	}
	return &episode{Room: r, Env: env, Result: result}, nil
}

// episodeFunc plays the harness' episodes under s.
func (s *setup) episodeFunc(record bool) types.EpisodeFunc {
	return func(eCtx *types.EpisodeContext) (*types.Outcome, error) {
		ep, err := s.play(eCtx.Context, eCtx.Seed, record)
		if err != nil {
			return nil, err
		}
		return ep.Result.Outcome(ep.Env.Truth()), nil
	}
}

// comparisonConfig is the harness configuration shared by the batch
// commands.
func comparisonConfig(c config.Config) *types.ComparisonConfig {
	return &types.ComparisonConfig{
		Runs:         runs,
		Episodes:     episodes,
		Parallelism:  c.Parallelism,
		Seed:         c.Seed,
		RecordPath:   c.ResultsDir,
		RecordTraces: recordTraces,
	}
}

// runComparison runs c until it finishes or the process is interrupted.
func runComparison(c *types.Comparison, saveDir string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	stop, err := startProfiling(saveDir)
	if err != nil {
		return err
	}
	defer stop()
	return c.Run(ctx)
}
