package explore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/zeu5/room-explorer/belief"
	"github.com/zeu5/room-explorer/grid"
	"github.com/zeu5/room-explorer/pathfind"
	"github.com/zeu5/room-explorer/taxonomy"
	"github.com/zeu5/room-explorer/types"
	"github.com/zyedidia/generic/mapset"
)

var ErrNotStarted = errors.New("episode not started")

// Explorer runs one exploration episode against an environment: pick a
// frontier target, plan a path to it, walk it one move per Step while
// folding newly seen landmarks into the belief, and stop once a
// hypothesis is confident or nothing is left to explore.
type Explorer struct {
	env    types.Environment
	tax    *taxonomy.Taxonomy
	cfg    Config
	base   log.Logger
	logger log.Logger

	id       string
	started  bool
	done     bool
	result   *Result
	planGrid *grid.Grid
	obs      *types.Observation
	pos      grid.Location
	frontier *grid.Frontier
	belief   *belief.Belief
	seen     map[grid.Location]taxonomy.Landmark
	goals    map[int]grid.Location

	target grid.Location
	path   []grid.Location
	plan   []types.Move

	moves   int
	heatmap *grid.Heatmap
	trace   *types.Trace
}

// New prepares an episode. A nil logger discards everything.
func New(env types.Environment, tax *taxonomy.Taxonomy, cfg Config, logger log.Logger) *Explorer {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Explorer{
		env:    env,
		tax:    tax,
		cfg:    cfg.withDefaults(),
		base:   logger,
		logger: logger,
	}
}

// Start resets the environment and reads the initial observation. Errors
// here are structural problems with the map and end the episode.
func (e *Explorer) Start(ctx context.Context) error {
	obs, err := e.env.Reset(ctx)
	if err != nil {
		return fmt.Errorf("resetting environment: %w", err)
	}
	g, err := grid.New(obs.Chars, e.tax.Table())
	if err != nil {
		return fmt.Errorf("initial observation: %w", err)
	}
	pos, err := g.LocatePlayer()
	if err != nil {
		return fmt.Errorf("initial observation: %w", err)
	}

	e.id = uuid.NewString()
	e.logger = log.With(e.base, "episode", e.id)
	e.started = true
	e.done = false
	e.result = nil
	e.planGrid = grid.Precondition(g)
	e.obs = obs
	e.pos = pos
	e.frontier = grid.NewFrontier(e.planGrid, e.cfg.Radius)
	e.belief = belief.New(e.tax.Hypotheses(), e.cfg.Threshold)
	e.seen = make(map[grid.Location]taxonomy.Landmark)
	e.goals = make(map[int]grid.Location)
	e.path, e.plan = nil, nil
	e.moves = 0
	e.heatmap = grid.NewHeatmap(g.Width(), g.Height())
	e.heatmap.Visit(pos)
	if e.cfg.Record {
		e.trace = types.NewTrace(e.id, g.Width(), g.Height(), pos)
	} else {
		e.trace = nil
	}

	level.Debug(e.logger).Log(
		"msg", "episode started",
		"start", pos,
		"floor", e.frontier.Total(),
		"virtual", grid.CountVirtual(e.planGrid),
	)

	e.frontier.Cover(pos)
	if err := e.observe(); err != nil {
		return err
	}
	if _, ok := e.belief.Decision(); ok {
		e.finish(Confident)
	}
	return nil
}

// Step executes at most one primitive move and reports whether the
// episode is over. Map problems met on the way (unreachable targets,
// markers without a walkable neighbour) are absorbed by dropping the
// target; returned errors are fatal.
func (e *Explorer) Step(ctx context.Context) (bool, error) {
	if !e.started {
		return true, ErrNotStarted
	}
	if e.done {
		return true, nil
	}
	if e.cfg.MaxMoves > 0 && e.moves >= e.cfg.MaxMoves {
		e.finish(MoveLimit)
		return true, nil
	}
	for len(e.plan) == 0 {
		if e.frontier.Empty() {
			e.finish(Exhausted)
			return true, nil
		}
		if err := e.selectTarget(); err != nil {
			return true, err
		}
	}

	move, want := e.plan[0], e.path[1]
	obs, err := e.env.Step(ctx, move)
	if err != nil {
		return true, fmt.Errorf("move %d (%s): %w", e.moves, move, err)
	}
	e.moves++
	if err := e.update(obs); err != nil {
		return true, err
	}

	if e.pos == want {
		e.plan, e.path = e.plan[1:], e.path[1:]
	} else {
		level.Debug(e.logger).Log("msg", "path diverged", "want", want, "at", e.pos)
		e.plan, e.path = nil, nil
	}
	if e.trace != nil {
		e.trace.Append(types.Step{Move: move, Position: e.pos, Target: e.target})
	}

	e.frontier.Cover(e.pos)
	if err := e.observe(); err != nil {
		return true, err
	}
	if _, ok := e.belief.Decision(); ok {
		e.finish(Confident)
		return true, nil
	}
	return false, nil
}

// Run plays a whole episode, then walks to the exit when configured to.
// Cancelling ctx stops the episode between moves.
func (e *Explorer) Run(ctx context.Context) (*Result, error) {
	if err := e.Start(ctx); err != nil {
		return nil, err
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		done, err := e.Step(ctx)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	if e.cfg.FollowExit && len(e.result.ExitPath) > 1 {
		if err := e.walkExit(ctx); err != nil {
			return nil, err
		}
	}
	level.Info(e.logger).Log(
		"msg", "episode finished",
		"reason", e.result.Reason,
		"hypothesis", e.result.Hypothesis,
		"confident", e.result.Confident,
		"moves", e.result.Moves,
		"unexplored", fmt.Sprintf("%.3f", e.result.Unexplored),
	)
	return e.result, nil
}

// Result is nil until the episode is over.
func (e *Explorer) Result() *Result {
	return e.result
}

func (e *Explorer) Position() grid.Location {
	return e.pos
}

func (e *Explorer) Belief() []float64 {
	return e.belief.Probabilities()
}

func (e *Explorer) Frontier() *grid.Frontier {
	return e.frontier
}

// Map is the preconditioned grid paths are planned on.
func (e *Explorer) Map() *grid.Grid {
	return e.planGrid
}

// selectTarget picks a frontier cell and plans a path to it. The cell
// leaves the frontier whether or not a path exists, so every call makes
// progress towards an empty frontier.
func (e *Explorer) selectTarget() error {
	target := e.cfg.Selector.Select(e.planGrid, e.pos, e.frontier.Sorted())
	e.frontier.Drop(target)

	goal := target
	if e.planGrid.Kind(target) == grid.VirtualFloor {
		var err error
		goal, err = e.planGrid.ClosestWalkableNeighbor(target, e.pos)
		if err != nil {
			level.Debug(e.logger).Log("msg", "target dropped", "target", target, "err", err)
			return nil
		}
	}

	path, err := pathfind.FindPath(e.planGrid, e.pos, goal, mapset.New[grid.Location](), pathfind.Options{
		Heuristic: e.cfg.Heuristic,
		Diagonal:  e.cfg.Diagonal,
	})
	if errors.Is(err, pathfind.ErrNotFound) {
		level.Debug(e.logger).Log("msg", "target dropped", "target", goal, "err", err)
		return nil
	} else if err != nil {
		return err
	}
	moves, err := pathfind.MovesFromPath(path, e.cfg.Diagonal)
	if err != nil {
		return err
	}

	level.Debug(e.logger).Log("msg", "target selected", "from", e.pos, "target", goal, "length", len(moves))
	e.target = goal
	e.path = path
	e.plan = moves
	return nil
}

// update reads the player position from a fresh observation.
func (e *Explorer) update(obs *types.Observation) error {
	g, err := grid.New(obs.Chars, e.tax.Table())
	if err != nil {
		return fmt.Errorf("observation after move %d: %w", e.moves, err)
	}
	pos, err := g.LocatePlayer()
	if err != nil {
		return fmt.Errorf("observation after move %d: %w", e.moves, err)
	}
	e.obs = obs
	e.pos = pos
	e.heatmap.Visit(pos)
	return nil
}

// observe records the landmarks inside the current footprint. Only clues
// never seen before at their location move the belief.
func (e *Explorer) observe() error {
	for _, l := range sorted(grid.Footprint(e.cfg.Radius, e.pos)) {
		if l.Y < 0 || l.Y >= len(e.obs.Chars) || l.X < 0 || l.X >= len(e.obs.Chars[l.Y]) {
			continue
		}
		if _, ok := e.seen[l]; ok {
			continue
		}
		lm, ok := e.tax.Lookup(e.obs.Chars[l.Y][l.X], e.obs.Color(l.X, l.Y))
		if !ok {
			continue
		}
		e.seen[l] = lm

		switch lm := lm.(type) {
		case *taxonomy.Goal:
			e.goals[lm.Hypothesis] = l
			level.Debug(e.logger).Log("msg", "goal seen", "name", lm.Name, "at", l, "hypothesis", lm.Hypothesis)
		case *taxonomy.Clue:
			changed, err := e.belief.Observe(lm.Likelihoods)
			if err != nil {
				return fmt.Errorf("clue %s at %s: %w", lm.Name, l, err)
			}
			level.Debug(e.logger).Log("msg", "clue seen", "name", lm.Name, "at", l, "changed", changed, "belief", fmt.Sprint(e.belief.Probabilities()))
		}
	}
	return nil
}

func (e *Explorer) finish(reason Reason) {
	h, confident := e.belief.Decision()
	r := &Result{
		EpisodeID:  e.id,
		Hypothesis: h,
		Confident:  confident,
		Reason:     reason,
		Belief:     e.belief.Probabilities(),
		Unexplored: e.frontier.Unexplored(),
		Moves:      e.moves,
		Landmarks:  len(e.seen),
		Heatmap:    e.heatmap,
		Trace:      e.trace,
	}
	if loc, ok := e.goals[h]; ok {
		path, err := pathfind.FindPath(e.planGrid, e.pos, loc, mapset.New[grid.Location](), pathfind.Options{
			Heuristic: e.cfg.Heuristic,
			Diagonal:  e.cfg.Diagonal,
		})
		if err == nil {
			r.ExitPath = path
			r.Reached = len(path) == 1
		} else {
			level.Debug(e.logger).Log("msg", "no exit path", "goal", loc, "err", err)
		}
	}
	if e.trace != nil {
		e.trace.Guess = h
		e.trace.Belief = r.Belief
	}
	e.done = true
	e.plan, e.path = nil, nil
	e.result = r
}

func (e *Explorer) walkExit(ctx context.Context) error {
	moves, err := pathfind.MovesFromPath(e.result.ExitPath, e.cfg.Diagonal)
	if err != nil {
		return err
	}
	goal := e.result.ExitPath[len(e.result.ExitPath)-1]
	for _, m := range moves {
		if err := ctx.Err(); err != nil {
			return err
		}
		obs, err := e.env.Step(ctx, m)
		if err != nil {
			return fmt.Errorf("exit move %s: %w", m, err)
		}
		if err := e.update(obs); err != nil {
			return err
		}
		e.result.ExitMoves++
		if e.trace != nil {
			e.trace.Append(types.Step{Move: m, Position: e.pos, Target: goal})
		}
	}
	e.result.Reached = e.pos == goal
	return nil
}

func sorted(s mapset.Set[grid.Location]) []grid.Location {
	out := make([]grid.Location, 0, s.Size())
	s.Each(func(l grid.Location) {
		out = append(out, l)
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].Less(out[j])
	})
	return out
}
