package types

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/zeu5/room-explorer/grid"
	"github.com/zeu5/room-explorer/util"
	"golang.org/x/sync/errgroup"
)

var ErrAborted = errors.New("experiment aborted")

// Outcome is what an episode reports back to the harness.
type Outcome struct {
	EpisodeID  string        `json:"episode_id"`
	Guess      int           `json:"guess"`
	Truth      int           `json:"truth"`
	Confident  bool          `json:"confident"`
	Moves      int           `json:"moves"`
	Unexplored float64       `json:"unexplored"`
	Heatmap    *grid.Heatmap `json:"-"`
	Trace      *Trace        `json:"-"`
}

// Correct reports whether the guess matches a known truth.
func (o *Outcome) Correct() bool {
	return o.Truth >= 0 && o.Guess == o.Truth
}

// EpisodeFunc plays one episode. It must build all of its state from the
// context it is given.
type EpisodeFunc func(*EpisodeContext) (*Outcome, error)

// Experiment is a named way of playing episodes, e.g. one configuration of
// the explorer.
type Experiment struct {
	Name    string
	episode EpisodeFunc
}

func NewExperiment(name string, episode EpisodeFunc) *Experiment {
	return &Experiment{
		Name:    name,
		episode: episode,
	}
}

type experimentRunConfig struct {
	Run         int
	Episodes    int
	Parallelism int
	Seed        uint64
	Timeout     time.Duration

	ConsecutiveErrorsAbort int

	RecordTraces   bool
	ReportSavePath string

	Output *ParallelOutput
}

func (rc *experimentRunConfig) episodeSeed(episode int) uint64 {
	return rc.Seed + uint64(rc.Run)<<32 + uint64(episode)
}

// Run plays the configured number of episodes, at most Parallelism at a
// time, and returns their contexts in episode order. Episodes never
// scheduled because of an abort are left nil.
func (e *Experiment) Run(ctx context.Context, rc *experimentRunConfig) ([]*EpisodeContext, error) {
	results := make([]*EpisodeContext, rc.Episodes)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(rc.Parallelism)

	tracesFile := path.Join(rc.ReportSavePath, "traces", e.Name+"_"+strconv.Itoa(rc.Run)+".jsonl")
	lock := new(sync.Mutex)
	finished, failed, timedOut, consecutive := 0, 0, 0, 0

	rc.Output.Set(fmt.Sprintf("Exp: %s, Eps: %d/%d", e.Name, 0, rc.Episodes))
	for i := 0; i < rc.Episodes; i++ {
		if egCtx.Err() != nil {
			break
		}
		episode := i
		eg.Go(func() error {
			if egCtx.Err() != nil {
				return nil
			}
			eCtx := NewEpisodeContext(egCtx, rc.Run, episode, e.Name, rc.Timeout, rc.episodeSeed(episode))
			defer eCtx.Cancel()
			e.runEpisode(eCtx)

			lock.Lock()
			defer lock.Unlock()
			results[episode] = eCtx
			finished++
			if eCtx.TimedOut {
				timedOut++
			}
			if eCtx.Valid() {
				consecutive = 0
			} else {
				failed++
				consecutive++
			}
			if rc.RecordTraces && eCtx.Outcome != nil && eCtx.Outcome.Trace != nil {
				if err := util.AppendJSONLine(tracesFile, eCtx.Outcome.Trace); err != nil {
					return fmt.Errorf("recording trace: %w", err)
				}
			}
			rc.Output.TrySet(fmt.Sprintf("Exp: %s, Eps: %d/%d, Err: %d, TOut: %d", e.Name, finished, rc.Episodes, failed, timedOut))

			if consecutive >= rc.ConsecutiveErrorsAbort {
				return fmt.Errorf("%w: %s had %d consecutive failed episodes, last: %v", ErrAborted, e.Name, consecutive, eCtx.Err)
			}
			return nil
		})
	}
	err := eg.Wait()
	rc.Output.Set(fmt.Sprintf("Exp: %s, Eps: %d/%d, Err: %d, TOut: %d, done", e.Name, finished, rc.Episodes, failed, timedOut))
	return results, err
}

// runEpisode never panics: a panicking episode counts as failed.
func (e *Experiment) runEpisode(eCtx *EpisodeContext) {
	defer func() {
		if r := recover(); r != nil {
			eCtx.SetError(fmt.Errorf("episode panicked: %v", r))
		}
	}()

	start := time.Now()
	out, err := e.episode(eCtx)
	eCtx.RunDuration = time.Since(start)
	if err != nil {
		eCtx.SetError(err)
		return
	}
	eCtx.Outcome = out
}

// Generic Dataset that contains information after processing the episodes
type DataSet interface{}

// Analyzer folds the episodes of one experiment run into a DataSet. It is
// fed sequentially, in episode order.
type Analyzer interface {
	Analyze(run int, experiment string, eCtx *EpisodeContext)
	DataSet() DataSet
	Reset()
}

// Comparator differentiates between the datasets of the experiments of a run
// run, experiment names, datasets
type Comparator func(int, []string, []DataSet)

func NoopComparator() Comparator {
	return func(int, []string, []DataSet) {}
}

// ComparisonConfig contains the configuration for the comparison
type ComparisonConfig struct {
	Runs        int // number of runs
	Episodes    int // number of episodes per experiment and run
	Parallelism int // episodes played at the same time
	// Seed of the first episode; episodes with the same index get the same
	// seed in every experiment so they are compared on the same rooms.
	// 0 picks one from the clock.
	Seed    uint64
	Timeout time.Duration // timeout for each episode, 0 for none

	// abort an experiment after this many failed episodes in a row
	ConsecutiveErrorsAbort int

	RecordPath   string // path to store the results
	RecordTraces bool

	// Output receives the live progress lines, stdout when nil
	Output io.Writer
	// PrintFrequency of the progress lines
	PrintFrequency time.Duration
}

// Comparison contains the different experiments to compare
// The episodes of every experiment are analyzed
// The analyzed datasets are then compared
type Comparison struct {
	Experiments []*Experiment
	names       []string
	analyzers   map[string]Analyzer
	comparators map[string]Comparator
	cConfig     *ComparisonConfig
}

// NewComparison clears the record path and creates its folders.
func NewComparison(config *ComparisonConfig) (*Comparison, error) {
	if config.Parallelism <= 0 {
		config.Parallelism = 1
	}
	if config.ConsecutiveErrorsAbort <= 0 {
		config.ConsecutiveErrorsAbort = 10
	}
	if config.Seed == 0 {
		config.Seed = uint64(time.Now().UnixNano())
	}
	if config.PrintFrequency <= 0 {
		config.PrintFrequency = 500 * time.Millisecond
	}

	if _, err := os.Stat(config.RecordPath); err == nil {
		if err := util.RemoveContents(config.RecordPath, "outtext.txt"); err != nil {
			return nil, err
		}
	}
	folders := []string{""}
	if config.RecordTraces {
		folders = append(folders, "traces")
	}
	for _, f := range folders {
		if err := util.EnsureDir(path.Join(config.RecordPath, f)); err != nil {
			return nil, err
		}
	}

	return &Comparison{
		Experiments: make([]*Experiment, 0),
		names:       make([]string, 0),
		analyzers:   make(map[string]Analyzer),
		comparators: make(map[string]Comparator),
		cConfig:     config,
	}, nil
}

// AddAnalysis adds an analyzer and comparator to the comparison
func (c *Comparison) AddAnalysis(name string, analyzer Analyzer, comparator Comparator) {
	if _, ok := c.analyzers[name]; !ok {
		c.names = append(c.names, name)
		sort.Strings(c.names)
	}
	c.analyzers[name] = analyzer
	c.comparators[name] = comparator
}

// Add experiments to compare
func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

// record the configuration of the comparison
func (c *Comparison) recordConfig() error {
	cfg := c.cConfig
	out := map[string]interface{}{
		"runs":          cfg.Runs,
		"episodes":      cfg.Episodes,
		"parallelism":   cfg.Parallelism,
		"seed":          cfg.Seed,
		"record_traces": cfg.RecordTraces,
		"analyzers":     c.names,
	}
	if cfg.Timeout != 0 {
		out["timeout"] = cfg.Timeout.String()
	}
	experiments := make([]string, 0)
	for _, e := range c.Experiments {
		experiments = append(experiments, e.Name)
	}
	out["experiments"] = experiments
	return util.WriteJSON(path.Join(cfg.RecordPath, "comparison_config.json"), out)
}

// Run plays every experiment for every run, then hands each analysis'
// datasets to its comparator. An aborted experiment is reported and the
// comparison moves on; a cancelled ctx stops everything.
func (c *Comparison) Run(ctx context.Context) error {
	if err := c.recordConfig(); err != nil {
		return err
	}

	outputs := make([]*ParallelOutput, len(c.Experiments))
	for i := range outputs {
		outputs[i] = NewParallelOutput()
	}
	printer := NewTerminalPrinter(ctx, outputs, c.cConfig.Output, c.cConfig.PrintFrequency)
	printer.Start()
	defer printer.Stop()

	for run := 0; run < c.cConfig.Runs; run++ {
		datasets := make(map[string][]DataSet)
		for name := range c.analyzers {
			datasets[name] = make([]DataSet, len(c.Experiments))
		}

		names := make([]string, len(c.Experiments))
		for i, e := range c.Experiments {
			outputs[i].SetRunning(true)
			results, err := e.Run(ctx, c.prepareRunConfig(run, outputs[i]))
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				printer.Println(err.Error())
			}
			for _, name := range c.names {
				a := c.analyzers[name]
				for _, eCtx := range results {
					if eCtx != nil {
						a.Analyze(run, e.Name, eCtx)
					}
				}
				datasets[name][i] = a.DataSet()
				a.Reset()
			}
			names[i] = e.Name
		}
		printer.Flush()
		for _, name := range c.names {
			c.comparators[name](run, names, datasets[name])
		}
	}
	return nil
}

// prepare the run configuration for the experiment
func (c *Comparison) prepareRunConfig(run int, output *ParallelOutput) *experimentRunConfig {
	return &experimentRunConfig{
		Run:                    run,
		Episodes:               c.cConfig.Episodes,
		Parallelism:            c.cConfig.Parallelism,
		Seed:                   c.cConfig.Seed,
		Timeout:                c.cConfig.Timeout,
		ConsecutiveErrorsAbort: c.cConfig.ConsecutiveErrorsAbort,
		RecordTraces:           c.cConfig.RecordTraces,
		ReportSavePath:         c.cConfig.RecordPath,
		Output:                 output,
	}
}
