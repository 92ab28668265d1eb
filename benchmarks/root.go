package benchmarks

import (
	"github.com/spf13/cobra"
	"github.com/zeu5/room-explorer/config"
	"github.com/zeu5/room-explorer/explorer"
)

var (
	episodes     int
	runs         int
	saveFile     string
	parallelism  int
	seed         uint64
	threshold    float64
	policy       string
	bias         float64
	distance     string
	heuristic    string
	wallPenalty  float64
	diagonal     bool
	maxMoves     int
	logLevel     string
	taxonomyPath string
	patternsDir  string
	followExit   bool
	recordTraces bool

	// loaded in the persistent pre-run, flags override the environment
	cfg = config.Default()
)

func GetRootCommand() *cobra.Command {
	defaults := config.Default()
	rootCommand := &cobra.Command{
		Use:           "room-explorer",
		Short:         "Explore rooms and tell them apart by their landmarks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd)
		},
	}
	flags := rootCommand.PersistentFlags()
	flags.IntVarP(&episodes, "episodes", "e", 1000, "Number of episodes to run")
	flags.IntVar(&runs, "runs", 1, "Number of experiment runs")
	flags.StringVarP(&saveFile, "save", "s", defaults.ResultsDir, "Save the result data in the specified folder")
	flags.IntVarP(&parallelism, "parallelism", "p", defaults.Parallelism, "Episodes played at the same time")
	flags.Uint64Var(&seed, "seed", defaults.Seed, "Seed of the first episode, 0 for the clock")
	flags.Float64Var(&threshold, "threshold", defaults.Threshold, "Belief needed to commit to a hypothesis")
	flags.StringVar(&policy, "policy", defaults.Policy, "Target selection policy: biased, nearest, uniform, softmin")
	flags.Float64Var(&bias, "bias", defaults.Bias, "Probability of picking the nearest frontier cell")
	flags.StringVar(&distance, "distance", defaults.Distance, "Distance used to rank frontier cells")
	flags.StringVar(&heuristic, "heuristic", defaults.Heuristic, "A* heuristic")
	flags.Float64Var(&wallPenalty, "wall-penalty", defaults.WallPenalty, "Cost per wall cell of the wallpenalty distance")
	flags.BoolVar(&diagonal, "diagonal", defaults.Diagonal, "Allow diagonal moves")
	flags.IntVar(&maxMoves, "max-moves", defaults.MaxMoves, "Moves per episode, 0 for unlimited")
	flags.StringVar(&logLevel, "log-level", defaults.LogLevel, "debug, info, warn, error or none")
	flags.StringVar(&taxonomyPath, "taxonomy", defaults.TaxonomyPath, "YAML or JSON taxonomy file")
	flags.StringVar(&patternsDir, "patterns", defaults.PatternsDir, "Directory of .des room patterns")
	flags.BoolVar(&followExit, "follow-exit", defaults.FollowExit, "Walk to the winning goal once decided")
	flags.BoolVar(&recordTraces, "record-traces", false, "Record the trace of every episode")
	flags.StringVar(&cpuprofile, "cpuprofile", "", "Write a CPU profile to this file in the save folder")
	flags.StringVar(&memprofile, "memprofile", "", "Write a heap profile to this file in the save folder")

	// adding the subcommands here
	rootCommand.AddCommand(ExploreCommand())
	rootCommand.AddCommand(RenderCommand())
	rootCommand.AddCommand(AccuracyCommand())
	rootCommand.AddCommand(StepsCommand())
	rootCommand.AddCommand(UnexploredCommand())
	rootCommand.AddCommand(HeatmapCommand())
	rootCommand.AddCommand(ReplayCommand())
	rootCommand.AddCommand(ServeCommand())
	rootCommand.AddCommand(explorer.InspectCommand())
	return rootCommand
}

// loadConfig reads the environment and lets explicitly set flags win.
func loadConfig(cmd *cobra.Command) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("save", func() { c.ResultsDir = saveFile })
	set("parallelism", func() { c.Parallelism = parallelism })
	set("seed", func() { c.Seed = seed })
	set("threshold", func() { c.Threshold = threshold })
	set("policy", func() { c.Policy = policy })
	set("bias", func() { c.Bias = bias })
	set("distance", func() { c.Distance = distance })
	set("heuristic", func() { c.Heuristic = heuristic })
	set("wall-penalty", func() { c.WallPenalty = wallPenalty })
	set("diagonal", func() { c.Diagonal = diagonal })
	set("max-moves", func() { c.MaxMoves = maxMoves })
	set("log-level", func() { c.LogLevel = logLevel })
	set("taxonomy", func() { c.TaxonomyPath = taxonomyPath })
	set("patterns", func() { c.PatternsDir = patternsDir })
	set("follow-exit", func() { c.FollowExit = followExit })
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}
