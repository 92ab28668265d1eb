package benchmarks

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/zeu5/room-explorer/types"
)

// Steps compares the moves needed to decide when frontier cells are ranked
// by each of the given distances.
func Steps(s *setup, distances []string) error {
	c, err := types.NewComparison(comparisonConfig(s.cfg))
	if err != nil {
		return err
	}
	c.AddAnalysis("steps", types.NewStepsAnalyzer(), types.StepsComparator(s.cfg.ResultsDir))
	c.AddAnalysis("accuracy", types.NewAccuracyAnalyzer(), types.AccuracyComparator(s.cfg.ResultsDir))

	for _, d := range distances {
		run := s.cfg
		run.Distance = d
		if _, err := exploreConfig(run, nil, false); err != nil {
			return err
		}
		c.AddExperiment(types.NewExperiment(d, s.with(run).episodeFunc(recordTraces)))
	}
	return runComparison(c, s.cfg.ResultsDir)
}

func StepsCommand() *cobra.Command {
	var distances []string
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Compare the moves needed per frontier distance",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSetup(cfg, os.Stderr)
			if err != nil {
				return err
			}
			return Steps(s, distances)
		},
	}
	cmd.Flags().StringSliceVar(&distances, "distances", []string{"manhattan", "euclidean", "wallpenalty", "chebyshev"}, "Distances to compare")
	return cmd
}
