package benchmarks

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/zeu5/room-explorer/types"
)

// Accuracy plays generated rooms with the configured explorer and reports
// how often it names the right room.
func Accuracy(s *setup) error {
	c, err := types.NewComparison(comparisonConfig(s.cfg))
	if err != nil {
		return err
	}
	c.AddAnalysis("accuracy", types.NewAccuracyAnalyzer(), types.AccuracyComparator(s.cfg.ResultsDir))
	c.AddAnalysis("steps", types.NewStepsAnalyzer(), types.StepsComparator(s.cfg.ResultsDir))
	c.AddAnalysis("unexplored", types.NewUnexploredAnalyzer(), types.UnexploredComparator(s.cfg.ResultsDir, "experiment", nil))

	c.AddExperiment(types.NewExperiment(s.cfg.Policy, s.episodeFunc(recordTraces)))
	return runComparison(c, s.cfg.ResultsDir)
}

func AccuracyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "accuracy",
		Short: "Win rate of the explorer over generated rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSetup(cfg, os.Stderr)
			if err != nil {
				return err
			}
			return Accuracy(s)
		},
	}
}
