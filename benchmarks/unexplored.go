package benchmarks

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zeu5/room-explorer/config"
	"github.com/zeu5/room-explorer/types"
)

// Unexplored measures how much of the room is left unexplored when the
// explorer stops at each of the given thresholds.
func Unexplored(s *setup, thresholds []float64) error {
	c, err := types.NewComparison(comparisonConfig(s.cfg))
	if err != nil {
		return err
	}
	c.AddAnalysis("unexplored", types.NewUnexploredAnalyzer(), types.UnexploredComparator(s.cfg.ResultsDir, "threshold", thresholds))
	c.AddAnalysis("accuracy", types.NewAccuracyAnalyzer(), types.AccuracyComparator(s.cfg.ResultsDir))

	for _, t := range thresholds {
		run := s.cfg
		run.Threshold = t
		if err := run.Validate(); err != nil {
			return err
		}
		c.AddExperiment(types.NewExperiment(thresholdName(t), s.with(run).episodeFunc(recordTraces)))
	}
	return runComparison(c, s.cfg.ResultsDir)
}

func thresholdName(t float64) string {
	return "threshold-" + strconv.FormatFloat(t, 'f', -1, 64)
}

func UnexploredCommand() *cobra.Command {
	var thresholds []float64
	cmd := &cobra.Command{
		Use:   "unexplored",
		Short: "Unexplored fraction of the room per decision threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSetup(cfg, os.Stderr)
			if err != nil {
				return err
			}
			return Unexplored(s, thresholds)
		},
	}
	cmd.Flags().Float64SliceVar(&thresholds, "thresholds", []float64{0.7, 0.75, 0.8, 0.85, 0.9, config.Default().Threshold}, "Thresholds to compare")
	return cmd
}
