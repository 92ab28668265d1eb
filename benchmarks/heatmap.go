package benchmarks

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/zeu5/room-explorer/types"
)

// Heatmap accumulates where the explorer walks under each distance. Rooms
// come from a single pattern so the maps line up.
func Heatmap(s *setup, distances []string, pattern string) error {
	if pattern != "" {
		p, err := findPattern(s.patterns, pattern)
		if err != nil {
			return err
		}
		s.patterns = append(s.patterns[:0:0], p)
	}

	c, err := types.NewComparison(comparisonConfig(s.cfg))
	if err != nil {
		return err
	}
	c.AddAnalysis("heatmap", types.NewHeatmapAnalyzer(), types.HeatmapComparator(s.cfg.ResultsDir))
	c.AddAnalysis("steps", types.NewStepsAnalyzer(), types.StepsComparator(s.cfg.ResultsDir))

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

func HeatmapCommand() *cobra.Command {
	var distances []string
	var pattern string
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Accumulated visit heatmaps per frontier distance",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSetup(cfg, os.Stderr)
			if err != nil {
				return err
			}
			return Heatmap(s, distances, pattern)
		},
	}
	cmd.Flags().StringSliceVar(&distances, "distances", []string{"manhattan", "euclidean", "wallpenalty", "chebyshev"}, "Distances to compare")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Only generate rooms from this pattern")
	return cmd
}
