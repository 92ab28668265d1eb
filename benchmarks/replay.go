package benchmarks

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/room-explorer/explorer"
	"github.com/zeu5/room-explorer/types"
	"github.com/zeu5/room-explorer/util"
)

// Example invocation - ./room-explorer replay results/traces/manhattan_0.jsonl
func ReplayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replay [traces]",
		Short: "Summarize recorded traces and write their merged heatmap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := explorer.NewExplorer(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			correct := 0
			moves := make([]float64, 0, len(e.Traces))
			for _, s := range e.Summaries() {
				fmt.Fprintln(out, s.String())
				if s.Correct {
					correct++
				}
				moves = append(moves, float64(s.Moves))
			}
			m := types.Summarize(moves)
			fmt.Fprintf(out, "Traces: %d, correct: %d, moves: %.2f ± %.2f\n", len(e.Traces), correct, m.Mean, m.StdDev)

			if err := util.EnsureDir(cfg.ResultsDir); err != nil {
				return err
			}
			h := e.Heatmap()
			prefix := path.Join(cfg.ResultsDir, "replay_heatmap")
			if err := util.WriteJSON(prefix+".json", h); err != nil {
				return err
			}
			return types.PlotHeatmap(h, path.Base(args[0]), prefix+".png")
		},
	}
}
