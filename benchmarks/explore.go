package benchmarks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeu5/room-explorer/grid"
	"github.com/zeu5/room-explorer/util"
)

// Example invocation - ./room-explorer explore --pattern corridor --seed 7 --show
func ExploreCommand() *cobra.Command {
	var pattern string
	var show bool
	var save bool
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore one generated room and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			s, err := newSetup(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			episodeSeed := cfg.Seed
			if episodeSeed == 0 {
				episodeSeed = uint64(time.Now().UnixNano())
			}
			r, err := s.generateRoom(pattern, episodeSeed)
			if err != nil {
				return err
			}
			ep, err := s.playRoom(ctx, r, episodeSeed, true)
			if err != nil {
				return err
			}
			res := ep.Result
			res.Trace.Truth = r.Truth
			out := cmd.OutOrStdout()

			if show {
				g, err := grid.New(r.Rows, s.tax.Table())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Pattern: %s, seed: %d\n", r.Pattern, episodeSeed)
				fmt.Fprintln(out, renderGrid(grid.Precondition(g), r.Colors, res.Trace.Positions()))
			}

			guess := "none"
			if res.Hypothesis >= 0 {
				guess = s.tax.Goal(res.Hypothesis).Name
			}
			fmt.Fprintf(out, "Guess: %s, truth: %s, reason: %s, moves: %d, unexplored: %.3f\n",
				guess, s.tax.Goal(r.Truth).Name, res.Reason, res.Moves, res.Unexplored)

			bs, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(bs))

			if save {
				if err := util.EnsureDir(cfg.ResultsDir); err != nil {
					return err
				}
				return util.AppendJSONLine(path.Join(cfg.ResultsDir, "explore_traces.jsonl"), res.Trace)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "", "Pattern to generate from, random when empty")
	cmd.Flags().BoolVar(&show, "show", false, "Render the room and the path taken")
	cmd.Flags().BoolVar(&save, "save-trace", false, "Append the trace to explore_traces.jsonl in the save folder")
	return cmd
}
