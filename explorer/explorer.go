package explorer

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zeu5/room-explorer/grid"
	"github.com/zeu5/room-explorer/types"
)

var ErrTraceTooBig = errors.New("trace too big")

const maxTraceSize = 5 * 1024 * 1024

// Explorer replays recorded episode traces.
type Explorer struct {
	TracesFile string
	Traces     []*types.Trace
}

// Create an explorer of the traces recorded in tracesFile
func NewExplorer(tracesFile string) (*Explorer, error) {
	traces, err := ReadTraces(tracesFile)
	if err != nil {
		return nil, err
	}
	return &Explorer{
		TracesFile: tracesFile,
		Traces:     traces,
	}, nil
}

// ReadTraces reads a single trace from a .json file or one trace per line
// from a .jsonl file.
func ReadTraces(path string) ([]*types.Trace, error) {
	traces := make([]*types.Trace, 0)
	file, err := os.Open(path)
	if err != nil {
		return traces, fmt.Errorf("error reading file: %w", err)
	}
	defer file.Close()

	if strings.HasSuffix(path, ".json") {
		data, err := io.ReadAll(file)
		if err != nil {
			return traces, fmt.Errorf("error reading file: %w", err)
		}
		t := &types.Trace{}
		if err := json.Unmarshal(data, t); err != nil {
			return traces, fmt.Errorf("error parsing file: %w", err)
		}
		return append(traces, t), nil
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxTraceSize)
	line := 0
	for scanner.Scan() {
		line++
		bs := scanner.Bytes()
		if len(strings.TrimSpace(string(bs))) == 0 {
			continue
		}
		t := &types.Trace{}
		if err := json.Unmarshal(bs, t); err != nil {
			return traces, fmt.Errorf("error parsing line %d: %w", line, err)
		}
		traces = append(traces, t)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return traces, fmt.Errorf("%w: line %d", ErrTraceTooBig, line+1)
		}
		return traces, fmt.Errorf("failed to read traces: %w", err)
	}
	return traces, nil
}

// Summaries summarizes every trace in file order.
func (e *Explorer) Summaries() []Summary {
	out := make([]Summary, len(e.Traces))
	for i, t := range e.Traces {
		out[i] = Summarize(t)
	}
	return out
}

// Heatmap merges the visits of every trace.
func (e *Explorer) Heatmap() *grid.Heatmap {
	maps := make([]*grid.Heatmap, len(e.Traces))
	for i, t := range e.Traces {
		maps[i] = t.Heatmap()
	}
	return grid.MergeHeatmaps(maps...)
}

// Example invocation - ./room-explorer inspect [traces(.jsonl)]
func InspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "inspect [traces]",
		Long: "Step through recorded episode traces",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := NewExplorer(args[0])
			if err != nil {
				return err
			}
			exp.Interact(cmd.InOrStdin(), cmd.OutOrStdout())
			return nil
		},
	}
}
