package explorer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Interact runs the main interactive loop until quit or end of input
func (e *Explorer) Interact(in io.Reader, out io.Writer) {
	fmt.Fprintf(out, "%s", e.header())
	reader := bufio.NewReader(in)
	for {
		fmt.Fprintf(out, "%s", e.prompt())

		optionS, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		option, err := strconv.Atoi(strings.TrimSpace(optionS))
		if err != nil {
			fmt.Fprintln(out, "Invalid input! Try again")
			continue
		}
		fmt.Fprintln(out, "------------------------------------")
		switch option {
		case 1:
			fmt.Fprintf(out, "%s", e.getSummaries())
		case 2:
			fmt.Fprintf(out, "%s", e.getHeatmap())
		case 3:
			fmt.Fprintf(out, "Enter trace number (1-%d): ", len(e.Traces))
			traceNoS, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			traceNo, err := strconv.Atoi(strings.TrimSpace(traceNoS))
			if err != nil {
				fmt.Fprintln(out, "Invalid input! Not a number. Try again")
				continue
			}
			if traceNo < 1 || traceNo > len(e.Traces) {
				fmt.Fprintf(out, "Invalid input! Should be between (1-%d). Try again\n", len(e.Traces))
				continue
			}
			if !e.interactTrace(traceNo-1, reader, out) {
				return
			}
		case 4:
			fmt.Fprintln(out, "Quitting! Thank you")
			return
		default:
			fmt.Fprintln(out, "Wrong choice! Try again!")
		}
	}
}

func (e *Explorer) getSummaries() string {
	if len(e.Traces) == 0 {
		return "No traces\n"
	}
	out := "Traces are:\n"
	for i, s := range e.Summaries() {
		out += fmt.Sprintf("%d. %s\n", i+1, s.String())
	}
	return out
}

func (e *Explorer) getHeatmap() string {
	h := e.Heatmap()
	out := "Visits per cell:\n"
	for _, row := range h.Visits {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = fmt.Sprintf("%3d", c)
		}
		out += strings.Join(cells, " ") + "\n"
	}
	return out
}

func (e *Explorer) header() string {
	return `
Welcome to the trace explorer!
	`
}

func (e *Explorer) prompt() string {
	return `
------------------------------------
Select one of the following options:
1. Show trace summaries
2. Show merged heatmap
3. Explore a trace
4. Quit
Enter your choice: `
}

func (e *Explorer) tracePrompt() string {
	return `
---------------------------------------------
Step(s) Prev(p) First(f) Last(l) Quit(q): `
}

// interactTrace walks through one trace. It returns false when the input
// ran out.
func (e *Explorer) interactTrace(traceNo int, reader *bufio.Reader, out io.Writer) bool {
	trace := e.Traces[traceNo]
	// -1 is the start position
	step := -1
	fmt.Fprintln(out, "---------------------------------------------")
	for {
		if step < 0 {
			fmt.Fprintf(out, "Start at %s\n", trace.Start)
		} else {
			s := trace.Steps[step]
			fmt.Fprintf(out, "Step %d/%d: %s to %s (target %s)\n", step+1, trace.Len(), s.Move, s.Position, s.Target)
		}
		fmt.Fprintf(out, "%s\n", Path(trace, step))
		fmt.Fprintf(out, "%s", e.tracePrompt())
		optionS, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		fmt.Fprintln(out, "---------------------------------------------")
		switch strings.TrimSpace(optionS) {
		case "s":
			if step == trace.Len()-1 {
				fmt.Fprintln(out, "No more steps!")
				continue
			}
			step += 1
		case "p":
			if step == -1 {
				fmt.Fprintln(out, "No more steps!")
				continue
			}
			step -= 1
		case "f":
			step = -1
		case "l":
			step = trace.Len() - 1
		case "q":
			return true
		default:
			fmt.Fprintln(out, "Invalid option! Try again.")
		}
	}
}
