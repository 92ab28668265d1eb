package benchmarks

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"github.com/zeu5/room-explorer/grid"
	"github.com/zeu5/room-explorer/room"
	"github.com/zeu5/room-explorer/taxonomy"
)

// palette maps the display colours of the taxonomy onto terminal styles.
var palette = map[int]color.Style{
	taxonomy.Black:         {color.FgDarkGray},
	taxonomy.Red:           {color.FgRed},
	taxonomy.Green:         {color.FgGreen},
	taxonomy.Brown:         {color.FgYellow},
	taxonomy.Blue:          {color.FgBlue},
	taxonomy.Magenta:       {color.FgMagenta},
	taxonomy.Cyan:          {color.FgCyan},
	taxonomy.Gray:          {color.FgGray},
	taxonomy.Orange:        {color.FgLightRed},
	taxonomy.BrightGreen:   {color.FgLightGreen},
	taxonomy.Yellow:        {color.FgLightYellow, color.OpBold},
	taxonomy.BrightBlue:    {color.FgLightBlue},
	taxonomy.BrightMagenta: {color.FgLightMagenta},
	taxonomy.BrightCyan:    {color.FgLightCyan},
	taxonomy.White:         {color.FgLightWhite, color.OpBold},
}

var (
	colorWall    = color.Style{color.FgGray}
	colorVirtual = color.Style{color.FgBlue}
	colorPath    = color.Style{color.FgGreen, color.OpBold}
)

// renderGrid draws g with the colours observed for each cell. Cells on
// path are highlighted; nil colours fall back to the cell kind.
func renderGrid(g *grid.Grid, colors [][]int, path []grid.Location) string {
	onPath := make(map[grid.Location]bool, len(path))
	for _, l := range path {
		onPath[l] = true
	}
	var b strings.Builder
	g.ForEach(func(l grid.Location, symbol byte, k grid.Kind) {
		if l.X == 0 && l.Y > 0 {
			b.WriteByte('\n')
		}
		s := string(symbol)
		switch {
		case k == grid.Player:
			b.WriteString(palette[room.PlayerColor].Sprint(s))
		case k == grid.Landmark:
			style, ok := palette[colorAt(colors, l)]
			if !ok {
				b.WriteString(s)
				return
			}
			b.WriteString(style.Sprint(s))
		case onPath[l]:
			b.WriteString(colorPath.Sprint("*"))
		case k == grid.Wall:
			b.WriteString(colorWall.Sprint(s))
		case k == grid.VirtualFloor:
			b.WriteString(colorVirtual.Sprint(s))
		default:
			b.WriteString(s)
		}
	})
	return b.String()
}

func colorAt(colors [][]int, l grid.Location) int {
	if l.Y < 0 || l.Y >= len(colors) || l.X < 0 || l.X >= len(colors[l.Y]) {
		return -1
	}
	return colors[l.Y][l.X]
}

func findPattern(patterns []*room.Pattern, name string) (*room.Pattern, error) {
	names := make([]string, len(patterns))
	for i, p := range patterns {
		if p.Name == name {
			return p, nil
		}
		names[i] = p.Name
	}
	return nil, fmt.Errorf("unknown pattern %q, have %s", name, strings.Join(names, ", "))
}

// generateRoom draws one room, from the named pattern when given.
func (s *setup) generateRoom(pattern string, seed uint64) (*room.Room, error) {
	patterns := s.patterns
	if pattern != "" {
		p, err := findPattern(s.patterns, pattern)
		if err != nil {
			return nil, err
		}
		patterns = []*room.Pattern{p}
	}
	return room.NewGenerator(s.tax, patterns, s.cfg.Spins, seed).Generate()
}

func RenderCommand() *cobra.Command {
	var pattern string
	var raw bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a generated room as the explorer sees it",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSetup(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			r, err := s.generateRoom(pattern, cfg.Seed)
			if err != nil {
				return err
			}
			g, err := grid.New(r.Rows, s.tax.Table())
			if err != nil {
				return err
			}
			if !raw {
				g = grid.Precondition(g)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pattern: %s, truth: %s\n", r.Pattern, s.tax.Goal(r.Truth).Name)
			fmt.Fprintln(out, renderGrid(g, r.Colors, nil))
			return nil
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "", "Pattern to generate from, random when empty")
	cmd.Flags().BoolVar(&raw, "raw", false, "Skip preconditioning")
	return cmd
}
