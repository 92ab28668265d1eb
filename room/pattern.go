package room

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeu5/room-explorer/grid"
)

var ErrNoMap = errors.New("MAP ... ENDMAP block not found")

// Pattern is an empty room layout: walls, floor and dark cells only.
type Pattern struct {
	Name string
	Rows []string
}

// ParsePattern extracts the map between the MAP and ENDMAP markers of a
// level description. Blank lines around the map are dropped and rows are
// padded with dark cells to a rectangle.
func ParsePattern(name, text string) (*Pattern, error) {
	start := strings.Index(text, "MAP")
	end := strings.Index(text, "ENDMAP")
	if start == -1 || end == -1 || end < start+len("MAP") {
		return nil, fmt.Errorf("%s: %w", name, ErrNoMap)
	}
	body := strings.Trim(text[start+len("MAP"):end], "\n")
	lines := strings.Split(strings.ReplaceAll(body, "\r", ""), "\n")
	width := 0
	for _, line := range lines {
		if len(line) > width {
			width = len(line)
		}
	}
	if width == 0 {
		return nil, fmt.Errorf("%s: %w", name, grid.ErrEmptyGrid)
	}
	rows := make([]string, len(lines))
	for i, line := range lines {
		rows[i] = line + strings.Repeat(" ", width-len(line))
	}
	return &Pattern{Name: name, Rows: rows}, nil
}

// Grid classifies the pattern against table.
func (p *Pattern) Grid(table *grid.Table) (*grid.Grid, error) {
	rows := make([][]byte, len(p.Rows))
	for i, r := range p.Rows {
		rows[i] = []byte(r)
	}
	g, err := grid.New(rows, table)
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", p.Name, err)
	}
	return g, nil
}

// LoadPatterns reads every .des file in dir, sorted by name.
func LoadPatterns(dir string) ([]*Pattern, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.des"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .des files in %s", dir)
	}
	sort.Strings(files)
	out := make([]*Pattern, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		p, err := ParsePattern(filepath.Base(f), string(data))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// DefaultPatterns are four small rooms, from an open hall to a room split
// by a thin wall.
func DefaultPatterns() []*Pattern {
	out := make([]*Pattern, 0, len(defaultPatterns))
	for i, text := range defaultPatterns {
		p, err := ParsePattern(fmt.Sprintf("room%d", i+1), text)
		if err != nil {
			panic(err)
		}
		out = append(out, p)
	}
	return out
}

var defaultPatterns = []string{
	`MAP
-----------
|.........|
|.........|
|.........|
|.........|
|.........|
-----------
ENDMAP`,
	`MAP
-------------
|.....|.....|
|.....|.....|
|...........|
|.....|.....|
|.....|.....|
-------------
ENDMAP`,
	`MAP
  --------
  |......|
---......|
|........|
|.....----
|.....|
-------
ENDMAP`,
	`MAP
---------------
|......|......|
|......-......|
|.............|
|--.-------.--|
|.............|
|.............|
---------------
ENDMAP`,
}
