package grid

import (
	"gonum.org/v1/plot/plotter"
)

// Heatmap counts visits per cell. It carries no decision logic and exists
// for plotting and offline analysis.
type Heatmap struct {
	Visits [][]int `json:"visits"`
	Height int     `json:"height"`
	Width  int     `json:"width"`
}

var _ plotter.GridXYZ = &Heatmap{}

func NewHeatmap(width, height int) *Heatmap {
	visits := make([][]int, height)
	for i := range visits {
		visits[i] = make([]int, width)
	}
	return &Heatmap{
		Visits: visits,
		Height: height,
		Width:  width,
	}
}

// Visit counts one visit to l, ignoring locations outside the map.
func (h *Heatmap) Visit(l Location) {
	if l.X < 0 || l.X >= h.Width || l.Y < 0 || l.Y >= h.Height {
		return
	}
	h.Visits[l.Y][l.X] += 1
}

func (h *Heatmap) Count(l Location) int {
	if l.X < 0 || l.X >= h.Width || l.Y < 0 || l.Y >= h.Height {
		return 0
	}
	return h.Visits[l.Y][l.X]
}

func (h *Heatmap) Dims() (int, int) {
	return h.Width, h.Height
}

// Z reads rows bottom up so the first map row is drawn at the top.
func (h *Heatmap) Z(c, r int) float64 {
	return float64(h.Visits[h.Height-1-r][c])
}

func (h *Heatmap) X(c int) float64 {
	return float64(c)
}

func (h *Heatmap) Y(r int) float64 {
	return float64(r)
}

func (h *Heatmap) Min() float64 {
	return 0.0
}

func (h *Heatmap) Max() float64 {
	max := 0
	for _, row := range h.Visits {
		for _, count := range row {
			if count > max {
				max = count
			}
		}
	}
	return float64(max)
}

// MergeHeatmaps sums the visits of maps of possibly different sizes into
// one map large enough for all of them.
func MergeHeatmaps(maps ...*Heatmap) *Heatmap {
	width, height := 0, 0
	for _, h := range maps {
		if h.Width > width {
			width = h.Width
		}
		if h.Height > height {
			height = h.Height
		}
	}
	merged := NewHeatmap(width, height)
	for _, h := range maps {
		for y, row := range h.Visits {
			for x, count := range row {
				merged.Visits[y][x] += count
			}
		}
	}
	return merged
}
