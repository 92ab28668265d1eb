package types

import (
	"fmt"
	"image/color"
	"math"
	"path"
	"strconv"

	"github.com/zeu5/room-explorer/grid"
	"github.com/zeu5/room-explorer/util"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Summary is the mean and standard deviation of a sample.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

func Summarize(xs []float64) Summary {
	switch len(xs) {
	case 0:
		return Summary{}
	case 1:
		return Summary{Count: 1, Mean: xs[0]}
	}
	mean, std := stat.MeanStdDev(xs, nil)
	return Summary{Count: len(xs), Mean: mean, StdDev: std}
}

// ACCURACY

// AccuracyData counts the episodes of one experiment by result.
type AccuracyData struct {
	Episodes  int `json:"episodes"`
	Failed    int `json:"failed"`
	TimedOut  int `json:"timed_out"`
	Correct   int `json:"correct"`
	Confident int `json:"confident"`
}

// WinRate is the fraction of finished episodes whose guess was right.
func (a *AccuracyData) WinRate() float64 {
	finished := a.Episodes - a.Failed
	if finished <= 0 {
		return 0
	}
	return float64(a.Correct) / float64(finished)
}

type AccuracyAnalyzer struct {
	data *AccuracyData
}

var _ Analyzer = &AccuracyAnalyzer{}

func NewAccuracyAnalyzer() *AccuracyAnalyzer {
	return &AccuracyAnalyzer{data: &AccuracyData{}}
}

func (a *AccuracyAnalyzer) Analyze(_ int, _ string, eCtx *EpisodeContext) {
	a.data.Episodes++
	if eCtx.TimedOut {
		a.data.TimedOut++
	}
	if !eCtx.Valid() {
		a.data.Failed++
		return
	}
	if eCtx.Outcome.Correct() {
		a.data.Correct++
	}
	if eCtx.Outcome.Confident {
		a.data.Confident++
	}
}

func (a *AccuracyAnalyzer) DataSet() DataSet {
	data := *a.data
	return &data
}

func (a *AccuracyAnalyzer) Reset() {
	a.data = &AccuracyData{}
}

// AccuracyComparator prints the win rate of each experiment and records the
// counts in <run>_accuracy.json under savePath.
func AccuracyComparator(savePath string) Comparator {
	return func(run int, names []string, ds []DataSet) {
		out := make(map[string]*AccuracyData)
		for i, name := range names {
			data := ds[i].(*AccuracyData)
			out[name] = data
			fmt.Printf("Run %d, %s: win rate %.3f (%d/%d correct, %d confident, %d failed)\n",
				run, name, data.WinRate(), data.Correct, data.Episodes-data.Failed, data.Confident, data.Failed)
		}
		if err := util.WriteJSON(path.Join(savePath, strconv.Itoa(run)+"_accuracy.json"), out); err != nil {
			fmt.Printf("error recording accuracy: %s\n", err)
		}
	}
}

// SAMPLES

// sampleAnalyzer collects one number per valid episode.
type sampleAnalyzer struct {
	extract func(*Outcome) float64
	samples []float64
}

func (s *sampleAnalyzer) Analyze(_ int, _ string, eCtx *EpisodeContext) {
	if !eCtx.Valid() {
		return
	}
	s.samples = append(s.samples, s.extract(eCtx.Outcome))
}

func (s *sampleAnalyzer) DataSet() DataSet {
	return append([]float64(nil), s.samples...)
}

func (s *sampleAnalyzer) Reset() {
	s.samples = make([]float64, 0)
}

// NewStepsAnalyzer collects the number of moves of every episode.
func NewStepsAnalyzer() Analyzer {
	return &sampleAnalyzer{
		extract: func(o *Outcome) float64 { return float64(o.Moves) },
		samples: make([]float64, 0),
	}
}

// NewUnexploredAnalyzer collects the unexplored fraction of every episode.
func NewUnexploredAnalyzer() Analyzer {
	return &sampleAnalyzer{
		extract: func(o *Outcome) float64 { return o.Unexplored },
		samples: make([]float64, 0),
	}
}

// StepsComparator draws the mean number of moves of every experiment as a
// bar chart in <run>_steps.png.
func StepsComparator(plotPath string) Comparator {
	return func(run int, names []string, ds []DataSet) {
		means := make(plotter.Values, len(names))
		summaries := make(map[string]Summary)
		for i, name := range names {
			s := Summarize(ds[i].([]float64))
			means[i] = s.Mean
			summaries[name] = s
			fmt.Printf("Run %d, %s: moves %.2f ± %.2f over %d episodes\n", run, name, s.Mean, s.StdDev, s.Count)
		}
		if err := util.WriteJSON(path.Join(plotPath, strconv.Itoa(run)+"_steps.json"), summaries); err != nil {
			fmt.Printf("error recording steps: %s\n", err)
		}

		p := plot.New()
		p.Title.Text = "Moves per episode"
		p.Y.Label.Text = "Mean moves"
		bars, err := plotter.NewBarChart(means, vg.Points(30))
		if err != nil {
			fmt.Printf("error plotting steps: %s\n", err)
			return
		}
		bars.Color = plotutil.Color(0)
		p.Add(bars)
		p.NominalX(names...)
		if err := p.Save(8*vg.Inch, 6*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_steps.png")); err != nil {
			fmt.Printf("error saving steps plot: %s\n", err)
		}
	}
}

// UnexploredComparator plots the mean unexplored fraction against xs, the
// parameter each experiment was run with (e.g. the decision threshold).
// When xs is nil the experiment index is used.
func UnexploredComparator(plotPath, xLabel string, xs []float64) Comparator {
	return func(run int, names []string, ds []DataSet) {
		points := make(plotter.XYs, 0, len(names))
		summaries := make(map[string]Summary)
		for i, name := range names {
			s := Summarize(ds[i].([]float64))
			summaries[name] = s
			fmt.Printf("Run %d, %s: unexplored %.3f ± %.3f over %d episodes\n", run, name, s.Mean, s.StdDev, s.Count)
			if s.Count == 0 {
				continue
			}
			x := float64(i)
			if i < len(xs) {
				x = xs[i]
			}
			points = append(points, plotter.XY{X: x, Y: s.Mean})
		}
		if err := util.WriteJSON(path.Join(plotPath, strconv.Itoa(run)+"_unexplored.json"), summaries); err != nil {
			fmt.Printf("error recording unexplored: %s\n", err)
		}
		if len(points) == 0 {
			return
		}

		p := plot.New()
		p.Title.Text = "Unexplored fraction"
		p.X.Label.Text = xLabel
		p.Y.Label.Text = "Mean unexplored"
		line, scatter, err := plotter.NewLinePoints(points)
		if err != nil {
			fmt.Printf("error plotting unexplored: %s\n", err)
			return
		}
		line.Color = plotutil.Color(0)
		scatter.Color = plotutil.Color(0)
		p.Add(line, scatter)
		if err := p.Save(8*vg.Inch, 6*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_unexplored.png")); err != nil {
			fmt.Printf("error saving unexplored plot: %s\n", err)
		}
	}
}

// HEATMAP

type HeatmapAnalyzer struct {
	maps []*grid.Heatmap
}

var _ Analyzer = &HeatmapAnalyzer{}

func NewHeatmapAnalyzer() *HeatmapAnalyzer {
	return &HeatmapAnalyzer{maps: make([]*grid.Heatmap, 0)}
}

func (h *HeatmapAnalyzer) Analyze(_ int, _ string, eCtx *EpisodeContext) {
	if !eCtx.Valid() || eCtx.Outcome.Heatmap == nil {
		return
	}
	h.maps = append(h.maps, eCtx.Outcome.Heatmap)
}

// DataSet is the merged heatmap of every analyzed episode.
func (h *HeatmapAnalyzer) DataSet() DataSet {
	return grid.MergeHeatmaps(h.maps...)
}

func (h *HeatmapAnalyzer) Reset() {
	h.maps = make([]*grid.Heatmap, 0)
}

// HeatmapComparator saves the merged heatmap of each experiment as
// <run>_<name>_heatmap.png and .json.
func HeatmapComparator(plotPath string) Comparator {
	return func(run int, names []string, ds []DataSet) {
		for i, name := range names {
			h := ds[i].(*grid.Heatmap)
			prefix := path.Join(plotPath, strconv.Itoa(run)+"_"+name+"_heatmap")
			if err := util.WriteJSON(prefix+".json", h); err != nil {
				fmt.Printf("error recording heatmap: %s\n", err)
			}
			if err := PlotHeatmap(h, name, prefix+".png"); err != nil {
				fmt.Printf("error plotting heatmap: %s\n", err)
			}
		}
	}
}

// PlotHeatmap draws h to file. Empty maps are skipped.
func PlotHeatmap(h *grid.Heatmap, title, file string) error {
	if h.Width == 0 || h.Height == 0 || h.Max() == 0 {
		return nil
	}
	p := plot.New()
	p.Title.Text = title
	p.BackgroundColor = color.White
	p.HideAxes()
	hm := plotter.NewHeatMap(h, palette.Heat(12, 1))
	p.Add(hm)
	ratio := float64(h.Height) / math.Max(float64(h.Width), 1)
	return p.Save(8*vg.Inch, vg.Length(8*ratio)*vg.Inch, file)
}
