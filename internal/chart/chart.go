// Package chart renders the exercise statistics figures with gonum/plot.
//
// All visual state is carried in an explicit Options value threaded into
// each call; nothing here mutates package-level plotting configuration.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YaguangZhang/SimpleExerciseStatistics/internal/stats"
	"github.com/YaguangZhang/SimpleExerciseStatistics/internal/trend"
)

// ErrNoData means a renderer was handed an empty series.
var ErrNoData = errors.New("no data to plot")

// Options holds the visual configuration for one render call.
type Options struct {
	LabelSize float64 // axis label font size, points
	TitleSize float64 // title font size, points
	TickSize  float64 // tick label font size, points

	LineWidth           float64 // trend line width, points
	PredictionLineWidth float64 // extrapolated segment width, points

	FontVariant string // gonum font variant: Sans, Serif, Mono
}

// DefaultOptions mirrors the sizes the original figures used.
func DefaultOptions() Options {
	return Options{
		LabelSize:           30,
		TitleSize:           40,
		TickSize:            30,
		LineWidth:           5,
		PredictionLineWidth: 3,
		FontVariant:         "Sans",
	}
}

// apply styles a fresh plot with the option fonts and sizes.
func (o Options) apply(p *plot.Plot) {
	variant := font.Variant(o.FontVariant)
	for _, f := range []*font.Font{
		&p.Title.TextStyle.Font,
		&p.X.Label.TextStyle.Font,
		&p.Y.Label.TextStyle.Font,
		&p.X.Tick.Label.Font,
		&p.Y.Tick.Label.Font,
		&p.Legend.TextStyle.Font,
	} {
		f.Variant = variant
	}
	p.Title.TextStyle.Font.Size = vg.Points(o.TitleSize)
	p.X.Label.TextStyle.Font.Size = vg.Points(o.LabelSize)
	p.Y.Label.TextStyle.Font.Size = vg.Points(o.LabelSize)
	p.X.Tick.Label.Font.Size = vg.Points(o.TickSize)
	p.Y.Tick.Label.Font.Size = vg.Points(o.TickSize)
	p.Legend.TextStyle.Font.Size = vg.Points(o.TickSize)
}

// palette is the fixed 7-entry color cycle (the classic Matlab order).
var palette = []color.RGBA{
	{R: 0, G: 114, B: 189, A: 255},
	{R: 217, G: 83, B: 25, A: 255},
	{R: 237, G: 177, B: 32, A: 255},
	{R: 126, G: 47, B: 142, A: 255},
	{R: 119, G: 172, B: 48, A: 255},
	{R: 77, G: 190, B: 238, A: 255},
	{R: 162, G: 20, B: 47, A: 255},
}

// PaletteColor returns the cycle color for a zero-based day index.
func PaletteColor(dayIndex int) color.RGBA {
	return palette[dayIndex%len(palette)]
}

const (
	barAlphaMax  = 1.0
	barAlphaMin  = 0.3
	barAlphaStep = 0.1
)

// BarAlpha returns the bar opacity for a day that is age days older than
// the most recent one. The most recent day (age 0) is fully opaque; older
// days fade by 0.1 per day down to a floor of 0.3.
func BarAlpha(age int) float64 {
	a := barAlphaMax - barAlphaStep*float64(age)
	if a < barAlphaMin {
		return barAlphaMin
	}
	return a
}

// fade applies an opacity to a palette color.
func fade(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha*255 + 0.5)}
}

// dayTitle formats the chart title for a given day count and end date.
func dayTitle(numDays int, endDate time.Time) string {
	return fmt.Sprintf("Day %d (%s)", numDays, endDate.Format("2006-01-02"))
}

// minSingleDaySets is the minimum number of set positions shown on the
// single-day bar chart, so early charts do not collapse to one or two bars.
const minSingleDaySets = 5

// SetBars renders the per-set rep counts as a bar chart. With one day of
// data it is a plain bar chart with value labels; with more days it is a
// grouped chart, one bar per day within each set position, colored by the
// day palette and faded by BarAlpha with the most recent day in front.
func SetBars(matrix [][]int, endDate time.Time, opts Options) (*plot.Plot, error) {
	numDays := len(matrix)
	if numDays == 0 {
		return nil, fmt.Errorf("%w: empty set matrix", ErrNoData)
	}
	numSets := len(matrix[0])

	p := plot.New()
	opts.apply(p)
	p.Title.Text = dayTitle(numDays, endDate)
	p.X.Label.Text = "Set"
	p.Y.Label.Text = "Reps"

	if numDays == 1 {
		return singleDayBars(p, matrix[0], opts)
	}

	groupWidth := vg.Points(60)
	barWidth := groupWidth / vg.Length(numDays)

	// Oldest day first so the most recent series draws on top.
	for d := 0; d < numDays; d++ {
		values := make(plotter.Values, numSets)
		for s, reps := range matrix[d] {
			values[s] = float64(reps)
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return nil, fmt.Errorf("bar series for day %d: %w", d+1, err)
		}
		bars.Color = fade(PaletteColor(d), BarAlpha(numDays-1-d))
		bars.LineStyle.Width = 0
		bars.Offset = barWidth*vg.Length(d) - groupWidth/2 + barWidth/2
		p.Add(bars)
	}

	if err := labelBars(p, matrix[numDays-1], groupWidth/2-barWidth/2, opts); err != nil {
		return nil, err
	}
	nominalSetAxis(p, numSets)
	return p, nil
}

// singleDayBars renders the degenerate one-day chart, padded out to at
// least minSingleDaySets positions.
func singleDayBars(p *plot.Plot, sets []int, opts Options) (*plot.Plot, error) {
	show := len(sets)
	if show < minSingleDaySets {
		show = minSingleDaySets
	}
	values := make(plotter.Values, show)
	for s := 0; s < show && s < len(sets); s++ {
		values[s] = float64(sets[s])
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = fade(PaletteColor(0), 0.8)
	bars.LineStyle.Width = 0
	p.Add(bars)

	padded := make([]int, show)
	copy(padded, sets)
	if err := labelBars(p, padded, 0, opts); err != nil {
		return nil, err
	}
	nominalSetAxis(p, show)
	return p, nil
}

// labelBars writes the rep count above each nonzero bar of the front
// (most recent) series.
func labelBars(p *plot.Plot, sets []int, offset vg.Length, opts Options) error {
	var xys plotter.XYs
	var texts []string
	for s, reps := range sets {
		if reps == 0 {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(s), Y: float64(reps)})
		texts = append(texts, fmt.Sprintf("%d", reps))
	}
	if len(xys) == 0 {
		return nil
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return fmt.Errorf("bar labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = vg.Points(opts.TickSize)
		labels.TextStyle[i].Font.Variant = font.Variant(opts.FontVariant)
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YBottom
	}
	labels.Offset = vg.Point{X: offset}
	p.Add(labels)
	return nil
}

// nominalSetAxis labels the x axis with 1-indexed set positions.
func nominalSetAxis(p *plot.Plot, numSets int) {
	names := make([]string, numSets)
	for s := range names {
		names[s] = fmt.Sprintf("%d", s+1)
	}
	p.NominalX(names...)
}

// Trend renders the daily total and first-set rep series over days 1..N
// as lines with scatter glyphs. When numDays exceeds the observed history,
// a thinner dashed segment extrapolates the total-reps trend from day 1 to
// the final requested day, using a fit over the entire history.
func Trend(totals, firstSet []float64, numDays int, endDate time.Time, dateInTitle bool, opts Options) (*plot.Plot, error) {
	observed := len(totals)
	if observed == 0 {
		return nil, fmt.Errorf("%w: empty totals", ErrNoData)
	}
	if len(firstSet) != observed {
		return nil, fmt.Errorf("%w: %d totals vs %d first-set values", ErrNoData, observed, len(firstSet))
	}

	p := plot.New()
	opts.apply(p)
	if dateInTitle {
		p.Title.Text = dayTitle(numDays, endDate)
	} else {
		p.Title.Text = fmt.Sprintf("Day %d", numDays)
	}
	p.X.Label.Text = "Day"
	p.Y.Label.Text = "Reps"
	p.Y.Min = 0
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if err := addSeries(p, totals, "Total", PaletteColor(0), opts); err != nil {
		return nil, err
	}
	if err := addSeries(p, firstSet, "First set", PaletteColor(1), opts); err != nil {
		return nil, err
	}

	if numDays > observed {
		fit, err := trend.FitDays(totals)
		if err != nil {
			return nil, fmt.Errorf("extrapolating to day %d: %w", numDays, err)
		}
		// A straight two-point segment from day 1 to the requested day;
		// the fit covers the whole observed history.
		seg := plotter.XYs{
			{X: 1, Y: fit.At(1)},
			{X: float64(numDays), Y: fit.At(float64(numDays))},
		}
		line, err := plotter.NewLine(seg)
		if err != nil {
			return nil, fmt.Errorf("prediction segment: %w", err)
		}
		line.Color = PaletteColor(2)
		line.LineStyle.Width = vg.Points(opts.PredictionLineWidth)
		line.LineStyle.Dashes = plotutil.Dashes(1)
		p.Add(line)
		p.Legend.Add("Predicted total", line)
	}
	return p, nil
}

// TimeSpent renders per-day workout minutes together with their running
// mean.
func TimeSpent(minutes []float64, endDate time.Time, dateInTitle bool, opts Options) (*plot.Plot, error) {
	numDays := len(minutes)
	if numDays == 0 {
		return nil, fmt.Errorf("%w: empty durations", ErrNoData)
	}

	p := plot.New()
	opts.apply(p)
	if dateInTitle {
		p.Title.Text = dayTitle(numDays, endDate)
	} else {
		p.Title.Text = fmt.Sprintf("Day %d", numDays)
	}
	p.X.Label.Text = "Day"
	p.Y.Label.Text = "Minutes"
	p.Y.Min = 0
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if err := addSeries(p, minutes, "Daily", PaletteColor(0), opts); err != nil {
		return nil, err
	}

	mean := stats.RunningMean(minutes)
	line, err := plotter.NewLine(dayXYs(mean))
	if err != nil {
		return nil, fmt.Errorf("running mean line: %w", err)
	}
	line.Color = PaletteColor(1)
	line.LineStyle.Width = vg.Points(opts.PredictionLineWidth)
	p.Add(line)
	p.Legend.Add("Running mean", line)
	return p, nil
}

// addSeries draws one day-indexed series as a line plus scatter glyphs.
func addSeries(p *plot.Plot, ys []float64, name string, c color.RGBA, opts Options) error {
	pts := dayXYs(ys)
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("%s line: %w", name, err)
	}
	line.Color = c
	line.LineStyle.Width = vg.Points(opts.LineWidth)

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("%s scatter: %w", name, err)
	}
	scatter.GlyphStyle.Color = c
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(opts.LineWidth)

	p.Add(line, scatter)
	p.Legend.Add(name, line)
	return nil
}

// dayXYs pairs ys with 1-indexed day positions.
func dayXYs(ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(ys))
	for i, y := range ys {
		pts[i] = plotter.XY{X: float64(i + 1), Y: y}
	}
	return pts
}

// Save exports a chart as a PNG of the given dimensions.
func Save(p *plot.Plot, width, height vg.Length, path string) error {
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
