// Package render drives the batch generation of every chart for a loaded
// exercise table.
package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/YaguangZhang/SimpleExerciseStatistics/internal/chart"
	"github.com/YaguangZhang/SimpleExerciseStatistics/internal/config"
	"github.com/YaguangZhang/SimpleExerciseStatistics/internal/stats"
	"github.com/YaguangZhang/SimpleExerciseStatistics/internal/table"
)

// Stats tracks batch progress.
type Stats struct {
	ChartsWritten int
	ChartsFailed  int
}

// Renderer generates the full chart set into the configured output
// directory. Per-chart failures are logged and counted, not fatal.
type Renderer struct {
	cfg   *config.Config
	log   *slog.Logger
	opts  chart.Options
	stats Stats
}

// New creates a Renderer from the loaded configuration.
func New(cfg *config.Config, log *slog.Logger) *Renderer {
	return &Renderer{
		cfg: cfg,
		log: log,
		opts: chart.Options{
			LabelSize:           cfg.Chart.LabelSize,
			TitleSize:           cfg.Chart.TitleSize,
			TickSize:            cfg.Chart.TickSize,
			LineWidth:           cfg.Chart.LineWidth,
			PredictionLineWidth: cfg.Chart.PredictionLineWidth,
			FontVariant:         cfg.Chart.FontVariant,
		},
	}
}

// EnsureDir creates the directory if it does not exist. An existing
// directory is fine; only genuine failures (permissions, a file in the
// way) are reported.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", path, err)
	}
	return nil
}

// RenderAll generates every chart for the table:
//
//   - one bar chart per (day, set) pair
//   - trend charts for days 2..horizon (extrapolated beyond history)
//   - square trend and time-spent charts for observed days 2..D
//   - wide trend charts for future days and for the observed range
func (r *Renderer) RenderAll(t *table.Table) (*Stats, error) {
	if err := EnsureDir(r.cfg.Output.Dir); err != nil {
		return &r.stats, err
	}

	numDays := len(t.Rows)
	horizon := r.cfg.Trend.HorizonDays

	// Bar charts: every day, every set prefix of the last day.
	for d := 1; d <= numDays; d++ {
		for s := 1; s <= t.NumSets; s++ {
			r.barChart(t, d, s)
		}
	}

	// Portrait trend charts: observed days from 2 up, then predictions out
	// to the horizon.
	for d := 2; d <= horizon; d++ {
		r.trendChart(t, d, r.cfg.Chart.Portrait, fmt.Sprintf("trend_day_%d.png", d), false)
	}

	// Square per-day trend and time-spent charts with the end date in the
	// title, for observed days only.
	for d := 2; d <= numDays; d++ {
		r.trendChart(t, d, r.cfg.Chart.Square, fmt.Sprintf("trend_square_day_%d.png", d), true)
		r.timeChart(t, d, fmt.Sprintf("time_square_day_%d.png", d))
	}

	// Wide prediction charts beyond the observed range.
	for d := numDays + 1; d <= horizon; d++ {
		r.trendChart(t, d, r.cfg.Chart.Wide, fmt.Sprintf("trend_wide_day_%d.png", d), false)
	}

	// Wide charts over the observed range.
	for d := 1; d <= numDays; d++ {
		r.trendChart(t, d, r.cfg.Chart.Wide, fmt.Sprintf("trend_available_wide_day_%d.png", d), false)
	}

	return &r.stats, nil
}

func (r *Renderer) barChart(t *table.Table, day, numSetsLastDay int) {
	name := fmt.Sprintf("bar_day_%d_set_%d.png", day, numSetsLastDay)
	matrix, err := stats.SetMatrix(t, day, numSetsLastDay)
	if err != nil {
		r.fail(name, err)
		return
	}
	p, err := chart.SetBars(matrix, t.Rows[day-1].Date, r.opts)
	if err != nil {
		r.fail(name, err)
		return
	}
	r.save(p, r.cfg.Chart.Portrait, name)
}

func (r *Renderer) trendChart(t *table.Table, day int, size config.SizeConfig, name string, dateInTitle bool) {
	observed := day
	if observed > len(t.Rows) {
		observed = len(t.Rows)
	}
	totals, firstSet, err := stats.DailyTotals(t, observed)
	if err != nil {
		r.fail(name, err)
		return
	}
	p, err := chart.Trend(toFloats(totals), toFloats(firstSet), day, t.Rows[observed-1].Date, dateInTitle, r.opts)
	if err != nil {
		r.fail(name, err)
		return
	}
	r.save(p, size, name)
}

func (r *Renderer) timeChart(t *table.Table, day int, name string) {
	secs, err := stats.DailyDurations(t, day)
	if err != nil {
		r.fail(name, err)
		return
	}
	minutes := make([]float64, len(secs))
	for i, s := range secs {
		minutes[i] = float64(s) / 60
	}
	p, err := chart.TimeSpent(minutes, t.Rows[day-1].Date, true, r.opts)
	if err != nil {
		r.fail(name, err)
		return
	}
	r.save(p, r.cfg.Chart.Square, name)
}

func (r *Renderer) save(p *plot.Plot, size config.SizeConfig, name string) {
	path := filepath.Join(r.cfg.Output.Dir, name)
	w := vg.Length(size.WidthIn) * vg.Inch
	h := vg.Length(size.HeightIn) * vg.Inch
	if err := chart.Save(p, w, h, path); err != nil {
		r.fail(name, err)
		return
	}
	r.stats.ChartsWritten++
}

func (r *Renderer) fail(name string, err error) {
	r.stats.ChartsFailed++
	r.log.Warn("chart failed", "chart", name, "error", err)
}

func toFloats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
