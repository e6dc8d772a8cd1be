// Package trend fits a least-squares line to historical daily values and
// extrapolates it to future days.
package trend

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ErrDegenerateFit means the input cannot support a line fit: fewer than
// two points, mismatched series lengths, or no spread in x.
var ErrDegenerateFit = errors.New("degenerate trend input")

// Fit is an ordinary-least-squares line y = Slope*x + Intercept.
type Fit struct {
	Slope     float64
	Intercept float64
}

// FitPoints computes the OLS line through the (x, y) pairs. At least two
// distinct x values are required.
func FitPoints(xs, ys []float64) (Fit, error) {
	if len(xs) != len(ys) {
		return Fit{}, fmt.Errorf("%w: %d xs vs %d ys", ErrDegenerateFit, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return Fit{}, fmt.Errorf("%w: %d points", ErrDegenerateFit, len(xs))
	}
	distinct := false
	for _, x := range xs[1:] {
		if x != xs[0] {
			distinct = true
			break
		}
	}
	if !distinct {
		return Fit{}, fmt.Errorf("%w: all x values equal %g", ErrDegenerateFit, xs[0])
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	return Fit{Slope: slope, Intercept: intercept}, nil
}

// FitDays fits a line over ys indexed by day, with day 1 at ys[0].
func FitDays(ys []float64) (Fit, error) {
	xs := make([]float64, len(ys))
	for i := range ys {
		xs[i] = float64(i + 1)
	}
	return FitPoints(xs, ys)
}

// At evaluates the fitted line at x.
func (f Fit) At(x float64) float64 {
	return f.Slope*x + f.Intercept
}
