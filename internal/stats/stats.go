// Package stats shapes the typed exercise table into the numeric series
// the chart renderers consume.
package stats

import (
	"errors"
	"fmt"

	"github.com/YaguangZhang/SimpleExerciseStatistics/internal/table"
)

// ErrRange means a requested day or set count is outside the table.
var ErrRange = errors.New("day count out of range")

// SetMatrix returns a numDays x NumSets matrix of rep counts. Every day is
// fully populated except the last, which keeps only its first numSetsLastDay
// values; the rest are zero. This lets a caller render the most recent,
// still-in-progress day partially.
func SetMatrix(t *table.Table, numDays, numSetsLastDay int) ([][]int, error) {
	if numDays < 1 || numDays > len(t.Rows) {
		return nil, fmt.Errorf("%w: numDays %d with %d rows", ErrRange, numDays, len(t.Rows))
	}
	if numSetsLastDay < 0 || numSetsLastDay > t.NumSets {
		return nil, fmt.Errorf("%w: numSetsLastDay %d with %d sets", ErrRange, numSetsLastDay, t.NumSets)
	}

	matrix := make([][]int, numDays)
	for d := 0; d < numDays; d++ {
		row := make([]int, t.NumSets)
		keep := t.NumSets
		if d == numDays-1 {
			keep = numSetsLastDay
		}
		copy(row[:keep], t.Rows[d].Sets[:keep])
		matrix[d] = row
	}
	return matrix, nil
}

// DailyTotals returns, for the first numDays days, the total reps summed
// across all sets and the first-set reps.
func DailyTotals(t *table.Table, numDays int) (totals, firstSet []int, err error) {
	if numDays < 1 || numDays > len(t.Rows) {
		return nil, nil, fmt.Errorf("%w: numDays %d with %d rows", ErrRange, numDays, len(t.Rows))
	}
	totals = make([]int, numDays)
	firstSet = make([]int, numDays)
	for d := 0; d < numDays; d++ {
		for _, reps := range t.Rows[d].Sets {
			totals[d] += reps
		}
		firstSet[d] = t.Rows[d].Sets[0]
	}
	return totals, firstSet, nil
}

// DailyDurations returns the workout duration in seconds for the first
// numDays days.
func DailyDurations(t *table.Table, numDays int) ([]int, error) {
	if numDays < 1 || numDays > len(t.Rows) {
		return nil, fmt.Errorf("%w: numDays %d with %d rows", ErrRange, numDays, len(t.Rows))
	}
	secs := make([]int, numDays)
	for d := 0; d < numDays; d++ {
		secs[d] = t.Rows[d].WorkoutSeconds
	}
	return secs, nil
}

// RunningMean returns the prefix running mean of xs: out[i] is the mean of
// xs[0..i].
func RunningMean(xs []float64) []float64 {
	out := make([]float64, len(xs))
	var sum float64
	for i, x := range xs {
		sum += x
		out[i] = sum / float64(i+1)
	}
	return out
}
