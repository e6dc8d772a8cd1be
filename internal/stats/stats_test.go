package stats

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/YaguangZhang/SimpleExerciseStatistics/internal/table"
)

const sampleCSV = `Date,WorkoutTime,Set 1,Set 2,Set 3
04/01/2020,0:04:10,10,8,6
04/02/2020,0:05:02,11,9,7
04/03/2020,0:06:00,12,10,8
04/04/2020,1:00:00,13,11,9
`

func loadTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return tbl
}

func TestSetMatrixDimensions(t *testing.T) {
	tbl := loadTable(t)
	for numDays := 1; numDays <= len(tbl.Rows); numDays++ {
		m, err := SetMatrix(tbl, numDays, tbl.NumSets)
		if err != nil {
			t.Fatalf("SetMatrix(%d) error: %v", numDays, err)
		}
		if len(m) != numDays {
			t.Errorf("SetMatrix(%d) rows = %d", numDays, len(m))
		}
		for d, row := range m {
			if len(row) != tbl.NumSets {
				t.Errorf("day %d columns = %d, want %d", d+1, len(row), tbl.NumSets)
			}
		}
	}
}

func TestSetMatrixPartialLastDay(t *testing.T) {
	tbl := loadTable(t)
	m, err := SetMatrix(tbl, 3, 1)
	if err != nil {
		t.Fatalf("SetMatrix error: %v", err)
	}
	// Days 1 and 2 are full.
	if m[0][2] != 6 || m[1][2] != 7 {
		t.Errorf("earlier days truncated: %v", m)
	}
	// Day 3 keeps only the first set.
	if m[2][0] != 12 {
		t.Errorf("last day first set = %d, want 12", m[2][0])
	}
	if m[2][1] != 0 || m[2][2] != 0 {
		t.Errorf("last day tail = %v, want zeros", m[2][1:])
	}
}

func TestSetMatrixRange(t *testing.T) {
	tbl := loadTable(t)
	cases := []struct {
		numDays, numSetsLastDay int
	}{
		{0, 1},
		{-1, 1},
		{5, 1},
		{2, -1},
		{2, 4},
	}
	for _, tc := range cases {
		if _, err := SetMatrix(tbl, tc.numDays, tc.numSetsLastDay); !errors.Is(err, ErrRange) {
			t.Errorf("SetMatrix(%d, %d) err = %v, want ErrRange", tc.numDays, tc.numSetsLastDay, err)
		}
	}
}

// TestDailyTotalsMatchMatrix checks the round-trip property: totals equal
// the row-wise sums of the full set matrix.
func TestDailyTotalsMatchMatrix(t *testing.T) {
	tbl := loadTable(t)
	numDays := len(tbl.Rows)
	totals, firstSet, err := DailyTotals(tbl, numDays)
	if err != nil {
		t.Fatalf("DailyTotals error: %v", err)
	}
	m, err := SetMatrix(tbl, numDays, tbl.NumSets)
	if err != nil {
		t.Fatalf("SetMatrix error: %v", err)
	}
	for d := 0; d < numDays; d++ {
		sum := 0
		for _, reps := range m[d] {
			sum += reps
		}
		if totals[d] != sum {
			t.Errorf("day %d total = %d, matrix sum = %d", d+1, totals[d], sum)
		}
		if firstSet[d] != m[d][0] {
			t.Errorf("day %d first set = %d, matrix = %d", d+1, firstSet[d], m[d][0])
		}
	}
}

func TestDailyTotalsRange(t *testing.T) {
	tbl := loadTable(t)
	if _, _, err := DailyTotals(tbl, 0); !errors.Is(err, ErrRange) {
		t.Errorf("err = %v, want ErrRange", err)
	}
}

func TestDailyDurations(t *testing.T) {
	tbl := loadTable(t)
	secs, err := DailyDurations(tbl, 4)
	if err != nil {
		t.Fatalf("DailyDurations error: %v", err)
	}
	want := []int{250, 302, 360, 3600}
	for d := range want {
		if secs[d] != want[d] {
			t.Errorf("day %d seconds = %d, want %d", d+1, secs[d], want[d])
		}
	}
	if _, err := DailyDurations(tbl, 0); !errors.Is(err, ErrRange) {
		t.Errorf("err = %v, want ErrRange", err)
	}
}

func TestRunningMean(t *testing.T) {
	got := RunningMean([]float64{4, 2, 6})
	want := []float64{4, 3, 4}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("mean[%d] = %g, want %g", i, got[i], want[i])
		}
	}
	if out := RunningMean(nil); len(out) != 0 {
		t.Errorf("RunningMean(nil) = %v, want empty", out)
	}
}
