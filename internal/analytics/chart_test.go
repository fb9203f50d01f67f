package analytics

import (
	"testing"
	"time"
)

// pattern builds dense points from a completion bitmap, oldest first.
func pattern(completed ...bool) []Point {
	start := day(2025, time.March, 1)
	out := make([]Point, len(completed))
	for i, c := range completed {
		out[i] = Point{Date: start.AddDate(0, 0, i), Completed: c}
	}
	return out
}

// halves builds two equal halves where the first done counts of each
// half are completed days.
func halves(halfLen, earlyDone, recentDone int) []Point {
	bits := make([]bool, 0, 2*halfLen)
	for i := 0; i < halfLen; i++ {
		bits = append(bits, i < earlyDone)
	}
	for i := 0; i < halfLen; i++ {
		bits = append(bits, i < recentDone)
	}
	return pattern(bits...)
}

func TestBuildChartData_DenseWeek(t *testing.T) {
	h := HabitInfo{ID: 1, Name: "Exercise", CreatedAt: day(2025, time.June, 1), Active: true}
	today := day(2025, time.July, 11)
	dates := []time.Time{
		day(2025, time.July, 7),
		day(2025, time.July, 9),
		day(2025, time.July, 11),
	}

	got := BuildChartData(h, dates, PeriodWeek, today)

	if got.TotalDays != 7 || len(got.Points) != 7 {
		t.Fatalf("expected 7 dense points, got %d (total %d)", len(got.Points), got.TotalDays)
	}
	if got.CompletedDays != 3 {
		t.Errorf("completed days = %d, want 3", got.CompletedDays)
	}
	if diff := got.CompletionRate - 42.9; diff > 0.001 || diff < -0.001 {
		t.Errorf("completion rate = %v, want 42.9", got.CompletionRate)
	}

	// One point per calendar day, ascending, ending today.
	if want := day(2025, time.July, 5); !got.Points[0].Date.Equal(want) {
		t.Errorf("first point %v, want %v", got.Points[0].Date, want)
	}
	if !got.Points[6].Date.Equal(today) {
		t.Errorf("last point %v, want today", got.Points[6].Date)
	}
	for i := 1; i < len(got.Points); i++ {
		if got.Points[i].Date.Sub(got.Points[i-1].Date) != 24*time.Hour {
			t.Fatalf("gap between points %d and %d", i-1, i)
		}
	}
}

func TestBuildChartData_StreakRuns(t *testing.T) {
	// July 5..11 with completions 5,6 and 8,9,10: runs of 2 and 3.
	h := HabitInfo{ID: 1, Name: "Exercise", CreatedAt: day(2025, time.June, 1), Active: true}
	today := day(2025, time.July, 11)
	dates := []time.Time{
		day(2025, time.July, 5), day(2025, time.July, 6),
		day(2025, time.July, 8), day(2025, time.July, 9), day(2025, time.July, 10),
	}

	got := BuildChartData(h, dates, PeriodWeek, today)

	if len(got.Streaks) != 2 || got.Streaks[0] != 2 || got.Streaks[1] != 3 {
		t.Errorf("streaks = %v, want [2 3]", got.Streaks)
	}
	if got.LongestStreak != 3 {
		t.Errorf("longest streak = %d, want 3", got.LongestStreak)
	}
	if got.CurrentStreak != 0 {
		t.Errorf("current streak = %d, want 0 (last day incomplete)", got.CurrentStreak)
	}
}

func TestBuildChartData_TrailingRun(t *testing.T) {
	h := HabitInfo{ID: 1, Name: "Exercise", CreatedAt: day(2025, time.June, 1), Active: true}
	today := day(2025, time.July, 11)
	dates := consecutive(day(2025, time.July, 9), 3) // July 9-11

	got := BuildChartData(h, dates, PeriodWeek, today)

	if got.CurrentStreak != 3 {
		t.Errorf("current streak = %d, want 3", got.CurrentStreak)
	}
}

func TestBuildChartData_UnknownPeriodFallsBack(t *testing.T) {
	h := HabitInfo{ID: 1, Name: "Exercise", CreatedAt: day(2025, time.June, 1), Active: true}

	got := BuildChartData(h, nil, "decade", day(2025, time.July, 11))

	if got.TotalDays != 30 {
		t.Errorf("total days = %d, want 30 fallback", got.TotalDays)
	}
}

func TestBuildChartData_EmptyHistory(t *testing.T) {
	h := HabitInfo{ID: 1, Name: "Exercise", CreatedAt: day(2025, time.June, 1), Active: true}

	got := BuildChartData(h, nil, PeriodMonth, day(2025, time.July, 11))

	if got.CompletedDays != 0 || got.CompletionRate != 0.0 {
		t.Errorf("expected zero completion, got %d days at %v%%", got.CompletedDays, got.CompletionRate)
	}
	if len(got.Streaks) != 0 || got.LongestStreak != 0 || got.CurrentStreak != 0 {
		t.Errorf("expected zero streaks, got %v / %d / %d", got.Streaks, got.LongestStreak, got.CurrentStreak)
	}
}

func TestAnalyzeTrend_TooFewPoints(t *testing.T) {
	if _, ok := AnalyzeTrend(pattern(true, true, true, false, true, true)); ok {
		t.Error("expected no trend below seven points")
	}
}

func TestAnalyzeTrend_Directions(t *testing.T) {
	tests := []struct {
		name     string
		points   []Point
		want     string
		wantDiff float64
	}{
		{name: "strong upward", points: halves(10, 0, 10), want: TrendStrongUpward, wantDiff: 100.0},
		{name: "upward past ten", points: halves(10, 1, 3), want: TrendStrongUpward, wantDiff: 20.0},
		{name: "slight upward at ten", points: halves(10, 0, 1), want: TrendSlightUpward, wantDiff: 10.0},
		{name: "stable at plus five", points: halves(20, 0, 1), want: TrendStable, wantDiff: 5.0},
		{name: "stable small change", points: halves(50, 25, 26), want: TrendStable, wantDiff: 2.0},
		{name: "stable at minus five", points: halves(20, 1, 0), want: TrendStable, wantDiff: -5.0},
		{name: "slight downward at minus ten", points: halves(10, 1, 0), want: TrendSlightDownward, wantDiff: -10.0},
		{name: "concerning drop", points: halves(10, 3, 1), want: TrendConcerningDownward, wantDiff: -20.0},
		{name: "total collapse", points: halves(7, 7, 0), want: TrendConcerningDownward, wantDiff: -100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AnalyzeTrend(tt.points)
			if !ok {
				t.Fatal("expected a trend result")
			}
			if got.Direction != tt.want {
				t.Errorf("direction = %q, want %q", got.Direction, tt.want)
			}
			if diff := got.Diff - tt.wantDiff; diff > 0.001 || diff < -0.001 {
				t.Errorf("diff = %v, want %v", got.Diff, tt.wantDiff)
			}
		})
	}
}

func TestAnalyzeTrend_HalfRates(t *testing.T) {
	got, ok := AnalyzeTrend(halves(10, 5, 8))
	if !ok {
		t.Fatal("expected a trend result")
	}
	if diff := got.EarlyRate - 50.0; diff > 0.001 || diff < -0.001 {
		t.Errorf("early rate = %v, want 50.0", got.EarlyRate)
	}
	if diff := got.RecentRate - 80.0; diff > 0.001 || diff < -0.001 {
		t.Errorf("recent rate = %v, want 80.0", got.RecentRate)
	}
}

func TestAnalyzeTrend_OddSplit(t *testing.T) {
	// Seven points split 3/4 by floor midpoint: early 3 all complete,
	// recent 4 all incomplete.
	points := pattern(true, true, true, false, false, false, false)

	got, ok := AnalyzeTrend(points)
	if !ok {
		t.Fatal("expected a trend result")
	}
	if got.Direction != TrendConcerningDownward {
		t.Errorf("direction = %q, want %q", got.Direction, TrendConcerningDownward)
	}
	if diff := got.Diff - (-100.0); diff > 0.001 || diff < -0.001 {
		t.Errorf("diff = %v, want -100.0", got.Diff)
	}
}

func TestAnalyzeTrend_FourteenDayCollapse(t *testing.T) {
	// A first week fully tracked and a second week fully missed: the
	// chart still reports a zero trailing streak and a concerning trend.
	h := HabitInfo{ID: 1, Name: "Exercise", CreatedAt: day(2025, time.June, 1), Active: true}
	today := day(2025, time.July, 11)
	dates := consecutive(day(2025, time.June, 28), 7) // June 28 - July 4

	chart := BuildChartData(h, dates, PeriodWeek, today)
	if chart.CurrentStreak != 0 {
		t.Errorf("trailing streak = %d, want 0", chart.CurrentStreak)
	}

	trend, ok := AnalyzeTrend(halves(7, 7, 0))
	if !ok {
		t.Fatal("expected a trend result")
	}
	if trend.Direction != TrendConcerningDownward {
		t.Errorf("direction = %q, want %q", trend.Direction, TrendConcerningDownward)
	}
}
