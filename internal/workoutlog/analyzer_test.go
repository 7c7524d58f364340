package workoutlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRange(t *testing.T) {
	for _, input := range []string{"week", "month", "all"} {
		tr, err := ParseTimeRange(input)
		require.NoError(t, err)
		assert.Equal(t, TimeRange(input), tr)
	}

	tr, err := ParseTimeRange("")
	require.NoError(t, err)
	assert.Equal(t, TimeRangeMonth, tr)

	_, err = ParseTimeRange("fortnight")
	assert.Error(t, err)
}

func TestTimeRange_Cutoff(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cutoff, limited := TimeRangeWeek.Cutoff(now)
	assert.True(t, limited)
	assert.Equal(t, now.AddDate(0, 0, -7), cutoff)

	cutoff, limited = TimeRangeMonth.Cutoff(now)
	assert.True(t, limited)
	assert.Equal(t, now.AddDate(0, -1, 0), cutoff)

	_, limited = TimeRangeAll.Cutoff(now)
	assert.False(t, limited)
}

func TestAnalyzer_ExerciseProgress(t *testing.T) {
	repo := NewMockEntriesRepo()
	analyzer := NewAnalyzer(repo)
	ctx := context.Background()

	now := time.Now()
	repo.Entries = []Entry{
		{
			ID:       "e2",
			Exercise: "Bench Press",
			Date:     now,
			CompletedSets: []Set{
				{Reps: 10, Weight: 50},
				{Reps: 8, Weight: 55},
			},
		},
		{
			ID:       "e1",
			Exercise: "Bench Press",
			Date:     now.AddDate(0, 0, -2),
			CompletedSets: []Set{
				{Reps: 12, Weight: 40},
			},
		},
		// other exercise, must not show up
		{
			ID:            "e3",
			Exercise:      "Squats",
			Date:          now,
			CompletedSets: []Set{{Reps: 5, Weight: 100}},
		},
		// nothing completed, produces no point
		{
			ID:       "e4",
			Exercise: "Bench Press",
			Date:     now,
		},
	}

	points, err := analyzer.ExerciseProgress(ctx, "Bench Press", TimeRangeMonth)
	require.NoError(t, err)
	require.Len(t, points, 2)

	// sorted by date ascending
	assert.True(t, points[0].Date.Before(points[1].Date))

	assert.InDelta(t, 40, points[0].MaxWeight, 0.001)
	assert.InDelta(t, 40, points[0].AvgWeight, 0.001)
	assert.InDelta(t, 480, points[0].Volume, 0.001)

	assert.InDelta(t, 55, points[1].MaxWeight, 0.001)
	assert.InDelta(t, 52.5, points[1].AvgWeight, 0.001)
	// 10*50 + 8*55
	assert.InDelta(t, 940, points[1].Volume, 0.001)
}

func TestAnalyzer_ExerciseProgress_TimeWindow(t *testing.T) {
	repo := NewMockEntriesRepo()
	analyzer := NewAnalyzer(repo)
	ctx := context.Background()

	now := time.Now()
	repo.Entries = []Entry{
		{
			ID:            "recent",
			Exercise:      "Deadlifts",
			Date:          now.AddDate(0, 0, -2),
			CompletedSets: []Set{{Reps: 5, Weight: 120}},
		},
		{
			ID:            "old",
			Exercise:      "Deadlifts",
			Date:          now.AddDate(0, 0, -40),
			CompletedSets: []Set{{Reps: 5, Weight: 100}},
		},
	}

	points, err := analyzer.ExerciseProgress(ctx, "Deadlifts", TimeRangeWeek)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 120, points[0].MaxWeight, 0.001)

	points, err = analyzer.ExerciseProgress(ctx, "Deadlifts", TimeRangeMonth)
	require.NoError(t, err)
	assert.Len(t, points, 1)

	points, err = analyzer.ExerciseProgress(ctx, "Deadlifts", TimeRangeAll)
	require.NoError(t, err)
	assert.Len(t, points, 2)
}

func TestAnalyzer_HistoryPerDay(t *testing.T) {
	repo := NewMockEntriesRepo()
	analyzer := NewAnalyzer(repo)
	ctx := context.Background()

	day1 := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	repo.Entries = []Entry{
		{ID: "a", Exercise: "Bench Press", Date: day1.Add(9 * time.Hour)},
		{ID: "b", Exercise: "Squats", Date: day1.Add(10 * time.Hour)},
		{ID: "c", Exercise: "Deadlifts", Date: day1.AddDate(0, 0, 1).Add(18 * time.Hour)},
	}

	history, err := analyzer.HistoryPerDay(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Len(t, history[day1], 2)
	assert.Len(t, history[day1.AddDate(0, 0, 1)], 1)
}

// An entry logged at 01:00 in a +02:00 zone belongs to that zone's
// calendar day, even though in UTC it still is the previous day.
func TestAnalyzer_HistoryPerDay_LocalCalendarDay(t *testing.T) {
	repo := NewMockEntriesRepo()
	analyzer := NewAnalyzer(repo)
	ctx := context.Background()

	zone := time.FixedZone("UTC+2", 2*60*60)
	repo.Entries = []Entry{
		{ID: "a", Exercise: "Bench Press", Date: time.Date(2025, 6, 10, 1, 0, 0, 0, zone)},
	}

	history, err := analyzer.HistoryPerDay(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	for day := range history {
		assert.True(t, day.Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, zone)))
	}
}

func TestAnalyzer_Totals(t *testing.T) {
	repo := NewMockEntriesRepo()
	analyzer := NewAnalyzer(repo)
	ctx := context.Background()

	totals, err := analyzer.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, totals.Entries)
	assert.Equal(t, 0, totals.Sets)

	repo.Entries = []Entry{
		{ID: "a", Exercise: "Bench Press", CompletedSets: []Set{{Reps: 10, Weight: 50}, {Reps: 8, Weight: 55}}},
		{ID: "b", Exercise: "Squats", CompletedSets: []Set{{Reps: 5, Weight: 100}}},
		{ID: "c", Exercise: "Deadlifts"},
	}

	totals, err = analyzer.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, totals.Entries)
	assert.Equal(t, 3, totals.Sets)
}

func TestAnalyzer_LoggedExercises(t *testing.T) {
	repo := NewMockEntriesRepo()
	analyzer := NewAnalyzer(repo)
	ctx := context.Background()

	repo.Entries = []Entry{
		{ID: "a", Exercise: "Squats", MuscleGroup: "Legs"},
		{ID: "b", Exercise: "Bench Press", MuscleGroup: "Chest"},
		{ID: "c", Exercise: "Squats", MuscleGroup: "Legs"},
		{ID: "d", Exercise: "Dips"},
	}

	logged, err := analyzer.LoggedExercises(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bench Press", "Dips", "Squats"}, logged.Exercises)
	assert.Equal(t, []string{"Chest", "Legs"}, logged.MuscleGroups)
}

func TestAnalyzer_ExercisePercentages(t *testing.T) {
	repo := NewMockEntriesRepo()
	analyzer := NewAnalyzer(repo)
	ctx := context.Background()

	repo.Entries = []Entry{
		{ID: "a", Exercise: "Squats", MuscleGroup: "Legs"},
		{ID: "b", Exercise: "Squats", MuscleGroup: "Legs"},
		{ID: "c", Exercise: "Lunges", MuscleGroup: "Legs"},
		{ID: "d", Exercise: "Bench Press", MuscleGroup: "Chest"},
	}

	shares, err := analyzer.ExercisePercentages(ctx, "Legs")
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.InDelta(t, 66.66, shares["Squats"].Percentage, 0.001)
	assert.InDelta(t, 33.33, shares["Lunges"].Percentage, 0.001)
	assert.Equal(t, "Legs", shares["Squats"].MuscleGroup)
}
