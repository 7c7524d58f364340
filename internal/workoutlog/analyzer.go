package workoutlog

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/3reps/liftlog/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// TimeRange limits analytics to a trailing window.
type TimeRange string

const (
	TimeRangeWeek  TimeRange = "week"
	TimeRangeMonth TimeRange = "month"
	TimeRangeAll   TimeRange = "all"
)

// ParseTimeRange maps the query parameter to a TimeRange,
// defaulting to a month when none is given.
func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case TimeRangeWeek, TimeRangeMonth, TimeRangeAll:
		return TimeRange(s), nil
	case "":
		return TimeRangeMonth, nil
	default:
		return "", fmt.Errorf("unknown time range: %s", s)
	}
}

// Cutoff returns the start of the window relative to now.
// The second return value is false for the all-time range.
func (tr TimeRange) Cutoff(now time.Time) (time.Time, bool) {
	switch tr {
	case TimeRangeWeek:
		return now.AddDate(0, 0, -7), true
	case TimeRangeMonth:
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}

type logRepo interface {
	List(ctx context.Context) ([]Entry, error)
}

// ProgressPoint is one charted data point for an exercise:
// the heaviest set, the average weight and the total volume
// of one logged entry.
type ProgressPoint struct {
	Date      time.Time `json:"date"`
	MaxWeight float64   `json:"maxWeight"`
	AvgWeight float64   `json:"avgWeight"`
	Volume    float64   `json:"volume"`
}

type Totals struct {
	Entries int `json:"entries"`
	Sets    int `json:"sets"`
}

type LoggedExercises struct {
	Exercises    []string `json:"exercises"`
	MuscleGroups []string `json:"muscleGroups"`
}

type ExerciseShare struct {
	MuscleGroup string  `json:"muscleGroup"`
	Percentage  float64 `json:"percentage"`
}

type Analyzer struct {
	repo logRepo
}

func NewAnalyzer(repo logRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// ExerciseProgress returns the chart points for one exercise within the
// given time range, sorted by date ascending. Entries without any
// completed set produce no point.
func (a *Analyzer) ExerciseProgress(
	ctx context.Context,
	exercise string,
	timeRange TimeRange,
) (_ []ProgressPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workoutlog.exerciseProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise", exercise))
	span.SetAttributes(attribute.String("time_range", string(timeRange)))

	entries, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	cutoff, limited := timeRange.Cutoff(time.Now())

	points := make([]ProgressPoint, 0)
	for _, entry := range entries {
		if entry.Exercise != exercise {
			continue
		}
		if limited && entry.Date.Before(cutoff) {
			continue
		}

		maxWeight := math.Inf(-1)
		var totalWeight, volume float64
		for _, set := range entry.CompletedSets {
			maxWeight = math.Max(maxWeight, set.Weight)
			totalWeight += set.Weight
			volume += float64(set.Reps) * set.Weight
		}
		if math.IsInf(maxWeight, 0) || math.IsNaN(maxWeight) {
			continue
		}

		points = append(points, ProgressPoint{
			Date:      entry.Date,
			MaxWeight: maxWeight,
			AvgWeight: totalWeight / float64(len(entry.CompletedSets)),
			Volume:    volume,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return points, nil
}

// HistoryPerDay groups the whole log per calendar day.
func (a *Analyzer) HistoryPerDay(ctx context.Context) (_ map[time.Time][]Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workoutlog.historyPerDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	day2entries := make(map[time.Time][]Entry)
	for _, entry := range entries {
		// calendar day in the entry's own zone, not a UTC epoch day
		y, m, d := entry.Date.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, entry.Date.Location())
		day2entries[day] = append(day2entries[day], entry)
	}
	return day2entries, nil
}

func (a *Analyzer) Totals(ctx context.Context) (_ *Totals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workoutlog.totals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	totals := &Totals{
		Entries: len(entries),
	}
	for _, entry := range entries {
		totals.Sets += len(entry.CompletedSets)
	}
	return totals, nil
}

// LoggedExercises returns the distinct exercise names and muscle groups
// present in the log, sorted.
func (a *Analyzer) LoggedExercises(ctx context.Context) (_ *LoggedExercises, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workoutlog.loggedExercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	exerciseSet := make(map[string]struct{})
	groupSet := make(map[string]struct{})
	for _, entry := range entries {
		exerciseSet[entry.Exercise] = struct{}{}
		if entry.MuscleGroup != "" {
			groupSet[entry.MuscleGroup] = struct{}{}
		}
	}

	logged := &LoggedExercises{
		Exercises:    make([]string, 0, len(exerciseSet)),
		MuscleGroups: make([]string, 0, len(groupSet)),
	}
	for name := range exerciseSet {
		logged.Exercises = append(logged.Exercises, name)
	}
	for group := range groupSet {
		logged.MuscleGroups = append(logged.MuscleGroups, group)
	}
	sort.Strings(logged.Exercises)
	sort.Strings(logged.MuscleGroups)

	return logged, nil
}

// ExercisePercentages returns, for one muscle group, the share of logged
// entries per exercise name.
func (a *Analyzer) ExercisePercentages(
	ctx context.Context,
	muscleGroup string,
) (_ map[string]ExerciseShare, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workoutlog.exercisePercentages")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("muscle_group", muscleGroup))

	entries, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	exercise2count := make(map[string]int)
	total := 0
	for _, entry := range entries {
		if entry.MuscleGroup != muscleGroup {
			continue
		}
		exercise2count[entry.Exercise]++
		total++
	}

	exercise2share := make(map[string]ExerciseShare)
	for exercise, count := range exercise2count {
		p := float64(count) / float64(total) * 100
		// leave only 2 decimals
		p = float64(int(p*100)) / 100
		exercise2share[exercise] = ExerciseShare{
			MuscleGroup: muscleGroup,
			Percentage:  p,
		}
	}

	return exercise2share, nil
}
