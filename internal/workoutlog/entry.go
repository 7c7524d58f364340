package workoutlog

import (
	"math/rand"
	"strconv"
	"time"
)

// Set is one performed unit of an exercise.
type Set struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// Entry is one logged performance of an exercise, with its sets.
// MuscleGroup is a snapshot taken at logging time and is kept as-is
// even if the exercise later disappears from the catalog.
type Entry struct {
	ID            string    `json:"id,omitempty"`
	Exercise      string    `json:"exercise"`
	PlannedSets   int       `json:"plannedSets"`
	CompletedSets []Set     `json:"completedSets"`
	Date          time.Time `json:"date"`
	MuscleGroup   string    `json:"muscleGroup,omitempty"`
}

// NewEntryID builds an identifier from the current millisecond timestamp
// and a random suffix, both base36. Uniqueness is probabilistic, which is
// fine for single-device, low-frequency writes.
func NewEntryID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) +
		strconv.FormatInt(rand.Int63(), 36)
}
