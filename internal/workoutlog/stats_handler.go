package workoutlog

import (
	"encoding/json"
	"net/http"

	"github.com/3reps/liftlog/internal/telemetry/tracing"
	"github.com/3reps/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// StatsHandler serves the derived analytics views. Nothing here is
// persisted, everything is computed from the log on demand.
type StatsHandler struct {
	analyzer *Analyzer
}

func NewStatsHandler(analyzer *Analyzer) *StatsHandler {
	return &StatsHandler{
		analyzer: analyzer,
	}
}

func (handler *StatsHandler) HandleTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.totals")
	defer span.End()

	totals, err := handler.analyzer.Totals(ctx)
	if err != nil {
		log.Errorf("failed to get totals: %s", err)
		http.Error(w, "failed to get totals", http.StatusInternalServerError)
		return
	}

	totalsJson, err := json.Marshal(totals)
	if err != nil {
		log.Errorf("failed to marshal totals: %s", err)
		http.Error(w, "failed to marshal totals", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, totalsJson, http.StatusOK)
}

func (handler *StatsHandler) HandleLoggedExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.loggedExercises")
	defer span.End()

	logged, err := handler.analyzer.LoggedExercises(ctx)
	if err != nil {
		log.Errorf("failed to get logged exercises: %s", err)
		http.Error(w, "failed to get logged exercises", http.StatusInternalServerError)
		return
	}

	loggedJson, err := json.Marshal(logged)
	if err != nil {
		log.Errorf("failed to marshal logged exercises: %s", err)
		http.Error(w, "failed to marshal logged exercises", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, loggedJson, http.StatusOK)
}

func (handler *StatsHandler) HandleExerciseProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.exerciseProgress")
	defer span.End()

	vars := mux.Vars(r)
	exercise := vars["name"]
	if exercise == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}

	timeRange, err := ParseTimeRange(r.URL.Query().Get("range"))
	if err != nil {
		log.Tracef("exercise progress, parse range param: %s", err)
		http.Error(w, "invalid range parameter", http.StatusBadRequest)
		return
	}

	points, err := handler.analyzer.ExerciseProgress(ctx, exercise, timeRange)
	if err != nil {
		log.Errorf("failed to get progress for [%s]: %s", exercise, err)
		http.Error(w, "failed to get exercise progress", http.StatusInternalServerError)
		return
	}

	pointsJson, err := json.Marshal(points)
	if err != nil {
		log.Errorf("failed to marshal progress points: %s", err)
		http.Error(w, "failed to marshal progress points", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, pointsJson, http.StatusOK)
}

func (handler *StatsHandler) HandleExercisePercentages(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.exercisePercentages")
	defer span.End()

	vars := mux.Vars(r)
	muscleGroup := vars["mgroup"]
	if muscleGroup == "" {
		http.Error(w, "error, muscle group empty", http.StatusBadRequest)
		return
	}

	percentages, err := handler.analyzer.ExercisePercentages(ctx, muscleGroup)
	if err != nil {
		log.Errorf("failed to get exercises percentages: %s", err)
		http.Error(w, "failed to get exercises percentages", http.StatusInternalServerError)
		return
	}

	percentagesJson, err := json.Marshal(percentages)
	if err != nil {
		log.Errorf("failed to marshal exercises percentages: %s", err)
		http.Error(w, "failed to marshal exercises percentages", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, percentagesJson, http.StatusOK)
}
