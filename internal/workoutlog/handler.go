package workoutlog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/3reps/liftlog/internal/instrumentation"
	"github.com/3reps/liftlog/internal/telemetry/tracing"
	"github.com/3reps/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type entriesRepo interface {
	List(ctx context.Context) ([]Entry, error)
	Append(ctx context.Context, entry Entry) (*Entry, error)
	UpdateSets(ctx context.Context, id string, sets []Set) (*Entry, error)
	Delete(ctx context.Context, idOrIndex string) error
}

type ListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

type UpdateSetsRequest struct {
	CompletedSets []Set `json:"completedSets"`
}

type DeleteEntryResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	repo     entriesRepo
	analyzer *Analyzer
	instr    *instrumentation.Instrumentation
}

func NewHandler(repo entriesRepo, instr *instrumentation.Instrumentation) *Handler {
	return &Handler{
		repo:     repo,
		analyzer: NewAnalyzer(repo),
		instr:    instr,
	}
}

func (handler *Handler) HandleAppend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.append")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Tracef("append entry, unmarshal json params: %s", err)
		http.Error(w, "append entry failed", http.StatusBadRequest)
		return
	}

	if entry.Exercise == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}

	addedEntry, err := handler.repo.Append(ctx, entry)
	if err != nil {
		log.Errorf("failed to append entry [%s]: %s", entry.Exercise, err)
		http.Error(w, "error, failed to append entry", http.StatusInternalServerError)
		return
	}

	handler.instr.CounterEntriesLogged.Inc()

	addedEntryJson, err := json.Marshal(addedEntry)
	if err != nil {
		log.Errorf("failed to marshal added entry: %s", err)
		http.Error(w, "error, failed to append entry", http.StatusInternalServerError)
		return
	}

	log.Debugf("new entry added: %s", addedEntryJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedEntryJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.list")
	defer span.End()

	entries, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list entries error: %s", err)
		http.Error(w, "failed to get entries", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{
		Entries: entries,
		Total:   len(entries),
	})
	if err != nil {
		log.Errorf("marshal entries error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.history")
	defer span.End()

	history, err := handler.analyzer.HistoryPerDay(ctx)
	if err != nil {
		log.Errorf("failed to get history per day: %s", err)
		http.Error(w, "failed to get history", http.StatusInternalServerError)
		return
	}

	historyJson, err := json.Marshal(history)
	if err != nil {
		log.Errorf("failed to marshal history: %s", err)
		http.Error(w, "failed to marshal history", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, historyJson, http.StatusOK)
}

func (handler *Handler) HandleUpdateSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.updateSets")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	var req UpdateSetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update entry, unmarshal json params: %s", err)
		http.Error(w, "update entry failed", http.StatusBadRequest)
		return
	}

	updatedEntry, err := handler.repo.UpdateSets(ctx, id, req.CompletedSets)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			log.Debugf("entry %s not found", id)
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update entry %s: %s", id, err)
		http.Error(w, "error, failed to update entry", http.StatusInternalServerError)
		return
	}

	updatedEntryJson, err := json.Marshal(updatedEntry)
	if err != nil {
		log.Errorf("failed to marshal updated entry: %s", err)
		http.Error(w, "failed to marshal updated entry", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(updatedEntryJson))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.delete")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			log.Debugf("entry %s not found", id)
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete entry %s: %s", id, err)
		http.Error(w, "entry not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteEntryResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
