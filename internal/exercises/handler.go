package exercises

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/3reps/liftlog/internal/instrumentation"
	"github.com/3reps/liftlog/internal/telemetry/tracing"
	"github.com/3reps/liftlog/pkg"

	"github.com/coocood/freecache"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const catalogCacheExpireSeconds = 5 * 60

var catalogCacheKey = []byte("catalog::all")

type SaveExerciseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MuscleGroup string `json:"muscleGroup"`
}

type SaveExerciseResponse struct {
	Saved string `json:"saved"`
}

type DeleteExerciseResponse struct {
	Deleted string `json:"deleted"`
}

type Handler struct {
	catalog *Catalog
	repo    customRepo
	cache   *freecache.Cache
	instr   *instrumentation.Instrumentation
}

func NewHandler(
	catalog *Catalog,
	repo customRepo,
	cache *freecache.Cache,
	instr *instrumentation.Instrumentation,
) *Handler {
	return &Handler{
		catalog: catalog,
		repo:    repo,
		cache:   cache,
		instr:   instr,
	}
}

// HandleList returns the visible merged catalog. The marshaled response
// is cached until the next custom exercise write.
func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	if cached, err := handler.cache.Get(catalogCacheKey); err == nil {
		log.Tracef("serving merged catalog from cache, %d bytes", len(cached))
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cached, http.StatusOK)
		return
	}

	catalogJson, err := json.Marshal(handler.catalog.All(ctx))
	if err != nil {
		log.Errorf("failed to marshal merged catalog: %s", err)
		http.Error(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}

	if err := handler.cache.Set(catalogCacheKey, catalogJson, catalogCacheExpireSeconds); err != nil {
		log.Warnf("failed to cache merged catalog: %s", err)
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, catalogJson, http.StatusOK)
}

func (handler *Handler) HandleGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.groups")
	defer span.End()

	groupsJson, err := json.Marshal(handler.catalog.Groups(ctx))
	if err != nil {
		log.Errorf("failed to marshal exercise groups: %s", err)
		http.Error(w, "failed to get exercise groups", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, groupsJson, http.StatusOK)
}

func (handler *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.search")
	defer span.End()

	found := handler.catalog.Search(ctx, r.URL.Query().Get("q"))
	foundJson, err := json.Marshal(found)
	if err != nil {
		log.Errorf("failed to marshal search result: %s", err)
		http.Error(w, "failed to search exercises", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, foundJson, http.StatusOK)
}

func (handler *Handler) HandleListCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.listCustom")
	defer span.End()

	customJson, err := json.Marshal(handler.repo.GetCustom(ctx))
	if err != nil {
		log.Errorf("failed to marshal custom exercises: %s", err)
		http.Error(w, "failed to get custom exercises", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, customJson, http.StatusOK)
}

func (handler *Handler) HandleListDeleted(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.listDeleted")
	defer span.End()

	deletedJson, err := json.Marshal(handler.repo.GetDeleted(ctx))
	if err != nil {
		log.Errorf("failed to marshal deleted custom exercises: %s", err)
		http.Error(w, "failed to get deleted custom exercises", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, deletedJson, http.StatusOK)
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.save")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req SaveExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("save custom exercise, unmarshal json params: %s", err)
		http.Error(w, "save custom exercise failed", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.MuscleGroup = strings.TrimSpace(req.MuscleGroup)
	if req.Name == "" || req.Description == "" || req.MuscleGroup == "" {
		http.Error(w, "error, name, description or muscle group empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.SaveCustom(ctx, req.Name, req.Description, req.MuscleGroup); err != nil {
		log.Errorf("failed to save custom exercise [%s]: %s", req.Name, err)
		http.Error(w, "error, failed to save custom exercise", http.StatusInternalServerError)
		return
	}

	handler.cache.Del(catalogCacheKey)
	handler.instr.CounterCustomExercisesSaved.Inc()

	respJson, err := json.Marshal(SaveExerciseResponse{Saved: req.Name})
	if err != nil {
		log.Errorf("failed to marshal save response: %s", err)
		http.Error(w, "failed to marshal save response", http.StatusInternalServerError)
		return
	}

	log.Debugf("custom exercise saved: [%s] [%s]", req.MuscleGroup, req.Name)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	vars := mux.Vars(r)
	name := vars["name"]
	if name == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.DeleteCustom(ctx, name); err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			log.Debugf("custom exercise [%s] not found", name)
			http.Error(w, "custom exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete custom exercise [%s]: %s", name, err)
		http.Error(w, "custom exercise not deleted", http.StatusInternalServerError)
		return
	}

	handler.cache.Del(catalogCacheKey)
	handler.instr.CounterCustomExercisesDeleted.Inc()

	respJson, err := json.Marshal(DeleteExerciseResponse{Deleted: name})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(respJson))
}
