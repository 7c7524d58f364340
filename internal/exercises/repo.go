package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/3reps/liftlog/internal/docstore"
	"github.com/3reps/liftlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	customExercisesDoc        = "custom_exercises"
	deletedCustomExercisesDoc = "deleted_custom_exercises"
)

var ErrExerciseNotFound = errors.New("custom exercise not found")

type documentStore interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
}

// Repo persists user-created exercises in two documents: the active set
// and the tombstones of deleted ones. Deleting moves an entry from one
// document to the other, and saving clears any tombstone of the same
// name, so a name is never present in both.
type Repo struct {
	store documentStore
}

func NewRepo(store documentStore) *Repo {
	return &Repo{
		store: store,
	}
}

// GetCustom returns the active custom exercises. A missing or unreadable
// document degrades to an empty store, the error is only logged.
func (r *Repo) GetCustom(ctx context.Context) Store {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.getCustom")
	defer span.End()
	return r.readDocument(customExercisesDoc)
}

// GetDeleted returns the tombstoned custom exercises,
// with the same failure behavior as GetCustom.
func (r *Repo) GetDeleted(ctx context.Context) Store {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.getDeleted")
	defer span.End()
	return r.readDocument(deletedCustomExercisesDoc)
}

func (r *Repo) SaveCustom(ctx context.Context, name, description, muscleGroup string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.saveCustom")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))

	custom := r.GetCustom(ctx)
	custom[name] = NewCustomDefinition(description, muscleGroup)
	if err := r.writeDocument(customExercisesDoc, custom); err != nil {
		return err
	}

	// recreating a deleted name revives it, the stale tombstone
	// must not keep shadowing the active entry
	deleted := r.GetDeleted(ctx)
	if _, ok := deleted[name]; ok {
		delete(deleted, name)
		return r.writeDocument(deletedCustomExercisesDoc, deleted)
	}
	return nil
}

// DeleteCustom tombstones a custom exercise: the definition is copied,
// tagged IsDeleted, into the tombstone document, then removed from the
// active one.
func (r *Repo) DeleteCustom(ctx context.Context, name string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.deleteCustom")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))

	custom := r.GetCustom(ctx)
	def, ok := custom[name]
	if !ok {
		return ErrExerciseNotFound
	}

	def.IsDeleted = true
	deleted := r.GetDeleted(ctx)
	deleted[name] = def
	if err := r.writeDocument(deletedCustomExercisesDoc, deleted); err != nil {
		return err
	}

	delete(custom, name)
	return r.writeDocument(customExercisesDoc, custom)
}

// Merged returns builtIn overlaid by the active custom exercises,
// further overlaid by the tombstones. A deleted name that was never
// recreated therefore still appears in the result, carrying IsDeleted.
// Callers that want only usable entries go through Catalog.All.
func (r *Repo) Merged(ctx context.Context, builtIn Store) Store {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.merged")
	defer span.End()

	merged := make(Store, len(builtIn))
	for name, def := range builtIn {
		merged[name] = def
	}
	for name, def := range r.GetCustom(ctx) {
		merged[name] = def
	}
	for name, def := range r.GetDeleted(ctx) {
		merged[name] = def
	}
	return merged
}

func (r *Repo) readDocument(key string) Store {
	data, err := r.store.Read(key)
	if err != nil {
		if !errors.Is(err, docstore.ErrDocumentNotFound) {
			log.Errorf("read %s document: %s", key, err)
		}
		return Store{}
	}

	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		log.Errorf("parse %s document: %s", key, err)
		return Store{}
	}
	if s == nil {
		s = Store{}
	}
	return s
}

func (r *Repo) writeDocument(key string, s Store) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal %s document: %w", key, err)
	}
	if err := r.store.Write(key, data); err != nil {
		return fmt.Errorf("write %s document: %w", key, err)
	}
	return nil
}
