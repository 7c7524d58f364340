package workoutlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/3reps/liftlog/internal/docstore"
	"github.com/3reps/liftlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const completedExercisesDoc = "completedExercises"

var ErrEntryNotFound = errors.New("completed exercise entry not found")

type documentStore interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
}

// Repo persists the workout log as one JSON array document. Every
// mutation loads the whole array, changes it in memory and writes the
// whole array back.
type Repo struct {
	store documentStore
}

func NewRepo(store documentStore) *Repo {
	return &Repo{
		store: store,
	}
}

// List returns all entries, newest first.
func (r *Repo) List(ctx context.Context) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries := r.loadAll(ctx)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

// Append adds one entry to the log. A missing ID is assigned and a zero
// date is set to now.
func (r *Repo) Append(ctx context.Context, entry Entry) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.append")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if entry.ID == "" {
		entry.ID = NewEntryID()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	span.SetAttributes(attribute.String("entry.id", entry.ID))

	entries := append(r.loadAll(ctx), entry)
	if err := r.persist(entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateSets replaces the completed sets of the entry with the given ID.
func (r *Repo) UpdateSets(ctx context.Context, id string, sets []Set) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.updateSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("entry.id", id))

	entries := r.loadAll(ctx)
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		entries[i].CompletedSets = sets
		if err := r.persist(entries); err != nil {
			return nil, err
		}
		return &entries[i], nil
	}
	return nil, ErrEntryNotFound
}

// Delete removes the entry with the given ID. If no entry carries that
// ID and the value parses as a number, it is treated as a position in
// the stored array, for legacy records logged before IDs existed.
func (r *Repo) Delete(ctx context.Context, idOrIndex string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("entry.id", idOrIndex))

	entries := r.loadAll(ctx)
	for i := range entries {
		if entries[i].ID == idOrIndex {
			return r.persist(append(entries[:i], entries[i+1:]...))
		}
	}

	if index, convErr := strconv.Atoi(idOrIndex); convErr == nil {
		if index < 0 || index >= len(entries) {
			return ErrEntryNotFound
		}
		return r.persist(append(entries[:index], entries[index+1:]...))
	}

	return ErrEntryNotFound
}

// loadAll reads the whole log. A missing or unreadable document degrades
// to an empty log. Legacy entries lacking an ID get one assigned, and
// the corrected array is persisted back right away, so the backfill runs
// at most once per legacy record.
func (r *Repo) loadAll(ctx context.Context) []Entry {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.workoutlog.loadAll")
	defer span.End()

	data, err := r.store.Read(completedExercisesDoc)
	if err != nil {
		if !errors.Is(err, docstore.ErrDocumentNotFound) {
			log.Errorf("read %s document: %s", completedExercisesDoc, err)
		}
		return []Entry{}
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Errorf("parse %s document: %s", completedExercisesDoc, err)
		return []Entry{}
	}

	backfilled := 0
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = NewEntryID()
			backfilled++
		}
	}
	if backfilled > 0 {
		log.Debugf("backfilled ids for %d legacy entries", backfilled)
		if err := r.persist(entries); err != nil {
			log.Errorf("persist backfilled entry ids: %s", err)
		}
	}

	return entries
}

func (r *Repo) persist(entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal %s document: %w", completedExercisesDoc, err)
	}
	if err := r.store.Write(completedExercisesDoc, data); err != nil {
		return fmt.Errorf("write %s document: %w", completedExercisesDoc, err)
	}
	return nil
}
