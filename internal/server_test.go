package internal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/3reps/liftlog/internal/config"
	"github.com/3reps/liftlog/internal/exercises"
	"github.com/3reps/liftlog/internal/workoutlog"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	server, err := NewServer(&config.Config{
		Environment: "test",
		DataPath:    t.TempDir(),
	})
	require.NoError(t, err)
	return server.routerSetup()
}

func doRequest(t *testing.T, router *mux.Router, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_Cors_UnknownOriginRejected(t *testing.T) {
	router := newTestRouter(t)

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// Exercises the whole custom exercise lifecycle through the router:
// create a custom exercise, log a workout against it, delete it, and
// check that the log keeps its muscle group snapshot while the catalog
// hides the tombstone.
func TestServer_CustomExerciseLifecycle(t *testing.T) {
	router := newTestRouter(t)

	saveJson, err := json.Marshal(exercises.SaveExerciseRequest{
		Name:        "Cable Row",
		Description: "Seated rowing pull on the cable machine.",
		MuscleGroup: "Back",
	})
	require.NoError(t, err)
	rec := doRequest(t, router, "POST", "/exercises/custom", saveJson)
	require.Equal(t, http.StatusCreated, rec.Code)

	// the new exercise shows up in the merged catalog, flagged custom
	rec = doRequest(t, router, "GET", "/exercises", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var catalog exercises.Store
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	require.Contains(t, catalog, "Cable Row")
	assert.True(t, catalog["Cable Row"].IsCustom)
	assert.Equal(t, "Back", catalog["Cable Row"].MuscleGroup)

	// log a workout against it
	entryJson, err := json.Marshal(workoutlog.Entry{
		Exercise:    "Cable Row",
		PlannedSets: 3,
		CompletedSets: []workoutlog.Set{
			{Reps: 10, Weight: 45},
		},
		MuscleGroup: "Back",
	})
	require.NoError(t, err)
	rec = doRequest(t, router, "POST", "/log", entryJson)
	require.Equal(t, http.StatusCreated, rec.Code)
	var added workoutlog.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	require.NotEmpty(t, added.ID)

	// the entry lands in today's history bucket
	rec = doRequest(t, router, "GET", "/log/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history map[time.Time][]workoutlog.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	y, m, d := time.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	for day, dayEntries := range history {
		assert.True(t, day.Equal(today))
		require.Len(t, dayEntries, 1)
		assert.Equal(t, "Cable Row", dayEntries[0].Exercise)
	}

	// delete the custom exercise
	rec = doRequest(t, router, "DELETE", "/exercises/custom/Cable Row", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// gone from the catalog, present among the tombstones
	rec = doRequest(t, router, "GET", "/exercises", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	catalog = exercises.Store{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.NotContains(t, catalog, "Cable Row")

	rec = doRequest(t, router, "GET", "/exercises/custom/deleted", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted exercises.Store
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deleted))
	require.Contains(t, deleted, "Cable Row")
	assert.True(t, deleted["Cable Row"].IsDeleted)

	// the logged entry survives with its muscle group snapshot
	rec = doRequest(t, router, "GET", "/log", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listResp workoutlog.ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	require.Equal(t, 1, listResp.Total)
	assert.Equal(t, "Cable Row", listResp.Entries[0].Exercise)
	assert.Equal(t, "Back", listResp.Entries[0].MuscleGroup)
}

func TestServer_WorkoutLogLifecycle(t *testing.T) {
	router := newTestRouter(t)

	entryJson, err := json.Marshal(workoutlog.Entry{
		Exercise:    "Bench Press",
		PlannedSets: 3,
		MuscleGroup: "Chest",
	})
	require.NoError(t, err)
	rec := doRequest(t, router, "POST", "/log", entryJson)
	require.Equal(t, http.StatusCreated, rec.Code)
	var added workoutlog.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))

	// complete some sets
	updateJson, err := json.Marshal(workoutlog.UpdateSetsRequest{
		CompletedSets: []workoutlog.Set{
			{Reps: 10, Weight: 50},
			{Reps: 8, Weight: 55},
		},
	})
	require.NoError(t, err)
	rec = doRequest(t, router, "PUT", "/log/"+added.ID, updateJson)
	require.Equal(t, http.StatusOK, rec.Code)

	// progress reflects the completed sets
	rec = doRequest(t, router, "GET", "/stats/exercise/Bench Press/progress?range=all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var points []workoutlog.ProgressPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	require.Len(t, points, 1)
	assert.InDelta(t, 55, points[0].MaxWeight, 0.001)
	assert.InDelta(t, 940, points[0].Volume, 0.001)

	rec = doRequest(t, router, "GET", "/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var totals workoutlog.Totals
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &totals))
	assert.Equal(t, 1, totals.Entries)
	assert.Equal(t, 2, totals.Sets)

	// and finally delete the entry
	rec = doRequest(t, router, "DELETE", "/log/"+added.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, "GET", "/log", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listResp workoutlog.ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	assert.Equal(t, 0, listResp.Total)
}
