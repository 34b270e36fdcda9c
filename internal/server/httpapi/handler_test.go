package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/entrycounter/internal/common"
	"github.com/dmitrijs2005/entrycounter/internal/logging"
	"github.com/dmitrijs2005/entrycounter/internal/server/config"
	"github.com/dmitrijs2005/entrycounter/internal/server/models"
	"github.com/dmitrijs2005/entrycounter/internal/server/services"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeEntries struct {
	calls   int
	results []*services.AddResult
	err     error
	panic   bool
}

func (f *fakeEntries) Add(ctx context.Context) (*services.AddResult, error) {
	f.calls++
	if f.panic {
		panic("repository exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.results[f.calls-1], nil
}

// ---- helpers ----

func newTestServer(t *testing.T, es EntryAdder) (*HTTPServer, *bytes.Buffer) {
	t.Helper()
	var cfg config.Config
	cfg.LoadDefaults()

	var buf bytes.Buffer
	return NewHTTPServer(&cfg, logging.NewJSONLogger(&buf, slog.LevelDebug), es), &buf
}

func do(t *testing.T, s *HTTPServer, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func result(id, count int64, data string) *services.AddResult {
	return &services.AddResult{Entry: &models.Entry{ID: id, Data: data}, Count: count}
}

// ---- tests ----

func TestAddEntry_Success(t *testing.T) {
	es := &fakeEntries{results: []*services.AddResult{result(1, 1, "6c1d3f52-9a5e-4c4e-8a0c-5a2b7f3e9d11")}}
	s, logs := newTestServer(t, es)

	rec := do(t, s, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Entry added successfully with random data.", body["message"])
	assert.Equal(t, "6c1d3f52-9a5e-4c4e-8a0c-5a2b7f3e9d11", body["data"])
	assert.Equal(t, float64(1), body["count"])
	assert.Len(t, body, 3)

	assert.Contains(t, logs.String(), "Handling request for '/' endpoint.")
	assert.Contains(t, logs.String(), "New entry added.")
}

func TestAddEntry_CountsAreMonotonic(t *testing.T) {
	es := &fakeEntries{results: []*services.AddResult{
		result(6, 6, "a"), result(7, 7, "b"),
	}}
	s, _ := newTestServer(t, es)

	var counts []float64
	for i := 0; i < 2; i++ {
		rec := do(t, s, http.MethodGet, "/")
		require.Equal(t, http.StatusOK, rec.Code)
		var body addEntryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		counts = append(counts, float64(body.Count))
	}
	assert.Equal(t, []float64{6, 7}, counts)
}

func TestAddEntry_StorageErrorIsHidden(t *testing.T) {
	cause := &pgconn.PgError{Code: "08006", Message: "connection failure at 10.0.0.5"}
	es := &fakeEntries{err: common.NewStorageError("insert entry", cause)}
	s, logs := newTestServer(t, es)

	rec := do(t, s, http.MethodGet, "/")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var p Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, http.StatusInternalServerError, p.Status)
	assert.Equal(t, problemType, p.Type)
	assert.Equal(t, problemTitle, p.Title)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.NotContains(t, rec.Body.String(), "08006")

	assert.Contains(t, logs.String(), "An error occurred while handling the request.")
	assert.Contains(t, logs.String(), `"sqlstate":"08006"`)
}

func TestAddEntry_UnreachableBackendThenStatusStillUp(t *testing.T) {
	es := &fakeEntries{err: common.NewStorageError("add entry", errors.New("dial tcp: connection refused"))}
	s, _ := newTestServer(t, es)

	rec := do(t, s, http.MethodGet, "/")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(t, s, http.MethodGet, "/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"UP"}`, rec.Body.String())
}

func TestStatus_NeverTouchesStorage(t *testing.T) {
	es := &fakeEntries{err: errors.New("should not be called")}
	s, logs := newTestServer(t, es)

	for i := 0; i < 3; i++ {
		rec := do(t, s, http.MethodGet, "/status")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"UP"}`, rec.Body.String())
	}
	assert.Equal(t, 0, es.calls)
	assert.Contains(t, logs.String(), "Handling request for '/status' endpoint.")
}

func TestRoutes_UnknownPathAndMethod(t *testing.T) {
	s, _ := newTestServer(t, &fakeEntries{})

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/nope").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s, http.MethodPost, "/").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s, http.MethodDelete, "/status").Code)
}

func TestRoutes_Table(t *testing.T) {
	s, _ := newTestServer(t, &fakeEntries{})

	var got []string
	for _, rt := range s.routes() {
		got = append(got, rt.method+" "+rt.path)
	}
	assert.Equal(t, []string{"GET /", "GET /status"}, got)
}

func TestRecovery_PanicBecomesProblem(t *testing.T) {
	s, logs := newTestServer(t, &fakeEntries{panic: true})

	rec := do(t, s, http.MethodGet, "/")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.NotContains(t, rec.Body.String(), "exploded")

	out := logs.String()
	assert.Contains(t, out, `"level":"CRITICAL"`)
	assert.True(t, strings.Contains(out, `"status":500`), "access log must record the 500")
}
