package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tennisclub/court-admin/internal/client"
	"github.com/tennisclub/court-admin/internal/middleware"
	"github.com/tennisclub/court-admin/internal/models"
	"github.com/tennisclub/court-admin/internal/service"
	"github.com/tennisclub/court-admin/internal/store"
	"github.com/tennisclub/court-admin/pkg/config"
	"github.com/tennisclub/court-admin/pkg/storage"
)

const (
	batchA = "11111111-1111-1111-1111-111111111111"
	batchB = "22222222-2222-2222-2222-222222222222"
)

type fakeBackend struct {
	mu       sync.Mutex
	blocks   []models.Block
	requests []string
	bodies   map[string]json.RawMessage
	failing  map[string]bool
	refusing map[string]bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		blocks: []models.Block{
			{ID: 1, BatchID: batchA, CourtID: 1, CourtName: "Platz 1", Date: "2030-06-01", StartTime: "10:00", EndTime: "12:00", ReasonID: 2, ReasonName: "Training"},
			{ID: 2, BatchID: batchA, CourtID: 2, CourtName: "Platz 2", Date: "2030-06-01", StartTime: "10:00", EndTime: "12:00", ReasonID: 2, ReasonName: "Training"},
			{ID: 3, BatchID: batchB, CourtID: 3, CourtName: "Platz 3", Date: "2030-06-02", StartTime: "08:00", EndTime: "09:00", ReasonID: 3, ReasonName: "Pflege"},
		},
		bodies:   map[string]json.RawMessage{},
		failing:  map[string]bool{},
		refusing: map[string]bool{},
	}
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := r.Method + " " + r.URL.Path
	b.requests = append(b.requests, key)
	if r.Body != nil {
		var raw json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err == nil {
			b.bodies[key] = raw
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if b.failing[key] {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"Batch ist gesperrt"}`))
		return
	}
	if b.refusing[key] {
		_, _ = w.Write([]byte(`{"success":false}`))
		return
	}

	switch {
	case key == "GET /api/admin/blocks/":
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"blocks": b.blocks})
	case key == "GET /api/admin/blocks/"+batchA:
		_ = json.NewEncoder(w).Encode(models.BatchDetail{BatchID: batchA, Date: "2030-06-01", StartTime: "10:00:00", EndTime: "12:00:00", ReasonID: 2, CourtIDs: []int{1, 2}})
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/admin/blocks/"):
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	case key == "POST /api/admin/blocks/", key == "PUT /api/admin/blocks/"+batchA:
		_, _ = w.Write([]byte(`{"message":"ok","block_count":2,"batch_id":"` + batchA + `"}`))
	case key == "POST /api/admin/blocks/bulk-edit":
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	case key == "GET /admin/block-reasons":
		_, _ = w.Write([]byte(`{"reasons":[{"id":2,"name":"Training","is_active":true},{"id":9,"name":"Alt","is_active":false}]}`))
	case key == "GET /admin/block-templates":
		_, _ = w.Write([]byte(`{"templates":[{"id":4,"name":"Jugend","courts":[1,2],"start_time":"15:00","end_time":"17:00","reason_id":2,"reason_name":"Training","details":"U12"}]}`))
	case key == "POST /admin/block-templates/4/apply":
		_, _ = w.Write([]byte(`{"message":"ok","block_count":2}`))
	case key == "GET /admin/blocks/series":
		_, _ = w.Write([]byte(`{"series":[]}`))
	case key == "DELETE /admin/blocks/series/7":
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	case key == "GET /courts/availability":
		_, _ = w.Write([]byte(`{"grid":[{"court_number":2,"slots":[]},{"court_number":1,"slots":[]}]}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}
}

func (b *fakeBackend) fail(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failing[key] = true
}

func (b *fakeBackend) refuse(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refusing[key] = true
}

func (b *fakeBackend) body(key string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.bodies[key])
}

func (b *fakeBackend) seen(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.requests {
		if r == key {
			n++
		}
	}
	return n
}

type console struct {
	router   *gin.Engine
	backend  *fakeBackend
	sessions *store.Sessions
	session  string
}

func newConsole(t *testing.T) *console {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := newFakeBackend()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	api := client.New(config.BackendConfig{BaseURL: srv.URL, Timeout: time.Second, Token: "service-token"}, nil)
	cache := service.NewCacheService(nil, nil, time.Minute, nil, false)
	svc, err := service.NewConsole(service.ConsoleDeps{
		Backend:  api,
		Cache:    cache,
		Blocks:   config.BlocksConfig{LookaheadDays: 30, Timezone: "UTC"},
		CacheTTL: time.Minute,
	})
	require.NoError(t, err)
	svc.SetClock(func() time.Time { return time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC) })

	files, err := storage.NewExportStore(t.TempDir())
	require.NoError(t, err)
	exports := service.NewExportService(api.Blocks(), svc.Loader, files, storage.NewSignedURLSigner("secret", time.Hour),
		service.ExportConfig{APIPrefix: "/api/v1"}, nil, nil, nil)

	sessions := store.NewSessions(time.Hour)
	r := gin.New()
	r.Use(middleware.WithResponseMeta())
	public := r.Group("/api/v1")
	protected := r.Group("/api/v1", middleware.UpstreamToken(true), middleware.Session(sessions))
	RegisterRoutes(public, protected, Handlers{
		Blocks:     NewBlockHandler(svc.BlockForm, svc.Loader, svc.BulkDelete),
		Bulk:       NewBulkHandler(svc.BulkDelete, svc.BulkEdit),
		Series:     NewSeriesHandler(svc.Series),
		Templates:  NewTemplateHandler(svc.Templates),
		References: NewReferenceHandler(svc.References),
		Courts:     NewCourtHandler(api.Courts()),
		Exports:    NewExportHandler(exports),
	})

	id, _ := sessions.Get("", middleware.ServiceSubject)
	return &console{router: r, backend: backend, sessions: sessions, session: id}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta struct {
		Toasts []service.Toast   `json:"toasts"`
		Fields map[string]string `json:"fields"`
	} `json:"meta"`
}

func (c *console) do(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, c.session)
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func toastMessages(env envelope) []string {
	out := make([]string, 0, len(env.Meta.Toasts))
	for _, toast := range env.Meta.Toasts {
		out = append(out, toast.Message)
	}
	return out
}

func TestListBlocksRendersBatches(t *testing.T) {
	c := newConsole(t)
	code, env := c.do(t, http.MethodGet, "/blocks", nil)
	require.Equal(t, http.StatusOK, code)

	var view BlockListView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Len(t, view.Blocks, 3)
	require.Len(t, view.Batches, 2)
	assert.Equal(t, "Platz 1, Platz 2", view.Batches[0].Courts)
	assert.True(t, view.Buttons.DeleteDisabled)
}

func TestSelectionDropsUnknownBlocks(t *testing.T) {
	c := newConsole(t)
	c.do(t, http.MethodGet, "/blocks", nil)

	code, env := c.do(t, http.MethodPut, "/blocks/selection", map[string]interface{}{
		"items": []map[string]interface{}{{"id": 1, "batch_id": "forged"}, {"id": 99, "batch_id": batchB}},
	})
	require.Equal(t, http.StatusOK, code)
	var view SelectionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, models.Selection{{ID: 1, BatchID: batchA}}, view.Items)
	assert.Equal(t, "1 Sperrung(en) löschen", view.Buttons.DeleteLabel)
}

func TestBulkDeleteRequiresConfirmation(t *testing.T) {
	c := newConsole(t)
	c.do(t, http.MethodGet, "/blocks", nil)
	c.do(t, http.MethodPut, "/blocks/selection", map[string]interface{}{"select_all": true})

	code, env := c.do(t, http.MethodPost, "/blocks/bulk-delete", map[string]bool{"confirmed": false})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFIRMATION_REQUIRED", env.Error.Code)
	assert.Zero(t, c.backend.seen("DELETE /api/admin/blocks/"+batchA))

	c.backend.fail("DELETE /api/admin/blocks/" + batchB)
	code, env = c.do(t, http.MethodPost, "/blocks/bulk-delete", map[string]bool{"confirmed": true})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, toastMessages(env), "1 Batch(es) erfolgreich gelöscht")
	assert.Contains(t, toastMessages(env), "1 Batch(es) konnten nicht gelöscht werden")
	assert.Equal(t, 1, c.backend.seen("DELETE /api/admin/blocks/"+batchA))

	_, env = c.do(t, http.MethodGet, "/blocks/selection", nil)
	var view SelectionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Empty(t, view.Items)
}

func TestBulkDeleteCountsSuccessFalseAsFailure(t *testing.T) {
	c := newConsole(t)
	c.do(t, http.MethodGet, "/blocks", nil)
	c.do(t, http.MethodPut, "/blocks/selection", map[string]interface{}{"select_all": true})

	c.backend.refuse("DELETE /api/admin/blocks/" + batchA)
	code, env := c.do(t, http.MethodPost, "/blocks/bulk-delete", map[string]bool{"confirmed": true})
	require.Equal(t, http.StatusOK, code)

	var result struct {
		Succeeded     int      `json:"succeeded"`
		Failed        int      `json:"failed"`
		FailedBatches []string `json:"failed_batches"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{batchA}, result.FailedBatches)
	assert.Contains(t, toastMessages(env), "1 Batch(es) konnten nicht gelöscht werden")
	assert.Contains(t, toastMessages(env), "1 Batch(es) erfolgreich gelöscht")
}

func TestSubmitSuccessFalseIsRejected(t *testing.T) {
	c := newConsole(t)
	c.backend.refuse("POST /api/admin/blocks/")
	code, env := c.do(t, http.MethodPost, "/blocks/form/submit", map[string]interface{}{
		"input": map[string]interface{}{
			"court_ids": []int{1}, "date": "2030-06-03", "start_time": "10:00", "end_time": "11:00", "reason_id": 2,
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "UPSTREAM_REJECTED", env.Error.Code)
	assert.Equal(t, []string{"Fehler beim Speichern der Sperrung"}, toastMessages(env))
}

func TestBulkEditEmptyPatch(t *testing.T) {
	c := newConsole(t)
	c.do(t, http.MethodGet, "/blocks", nil)
	c.do(t, http.MethodPut, "/blocks/selection", map[string]interface{}{"select_all": true})

	code, env := c.do(t, http.MethodPost, "/blocks/bulk-edit", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "EMPTY_PATCH", env.Error.Code)
	assert.Zero(t, c.backend.seen("POST /api/admin/blocks/bulk-edit"))

	code, _ = c.do(t, http.MethodPost, "/blocks/bulk-edit", map[string]interface{}{"clear_description": true})
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"block_ids":[1,2,3],"patch":{"description":""}}`, c.backend.body("POST /api/admin/blocks/bulk-edit"))
}

func TestSubmitEditsBatchFromURL(t *testing.T) {
	c := newConsole(t)
	code, env := c.do(t, http.MethodPost, "/blocks/form/submit", map[string]interface{}{
		"input": map[string]interface{}{"court_ids": []int{1, 2}, "date": "2030-06-01", "start_time": "10:00", "end_time": "12:00", "reason_id": 2},
		"mode":  map[string]interface{}{"edit_mode": true, "url_path": "/admin/court-blocking/" + batchA},
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, c.backend.seen("PUT /api/admin/blocks/"+batchA))
	assert.Contains(t, toastMessages(env), "Sperrung erfolgreich aktualisiert")
}

func TestSubmitValidationFieldsInMeta(t *testing.T) {
	c := newConsole(t)
	code, env := c.do(t, http.MethodPost, "/blocks/form/submit", map[string]interface{}{
		"input": map[string]interface{}{"court_ids": []int{1}, "date": "2030-06-01", "start_time": "12:00", "end_time": "10:00", "reason_id": 2},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Endzeit muss nach Startzeit liegen", env.Meta.Fields["end_time"])
	assert.Zero(t, c.backend.seen("POST /api/admin/blocks/"))
}

func TestDeleteBatchConfirmationFlow(t *testing.T) {
	c := newConsole(t)
	code, env := c.do(t, http.MethodDelete, "/blocks/batches/"+batchA, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, env.Error.Message, "Möchten Sie die 2 Sperrungen für Platz 1, Platz 2")

	code, env = c.do(t, http.MethodDelete, "/blocks/batches/"+batchA+"?confirmed=true", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, toastMessages(env), "2 Sperrungen erfolgreich gelöscht")
}

func TestEditViewPopulatesForm(t *testing.T) {
	c := newConsole(t)
	code, env := c.do(t, http.MethodGet, "/blocks/batches/"+batchA, nil)
	require.Equal(t, http.StatusOK, code)
	var view EditView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "10:00", view.Form.StartTime)
	assert.Equal(t, FormModeView{Mode: service.ModeNameEdit, BatchID: batchA}, view.Mode)
}

func TestTemplateApplyPrefilled(t *testing.T) {
	c := newConsole(t)
	code, env := c.do(t, http.MethodGet, "/templates/4/apply", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"date":"2030-06-01"`)

	code, env = c.do(t, http.MethodPost, "/templates/4/apply", map[string]string{"date": "2030-06-03"})
	require.Equal(t, http.StatusCreated, code)
	assert.JSONEq(t, `{"date":"2030-06-03","details":"","description":""}`, c.backend.body("POST /admin/block-templates/4/apply"))
	assert.Contains(t, toastMessages(env), "Vorlage erfolgreich angewendet")
}

func TestTemplateDeleteNeedsConfirmation(t *testing.T) {
	c := newConsole(t)
	code, _ := c.do(t, http.MethodDelete, "/templates/4", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Zero(t, c.backend.seen("DELETE /admin/block-templates/4"))
}

func TestSeriesListEmptyView(t *testing.T) {
	c := newConsole(t)
	code, env := c.do(t, http.MethodGet, "/series", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "Keine wiederkehrenden Serien gefunden.")

	code, _ = c.do(t, http.MethodDelete, "/series/7", map[string]string{"option": "future"})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = c.do(t, http.MethodDelete, "/series/7", map[string]string{"option": "all"})
	assert.Equal(t, http.StatusOK, code)
}

func TestReasonsActiveOnly(t *testing.T) {
	c := newConsole(t)
	_, env := c.do(t, http.MethodGet, "/reasons", nil)
	assert.NotContains(t, string(env.Data), "Alt")
	_, env = c.do(t, http.MethodGet, "/reasons?all=true", nil)
	assert.Contains(t, string(env.Data), "Alt")
}

func TestAllCourtsSorted(t *testing.T) {
	c := newConsole(t)
	code, env := c.do(t, http.MethodGet, "/blocks/courts?date=2030-06-01", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"court_ids":[1,2]}`, string(env.Data))
}

func TestCourtsPassThroughRejection(t *testing.T) {
	c := newConsole(t)
	code, env := c.do(t, http.MethodGet, "/members/m-1/favourites", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "not found", env.Error.Message)
}

func TestExportDownloadViaSignedLink(t *testing.T) {
	c := newConsole(t)
	code, env := c.do(t, http.MethodPost, "/exports", map[string]interface{}{"format": "csv", "date_range_start": "2030-06-01"})
	require.Equal(t, http.StatusCreated, code)
	var result service.ExportResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 3, result.Rows)

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, result.URL, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "Platz 1")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\ufeffDatum;Von;Bis;Platz"))
	assert.Regexp(t, `attachment; filename="blocks_2030-06-01_.*\.csv"`, rec.Header().Get("Content-Disposition"))

	rec = httptest.NewRecorder()
	c.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/exports/forged", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
