package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
	"github.com/tennisclub/court-admin/pkg/config"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
	"github.com/tennisclub/court-admin/pkg/middleware/requestid"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveUpstream(route, method, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, route+":"+outcome)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(config.BackendConfig{BaseURL: server.URL + "/", Timeout: time.Second, Token: "cfg-token"}, zap.NewNop(), opts...)
}

func TestBlocksListSendsFilter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/admin/blocks/", r.URL.Path)
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("date_range_start"))
		assert.Equal(t, "2024-07-01", r.URL.Query().Get("date_range_end"))
		assert.Equal(t, "1,2", r.URL.Query().Get("court_ids"))
		assert.Equal(t, "Bearer cfg-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(dto.BlockListResponse{Blocks: []models.Block{{ID: 1, BatchID: "b1"}}})
	})

	res, err := c.Blocks().List(context.Background(), models.BlockFilter{
		DateRangeStart: "2024-06-01",
		DateRangeEnd:   "2024-07-01",
		CourtIDs:       []int{1, 2},
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "b1", res.Data[0].BatchID)
}

func TestServerErrorBecomesFailedResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"Konflikt mit bestehender Buchung"}`))
	})

	res, err := c.Blocks().CreateMultiCourt(context.Background(), dto.BlockRequest{CourtIDs: []int{1}})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, "Konflikt mit bestehender Buchung", res.Message("fallback"))
}

func TestErrorFieldOn200IsFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"Ungültige Zeit"}}`))
	})

	res, err := c.Blocks().DeleteBatch(context.Background(), "b1")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Ungültige Zeit", res.Error)
}

func TestSuccessFalseOn200IsFailure(t *testing.T) {
	obs := &recordingObserver{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false}`))
	}, WithObserver(obs))

	res, err := c.Blocks().DeleteBatch(context.Background(), "b1")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, res.Error)
	assert.Equal(t, "Fehler beim Löschen", res.Message("Fehler beim Löschen"))
	assert.Equal(t, []string{"blocks.delete:rejected"}, obs.outcomes)
}

func TestSuccessFalseCarriesMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "message": "Platz ist gebucht"}`))
	})

	res, err := c.Templates().Apply(context.Background(), 4, dto.TemplateApplyRequest{Date: "2030-06-01"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Platz ist gebucht", res.Error)
}

func TestSuccessTrueWithMessageIsSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "message": "ok", "block_count": 2}`))
	})

	res, err := c.Blocks().CreateMultiCourt(context.Background(), dto.BlockRequest{CourtIDs: []int{1, 2}})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Data.BlockCount)
}

func TestEmptyFailureUsesFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	res, err := c.Series().Create(context.Background(), dto.SeriesRequest{})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Fehler beim Erstellen der Serie", res.Message("Fehler beim Erstellen der Serie"))
}

func TestTransportFailureIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	observer := &recordingObserver{}
	c := New(config.BackendConfig{BaseURL: url, Timeout: time.Second}, zap.NewNop(), WithObserver(observer))
	_, err := c.Blocks().DeleteBatch(context.Background(), "b1")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrUpstreamUnavailable)
	assert.Equal(t, []string{"blocks.delete:transport_error"}, observer.outcomes)
}

func TestInvalidJSONIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := c.Reasons().List(context.Background())
	require.Error(t, err)
}

func TestForwardedTokenAndRequestID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
		assert.Equal(t, "req-42", r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`{"reasons":[{"id":1,"name":"Wartung","is_active":true}]}`))
	})

	ctx := WithToken(requestid.WithValue(context.Background(), "req-42"), "session-token")
	res, err := c.Reasons().List(ctx)
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Wartung", res.Data[0].Name)
}

func TestBulkEditBodyIsSparse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/blocks/bulk-edit", r.URL.Path)
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"block_ids":[1,2],"patch":{"sub_reason":""}}`, string(raw))
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})

	empty := ""
	res, err := c.Blocks().BulkEdit(context.Background(), dto.BulkEditRequest{BlockIDs: []int{1, 2}, Patch: dto.BlockPatch{SubReason: &empty}})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestTemplateApplyPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/block-templates/7/apply", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"date":"2024-06-01","details":"","description":""}`, string(raw))
		_, _ = w.Write([]byte(`{"block_count":3}`))
	})

	res, err := c.Templates().Apply(context.Background(), 7, dto.TemplateApplyRequest{Date: "2024-06-01"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Data.BlockCount)
}

func TestSeriesEndpoints(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	})

	ctx := context.Background()
	_, err := c.Series().UpdateFuture(ctx, 3, dto.SeriesUpdateRequest{FromDate: "2024-06-01"})
	require.NoError(t, err)
	_, err = c.Series().Delete(ctx, 3, dto.SeriesDeleteRequest{Option: models.SeriesDeleteAll})
	require.NoError(t, err)
	assert.Equal(t, []string{"PUT /admin/blocks/series/3/future", "DELETE /admin/blocks/series/3"}, paths)
}

func TestAvailabilityAndFavourites(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/courts/availability":
			assert.Equal(t, "2024-06-01", r.URL.Query().Get("date"))
			_, _ = w.Write([]byte(`{"grid":[{"court_number":1,"slots":[{"status":"blocked"}]}]}`))
		case "/members/m-1/favourites":
			_, _ = w.Write([]byte(`{"favourites":[{"id":"m-2","name":"Anna"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()
	grid, err := c.Courts().Availability(ctx, "2024-06-01")
	require.NoError(t, err)
	require.Len(t, grid.Data.Grid, 1)
	assert.Equal(t, models.SlotBlocked, grid.Data.Grid[0].Slots[0].Status)

	favs, err := c.Courts().Favourites(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, []models.Favourite{{ID: "m-2", Name: "Anna"}}, favs.Data)
}
