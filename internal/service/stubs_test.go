package service

import (
	"context"
	"sync"

	"github.com/tennisclub/court-admin/internal/client"
	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
	"github.com/tennisclub/court-admin/internal/store"
)

type blockClientStub struct {
	mu sync.Mutex

	blocks      []models.Block
	listErr     error
	detail      models.BatchDetail
	failDelete  map[string]string
	deleteErr   map[string]error
	mutationErr error
	rejectWith  string

	created   []dto.BlockRequest
	updated   map[string]dto.BlockRequest
	deleted   []string
	bulkEdits []dto.BulkEditRequest
	filters   []models.BlockFilter
}

func newBlockClientStub() *blockClientStub {
	return &blockClientStub{updated: map[string]dto.BlockRequest{}, failDelete: map[string]string{}, deleteErr: map[string]error{}}
}

func (s *blockClientStub) mutation() (client.Result[dto.BlockMutationResponse], error) {
	if s.mutationErr != nil {
		return client.Result[dto.BlockMutationResponse]{}, s.mutationErr
	}
	if s.rejectWith != "" {
		return client.Result[dto.BlockMutationResponse]{Success: false, Error: s.rejectWith, Status: 409}, nil
	}
	return client.Result[dto.BlockMutationResponse]{Success: true, Data: dto.BlockMutationResponse{BlockCount: 2}}, nil
}

func (s *blockClientStub) List(ctx context.Context, filter models.BlockFilter) (client.Result[[]models.Block], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = append(s.filters, filter)
	if s.listErr != nil {
		return client.Result[[]models.Block]{}, s.listErr
	}
	return client.Result[[]models.Block]{Success: true, Data: append([]models.Block{}, s.blocks...)}, nil
}

func (s *blockClientStub) GetBatch(ctx context.Context, batchID string) (client.Result[models.BatchDetail], error) {
	return client.Result[models.BatchDetail]{Success: true, Data: s.detail}, nil
}

func (s *blockClientStub) CreateMultiCourt(ctx context.Context, req dto.BlockRequest) (client.Result[dto.BlockMutationResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, req)
	return s.mutation()
}

func (s *blockClientStub) UpdateBatch(ctx context.Context, batchID string, req dto.BlockRequest) (client.Result[dto.BlockMutationResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated[batchID] = req
	return s.mutation()
}

func (s *blockClientStub) DeleteBatch(ctx context.Context, batchID string) (client.Result[dto.BlockMutationResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, batchID)
	if err := s.deleteErr[batchID]; err != nil {
		return client.Result[dto.BlockMutationResponse]{}, err
	}
	if msg, ok := s.failDelete[batchID]; ok {
		return client.Result[dto.BlockMutationResponse]{Success: false, Error: msg}, nil
	}
	return client.Result[dto.BlockMutationResponse]{Success: true}, nil
}

func (s *blockClientStub) BulkEdit(ctx context.Context, req dto.BulkEditRequest) (client.Result[dto.BlockMutationResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bulkEdits = append(s.bulkEdits, req)
	return s.mutation()
}

type reloaderStub struct {
	calls int
	err   error
}

func (r *reloaderStub) Reload(ctx context.Context, scope Scope) error {
	r.calls++
	return r.err
}

type seriesClientStub struct {
	series   []models.Series
	created  []dto.SeriesRequest
	updated  []dto.SeriesUpdateRequest
	future   []dto.SeriesUpdateRequest
	deleted  []dto.SeriesDeleteRequest
	rejectBy string
}

func (s *seriesClientStub) result() (client.Result[dto.SeriesMutationResponse], error) {
	if s.rejectBy != "" {
		return client.Result[dto.SeriesMutationResponse]{Error: s.rejectBy}, nil
	}
	return client.Result[dto.SeriesMutationResponse]{Success: true, Data: dto.SeriesMutationResponse{BlocksCreated: 4}}, nil
}

func (s *seriesClientStub) List(ctx context.Context) (client.Result[[]models.Series], error) {
	return client.Result[[]models.Series]{Success: true, Data: s.series}, nil
}

func (s *seriesClientStub) Create(ctx context.Context, req dto.SeriesRequest) (client.Result[dto.SeriesMutationResponse], error) {
	s.created = append(s.created, req)
	return s.result()
}

func (s *seriesClientStub) Update(ctx context.Context, id int, req dto.SeriesUpdateRequest) (client.Result[dto.SeriesMutationResponse], error) {
	s.updated = append(s.updated, req)
	return s.result()
}

func (s *seriesClientStub) UpdateFuture(ctx context.Context, id int, req dto.SeriesUpdateRequest) (client.Result[dto.SeriesMutationResponse], error) {
	s.future = append(s.future, req)
	return s.result()
}

func (s *seriesClientStub) Delete(ctx context.Context, id int, req dto.SeriesDeleteRequest) (client.Result[dto.SeriesMutationResponse], error) {
	s.deleted = append(s.deleted, req)
	return s.result()
}

type templateClientStub struct {
	templates []models.Template
	listCalls int
	created   []dto.TemplateRequest
	deleted   []int
	applied   []dto.TemplateApplyRequest
}

func (s *templateClientStub) List(ctx context.Context) (client.Result[[]models.Template], error) {
	s.listCalls++
	return client.Result[[]models.Template]{Success: true, Data: s.templates}, nil
}

func (s *templateClientStub) Create(ctx context.Context, req dto.TemplateRequest) (client.Result[dto.TemplateMutationResponse], error) {
	s.created = append(s.created, req)
	return client.Result[dto.TemplateMutationResponse]{Success: true, Data: dto.TemplateMutationResponse{ID: 9}}, nil
}

func (s *templateClientStub) Delete(ctx context.Context, id int) (client.Result[dto.TemplateMutationResponse], error) {
	s.deleted = append(s.deleted, id)
	return client.Result[dto.TemplateMutationResponse]{Success: true}, nil
}

func (s *templateClientStub) Apply(ctx context.Context, id int, req dto.TemplateApplyRequest) (client.Result[dto.BlockMutationResponse], error) {
	s.applied = append(s.applied, req)
	return client.Result[dto.BlockMutationResponse]{Success: true, Data: dto.BlockMutationResponse{BlockCount: 3}}, nil
}

type reasonClientStub struct {
	reasons []models.Reason
	calls   int
}

func (s *reasonClientStub) List(ctx context.Context) (client.Result[[]models.Reason], error) {
	s.calls++
	return client.Result[[]models.Reason]{Success: true, Data: s.reasons}, nil
}

type courtClientStub struct {
	grid models.Availability
}

func (s *courtClientStub) Availability(ctx context.Context, date string) (client.Result[models.Availability], error) {
	return client.Result[models.Availability]{Success: true, Data: s.grid}, nil
}

func (s *courtClientStub) CreateReservation(ctx context.Context, req models.Reservation) (client.Result[client.ReservationResponse], error) {
	return client.Result[client.ReservationResponse]{Success: true}, nil
}

func (s *courtClientStub) CancelReservation(ctx context.Context, id int) (client.Result[client.ReservationResponse], error) {
	return client.Result[client.ReservationResponse]{Success: true}, nil
}

func (s *courtClientStub) Favourites(ctx context.Context, memberID string) (client.Result[[]models.Favourite], error) {
	return client.Result[[]models.Favourite]{Success: true}, nil
}

func newScope() (Scope, *Toasts) {
	toasts := &Toasts{}
	return Scope{State: store.NewState(), Notifier: toasts}, toasts
}
