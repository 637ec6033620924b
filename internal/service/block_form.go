package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tennisclub/court-admin/internal/client"
	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
)

// CourtClient is the subset of the backend used for court lookups and bookings.
type CourtClient interface {
	Availability(ctx context.Context, date string) (client.Result[models.Availability], error)
	CreateReservation(ctx context.Context, req models.Reservation) (client.Result[client.ReservationResponse], error)
	CancelReservation(ctx context.Context, id int) (client.Result[client.ReservationResponse], error)
	Favourites(ctx context.Context, memberID string) (client.Result[[]models.Favourite], error)
}

// BlockForm validates and submits the multi-court block form.
type BlockForm struct {
	blocks    BlockClient
	courts    CourtClient
	reloader  Reloader
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewBlockForm constructs the block form component.
func NewBlockForm(blocks BlockClient, courts CourtClient, reloader Reloader, validate *validator.Validate, logger *zap.Logger) *BlockForm {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlockForm{blocks: blocks, courts: courts, reloader: reloader, validator: validate, logger: logger, now: time.Now}
}

// Defaults returns an empty form for today, 08:00 to 22:00.
func (f *BlockForm) Defaults() dto.BlockFormInput {
	return dto.BlockFormInput{
		CourtIDs:  []int{},
		Date:      f.now().Format(dateLayout),
		StartTime: "08:00",
		EndTime:   "22:00",
	}
}

// Validate checks the form and reports whether submit is allowed.
func (f *BlockForm) Validate(input dto.BlockFormInput) dto.FormState {
	errs := map[string]string{}
	if err := f.validator.Struct(input); err != nil {
		errs = fieldErrors(err)
	}
	if _, bad := errs["end_time"]; !bad && timeOrderError(input.StartTime, input.EndTime) {
		errs["end_time"] = msgEndBeforeStart
	}
	return formState(errs)
}

// Submit validates the form, resolves create or edit and sends it to the backend.
func (f *BlockForm) Submit(ctx context.Context, scope Scope, sub dto.BlockSubmission) (*dto.BlockSubmitResult, error) {
	state := f.Validate(sub.Input)
	if !state.Valid {
		msg := firstMessage(state.Errors)
		scope.notify(LevelError, msg)
		return nil, newValidationError(msg, state.Errors)
	}

	mode := ResolveFormMode(sub.Mode)
	req := dto.BlockRequest{
		CourtIDs:    sub.Input.CourtIDs,
		Date:        sub.Input.Date,
		StartTime:   sub.Input.StartTime,
		EndTime:     sub.Input.EndTime,
		ReasonID:    sub.Input.ReasonID,
		SubReason:   sub.Input.SubReason,
		Description: sub.Input.Description,
	}

	var (
		res client.Result[dto.BlockMutationResponse]
		err error
	)
	if mode.IsEdit() {
		res, err = f.blocks.UpdateBatch(ctx, mode.BatchID(), req)
	} else {
		res, err = f.blocks.CreateMultiCourt(ctx, req)
	}
	if failure := upstreamFailure(scope, res, err, "Fehler beim Speichern der Sperrung"); failure != nil {
		f.logger.Warn("block submit failed", zap.String("mode", mode.String()), zap.String("batch_id", mode.BatchID()), zap.Error(failure))
		return nil, failure
	}

	message := "Sperrung erfolgreich erstellt"
	if mode.IsEdit() {
		message = "Sperrung erfolgreich aktualisiert"
	}
	scope.notify(LevelSuccess, message)
	reloadAfter(ctx, f.reloader, scope, f.logger)

	batchID := res.Data.BatchID
	if batchID == "" {
		batchID = mode.BatchID()
	}
	return &dto.BlockSubmitResult{
		Mode:       mode.String(),
		BatchID:    batchID,
		BlockCount: res.Data.BlockCount,
		Message:    message,
		Form:       f.Defaults(),
	}, nil
}

// EditPayload loads the batch the edit form is opened for.
func (f *BlockForm) EditPayload(ctx context.Context, scope Scope, batchID string) (*models.BatchDetail, error) {
	mode := EditBatchMode(batchID)
	if !mode.IsEdit() {
		return nil, newValidationError("Ungültige Batch-ID", map[string]string{"batch_id": "Ungültige Batch-ID"})
	}
	res, err := f.blocks.GetBatch(ctx, mode.BatchID())
	if failure := upstreamFailure(scope, res, err, "Fehler beim Laden der Sperrung"); failure != nil {
		return nil, failure
	}
	detail := res.Data
	if detail.BatchID == "" {
		detail.BatchID = mode.BatchID()
	}
	return &detail, nil
}

// PopulateFromBatch turns an edit payload into form values. Court ids come
// from the payload or, for older payloads, from its blocks.
func (f *BlockForm) PopulateFromBatch(detail models.BatchDetail) dto.BlockFormInput {
	courts := append([]int{}, detail.CourtIDs...)
	if len(courts) == 0 {
		seen := map[int]struct{}{}
		for _, b := range detail.Blocks {
			if _, ok := seen[b.CourtID]; ok {
				continue
			}
			seen[b.CourtID] = struct{}{}
			courts = append(courts, b.CourtID)
		}
		sort.Ints(courts)
	}
	return dto.BlockFormInput{
		CourtIDs:    courts,
		Date:        detail.Date,
		StartTime:   shortClock(detail.StartTime),
		EndTime:     shortClock(detail.EndTime),
		ReasonID:    detail.ReasonID,
		SubReason:   detail.SubReason,
		Description: detail.Description,
	}
}

// AllCourts returns the court numbers of the availability grid for date, used
// by the select-all action of the court check boxes.
func (f *BlockForm) AllCourts(ctx context.Context, scope Scope, date string) ([]int, error) {
	if date == "" {
		date = f.now().Format(dateLayout)
	}
	res, err := f.courts.Availability(ctx, date)
	if failure := upstreamFailure(scope, res, err, "Fehler beim Laden der Plätze"); failure != nil {
		return nil, failure
	}
	courts := make([]int, 0, len(res.Data.Grid))
	for _, row := range res.Data.Grid {
		courts = append(courts, row.CourtNumber)
	}
	sort.Ints(courts)
	return courts, nil
}
