package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tennisclub/court-admin/internal/client"
	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
)

// SeriesClient is the subset of the backend used for recurring series.
type SeriesClient interface {
	List(ctx context.Context) (client.Result[[]models.Series], error)
	Create(ctx context.Context, req dto.SeriesRequest) (client.Result[dto.SeriesMutationResponse], error)
	Update(ctx context.Context, id int, req dto.SeriesUpdateRequest) (client.Result[dto.SeriesMutationResponse], error)
	UpdateFuture(ctx context.Context, id int, req dto.SeriesUpdateRequest) (client.Result[dto.SeriesMutationResponse], error)
	Delete(ctx context.Context, id int, req dto.SeriesDeleteRequest) (client.Result[dto.SeriesMutationResponse], error)
}

// SeriesForm creates recurring series and manages existing ones.
type SeriesForm struct {
	series    SeriesClient
	reloader  Reloader
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSeriesForm constructs the series component.
func NewSeriesForm(series SeriesClient, reloader Reloader, validate *validator.Validate, logger *zap.Logger) *SeriesForm {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeriesForm{series: series, reloader: reloader, validator: validate, logger: logger, now: time.Now}
}

// Defaults returns an empty weekly series form running from today for one week.
func (f *SeriesForm) Defaults() dto.SeriesFormInput {
	today := f.now()
	return dto.SeriesFormInput{
		Courts:    []int{},
		StartDate: today.Format(dateLayout),
		EndDate:   today.AddDate(0, 0, 7).Format(dateLayout),
		Frequency: models.FrequencyWeekly,
		Weekdays:  map[string]bool{},
	}
}

// Validate checks the series form. It is meant to run on every field change.
func (f *SeriesForm) Validate(input dto.SeriesFormInput) dto.FormState {
	errs := map[string]string{}
	if err := f.validator.Struct(input); err != nil {
		errs = fieldErrors(err)
	}
	if _, bad := errs["end_date"]; !bad {
		start, errStart := time.Parse(dateLayout, input.StartDate)
		end, errEnd := time.Parse(dateLayout, input.EndDate)
		if errStart == nil && errEnd == nil && !end.After(start) {
			errs["end_date"] = msgEndDateBefore
		}
	}
	if _, bad := errs["end_time"]; !bad && timeOrderError(input.StartTime, input.EndTime) {
		errs["end_time"] = msgEndBeforeStart
	}
	return formState(errs)
}

// FrequencyDays collects the weekday toggles in monday..sunday order. Daily
// series ignore the toggles.
func FrequencyDays(frequency string, weekdays map[string]bool) []string {
	days := []string{}
	if frequency != models.FrequencyWeekly {
		return days
	}
	for _, day := range models.Weekdays {
		if weekdays[day] {
			days = append(days, day)
		}
	}
	return days
}

// Submit validates and creates the series.
func (f *SeriesForm) Submit(ctx context.Context, scope Scope, input dto.SeriesFormInput) (*dto.SeriesMutationResponse, error) {
	state := f.Validate(input)
	if !state.Valid {
		msg := firstMessage(state.Errors)
		scope.notify(LevelError, msg)
		return nil, newValidationError(msg, state.Errors)
	}

	req := dto.SeriesRequest{
		Name:          strings.TrimSpace(input.Name),
		Courts:        input.Courts,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		ReasonID:      input.ReasonID,
		SubReason:     input.SubReason,
		Description:   input.Description,
		Frequency:     input.Frequency,
		FrequencyDays: FrequencyDays(input.Frequency, input.Weekdays),
		SkipConflicts: input.SkipConflicts,
	}

	res, err := f.series.Create(ctx, req)
	if failure := upstreamFailure(scope, res, err, "Fehler beim Erstellen der Serie"); failure != nil {
		f.logger.Warn("series create failed", zap.Error(failure))
		return nil, failure
	}

	scope.notify(LevelSuccess, "Serie erfolgreich erstellt")
	reloadAfter(ctx, f.reloader, scope, f.logger)
	_, _ = f.List(ctx, scope)
	return &res.Data, nil
}

// List loads every series into the session state.
func (f *SeriesForm) List(ctx context.Context, scope Scope) ([]models.Series, error) {
	res, err := f.series.List(ctx)
	if failure := upstreamFailure(scope, res, err, "Fehler beim Laden der Serien"); failure != nil {
		return nil, failure
	}
	if scope.State != nil {
		scope.State.SetSeries(res.Data)
	}
	return res.Data, nil
}

// Update changes the whole series, or the instances from req.FromDate on when
// futureOnly is set.
func (f *SeriesForm) Update(ctx context.Context, scope Scope, id int, req dto.SeriesUpdateRequest, futureOnly bool) (*dto.SeriesMutationResponse, error) {
	errs := map[string]string{}
	if err := f.validator.Struct(req); err != nil {
		errs = fieldErrors(err)
	}
	if futureOnly && req.FromDate == "" {
		errs["from_date"] = fieldMessages["from_date"]
	}
	if req.StartTime != nil && req.EndTime != nil && timeOrderError(*req.StartTime, *req.EndTime) {
		errs["end_time"] = msgEndBeforeStart
	}
	if len(errs) > 0 {
		msg := firstMessage(errs)
		scope.notify(LevelError, msg)
		return nil, newValidationError(msg, errs)
	}

	var (
		res client.Result[dto.SeriesMutationResponse]
		err error
	)
	if futureOnly {
		res, err = f.series.UpdateFuture(ctx, id, req)
	} else {
		req.FromDate = ""
		res, err = f.series.Update(ctx, id, req)
	}
	if failure := upstreamFailure(scope, res, err, "Fehler beim Aktualisieren der Serie"); failure != nil {
		return nil, failure
	}

	scope.notify(LevelSuccess, "Serie erfolgreich aktualisiert")
	_, _ = f.List(ctx, scope)
	reloadAfter(ctx, f.reloader, scope, f.logger)
	return &res.Data, nil
}

// Delete removes one instance, future instances or the whole series.
func (f *SeriesForm) Delete(ctx context.Context, scope Scope, id int, req dto.SeriesDeleteRequest) (*dto.SeriesMutationResponse, error) {
	if err := f.validator.Struct(req); err != nil {
		errs := fieldErrors(err)
		scope.notify(LevelError, msgRequiredFields)
		return nil, newValidationError(msgRequiredFields, errs)
	}
	if req.Option == models.SeriesDeleteAll {
		req.FromDate = ""
	}

	res, err := f.series.Delete(ctx, id, req)
	if failure := upstreamFailure(scope, res, err, "Fehler beim Löschen der Serie"); failure != nil {
		return nil, failure
	}

	scope.notify(LevelSuccess, "Serie erfolgreich gelöscht")
	_, _ = f.List(ctx, scope)
	reloadAfter(ctx, f.reloader, scope, f.logger)
	return &res.Data, nil
}
