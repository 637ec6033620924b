package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
)

func validSeriesInput() dto.SeriesFormInput {
	return dto.SeriesFormInput{
		Courts:    []int{1},
		StartDate: "2024-06-01",
		EndDate:   "2024-06-30",
		StartTime: "18:00",
		EndTime:   "20:00",
		ReasonID:  2,
		Frequency: models.FrequencyWeekly,
		Weekdays:  map[string]bool{"friday": true, "monday": true, "sunday": false},
	}
}

func TestFrequencyDaysOrder(t *testing.T) {
	days := FrequencyDays(models.FrequencyWeekly, map[string]bool{"sunday": true, "wednesday": true, "monday": true})
	assert.Equal(t, []string{"monday", "wednesday", "sunday"}, days)
	assert.Empty(t, FrequencyDays(models.FrequencyDaily, map[string]bool{"monday": true}))
}

func TestSeriesFormValidate(t *testing.T) {
	form := NewSeriesForm(&seriesClientStub{}, nil, nil, nil)
	assert.True(t, form.Validate(validSeriesInput()).Valid)

	input := validSeriesInput()
	input.EndDate = "2024-06-01"
	state := form.Validate(input)
	assert.False(t, state.Valid)
	assert.Equal(t, "Enddatum muss nach Startdatum liegen", state.Errors["end_date"])

	input = validSeriesInput()
	input.Frequency = "monthly"
	assert.Contains(t, form.Validate(input).Errors, "frequency")
}

func TestSeriesFormSubmit(t *testing.T) {
	series := &seriesClientStub{series: []models.Series{{ID: 1}}}
	reloader := &reloaderStub{}
	form := NewSeriesForm(series, reloader, nil, nil)
	scope, toasts := newScope()

	_, err := form.Submit(context.Background(), scope, validSeriesInput())
	require.NoError(t, err)
	require.Len(t, series.created, 1)
	assert.Equal(t, []string{"monday", "friday"}, series.created[0].FrequencyDays)
	assert.Equal(t, 1, reloader.calls)
	assert.Len(t, scope.State.Series(), 1)
	assert.Equal(t, "Serie erfolgreich erstellt", toasts.Items()[0].Message)
}

func TestSeriesFormDefaults(t *testing.T) {
	form := NewSeriesForm(&seriesClientStub{}, nil, nil, nil)
	form.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	defaults := form.Defaults()
	assert.Equal(t, "2024-06-01", defaults.StartDate)
	assert.Equal(t, "2024-06-08", defaults.EndDate)
}

func TestSeriesUpdateFutureNeedsFromDate(t *testing.T) {
	series := &seriesClientStub{}
	form := NewSeriesForm(series, nil, nil, nil)
	scope, _ := newScope()

	start := "19:00"
	_, err := form.Update(context.Background(), scope, 5, dto.SeriesUpdateRequest{StartTime: &start}, true)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Empty(t, series.future)

	_, err = form.Update(context.Background(), scope, 5, dto.SeriesUpdateRequest{FromDate: "2024-06-10", StartTime: &start}, true)
	require.NoError(t, err)
	assert.Len(t, series.future, 1)

	_, err = form.Update(context.Background(), scope, 5, dto.SeriesUpdateRequest{FromDate: "2024-06-10", StartTime: &start}, false)
	require.NoError(t, err)
	require.Len(t, series.updated, 1)
	assert.Empty(t, series.updated[0].FromDate)
}

func TestSeriesDeleteOptions(t *testing.T) {
	series := &seriesClientStub{}
	form := NewSeriesForm(series, nil, nil, nil)
	scope, _ := newScope()

	_, err := form.Delete(context.Background(), scope, 5, dto.SeriesDeleteRequest{Option: "future"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = form.Delete(context.Background(), scope, 5, dto.SeriesDeleteRequest{Option: "all", FromDate: "2024-06-10"})
	require.NoError(t, err)
	assert.Equal(t, dto.SeriesDeleteRequest{Option: "all"}, series.deleted[0])
}

func TestSeriesRejectionUsesServerMessage(t *testing.T) {
	series := &seriesClientStub{rejectBy: "Konflikte gefunden"}
	form := NewSeriesForm(series, nil, nil, nil)
	scope, toasts := newScope()

	_, err := form.Submit(context.Background(), scope, validSeriesInput())
	assert.ErrorIs(t, err, appErrors.ErrUpstreamRejected)
	assert.Equal(t, "Konflikte gefunden", toasts.Items()[0].Message)
}
