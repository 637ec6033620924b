package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tennisclub/court-admin/internal/models"
)

func TestUpdateBulkActionButtons(t *testing.T) {
	empty := UpdateBulkActionButtons(nil)
	assert.True(t, empty.DeleteDisabled)
	assert.True(t, empty.EditDisabled)
	assert.Equal(t, "Löschen", empty.DeleteLabel)
	assert.Equal(t, "Bearbeiten", empty.EditLabel)

	some := UpdateBulkActionButtons(models.Selection{{ID: 1, BatchID: "a"}, {ID: 2, BatchID: "a"}})
	assert.False(t, some.DeleteDisabled)
	assert.False(t, some.EditDisabled)
	assert.Equal(t, "2 Sperrung(en) löschen", some.DeleteLabel)
	assert.Equal(t, "2 Sperrung(en) bearbeiten", some.EditLabel)
}

func TestFrequencyText(t *testing.T) {
	assert.Equal(t, "Täglich", FrequencyText(models.FrequencyDaily, []string{"monday"}))
	assert.Equal(t, "Wöchentlich (Mo, Mi, So)", FrequencyText(models.FrequencyWeekly, []string{"monday", "wednesday", "sunday"}))
	assert.Equal(t, "monthly", FrequencyText("monthly", nil))
}

func TestSeriesListEmptyAndFilled(t *testing.T) {
	assert.Equal(t, EmptySeriesText, SeriesList(nil).EmptyText)

	list := SeriesList([]models.Series{{
		ID: 1, ReasonName: "Training", Courts: []int{1, 3},
		StartDate: "2024-06-01", EndDate: "2024-06-30", StartTime: "18:00:00", EndTime: "20:00:00",
		Frequency: models.FrequencyWeekly, FrequencyDays: []string{"tuesday"},
	}})
	require.Len(t, list.Cards, 1)
	assert.Empty(t, list.EmptyText)
	assert.Equal(t, "Training", list.Cards[0].Title)
	assert.Equal(t, []string{
		"01.06.2024 - 30.06.2024",
		"18:00 - 20:00",
		"Plätze: 1, 3",
		"Häufigkeit: Wöchentlich (Di)",
	}, list.Cards[0].Lines)
}

func TestTemplateListOptionalLines(t *testing.T) {
	assert.Equal(t, EmptyTemplatesText, TemplateList(nil).EmptyText)

	list := TemplateList([]models.Template{{ID: 2, Name: "Jugend", Courts: []int{2}, StartTime: "15:00", EndTime: "17:00", ReasonName: "Training", Details: "U12"}})
	assert.Equal(t, []string{"15:00 - 17:00", "Plätze: 2", "Grund: Training", "Details: U12"}, list.Cards[0].Lines)
}

func TestSelectionSummaryAndPreview(t *testing.T) {
	sel := models.Selection{{ID: 1, BatchID: "a"}, {ID: 2, BatchID: "b"}, {ID: 3, BatchID: "a"}}
	assert.Equal(t, "3 Sperrung(en) ausgewählt (2 Batch(es))", SelectionSummary(sel))
	assert.Equal(t, []string{"Batch a: 2 Sperrung(en)", "Batch b: 1 Sperrung(en)"}, BulkDeletePreview(sel))
	assert.Equal(t, "Keine Sperrungen ausgewählt", SelectionSummary(nil))
}

func TestBlockRows(t *testing.T) {
	rows := BlockRows([]models.Block{
		{ID: 1, BatchID: "a", CourtName: "Platz 1", Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00"},
		{ID: 2, BatchID: "a", CourtName: "Platz 2", Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00"},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, "Platz 1, Platz 2", rows[0].Courts)
	assert.Equal(t, []int{1, 2}, rows[0].BlockIDs)
	assert.Equal(t, "01.06.2024", rows[0].Date)
}
