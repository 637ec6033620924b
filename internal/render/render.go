// Package render turns console state into the display models of the admin
// lists and modals.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
)

const (
	EmptySeriesText    = "Keine wiederkehrenden Serien gefunden."
	EmptyTemplatesText = "Keine Vorlagen gefunden."
)

var weekdayShort = map[string]string{
	"monday":    "Mo",
	"tuesday":   "Di",
	"wednesday": "Mi",
	"thursday":  "Do",
	"friday":    "Fr",
	"saturday":  "Sa",
	"sunday":    "So",
}

// FrequencyText renders a series frequency, e.g. "Wöchentlich (Mo, Mi)".
func FrequencyText(frequency string, days []string) string {
	switch frequency {
	case models.FrequencyDaily:
		return "Täglich"
	case models.FrequencyWeekly:
		names := make([]string, 0, len(days))
		for _, day := range days {
			if short, ok := weekdayShort[day]; ok {
				names = append(names, short)
			} else {
				names = append(names, day)
			}
		}
		return fmt.Sprintf("Wöchentlich (%s)", strings.Join(names, ", "))
	default:
		return frequency
	}
}

// FormatDate converts YYYY-MM-DD to DD.MM.YYYY.
func FormatDate(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "." + parts[1] + "." + parts[0]
}

// FormatTime trims seconds from HH:MM:SS.
func FormatTime(t string) string {
	if len(t) == len("15:04:05") && strings.Count(t, ":") == 2 {
		return t[:5]
	}
	return t
}

func courtList(courts []int) string {
	parts := make([]string, 0, len(courts))
	for _, c := range courts {
		parts = append(parts, strconv.Itoa(c))
	}
	return "Plätze: " + strings.Join(parts, ", ")
}

// Card is one entry of a rendered list.
type Card struct {
	ID    int      `json:"id"`
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// List is a rendered list; EmptyText is set when there are no cards.
type List struct {
	Cards     []Card `json:"cards"`
	EmptyText string `json:"empty_text,omitempty"`
}

// SeriesList renders the recurring series overview.
func SeriesList(series []models.Series) List {
	if len(series) == 0 {
		return List{Cards: []Card{}, EmptyText: EmptySeriesText}
	}
	cards := make([]Card, 0, len(series))
	for _, s := range series {
		title := s.ReasonName
		if s.Name != "" {
			title = s.Name
		}
		cards = append(cards, Card{
			ID:    s.ID,
			Title: title,
			Lines: []string{
				FormatDate(s.StartDate) + " - " + FormatDate(s.EndDate),
				FormatTime(s.StartTime) + " - " + FormatTime(s.EndTime),
				courtList(s.Courts),
				"Häufigkeit: " + FrequencyText(s.Frequency, s.FrequencyDays),
			},
		})
	}
	return List{Cards: cards}
}

// TemplateList renders the template overview.
func TemplateList(templates []models.Template) List {
	if len(templates) == 0 {
		return List{Cards: []Card{}, EmptyText: EmptyTemplatesText}
	}
	cards := make([]Card, 0, len(templates))
	for _, t := range templates {
		lines := []string{
			FormatTime(t.StartTime) + " - " + FormatTime(t.EndTime),
			courtList(t.Courts),
			"Grund: " + t.ReasonName,
		}
		if t.Details != "" {
			lines = append(lines, "Details: "+t.Details)
		}
		if t.Description != "" {
			lines = append(lines, "Beschreibung: "+t.Description)
		}
		cards = append(cards, Card{ID: t.ID, Title: t.Name, Lines: lines})
	}
	return List{Cards: cards}
}

// TemplateApplication renders the read-only part of the apply modal.
func TemplateApplication(t models.Template) []string {
	return []string{
		courtList(t.Courts),
		FormatTime(t.StartTime) + " - " + FormatTime(t.EndTime),
	}
}

// SelectionSummary renders e.g. "3 Sperrung(en) ausgewählt (2 Batch(es))".
func SelectionSummary(selection models.Selection) string {
	if len(selection) == 0 {
		return "Keine Sperrungen ausgewählt"
	}
	return fmt.Sprintf("%d Sperrung(en) ausgewählt (%d Batch(es))", len(selection), len(selection.BatchIDs()))
}

// BulkDeletePreview renders one line per batch of the delete modal.
func BulkDeletePreview(selection models.Selection) []string {
	counts := selection.CountByBatch()
	lines := make([]string, 0, len(counts))
	for _, id := range selection.BatchIDs() {
		lines = append(lines, fmt.Sprintf("Batch %s: %d Sperrung(en)", id, counts[id]))
	}
	return lines
}

// UpdateBulkActionButtons derives the bulk button state. Both buttons are
// disabled exactly when nothing is selected.
func UpdateBulkActionButtons(selection models.Selection) dto.BulkActionButtons {
	n := len(selection)
	if n == 0 {
		return dto.BulkActionButtons{
			DeleteDisabled: true,
			DeleteLabel:    "Löschen",
			EditDisabled:   true,
			EditLabel:      "Bearbeiten",
		}
	}
	return dto.BulkActionButtons{
		DeleteLabel: fmt.Sprintf("%d Sperrung(en) löschen", n),
		EditLabel:   fmt.Sprintf("%d Sperrung(en) bearbeiten", n),
	}
}

// BlockRows groups the loaded blocks per batch for the upcoming list.
func BlockRows(blocks []models.Block) []BatchRow {
	batches := models.GroupByBatch(blocks)
	rows := make([]BatchRow, 0, len(batches))
	for _, b := range batches {
		first := b.Blocks[0]
		rows = append(rows, BatchRow{
			BatchID:  b.ID,
			Date:     FormatDate(first.Date),
			Time:     FormatTime(first.StartTime) + " - " + FormatTime(first.EndTime),
			Courts:   strings.Join(b.CourtNames(), ", "),
			Reason:   first.ReasonName,
			BlockIDs: blockIDs(b.Blocks),
		})
	}
	return rows
}

// BatchRow is one batch line of the upcoming block list.
type BatchRow struct {
	BatchID  string `json:"batch_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Courts   string `json:"courts"`
	Reason   string `json:"reason"`
	BlockIDs []int  `json:"block_ids"`
}

func blockIDs(blocks []models.Block) []int {
	ids := make([]int, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.ID)
	}
	return ids
}
