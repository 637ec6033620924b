package service

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tennisclub/court-admin/internal/dto"
)

const (
	msgRequiredFields = "Bitte füllen Sie alle erforderlichen Felder aus"
	msgEndBeforeStart = "Endzeit muss nach Startzeit liegen"
	msgEndDateBefore  = "Enddatum muss nach Startdatum liegen"
)

var fieldMessages = map[string]string{
	"court_ids":  "Bitte wählen Sie mindestens einen Platz aus",
	"courts":     "Bitte wählen Sie mindestens einen Platz aus",
	"date":       "Bitte wählen Sie ein Datum",
	"start_date": "Bitte wählen Sie ein Startdatum",
	"end_date":   "Bitte wählen Sie ein Enddatum",
	"start_time": "Bitte geben Sie eine gültige Startzeit an",
	"end_time":   "Bitte geben Sie eine gültige Endzeit an",
	"reason_id":  "Bitte wählen Sie einen Grund aus",
	"frequency":  "Bitte wählen Sie eine Häufigkeit",
	"name":       "Bitte geben Sie einen Namen an",
	"option":     "Ungültige Löschoption",
	"from_date":  "Bitte wählen Sie ein Datum",
}

// NewValidator returns a validator reporting fields by their json names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// fieldErrors converts validator output into field keyed German messages.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		if err != nil {
			out["_"] = err.Error()
		}
		return out
	}
	for _, fe := range verrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if _, exists := out[field]; exists {
			continue
		}
		msg, ok := fieldMessages[field]
		if !ok {
			msg = "Ungültiger Wert"
		}
		out[field] = msg
	}
	return out
}

// parseClock accepts HH:MM and HH:MM:SS.
func parseClock(raw string) (time.Time, bool) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// timeOrderError reports whether both times parse and end is not after start.
func timeOrderError(start, end string) bool {
	s, okStart := parseClock(start)
	e, okEnd := parseClock(end)
	return okStart && okEnd && !e.After(s)
}

// shortClock trims seconds the backend may append.
func shortClock(raw string) string {
	if t, ok := parseClock(raw); ok {
		return t.Format("15:04")
	}
	return raw
}

func formState(errs map[string]string) dto.FormState {
	if len(errs) == 0 {
		return dto.FormState{Valid: true}
	}
	return dto.FormState{Valid: false, SubmitDisabled: true, Errors: errs}
}

// firstMessage picks the toast for an invalid form. Ordering problems are
// reported verbatim, everything else gets the generic prompt.
func firstMessage(errs map[string]string) string {
	for _, key := range []string{"end_time", "end_date"} {
		if msg := errs[key]; msg == msgEndBeforeStart || msg == msgEndDateBefore {
			return msg
		}
	}
	return msgRequiredFields
}
