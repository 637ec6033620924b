package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
	appErrors "github.com/tennisclub/court-admin/pkg/errors"
)

const msgConfirmTemplateDelete = "Sind Sie sicher, dass Sie diese Vorlage löschen möchten?"

// TemplateForm creates, deletes and applies block templates.
type TemplateForm struct {
	templates TemplateClient
	refs      *ReferenceService
	reloader  Reloader
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTemplateForm constructs the template component.
func NewTemplateForm(templates TemplateClient, refs *ReferenceService, reloader Reloader, validate *validator.Validate, logger *zap.Logger) *TemplateForm {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateForm{templates: templates, refs: refs, reloader: reloader, validator: validate, logger: logger, now: time.Now}
}

// Validate checks the template form.
func (f *TemplateForm) Validate(input dto.TemplateFormInput) dto.FormState {
	errs := map[string]string{}
	if err := f.validator.Struct(input); err != nil {
		errs = fieldErrors(err)
	}
	if strings.TrimSpace(input.Name) == "" {
		errs["name"] = fieldMessages["name"]
	}
	if _, bad := errs["end_time"]; !bad && timeOrderError(input.StartTime, input.EndTime) {
		errs["end_time"] = msgEndBeforeStart
	}
	return formState(errs)
}

// Submit creates a template and refreshes the template list.
func (f *TemplateForm) Submit(ctx context.Context, scope Scope, input dto.TemplateFormInput) (*dto.TemplateMutationResponse, error) {
	state := f.Validate(input)
	if !state.Valid {
		msg := firstMessage(state.Errors)
		scope.notify(LevelError, msg)
		return nil, newValidationError(msg, state.Errors)
	}

	res, err := f.templates.Create(ctx, dto.TemplateRequest{
		Name:        strings.TrimSpace(input.Name),
		Courts:      input.Courts,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		ReasonID:    input.ReasonID,
		Details:     input.Details,
		Description: input.Description,
	})
	if failure := upstreamFailure(scope, res, err, "Fehler beim Erstellen der Vorlage"); failure != nil {
		f.logger.Warn("template create failed", zap.Error(failure))
		return nil, failure
	}

	scope.notify(LevelSuccess, "Vorlage erfolgreich erstellt")
	f.refresh(ctx, scope)
	return &res.Data, nil
}

// List loads the templates into the session state.
func (f *TemplateForm) List(ctx context.Context, scope Scope) ([]models.Template, error) {
	return f.refs.Templates(ctx, scope)
}

// Delete removes a template once the caller confirmed it.
func (f *TemplateForm) Delete(ctx context.Context, scope Scope, id int, confirmed bool) error {
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmation, msgConfirmTemplateDelete)
	}
	res, err := f.templates.Delete(ctx, id)
	if failure := upstreamFailure(scope, res, err, "Fehler beim Löschen der Vorlage"); failure != nil {
		return failure
	}
	scope.notify(LevelSuccess, "Vorlage erfolgreich gelöscht")
	f.refresh(ctx, scope)
	return nil
}

// ApplicationDefaults prefills the application modal from a cached template.
func (f *TemplateForm) ApplicationDefaults(ctx context.Context, scope Scope, id int) (models.Template, dto.TemplateApplyInput, error) {
	tpl, ok := f.lookup(ctx, scope, id)
	if !ok {
		return models.Template{}, dto.TemplateApplyInput{}, appErrors.Clone(appErrors.ErrNotFound, "Vorlage nicht gefunden")
	}
	return tpl, dto.TemplateApplyInput{
		Date:        f.now().Format(dateLayout),
		Details:     tpl.Details,
		Description: tpl.Description,
	}, nil
}

// Apply creates the template's blocks on input.Date. Details and description
// are sent as given, empty when left blank.
func (f *TemplateForm) Apply(ctx context.Context, scope Scope, id int, input dto.TemplateApplyInput) (*dto.BlockMutationResponse, error) {
	if err := f.validator.Struct(input); err != nil {
		errs := fieldErrors(err)
		scope.notify(LevelError, "Bitte wählen Sie ein Datum")
		return nil, newValidationError("Bitte wählen Sie ein Datum", errs)
	}

	res, err := f.templates.Apply(ctx, id, dto.TemplateApplyRequest{
		Date:        input.Date,
		Details:     input.Details,
		Description: input.Description,
	})
	if failure := upstreamFailure(scope, res, err, "Fehler beim Anwenden der Vorlage"); failure != nil {
		return nil, failure
	}

	scope.notify(LevelSuccess, "Vorlage erfolgreich angewendet")
	reloadAfter(ctx, f.reloader, scope, f.logger)
	return &res.Data, nil
}

func (f *TemplateForm) lookup(ctx context.Context, scope Scope, id int) (models.Template, bool) {
	if scope.State != nil {
		if tpl, ok := scope.State.Template(id); ok {
			return tpl, true
		}
	}
	templates, err := f.refs.Templates(ctx, scope)
	if err != nil {
		return models.Template{}, false
	}
	for _, tpl := range templates {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return models.Template{}, false
}

func (f *TemplateForm) refresh(ctx context.Context, scope Scope) {
	f.refs.InvalidateTemplates(ctx)
	_, _ = f.refs.Templates(ctx, scope)
}
