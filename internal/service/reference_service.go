package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tennisclub/court-admin/internal/client"
	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
	"github.com/tennisclub/court-admin/pkg/jobs"
)

const (
	reasonsCacheKey   = "court-admin:reasons"
	templatesCacheKey = "court-admin:templates"

	// JobRefreshReferences rewarms the shared reason and template caches.
	JobRefreshReferences = "references.refresh"
)

// ReasonClient is the subset of the backend used for block reasons.
type ReasonClient interface {
	List(ctx context.Context) (client.Result[[]models.Reason], error)
}

// TemplateClient is the subset of the backend used for block templates.
type TemplateClient interface {
	List(ctx context.Context) (client.Result[[]models.Template], error)
	Create(ctx context.Context, req dto.TemplateRequest) (client.Result[dto.TemplateMutationResponse], error)
	Delete(ctx context.Context, id int) (client.Result[dto.TemplateMutationResponse], error)
	Apply(ctx context.Context, id int, req dto.TemplateApplyRequest) (client.Result[dto.BlockMutationResponse], error)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// ReferenceService serves the reason and template lists. Both are club wide,
// so they are shared between sessions through the cache.
type ReferenceService struct {
	reasons   ReasonClient
	templates TemplateClient
	cache     *CacheService
	ttl       time.Duration
	queue     jobEnqueuer
	logger    *zap.Logger
}

// NewReferenceService constructs the reference list service. cache may be nil.
func NewReferenceService(reasons ReasonClient, templates TemplateClient, cache *CacheService, ttl time.Duration, logger *zap.Logger) *ReferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceService{reasons: reasons, templates: templates, cache: cache, ttl: ttl, logger: logger}
}

// SetQueue attaches the background queue used to rewarm caches.
func (s *ReferenceService) SetQueue(q jobEnqueuer) {
	s.queue = q
}

// Reasons returns the block reasons, only active ones when activeOnly is set.
func (s *ReferenceService) Reasons(ctx context.Context, scope Scope, activeOnly bool) ([]models.Reason, error) {
	var reasons []models.Reason
	if hit, _ := s.cache.Get(ctx, reasonsCacheKey, &reasons); !hit {
		res, err := s.reasons.List(ctx)
		if failure := upstreamFailure(scope, res, err, "Fehler beim Laden der Sperrungsgründe"); failure != nil {
			return nil, failure
		}
		reasons = res.Data
		_ = s.cache.Set(ctx, reasonsCacheKey, reasons, s.ttl)
	}
	if scope.State != nil {
		scope.State.SetReasons(reasons)
	}
	if activeOnly {
		return models.ActiveReasons(reasons), nil
	}
	return reasons, nil
}

// Templates returns the block templates and stores them in the session.
func (s *ReferenceService) Templates(ctx context.Context, scope Scope) ([]models.Template, error) {
	var templates []models.Template
	if hit, _ := s.cache.Get(ctx, templatesCacheKey, &templates); !hit {
		res, err := s.templates.List(ctx)
		if failure := upstreamFailure(scope, res, err, "Fehler beim Laden der Vorlagen"); failure != nil {
			return nil, failure
		}
		templates = res.Data
		_ = s.cache.Set(ctx, templatesCacheKey, templates, s.ttl)
	}
	if scope.State != nil {
		scope.State.SetTemplates(templates)
	}
	return templates, nil
}

// InvalidateTemplates drops the cached template list and schedules a rewarm.
func (s *ReferenceService) InvalidateTemplates(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, templatesCacheKey)
	if s.queue == nil || !s.cache.Enabled() {
		return
	}
	if err := s.queue.Enqueue(jobs.Job{Type: JobRefreshReferences}); err != nil {
		s.logger.Debug("reference refresh not queued", zap.Error(err))
	}
}

// HandleJob is the queue handler rewarming both caches.
func (s *ReferenceService) HandleJob(ctx context.Context, job jobs.Job) error {
	if job.Type != JobRefreshReferences {
		return nil
	}
	scope := Scope{}
	if _, err := s.Reasons(ctx, scope, false); err != nil {
		return err
	}
	_, err := s.Templates(ctx, scope)
	return err
}
