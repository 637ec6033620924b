package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tennisclub/court-admin/internal/client"
	"github.com/tennisclub/court-admin/pkg/config"
)

// ConsoleDeps are the collaborators shared by every console component.
type ConsoleDeps struct {
	Backend  *client.Client
	Cache    *CacheService
	Metrics  *MetricsService
	Blocks   config.BlocksConfig
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// Console bundles the court blocking components wired to one backend.
type Console struct {
	Loader     *BlockLoader
	BlockForm  *BlockForm
	BulkDelete *BulkDeleteManager
	BulkEdit   *BulkEditManager
	Series     *SeriesForm
	Templates  *TemplateForm
	References *ReferenceService
}

// NewConsole wires the components. Every component reloads the block list
// through the shared loader and reads "today" in the configured timezone.
func NewConsole(deps ConsoleDeps) (*Console, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := Clock(time.Now)
	if deps.Blocks.Timezone != "" {
		loc, err := time.LoadLocation(deps.Blocks.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", deps.Blocks.Timezone, err)
		}
		clock = ZoneClock(loc)
	}

	var recorder BulkRecorder
	if deps.Metrics != nil {
		recorder = deps.Metrics
	}

	validate := NewValidator()
	blocks := deps.Backend.Blocks()

	loader := NewBlockLoader(blocks, deps.Blocks.LookaheadDays, logger.Named("loader"))
	refs := NewReferenceService(deps.Backend.Reasons(), deps.Backend.Templates(), deps.Cache, deps.CacheTTL, logger.Named("references"))
	c := &Console{
		Loader:     loader,
		BlockForm:  NewBlockForm(blocks, deps.Backend.Courts(), loader, validate, logger.Named("block_form")),
		BulkDelete: NewBulkDeleteManager(blocks, loader, recorder, deps.Blocks.LookaheadDays, logger.Named("bulk_delete")),
		BulkEdit:   NewBulkEditManager(blocks, loader, recorder, validate, logger.Named("bulk_edit")),
		Series:     NewSeriesForm(deps.Backend.Series(), loader, validate, logger.Named("series")),
		Templates:  NewTemplateForm(deps.Backend.Templates(), refs, loader, validate, logger.Named("templates")),
		References: refs,
	}
	c.SetClock(clock)
	return c, nil
}

// SetClock overrides the clock of every component.
func (c *Console) SetClock(clock Clock) {
	c.Loader.SetClock(clock)
	c.BlockForm.SetClock(clock)
	c.BulkDelete.SetClock(clock)
	c.Series.SetClock(clock)
	c.Templates.SetClock(clock)
}
