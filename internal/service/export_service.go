package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tennisclub/court-admin/internal/dto"
	"github.com/tennisclub/court-admin/internal/models"
	"github.com/tennisclub/court-admin/pkg/export"
	"github.com/tennisclub/court-admin/pkg/storage"
)

type fileStorage interface {
	Save(name storage.ExportName, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// sheetRenderer turns a block sheet into file bytes.
type sheetRenderer interface {
	Render(sheet export.Sheet) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult describes a stored export and its signed download link.
type ExportResult struct {
	ID           string    `json:"id"`
	RelativePath string    `json:"-"`
	Token        string    `json:"token"`
	URL          string    `json:"url"`
	Format       string    `json:"format"`
	Rows         int       `json:"rows"`
	ExpiresAt    time.Time `json:"expires_at"`
}

var exportColumns = []string{"Datum", "Von", "Bis", "Platz", "Grund", "Details", "Beschreibung", "Batch"}

// ExportService renders block lists to CSV or PDF and hands out signed links.
type ExportService struct {
	blocks    BlockClient
	loader    *BlockLoader
	storage   fileStorage
	csv       sheetRenderer
	pdf       sheetRenderer
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(blocks BlockClient, loader *BlockLoader, files fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv, pdf sheetRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		blocks:    blocks,
		loader:    loader,
		storage:   files,
		csv:       csv,
		pdf:       pdf,
		signer:    signer,
		validator: NewValidator(),
		logger:    logger,
		cfg:       cfg,
	}
}

// Generate loads the requested blocks, renders them and stores the file.
func (s *ExportService) Generate(ctx context.Context, scope Scope, req dto.ExportRequest) (*ExportResult, error) {
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	if err := s.validator.Struct(req); err != nil {
		return nil, newValidationError("Ungültige Exportanfrage", fieldErrors(err))
	}

	filter := s.loader.UpcomingFilter()
	if req.DateRangeStart != "" {
		filter.DateRangeStart = req.DateRangeStart
	}
	if req.DateRangeEnd != "" {
		filter.DateRangeEnd = req.DateRangeEnd
	}
	filter.CourtIDs = req.CourtIDs
	filter.ReasonIDs = req.ReasonIDs

	res, err := s.blocks.List(ctx, filter)
	if failure := upstreamFailure(scope, res, err, "Fehler beim Laden der Sperrungen"); failure != nil {
		return nil, failure
	}
	blocks := res.Data
	models.SortBlocks(blocks)

	sheet := blockSheet(blocks, fmt.Sprintf("Platzsperrungen %s bis %s", filter.DateRangeStart, filter.DateRangeEnd))

	var payload []byte
	switch req.Format {
	case "csv":
		payload, err = s.csv.Render(sheet)
	case "pdf":
		payload, err = s.pdf.Render(sheet)
	}
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	relPath, err := s.storage.Save(storage.ExportName{
		From:      filter.DateRangeStart,
		To:        filter.DateRangeEnd,
		Format:    req.Format,
		CreatedAt: time.Now(),
	}, payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Sign(id, relPath, req.Format)
	if err != nil {
		if derr := s.storage.Delete(relPath); derr != nil {
			s.logger.Warn("drop unsigned export", zap.String("file", relPath), zap.Error(derr))
		}
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	s.logger.Info("export generated", zap.String("export_id", id), zap.String("format", req.Format), zap.Int("rows", len(blocks)))
	return &ExportResult{
		ID:           id,
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/exports/%s", prefix, token),
		Format:       req.Format,
		Rows:         len(blocks),
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates a download token and returns what it grants.
func (s *ExportService) ParseToken(token string, allowExpired bool) (storage.Download, error) {
	return s.signer.Verify(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func blockSheet(blocks []models.Block, title string) export.Sheet {
	rows := make([][]string, 0, len(blocks))
	for _, b := range blocks {
		court := b.CourtName
		if court == "" {
			court = "Platz " + strconv.Itoa(b.CourtID)
		}
		rows = append(rows, []string{
			b.Date,
			shortClock(b.StartTime),
			shortClock(b.EndTime),
			court,
			b.ReasonName,
			b.SubReason,
			b.Description,
			b.BatchID,
		})
	}
	return export.Sheet{Title: title, Columns: exportColumns, Rows: rows}
}
