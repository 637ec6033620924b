package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const exportPrefix = "blocks_"

// ErrInvalidExportName is returned for names that do not denote a block
// export file directly under the store directory.
var ErrInvalidExportName = errors.New("invalid export file name")

// ExportName identifies one rendered block list.
type ExportName struct {
	From      string
	To        string
	Format    string
	CreatedAt time.Time
}

// Filename renders blocks_<from>_<to>_<created>.<format>.
func (n ExportName) Filename() string {
	return fmt.Sprintf("%s%s_%s_%s.%s", exportPrefix,
		namePart(n.From), namePart(n.To), n.CreatedAt.UTC().Format("20060102_150405"), strings.ToLower(n.Format))
}

func namePart(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "na"
	}
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
		if b.Len() >= 32 {
			break
		}
	}
	return b.String()
}

// ExportStore keeps rendered block exports in one flat directory.
type ExportStore struct {
	baseDir string
}

// NewExportStore ensures the directory exists and returns a handle.
func NewExportStore(baseDir string) (*ExportStore, error) {
	if baseDir == "" {
		baseDir = "./exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create exports directory: %w", err)
	}
	return &ExportStore{baseDir: baseDir}, nil
}

// Save writes data under name's file name. The file appears complete or not
// at all, so a download never sees a partial export.
func (s *ExportStore) Save(name ExportName, data []byte) (string, error) {
	filename := name.Filename()
	tmp, err := os.CreateTemp(s.baseDir, ".tmp-"+exportPrefix+"*")
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return "", fmt.Errorf("write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.baseDir, filename)); err != nil {
		return "", fmt.Errorf("store export file: %w", err)
	}
	return filename, nil
}

// Open returns a read-only handle for a stored export.
func (s *ExportStore) Open(filename string) (*os.File, error) {
	path, err := s.resolve(filename)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export file: %w", err)
	}
	return file, nil
}

// Delete removes a stored export if present.
func (s *ExportStore) Delete(filename string) error {
	path, err := s.resolve(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete export file: %w", err)
	}
	return nil
}

// CleanupOlderThan removes exports last written before now minus ttl and
// returns their names. Other files in the directory are left alone.
func (s *ExportStore) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("cleanup exports: %w", err)
	}
	cutoff := time.Now().Add(-ttl)
	deleted := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() || !isExportFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return deleted, fmt.Errorf("cleanup exports: %w", err)
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.baseDir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return deleted, fmt.Errorf("cleanup exports: %w", err)
		}
		deleted = append(deleted, entry.Name())
	}
	return deleted, nil
}

// Path returns where filename lives on disk.
func (s *ExportStore) Path(filename string) string {
	return filepath.Join(s.baseDir, filepath.Base(filename))
}

func (s *ExportStore) resolve(filename string) (string, error) {
	if !isExportFile(filename) || filename != filepath.Base(filename) {
		return "", fmt.Errorf("%w: %q", ErrInvalidExportName, filename)
	}
	return filepath.Join(s.baseDir, filename), nil
}

func isExportFile(name string) bool {
	if !strings.HasPrefix(name, exportPrefix) {
		return false
	}
	switch filepath.Ext(name) {
	case ".csv", ".pdf":
		return true
	}
	return false
}
