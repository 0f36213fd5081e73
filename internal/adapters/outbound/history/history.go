package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/valorisation/coherence/internal/domain"
)

// RelPath is where runs are recorded, relative to the project directory.
const RelPath = ".coherence/history/reports.json"

// FileHistory implements domain.ReportHistory as a JSON array on disk.
type FileHistory struct{}

func New() *FileHistory {
	return &FileHistory{}
}

// Save appends entry to the history under dir. The file is replaced through
// a rename so readers never see a partial write.
func (h *FileHistory) Save(dir string, entry domain.HistoryEntry) error {
	entries, err := h.Load(dir)
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	dest := filepath.Join(dir, RelPath)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "reports-*.json")
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return os.Rename(tmp.Name(), dest)
}

// Load returns the recorded runs under dir, oldest first. A missing file is
// an empty history.
func (h *FileHistory) Load(dir string) ([]domain.HistoryEntry, error) {
	data, err := os.ReadFile(filepath.Join(dir, RelPath))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", RelPath, err)
	}
	return entries, nil
}
