package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/valorisation/coherence/internal/domain"
)

// FileLoader implements domain.SnapshotLoader for JSON and YAML files.
type FileLoader struct{}

// New creates a FileLoader.
func New() *FileLoader { return &FileLoader{} }

// Load reads path and returns one submission per snapshot it holds. A file
// may contain a single snapshot object or a list of them.
func (l *FileLoader) Load(path string) ([]domain.Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var snaps []domain.DiagnosticSnapshot
	var list bool
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		snaps, list, err = decodeYAML(data)
	default:
		snaps, list, err = Decode(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return submissions(path, snaps, list)
}

// DecodeSubmissions parses JSON data like Decode and labels each snapshot
// with source, suffixed by its index when data holds a list. The boolean
// reports whether the input was a list.
func DecodeSubmissions(source string, data []byte) ([]domain.Submission, bool, error) {
	snaps, list, err := Decode(data)
	if err != nil {
		return nil, list, err
	}
	subs, err := submissions(source, snaps, list)
	return subs, list, err
}

func submissions(base string, snaps []domain.DiagnosticSnapshot, list bool) ([]domain.Submission, error) {
	subs := make([]domain.Submission, 0, len(snaps))
	for i, s := range snaps {
		source := base
		if list {
			source = fmt.Sprintf("%s[%d]", base, i)
		}
		if err := s.CheckSiren(); err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		subs = append(subs, domain.Submission{Source: source, Snapshot: s})
	}
	return subs, nil
}

// Decode parses a JSON snapshot or list of snapshots. The boolean reports
// whether the input was a list.
func Decode(data []byte) ([]domain.DiagnosticSnapshot, bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var snaps []domain.DiagnosticSnapshot
		if err := json.Unmarshal(trimmed, &snaps); err != nil {
			return nil, true, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
		}
		return snaps, true, nil
	}

	var s domain.DiagnosticSnapshot
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	return []domain.DiagnosticSnapshot{s}, false, nil
}

func decodeYAML(data []byte) ([]domain.DiagnosticSnapshot, bool, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	if len(root.Content) == 0 {
		return nil, false, fmt.Errorf("%w: empty document", domain.ErrInvalidSnapshot)
	}

	doc := root.Content[0]
	if doc.Kind == yaml.SequenceNode {
		var snaps []domain.DiagnosticSnapshot
		if err := doc.Decode(&snaps); err != nil {
			return nil, true, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
		}
		return snaps, true, nil
	}

	var s domain.DiagnosticSnapshot
	if err := doc.Decode(&s); err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	return []domain.DiagnosticSnapshot{s}, false, nil
}
