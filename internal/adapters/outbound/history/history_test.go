package history_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valorisation/coherence/internal/adapters/outbound/history"
	"github.com/valorisation/coherence/internal/domain"
)

func TestHistory_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	entry := domain.HistoryEntry{
		ReportID:  "8d2f0c1e",
		Timestamp: "2026-02-25T10:00:00Z",
		Siren:     "552100554",
		Status:    domain.StatusFail,
		Summary:   domain.AlertSummary{Errors: 1, Warnings: 1},
		AlertIDs:  []domain.AlertID{domain.AlertEBITDASuperieurCA, domain.AlertMargeExcessive},
	}

	err := h.Save(dir, entry)
	require.NoError(t, err)

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])
}

func TestHistory_AppendMultiple(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	require.NoError(t, h.Save(dir, domain.HistoryEntry{Timestamp: "t1", Status: domain.StatusFail}))
	require.NoError(t, h.Save(dir, domain.HistoryEntry{Timestamp: "t2", Status: domain.StatusWarn}))
	require.NoError(t, h.Save(dir, domain.HistoryEntry{Timestamp: "t3", Status: domain.StatusPass}))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.StatusFail, entries[0].Status)
	assert.Equal(t, domain.StatusPass, entries[2].Status)
}

func TestHistory_LoadEmpty(t *testing.T) {
	dir := t.TempDir()
	entries, err := history.New().Load(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, ".coherence", "history", "reports.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, []byte("not json"), 0644))

	_, err := history.New().Load(dir)
	assert.Error(t, err)
}

func TestHistory_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	h := history.New()
	require.NoError(t, h.Save(dir, domain.HistoryEntry{Timestamp: "t1"}))
	require.NoError(t, h.Save(dir, domain.HistoryEntry{Timestamp: "t2"}))

	files, err := os.ReadDir(filepath.Join(dir, ".coherence", "history"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "reports.json", files[0].Name())
	assert.Equal(t, ".coherence/history/reports.json", history.RelPath)
}
