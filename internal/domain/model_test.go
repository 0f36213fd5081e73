package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/valorisation/coherence/internal/domain"
)

func TestSeverity_Rank(t *testing.T) {
	assert.Less(t, domain.SeverityError.Rank(), domain.SeverityWarning.Rank())
	assert.Less(t, domain.SeverityWarning.Rank(), domain.SeverityInfo.Rank())
	assert.Less(t, domain.SeverityInfo.Rank(), domain.Severity("other").Rank())
}

func TestIsValidAlertID(t *testing.T) {
	for _, id := range domain.ValidAlertIDs {
		assert.True(t, domain.IsValidAlertID(id))
	}
	assert.False(t, domain.IsValidAlertID("UNKNOWN"))
	assert.Len(t, domain.ValidAlertIDs, 10)
}

func TestStatusFor(t *testing.T) {
	errAlert := domain.Alert{Severity: domain.SeverityError}
	warnAlert := domain.Alert{Severity: domain.SeverityWarning}
	infoAlert := domain.Alert{Severity: domain.SeverityInfo}

	tests := []struct {
		name   string
		alerts []domain.Alert
		strict bool
		want   string
	}{
		{"no alerts", nil, false, domain.StatusPass},
		{"info only", []domain.Alert{infoAlert}, false, domain.StatusPass},
		{"info only strict", []domain.Alert{infoAlert}, true, domain.StatusPass},
		{"warning", []domain.Alert{warnAlert, infoAlert}, false, domain.StatusWarn},
		{"warning strict", []domain.Alert{warnAlert}, true, domain.StatusFail},
		{"error", []domain.Alert{errAlert, warnAlert}, false, domain.StatusFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.StatusFor(tt.alerts, tt.strict))
		})
	}
}

func TestSummarize(t *testing.T) {
	s := domain.Summarize([]domain.Alert{
		{Severity: domain.SeverityError},
		{Severity: domain.SeverityWarning},
		{Severity: domain.SeverityWarning},
		{Severity: domain.SeverityInfo},
	})
	assert.Equal(t, domain.AlertSummary{Errors: 1, Warnings: 2, Infos: 1}, s)
}

func TestHasBlocking(t *testing.T) {
	assert.False(t, domain.HasBlocking(nil))
	assert.False(t, domain.HasBlocking([]domain.Alert{{Severity: domain.SeverityWarning}}))
	assert.True(t, domain.HasBlocking([]domain.Alert{{Severity: domain.SeverityInfo}, {Severity: domain.SeverityError}}))
}

func TestNewHistoryEntry(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r := &domain.Report{
		ID:        "r-1",
		Source:    "acme.json",
		Siren:     "552100554",
		Status:    domain.StatusFail,
		Summary:   domain.AlertSummary{Errors: 1},
		Alerts:    []domain.Alert{{ID: domain.AlertEBITDASuperieurCA, Severity: domain.SeverityError}},
		Timestamp: ts,
	}
	e := domain.NewHistoryEntry(r)
	assert.Equal(t, "r-1", e.ReportID)
	assert.Equal(t, "2026-03-01T10:00:00Z", e.Timestamp)
	assert.Equal(t, "552100554", e.Siren)
	assert.Equal(t, []domain.AlertID{domain.AlertEBITDASuperieurCA}, e.AlertIDs)
}
