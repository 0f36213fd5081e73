package domain

import "time"

// Severity classifies an alert. Errors block a submission, warnings and infos
// are shown next to the offending form step.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ValidSeverities lists severities from most to least severe.
var ValidSeverities = []Severity{SeverityError, SeverityWarning, SeverityInfo}

// Rank orders severities for sorting: error < warning < info.
// Unknown severities sort last.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// AlertID is the stable identifier of a coherence rule.
type AlertID string

const (
	AlertCAPappersDivergence         AlertID = "CA_PAPPERS_DIVERGENCE"
	AlertEBITDASuperieurCA           AlertID = "EBITDA_SUPERIEUR_CA"
	AlertMargeExcessive              AlertID = "MARGE_EXCESSIVE"
	AlertEBITDAPappersDivergence     AlertID = "EBITDA_PAPPERS_DIVERGENCE"
	AlertTresoreriePappersDivergence AlertID = "TRESORERIE_PAPPERS_DIVERGENCE"
	AlertDettesPappersDivergence     AlertID = "DETTES_PAPPERS_DIVERGENCE"
	AlertMRRVsCAIncoherent           AlertID = "MRR_VS_CA_INCOHERENT"
	AlertEffectifVsMasseSalariale    AlertID = "EFFECTIF_VS_MASSE_SALARIALE"
	AlertCroissanceVsHistorique      AlertID = "CROISSANCE_VS_HISTORIQUE"
	AlertRemunerationVsCA            AlertID = "REMUNERATION_VS_CA"
)

// ValidAlertIDs enumerates every alert kind in rule declaration order.
var ValidAlertIDs = []AlertID{
	AlertCAPappersDivergence,
	AlertEBITDASuperieurCA,
	AlertMargeExcessive,
	AlertEBITDAPappersDivergence,
	AlertTresoreriePappersDivergence,
	AlertDettesPappersDivergence,
	AlertMRRVsCAIncoherent,
	AlertEffectifVsMasseSalariale,
	AlertCroissanceVsHistorique,
	AlertRemunerationVsCA,
}

// IsValidAlertID reports whether id names a known rule.
func IsValidAlertID(id AlertID) bool {
	for _, v := range ValidAlertIDs {
		if v == id {
			return true
		}
	}
	return false
}

// Alert is a single inconsistency detected in a diagnostic snapshot.
type Alert struct {
	ID       AlertID  `json:"id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Detail   string   `json:"detail,omitempty"`
	Step     int      `json:"step,omitempty"`
	Fields   []string `json:"fields,omitempty"`
}

// Rule describes one coherence rule for catalogs and documentation.
type Rule struct {
	ID          AlertID  `json:"id"`
	Severity    Severity `json:"severity"`
	Step        int      `json:"step"`
	Fields      []string `json:"fields"`
	Description string   `json:"description"`
}

// Report status values.
const (
	StatusPass = "pass"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// Report wraps the alerts produced for one snapshot with derived metadata.
type Report struct {
	ID        string       `json:"id"`
	Source    string       `json:"source,omitempty"`
	Siren     string       `json:"siren,omitempty"`
	Status    string       `json:"status"`
	Blocking  bool         `json:"blocking"`
	Summary   AlertSummary `json:"summary"`
	Alerts    []Alert      `json:"alerts"`
	Timestamp time.Time    `json:"timestamp"`
}

// AlertSummary counts alerts per severity.
type AlertSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// Summarize counts alerts per severity.
func Summarize(alerts []Alert) AlertSummary {
	var s AlertSummary
	for _, a := range alerts {
		switch a.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Infos++
		}
	}
	return s
}

// StatusFor derives pass/warn/fail from a set of alerts. In strict mode any
// warning fails.
func StatusFor(alerts []Alert, strict bool) string {
	status := StatusPass
	for _, a := range alerts {
		if a.Severity == SeverityError {
			return StatusFail
		}
		if a.Severity == SeverityWarning {
			status = StatusWarn
		}
	}
	if strict && status == StatusWarn {
		return StatusFail
	}
	return status
}

// HasBlocking reports whether any alert has error severity.
func HasBlocking(alerts []Alert) bool {
	for _, a := range alerts {
		if a.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Submission pairs a snapshot with the place it came from.
type Submission struct {
	Source   string
	Snapshot DiagnosticSnapshot
}

// HistoryEntry is the persisted trace of one validation run.
type HistoryEntry struct {
	ReportID  string       `json:"report_id"`
	Timestamp string       `json:"timestamp"`
	Source    string       `json:"source,omitempty"`
	Siren     string       `json:"siren,omitempty"`
	Status    string       `json:"status"`
	Summary   AlertSummary `json:"summary"`
	AlertIDs  []AlertID    `json:"alert_ids,omitempty"`
}

// NewHistoryEntry condenses a report for the history log.
func NewHistoryEntry(r *Report) HistoryEntry {
	ids := make([]AlertID, 0, len(r.Alerts))
	for _, a := range r.Alerts {
		ids = append(ids, a.ID)
	}
	return HistoryEntry{
		ReportID:  r.ID,
		Timestamp: r.Timestamp.UTC().Format(time.RFC3339),
		Source:    r.Source,
		Siren:     r.Siren,
		Status:    r.Status,
		Summary:   r.Summary,
		AlertIDs:  ids,
	}
}
