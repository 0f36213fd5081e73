package coherence

import (
	"strconv"

	"github.com/valorisation/coherence/internal/domain"
)

const (
	marginThreshold          = 0.8
	mrrRevenueMultiple       = 3
	payrollFloorPercent      = 20
	headcountFloor           = 10
	growthCeilingPercent     = 100
	compensationRevenueShare = 0.5
)

// Form steps the alerts deep-link to.
const (
	stepRevenue      = 2
	stepEBITDA       = 3
	stepGrowth       = 4
	stepPayroll      = 7
	stepCompensation = 10
	stepDebt         = 11
	stepCash         = 12
	stepMRR          = 14
)

// rule pairs a predicate with the wording of its alert. eval returns ok=false
// when the rule does not fire or lacks the data it needs.
type rule struct {
	domain.Rule
	eval func(s domain.DiagnosticSnapshot, f formatter) (message, detail string, ok bool)
}

// rules is evaluated in order; alerts of equal severity keep this order.
var rules = []rule{
	{
		Rule: domain.Rule{
			ID: domain.AlertCAPappersDivergence, Severity: domain.SeverityInfo, Step: stepRevenue,
			Fields:      []string{"revenue", "pappersCA"},
			Description: "declared revenue differs by more than 50% from registry revenue",
		},
		eval: func(s domain.DiagnosticSnapshot, f formatter) (string, string, bool) {
			if !positive(s.Revenue) || !positive(s.PappersCA) {
				return "", "", false
			}
			d, ok := diverges(s.Revenue, s.PappersCA)
			if !ok {
				return "", "", false
			}
			declared, ref := f.amount(*s.Revenue), f.amount(*s.PappersCA)
			return f.message(domain.AlertCAPappersDivergence, declared, ref),
				f.detail(domain.AlertCAPappersDivergence, declared, ref, f.ratio(d)), true
		},
	},
	{
		Rule: domain.Rule{
			ID: domain.AlertEBITDASuperieurCA, Severity: domain.SeverityError, Step: stepEBITDA,
			Fields:      []string{"ebitda", "revenue"},
			Description: "EBITDA is higher than revenue",
		},
		eval: func(s domain.DiagnosticSnapshot, f formatter) (string, string, bool) {
			if s.EBITDA == nil || !positive(s.Revenue) || *s.EBITDA <= *s.Revenue {
				return "", "", false
			}
			ebitda, revenue := f.amount(*s.EBITDA), f.amount(*s.Revenue)
			return f.message(domain.AlertEBITDASuperieurCA, ebitda, revenue),
				f.detail(domain.AlertEBITDASuperieurCA, ebitda, revenue), true
		},
	},
	{
		Rule: domain.Rule{
			ID: domain.AlertMargeExcessive, Severity: domain.SeverityWarning, Step: stepEBITDA,
			Fields:      []string{"ebitda", "revenue"},
			Description: "EBITDA margin above 80% of revenue",
		},
		eval: func(s domain.DiagnosticSnapshot, f formatter) (string, string, bool) {
			if !positive(s.EBITDA) || !positive(s.Revenue) {
				return "", "", false
			}
			margin := *s.EBITDA / *s.Revenue
			if margin <= marginThreshold {
				return "", "", false
			}
			return f.message(domain.AlertMargeExcessive, f.ratio(margin)),
				f.detail(domain.AlertMargeExcessive, f.amount(*s.EBITDA), f.amount(*s.Revenue)), true
		},
	},
	{
		Rule: domain.Rule{
			ID: domain.AlertEBITDAPappersDivergence, Severity: domain.SeverityInfo, Step: stepEBITDA,
			Fields:      []string{"ebitda", "pappersEBITDA"},
			Description: "declared EBITDA differs by more than 50% from registry EBITDA",
		},
		eval: func(s domain.DiagnosticSnapshot, f formatter) (string, string, bool) {
			return divergenceAlert(domain.AlertEBITDAPappersDivergence, s.EBITDA, s.PappersEBITDA, f)
		},
	},
	{
		Rule: domain.Rule{
			ID: domain.AlertTresoreriePappersDivergence, Severity: domain.SeverityInfo, Step: stepCash,
			Fields:      []string{"tresorerieActuelle", "pappersTresorerie"},
			Description: "declared cash differs by more than 50% from registry cash",
		},
		eval: func(s domain.DiagnosticSnapshot, f formatter) (string, string, bool) {
			return divergenceAlert(domain.AlertTresoreriePappersDivergence, s.TresorerieActuelle, s.PappersTresorerie, f)
		},
	},
	{
		Rule: domain.Rule{
			ID: domain.AlertDettesPappersDivergence, Severity: domain.SeverityInfo, Step: stepDebt,
			Fields:      []string{"dettesFinancieres", "pappersDettes"},
			Description: "declared financial debt differs by more than 50% from registry debt",
		},
		eval: func(s domain.DiagnosticSnapshot, f formatter) (string, string, bool) {
			return divergenceAlert(domain.AlertDettesPappersDivergence, s.DettesFinancieres, s.PappersDettes, f)
		},
	},
	{
		Rule: domain.Rule{
			ID: domain.AlertMRRVsCAIncoherent, Severity: domain.SeverityWarning, Step: stepMRR,
			Fields:      []string{"mrrMensuel", "revenue"},
			Description: "annualised MRR exceeds three times revenue",
		},
		eval: func(s domain.DiagnosticSnapshot, f formatter) (string, string, bool) {
			if !positive(s.MRRMensuel) || !positive(s.Revenue) {
				return "", "", false
			}
			annual := *s.MRRMensuel * 12
			if annual <= *s.Revenue*mrrRevenueMultiple {
				return "", "", false
			}
			return f.message(domain.AlertMRRVsCAIncoherent, f.amount(annual), f.amount(*s.Revenue)),
				f.detail(domain.AlertMRRVsCAIncoherent, f.amount(*s.MRRMensuel), f.amount(annual), f.amount(*s.Revenue)), true
		},
	},
	{
		Rule: domain.Rule{
			ID: domain.AlertEffectifVsMasseSalariale, Severity: domain.SeverityInfo, Step: stepPayroll,
			Fields:      []string{"masseSalariale", "effectif"},
			Description: "payroll below 20% of revenue with more than 10 employees",
		},
		eval: func(s domain.DiagnosticSnapshot, f formatter) (string, string, bool) {
			headcount := s.Effectif.Midpoint()
			if s.MasseSalariale >= payrollFloorPercent || headcount <= headcountFloor {
				return "", "", false
			}
			return f.message(domain.AlertEffectifVsMasseSalariale, f.plain(s.MasseSalariale), string(s.Effectif)),
				f.detail(domain.AlertEffectifVsMasseSalariale, strconv.Itoa(headcount)), true
		},
	},
	{
		Rule: domain.Rule{
			ID: domain.AlertCroissanceVsHistorique, Severity: domain.SeverityInfo, Step: stepGrowth,
			Fields:      []string{"growth"},
			Description: "declared growth above 100% year over year",
		},
		eval: func(s domain.DiagnosticSnapshot, f formatter) (string, string, bool) {
			if s.Growth <= growthCeilingPercent {
				return "", "", false
			}
			return f.message(domain.AlertCroissanceVsHistorique, f.plain(s.Growth)),
				f.detail(domain.AlertCroissanceVsHistorique), true
		},
	},
	{
		Rule: domain.Rule{
			ID: domain.AlertRemunerationVsCA, Severity: domain.SeverityWarning, Step: stepCompensation,
			Fields:      []string{"remunerationDirigeant", "revenue"},
			Description: "owner compensation exceeds 50% of revenue",
		},
		eval: func(s domain.DiagnosticSnapshot, f formatter) (string, string, bool) {
			if !positive(s.RemunerationDirigeant) || !positive(s.Revenue) {
				return "", "", false
			}
			if *s.RemunerationDirigeant <= *s.Revenue*compensationRevenueShare {
				return "", "", false
			}
			pay, revenue := f.amount(*s.RemunerationDirigeant), f.amount(*s.Revenue)
			return f.message(domain.AlertRemunerationVsCA, pay, revenue),
				f.detail(domain.AlertRemunerationVsCA, pay, revenue), true
		},
	},
}

// divergenceAlert words the declared-vs-registry rules, using the registry
// figure as the reference.
func divergenceAlert(id domain.AlertID, declared, reference *float64, f formatter) (string, string, bool) {
	d, ok := diverges(declared, reference)
	if !ok {
		return "", "", false
	}
	a, b := f.amount(*declared), f.amount(*reference)
	return f.message(id, a, b), f.detail(id, a, b, f.ratio(d)), true
}
