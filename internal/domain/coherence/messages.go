package coherence

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"

	"github.com/valorisation/coherence/internal/domain"
)

const detailSuffix = ".detail"

var messages = buildCatalog()

var catalogFR = map[string]string{
	"CA_PAPPERS_DIVERGENCE":                "Le CA déclaré (%s €) s'écarte de plus de 50 %% du CA publié (%s €)",
	"CA_PAPPERS_DIVERGENCE.detail":         "CA déclaré : %s € / CA Pappers : %s € (écart de %s %%). Vérifiez l'exercice de référence.",
	"EBITDA_SUPERIEUR_CA":                  "L'EBITDA déclaré (%s €) est supérieur au chiffre d'affaires (%s €)",
	"EBITDA_SUPERIEUR_CA.detail":           "L'EBITDA ne peut pas dépasser le CA : EBITDA %s € pour un CA de %s €.",
	"MARGE_EXCESSIVE":                      "Marge EBITDA de %s %% : au-delà de 80 %% du CA",
	"MARGE_EXCESSIVE.detail":               "EBITDA %s € pour un CA de %s €. Une telle marge est très rare pour une PME.",
	"EBITDA_PAPPERS_DIVERGENCE":            "L'EBITDA déclaré (%s €) s'écarte de plus de 50 %% de l'EBITDA publié (%s €)",
	"EBITDA_PAPPERS_DIVERGENCE.detail":     "EBITDA déclaré : %s € / EBITDA Pappers : %s € (écart de %s %%).",
	"TRESORERIE_PAPPERS_DIVERGENCE":        "La trésorerie déclarée (%s €) s'écarte de plus de 50 %% de la trésorerie publiée (%s €)",
	"TRESORERIE_PAPPERS_DIVERGENCE.detail": "Trésorerie déclarée : %s € / trésorerie Pappers : %s € (écart de %s %%).",
	"DETTES_PAPPERS_DIVERGENCE":            "Les dettes financières déclarées (%s €) s'écartent de plus de 50 %% des dettes publiées (%s €)",
	"DETTES_PAPPERS_DIVERGENCE.detail":     "Dettes déclarées : %s € / dettes Pappers : %s € (écart de %s %%).",
	"MRR_VS_CA_INCOHERENT":                 "Le MRR annualisé (%s €) dépasse 3 fois le CA déclaré (%s €)",
	"MRR_VS_CA_INCOHERENT.detail":          "MRR mensuel : %s € soit %s € sur 12 mois, pour un CA de %s €.",
	"EFFECTIF_VS_MASSE_SALARIALE":          "Masse salariale de %s %% du CA pour un effectif de %s salariés",
	"EFFECTIF_VS_MASSE_SALARIALE.detail":   "Environ %s personnes déclarées : une masse salariale sous 20 %% du CA est inhabituelle.",
	"CROISSANCE_VS_HISTORIQUE":             "Croissance déclarée de %s %% sur un an",
	"CROISSANCE_VS_HISTORIQUE.detail":      "Une croissance supérieure à 100 %% est exceptionnelle : vérifiez le chiffre saisi.",
	"REMUNERATION_VS_CA":                   "La rémunération du dirigeant (%s €) dépasse 50 %% du CA (%s €)",
	"REMUNERATION_VS_CA.detail":            "Rémunération : %s € pour un CA de %s €. Elle devra être retraitée dans l'EBITDA normatif.",
}

var catalogEN = map[string]string{
	"CA_PAPPERS_DIVERGENCE":                "Declared revenue (%s €) differs by more than 50%% from the registry revenue (%s €)",
	"CA_PAPPERS_DIVERGENCE.detail":         "Declared revenue: %s € / Pappers revenue: %s € (%s%% gap). Check the reference fiscal year.",
	"EBITDA_SUPERIEUR_CA":                  "Declared EBITDA (%s €) is higher than revenue (%s €)",
	"EBITDA_SUPERIEUR_CA.detail":           "EBITDA cannot exceed revenue: EBITDA %s € for revenue of %s €.",
	"MARGE_EXCESSIVE":                      "EBITDA margin of %s%%: above 80%% of revenue",
	"MARGE_EXCESSIVE.detail":               "EBITDA %s € for revenue of %s €. Such a margin is very rare for an SME.",
	"EBITDA_PAPPERS_DIVERGENCE":            "Declared EBITDA (%s €) differs by more than 50%% from the registry EBITDA (%s €)",
	"EBITDA_PAPPERS_DIVERGENCE.detail":     "Declared EBITDA: %s € / Pappers EBITDA: %s € (%s%% gap).",
	"TRESORERIE_PAPPERS_DIVERGENCE":        "Declared cash (%s €) differs by more than 50%% from the registry cash (%s €)",
	"TRESORERIE_PAPPERS_DIVERGENCE.detail": "Declared cash: %s € / Pappers cash: %s € (%s%% gap).",
	"DETTES_PAPPERS_DIVERGENCE":            "Declared financial debt (%s €) differs by more than 50%% from the registry debt (%s €)",
	"DETTES_PAPPERS_DIVERGENCE.detail":     "Declared debt: %s € / Pappers debt: %s € (%s%% gap).",
	"MRR_VS_CA_INCOHERENT":                 "Annualised MRR (%s €) is more than 3 times declared revenue (%s €)",
	"MRR_VS_CA_INCOHERENT.detail":          "Monthly MRR: %s €, i.e. %s € over 12 months, for revenue of %s €.",
	"EFFECTIF_VS_MASSE_SALARIALE":          "Payroll of %s%% of revenue for a headcount of %s employees",
	"EFFECTIF_VS_MASSE_SALARIALE.detail":   "About %s people declared: payroll below 20%% of revenue is unusual.",
	"CROISSANCE_VS_HISTORIQUE":             "Declared year-over-year growth of %s%%",
	"CROISSANCE_VS_HISTORIQUE.detail":      "Growth above 100%% is exceptional: check the figure entered.",
	"REMUNERATION_VS_CA":                   "Owner compensation (%s €) exceeds 50%% of revenue (%s €)",
	"REMUNERATION_VS_CA.detail":            "Compensation: %s € for revenue of %s €. It must be restated in normalised EBITDA.",
}

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.French))
	for tag, entries := range map[language.Tag]map[string]string{
		language.French:  catalogFR,
		language.English: catalogEN,
	} {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic("coherence: bad catalog entry " + key + ": " + err.Error())
			}
		}
	}
	return b
}

func tagFor(l domain.Locale) language.Tag {
	if l == domain.LocaleEN {
		return language.English
	}
	return language.French
}

// formatter words alerts for one locale. It is created per Validate call.
type formatter struct {
	p *message.Printer
}

func newFormatter(l domain.Locale) formatter {
	return formatter{p: message.NewPrinter(tagFor(l), message.Catalog(messages))}
}

// amount renders a currency figure with the locale's thousands grouping and
// no decimals.
func (f formatter) amount(v float64) string {
	return f.p.Sprintf("%v", number.Decimal(v, number.Scale(0)))
}

// plain renders a percentage or count without grouping.
func (f formatter) plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ratio renders a ratio as a whole percentage, e.g. 0.6 -> "60".
func (f formatter) ratio(r float64) string {
	return f.plain(math.Round(r * 100))
}

func (f formatter) message(id domain.AlertID, args ...any) string {
	return f.p.Sprintf(string(id), args...)
}

func (f formatter) detail(id domain.AlertID, args ...any) string {
	return f.p.Sprintf(string(id)+detailSuffix, args...)
}

// FormatAmount renders v the way alert messages do for the given locale.
func FormatAmount(l domain.Locale, v float64) string {
	return newFormatter(l).amount(v)
}
