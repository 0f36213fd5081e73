package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidSnapshot marks snapshot input that could not be decoded or is
// malformed at the boundary (bad SIREN, wrong JSON types).
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// HeadcountBracket is the categorical headcount selected in the diagnostic form.
type HeadcountBracket string

const (
	Headcount1      HeadcountBracket = "1"
	Headcount2To5   HeadcountBracket = "2-5"
	Headcount6To20  HeadcountBracket = "6-20"
	Headcount21To50 HeadcountBracket = "21-50"
	Headcount50Plus HeadcountBracket = "50+"
)

// ValidHeadcountBrackets lists the brackets offered by the form.
var ValidHeadcountBrackets = []HeadcountBracket{
	Headcount1, Headcount2To5, Headcount6To20, Headcount21To50, Headcount50Plus,
}

// Midpoint approximates the number of employees in the bracket.
// Unrecognized brackets map to 0.
func (h HeadcountBracket) Midpoint() int {
	switch h {
	case Headcount1:
		return 1
	case Headcount2To5:
		return 3
	case Headcount6To20:
		return 13
	case Headcount21To50:
		return 35
	case Headcount50Plus:
		return 75
	default:
		return 0
	}
}

// DiagnosticSnapshot holds the figures entered in the diagnostic form along
// with the registry (Pappers) values fetched for the same company.
// Nil pointers mean the figure was not provided.
type DiagnosticSnapshot struct {
	Siren string `json:"siren,omitempty" yaml:"siren,omitempty"`

	Revenue               *float64         `json:"revenue,omitempty"               yaml:"revenue,omitempty"`
	EBITDA                *float64         `json:"ebitda,omitempty"                yaml:"ebitda,omitempty"`
	Growth                float64          `json:"growth"                          yaml:"growth"`
	Recurring             float64          `json:"recurring"                       yaml:"recurring"`
	MasseSalariale        float64          `json:"masseSalariale"                  yaml:"masseSalariale"`
	Effectif              HeadcountBracket `json:"effectif"                        yaml:"effectif"`
	RemunerationDirigeant *float64         `json:"remunerationDirigeant,omitempty" yaml:"remunerationDirigeant,omitempty"`
	DettesFinancieres     *float64         `json:"dettesFinancieres,omitempty"     yaml:"dettesFinancieres,omitempty"`
	TresorerieActuelle    *float64         `json:"tresorerieActuelle,omitempty"    yaml:"tresorerieActuelle,omitempty"`
	ConcentrationClient   float64          `json:"concentrationClient"             yaml:"concentrationClient"`
	MRRMensuel            *float64         `json:"mrrMensuel,omitempty"            yaml:"mrrMensuel,omitempty"`

	PappersCA         *float64 `json:"pappersCA,omitempty"         yaml:"pappersCA,omitempty"`
	PappersEBITDA     *float64 `json:"pappersEBITDA,omitempty"     yaml:"pappersEBITDA,omitempty"`
	PappersTresorerie *float64 `json:"pappersTresorerie,omitempty" yaml:"pappersTresorerie,omitempty"`
	PappersDettes     *float64 `json:"pappersDettes,omitempty"     yaml:"pappersDettes,omitempty"`
}

// Float returns a pointer to v, for building snapshots in code.
func Float(v float64) *float64 { return &v }

// CheckSiren verifies the SIREN, when present, is nine digits.
func (s DiagnosticSnapshot) CheckSiren() error {
	if s.Siren == "" {
		return nil
	}
	if len(s.Siren) != 9 {
		return fmt.Errorf("%w: siren %q must have 9 digits", ErrInvalidSnapshot, s.Siren)
	}
	for _, c := range s.Siren {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: siren %q must contain only digits", ErrInvalidSnapshot, s.Siren)
		}
	}
	return nil
}
