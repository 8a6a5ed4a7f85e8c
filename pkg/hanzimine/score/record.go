package score

import (
	"fmt"

	"github.com/cognicore/hanzimine/pkg/hanzimine/internalerr"
)

// Kind selects one field of a Record.
type Kind int

const (
	KindFreq Kind = iota
	KindCohesionL
	KindCohesionR
	KindCohesion
	KindCohesionS
	KindBranchEntropyL
	KindBranchEntropyR
	KindBranchEntropy
)

// Kinds lists every field in report column order.
var Kinds = []Kind{
	KindFreq,
	KindCohesionL,
	KindCohesionR,
	KindCohesion,
	KindCohesionS,
	KindBranchEntropyL,
	KindBranchEntropyR,
	KindBranchEntropy,
}

var kindNames = [...]string{
	KindFreq:           "freq",
	KindCohesionL:      "cohesion_l",
	KindCohesionR:      "cohesion_r",
	KindCohesion:       "cohesion",
	KindCohesionS:      "cohesion_s",
	KindBranchEntropyL: "branch_entropy_l",
	KindBranchEntropyR: "branch_entropy_r",
	KindBranchEntropy:  "branch_entropy",
}

// String returns the report header name of k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a header name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", internalerr.ErrUnknownScore, name)
}

// Header returns the field names in column order.
func Header() []string {
	out := make([]string, len(Kinds))
	for i, k := range Kinds {
		out[i] = k.String()
	}
	return out
}

// Record holds every score computed for one candidate token.
type Record struct {
	Freq           int64
	CohesionL      float64
	CohesionR      float64
	Cohesion       float64
	CohesionS      float64
	BranchEntropyL float64
	BranchEntropyR float64
	BranchEntropy  float64
}

// Value returns the field selected by k. Unknown kinds read as 0.
func (r Record) Value(k Kind) float64 {
	switch k {
	case KindFreq:
		return float64(r.Freq)
	case KindCohesionL:
		return r.CohesionL
	case KindCohesionR:
		return r.CohesionR
	case KindCohesion:
		return r.Cohesion
	case KindCohesionS:
		return r.CohesionS
	case KindBranchEntropyL:
		return r.BranchEntropyL
	case KindBranchEntropyR:
		return r.BranchEntropyR
	case KindBranchEntropy:
		return r.BranchEntropy
	}
	return 0
}

// Values returns every field in column order.
func (r Record) Values() []float64 {
	out := make([]float64, len(Kinds))
	for i, k := range Kinds {
		out[i] = r.Value(k)
	}
	return out
}
