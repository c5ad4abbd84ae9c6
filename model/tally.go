package model

type Category = string

const (
	TotalNotes      Category = "totalNotes"
	PmfcAlt         Category = "pmfcAlt"
	CapuaAlt        Category = "capuaAlt"
	PmfcNotCapua    Category = "pmfcNotCapua"
	CapuaNotPmfc    Category = "capuaNotPmfc"
	PmfcAndCapua    Category = "pmfcAndCapua"
	PotentialChange Category = "potentialChange"
)

var baseCategories = []Category{TotalNotes, PmfcAlt, CapuaAlt, PmfcNotCapua, CapuaNotPmfc, PmfcAndCapua}

// Tally only ever grows; merge partial tallies with Add.
type Tally map[Category]int

func NewTally() Tally {
	t := make(Tally, len(baseCategories)+1)
	for _, c := range baseCategories {
		t[c] = 0
	}
	return t
}

// NewCorrectionTally also carries potentialChange.
func NewCorrectionTally() Tally {
	t := NewTally()
	t[PotentialChange] = 0
	return t
}

func (t Tally) Add(other Tally) {
	for k, v := range other {
		t[k] += v
	}
}

func (t Tally) Clone() Tally {
	c := make(Tally, len(t))
	c.Add(t)
	return c
}
