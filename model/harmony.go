package model

type IntervalClass int

const (
	Undefined IntervalClass = iota
	PerfectConsonance
	ImperfectConsonance
	Dissonance
)

func (c IntervalClass) String() string {
	switch c {
	case PerfectConsonance:
		return "perfect cons"
	case ImperfectConsonance:
		return "imperfect cons"
	case Dissonance:
		return "dissonance"
	}
	return "undefined"
}

func (c IntervalClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Profile counts harmonic intervals by class for one voice.
type Profile struct {
	Perfect   int `json:"perfect"`
	Imperfect int `json:"imperfect"`
	Others    int `json:"others"`
}

func (p *Profile) Count(c IntervalClass) {
	switch c {
	case PerfectConsonance:
		p.Perfect++
	case ImperfectConsonance:
		p.Imperfect++
	case Dissonance:
		p.Others++
	}
}

func (p Profile) Total() int {
	return p.Perfect + p.Imperfect + p.Others
}
