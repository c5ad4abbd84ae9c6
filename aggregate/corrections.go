package aggregate

import (
	"context"
	"fmt"

	"github.com/jsphweid/fictadex/evaluate"
	"github.com/jsphweid/fictadex/ficta"
	"github.com/jsphweid/fictadex/harmony"
	"github.com/jsphweid/fictadex/interval"
	"github.com/jsphweid/fictadex/model"
	"github.com/jsphweid/fictadex/rules"
	"github.com/jsphweid/fictadex/util"
)

// CorrectionType names a harmonic motion the editors tend to adjust: the
// starting interval and how soon it must reach its goal.
type CorrectionType struct {
	Name     string
	from     string
	within   int
	resolves func(*interval.Interval) bool
}

var (
	// a third closing to a unison
	Maj3 = CorrectionType{
		Name:     "Maj3",
		from:     "m3",
		within:   1,
		resolves: func(iv *interval.Interval) bool { return iv.SimpleName() == "P1" },
	}
	// a sixth opening to an octave; two notes allow a Landini cadence
	Min6 = CorrectionType{
		Name:     "min6",
		from:     "M6",
		within:   2,
		resolves: func(iv *interval.Interval) bool { return iv.SemiSimpleName() == "P8" },
	}
)

type InvalidCorrectionTypeError struct {
	Type string
}

func (e *InvalidCorrectionTypeError) Error() string {
	return fmt.Sprintf("invalid correction type %q: can check %q or %q", e.Type, Maj3.Name, Min6.Name)
}

func ParseCorrectionType(s string) (CorrectionType, error) {
	switch s {
	case Maj3.Name:
		return Maj3, nil
	case Min6.Name:
		return Min6, nil
	}
	return CorrectionType{}, &InvalidCorrectionTypeError{Type: s}
}

// Found is a snippet where the rules altered a candidate note the editors left alone.
type Found struct {
	Piece   int            `json:"piece"`
	Title   string         `json:"title"`
	Kind    string         `json:"kind"`
	Snippet *model.Snippet `json:"-"`
}

type Corrections struct {
	Type  string      `json:"type"`
	Tally model.Tally `json:"tally"`
	Found []Found     `json:"found"`
	// proposals for every snippet in Found; event IDs never repeat across a run
	Store *ficta.Store `json:"-"`
}

// FindCorrections finds every note whose harmonic interval is the type's
// starting interval and reaches its goal within the next few notes, and
// tallies how the editors and the rules treated it.
func (a *Aggregator) FindCorrections(ctx context.Context, correctionType string, r Range) (*Corrections, error) {
	typ, err := ParseCorrectionType(correctionType)
	if err != nil {
		return nil, err
	}

	res := &Corrections{Type: typ.Name, Tally: model.NewCorrectionTally(), Store: ficta.NewStore()}
	err = a.eachWork(ctx, r, true, func(w *model.Work) error {
		for _, ex := range a.excerpts(w) {
			tally, interesting, err := typ.search(ex.upper, ex.lower, res.Store)
			if err != nil {
				a.logger.Warn("dropping excerpt", ex.attrs(err)...)
				continue
			}
			res.Tally.Add(tally)
			if interesting {
				res.Found = append(res.Found, Found{Piece: w.Index, Title: w.Title, Kind: string(ex.snippet.Kind), Snippet: ex.snippet})
			}
		}
		return nil
	})
	return res, err
}

func (typ CorrectionType) search(upper, lower *model.Sequence, store *ficta.Store) (model.Tally, bool, error) {
	// measured before the rules run, so these are the written intervals
	upperIv, err := harmony.Attach(upper, lower)
	if err != nil {
		return nil, false, err
	}
	lowerIv, err := harmony.Attach(lower, upper)
	if err != nil {
		return nil, false, err
	}

	store.Load(upper, lower)
	if _, err := rules.Apply(upper, store); err != nil {
		return nil, false, err
	}
	if _, err := rules.Apply(lower, store); err != nil {
		return nil, false, err
	}

	tally := model.NewCorrectionTally()
	interesting := false
	for _, v := range []struct {
		seq *model.Sequence
		iv  harmony.Intervals
	}{{upper, upperIv}, {lower, lowerIv}} {
		notes := v.seq.Notes()
		for i, n := range notes {
			if hi := v.iv.Of(n); hi == nil || hi.SimpleName() != typ.from {
				continue
			}
			if !typ.reached(notes[i+1:util.Min(i+1+typ.within, len(notes))], v.iv) {
				continue
			}
			res := evaluate.CompareNote(n, store)
			res[model.PotentialChange] = 1
			if res[model.CapuaNotPmfc] == 1 {
				interesting = true
			}
			tally.Add(res)
		}
	}
	return tally, interesting, nil
}

func (typ CorrectionType) reached(next []*model.Event, iv harmony.Intervals) bool {
	for _, e := range next {
		if hi := iv.Of(e); hi != nil && typ.resolves(hi) {
			return true
		}
	}
	return false
}
