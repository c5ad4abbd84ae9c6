package evaluate

import (
	"math/big"

	"github.com/google/uuid"
	"github.com/jsphweid/fictadex/ficta"
	"github.com/jsphweid/fictadex/harmony"
	"github.com/jsphweid/fictadex/model"
	"github.com/jsphweid/fictadex/rules"
)

// CompareNote tallies whether the editor, the rules, or both altered e.
// Rests count for nothing.
func CompareNote(e *model.Event, store *ficta.Store) model.Tally {
	t := model.NewTally()
	if e.IsRest {
		return t
	}
	t[model.TotalNotes]++

	editorial, rule := store.Editorial(e) != nil, store.Rule(e) != nil
	switch {
	case editorial && rule:
		t[model.PmfcAlt]++
		t[model.CapuaAlt]++
		t[model.PmfcAndCapua]++
	case editorial:
		t[model.PmfcAlt]++
		t[model.PmfcNotCapua]++
	case rule:
		t[model.CapuaAlt]++
		t[model.CapuaNotPmfc]++
	}
	return t
}

func CompareSequence(seq *model.Sequence, store *ficta.Store) model.Tally {
	t := model.NewTally()
	for _, e := range seq.Events {
		t.Add(CompareNote(e, store))
	}
	return t
}

// Row is the harmonic interval of one note three ways. Empty names mean
// the interval is undefined.
type Row struct {
	Event     *model.Event `json:"-"`
	Note      string       `json:"note"`
	Normal    string       `json:"normal"`
	Editorial string       `json:"editorial"`
	Rule      string       `json:"rule"`
}

// CompareThree measures every note of a against b with no ficta, then with
// only that note's editorial accidental sounded, then with only its rule
// accidental sounded.
func CompareThree(a, b *model.Sequence, store *ficta.Store) ([]Row, error) {
	aligner := harmony.NewAligner(b)
	offsets := a.Offsets()

	name := func(e *model.Event, off *big.Rat) (string, error) {
		iv, err := aligner.Against(e, off)
		if err != nil || iv == nil {
			return "", err
		}
		return iv.Name(), nil
	}
	promoted := func(e *model.Event, off *big.Rat, slot ficta.Slot) (string, error) {
		if store.Promote(e, slot) {
			defer store.RestorePitch(e)
		}
		return name(e, off)
	}

	var rows []Row
	for i, e := range a.Events {
		if e.IsRest {
			continue
		}
		row := Row{Event: e, Note: e.Name()}
		var err error
		if row.Normal, err = name(e, offsets[i]); err != nil {
			return nil, err
		}
		if row.Editorial, err = promoted(e, offsets[i], ficta.EditorialSlot); err != nil {
			return nil, err
		}
		if row.Rule, err = promoted(e, offsets[i], ficta.RuleSlot); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type Verdict string

const (
	Better  Verdict = "better"
	Worse   Verdict = "worse"
	Neutral Verdict = "neutral"
)

func verdict(before, after model.IntervalClass) Verdict {
	switch {
	case before == model.Dissonance && after == model.PerfectConsonance:
		return Better
	case before == model.PerfectConsonance && after == model.Dissonance:
		return Worse
	}
	return Neutral
}

type Judgement struct {
	Counts rules.Counts
	// the evaluation with the rules' accidentals sounded
	Rules    *Evaluation
	Verdicts map[uuid.UUID]Verdict
	Better   int
	Worse    int
	Neutral  int
}

func (j *Judgement) record(v Verdict) {
	switch v {
	case Better:
		j.Better++
	case Worse:
		j.Worse++
	default:
		j.Neutral++
	}
}

// Judge applies the rules to both voices and labels every note whose
// interval is defined with and without the rules' accidentals.
func Judge(a, b *model.Sequence, store *ficta.Store) (*Judgement, error) {
	withRules, err := RuleEngine(a, b, store)
	if err != nil {
		return nil, err
	}
	without, err := WithoutFicta(a, b, store)
	if err != nil {
		return nil, err
	}

	j := &Judgement{Counts: withRules.Counts, Rules: withRules, Verdicts: make(map[uuid.UUID]Verdict)}
	pairs := []struct {
		seq           *model.Sequence
		before, after *Result
	}{
		{a, without.A, withRules.A},
		{b, without.B, withRules.B},
	}
	for _, p := range pairs {
		for _, e := range p.seq.Notes() {
			before, ok := p.before.Classes[e.ID]
			if !ok {
				continue
			}
			after, ok := p.after.Classes[e.ID]
			if !ok {
				continue
			}
			v := verdict(before, after)
			j.Verdicts[e.ID] = v
			j.record(v)
		}
	}
	return j, nil
}
