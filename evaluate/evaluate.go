// Package evaluate measures how the harmony of a two-voice excerpt changes
// when the editor's or the rules' accidentals are sounded.
package evaluate

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jsphweid/fictadex/ficta"
	"github.com/jsphweid/fictadex/harmony"
	"github.com/jsphweid/fictadex/interval"
	"github.com/jsphweid/fictadex/model"
	"github.com/jsphweid/fictadex/rules"
)

// Result is the harmony of one voice against its partner.
type Result struct {
	Profile   model.Profile
	Intervals harmony.Intervals
	// only notes with a defined harmonic interval appear
	Classes map[uuid.UUID]model.IntervalClass
}

func (r *Result) Class(e *model.Event) model.IntervalClass {
	return r.Classes[e.ID]
}

// Evaluation holds the results for both voices of a pair.
type Evaluation struct {
	A, B *Result
	// set by RuleEngine only
	Counts rules.Counts
}

// CompareOne classifies every note of a against b as the pitches stand now.
// Notes with no defined interval are left out of the profile.
func CompareOne(a, b *model.Sequence) (*Result, error) {
	iv, err := harmony.Attach(a, b)
	if err != nil {
		return nil, err
	}
	res := &Result{Intervals: iv, Classes: make(map[uuid.UUID]model.IntervalClass, len(iv))}
	for _, e := range a.Notes() {
		i := iv.Of(e)
		if i == nil {
			continue
		}
		c, err := interval.Classify(i)
		if err != nil {
			return nil, fmt.Errorf("voice %s, %s: %w", a.Name, e.Name(), err)
		}
		res.Classes[e.ID] = c
		res.Profile.Count(c)
	}
	return res, nil
}

func compareBoth(a, b *model.Sequence) (*Evaluation, error) {
	ra, err := CompareOne(a, b)
	if err != nil {
		return nil, err
	}
	rb, err := CompareOne(b, a)
	if err != nil {
		return nil, err
	}
	return &Evaluation{A: ra, B: rb}, nil
}

// WithoutFicta evaluates the written pitches, with every rule proposal set
// aside for the duration.
func WithoutFicta(a, b *model.Sequence, store *ficta.Store) (*Evaluation, error) {
	store.ClearSequence(a)
	store.ClearSequence(b)
	defer func() {
		store.RestoreSequence(a)
		store.RestoreSequence(b)
	}()
	return compareBoth(a, b)
}

// Editorial evaluates with the edition's accidentals sounded.
func Editorial(a, b *model.Sequence, store *ficta.Store) (*Evaluation, error) {
	var res *Evaluation
	err := store.WithPromoted(ficta.EditorialSlot, []*model.Sequence{a, b}, func() error {
		var err error
		res, err = compareBoth(a, b)
		return err
	})
	return res, err
}

// RuleEngine applies the rules to both voices and evaluates with their
// proposals sounded.
func RuleEngine(a, b *model.Sequence, store *ficta.Store) (*Evaluation, error) {
	ca, err := rules.Apply(a, store)
	if err != nil {
		return nil, fmt.Errorf("voice %s: %w", a.Name, err)
	}
	cb, err := rules.Apply(b, store)
	if err != nil {
		return nil, fmt.Errorf("voice %s: %w", b.Name, err)
	}

	var res *Evaluation
	err = store.WithPromoted(ficta.RuleSlot, []*model.Sequence{a, b}, func() error {
		var err error
		res, err = compareBoth(a, b)
		return err
	})
	if err != nil {
		return nil, err
	}
	res.Counts = ca
	res.Counts.Add(cb)
	return res, nil
}
