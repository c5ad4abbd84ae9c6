// Package rules implements the regulae of Nicolaus de Capua: fixed melodic
// patterns in a single voice that call for an unwritten accidental.
package rules

import (
	"fmt"

	"github.com/jsphweid/fictadex/ficta"
	"github.com/jsphweid/fictadex/interval"
	"github.com/jsphweid/fictadex/model"
)

type alteration int

const (
	// flat pivots lose the flat, everything else is raised
	sharpenOrNaturalize alteration = iota
	sharpen
	flatten
)

type pattern struct {
	mask ficta.RuleMask
	// directed intervals between consecutive window members
	intervals []string
	pivot     int
	// window members that must not carry a written accidental
	plain         []int
	alter         alteration
	outer, center string
}

var (
	// e.g. G F G => G F# G
	ruleOne = pattern{
		mask:      ficta.RuleOne,
		intervals: []string{"M-2", "M2"},
		pivot:     1,
		plain:     []int{0, 2},
		alter:     sharpenOrNaturalize,
		outer:     "blue",
		center:    "forestGreen",
	}
	// e.g. D E F G => D E F# G, or F A Bb C => F A B C
	ruleTwo = pattern{
		mask:      ficta.RuleTwo,
		intervals: []string{"M2", "m2", "M2"},
		pivot:     2,
		plain:     []int{0, 1, 3},
		alter:     sharpenOrNaturalize,
		outer:     "purple",
		center:    "forestGreen",
	}
	// e.g. E C D => E C# D
	ruleThree = pattern{
		mask:      ficta.RuleThree,
		intervals: []string{"M-3", "M2"},
		pivot:     1,
		plain:     []int{0, 1, 2},
		alter:     sharpen,
		outer:     "deepPink",
		center:    "forestGreen",
	}
	// e.g. D B A => D Bb A
	ruleFourA = pattern{
		mask:      ficta.RuleFourA,
		intervals: []string{"m-3", "M-2"},
		pivot:     1,
		plain:     []int{0, 1, 2},
		alter:     flatten,
		outer:     "orange",
		center:    "forestGreen",
	}
	// e.g. D F G => D F# G, or G Bb C => G B C
	ruleFourB = pattern{
		mask:      ficta.RuleFourB,
		intervals: []string{"m3", "M2"},
		pivot:     1,
		plain:     []int{0, 2},
		alter:     sharpenOrNaturalize,
		outer:     "orange",
		center:    "green",
	}
)

// apply slides the pattern's window across seq one event at a time. Windows
// containing a rest or a chord are skipped. Returns the number of pivots matched.
func (p pattern) apply(seq *model.Sequence, store *ficta.Store) (int, error) {
	width := len(p.intervals) + 1
	numChanged := 0

	for i := 0; i+width <= len(seq.Events); i++ {
		window := seq.Events[i : i+width]
		if !allNotes(window) {
			continue
		}
		if p.writtenAccidental(window) {
			continue
		}

		pivot := window[p.pivot]
		// never seems to improve things
		if step := pivot.Pitch().Step; step == model.StepA || step == model.StepD {
			continue
		}

		ok, err := p.matches(window)
		if err != nil {
			return numChanged, fmt.Errorf("window at %d: %w", i, err)
		}
		if !ok {
			continue
		}

		numChanged++
		p.alterPivot(pivot, store)
		for j, e := range window {
			if j == p.pivot {
				store.SetColor(e, p.center)
			} else {
				store.SetColor(e, p.outer)
			}
		}
	}

	return numChanged, nil
}

func allNotes(window []*model.Event) bool {
	for _, e := range window {
		if e.Pitch() == nil {
			return false
		}
	}
	return true
}

func (p pattern) writtenAccidental(window []*model.Event) bool {
	for _, j := range p.plain {
		if window[j].Pitch().Accidental != model.NoAccidental {
			return true
		}
	}
	return false
}

func (p pattern) matches(window []*model.Event) (bool, error) {
	for j, want := range p.intervals {
		iv, err := interval.Notes(window[j], window[j+1])
		if err != nil {
			return false, err
		}
		if iv.DirectedName() != want {
			return false, nil
		}
	}
	return true, nil
}

func (p pattern) alterPivot(pivot *model.Event, store *ficta.Store) {
	switch p.alter {
	case sharpen:
		store.Propose(pivot, model.Sharp, p.mask)
	case flatten:
		store.Propose(pivot, model.Flat, p.mask)
	default:
		if pivot.Pitch().Accidental == model.Flat {
			store.ClearAccidental(pivot)
			store.Propose(pivot, model.Natural, p.mask)
		} else {
			store.Propose(pivot, model.Sharp, p.mask)
		}
	}
}

// RuleOne: a line descending a major second and returning makes the second minor.
func RuleOne(seq *model.Sequence, store *ficta.Store) (int, error) {
	return ruleOne.apply(seq, store)
}

// RuleTwo: ascending M2 m2 M2 becomes M2 M2 m2.
func RuleTwo(seq *model.Sequence, store *ficta.Store) (int, error) {
	return ruleTwo.apply(seq, store)
}

// RuleThree: a descending major third followed by an ascending major second
// raises the middle note.
func RuleThree(seq *model.Sequence, store *ficta.Store) (int, error) {
	return ruleThree.apply(seq, store)
}

// RuleFourA is the less likely reading of the fourth rule: a descending minor
// third then a descending major second lowers the middle note. Apply leaves it out.
func RuleFourA(seq *model.Sequence, store *ficta.Store) (int, error) {
	return ruleFourA.apply(seq, store)
}

// RuleFourB: an ascending minor third followed by an ascending major second
// raises the middle note.
func RuleFourB(seq *model.Sequence, store *ficta.Store) (int, error) {
	return ruleFourB.apply(seq, store)
}

type Counts struct {
	One   int `json:"one"`
	Two   int `json:"two"`
	Three int `json:"three"`
	FourA int `json:"fourA"`
	FourB int `json:"fourB"`
}

func (c *Counts) Add(o Counts) {
	c.One += o.One
	c.Two += o.Two
	c.Three += o.Three
	c.FourA += o.FourA
	c.FourB += o.FourB
}

func (c Counts) Total() int {
	return c.One + c.Two + c.Three + c.FourA + c.FourB
}

// Apply clears earlier rule proposals on seq, puts back any flat an earlier
// run removed, and runs rules 1, 2, 3 and 4B in that order. Every rule sees
// every window; an earlier match never hides a note from a later rule.
func Apply(seq *model.Sequence, store *ficta.Store) (Counts, error) {
	store.RestoreWritten(seq)
	store.ClearSequence(seq)
	return run(seq, store, false)
}

// Frequency runs all five rules, 4A included, without clearing anything first.
func Frequency(seq *model.Sequence, store *ficta.Store) (Counts, error) {
	return run(seq, store, true)
}

func run(seq *model.Sequence, store *ficta.Store, withFourA bool) (Counts, error) {
	var c Counts
	var err error
	if c.One, err = RuleOne(seq, store); err != nil {
		return c, fmt.Errorf("rule one: %w", err)
	}
	if c.Two, err = RuleTwo(seq, store); err != nil {
		return c, fmt.Errorf("rule two: %w", err)
	}
	if c.Three, err = RuleThree(seq, store); err != nil {
		return c, fmt.Errorf("rule three: %w", err)
	}
	if withFourA {
		if c.FourA, err = RuleFourA(seq, store); err != nil {
			return c, fmt.Errorf("rule four A: %w", err)
		}
	}
	if c.FourB, err = RuleFourB(seq, store); err != nil {
		return c, fmt.Errorf("rule four B: %w", err)
	}
	return c, nil
}
