// Package harmony aligns two voices by onset and measures the vertical
// interval each note makes with whatever the other voice attacks at the same
// moment.
package harmony

import (
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/jsphweid/fictadex/interval"
	"github.com/jsphweid/fictadex/model"
)

// Intervals holds the harmonic interval of each note of one voice. A missing
// entry means undefined: nothing attacked in the partner, a rest, or a chord.
type Intervals map[uuid.UUID]*interval.Interval

func (iv Intervals) Of(e *model.Event) *interval.Interval {
	return iv[e.ID]
}

// Aligner looks up the partner voice by exact onset.
type Aligner struct {
	byOffset map[string]*model.Event
}

func NewAligner(partner *model.Sequence) *Aligner {
	a := &Aligner{byOffset: make(map[string]*model.Event, partner.Len())}
	for i, off := range partner.Offsets() {
		key := off.RatString()
		// a zero-length event shares its onset with the next one; keep the first
		if _, ok := a.byOffset[key]; !ok {
			a.byOffset[key] = partner.Events[i]
		}
	}
	return a
}

// At returns the partner event beginning exactly at offset, if any.
func (a *Aligner) At(offset *big.Rat) *model.Event {
	return a.byOffset[offset.RatString()]
}

// Against measures e, sounding at offset, against the partner. It returns a
// nil interval when the pair is undefined.
func (a *Aligner) Against(e *model.Event, offset *big.Rat) (*interval.Interval, error) {
	other := a.At(offset)
	if other == nil {
		return nil, nil
	}
	p1, p2 := e.Pitch(), other.Pitch()
	if p1 == nil || p2 == nil {
		return nil, nil
	}
	iv, err := interval.Between(*p1, *p2)
	if err != nil {
		return nil, fmt.Errorf("%s against %s: %w", e.Name(), other.Name(), err)
	}
	return iv, nil
}

// Attach measures every event of a against b from the pitches as they are
// right now. Results are not invalidated by a later Promote or RestorePitch;
// call Attach again after one.
func Attach(a, b *model.Sequence) (Intervals, error) {
	aligner := NewAligner(b)
	res := make(Intervals, a.Len())
	for i, off := range a.Offsets() {
		e := a.Events[i]
		iv, err := aligner.Against(e, off)
		if err != nil {
			return nil, err
		}
		if iv != nil {
			res[e.ID] = iv
		}
	}
	return res, nil
}

// Classes classifies every defined interval.
func (iv Intervals) Classes() (map[uuid.UUID]model.IntervalClass, error) {
	res := make(map[uuid.UUID]model.IntervalClass, len(iv))
	for id, i := range iv {
		c, err := interval.Classify(i)
		if err != nil {
			return nil, err
		}
		res[id] = c
	}
	return res, nil
}
