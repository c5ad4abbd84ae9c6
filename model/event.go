package model

import (
	"math/big"

	"github.com/google/uuid"
)

// QL builds a duration in quarter lengths.
func QL(num, den int64) *big.Rat {
	return big.NewRat(num, den)
}

// Event is one position of a melodic line: a note, a rest, or (rarely) a
// simultaneity of several pitches.
type Event struct {
	ID       uuid.UUID
	IsRest   bool
	Pitches  []Pitch
	Duration *big.Rat

	// Ficta is the accidental supplied by the modern edition, if any.
	// NOTE: this is source data, the working copy lives in ficta.Store
	Ficta *Accidental
}

func NewNote(p Pitch, dur *big.Rat) *Event {
	return &Event{ID: uuid.New(), Pitches: []Pitch{p}, Duration: dur}
}

func NewRest(dur *big.Rat) *Event {
	return &Event{ID: uuid.New(), IsRest: true, Duration: dur}
}

func NewChord(ps []Pitch, dur *big.Rat) *Event {
	return &Event{ID: uuid.New(), Pitches: ps, Duration: dur}
}

func (e *Event) IsChord() bool {
	return !e.IsRest && len(e.Pitches) > 1
}

// Pitch returns the sounding pitch of a note, nil for rests and chords.
// Promotions write through this pointer.
func (e *Event) Pitch() *Pitch {
	if e.IsRest || len(e.Pitches) != 1 {
		return nil
	}
	return &e.Pitches[0]
}

func (e *Event) Name() string {
	if e.IsRest {
		return "rest"
	}
	var res string
	for i, p := range e.Pitches {
		res += p.NameWithOctave()
		if i < len(e.Pitches)-1 {
			res += "+"
		}
	}
	return res
}

func (e *Event) clone() *Event {
	c := &Event{
		ID:      uuid.New(),
		IsRest:  e.IsRest,
		Pitches: append([]Pitch(nil), e.Pitches...),
	}
	if e.Duration != nil {
		c.Duration = new(big.Rat).Set(e.Duration)
	}
	if e.Ficta != nil {
		f := *e.Ficta
		c.Ficta = &f
	}
	return c
}

// Sequence is one voice of one excerpt, in temporal order.
type Sequence struct {
	Name   string
	Events []*Event
}

func NewSequence(name string, events ...*Event) *Sequence {
	return &Sequence{Name: name, Events: events}
}

func (s *Sequence) Len() int {
	return len(s.Events)
}

// Notes drops rests.
func (s *Sequence) Notes() []*Event {
	var res []*Event
	for _, e := range s.Events {
		if !e.IsRest {
			res = append(res, e)
		}
	}
	return res
}

// WithoutRests returns a sequence sharing this one's note events.
func (s *Sequence) WithoutRests() *Sequence {
	return &Sequence{Name: s.Name, Events: s.Notes()}
}

// Offsets gives the onset of every event, in quarter lengths from the start.
func (s *Sequence) Offsets() []*big.Rat {
	res := make([]*big.Rat, len(s.Events))
	cur := new(big.Rat)
	for i, e := range s.Events {
		res[i] = new(big.Rat).Set(cur)
		if e.Duration != nil {
			cur.Add(cur, e.Duration)
		}
	}
	return res
}

// Clone deep copies the events and gives them fresh IDs.
func (s *Sequence) Clone() *Sequence {
	c := &Sequence{Name: s.Name, Events: make([]*Event, len(s.Events))}
	for i, e := range s.Events {
		c.Events[i] = e.clone()
	}
	return c
}
