package interval

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jsphweid/fictadex/model"
)

var (
	ErrNotPitched    = errors.New("interval needs two single pitches")
	ErrQualityRange  = errors.New("interval quality out of range")
	majorOrPerfect   = [...]int{0, 0, 2, 4, 5, 7, 9, 11} // indexed by simple generic size
	perfectQualities = map[int]string{0: "P", 1: "A", -1: "d", 2: "AA", -2: "dd", 3: "AAA", -3: "ddd"}
	majorQualities   = map[int]string{0: "M", -1: "m", 1: "A", -2: "d", 2: "AA", -3: "dd", 3: "AAA", -4: "ddd"}
	specificNames    = map[string]string{
		"P": "Perfect", "M": "Major", "m": "Minor", "A": "Augmented", "d": "Diminished",
		"AA": "Doubly-Augmented", "dd": "Doubly-Diminished",
		"AAA": "Triply-Augmented", "ddd": "Triply-Diminished",
	}
)

// Interval is the diatonic distance from one pitch to another.
type Interval struct {
	Quality    string
	Generic    int // undirected, 1 is a unison
	Descending bool
	Semitones  int // directed
}

// Between measures from a to b. Same pitch gives P1.
func Between(a, b model.Pitch) (*Interval, error) {
	steps := b.Diatonic() - a.Diatonic()
	semis := b.MIDI() - a.MIDI()

	iv := &Interval{Semitones: semis}
	if steps < 0 || (steps == 0 && semis < 0) {
		iv.Descending = true
		steps, semis = -steps, -semis
	}
	iv.Generic = steps + 1

	simple := steps%7 + 1
	diff := semis - (majorOrPerfect[simple] + 12*(steps/7))

	var ok bool
	if isPerfectable(simple) {
		iv.Quality, ok = perfectQualities[diff]
	} else {
		iv.Quality, ok = majorQualities[diff]
	}
	if !ok {
		return nil, fmt.Errorf("%w: %v to %v", ErrQualityRange, a, b)
	}
	return iv, nil
}

// Notes measures between two note events; rests and chords are an error.
func Notes(e1, e2 *model.Event) (*Interval, error) {
	p1, p2 := e1.Pitch(), e2.Pitch()
	if p1 == nil || p2 == nil {
		return nil, fmt.Errorf("%w: %s, %s", ErrNotPitched, e1.Name(), e2.Name())
	}
	return Between(*p1, *p2)
}

func isPerfectable(simple int) bool {
	return simple == 1 || simple == 4 || simple == 5
}

func (iv *Interval) Simple() int {
	return (iv.Generic-1)%7 + 1
}

// SemiSimple reduces compound intervals but keeps the octave as 8.
func (iv *Interval) SemiSimple() int {
	if iv.Generic <= 8 {
		return iv.Generic
	}
	s := iv.Simple()
	if s == 1 {
		return 8
	}
	return s
}

func (iv *Interval) Perfectable() bool {
	return isPerfectable(iv.Simple())
}

func (iv *Interval) Specific() string {
	return specificNames[iv.Quality]
}

func (iv *Interval) Name() string {
	return iv.Quality + strconv.Itoa(iv.Generic)
}

// DirectedName is e.g. "M-2" for a descending major second. Unisons carry no sign.
func (iv *Interval) DirectedName() string {
	if iv.Descending && iv.Generic > 1 {
		return iv.Quality + "-" + strconv.Itoa(iv.Generic)
	}
	return iv.Name()
}

func (iv *Interval) SimpleName() string {
	return iv.Quality + strconv.Itoa(iv.Simple())
}

func (iv *Interval) SemiSimpleName() string {
	return iv.Quality + strconv.Itoa(iv.SemiSimple())
}

func (iv *Interval) String() string {
	return iv.DirectedName()
}
