package model

import (
	"fmt"
	"strconv"
	"strings"
)

type Step int

const (
	StepC Step = iota
	StepD
	StepE
	StepF
	StepG
	StepA
	StepB
)

var stepNames = [...]string{"C", "D", "E", "F", "G", "A", "B"}

// semitones above C for each natural step
var stepSemitones = [...]int{0, 2, 4, 5, 7, 9, 11}

func (s Step) String() string {
	if s < StepC || s > StepB {
		return "?"
	}
	return stepNames[s]
}

func (s Step) Semitones() int {
	return stepSemitones[s]
}

func ParseStep(r byte) (Step, error) {
	switch r {
	case 'C', 'c':
		return StepC, nil
	case 'D', 'd':
		return StepD, nil
	case 'E', 'e':
		return StepE, nil
	case 'F', 'f':
		return StepF, nil
	case 'G', 'g':
		return StepG, nil
	case 'A', 'a':
		return StepA, nil
	case 'B', 'b':
		return StepB, nil
	}
	return 0, fmt.Errorf("unknown step %q", r)
}

// Accidental is the written alteration of a pitch. NoAccidental and Natural
// sound the same but are not interchangeable: a natural is still an
// accidental as far as the rules are concerned.
type Accidental int8

const (
	NoAccidental Accidental = iota
	Natural
	Sharp
	Flat
	DoubleSharp
	DoubleFlat
)

func (a Accidental) Alter() int {
	switch a {
	case Sharp:
		return 1
	case Flat:
		return -1
	case DoubleSharp:
		return 2
	case DoubleFlat:
		return -2
	}
	return 0
}

func (a Accidental) String() string {
	switch a {
	case Natural:
		return "natural"
	case Sharp:
		return "sharp"
	case Flat:
		return "flat"
	case DoubleSharp:
		return "double-sharp"
	case DoubleFlat:
		return "double-flat"
	}
	return ""
}

// Symbol uses the same spelling ParseAccidental accepts.
func (a Accidental) Symbol() string {
	switch a {
	case Natural:
		return "n"
	case Sharp:
		return "#"
	case Flat:
		return "-"
	case DoubleSharp:
		return "##"
	case DoubleFlat:
		return "--"
	}
	return ""
}

func (a Accidental) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Accidental) UnmarshalText(text []byte) error {
	v, err := ParseAccidental(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func ParseAccidental(s string) (Accidental, error) {
	switch s {
	case "":
		return NoAccidental, nil
	case "n", "natural":
		return Natural, nil
	case "#", "sharp":
		return Sharp, nil
	case "-", "b", "flat":
		return Flat, nil
	case "##", "double-sharp":
		return DoubleSharp, nil
	case "--", "double-flat":
		return DoubleFlat, nil
	}
	return NoAccidental, fmt.Errorf("unknown accidental %q", s)
}

type Pitch struct {
	Step       Step
	Accidental Accidental
	Octave     int
}

func (p Pitch) Name() string {
	return p.Step.String() + p.Accidental.Symbol()
}

func (p Pitch) NameWithOctave() string {
	return p.Name() + strconv.Itoa(p.Octave)
}

func (p Pitch) String() string {
	return p.NameWithOctave()
}

// Diatonic counts diatonic steps from C0.
func (p Pitch) Diatonic() int {
	return p.Octave*7 + int(p.Step)
}

// MIDI returns the key number, C4 being 60.
func (p Pitch) MIDI() int {
	return (p.Octave+1)*12 + p.Step.Semitones() + p.Accidental.Alter()
}

// ParsePitch reads names like "F#4", "B-3" or "Cn5". The octave defaults to 4.
func ParsePitch(s string) (Pitch, error) {
	var p Pitch
	if len(s) == 0 {
		return p, fmt.Errorf("empty pitch")
	}
	step, err := ParseStep(s[0])
	if err != nil {
		return p, err
	}
	p.Step = step

	rest := s[1:]
	i := strings.IndexAny(rest, "0123456789")
	accText := rest
	octave := 4
	if i >= 0 {
		accText = rest[:i]
		octave, err = strconv.Atoi(rest[i:])
		if err != nil {
			return p, fmt.Errorf("bad octave in pitch %q: %w", s, err)
		}
	}
	acc, err := ParseAccidental(accText)
	if err != nil {
		return p, fmt.Errorf("bad pitch %q: %w", s, err)
	}
	p.Accidental = acc
	p.Octave = octave
	return p, nil
}

func MustPitch(s string) Pitch {
	p, err := ParsePitch(s)
	if err != nil {
		panic("Could not parse pitch: " + err.Error())
	}
	return p
}
