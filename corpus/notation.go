package corpus

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/jsphweid/fictadex/model"
)

// ParseEvent reads one token of the voice notation:
//
//	F#4        a quarter note
//	B-3:2      a half note, flat
//	D4:1/2^#   an eighth note the edition sharpens
//	C4+G4      a simultaneity
//	r:3/2      a rest
//
// Durations are quarter lengths and default to 1.
func ParseEvent(tok string) (*model.Event, error) {
	body, fictaText, hasFicta := strings.Cut(tok, "^")
	body, durText, hasDur := strings.Cut(body, ":")

	dur := model.QL(1, 1)
	if hasDur {
		var ok bool
		dur, ok = new(big.Rat).SetString(durText)
		if !ok || dur.Sign() <= 0 {
			return nil, fmt.Errorf("bad duration %q in %q", durText, tok)
		}
	}

	if body == "r" {
		if hasFicta {
			return nil, fmt.Errorf("rest %q cannot carry ficta", tok)
		}
		return model.NewRest(dur), nil
	}

	var pitches []model.Pitch
	for _, name := range strings.Split(body, "+") {
		p, err := model.ParsePitch(name)
		if err != nil {
			return nil, fmt.Errorf("token %q: %w", tok, err)
		}
		pitches = append(pitches, p)
	}

	var e *model.Event
	if len(pitches) == 1 {
		e = model.NewNote(pitches[0], dur)
	} else {
		e = model.NewChord(pitches, dur)
	}

	if hasFicta {
		acc, err := model.ParseAccidental(fictaText)
		if err != nil {
			return nil, fmt.Errorf("token %q: %w", tok, err)
		}
		if acc == model.NoAccidental {
			return nil, fmt.Errorf("token %q: empty ficta mark", tok)
		}
		e.Ficta = &acc
	}
	return e, nil
}

// ParseVoice reads a whitespace separated line of tokens.
func ParseVoice(name, text string) (*model.Sequence, error) {
	seq := model.NewSequence(name)
	for i, tok := range strings.Fields(text) {
		e, err := ParseEvent(tok)
		if err != nil {
			return nil, fmt.Errorf("voice %s, event %d: %w", name, i, err)
		}
		seq.Events = append(seq.Events, e)
	}
	return seq, nil
}

func MustVoice(name, text string) *model.Sequence {
	seq, err := ParseVoice(name, text)
	if err != nil {
		panic("Could not parse voice: " + err.Error())
	}
	return seq
}

// FormatEvent is the inverse of ParseEvent. Quarter notes omit the duration.
func FormatEvent(e *model.Event) string {
	var sb strings.Builder
	if e.IsRest {
		sb.WriteString("r")
	} else {
		for i, p := range e.Pitches {
			if i > 0 {
				sb.WriteString("+")
			}
			sb.WriteString(p.NameWithOctave())
		}
	}
	if e.Duration != nil && e.Duration.Cmp(model.QL(1, 1)) != 0 {
		sb.WriteString(":" + e.Duration.RatString())
	}
	if e.Ficta != nil {
		sb.WriteString("^" + e.Ficta.Symbol())
	}
	return sb.String()
}

func FormatVoice(seq *model.Sequence) string {
	toks := make([]string, len(seq.Events))
	for i, e := range seq.Events {
		toks[i] = FormatEvent(e)
	}
	return strings.Join(toks, " ")
}
