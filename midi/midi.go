// Package midi renders snippets to Standard MIDI Files so proposals can be
// auditioned.
package midi

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/jsphweid/fictadex/ficta"
	"github.com/jsphweid/fictadex/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	Resolution = smf.MetricTicks(960)
	velocity   = 80
	tempo      = 72.0
)

type span struct {
	start, end uint32
	keys       []uint8
}

// Export writes one track per voice name, the snippets laid end to end, with
// slot's accidentals sounded. Each snippet starts after the longest voice of
// the one before.
func Export(w io.Writer, snippets []*model.Snippet, store *ficta.Store, slot ficta.Slot) error {
	var names []string
	voices := make(map[string][]span)

	var seqs []*model.Sequence
	for _, s := range snippets {
		if s != nil {
			seqs = append(seqs, s.Voices...)
		}
	}

	err := store.WithPromoted(slot, seqs, func() error {
		start := new(big.Rat)
		for _, s := range snippets {
			if s == nil {
				continue
			}
			longest := new(big.Rat)
			for _, v := range s.Voices {
				if _, ok := voices[v.Name]; !ok {
					names = append(names, v.Name)
					voices[v.Name] = nil
				}
				end := new(big.Rat).Set(start)
				for _, e := range v.Events {
					from := ticks(end)
					end.Add(end, e.Duration)
					if e.IsRest {
						continue
					}
					keys, err := keysOf(e)
					if err != nil {
						return fmt.Errorf("voice %s: %w", v.Name, err)
					}
					voices[v.Name] = append(voices[v.Name], span{start: from, end: ticks(end), keys: keys})
				}
				if d := new(big.Rat).Sub(end, start); d.Cmp(longest) > 0 {
					longest = d
				}
			}
			start.Add(start, longest)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s := smf.New()
	s.TimeFormat = Resolution
	for i, name := range names {
		var track smf.Track
		track.Add(0, smf.MetaTrackSequenceName(name))
		if i == 0 {
			track.Add(0, smf.MetaTempo(tempo))
		}
		addSpans(&track, uint8(i%16), voices[name])
		if err := s.Add(track); err != nil {
			return err
		}
	}
	_, err = s.WriteTo(w)
	return err
}

func addSpans(track *smf.Track, ch uint8, spans []span) {
	var cursor uint32
	for _, sp := range spans {
		delta := sp.start - cursor
		for _, k := range sp.keys {
			track.Add(delta, midi.NoteOn(ch, k, velocity))
			delta = 0
		}
		delta = sp.end - sp.start
		for _, k := range sp.keys {
			track.Add(delta, midi.NoteOff(ch, k))
			delta = 0
		}
		cursor = sp.end
	}
	track.Close(0)
}

func keysOf(e *model.Event) ([]uint8, error) {
	keys := make([]uint8, len(e.Pitches))
	for i, p := range e.Pitches {
		k := p.MIDI()
		if k < 0 || k > 127 {
			return nil, fmt.Errorf("%s is outside the MIDI range", p)
		}
		keys[i] = uint8(k)
	}
	return keys, nil
}

// ticks converts quarter lengths, truncating anything finer than a tick.
func ticks(ql *big.Rat) uint32 {
	t := new(big.Rat).Mul(ql, big.NewRat(int64(Resolution.Ticks4th()), 1))
	return uint32(new(big.Int).Quo(t.Num(), t.Denom()).Uint64())
}

type Onset struct {
	Tick uint32
	Key  uint8
}

// Onsets lists the note-ons of track with their absolute ticks.
func Onsets(track smf.Track) []Onset {
	var res []Onset
	var abs uint32
	for _, ev := range track {
		abs += ev.Delta
		var ch, key, vel uint8
		if ev.Message.GetNoteOn(&ch, &key, &vel) {
			res = append(res, Onset{abs, key})
		}
	}
	return res
}

// TrackName is empty when track has no name meta event.
func TrackName(track smf.Track) string {
	var name string
	for _, ev := range track {
		if ev.Message.GetMetaTrackName(&name) {
			return name
		}
	}
	return ""
}

// swapped in tests
var readFrom = smf.ReadFrom

// ReadFile parses an SMF from disk. The reader panics on some malformed
// input, see https://github.com/gomidi/midi/issues/20
func ReadFile(path string) (s *smf.SMF, e error) {
	defer func() {
		if r := recover(); r != nil {
			s, e = nil, fmt.Errorf("error parsing midi file: %v", r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	res, err := readFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file: %w", err)
	}
	return res, nil
}
