// Package ficta keeps the per-note alteration proposals in a side table keyed
// by event ID, so the events themselves only ever change through Promote.
package ficta

import (
	"github.com/google/uuid"
	"github.com/jsphweid/fictadex/model"
)

type RuleMask uint8

const (
	RuleOne   RuleMask = 1
	RuleTwo   RuleMask = 2
	RuleThree RuleMask = 4
	RuleFourB RuleMask = 8
	// only used by frequency studies, never by Apply
	RuleFourA RuleMask = 16
)

func (m RuleMask) Has(r RuleMask) bool {
	return m&r != 0
}

type Slot int

const (
	EditorialSlot Slot = iota
	RuleSlot
)

func (s Slot) String() string {
	if s == EditorialSlot {
		return "editorial"
	}
	return "rule"
}

// Slots holds every proposal for one note. nil means unset.
type Slots struct {
	Editorial *model.Accidental
	Rule      *model.Accidental
	Mask      RuleMask
	Color     string

	// set by ClearFicta, even when the proposal it moved aside was nil
	saved      bool
	savedRule  *model.Accidental
	savedMask  RuleMask
	savedColor string
	// backup of the real accidental while a proposal sits in the pitch
	savedPitch *model.Accidental
}

func (s *Slots) get(slot Slot) *model.Accidental {
	if slot == EditorialSlot {
		return s.Editorial
	}
	return s.Rule
}

// Promoted reports whether the real pitch currently holds a stashed accidental.
func (s *Slots) Promoted() bool {
	return s.savedPitch != nil
}

type Store struct {
	slots map[uuid.UUID]*Slots
}

func NewStore() *Store {
	return &Store{slots: make(map[uuid.UUID]*Slots)}
}

// Load seeds the editorial slot from the edition's accidentals.
func (s *Store) Load(seqs ...*model.Sequence) {
	for _, seq := range seqs {
		for _, e := range seq.Events {
			if e.Ficta != nil {
				s.SetEditorialFicta(e, *e.Ficta)
			}
		}
	}
}

// Slots returns the record for e, creating it on first use.
func (s *Store) Slots(e *model.Event) *Slots {
	sl, ok := s.slots[e.ID]
	if !ok {
		sl = &Slots{}
		s.slots[e.ID] = sl
	}
	return sl
}

func (s *Store) Lookup(e *model.Event) (*Slots, bool) {
	sl, ok := s.slots[e.ID]
	return sl, ok
}

func (s *Store) Editorial(e *model.Event) *model.Accidental {
	if sl, ok := s.slots[e.ID]; ok {
		return sl.Editorial
	}
	return nil
}

func (s *Store) Rule(e *model.Event) *model.Accidental {
	if sl, ok := s.slots[e.ID]; ok {
		return sl.Rule
	}
	return nil
}

func (s *Store) Mask(e *model.Event) RuleMask {
	if sl, ok := s.slots[e.ID]; ok {
		return sl.Mask
	}
	return 0
}

func (s *Store) Color(e *model.Event) string {
	if sl, ok := s.slots[e.ID]; ok {
		return sl.Color
	}
	return ""
}

func (s *Store) SetEditorialFicta(e *model.Event, acc model.Accidental) {
	s.Slots(e).Editorial = &acc
}

// Propose records a rule's alteration. The last rule to fire wins the value
// while the provenance mask keeps every rule that matched.
func (s *Store) Propose(e *model.Event, acc model.Accidental, rule RuleMask) {
	sl := s.Slots(e)
	sl.Rule = &acc
	sl.Mask |= rule
}

func (s *Store) SetColor(e *model.Event, color string) {
	s.Slots(e).Color = color
}

// ClearFicta moves the rule proposal, its provenance and its color aside so the rules
// can run again from scratch. An unset proposal is moved too, replacing any
// older backup.
func (s *Store) ClearFicta(e *model.Event) {
	sl := s.Slots(e)
	sl.saved = true
	sl.savedRule, sl.savedMask, sl.savedColor = sl.Rule, sl.Mask, sl.Color
	sl.Rule, sl.Mask, sl.Color = nil, 0, ""
}

// RestoreFicta puts back what the last ClearFicta moved aside. Without a
// backup it does nothing.
func (s *Store) RestoreFicta(e *model.Event) {
	sl, ok := s.slots[e.ID]
	if !ok || !sl.saved {
		return
	}
	sl.Rule, sl.Mask, sl.Color = sl.savedRule, sl.savedMask, sl.savedColor
	sl.saved, sl.savedRule, sl.savedMask, sl.savedColor = false, nil, 0, ""
}

func (s *Store) ClearSequence(seq *model.Sequence) {
	for _, e := range seq.Notes() {
		s.ClearFicta(e)
	}
}

func (s *Store) RestoreSequence(seq *model.Sequence) {
	for _, e := range seq.Notes() {
		s.RestoreFicta(e)
	}
}

// ClearAccidental stashes the real accidental and removes it from the pitch.
func (s *Store) ClearAccidental(e *model.Event) {
	p := e.Pitch()
	if p == nil || p.Accidental == model.NoAccidental {
		return
	}
	acc := p.Accidental
	s.Slots(e).savedPitch = &acc
	p.Accidental = model.NoAccidental
}

// Promote writes the named proposal into the real pitch, stashing what was
// there. Every Promote must be followed by RestorePitch before the next one:
// a second Promote stashes the already altered accidental. It reports
// whether anything was promoted.
//
// On a pitch emptied by ClearAccidental the stash keeps the accidental that
// was cleared, so RestorePitch brings back the written flat rather than the
// empty accidental Promote found.
func (s *Store) Promote(e *model.Event, slot Slot) bool {
	p := e.Pitch()
	sl, ok := s.slots[e.ID]
	if p == nil || !ok {
		return false
	}
	v := sl.get(slot)
	if v == nil {
		return false
	}
	// a pitch emptied by ClearAccidental keeps its earlier backup
	if p.Accidental != model.NoAccidental || sl.savedPitch == nil {
		cur := p.Accidental
		sl.savedPitch = &cur
	}
	p.Accidental = *v
	return true
}

func (s *Store) RestorePitch(e *model.Event) {
	p := e.Pitch()
	sl, ok := s.slots[e.ID]
	if p == nil || !ok || sl.savedPitch == nil {
		return
	}
	p.Accidental = *sl.savedPitch
	sl.savedPitch = nil
}

// RestoreWritten puts back every accidental ClearAccidental removed from seq.
// Nothing may be promoted at the time.
func (s *Store) RestoreWritten(seq *model.Sequence) {
	for _, e := range seq.Events {
		s.RestorePitch(e)
	}
}

// WithPromoted promotes slot on every event of seqs, runs fn and always
// restores the promoted pitches afterwards.
func (s *Store) WithPromoted(slot Slot, seqs []*model.Sequence, fn func() error) error {
	var promoted []*model.Event
	defer func() {
		for _, e := range promoted {
			s.RestorePitch(e)
		}
	}()
	for _, seq := range seqs {
		for _, e := range seq.Events {
			if s.Promote(e, slot) {
				promoted = append(promoted, e)
			}
		}
	}
	return fn()
}
