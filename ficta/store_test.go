package ficta

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jsphweid/fictadex/model"
	"github.com/stretchr/testify/assert"
)

var allAccidentals = []model.Accidental{
	model.NoAccidental, model.Natural, model.Sharp, model.Flat, model.DoubleSharp, model.DoubleFlat,
}

func note(name string) *model.Event {
	return model.NewNote(model.MustPitch(name), model.QL(1, 1))
}

func TestPromoteRestoreRoundTrip(t *testing.T) {
	for _, orig := range allAccidentals {
		for _, proposed := range allAccidentals {
			name := fmt.Sprintf("real %q proposed %q", orig, proposed)
			t.Run(name, func(t *testing.T) {
				n := note("F4")
				n.Pitch().Accidental = orig
				s := NewStore()
				s.Propose(n, proposed, RuleOne)
				s.SetEditorialFicta(n, proposed)

				for _, slot := range []Slot{RuleSlot, EditorialSlot} {
					assert.True(t, s.Promote(n, slot))
					assert.Equal(t, proposed, n.Pitch().Accidental)
					s.RestorePitch(n)
					assert.Equal(t, orig, n.Pitch().Accidental)
				}
			})
		}
	}
}

func TestPromoteEmptySlotIsNoOp(t *testing.T) {
	n := note("B-4")
	s := NewStore()
	s.Propose(n, model.Natural, RuleOne)

	assert := assert.New(t)
	assert.False(s.Promote(n, EditorialSlot))
	assert.Equal(model.Flat, n.Pitch().Accidental)
	s.RestorePitch(n)
	assert.Equal(model.Flat, n.Pitch().Accidental)
}

func TestDoublePromoteLosesWrittenAccidental(t *testing.T) {
	n := note("F#4")
	s := NewStore()
	s.Propose(n, model.Natural, RuleOne)

	s.Promote(n, RuleSlot)
	s.Promote(n, RuleSlot)
	s.RestorePitch(n)
	assert.Equal(t, model.Natural, n.Pitch().Accidental)
}

func TestClearedFlatSurvivesPromotion(t *testing.T) {
	n := note("B-4")
	s := NewStore()
	s.ClearAccidental(n)
	s.Propose(n, model.Natural, RuleOne)

	assert := assert.New(t)
	assert.Equal(model.NoAccidental, n.Pitch().Accidental)
	s.Promote(n, RuleSlot)
	assert.Equal(model.Natural, n.Pitch().Accidental)
	s.RestorePitch(n)
	assert.Equal(model.Flat, n.Pitch().Accidental)
}

func TestRestoreWritten(t *testing.T) {
	flat, plain := note("B-4"), note("C5")
	seq := model.NewSequence("C", flat, plain)
	s := NewStore()
	s.ClearAccidental(flat)

	s.RestoreWritten(seq)
	assert.Equal(t, model.Flat, flat.Pitch().Accidental)
	assert.Equal(t, model.NoAccidental, plain.Pitch().Accidental)

	// nothing left to put back
	s.RestoreWritten(seq)
	assert.Equal(t, model.Flat, flat.Pitch().Accidental)
}

func TestClearAndRestoreFicta(t *testing.T) {
	n := note("F4")
	s := NewStore()
	s.Propose(n, model.Sharp, RuleTwo)

	assert := assert.New(t)
	s.ClearFicta(n)
	assert.Nil(s.Rule(n))
	s.RestoreFicta(n)
	if assert.NotNil(s.Rule(n)) {
		assert.Equal(model.Sharp, *s.Rule(n))
	}
	// restoring twice changes nothing
	s.ClearFicta(n)
	s.RestoreFicta(n)
	s.RestoreFicta(n)
	assert.Equal(model.Sharp, *s.Rule(n))
}

func TestClearFictaMovesProvenance(t *testing.T) {
	n := note("F4")
	s := NewStore()
	s.Propose(n, model.Sharp, RuleTwo)
	s.SetColor(n, "purple")

	assert := assert.New(t)
	s.ClearFicta(n)
	assert.Zero(s.Mask(n))
	assert.Empty(s.Color(n))

	s.RestoreFicta(n)
	assert.Equal(RuleTwo, s.Mask(n))
	assert.Equal("purple", s.Color(n))
}

func TestClearTwiceThenRestoreKeepsItCleared(t *testing.T) {
	n := note("F4")
	s := NewStore()
	s.Propose(n, model.Sharp, RuleTwo)

	s.ClearFicta(n)
	// the second clear moves the empty proposal over the sharp
	s.ClearFicta(n)
	s.RestoreFicta(n)

	assert := assert.New(t)
	assert.Nil(s.Rule(n))
	assert.Zero(s.Mask(n))

	s.RestoreFicta(n)
	assert.Nil(s.Rule(n))
}

func TestProposeCombinesMaskKeepsLastValue(t *testing.T) {
	n := note("F4")
	s := NewStore()
	s.Propose(n, model.Sharp, RuleOne)
	s.Propose(n, model.Natural, RuleThree)

	assert := assert.New(t)
	assert.Equal(RuleOne|RuleThree, s.Mask(n))
	assert.True(s.Mask(n).Has(RuleThree))
	assert.False(s.Mask(n).Has(RuleTwo))
	assert.Equal(model.Natural, *s.Rule(n))
}

func TestWithPromotedRestoresOnError(t *testing.T) {
	a, b := note("F4"), note("C4")
	seq := model.NewSequence("C", a, model.NewRest(model.QL(1, 1)), b)
	s := NewStore()
	s.Propose(a, model.Sharp, RuleTwo)

	boom := errors.New("boom")
	err := s.WithPromoted(RuleSlot, []*model.Sequence{seq}, func() error {
		assert.Equal(t, model.Sharp, a.Pitch().Accidental)
		assert.Equal(t, model.NoAccidental, b.Pitch().Accidental)
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, model.NoAccidental, a.Pitch().Accidental)
	slots, _ := s.Lookup(a)
	assert.False(t, slots.Promoted())
}

func TestLoadSeedsEditorial(t *testing.T) {
	n := note("C4")
	sharp := model.Sharp
	n.Ficta = &sharp
	s := NewStore()
	s.Load(model.NewSequence("T", n, note("D4")))

	assert.Equal(t, model.Sharp, *s.Editorial(n))
	assert.Nil(t, s.Rule(n))
}
