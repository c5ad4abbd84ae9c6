package harmony

import (
	"testing"

	"github.com/jsphweid/fictadex/corpus"
	"github.com/jsphweid/fictadex/ficta"
	"github.com/jsphweid/fictadex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(seq *model.Sequence, iv Intervals) []string {
	var res []string
	for _, e := range seq.Events {
		if i := iv.Of(e); i != nil {
			res = append(res, i.Name())
		} else {
			res = append(res, "")
		}
	}
	return res
}

func TestAttachAlignedVoices(t *testing.T) {
	a := corpus.MustVoice("C", "D4 E4 F4 G4")
	b := corpus.MustVoice("T", "C4 C4 B3 C4")

	iv, err := Attach(a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"M2", "M3", "d5", "P5"}, names(a, iv))

	back, err := Attach(b, a)
	require.NoError(t, err)
	assert.Equal(t, []string{"M2", "M3", "d5", "P5"}, names(b, back))
	assert.False(t, back.Of(b.Events[2]).Descending)
}

func TestAttachNeedsExactOnset(t *testing.T) {
	a := corpus.MustVoice("C", "D4:1/2 E4:3/2 F4")
	b := corpus.MustVoice("T", "B3 G3 D4")

	iv, err := Attach(a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"m3", "", "m3"}, names(a, iv))
}

func TestAttachUndefinedForRestsAndChords(t *testing.T) {
	a := corpus.MustVoice("C", "C5 D5 r E5")
	b := corpus.MustVoice("T", "E4+G4 r F4 C4")

	iv, err := Attach(a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "", "", "M10"}, names(a, iv))
	assert.Len(t, iv, 1)
}

func TestAttachIsNotRefreshedByPromotion(t *testing.T) {
	a := corpus.MustVoice("C", "D4 E4 F4 G4")
	b := corpus.MustVoice("T", "C4 C4 B3 C4")
	store := ficta.NewStore()
	store.Propose(a.Events[2], model.Sharp, ficta.RuleTwo)

	stale, err := Attach(a, b)
	require.NoError(t, err)

	err = store.WithPromoted(ficta.RuleSlot, []*model.Sequence{a, b}, func() error {
		fresh, err := Attach(a, b)
		require.NoError(t, err)
		assert.Equal(t, "P5", fresh.Of(a.Events[2]).Name())
		assert.Equal(t, "d5", stale.Of(a.Events[2]).Name())
		return nil
	})
	require.NoError(t, err)
}

func TestClasses(t *testing.T) {
	a := corpus.MustVoice("C", "D4 E4 F4 G4")
	b := corpus.MustVoice("T", "C4 C4 B3 C4")
	iv, err := Attach(a, b)
	require.NoError(t, err)

	classes, err := iv.Classes()
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(model.Dissonance, classes[a.Events[0].ID])
	assert.Equal(model.ImperfectConsonance, classes[a.Events[1].ID])
	assert.Equal(model.Dissonance, classes[a.Events[2].ID])
	assert.Equal(model.PerfectConsonance, classes[a.Events[3].ID])
}

func TestClassesPropagatesUnknownNames(t *testing.T) {
	a := corpus.MustVoice("C", "E5")
	b := corpus.MustVoice("T", "C4")
	iv, err := Attach(a, b)
	require.NoError(t, err)

	_, err = iv.Classes()
	assert.Error(t, err)
}
