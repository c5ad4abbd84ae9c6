package evaluate

import (
	"testing"

	"github.com/jsphweid/fictadex/ficta"
	"github.com/jsphweid/fictadex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	a, b, store := pair("D4 E4 F4 G4", "C4 C4 B3 C4")

	res, err := Analyze(a, b, store)
	require.NoError(t, err)
	require.Len(t, res.Voices, 2)

	assert := assert.New(t)
	assert.Equal(1, res.RuleCounts["two"])
	assert.Equal(0, res.RuleCounts["one"])
	assert.Equal(2, res.Better)
	assert.Equal(0, res.Worse)
	assert.Equal(6, res.Neutral)

	upper := res.Voices[0]
	assert.Equal("C", upper.Name)
	assert.Equal(model.Profile{Perfect: 1, Imperfect: 1, Others: 2}, upper.WithoutFicta)
	assert.Equal(model.Profile{Perfect: 1, Imperfect: 1, Others: 2}, upper.Editorial)
	assert.Equal(model.Profile{Perfect: 2, Imperfect: 1, Others: 1}, upper.Rules)

	f := upper.Notes[2]
	assert.Equal("F4", f.Note)
	require.NotNil(t, f.Ficta)
	assert.Equal(model.Sharp, *f.Ficta)
	assert.Nil(f.Editorial)
	assert.Equal(uint8(ficta.RuleTwo), f.Rules)
	assert.NotEmpty(f.Color)
	assert.Equal(string(Better), f.Verdict)
	assert.Equal("d5", f.Normal)
	assert.Equal("d5", f.EditorialInterval)
	assert.Equal("P5", f.RuleInterval)

	// the verdict sounds the whole voice, the row only the note's own slot
	b3 := res.Voices[1].Notes[2]
	assert.Nil(b3.Ficta)
	assert.Equal(string(Better), b3.Verdict)
	assert.Equal("d5", b3.RuleInterval)

	assert.Equal(model.NoAccidental, a.Events[2].Pitch().Accidental)
}

func TestAnalyzePutsBackWrittenFlats(t *testing.T) {
	a, b, store := pair("C5 B-4 C5", "F4 G4 A4")

	res, err := Analyze(a, b, store)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(1, res.RuleCounts["one"])
	assert.Equal(model.Flat, a.Events[1].Pitch().Accidental)

	bflat := res.Voices[0].Notes[1]
	require.NotNil(t, bflat.Ficta)
	assert.Equal(model.Natural, *bflat.Ficta)
	assert.Equal("m3", bflat.Normal)
	assert.Equal("M3", bflat.RuleInterval)
	assert.Equal(string(Neutral), bflat.Verdict)
}
