package aggregate

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/jsphweid/fictadex/corpus"
	"github.com/jsphweid/fictadex/logging"
	"github.com/jsphweid/fictadex/model"
	"github.com/jsphweid/fictadex/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ballate = `
works:
  - index: 2
    title: Rule only
    snippets:
      - kind: incipit
        voices:
          - {name: C, notes: "G4 r F4 G4"}
          - {name: T, notes: "D5 B4 A4"}
      - kind: cadenceA
        voices:
          - {name: C, notes: "A4 G4 F4 G4"}
          - {name: T, notes: "C4 C4 D4 G4"}
  - index: 3
    title: Rule and editor
    snippets:
      - kind: incipit
        voices:
          - {name: C, notes: "C5"}
          - {name: T, notes: "C4"}
      - kind: cadenceA
        voices:
          - {name: C, notes: "A4 G4 F4^# G4"}
          - {name: T, notes: "C4 C4 D4 G4"}
      - null
  - index: 4
    title: No incipit
    snippets:
      - kind: cadenceA
        voices:
          - {name: C, notes: "E4 C4 D4"}
  - index: 5
    title: One voice
    snippets:
      - kind: incipit
        voices:
          - {name: C, notes: "C5"}
          - {name: T, notes: "C4"}
      - kind: cadenceA
        voices:
          - {name: C, notes: "A4 G4 F4 G4"}
  - index: 8
    title: Broken
    snippets:
      - kind: incipit
        voices:
          - {name: C, notes: "C5"}
          - {name: T, notes: "C4"}
      - kind: cadenceB
        voices:
          - {name: C, notes: "C##4 D4"}
          - {name: T, notes: "C--4 D4"}
`

func load(t *testing.T, doc string) *corpus.Memory {
	works, err := corpus.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	return corpus.NewMemory(works...)
}

func newAggregator(t *testing.T, doc string) *Aggregator {
	return New(load(t, doc), logging.Discard())
}

func TestFindCorrectionsMaj3(t *testing.T) {
	a := newAggregator(t, ballate)
	res, err := a.FindCorrections(context.Background(), "Maj3", Range{Start: 2, End: 10})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(model.Tally{
		model.TotalNotes:      4,
		model.PotentialChange: 4,
		model.PmfcAlt:         1,
		model.CapuaAlt:        2,
		model.PmfcAndCapua:    1,
		model.CapuaNotPmfc:    1,
		model.PmfcNotCapua:    0,
	}, res.Tally)

	require.Len(t, res.Found, 1)
	assert.Equal(2, res.Found[0].Piece)
	assert.Equal("Rule only", res.Found[0].Title)
	assert.Equal("cadenceA", res.Found[0].Kind)

	upper := res.Found[0].Snippet.Voices[0]
	assert.Equal(model.Sharp, *res.Store.Rule(upper.Events[2]))
}

func TestFindCorrectionsMin6(t *testing.T) {
	a := newAggregator(t, `
works:
  - index: 2
    snippets:
      - kind: incipit
        voices: [{name: C, notes: "C5"}, {name: T, notes: "C4"}]
      - kind: cadenceA
        voices: [{name: C, notes: "A4 B4 C5"}, {name: T, notes: "C4 C4 C4"}]
`)
	res, err := a.FindCorrections(context.Background(), "min6", Range{Start: 0, End: 3})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(2, res.Tally[model.PotentialChange])
	assert.Equal(2, res.Tally[model.TotalNotes])
	assert.Equal(0, res.Tally[model.CapuaAlt])
	assert.Empty(res.Found)
}

type countingSource struct {
	corpus.Source
	calls int
}

func (c *countingSource) Work(ctx context.Context, index int) (*model.Work, error) {
	c.calls++
	return c.Source.Work(ctx, index)
}

func TestInvalidCorrectionTypeFailsFirst(t *testing.T) {
	src := &countingSource{Source: load(t, ballate)}
	a := New(src, logging.Discard())

	_, err := a.FindCorrections(context.Background(), "Maj7", Range{Start: 2, End: 10})
	var invalid *InvalidCorrectionTypeError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "Maj7", invalid.Type)
	assert.Zero(t, src.calls)
}

func TestSkippedExcerptsContributeNothing(t *testing.T) {
	a := newAggregator(t, ballate)
	ctx := context.Background()

	for _, r := range []Range{{4, 5}, {5, 6}, {6, 7}, {8, 9}} {
		res, err := a.FindCorrections(ctx, "Maj3", r)
		require.NoError(t, err)
		assert.Equal(t, model.NewCorrectionTally(), res.Tally, "range %v", r)
		assert.Empty(t, res.Found)
	}
}

func TestTallyAdditivity(t *testing.T) {
	a := newAggregator(t, ballate)
	ctx := context.Background()

	whole, err := a.FindCorrections(ctx, "Maj3", Range{2, 10})
	require.NoError(t, err)

	sum := model.NewCorrectionTally()
	for _, r := range []Range{{2, 3}, {3, 6}, {6, 10}} {
		part, err := a.FindCorrections(ctx, "Maj3", r)
		require.NoError(t, err)
		sum.Add(part.Tally)
	}
	assert.Equal(t, whole.Tally, sum)
}

func TestCancelledRunStops(t *testing.T) {
	a := newAggregator(t, ballate)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.FindCorrections(ctx, "Maj3", Range{2, 10})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = a.RuleFrequency(ctx, Range{2, 10})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBadRange(t *testing.T) {
	a := newAggregator(t, ballate)
	_, err := a.ImprovedHarmony(context.Background(), Range{Start: 5, End: 2})
	assert.Error(t, err)
}

func TestImprovedHarmony(t *testing.T) {
	a := newAggregator(t, `
works:
  - index: 2
    snippets:
      - kind: incipit
        voices: [{name: C, notes: "C5"}, {name: T, notes: "C4"}]
      - kind: cadenceA
        voices: [{name: C, notes: "D4 E4 F4 G4"}, {name: T, notes: "C4 C4 B3 C4"}]
`)
	check, err := a.ImprovedHarmony(context.Background(), Range{2, 3})
	require.NoError(t, err)
	assert.Equal(t, HarmonyCheck{PerfIgnored: 2, ImperfCapua: 1, ImperfIgnored: 1}, check)
}

func TestRuleFrequency(t *testing.T) {
	a := newAggregator(t, ballate)
	counts, err := a.RuleFrequency(context.Background(), Range{2, 5})
	require.NoError(t, err)

	// piece 2: G F G across the rest and D B A in the incipit, G F G in the
	// cadence; piece 3: G F G, the edition's sharp does not count as written;
	// piece 4 counts even without an incipit
	assert.Equal(t, rules.Counts{One: 3, Three: 1, FourA: 1}, counts)
}

func TestCompareCadencesAndSummarize(t *testing.T) {
	a := newAggregator(t, ballate)
	cad, err := a.CompareCadences(context.Background(), Range{2, 10})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(model.Tally{
		model.TotalNotes: 8, model.PmfcAlt: 1, model.CapuaAlt: 2,
		model.PmfcNotCapua: 0, model.CapuaNotPmfc: 1, model.PmfcAndCapua: 1,
	}, cad.Total)
	assert.Len(cad.PerWork, 2)

	sum := Summarize([]model.Tally{cad.PerWork[2], cad.PerWork[3], model.NewTally()})
	assert.Equal(2, sum.RuleRate.N)
	assert.InDelta(0.25, sum.RuleRate.Mean, 1e-9)
	assert.InDelta(0, sum.RuleRate.StdDev, 1e-9)
	assert.InDelta(0.125, sum.EditorRate.Mean, 1e-9)
	assert.InDelta(0.125*math.Sqrt2, sum.EditorRate.StdDev, 1e-9)
}

func TestSummarizeSmallSamples(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Summary{}, Summarize(nil))

	one := Summarize([]model.Tally{{model.TotalNotes: 4, model.CapuaAlt: 1}})
	assert.Equal(Stat{Mean: 0.25, N: 1}, one.RuleRate)
}

func TestParseCorrectionType(t *testing.T) {
	typ, err := ParseCorrectionType("min6")
	require.NoError(t, err)
	assert.Equal(t, "min6", typ.Name)

	_, err = ParseCorrectionType("maj3")
	assert.Error(t, err)
}
