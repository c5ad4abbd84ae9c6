package midi

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/fictadex/corpus"
	"github.com/jsphweid/fictadex/ficta"
	"github.com/jsphweid/fictadex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestExportSoundsChosenSlot(t *testing.T) {
	upper := corpus.MustVoice("C", "D4 E4 F4 G4")
	lower := corpus.MustVoice("T", "C4 r B3:2")
	snippet := &model.Snippet{Kind: model.CadenceA, Voices: []*model.Sequence{upper, lower}}
	second := &model.Snippet{Kind: model.CadenceB, Voices: []*model.Sequence{corpus.MustVoice("C", "C5")}}

	store := ficta.NewStore()
	store.Propose(upper.Events[2], model.Sharp, ficta.RuleTwo)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, []*model.Snippet{snippet, nil, second}, store, ficta.RuleSlot))

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, s.Tracks, 2)

	assert := assert.New(t)
	assert.Equal([]Onset{{0, 62}, {960, 64}, {1920, 66}, {2880, 67}, {3840, 72}}, Onsets(s.Tracks[0]))
	assert.Equal([]Onset{{0, 60}, {1920, 59}}, Onsets(s.Tracks[1]))

	assert.Equal("T", TrackName(s.Tracks[1]))
	assert.Equal("C", TrackName(s.Tracks[0]))

	assert.Equal(model.NoAccidental, upper.Events[2].Pitch().Accidental)
}

func TestExportChords(t *testing.T) {
	v := corpus.MustVoice("C", "C4+G4:1/2 A4")
	snippet := &model.Snippet{Kind: model.CadenceA, Voices: []*model.Sequence{v}}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, []*model.Snippet{snippet}, ficta.NewStore(), ficta.EditorialSlot))
	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []Onset{{0, 60}, {0, 67}, {480, 69}}, Onsets(s.Tracks[0]))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mid")
	v := corpus.MustVoice("C", "G4 F4 G4")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, Export(f, []*model.Snippet{{Kind: model.CadenceA, Voices: []*model.Sequence{v}}}, ficta.NewStore(), ficta.RuleSlot))
	require.NoError(t, f.Close())

	s, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, Onsets(s.Tracks[0]), 3)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)
}

func TestReadFileTurnsPanicsIntoErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.mid")
	require.NoError(t, os.WriteFile(path, []byte("MThd"), 0o644))
	t.Cleanup(func() { readFrom = smf.ReadFrom })

	for _, v := range []any{"short track", errors.New("index out of range"), 42} {
		readFrom = func(io.Reader, ...smf.ReadOption) (*smf.SMF, error) { panic(v) }
		s, err := ReadFile(path)
		assert.Nil(t, s)
		assert.ErrorContains(t, err, "error parsing midi file", "%v", v)
	}
}

func TestTicks(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint32(960), ticks(model.QL(1, 1)))
	assert.Equal(uint32(1440), ticks(model.QL(3, 2)))
	assert.Equal(uint32(320), ticks(model.QL(1, 3)))
}
