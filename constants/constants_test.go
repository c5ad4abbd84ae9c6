package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(DefaultStartPiece, cfg.StartPiece)
	assert.Equal(DefaultEndPiece, cfg.EndPiece)
	assert.Equal("./corpus.yaml", cfg.CorpusPath)
	assert.Empty(cfg.DynamoTable)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CORPUS_PATH", "/data/ballate.yaml")
	t.Setenv("START_PIECE", "232")
	t.Setenv("END_PIECE", "349")
	t.Setenv("DYNAMO_TABLE", "fictadex-works")

	cfg, err := Load()
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("/data/ballate.yaml", cfg.CorpusPath)
	assert.Equal(232, cfg.StartPiece)
	assert.Equal(349, cfg.EndPiece)
	assert.Equal("fictadex-works", cfg.DynamoTable)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("START_PIECE", "not-an-int")
	_, err := Load()
	assert.ErrorContains(t, err, "parse env:")

	t.Setenv("START_PIECE", "50")
	t.Setenv("END_PIECE", "10")
	_, err = Load()
	assert.Error(t, err)
}
