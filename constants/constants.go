package constants

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// the ballate of the cadence book, as the studies were first run
const (
	DefaultStartPiece = 2
	DefaultEndPiece   = 459
)

type Config struct {
	CorpusPath string `env:"CORPUS_PATH" envDefault:"./corpus.yaml"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON    bool   `env:"LOG_JSON"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:"localhost:8080"`

	// when DYNAMO_TABLE is set works come from DynamoDB instead of CORPUS_PATH
	DynamoEndpoint string `env:"DYNAMO_ENDPOINT"`
	DynamoTable    string `env:"DYNAMO_TABLE"`
	DynamoRegion   string `env:"DYNAMO_REGION" envDefault:"us-east-1"`

	StartPiece int `env:"START_PIECE" envDefault:"2"`
	// excluded
	EndPiece int `env:"END_PIECE" envDefault:"459"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.EndPiece < cfg.StartPiece {
		return cfg, fmt.Errorf("END_PIECE %d is before START_PIECE %d", cfg.EndPiece, cfg.StartPiece)
	}
	return cfg, nil
}
