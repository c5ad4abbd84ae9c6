package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jsphweid/fictadex/aggregate"
	"github.com/jsphweid/fictadex/constants"
	"github.com/jsphweid/fictadex/corpus"
	"github.com/jsphweid/fictadex/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    constants.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fictadex",
	Short: "Musica ficta by the rules of Nicolaus de Capua",
	Long: `fictadex proposes the accidentals Nicolaus de Capua's rules call for,
compares them with an edition's and with no ficta at all, and runs the
corpus studies over a range of works.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(logging.Config{Level: logLevel, JSON: cfg.LogJSON})
		return err
	},
}

var (
	corpusPath string
	logLevel   string
	start, end int
	asJSON     bool
)

func init() {
	var err error
	cfg, err = constants.Load()
	cobra.CheckErr(err)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&corpusPath, "corpus", cfg.CorpusPath, "YAML corpus file, ignored when DYNAMO_TABLE is set")
	flags.StringVar(&logLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flags.IntVar(&start, "start", cfg.StartPiece, "first piece of the range")
	flags.IntVar(&end, "end", cfg.EndPiece, "piece after the last of the range")
	flags.BoolVar(&asJSON, "json", false, "print JSON")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	cobra.CheckErr(err)
}

func pieceRange() aggregate.Range {
	return aggregate.Range{Start: start, End: end}
}

// openSource reads works from DynamoDB when a table is configured and from
// the corpus file otherwise. The Memory is nil for DynamoDB.
func openSource() (corpus.Source, *corpus.Memory, error) {
	if cfg.DynamoTable != "" {
		d, err := corpus.NewDynamo(corpus.DynamoConfig{
			Endpoint: cfg.DynamoEndpoint,
			Region:   cfg.DynamoRegion,
			Table:    cfg.DynamoTable,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("reading works from dynamodb", "table", cfg.DynamoTable)
		return d, nil, nil
	}
	m, err := corpus.LoadFile(corpusPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("read corpus file", "path", corpusPath, "works", m.Len())
	return m, m, nil
}

func parsePiece(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("piece %q is not a number", arg)
	}
	return index, nil
}
