package cmd

import (
	"errors"

	"github.com/jsphweid/fictadex/corpus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Copies the corpus file into DynamoDB",
	Long: `Copies the works of the corpus file that fall in the range into the
table named by DYNAMO_TABLE, replacing any already there.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DynamoTable == "" {
			return errors.New("DYNAMO_TABLE is not set")
		}
		if err := pieceRange().Validate(); err != nil {
			return err
		}
		works, err := corpus.LoadWorks(corpusPath)
		if err != nil {
			return err
		}
		d, err := corpus.NewDynamo(corpus.DynamoConfig{
			Endpoint: cfg.DynamoEndpoint,
			Region:   cfg.DynamoRegion,
			Table:    cfg.DynamoTable,
		})
		if err != nil {
			return err
		}

		var n int
		for _, w := range works {
			if w.Index < start || w.Index >= end {
				continue
			}
			if err := d.PutWork(cmd.Context(), w); err != nil {
				return err
			}
			n++
			logger.Debug("stored work", "piece", w.Index, "title", w.Title)
		}
		logger.Info("loaded corpus", "path", corpusPath, "table", cfg.DynamoTable, "works", n)
		return nil
	},
}
