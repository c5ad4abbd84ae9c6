package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jsphweid/fictadex/corpus"
	"github.com/jsphweid/fictadex/model"
	"github.com/spf13/cobra"
)

var upperVoice, lowerVoice string

func init() {
	evaluateCmd.Flags().StringVar(&upperVoice, "upper", "", "upper voice, used when no piece is given")
	evaluateCmd.Flags().StringVar(&lowerVoice, "lower", "", "lower voice, used when no piece is given")
	rootCmd.AddCommand(evaluateCmd)
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [piece]",
	Short: "Evaluates the rules on one piece or on two voices",
	Long: `Evaluates the rules on every two-voice snippet of a piece, or on the
voices given with --upper and --lower, e.g.

  fictadex evaluate --upper "D4 E4 F4 G4" --lower "C4 C4 B3 C4"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var res *model.WorkResponse
		if len(args) == 1 {
			index, err := parsePiece(args[0])
			if err != nil {
				return err
			}
			src, _, err := openSource()
			if err != nil {
				return err
			}
			w, err := src.Work(cmd.Context(), index)
			if err != nil {
				return err
			}
			res = analyzeWork(w, logger)
		} else {
			if upperVoice == "" || lowerVoice == "" {
				return errors.New("give a piece or both --upper and --lower")
			}
			upper, err := corpus.ParseVoice("C", upperVoice)
			if err != nil {
				return err
			}
			lower, err := corpus.ParseVoice("T", lowerVoice)
			if err != nil {
				return err
			}
			r, err := analyzeVoices(upper, lower)
			if err != nil {
				return err
			}
			res = &model.WorkResponse{Snippets: []model.AnalyzeResponse{*r}}
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		if res.Title != "" {
			fmt.Fprintf(out, "piece %d: %s\n\n", res.Index, res.Title)
		}
		for _, sk := range res.Skipped {
			fmt.Fprintf(out, "%s skipped: %s\n\n", sk.Kind, sk.Error)
		}
		for i := range res.Snippets {
			printAnalysis(out, &res.Snippets[i])
			fmt.Fprintln(out)
		}
		return nil
	},
}
