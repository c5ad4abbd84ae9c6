package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jsphweid/fictadex/aggregate"
	"github.com/jsphweid/fictadex/ficta"
	"github.com/jsphweid/fictadex/midi"
	"github.com/jsphweid/fictadex/model"
	"github.com/jsphweid/fictadex/util"
	"github.com/spf13/cobra"
)

var (
	correctionType string
	midiOut        string
)

func init() {
	correctionsCmd.Flags().StringVar(&correctionType, "type", aggregate.Maj3.Name, "Maj3 or min6")
	correctionsCmd.Flags().StringVar(&midiOut, "midi", "", "write the snippets found, rules' accidentals sounded, to this MIDI file")
	rootCmd.AddCommand(correctionsCmd)
}

var correctionsCmd = &cobra.Command{
	Use:   "corrections",
	Short: "Tallies editor against rules on a cadential motion",
	Long: `Finds every note that starts the given motion (a minor third closing
to a unison, or a major sixth opening to an octave) across the range and
tallies whether the editor, the rules, or both altered it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// checked before touching the corpus
		if _, err := aggregate.ParseCorrectionType(correctionType); err != nil {
			return err
		}
		src, _, err := openSource()
		if err != nil {
			return err
		}
		res, err := aggregate.New(src, logger).FindCorrections(cmd.Context(), correctionType, pieceRange())
		if err != nil {
			return err
		}

		if midiOut != "" {
			if err := writeFound(midiOut, res); err != nil {
				return err
			}
			logger.Info("wrote midi", "path", midiOut, "snippets", len(res.Found))
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		fmt.Fprintf(out, "%s, pieces %d to %d\n", res.Type, start, end-1)
		for _, k := range util.GetKeys(res.Tally) {
			fmt.Fprintf(out, "  %s: %d\n", k, res.Tally[k])
		}
		fmt.Fprintf(out, "%d snippets where only the rules altered a candidate\n", len(res.Found))
		for _, f := range res.Found {
			fmt.Fprintf(out, "  %d %s (%s)\n", f.Piece, f.Title, f.Kind)
		}
		return nil
	},
}

func writeFound(path string, res *aggregate.Corrections) error {
	snippets := make([]*model.Snippet, len(res.Found))
	for i, f := range res.Found {
		snippets[i] = f.Snippet
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := midi.Export(f, snippets, res.Store, ficta.RuleSlot); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
