package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/jsphweid/fictadex/aggregate"
	"github.com/jsphweid/fictadex/model"
	"github.com/jsphweid/fictadex/rules"
	"github.com/jsphweid/fictadex/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Runs the corpus studies",
	Long: `Runs the corpus studies over the range: how often the rules perfect a
harmony, how often each rule fires, and how the rules' alterations in the
first cadences compare with the edition's.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, _, err := openSource()
		if err != nil {
			return err
		}
		a := aggregate.New(src, logger)
		ctx, r := cmd.Context(), pieceRange()

		var rep studiesReport
		if rep.Harmony, err = a.ImprovedHarmony(ctx, r); err != nil {
			return err
		}
		if rep.Frequency, err = a.RuleFrequency(ctx, r); err != nil {
			return err
		}
		if rep.Cadences, err = a.CompareCadences(ctx, r); err != nil {
			return err
		}
		pieces := util.GetKeys(rep.Cadences.PerWork)
		perWork := make([]model.Tally, len(pieces))
		notes := make([]int, len(pieces))
		for i, p := range pieces {
			perWork[i] = rep.Cadences.PerWork[p]
			notes[i] = perWork[i][model.TotalNotes]
		}
		rep.Summary = aggregate.Summarize(perWork)

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}

		h := rep.Harmony
		fmt.Fprintf(out, "pieces %d to %d\n\n", start, end-1)
		fmt.Fprintf(out, "perfect unisons, fifths and octaves: %d altered by the rules, %d left alone\n", h.PerfCapua, h.PerfIgnored)
		fmt.Fprintf(out, "imperfect unisons, fifths and octaves: %d altered by the rules, %d left alone\n\n", h.ImperfCapua, h.ImperfIgnored)

		f := rep.Frequency
		fmt.Fprintf(out, "rule applications: %d\n", f.Total())
		for _, row := range []struct {
			name string
			n    int
		}{{"1", f.One}, {"2", f.Two}, {"3", f.Three}, {"4A", f.FourA}, {"4B", f.FourB}} {
			fmt.Fprintf(out, "  rule %s: %d\n", row.name, row.n)
		}

		fmt.Fprintf(out, "\nfirst cadences: %d pieces, %d notes\n", len(pieces), util.Sum(notes))
		for _, k := range util.GetKeys(rep.Cadences.Total) {
			fmt.Fprintf(out, "  %s: %d\n", k, rep.Cadences.Total[k])
		}
		fmt.Fprintf(out, "altered per piece, rules:  %s\n", rep.Summary.RuleRate)
		fmt.Fprintf(out, "altered per piece, editor: %s\n", rep.Summary.EditorRate)
		return nil
	},
}

type studiesReport struct {
	Harmony   aggregate.HarmonyCheck `json:"harmony"`
	Frequency rules.Counts           `json:"frequency"`
	Cadences  *aggregate.Cadences    `json:"cadences"`
	Summary   aggregate.Summary      `json:"summary"`
}
