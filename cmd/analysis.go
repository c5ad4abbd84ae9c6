package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/jsphweid/fictadex/evaluate"
	"github.com/jsphweid/fictadex/ficta"
	"github.com/jsphweid/fictadex/model"
	"github.com/jsphweid/fictadex/util"
)

// analyzeWork runs Analyze over every two-voice snippet of w, each with a
// fresh store. A snippet that cannot be analyzed is logged and listed as
// skipped; the rest of the work is still reported.
func analyzeWork(w *model.Work, logger *slog.Logger) *model.WorkResponse {
	res := &model.WorkResponse{Index: w.Index, Title: w.Title, Snippets: []model.AnalyzeResponse{}}
	for _, s := range w.Snippets {
		a, b, ok := s.Pair()
		if !ok {
			continue
		}
		store := ficta.NewStore()
		store.Load(a, b)
		r, err := evaluate.Analyze(a, b, store)
		if err != nil {
			logger.Warn("skipping snippet", "piece", w.Index, "title", w.Title, "snippet", s.Kind, "err", err)
			res.Skipped = append(res.Skipped, model.SkippedSnippet{Kind: string(s.Kind), Error: err.Error()})
			continue
		}
		r.Kind = string(s.Kind)
		res.Snippets = append(res.Snippets, *r)
	}
	return res
}

func analyzeVoices(upper, lower *model.Sequence) (*model.AnalyzeResponse, error) {
	store := ficta.NewStore()
	store.Load(upper, lower)
	return evaluate.Analyze(upper, lower, store)
}

func printAnalysis(out io.Writer, r *model.AnalyzeResponse) {
	if r.Kind != "" {
		fmt.Fprintf(out, "%s\n", r.Kind)
	}
	fmt.Fprintf(out, "rules applied:")
	for _, k := range util.GetKeys(r.RuleCounts) {
		fmt.Fprintf(out, " %s=%d", k, r.RuleCounts[k])
	}
	fmt.Fprintf(out, "\nbetter %d, worse %d, neutral %d\n", r.Better, r.Worse, r.Neutral)

	for _, v := range r.Voices {
		fmt.Fprintf(out, "\nvoice %s\n", v.Name)
		fmt.Fprintf(out, "  without ficta %+v\n  editorial     %+v\n  rules         %+v\n", v.WithoutFicta, v.Editorial, v.Rules)

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  note\tficta\trules\tverdict\tnormal\teditorial\trule")
		for _, n := range v.Notes {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				n.Note, accidentalName(n.Ficta), maskName(n.Rules), n.Verdict,
				n.Normal, n.EditorialInterval, n.RuleInterval)
		}
		tw.Flush()
	}
}

func accidentalName(acc *model.Accidental) string {
	if acc == nil {
		return "-"
	}
	return acc.String()
}

func maskName(mask uint8) string {
	if mask == 0 {
		return "-"
	}
	names := []struct {
		rule ficta.RuleMask
		name string
	}{
		{ficta.RuleOne, "1"},
		{ficta.RuleTwo, "2"},
		{ficta.RuleThree, "3"},
		{ficta.RuleFourB, "4B"},
		{ficta.RuleFourA, "4A"},
	}
	var res string
	for _, n := range names {
		if ficta.RuleMask(mask).Has(n.rule) {
			if res != "" {
				res += ","
			}
			res += n.name
		}
	}
	return res
}
