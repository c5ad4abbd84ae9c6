package evaluate

import (
	"github.com/jsphweid/fictadex/ficta"
	"github.com/jsphweid/fictadex/model"
	"github.com/jsphweid/fictadex/rules"
)

// Analyze runs every evaluation over a pair and reports each note with its
// proposals, its verdict and its interval three ways. The written pitches
// are back in place when it returns.
func Analyze(a, b *model.Sequence, store *ficta.Store) (*model.AnalyzeResponse, error) {
	without, err := WithoutFicta(a, b, store)
	if err != nil {
		return nil, err
	}
	editorial, err := Editorial(a, b, store)
	if err != nil {
		return nil, err
	}
	j, err := Judge(a, b, store)
	if err != nil {
		return nil, err
	}
	store.RestoreWritten(a)
	store.RestoreWritten(b)

	res := &model.AnalyzeResponse{
		RuleCounts: countsMap(j.Counts),
		Better:     j.Better,
		Worse:      j.Worse,
		Neutral:    j.Neutral,
	}
	voices := []struct {
		seq, partner              *model.Sequence
		without, editorial, rules *Result
	}{
		{a, b, without.A, editorial.A, j.Rules.A},
		{b, a, without.B, editorial.B, j.Rules.B},
	}
	for _, v := range voices {
		rows, err := CompareThree(v.seq, v.partner, store)
		if err != nil {
			return nil, err
		}
		vr := model.VoiceResult{
			Name:         v.seq.Name,
			Notes:        make([]model.NoteResult, 0, len(rows)),
			WithoutFicta: v.without.Profile,
			Editorial:    v.editorial.Profile,
			Rules:        v.rules.Profile,
		}
		for _, row := range rows {
			e := row.Event
			vr.Notes = append(vr.Notes, model.NoteResult{
				Note:              row.Note,
				Ficta:             store.Rule(e),
				Editorial:         store.Editorial(e),
				Rules:             uint8(store.Mask(e)),
				Color:             store.Color(e),
				Verdict:           string(j.Verdicts[e.ID]),
				Normal:            row.Normal,
				EditorialInterval: row.Editorial,
				RuleInterval:      row.Rule,
			})
		}
		res.Voices = append(res.Voices, vr)
	}
	return res, nil
}

func countsMap(c rules.Counts) map[string]int {
	return map[string]int{
		"one":   c.One,
		"two":   c.Two,
		"three": c.Three,
		"fourA": c.FourA,
		"fourB": c.FourB,
	}
}
