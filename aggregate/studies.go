package aggregate

import (
	"context"
	"fmt"
	"math"

	"github.com/jsphweid/fictadex/evaluate"
	"github.com/jsphweid/fictadex/ficta"
	"github.com/jsphweid/fictadex/harmony"
	"github.com/jsphweid/fictadex/model"
	"github.com/jsphweid/fictadex/rules"
	"github.com/jsphweid/fictadex/util"
	"gonum.org/v1/gonum/stat"
)

// HarmonyCheck counts perfectable harmonic intervals (unisons, fifths,
// octaves) by whether they were perfect and whether the rules altered the note.
type HarmonyCheck struct {
	PerfIgnored   int `json:"perfIgnored"`
	PerfCapua     int `json:"perfCapua"`
	ImperfIgnored int `json:"imperfIgnored"`
	ImperfCapua   int `json:"imperfCapua"`
}

func (h *HarmonyCheck) Add(o HarmonyCheck) {
	h.PerfIgnored += o.PerfIgnored
	h.PerfCapua += o.PerfCapua
	h.ImperfIgnored += o.ImperfIgnored
	h.ImperfCapua += o.ImperfCapua
}

// ImprovedHarmony measures how often the rules touch a perfect interval
// (bad) and how often they touch an augmented or diminished one (good).
func (a *Aggregator) ImprovedHarmony(ctx context.Context, r Range) (HarmonyCheck, error) {
	var total HarmonyCheck
	err := a.eachWork(ctx, r, true, func(w *model.Work) error {
		for _, ex := range a.excerpts(w) {
			check, err := improved(ex.upper, ex.lower)
			if err != nil {
				a.logger.Warn("dropping excerpt", ex.attrs(err)...)
				continue
			}
			total.Add(check)
		}
		return nil
	})
	return total, err
}

func improved(upper, lower *model.Sequence) (HarmonyCheck, error) {
	var check HarmonyCheck
	upperIv, err := harmony.Attach(upper, lower)
	if err != nil {
		return check, err
	}
	lowerIv, err := harmony.Attach(lower, upper)
	if err != nil {
		return check, err
	}

	store := ficta.NewStore()
	if _, err := rules.Apply(upper, store); err != nil {
		return check, err
	}
	if _, err := rules.Apply(lower, store); err != nil {
		return check, err
	}

	for _, v := range []struct {
		seq *model.Sequence
		iv  harmony.Intervals
	}{{upper, upperIv}, {lower, lowerIv}} {
		for _, n := range v.seq.Notes() {
			hi := v.iv.Of(n)
			if hi == nil || !hi.Perfectable() || hi.Simple() == 4 {
				continue
			}
			altered := store.Rule(n) != nil
			switch {
			case hi.Quality == "P" && altered:
				check.PerfCapua++
			case hi.Quality == "P":
				check.PerfIgnored++
			case altered:
				check.ImperfCapua++
			default:
				check.ImperfIgnored++
			}
		}
	}
	return check, nil
}

// RuleFrequency counts how often each rule, 4A included, matches across
// every voice of every snippet. Rests are dropped first, so windows run
// across them.
func (a *Aggregator) RuleFrequency(ctx context.Context, r Range) (rules.Counts, error) {
	var total rules.Counts
	err := a.eachWork(ctx, r, false, func(w *model.Work) error {
		for i, s := range w.Snippets {
			if s == nil {
				continue
			}
			var counts rules.Counts
			var err error
			store := ficta.NewStore()
			for _, v := range s.Voices {
				var c rules.Counts
				if c, err = rules.Frequency(v.WithoutRests(), store); err != nil {
					break
				}
				counts.Add(c)
			}
			if err != nil {
				a.logger.Warn("dropping snippet", "piece", w.Index, "title", w.Title, "snippet", i, "err", err)
				continue
			}
			total.Add(counts)
		}
		return nil
	})
	return total, err
}

type Cadences struct {
	Total   model.Tally         `json:"total"`
	PerWork map[int]model.Tally `json:"perWork"`
}

// CompareCadences applies the rules to the top voice of every first cadence
// and tallies editor against rules.
func (a *Aggregator) CompareCadences(ctx context.Context, r Range) (*Cadences, error) {
	res := &Cadences{Total: model.NewTally(), PerWork: make(map[int]model.Tally)}
	err := a.eachWork(ctx, r, true, func(w *model.Work) error {
		cad := w.CadenceA()
		if cad == nil || len(cad.Voices) < 2 {
			a.logger.Info("skipping piece without a two-voice first cadence", "piece", w.Index, "title", w.Title)
			return nil
		}
		top := cad.Voices[0]
		store := ficta.NewStore()
		store.Load(top)
		if _, err := rules.Apply(top, store); err != nil {
			a.logger.Warn("dropping cadence", "piece", w.Index, "title", w.Title, "err", err)
			return nil
		}
		t := evaluate.CompareSequence(top, store)
		res.Total.Add(t)
		res.PerWork[w.Index] = t
		return nil
	})
	return res, err
}

type Stat struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	N      int     `json:"n"`
}

// Summary describes per-work alteration rates: the share of notes each
// source altered.
type Summary struct {
	RuleRate   Stat `json:"ruleRate"`
	EditorRate Stat `json:"editorRate"`
}

// Summarize reduces per-work tallies to rate statistics. Works without
// notes are left out.
func Summarize(perWork []model.Tally) Summary {
	var rule, editor []float64
	for _, t := range perWork {
		if t[model.TotalNotes] == 0 {
			continue
		}
		rule = append(rule, util.Ratio(t[model.CapuaAlt], t[model.TotalNotes]))
		editor = append(editor, util.Ratio(t[model.PmfcAlt], t[model.TotalNotes]))
	}
	return Summary{RuleRate: describe(rule), EditorRate: describe(editor)}
}

func describe(x []float64) Stat {
	s := Stat{N: len(x)}
	if len(x) == 0 {
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	if math.IsNaN(s.StdDev) {
		s.StdDev = 0
	}
	return s
}

func (s Stat) String() string {
	return fmt.Sprintf("%.3f ± %.3f (n=%d)", s.Mean, s.StdDev, s.N)
}
