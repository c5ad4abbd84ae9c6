// Package aggregate runs the corpus-wide studies: correction search, harmonic
// improvement, rule frequency and cadence comparison.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsphweid/fictadex/corpus"
	"github.com/jsphweid/fictadex/model"
)

// Range is a span of piece indexes, End excluded.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r Range) Validate() error {
	if r.Start < 0 || r.End < r.Start {
		return fmt.Errorf("bad piece range [%d, %d)", r.Start, r.End)
	}
	return nil
}

type Aggregator struct {
	source corpus.Source
	logger *slog.Logger
}

func New(source corpus.Source, logger *slog.Logger) *Aggregator {
	return &Aggregator{source: source, logger: logger}
}

// eachWork visits the works of r in ascending order. Missing works are
// skipped, as are works without an incipit when needIncipit is set.
func (a *Aggregator) eachWork(ctx context.Context, r Range, needIncipit bool, fn func(*model.Work) error) error {
	if err := r.Validate(); err != nil {
		return err
	}
	for i := r.Start; i < r.End; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		w, err := a.source.Work(ctx, i)
		if errors.Is(err, corpus.ErrWorkNotFound) {
			a.logger.Debug("no such piece", "piece", i)
			continue
		}
		if err != nil {
			return err
		}
		if needIncipit && w.Incipit() == nil {
			a.logger.Info("skipping piece without incipit", "piece", i, "title", w.Title)
			continue
		}
		a.logger.Debug("working on piece", "piece", i, "title", w.Title)
		if err := fn(w); err != nil {
			return err
		}
	}
	return nil
}

type excerpt struct {
	work    *model.Work
	snippet *model.Snippet
	pos     int
	upper   *model.Sequence
	lower   *model.Sequence
}

func (e excerpt) attrs(err error) []any {
	return []any{"piece", e.work.Index, "title", e.work.Title, "snippet", e.pos, "kind", e.snippet.Kind, "err", err}
}

// excerpts lists the two-voice cadences of w. Incipits, holes and
// single-voice snippets are skipped.
func (a *Aggregator) excerpts(w *model.Work) []excerpt {
	var res []excerpt
	for i, s := range w.Snippets {
		if s == nil || s.Kind == model.Incipit {
			continue
		}
		upper, lower, ok := s.Pair()
		if !ok {
			a.logger.Info("skipping snippet with fewer than two voices",
				"piece", w.Index, "title", w.Title, "snippet", i)
			continue
		}
		res = append(res, excerpt{work: w, snippet: s, pos: i, upper: upper, lower: lower})
	}
	return res
}
