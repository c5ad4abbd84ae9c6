package interval

import (
	"fmt"

	"github.com/jsphweid/fictadex/model"
)

var classes = map[string]model.IntervalClass{}

func init() {
	for _, n := range []string{"P1", "P5", "P8"} {
		classes[n] = model.PerfectConsonance
	}
	for _, n := range []string{"m3", "M3", "m6", "M6"} {
		classes[n] = model.ImperfectConsonance
	}
	for _, n := range []string{"m2", "M2", "A2", "d3", "A3", "d4", "P4", "A4",
		"d5", "A5", "d6", "A6", "d7", "m7", "M7", "A7"} {
		classes[n] = model.Dissonance
	}
}

// UnrecognizedIntervalError means the interval should not occur in this
// repertoire: bad data or a bad pattern, never something to coerce.
type UnrecognizedIntervalError struct {
	Name string
}

func (e *UnrecognizedIntervalError) Error() string {
	return fmt.Sprintf("unrecognized interval %s in fourteenth-century harmony", e.Name)
}

// Classify sorts an interval into the period's consonance classes. A nil
// interval (nothing sounding against the note) is Undefined.
func Classify(iv *Interval) (model.IntervalClass, error) {
	if iv == nil || iv.Quality == "" {
		return model.Undefined, nil
	}
	c, ok := classes[iv.Name()]
	if !ok {
		return model.Undefined, &UnrecognizedIntervalError{Name: iv.Name()}
	}
	return c, nil
}
