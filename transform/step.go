/*
Package transform implements stateful preprocessing steps and pipelines of them.

A step learns its parameters from a column of cells in Fit and applies them in Transform.
Cells are plain values, nil or NaN stand for a missing value. The final step of a pipeline
produces either scalar cells or equally sized []float64 cells which are shaped into a
gonum matrix.
*/
package transform

import (
	"encoding/gob"
	"golang.org/x/xerrors"
)

/*
ErrNotFitted is returned when transforming with a step or a pipeline which was not fitted yet
*/
var ErrNotFitted = xerrors.New("not fitted")

/*
Step is a stateful transformation of a column of cells
*/
type Step interface {
	// Name of the step kind, used to look up a step in a pipeline
	Name() string
	// Fit learns step parameters
	Fit(cells []interface{}) error
	// Transform applies learned parameters and returns new cells
	Transform(cells []interface{}) ([]interface{}, error)
	// Clone returns an independent copy of the step, fitted state included
	Clone() Step
	// Fitted reports whether Fit was successfully called
	Fitted() bool
}

/*
Inverter is a step which can undo its transformation of a numerical value
*/
type Inverter interface {
	Step
	Inverse(x float64) float64
}

func notFitted(s Step) error {
	return xerrors.Errorf("%v: %w", s.Name(), ErrNotFitted)
}

func init() {
	gob.Register(&StringEncoder{})
	gob.Register(&CategoricalImputer{})
	gob.Register(&LabelEncoder{})
	gob.Register(&MeanImputer{})
	gob.Register(&StandardScaler{})
	gob.Register(&TypeConversion{})
	gob.Register(&EmbeddingVectorizer{})
	gob.Register(&TimeSeriesVectorizer{})
	gob.Register(&EpochTransformer{})
}
