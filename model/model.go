package model

import (
	"go-ml.dev/pkg/autonub/mapper"
	"go-ml.dev/pkg/autonub/schema"
	"go-ml.dev/pkg/autonub/tables"
	"go-ml.dev/pkg/autonub/transform"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

// error kinds returned by Automater
var (
	ErrConfiguration  = schema.ErrConfiguration
	ErrNotFitted      = transform.ErrNotFitted
	ErrMissingColumns = mapper.ErrMissingColumns
	ErrNoResponse     = xerrors.Errorf("automater does not have response variable: %w", ErrConfiguration)
)

/*
FeaturesMapper is a fitted preprocessing turning a table into network features
*/
type FeaturesMapper interface {
	// Features are input variables in the order of network inputs
	Features() []string
	// Predicted is the response variable, empty if there is no one
	Predicted() string
	// Transform maps the table into network features
	Transform(*tables.Table) (*Transformed, error)
}

/*
Transformed is a table transformed for feeding a network
*/
type Transformed struct {
	Variables []string     // input variables
	X         []*mat.Dense // a matrix per input variable, in network inputs order
	Y         *mat.Dense   // transformed response, nil if it's unavailable
}

/*
Matrix stacks all input matrices side by side into one matrix. It's nil when there are no inputs
and empty when there are no rows.
*/
func (t *Transformed) Matrix() *mat.Dense {
	if len(t.X) == 0 {
		return nil
	}
	rows, width := t.X[0].Dims()
	if rows == 0 {
		return &mat.Dense{}
	}
	for _, x := range t.X[1:] {
		_, c := x.Dims()
		width += c
	}
	m := mat.NewDense(rows, width, nil)
	j := 0
	for _, x := range t.X {
		_, c := x.Dims()
		m.Slice(0, rows, j, j+c).(*mat.Dense).Copy(x)
		j += c
	}
	return m
}

/*
TransformAll maps several tables by the same mapper
*/
func TransformAll(m FeaturesMapper, ts ...*tables.Table) ([]*Transformed, error) {
	r := make([]*Transformed, len(ts))
	for i, t := range ts {
		x, err := m.Transform(t)
		if err != nil {
			return nil, err
		}
		r[i] = x
	}
	return r, nil
}
