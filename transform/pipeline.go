package transform

import (
	"fmt"
	"go-ml.dev/pkg/autonub/tables"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

/*
Pipeline is an ordered sequence of steps. Every step is fitted on the output of the previous one.
*/
type Pipeline struct {
	Steps    []Step
	IsFitted bool
}

func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{Steps: steps}
}

/*
Clone returns a pipeline with independent copies of all steps
*/
func (p *Pipeline) Clone() *Pipeline {
	q := &Pipeline{Steps: make([]Step, len(p.Steps)), IsFitted: p.IsFitted}
	for i, s := range p.Steps {
		q.Steps[i] = s.Clone()
	}
	return q
}

func (p *Pipeline) Fitted() bool {
	return p.IsFitted
}

/*
Step returns the first step with specified name
*/
func (p *Pipeline) Step(name string) (Step, bool) {
	for _, s := range p.Steps {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// Names returns names of steps in pipeline order
func (p *Pipeline) Names() []string {
	r := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		r[i] = s.Name()
	}
	return r
}

/*
Fit fits all steps one after another
*/
func (p *Pipeline) Fit(c *tables.Column) error {
	_, err := p.fit(c.Values())
	return err
}

func (p *Pipeline) fit(cells []interface{}) ([]interface{}, error) {
	var err error
	for _, s := range p.Steps {
		if err = s.Fit(cells); err != nil {
			return nil, zorros.Wrapf(err, "failed to fit step %v: %v", s.Name(), err.Error())
		}
		if cells, err = s.Transform(cells); err != nil {
			return nil, zorros.Wrapf(err, "failed to transform by step %v: %v", s.Name(), err.Error())
		}
	}
	p.IsFitted = true
	return cells, nil
}

/*
Transform applies fitted steps to the column and shapes result as rows x width matrix
*/
func (p *Pipeline) Transform(c *tables.Column) (*mat.Dense, error) {
	if !p.IsFitted {
		return nil, xerrors.Errorf("pipeline: %w", ErrNotFitted)
	}
	cells := c.Values()
	var err error
	for _, s := range p.Steps {
		if cells, err = s.Transform(cells); err != nil {
			return nil, err
		}
	}
	return Block(cells)
}

/*
FitTransform fits the pipeline and returns transformed column
*/
func (p *Pipeline) FitTransform(c *tables.Column) (*mat.Dense, error) {
	cells, err := p.fit(c.Values())
	if err != nil {
		return nil, err
	}
	return Block(cells)
}

/*
Block shapes cells into a matrix. Scalar cells produce one column, []float64 cells produce
as many columns as the cell length. Missing scalars are NaN.
No cells produce an empty matrix.
*/
func Block(cells []interface{}) (*mat.Dense, error) {
	if len(cells) == 0 {
		return &mat.Dense{}, nil
	}
	width := 1
	if v, ok := cells[0].([]float64); ok {
		width = len(v)
	}
	if width == 0 {
		return nil, zorros.Errorf("can't shape zero width cells into matrix")
	}
	data := make([]float64, 0, len(cells)*width)
	for i, c := range cells {
		switch x := c.(type) {
		case []float64:
			if len(x) != width {
				return nil, zorros.Errorf("row %d has width %d, expected %d", i, len(x), width)
			}
			data = append(data, x...)
		default:
			if width != 1 {
				return nil, zorros.Errorf("row %d is scalar, expected width %d", i, width)
			}
			f, ok := tables.Float(c)
			if !ok && !tables.Na(c) {
				return nil, zorros.Errorf("row %d has non numerical value %v", i, fmt.Sprint(c))
			}
			if !ok {
				f = nan
			}
			data = append(data, f)
		}
	}
	return mat.NewDense(len(cells), width, data), nil
}
