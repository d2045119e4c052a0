/*
Package mapper binds variables to their preprocessing pipelines
*/
package mapper

import (
	"go-ml.dev/pkg/autonub/datatype"
	"go-ml.dev/pkg/autonub/schema"
	"go-ml.dev/pkg/autonub/tables"
	"go-ml.dev/pkg/autonub/transform"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
	"strings"
)

/*
ErrMissingColumns is returned when a table does not contain columns of mapped variables
*/
var ErrMissingColumns = xerrors.New("missing columns")

/*
Binding is a variable with its own pipeline
*/
type Binding struct {
	Variable string
	Datatype string
	Pipeline *transform.Pipeline
}

/*
Block is a transformed variable, rows x width matrix
*/
type Block struct {
	Variable string
	Data     *mat.Dense
}

/*
Encoded is a list of transformed variables in mapping order
*/
type Encoded []Block

// Get returns transformed variable by name
func (e Encoded) Get(variable string) (*mat.Dense, bool) {
	for _, b := range e {
		if b.Variable == variable {
			return b.Data, true
		}
	}
	return nil, false
}

// Variables returns names of transformed variables
func (e Encoded) Variables() []string {
	r := make([]string, len(e))
	for i, b := range e {
		r[i] = b.Variable
	}
	return r
}

/*
Mapper is a composite transformer applying every binding pipeline to its column
*/
type Mapper struct {
	bindings []*Binding
	fitted   bool
}

func New(bindings ...*Binding) *Mapper {
	return &Mapper{bindings: bindings}
}

/*
Build creates input and output mappers. Every variable gets an independent copy of its
datatype default pipeline, response goes to the output mapper and all others to the input one.
*/
func Build(s *schema.Schema, reg *datatype.Registry) (input *Mapper, output *Mapper, err error) {
	input, output = New(), New()
	for _, tp := range s.Types() {
		vars := s.Variables(tp)
		if len(vars) == 0 {
			continue
		}
		h, e := reg.Lookup(tp)
		if e != nil {
			return nil, nil, e
		}
		for _, v := range vars {
			b := &Binding{Variable: v, Datatype: tp, Pipeline: h.DefaultPipeline()}
			if v == s.Response() {
				output.bindings = append(output.bindings, b)
			} else {
				input.bindings = append(input.bindings, b)
			}
		}
	}
	return
}

/*
Clone returns a mapper with independent copies of all pipelines
*/
func (m *Mapper) Clone() *Mapper {
	q := &Mapper{bindings: make([]*Binding, len(m.bindings)), fitted: m.fitted}
	for i, b := range m.bindings {
		q.bindings[i] = &Binding{Variable: b.Variable, Datatype: b.Datatype, Pipeline: b.Pipeline.Clone()}
	}
	return q
}

func (m *Mapper) Fitted() bool {
	return m.fitted
}

// Bindings returns bindings in mapping order
func (m *Mapper) Bindings() []*Binding {
	return append([]*Binding(nil), m.bindings...)
}

// Binding returns binding of variable
func (m *Mapper) Binding(variable string) (*Binding, bool) {
	for _, b := range m.bindings {
		if b.Variable == variable {
			return b, true
		}
	}
	return nil, false
}

// Variables returns mapped variables in mapping order
func (m *Mapper) Variables() []string {
	r := make([]string, len(m.bindings))
	for i, b := range m.bindings {
		r[i] = b.Variable
	}
	return r
}

/*
Check returns ErrMissingColumns naming all variables absent in the table
*/
func (m *Mapper) Check(t *tables.Table) error {
	if missing := t.Missing(m.Variables()...); len(missing) > 0 {
		return xerrors.Errorf("table does not have %v: %w", strings.Join(missing, ", "), ErrMissingColumns)
	}
	return nil
}

/*
Fit fits pipelines of all bindings
*/
func (m *Mapper) Fit(t *tables.Table) error {
	_, err := m.FitTransform(t)
	return err
}

/*
FitTransform fits pipelines of all bindings and returns transformed variables
*/
func (m *Mapper) FitTransform(t *tables.Table) (Encoded, error) {
	if err := m.Check(t); err != nil {
		return nil, err
	}
	r := make(Encoded, len(m.bindings))
	for i, b := range m.bindings {
		d, err := b.Pipeline.FitTransform(t.Col(b.Variable))
		if err != nil {
			return nil, zorros.Wrapf(err, "failed to fit variable %v: %v", b.Variable, err.Error())
		}
		r[i] = Block{b.Variable, d}
	}
	m.fitted = true
	return r, nil
}

/*
Transform applies fitted pipelines and returns transformed variables
*/
func (m *Mapper) Transform(t *tables.Table) (Encoded, error) {
	if !m.fitted {
		return nil, xerrors.Errorf("mapper: %w", transform.ErrNotFitted)
	}
	if err := m.Check(t); err != nil {
		return nil, err
	}
	r := make(Encoded, len(m.bindings))
	for i, b := range m.bindings {
		d, err := b.Pipeline.Transform(t.Col(b.Variable))
		if err != nil {
			return nil, zorros.Wrapf(err, "failed to transform variable %v: %v", b.Variable, err.Error())
		}
		r[i] = Block{b.Variable, d}
	}
	return r, nil
}

/*
Restore creates a mapper from already fitted bindings
*/
func Restore(bindings ...*Binding) (*Mapper, error) {
	for _, b := range bindings {
		if b.Pipeline == nil || !b.Pipeline.Fitted() {
			return nil, xerrors.Errorf("binding %v: %w", b.Variable, transform.ErrNotFitted)
		}
	}
	return &Mapper{bindings: bindings, fitted: true}, nil
}
