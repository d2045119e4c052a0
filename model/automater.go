package model

import (
	"fmt"
	"go-ml.dev/pkg/autonub/datatype"
	"go-ml.dev/pkg/autonub/fu"
	"go-ml.dev/pkg/autonub/mapper"
	"go-ml.dev/pkg/autonub/nub"
	"go-ml.dev/pkg/autonub/schema"
	"go-ml.dev/pkg/autonub/tables"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

/*
Automater fits preprocessing of declared variables and generates matching network input
nubs, the output layer and the suggested loss. It's not safe for concurrent use.
*/
type Automater struct {
	Config
	schema   *schema.Schema
	registry *datatype.Registry
	input    *mapper.Mapper
	output   *mapper.Mapper

	inputLayers []*nub.Layer
	inputNub    *nub.Layer
	outputNub   *nub.Layer
	loss        nub.Loss
	fitted      bool
}

/*
New validates configuration and creates unfitted automater
*/
func New(c Config) (*Automater, error) {
	s, err := schema.New(c.Variables, c.Response)
	if err != nil {
		return nil, err
	}
	reg := datatype.Default(c.Params)
	for _, h := range c.Handlers {
		if err = reg.Register(h); err != nil {
			return nil, err
		}
	}
	if err = layerNames(s); err != nil {
		return nil, err
	}
	a := &Automater{Config: c, schema: s, registry: reg}
	if s.Supervised() {
		tp, _ := s.TypeOf(s.Response())
		h, err := reg.Lookup(tp)
		if err != nil {
			return nil, err
		}
		if !h.SupportsOutput() {
			return nil, xerrors.Errorf("response variable `%v` has datatype %v: %w", s.Response(), tp, datatype.ErrNoOutput)
		}
	}
	if a.input, a.output, err = mapper.Build(s, reg); err != nil {
		return nil, err
	}
	return a, nil
}

// layerNames rejects variables which become the same layer name
func layerNames(s *schema.Schema) error {
	known := map[string]string{}
	for _, v := range s.All() {
		n := fu.LayerName("x_" + v)[2:]
		if w, ok := known[n]; ok {
			return xerrors.Errorf("variables `%v` and `%v` have the same layer name %v: %w", w, v, n, ErrConfiguration)
		}
		known[n] = v
	}
	return nil
}

/*
Lucky creates automater and panics on configuration error
*/
func Lucky(c Config) *Automater {
	a, err := New(c)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return a
}

func (a *Automater) verbose(format string, args ...interface{}) {
	if a.Verbose != nil {
		a.Verbose(fmt.Sprintf(format, args...))
	}
}

/*
Fit fits preprocessing of all variables and creates network nubs.
The automater is not changed when Fit fails.
*/
func (a *Automater) Fit(t *tables.Table) error {
	if t.Len() == 0 {
		return zorros.Errorf("there are no rows to fit automater")
	}
	if err := a.input.Check(t); err != nil {
		return err
	}
	if err := a.output.Check(t); err != nil {
		return err
	}
	input, output := a.input.Clone(), a.output.Clone()

	a.verbose("fitting input variables %v", input.Variables())
	encoded, err := input.FitTransform(t)
	if err != nil {
		return err
	}
	var layers, tips []*nub.Layer
	for _, b := range input.Bindings() {
		h, err := a.registry.Lookup(b.Datatype)
		if err != nil {
			return err
		}
		data, _ := encoded.Get(b.Variable)
		input, tip, err := h.InputNub(b.Variable, datatype.Fitted{Data: data, Pipeline: b.Pipeline})
		if err != nil {
			return zorros.Wrapf(err, "failed to create input nub for %v: %v", b.Variable, err.Error())
		}
		a.verbose("%v nub: %v -> %v", b.Variable, input, tip)
		layers = append(layers, input)
		tips = append(tips, tip)
	}

	var inputNub *nub.Layer
	switch len(tips) {
	case 0:
		zlog.Warning("there are no input variables, input nub is not created")
	case 1:
		inputNub = tips[0]
	default:
		inputNub = nub.Concat("concatenate_inputs", tips...)
	}

	var outputNub *nub.Layer
	var loss nub.Loss
	if a.schema.Supervised() {
		v := a.schema.Response()
		a.verbose("fitting response variable %v", v)
		encoded, err := output.FitTransform(t)
		if err != nil {
			return err
		}
		b, _ := output.Binding(v)
		h, err := a.registry.Lookup(b.Datatype)
		if err != nil {
			return err
		}
		data, _ := encoded.Get(v)
		if outputNub, err = h.OutputNub(v, datatype.Fitted{Data: data, Pipeline: b.Pipeline}); err != nil {
			return err
		}
		if loss, err = h.SuggestedLoss(); err != nil {
			return err
		}
	}

	a.input, a.output = input, output
	a.inputLayers, a.inputNub, a.outputNub, a.loss = layers, inputNub, outputNub, loss
	a.fitted = true
	return nil
}

// LuckyFit fits automater and panics on error
func (a *Automater) LuckyFit(t *tables.Table) *Automater {
	if err := a.Fit(t); err != nil {
		panic(zorros.Panic(err))
	}
	return a
}

func (a *Automater) checkFitted() error {
	if !a.fitted {
		return xerrors.Errorf("automater has not been fitted yet, call Fit with appropriate data: %w", ErrNotFitted)
	}
	return nil
}

func (a *Automater) checkResponse() error {
	if !a.schema.Supervised() {
		return ErrNoResponse
	}
	return nil
}

/*
Transform applies fitted preprocessing. All input variables must be present in the table,
the response variable is optional and Y is nil when it's absent.
*/
func (a *Automater) Transform(t *tables.Table) (*Transformed, error) {
	if err := a.checkFitted(); err != nil {
		return nil, err
	}
	encoded, err := a.input.Transform(t)
	if err != nil {
		return nil, err
	}
	r := &Transformed{Variables: encoded.Variables()}
	for _, b := range encoded {
		r.X = append(r.X, b.Data)
	}
	if a.schema.Supervised() {
		v := a.schema.Response()
		if t.Has(v) {
			e, err := a.output.Transform(t)
			if err != nil {
				return nil, err
			}
			r.Y, _ = e.Get(v)
		} else {
			zlog.Warning(fmt.Sprintf("response variable %v is not in the table, it's not transformed", v))
		}
	}
	return r, nil
}

// LuckyTransform transforms table and panics on error
func (a *Automater) LuckyTransform(t *tables.Table) *Transformed {
	r, err := a.Transform(t)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return r
}

/*
TransformTable applies fitted preprocessing and returns transformed variables as a table.
A variable transformed into several columns produces columns `variable_0`, `variable_1`, ...
*/
func (a *Automater) TransformTable(t *tables.Table) (*tables.Table, error) {
	x, err := a.Transform(t)
	if err != nil {
		return nil, err
	}
	q := tables.NewEmpty()
	for i, v := range x.Variables {
		if q, err = with(q, v, x.X[i]); err != nil {
			return nil, err
		}
	}
	if x.Y != nil {
		if q, err = with(q, a.schema.Response(), x.Y); err != nil {
			return nil, err
		}
	}
	return q, nil
}

func with(q *tables.Table, name string, m *mat.Dense) (*tables.Table, error) {
	r, c := m.Dims()
	add := func(j int, n string) error {
		if q.Has(n) {
			return zorros.Errorf("transformed column `%v` of variable %v clashes with another column", n, name)
		}
		x := []float64{}
		if r > 0 {
			x = mat.Col(nil, j, m)
		}
		q = q.With(tables.Col(x), n)
		return nil
	}
	if c <= 1 {
		if err := add(0, name); err != nil {
			return nil, err
		}
		return q, nil
	}
	for j := 0; j < c; j++ {
		if err := add(j, fmt.Sprintf("%v_%d", name, j)); err != nil {
			return nil, err
		}
	}
	return q, nil
}

/*
FitTransform fits automater and transforms the same table
*/
func (a *Automater) FitTransform(t *tables.Table) (*Transformed, error) {
	if err := a.Fit(t); err != nil {
		return nil, err
	}
	return a.Transform(t)
}

/*
InverseTransformOutput converts network predictions into the natural scale of response
*/
func (a *Automater) InverseTransformOutput(y mat.Matrix) (*tables.Column, error) {
	if err := a.checkFitted(); err != nil {
		return nil, err
	}
	if err := a.checkResponse(); err != nil {
		return nil, err
	}
	b, _ := a.output.Binding(a.schema.Response())
	h, err := a.registry.Lookup(b.Datatype)
	if err != nil {
		return nil, err
	}
	return h.InverseTransform(y, b.Pipeline)
}

/*
SuggestLoss returns the loss suggested by the response datatype
*/
func (a *Automater) SuggestLoss() (nub.Loss, error) {
	if err := a.checkFitted(); err != nil {
		return nil, err
	}
	if err := a.checkResponse(); err != nil {
		return nil, err
	}
	return a.loss, nil
}

func (a *Automater) Fitted() bool {
	return a.fitted
}

// InputLayers returns input placeholders in the order of Transformed.X
func (a *Automater) InputLayers() []*nub.Layer {
	return append([]*nub.Layer(nil), a.inputLayers...)
}

// InputNub returns concatenated nub tips of all input variables, nil without inputs
func (a *Automater) InputNub() *nub.Layer {
	return a.inputNub
}

// OutputNub returns unconnected output layer, nil without response
func (a *Automater) OutputNub() *nub.Layer {
	return a.outputNub
}

func (a *Automater) Features() []string {
	return a.schema.Inputs()
}

func (a *Automater) Predicted() string {
	return a.schema.Response()
}

// Schema returns the validated assignment of variables to datatypes
func (a *Automater) Schema() *schema.Schema {
	return a.schema
}

/*
Graph exports input placeholders, the input nub and the output layer
*/
func (a *Automater) Graph() nub.Graph {
	return nub.Export(append(a.InputLayers(), a.inputNub, a.outputNub)...)
}
