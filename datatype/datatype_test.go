package datatype

import (
	"go-ml.dev/pkg/autonub/nub"
	"go-ml.dev/pkg/autonub/schema"
	"go-ml.dev/pkg/autonub/tables"
	"go-ml.dev/pkg/autonub/transform"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
	"gotest.tools/assert"
	"math"
	"testing"
)

func fit(t *testing.T, h Handler, values interface{}) Fitted {
	p := h.DefaultPipeline()
	m, err := p.FitTransform(tables.Col(values))
	assert.NilError(t, err)
	return Fitted{m, p}
}

func Test_Default(t *testing.T) {
	r := Default(nil)
	assert.DeepEqual(t, r.Names(), []string{"boolean", "categorical", "datetime", "numerical", "passthrough", "text", "timeseries"})
	for _, n := range r.Names() {
		h, err := r.Lookup(n)
		assert.NilError(t, err)
		assert.NilError(t, Check(h))
		assert.Equal(t, h.Name(), n)
	}
	_, err := r.Lookup("image")
	assert.Assert(t, xerrors.Is(err, ErrConfiguration))
	assert.ErrorContains(t, err, "image")
}

func Test_OutputSupport(t *testing.T) {
	r := Default(nil)
	support := map[string]bool{
		schema.Numerical: true, schema.Categorical: true, schema.Boolean: true,
		schema.Datetime: false, schema.Text: false, schema.TimeSeries: false, schema.Passthrough: false,
	}
	for n, s := range support {
		h, _ := r.Lookup(n)
		assert.Assert(t, h.SupportsOutput() == s, n)
		if !s {
			_, err := h.OutputNub("x", Fitted{})
			assert.Assert(t, xerrors.Is(err, ErrNoOutput))
			assert.Assert(t, xerrors.Is(err, ErrConfiguration))
			_, err = h.InverseTransform(mat.NewDense(1, 1, nil), h.DefaultPipeline())
			assert.Assert(t, xerrors.Is(err, ErrNoOutput))
			_, err = h.SuggestedLoss()
			assert.ErrorContains(t, err, n)
		}
	}
}

type broken struct{ Handler }

func (broken) SupportsOutput() bool { return true }

type shared struct {
	Handler
	p *transform.Pipeline
}

func (s shared) DefaultPipeline() *transform.Pipeline { return s.p }

func Test_Check(t *testing.T) {
	assert.Assert(t, xerrors.Is(Check(nil), ErrConfiguration))
	assert.ErrorContains(t, Check(broken{NewText(nil)}), "inconsistent")
	assert.ErrorContains(t, Check(shared{NewNumerical(), NewNumerical().DefaultPipeline()}), "shares")
	_, err := NewRegistry(NewNumerical(), broken{NewPassthrough()})
	assert.Assert(t, xerrors.Is(err, ErrConfiguration))
}

func Test_IndependentPipelines(t *testing.T) {
	h := NewNumerical()
	a := fit(t, h, []float64{1, 2, 3})
	b := fit(t, h, []float64{100, 200, 300})
	sa, _ := a.Pipeline.Step("standardscaler")
	sb, _ := b.Pipeline.Step("standardscaler")
	assert.Assert(t, sa.(*transform.StandardScaler).Mean == 2)
	assert.Assert(t, sb.(*transform.StandardScaler).Mean == 200)
	assert.Assert(t, !h.DefaultPipeline().Fitted())
}

func Test_Numerical(t *testing.T) {
	h := NewNumerical()
	f := fit(t, h, []interface{}{10.0, 20.0, nil, 30.0})
	input, tip, err := h.InputNub("price $", f)
	assert.NilError(t, err)
	assert.Assert(t, input == tip)
	assert.Equal(t, input.Name, "input_price__")
	assert.Assert(t, input.Width() == 1 && input.DType == "float32")

	out, err := h.OutputNub("price", f)
	assert.NilError(t, err)
	assert.Assert(t, out.Units == 1 && out.Activation == nub.Linear)

	c, err := h.InverseTransform(f.Data, f.Pipeline)
	assert.NilError(t, err)
	for i, v := range []float64{10, 20, 20, 30} {
		assert.Assert(t, math.Abs(c.Float(i)-v) < 1e-9)
	}

	_, err = h.InverseTransform(mat.NewDense(1, 2, nil), f.Pipeline)
	assert.ErrorContains(t, err, "one column")

	l, err := h.SuggestedLoss()
	assert.NilError(t, err)
	assert.Equal(t, l.Name(), "mean_squared_error")
}

func Test_Categorical(t *testing.T) {
	h := NewCategorical(nil)
	f := fit(t, h, []string{"a", "b", "a"})
	input, tip, err := h.InputNub("letter", f)
	assert.NilError(t, err)
	assert.Assert(t, input.Width() == 1)
	emb := tip.Inputs[0]
	assert.Assert(t, tip.Kind == nub.Flatten && emb.Kind == nub.Embedding)
	assert.Assert(t, emb.InputDim == 3 && emb.Units == 2)
	assert.Assert(t, tip.Width() == 2)

	out, err := h.OutputNub("letter", f)
	assert.NilError(t, err)
	assert.Assert(t, out.Units == 3 && out.Activation == nub.Softmax)

	// vocabulary is UNK, a, b
	pred := mat.NewDense(3, 3, []float64{
		0.1, 0.7, 0.2,
		0.1, 0.1, 0.8,
		0.6, 0.3, 0.1,
	})
	c, err := h.InverseTransform(pred, f.Pipeline)
	assert.NilError(t, err)
	assert.DeepEqual(t, c.Strings(), []string{"a", "b", "UNK"})

	l, _ := h.SuggestedLoss()
	assert.Equal(t, l.Name(), "sparse_categorical_crossentropy")

	_, err = h.InverseTransform(pred, transform.NewPipeline())
	assert.ErrorContains(t, err, "label encoder")
}

func Test_CategoricalWidth(t *testing.T) {
	var levels []int
	for i := 0; i < 500; i++ {
		levels = append(levels, i)
	}
	h := NewCategorical(nil)
	_, tip, err := h.InputNub("many", fit(t, h, levels))
	assert.NilError(t, err)
	assert.Assert(t, tip.Width() == DefaultEmbeddingMaxWidth)

	h = NewCategorical(Params{"embedding_max_width": 4})
	_, tip, _ = h.InputNub("many", fit(t, h, levels))
	assert.Assert(t, tip.Width() == 4)

	// zero means default
	h = NewCategorical(Params{"embedding_max_width": 0})
	_, tip, _ = h.InputNub("many", fit(t, h, levels))
	assert.Assert(t, tip.Width() == DefaultEmbeddingMaxWidth)
}

// scaler is a step named as standard scaler which can't inverse transformation
type scaler struct{ transform.TypeConversion }

func (*scaler) Name() string { return "standardscaler" }

func Test_NumericalNoInverter(t *testing.T) {
	h := NewNumerical()
	p := transform.NewPipeline(&scaler{})
	assert.NilError(t, p.Fit(tables.Col([]float64{1, 2})))
	_, err := h.InverseTransform(mat.NewDense(2, 1, []float64{0, 1}), p)
	assert.ErrorContains(t, err, "can't inverse")
}

func Test_Boolean(t *testing.T) {
	h := NewBoolean()
	f := fit(t, h, []bool{true, false})
	input, tip, err := h.InputNub("owns_home", f)
	assert.NilError(t, err)
	assert.Assert(t, input == tip && input.Width() == 1)
	out, _ := h.OutputNub("owns_home", f)
	assert.Assert(t, out.Units == 1 && out.Activation == nub.Sigmoid)
	c, err := h.InverseTransform(mat.NewDense(2, 1, []float64{0.9, 0.2}), f.Pipeline)
	assert.NilError(t, err)
	assert.DeepEqual(t, c.Floats(), []float64{0.9, 0.2})
	l, _ := h.SuggestedLoss()
	assert.Equal(t, l.Name(), "binary_crossentropy")
}

func Test_Text(t *testing.T) {
	h := NewText(Params{"sequence_length": 4, "lstm_units": 16})
	f := fit(t, h, []string{"john clark", "sue fox", "mary lastname"})
	assert.DeepEqual(t, f.Data.RawRowView(0), []float64{2, 3, 1, 1})
	input, tip, err := h.InputNub("name", f)
	assert.NilError(t, err)
	assert.Assert(t, input.Width() == 4)
	assert.Assert(t, tip.Kind == nub.Bidirectional && tip.Width() == 32)
	emb := tip.Inputs[0]
	assert.Assert(t, emb.InputDim == 8 && emb.Units == DefaultTextEmbeddingWidth)

	d := NewText(nil)
	f = fit(t, d, []string{"john clark", "sue fox", "mary lastname"})
	_, c := f.Data.Dims()
	assert.Assert(t, c == 2)
}

func Test_TimeSeries(t *testing.T) {
	h := NewTimeSeries(nil)
	f := fit(t, h, []interface{}{[]float64{1, 2, 3}, []float64{4, 5, 6}})
	input, tip, err := h.InputNub("ise_lagged", f)
	assert.NilError(t, err)
	assert.Assert(t, input.Width() == 3)
	reshape := tip.Inputs[0]
	assert.DeepEqual(t, reshape.Shape, []int{3, 1})
	assert.Assert(t, tip.Width() == 2*DefaultSeriesLstmUnits)
}

func Test_Datetime(t *testing.T) {
	h := NewDatetime()
	f := fit(t, h, []interface{}{"2018-09-12", nil, "1970-01-01"})
	x := mat.Col(nil, 0, f.Data)
	assert.Assert(t, x[1] == 0)
	assert.Assert(t, math.Abs(x[0]+x[2]) < 1e-9)
	input, tip, err := h.InputNub("last_pymnt_d", f)
	assert.NilError(t, err)
	assert.Assert(t, input == tip && input.DType == "float32")
}

func Test_Passthrough(t *testing.T) {
	h := NewPassthrough()
	f := fit(t, h, []float64{3, 4})
	assert.DeepEqual(t, mat.Col(nil, 0, f.Data), []float64{3, 4})
	input, tip, err := h.InputNub("raw", f)
	assert.NilError(t, err)
	assert.Assert(t, input == tip && input.Width() == 1)
}
