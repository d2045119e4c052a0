package mapper

import (
	"go-ml.dev/pkg/autonub/datatype"
	"go-ml.dev/pkg/autonub/schema"
	"go-ml.dev/pkg/autonub/tables"
	"go-ml.dev/pkg/autonub/transform"
	"golang.org/x/xerrors"
	"gotest.tools/assert"
	"testing"
)

func Test_BuildLength(t *testing.T) {
	reg := datatype.Default(nil)
	cases := []struct {
		types map[string][]string
		n     int
	}{
		{map[string][]string{}, 0},
		{map[string][]string{schema.Numerical: {"n1"}}, 1},
		{map[string][]string{schema.Numerical: {"n1", "n2"}}, 2},
		{map[string][]string{schema.Numerical: {"n1"}, schema.Categorical: {"c1"}}, 2},
		{map[string][]string{schema.Passthrough: {"x1", "x2"}}, 2},
	}
	for _, c := range cases {
		in, out, err := Build(schema.Lucky(c.types, ""), reg)
		assert.NilError(t, err)
		assert.Assert(t, len(in.Bindings()) == c.n)
		assert.Assert(t, len(out.Bindings()) == 0)
	}
}

func Test_BuildUnknownType(t *testing.T) {
	_, _, err := Build(schema.Lucky(map[string][]string{"image": {"x"}}, ""), datatype.Default(nil))
	assert.Assert(t, xerrors.Is(err, datatype.ErrConfiguration))
	// datatypes without variables don't need handlers
	_, _, err = Build(schema.Lucky(map[string][]string{"image": {}}, ""), datatype.Default(nil))
	assert.NilError(t, err)
}

func Test_BuildResponse(t *testing.T) {
	s := schema.Lucky(map[string][]string{
		schema.Numerical:   {"sepal_length", "petal_length"},
		schema.Categorical: {"species"},
	}, "species")
	in, out, err := Build(s, datatype.Default(nil))
	assert.NilError(t, err)
	assert.DeepEqual(t, in.Variables(), []string{"sepal_length", "petal_length"})
	assert.DeepEqual(t, out.Variables(), []string{"species"})
	b, ok := out.Binding("species")
	assert.Assert(t, ok && b.Datatype == schema.Categorical)
	assert.DeepEqual(t, b.Pipeline.Names(), []string{"stringencoder", "categoricalimputer", "labelencoder"})

	b1, _ := in.Binding("sepal_length")
	b2, _ := in.Binding("petal_length")
	assert.Assert(t, b1.Pipeline != b2.Pipeline)
	assert.Assert(t, b1.Pipeline.Steps[0] != b2.Pipeline.Steps[0])
}

func iris() *tables.Table {
	return tables.Lucky(map[string]interface{}{
		"sepal_length": []float64{5.1, 4.9, 7.0, 6.4, 6.3},
		"petal_length": []interface{}{1.4, nil, 4.7, 4.5, 6.0},
		"species":      []string{"setosa", "setosa", "versicolor", "versicolor", "virginica"},
	})
}

func Test_FitTransform(t *testing.T) {
	s := schema.Lucky(map[string][]string{
		schema.Numerical:   {"sepal_length", "petal_length"},
		schema.Categorical: {"species"},
	}, "")
	in, _, err := Build(s, datatype.Default(nil))
	assert.NilError(t, err)

	_, err = in.Transform(iris())
	assert.Assert(t, xerrors.Is(err, transform.ErrNotFitted))

	e1, err := in.FitTransform(iris())
	assert.NilError(t, err)
	assert.Assert(t, in.Fitted())
	assert.DeepEqual(t, e1.Variables(), []string{"sepal_length", "petal_length", "species"})

	e2, err := in.Transform(iris())
	assert.NilError(t, err)
	for _, v := range e1.Variables() {
		a, _ := e1.Get(v)
		b, _ := e2.Get(v)
		assert.DeepEqual(t, a.RawMatrix().Data, b.RawMatrix().Data)
	}
	sp, ok := e2.Get("species")
	assert.Assert(t, ok)
	assert.DeepEqual(t, sp.RawMatrix().Data, []float64{1, 1, 2, 2, 3})
	_, ok = e2.Get("unknown")
	assert.Assert(t, !ok)
}

func Test_MissingColumns(t *testing.T) {
	s := schema.Lucky(map[string][]string{schema.Numerical: {"a", "b", "c"}}, "")
	in, _, _ := Build(s, datatype.Default(nil))
	err := in.Fit(tables.Lucky(map[string]interface{}{"b": []float64{1, 2}}))
	assert.Assert(t, xerrors.Is(err, ErrMissingColumns))
	assert.ErrorContains(t, err, "a, c")
	assert.Assert(t, !in.Fitted())
}

func Test_Clone(t *testing.T) {
	s := schema.Lucky(map[string][]string{schema.Numerical: {"sepal_length"}}, "")
	in, _, _ := Build(s, datatype.Default(nil))
	assert.NilError(t, in.Fit(iris()))
	q := in.Clone()
	assert.Assert(t, q.Fitted())
	assert.NilError(t, q.Fit(tables.Lucky(map[string]interface{}{"sepal_length": []float64{100, 200}})))

	a, _ := in.Binding("sepal_length")
	b, _ := q.Binding("sepal_length")
	assert.Assert(t, a.Pipeline != b.Pipeline)
	sa, _ := a.Pipeline.Step("standardscaler")
	sb, _ := b.Pipeline.Step("standardscaler")
	assert.Assert(t, sa.(*transform.StandardScaler).Mean != sb.(*transform.StandardScaler).Mean)
}
