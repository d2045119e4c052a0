package datatype

import (
	"go-ml.dev/pkg/autonub/nub"
	"go-ml.dev/pkg/autonub/schema"
	"go-ml.dev/pkg/autonub/tables"
	"go-ml.dev/pkg/autonub/transform"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

type numerical struct {
	template *transform.Pipeline
}

/*
NewNumerical creates handler of continuous variables, such as `age: [24, 51, nil]`.
Missing values are replaced by mean and variable is standardized.
*/
func NewNumerical() Handler {
	return numerical{transform.NewPipeline(&transform.MeanImputer{}, &transform.StandardScaler{})}
}

func (numerical) Name() string { return schema.Numerical }

func (numerical) SupportsOutput() bool { return true }

func (h numerical) DefaultPipeline() *transform.Pipeline { return h.template.Clone() }

func (numerical) InputNub(variable string, fitted Fitted) (*nub.Layer, *nub.Layer, error) {
	input := nub.NewInput("input_"+variable, fitted.width(), "float32")
	return input, input, nil
}

func (numerical) OutputNub(variable string, _ Fitted) (*nub.Layer, error) {
	return nub.NewDense("output_"+variable, 1, nub.Linear), nil
}

func (numerical) InverseTransform(predictions mat.Matrix, fitted *transform.Pipeline) (*tables.Column, error) {
	x, err := firstColumn(predictions)
	if err != nil {
		return nil, err
	}
	if s, ok := fitted.Step("standardscaler"); ok {
		inv, ok := s.(transform.Inverter)
		if !ok {
			return nil, zorros.Errorf("step %v of response pipeline can't inverse transformation", s.Name())
		}
		for i, v := range x {
			x[i] = inv.Inverse(v)
		}
	}
	return tables.Col(x), nil
}

func (numerical) SuggestedLoss() (nub.Loss, error) {
	return nub.MeanSquaredError{}, nil
}

func firstColumn(predictions mat.Matrix) ([]float64, error) {
	if predictions == nil {
		return nil, zorros.Errorf("there are no predictions")
	}
	_, c := predictions.Dims()
	if c != 1 {
		return nil, zorros.Errorf("predictions must have exactly one column, got %d", c)
	}
	return mat.Col(nil, 0, predictions), nil
}
