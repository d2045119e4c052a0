package datatype

import (
	"go-ml.dev/pkg/autonub/nub"
	"go-ml.dev/pkg/autonub/schema"
	"go-ml.dev/pkg/autonub/tables"
	"go-ml.dev/pkg/autonub/transform"
	"gonum.org/v1/gonum/mat"
)

type boolean struct {
	template *transform.Pipeline
}

/*
NewBoolean creates handler of boolean variables, such as `owns_home: [true, false, true]`
*/
func NewBoolean() Handler {
	return boolean{transform.NewPipeline(&transform.TypeConversion{})}
}

func (boolean) Name() string { return schema.Boolean }

func (boolean) SupportsOutput() bool { return true }

func (h boolean) DefaultPipeline() *transform.Pipeline { return h.template.Clone() }

func (boolean) InputNub(variable string, fitted Fitted) (*nub.Layer, *nub.Layer, error) {
	input := nub.NewInput("input_"+variable, fitted.width(), "")
	return input, input, nil
}

func (boolean) OutputNub(variable string, _ Fitted) (*nub.Layer, error) {
	return nub.NewDense("output_"+variable, 1, nub.Sigmoid), nil
}

// InverseTransform returns predicted probabilities as is
func (boolean) InverseTransform(predictions mat.Matrix, _ *transform.Pipeline) (*tables.Column, error) {
	x, err := firstColumn(predictions)
	if err != nil {
		return nil, err
	}
	return tables.Col(x), nil
}

func (boolean) SuggestedLoss() (nub.Loss, error) {
	return nub.BinaryCrossentropy{}, nil
}
