/*
Package datatype implements handlers of variable datatypes.

A handler knows the default preprocessing pipeline of its datatype, how to turn a
transformed variable into a network input nub, and, if the datatype can be a response,
how to create the output layer, which loss to suggest and how to undo the preprocessing
of predictions.
*/
package datatype

import (
	"go-ml.dev/pkg/autonub/nub"
	"go-ml.dev/pkg/autonub/schema"
	"go-ml.dev/pkg/autonub/tables"
	"go-ml.dev/pkg/autonub/transform"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

/*
ErrConfiguration is the kind of errors caused by wrong usage of datatypes
*/
var ErrConfiguration = schema.ErrConfiguration

/*
ErrNoOutput is returned by output related methods of handlers not supporting output
*/
var ErrNoOutput = xerrors.Errorf("datatype does not support output: %w", ErrConfiguration)

/*
Fitted is a variable transformed by its fitted pipeline
*/
type Fitted struct {
	Data     *mat.Dense          // rows x width
	Pipeline *transform.Pipeline // the fitted pipeline produced Data
}

func (f Fitted) width() int {
	if f.Data == nil {
		return 1
	}
	_, w := f.Data.Dims()
	return w
}

/*
Handler is the capability of a datatype
*/
type Handler interface {
	// Name of the datatype
	Name() string
	// SupportsOutput reports whether variable of the datatype can be a response
	SupportsOutput() bool
	// DefaultPipeline returns a new unfitted copy of the default pipeline
	DefaultPipeline() *transform.Pipeline
	// InputNub returns input placeholder and the tip of variable nub
	InputNub(variable string, fitted Fitted) (input *nub.Layer, tip *nub.Layer, err error)
	// OutputNub returns output layer sized to the response
	OutputNub(variable string, fitted Fitted) (*nub.Layer, error)
	// InverseTransform converts predictions into the natural scale of response
	InverseTransform(predictions mat.Matrix, fitted *transform.Pipeline) (*tables.Column, error)
	// SuggestedLoss returns the loss to train network predicting response of this datatype
	SuggestedLoss() (nub.Loss, error)
}

func noOutput(h Handler) error {
	return xerrors.Errorf("%v: %w", h.Name(), ErrNoOutput)
}

/*
inputOnly implements output methods of datatypes not supporting output
*/
type inputOnly struct{ name string }

func (h inputOnly) Name() string { return h.name }

func (inputOnly) SupportsOutput() bool { return false }

func (h inputOnly) OutputNub(string, Fitted) (*nub.Layer, error) {
	return nil, noOutput(h)
}

func (h inputOnly) InverseTransform(mat.Matrix, *transform.Pipeline) (*tables.Column, error) {
	return nil, noOutput(h)
}

func (h inputOnly) SuggestedLoss() (nub.Loss, error) {
	return nil, noOutput(h)
}

func (h inputOnly) DefaultPipeline() *transform.Pipeline {
	return transform.NewPipeline()
}

func (h inputOnly) InputNub(variable string, fitted Fitted) (*nub.Layer, *nub.Layer, error) {
	input := nub.NewInput("input_"+variable, fitted.width(), "float32")
	return input, input, nil
}

/*
Params is a set of datatype hyper-parameters
*/
type Params map[string]float64

/*
Get value of the parameter by name if exists and dflt value otherwise
*/
func (p Params) Get(name string, dflt float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return dflt
}

func (p Params) Int(name string, dflt int) int {
	return int(p.Get(name, float64(dflt)))
}
