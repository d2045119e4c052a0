/*
Package nub describes neural network layers independently of any tensor framework.

A layer is an opaque handle with a declared output shape. Handlers chain layers from an
input placeholder into a "nub" for every variable, the last layer of the chain is the nub
tip. Nub tips are concatenated into the network input stage. The graph can be exported
and rebuilt by a framework specific builder.
*/
package nub

import (
	"fmt"
	"go-ml.dev/pkg/autonub/fu"
)

type Kind string

const (
	Input         Kind = "input"
	Embedding     Kind = "embedding"
	Flatten       Kind = "flatten"
	Reshape       Kind = "reshape"
	Bidirectional Kind = "bidirectional_lstm"
	Concatenate   Kind = "concatenate"
	Dense         Kind = "dense"
)

// activations used by output layers
const (
	Linear  = "linear"
	Softmax = "softmax"
	Sigmoid = "sigmoid"
)

/*
Layer is a node of the network graph
*/
type Layer struct {
	Name       string
	Kind       Kind
	Shape      []int    // output shape without batch dimension
	DType      string   // input placeholders only
	InputDim   int      // embedding table size
	Units      int      // dense and recurrent units
	Activation string   // dense only
	Inputs     []*Layer // layers this layer is applied to
}

/*
Width is the count of features produced by the layer, the product of its shape
*/
func (l *Layer) Width() int {
	if len(l.Shape) == 0 {
		return 0
	}
	w := 1
	for _, x := range l.Shape {
		w *= x
	}
	return w
}

func (l *Layer) String() string {
	return fmt.Sprintf("%v(%v)%v", l.Kind, l.Name, l.Shape)
}

/*
NewInput creates an input placeholder accepting width values per observation
*/
func NewInput(name string, width int, dtype string) *Layer {
	return &Layer{Name: fu.LayerName(name), Kind: Input, Shape: []int{width}, DType: dtype}
}

/*
Embedding applies an embedding table with inputDim rows and outputDim columns
*/
func (l *Layer) Embedding(name string, inputDim, outputDim int) *Layer {
	return &Layer{
		Name:     fu.LayerName(name),
		Kind:     Embedding,
		Shape:    []int{l.Width(), outputDim},
		InputDim: inputDim,
		Units:    outputDim,
		Inputs:   []*Layer{l},
	}
}

// Flatten flattens layer output into one dimension
func (l *Layer) Flatten(name string) *Layer {
	return &Layer{Name: fu.LayerName(name), Kind: Flatten, Shape: []int{l.Width()}, Inputs: []*Layer{l}}
}

/*
Reshape changes output shape preserving width, it panics if the width differs
*/
func (l *Layer) Reshape(name string, shape ...int) *Layer {
	q := &Layer{Name: fu.LayerName(name), Kind: Reshape, Shape: shape, Inputs: []*Layer{l}}
	if q.Width() != l.Width() {
		panic(fmt.Sprintf("can't reshape %v into %v", l.Shape, shape))
	}
	return q
}

/*
BidirectionalLSTM applies bidirectional recurrent encoder returning the last state of both directions
*/
func (l *Layer) BidirectionalLSTM(name string, units int) *Layer {
	return &Layer{Name: fu.LayerName(name), Kind: Bidirectional, Shape: []int{2 * units}, Units: units, Inputs: []*Layer{l}}
}

/*
Apply connects dense layer to the input returning a new connected layer
*/
func (l *Layer) Apply(input *Layer) *Layer {
	q := *l
	q.Inputs = []*Layer{input}
	return &q
}

/*
NewDense creates unconnected dense layer, it's used as an output head
*/
func NewDense(name string, units int, activation string) *Layer {
	return &Layer{Name: fu.LayerName(name), Kind: Dense, Shape: []int{units}, Units: units, Activation: activation}
}

/*
Concat concatenates tips along the feature axis
*/
func Concat(name string, tips ...*Layer) *Layer {
	w := 0
	for _, t := range tips {
		w += t.Width()
	}
	return &Layer{Name: fu.LayerName(name), Kind: Concatenate, Shape: []int{w}, Inputs: tips}
}
