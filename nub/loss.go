package nub

import (
	"encoding/gob"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"math"
)

func init() {
	gob.Register(MeanSquaredError{})
	gob.Register(SparseCategoricalCrossentropy{})
	gob.Register(BinaryCrossentropy{})
}

const epsilon = 1e-7

/*
Loss is a loss function suggested for a response variable. Name is the canonical identifier
understood by network frameworks, Loss evaluates it on predictions and transformed truth.
*/
type Loss interface {
	Name() string
	// Loss panics if rows of prediction and length of truth differ
	Loss(prediction mat.Matrix, truth []float64) float64
}

func checkRows(prediction mat.Matrix, truth []float64) int {
	r, _ := prediction.Dims()
	if r != len(truth) {
		panic("nub: length mismatch")
	}
	return r
}

// MeanSquaredError compares the first prediction column with truth
type MeanSquaredError struct{}

func (MeanSquaredError) Name() string { return "mean_squared_error" }

func (MeanSquaredError) Loss(prediction mat.Matrix, truth []float64) float64 {
	r := checkRows(prediction, truth)
	d := mat.Col(nil, 0, prediction)
	floats.Sub(d, truth)
	return floats.Dot(d, d) / float64(r)
}

// SparseCategoricalCrossentropy expects class probabilities per row and class ids as truth
type SparseCategoricalCrossentropy struct{}

func (SparseCategoricalCrossentropy) Name() string { return "sparse_categorical_crossentropy" }

func (SparseCategoricalCrossentropy) Loss(prediction mat.Matrix, truth []float64) float64 {
	r := checkRows(prediction, truth)
	var s float64
	for i, t := range truth {
		p := prediction.At(i, int(t))
		s -= math.Log(math.Max(p, epsilon))
	}
	return s / float64(r)
}

// BinaryCrossentropy expects probability of true in the first prediction column
type BinaryCrossentropy struct{}

func (BinaryCrossentropy) Name() string { return "binary_crossentropy" }

func (BinaryCrossentropy) Loss(prediction mat.Matrix, truth []float64) float64 {
	r := checkRows(prediction, truth)
	var s float64
	for i, t := range truth {
		p := math.Min(math.Max(prediction.At(i, 0), epsilon), 1-epsilon)
		s -= t*math.Log(p) + (1-t)*math.Log(1-p)
	}
	return s / float64(r)
}

/*
LossByName returns known loss by its identifier
*/
func LossByName(name string) (Loss, bool) {
	for _, l := range []Loss{MeanSquaredError{}, SparseCategoricalCrossentropy{}, BinaryCrossentropy{}} {
		if l.Name() == name {
			return l, true
		}
	}
	return nil, false
}
