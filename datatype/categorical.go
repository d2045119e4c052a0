package datatype

import (
	"go-ml.dev/pkg/autonub/fu"
	"go-ml.dev/pkg/autonub/nub"
	"go-ml.dev/pkg/autonub/schema"
	"go-ml.dev/pkg/autonub/tables"
	"go-ml.dev/pkg/autonub/transform"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

// DefaultEmbeddingMaxWidth limits width of categorical embeddings
const DefaultEmbeddingMaxWidth = 50

type categorical struct {
	template *transform.Pipeline
	maxWidth int
}

/*
NewCategorical creates handler of categorical variables, such as `sex: ["male", "female"]`.
Levels are encoded as integer ids, missing and unseen levels are encoded as `UNK`.

Params:
	embedding_max_width - maximal width of the embedding (50)
*/
func NewCategorical(p Params) Handler {
	return categorical{
		template: transform.NewPipeline(
			&transform.StringEncoder{},
			transform.NewCategoricalImputer(transform.Unknown, true),
			transform.NewLabelEncoder(transform.Unknown)),
		maxWidth: fu.Fnzi(p.Int("embedding_max_width", 0), DefaultEmbeddingMaxWidth),
	}
}

func (categorical) Name() string { return schema.Categorical }

func (categorical) SupportsOutput() bool { return true }

func (h categorical) DefaultPipeline() *transform.Pipeline { return h.template.Clone() }

/*
levels returns the vocabulary size of the fitted label encoder. Without label encoder
it's inferred from the maximal id.
*/
func levels(fitted Fitted) (int, *transform.LabelEncoder) {
	if fitted.Pipeline != nil {
		if s, ok := fitted.Pipeline.Step("labelencoder"); ok {
			le := s.(*transform.LabelEncoder)
			return len(le.Labels), le
		}
	}
	if fitted.Data == nil {
		return 1, nil
	}
	return int(mat.Max(fitted.Data)) + 1, nil
}

func (h categorical) InputNub(variable string, fitted Fitted) (*nub.Layer, *nub.Layer, error) {
	n, _ := levels(fitted)
	width := fu.Maxi(fu.Mini((n+1)/2, h.maxWidth), 1)
	input := nub.NewInput("input_"+variable, fitted.width(), "")
	tip := input.
		Embedding("embedding_"+variable, n, width).
		Flatten("flatten_embedding_" + variable)
	return input, tip, nil
}

/*
OutputNub creates softmax layer with unit per level, the sentinel level included
*/
func (categorical) OutputNub(variable string, fitted Fitted) (*nub.Layer, error) {
	n, _ := levels(fitted)
	return nub.NewDense("output_"+variable, n, nub.Softmax), nil
}

/*
InverseTransform selects the most probable level of every prediction row
*/
func (categorical) InverseTransform(predictions mat.Matrix, fitted *transform.Pipeline) (*tables.Column, error) {
	if predictions == nil {
		return nil, zorros.Errorf("there are no predictions")
	}
	_, le := levels(Fitted{Pipeline: fitted})
	if le == nil {
		return nil, zorros.Errorf("response pipeline does not have label encoder")
	}
	r, c := predictions.Dims()
	labels := make([]string, r)
	row := make([]float64, c)
	for i := range labels {
		mat.Row(row, i, predictions)
		labels[i] = le.Label(fu.Indmaxd(row))
	}
	return tables.Col(labels), nil
}

func (categorical) SuggestedLoss() (nub.Loss, error) {
	return nub.SparseCategoricalCrossentropy{}, nil
}
