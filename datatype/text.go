package datatype

import (
	"go-ml.dev/pkg/autonub/fu"
	"go-ml.dev/pkg/autonub/nub"
	"go-ml.dev/pkg/autonub/schema"
	"go-ml.dev/pkg/autonub/transform"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultTextEmbeddingWidth = 200
	DefaultTextLstmUnits      = 128
	DefaultSeriesLstmUnits    = 32
)

type text struct {
	inputOnly
	template       *transform.Pipeline
	embeddingWidth int
	lstmUnits      int
}

/*
NewText creates handler of free text variables, such as `name: ["john clark", "sue fox"]`.
Text is tokenized and every token is replaced by its id in the fitted vocabulary.

Params:
	sequence_length - count of tokens per observation, median count if zero (0)
	embedding_width - width of token embedding (200)
	lstm_units - units of the bidirectional LSTM encoder (128)
*/
func NewText(p Params) Handler {
	return text{
		inputOnly: inputOnly{schema.Text},
		template: transform.NewPipeline(
			&transform.StringEncoder{},
			transform.NewEmbeddingVectorizer(p.Int("sequence_length", 0))),
		embeddingWidth: fu.Fnzi(p.Int("embedding_width", 0), DefaultTextEmbeddingWidth),
		lstmUnits:      fu.Fnzi(p.Int("lstm_units", 0), DefaultTextLstmUnits),
	}
}

func (h text) DefaultPipeline() *transform.Pipeline { return h.template.Clone() }

func vocabulary(fitted Fitted) int {
	if fitted.Pipeline != nil {
		if s, ok := fitted.Pipeline.Step("embeddingvectorizer"); ok {
			return s.(*transform.EmbeddingVectorizer).VocabularySize()
		}
	}
	if fitted.Data == nil {
		return transform.PadId + 1
	}
	return int(mat.Max(fitted.Data)) + 1
}

func (h text) InputNub(variable string, fitted Fitted) (*nub.Layer, *nub.Layer, error) {
	input := nub.NewInput("input_"+variable, fitted.width(), "")
	tip := input.
		Embedding("embedding_"+variable, vocabulary(fitted), h.embeddingWidth).
		BidirectionalLSTM("bidirectional_lstm_"+variable, h.lstmUnits)
	return input, tip, nil
}

type timeseries struct {
	inputOnly
	template  *transform.Pipeline
	lstmUnits int
}

/*
NewTimeSeries creates handler of numerical sequences, such as `prices: [[1.2, 1.3, 1.1], [2.0, 2.1]]`.

Params:
	sequence_length - count of values per observation, median length if zero (0)
	lstm_units - units of the bidirectional LSTM encoder (32)
*/
func NewTimeSeries(p Params) Handler {
	return timeseries{
		inputOnly: inputOnly{schema.TimeSeries},
		template:  transform.NewPipeline(transform.NewTimeSeriesVectorizer(p.Int("sequence_length", 0))),
		lstmUnits: fu.Fnzi(p.Int("lstm_units", 0), DefaultSeriesLstmUnits),
	}
}

func (h timeseries) DefaultPipeline() *transform.Pipeline { return h.template.Clone() }

func (h timeseries) InputNub(variable string, fitted Fitted) (*nub.Layer, *nub.Layer, error) {
	n := fitted.width()
	input := nub.NewInput("input_"+variable, n, "")
	tip := input.
		Reshape("reshape_"+variable, n, 1).
		BidirectionalLSTM("bidirectional_lstm_"+variable, h.lstmUnits)
	return input, tip, nil
}
