package transform

import (
	"go-ml.dev/pkg/autonub/tables"
	"strings"
	"unicode"
	"unicode/utf8"
)

// sentinel tokens of the text vocabulary
const (
	UnknownToken = "UNK"
	PadToken     = "__PAD__"
	UnknownId    = 0
	PadId        = 1
)

const (
	minTokenLen = 2
	maxTokenLen = 15
)

/*
Tokenize lowercases the text and splits it into alphabetic tokens, tokens shorter than 2 or
longer than 15 characters are dropped
*/
func Tokenize(s string) []string {
	var r []string
	f := strings.FieldsFunc(strings.ToLower(s), func(c rune) bool {
		return !unicode.IsLetter(c) && c != '_'
	})
	for _, t := range f {
		n := utf8.RuneCountInString(t)
		if n >= minTokenLen && n <= maxTokenLen && t[0] != '_' {
			r = append(r, t)
		}
	}
	return r
}

/*
Pad truncates or right-pads ids to the length
*/
func Pad(ids []int, length int, pad int) []int {
	if len(ids) >= length {
		return ids[:length]
	}
	r := make([]int, length)
	copy(r, ids)
	for i := len(ids); i < length; i++ {
		r[i] = pad
	}
	return r
}

/*
EmbeddingVectorizer converts text into a fixed length sequence of token ids.
Tokens are numbered in order of first appearance starting from 2, id 0 is reserved for
unknown tokens and id 1 for padding. Length is SequenceLength if it's set and the median
count of tokens per row of the fitted data otherwise.
*/
type EmbeddingVectorizer struct {
	SequenceLength int // configured length, zero for median
	Length         int // fitted length
	Lookup         map[string]int
	NextIndex      int
	IsFitted       bool
}

func NewEmbeddingVectorizer(sequenceLength int) *EmbeddingVectorizer {
	return &EmbeddingVectorizer{SequenceLength: sequenceLength}
}

func (*EmbeddingVectorizer) Name() string { return "embeddingvectorizer" }

func (s *EmbeddingVectorizer) Fitted() bool { return s.IsFitted }

func (s *EmbeddingVectorizer) Clone() Step {
	x := *s
	if s.Lookup != nil {
		x.Lookup = make(map[string]int, len(s.Lookup))
		for k, v := range s.Lookup {
			x.Lookup[k] = v
		}
	}
	return &x
}

func (s *EmbeddingVectorizer) Fit(cells []interface{}) error {
	s.Lookup = map[string]int{UnknownToken: UnknownId, PadToken: PadId}
	s.NextIndex = PadId + 1
	lengths := make([]float64, len(cells))
	for i, c := range cells {
		tokens := Tokenize(tables.String(c))
		lengths[i] = float64(len(tokens))
		for _, t := range tokens {
			if _, ok := s.Lookup[t]; !ok {
				s.Lookup[t] = s.NextIndex
				s.NextIndex++
			}
		}
	}
	s.Length = fittedLength(s.SequenceLength, lengths)
	s.IsFitted = true
	return nil
}

// VocabularySize is the count of known ids, sentinels included
func (s *EmbeddingVectorizer) VocabularySize() int {
	return s.NextIndex
}

/*
Ids converts text into padded sequence of ids
*/
func (s *EmbeddingVectorizer) Ids(text string) []int {
	tokens := Tokenize(text)
	ids := make([]int, len(tokens))
	for i, t := range tokens {
		if id, ok := s.Lookup[t]; ok {
			ids[i] = id
		} else {
			ids[i] = UnknownId
		}
	}
	return Pad(ids, s.Length, PadId)
}

func (s *EmbeddingVectorizer) Transform(cells []interface{}) ([]interface{}, error) {
	if !s.IsFitted {
		return nil, notFitted(s)
	}
	r := make([]interface{}, len(cells))
	for i, c := range cells {
		ids := s.Ids(tables.String(c))
		v := make([]float64, len(ids))
		for j, id := range ids {
			v[j] = float64(id)
		}
		r[i] = v
	}
	return r, nil
}
