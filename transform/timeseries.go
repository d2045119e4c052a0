package transform

import (
	"go-ml.dev/pkg/autonub/fu"
	"go-ml.dev/pkg/autonub/tables"
	"go-ml.dev/pkg/zorros"
	"reflect"
	"strconv"
	"strings"
)

/*
TimeSeriesVectorizer converts sequences of numbers into fixed length vectors.
A cell is a slice of numbers or a string of numbers separated by spaces, commas or semicolons.
Length is SequenceLength if it's set and the median length of fitted sequences otherwise.
Longer sequences are truncated, shorter ones and missing values are filled by zeros.
*/
type TimeSeriesVectorizer struct {
	SequenceLength int // configured length, zero for median
	Length         int // fitted length
	IsFitted       bool
}

func NewTimeSeriesVectorizer(length int) *TimeSeriesVectorizer {
	return &TimeSeriesVectorizer{SequenceLength: length}
}

func (*TimeSeriesVectorizer) Name() string { return "timeseriesvectorizer" }

func (s *TimeSeriesVectorizer) Fitted() bool { return s.IsFitted }

func (s *TimeSeriesVectorizer) Clone() Step { x := *s; return &x }

func (s *TimeSeriesVectorizer) Fit(cells []interface{}) error {
	lengths := make([]float64, len(cells))
	for i, c := range cells {
		v, err := Sequence(c)
		if err != nil {
			return zorros.Wrapf(err, "row %d: %v", i, err.Error())
		}
		lengths[i] = float64(len(v))
	}
	s.Length = fittedLength(s.SequenceLength, lengths)
	s.IsFitted = true
	return nil
}

func (s *TimeSeriesVectorizer) Transform(cells []interface{}) ([]interface{}, error) {
	if !s.IsFitted {
		return nil, notFitted(s)
	}
	r := make([]interface{}, len(cells))
	for i, c := range cells {
		v, err := Sequence(c)
		if err != nil {
			return nil, zorros.Wrapf(err, "row %d: %v", i, err.Error())
		}
		q := make([]float64, s.Length)
		for j := 0; j < len(v) && j < s.Length; j++ {
			if !tables.Na(v[j]) {
				q[j] = v[j]
			}
		}
		r[i] = q
	}
	return r, nil
}

// fittedLength is the configured length or the median of lengths, at least 1
func fittedLength(configured int, lengths []float64) int {
	if configured > 0 {
		return configured
	}
	if len(lengths) == 0 {
		return 1
	}
	return fu.Maxi(int(fu.Median(lengths)), 1)
}

/*
Sequence converts a cell into a sequence of numbers
*/
func Sequence(c interface{}) ([]float64, error) {
	if tables.Na(c) {
		return nil, nil
	}
	switch x := c.(type) {
	case []float64:
		return x, nil
	case string:
		f := strings.FieldsFunc(x, func(r rune) bool {
			return r == ' ' || r == ',' || r == ';' || r == '\t' || r == '[' || r == ']'
		})
		r := make([]float64, len(f))
		for i, s := range f {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, zorros.Errorf("bad sequence element `%v`", s)
			}
			r[i] = v
		}
		return r, nil
	}
	v := reflect.ValueOf(c)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		r := make([]float64, v.Len())
		for i := range r {
			q := v.Index(i).Interface()
			f, ok := tables.Float(q)
			if !ok && !tables.Na(q) {
				return nil, zorros.Errorf("bad sequence element `%v`", tables.String(q))
			}
			if !ok {
				f = nan
			}
			r[i] = f
		}
		return r, nil
	}
	if f, ok := tables.Float(c); ok {
		return []float64{f}, nil
	}
	return nil, zorros.Errorf("can't convert `%v` into sequence", tables.String(c))
}
