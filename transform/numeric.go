package transform

import (
	"go-ml.dev/pkg/autonub/tables"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/stat"
	"math"
	"strconv"
	"strings"
)

var nan = math.NaN()

func floats(cells []interface{}) (all []float64, present []float64, err error) {
	all = make([]float64, len(cells))
	for i, c := range cells {
		f, ok := tables.Float(c)
		if !ok {
			if !tables.Na(c) {
				return nil, nil, zorros.Errorf("row %d has non numerical value `%v`", i, tables.String(c))
			}
			f = nan
		} else {
			present = append(present, f)
		}
		all[i] = f
	}
	return
}

/*
MeanImputer replaces missing values by the mean of values seen in Fit
*/
type MeanImputer struct {
	Mean     float64
	IsFitted bool
}

func (*MeanImputer) Name() string { return "imputer" }

func (s *MeanImputer) Fitted() bool { return s.IsFitted }

func (s *MeanImputer) Clone() Step { x := *s; return &x }

func (s *MeanImputer) Fit(cells []interface{}) error {
	_, present, err := floats(cells)
	if err != nil {
		return err
	}
	s.Mean = 0
	if len(present) > 0 {
		s.Mean = stat.Mean(present, nil)
	}
	s.IsFitted = true
	return nil
}

func (s *MeanImputer) Transform(cells []interface{}) ([]interface{}, error) {
	if !s.IsFitted {
		return nil, notFitted(s)
	}
	all, _, err := floats(cells)
	if err != nil {
		return nil, err
	}
	r := make([]interface{}, len(all))
	for i, f := range all {
		if math.IsNaN(f) {
			f = s.Mean
		}
		r[i] = f
	}
	return r, nil
}

/*
StandardScaler centers values to zero mean and scales them to unit (population) variance.
A constant column gets scale 1.
*/
type StandardScaler struct {
	Mean     float64
	Scale    float64
	IsFitted bool
}

func (*StandardScaler) Name() string { return "standardscaler" }

func (s *StandardScaler) Fitted() bool { return s.IsFitted }

func (s *StandardScaler) Clone() Step { x := *s; return &x }

func (s *StandardScaler) Fit(cells []interface{}) error {
	_, present, err := floats(cells)
	if err != nil {
		return err
	}
	s.Mean, s.Scale = 0, 1
	if n := float64(len(present)); n > 0 {
		s.Mean = stat.Mean(present, nil)
		if n > 1 {
			if v := stat.Variance(present, nil) * (n - 1) / n; v > 0 {
				s.Scale = math.Sqrt(v)
			}
		}
	}
	s.IsFitted = true
	return nil
}

func (s *StandardScaler) Transform(cells []interface{}) ([]interface{}, error) {
	if !s.IsFitted {
		return nil, notFitted(s)
	}
	all, _, err := floats(cells)
	if err != nil {
		return nil, err
	}
	r := make([]interface{}, len(all))
	for i, f := range all {
		r[i] = (f - s.Mean) / s.Scale
	}
	return r, nil
}

func (s *StandardScaler) Inverse(x float64) float64 {
	return x*s.Scale + s.Mean
}

/*
TypeConversion casts cells to bool. Numbers are true when non-zero, strings are parsed by
strconv.ParseBool or considered true when non-empty. Missing cells are false.
*/
type TypeConversion struct {
	IsFitted bool
}

func (*TypeConversion) Name() string { return "typeconversion" }

func (s *TypeConversion) Fitted() bool { return s.IsFitted }

func (s *TypeConversion) Clone() Step { x := *s; return &x }

func (s *TypeConversion) Fit([]interface{}) error {
	s.IsFitted = true
	return nil
}

func (s *TypeConversion) Transform(cells []interface{}) ([]interface{}, error) {
	if !s.IsFitted {
		return nil, notFitted(s)
	}
	r := make([]interface{}, len(cells))
	for i, c := range cells {
		r[i] = Bool(c)
	}
	return r, nil
}

func Bool(c interface{}) bool {
	if tables.Na(c) {
		return false
	}
	switch x := c.(type) {
	case bool:
		return x
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(x)); err == nil {
			return b
		}
		return x != ""
	}
	if f, ok := tables.Float(c); ok {
		return f != 0
	}
	return true
}
