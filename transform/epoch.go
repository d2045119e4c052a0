package transform

import (
	"go-ml.dev/pkg/autonub/tables"
	"go-ml.dev/pkg/zorros"
	"strings"
	"time"
)

// layouts tried in order when parsing datetime strings
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006 01 02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2006",
	"Jan-2006",
	"2006-01",
}

/*
EpochTransformer converts dates into nanoseconds since Unix epoch, missing cells become NaN
*/
type EpochTransformer struct {
	IsFitted bool
}

func (*EpochTransformer) Name() string { return "epochtransformer" }

func (s *EpochTransformer) Fitted() bool { return s.IsFitted }

func (s *EpochTransformer) Clone() Step { x := *s; return &x }

func (s *EpochTransformer) Fit(cells []interface{}) error {
	for i, c := range cells {
		if _, err := Epoch(c); err != nil {
			return zorros.Wrapf(err, "row %d: %v", i, err.Error())
		}
	}
	s.IsFitted = true
	return nil
}

func (s *EpochTransformer) Transform(cells []interface{}) ([]interface{}, error) {
	if !s.IsFitted {
		return nil, notFitted(s)
	}
	r := make([]interface{}, len(cells))
	for i, c := range cells {
		f, err := Epoch(c)
		if err != nil {
			return nil, zorros.Wrapf(err, "row %d: %v", i, err.Error())
		}
		r[i] = f
	}
	return r, nil
}

/*
Epoch converts a time.Time or a date string into nanoseconds since Unix epoch
*/
func Epoch(c interface{}) (float64, error) {
	if tables.Na(c) {
		return nan, nil
	}
	switch x := c.(type) {
	case time.Time:
		return float64(x.UnixNano()), nil
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return nan, nil
		}
		for _, l := range layouts {
			if t, err := time.Parse(l, x); err == nil {
				return float64(t.UnixNano()), nil
			}
		}
		return 0, zorros.Errorf("unsupported datetime format `%v`", x)
	}
	if f, ok := tables.Float(c); ok {
		return f, nil
	}
	return 0, zorros.Errorf("can't convert `%v` into datetime", tables.String(c))
}
