/*
Package schema validates the assignment of variables to datatypes
*/
package schema

import (
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"
	"sort"
	"strings"
)

/*
ErrConfiguration is the kind of all errors caused by inconsistent declaration of variables
*/
var ErrConfiguration = xerrors.New("configuration error")

// Canonical datatype names in processing order
const (
	Numerical   = "numerical"
	Categorical = "categorical"
	Boolean     = "boolean"
	Datetime    = "datetime"
	Text        = "text"
	TimeSeries  = "timeseries"
	Passthrough = "passthrough"
)

var canonical = []string{Numerical, Categorical, Boolean, Datetime, Text, TimeSeries, Passthrough}

/*
Schema is an immutable assignment of variables to datatypes with an optional response variable
*/
type Schema struct {
	types     []string
	variables map[string][]string
	typeOf    map[string]string
	response  string
}

/*
New validates that every variable is assigned to exactly one datatype and that response,
if specified, is one of variables
*/
func New(types map[string][]string, response string) (*Schema, error) {
	s := &Schema{
		variables: map[string][]string{},
		typeOf:    map[string]string{},
		response:  response,
	}
	s.types = order(types)
	for _, tp := range s.types {
		seen := map[string]bool{}
		for _, v := range types[tp] {
			if seen[v] {
				return nil, xerrors.Errorf("variable `%v` is listed twice in datatype %v: %w", v, tp, ErrConfiguration)
			}
			seen[v] = true
		}
		s.variables[tp] = append([]string(nil), types[tp]...)
	}
	if err := overlaps(s.types, types); err != nil {
		return nil, err
	}
	for _, tp := range s.types {
		for _, v := range s.variables[tp] {
			s.typeOf[v] = tp
		}
	}
	if response != "" {
		if _, ok := s.typeOf[response]; !ok {
			return nil, xerrors.Errorf("response variable `%v` is not assigned to any datatype: %w", response, ErrConfiguration)
		}
	}
	return s, nil
}

/*
Lucky creates a schema and panics on configuration error
*/
func Lucky(types map[string][]string, response string) *Schema {
	s, err := New(types, response)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return s
}

func order(types map[string][]string) []string {
	var r, extra []string
	for _, tp := range canonical {
		if _, ok := types[tp]; ok {
			r = append(r, tp)
		}
	}
	for tp := range types {
		known := false
		for _, c := range canonical {
			if c == tp {
				known = true
				break
			}
		}
		if !known {
			extra = append(extra, tp)
		}
	}
	sort.Strings(extra)
	return append(r, extra...)
}

func overlaps(names []string, types map[string][]string) error {
	var msgs []string
	for i, a := range names {
		in := map[string]bool{}
		for _, v := range types[a] {
			in[v] = true
		}
		for _, b := range names[i+1:] {
			var shared []string
			for _, v := range types[b] {
				if in[v] {
					shared = append(shared, v)
				}
			}
			if len(shared) > 0 {
				sort.Strings(shared)
				msgs = append(msgs, "datatypes "+a+" and "+b+" share variables: "+strings.Join(shared, ", "))
			}
		}
	}
	if len(msgs) > 0 {
		return xerrors.Errorf("%v: %w", strings.Join(msgs, "; "), ErrConfiguration)
	}
	return nil
}

// Types returns datatypes in processing order, including datatypes without variables
func (s *Schema) Types() []string {
	return append([]string(nil), s.types...)
}

// Variables returns variables of the datatype in declared order
func (s *Schema) Variables(tp string) []string {
	return append([]string(nil), s.variables[tp]...)
}

// TypeOf returns the datatype of variable
func (s *Schema) TypeOf(v string) (string, bool) {
	tp, ok := s.typeOf[v]
	return tp, ok
}

// All returns all variables, response included
func (s *Schema) All() []string {
	var r []string
	for _, tp := range s.types {
		r = append(r, s.variables[tp]...)
	}
	return r
}

// Inputs returns all variables except response
func (s *Schema) Inputs() []string {
	var r []string
	for _, v := range s.All() {
		if v != s.response {
			r = append(r, v)
		}
	}
	return r
}

func (s *Schema) Response() string {
	return s.response
}

func (s *Schema) Supervised() bool {
	return s.response != ""
}

// Map returns a copy of the datatype->variables assignment
func (s *Schema) Map() map[string][]string {
	r := make(map[string][]string, len(s.types))
	for _, tp := range s.types {
		r[tp] = s.Variables(tp)
	}
	return r
}
