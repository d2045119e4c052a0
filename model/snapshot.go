package model

import (
	"encoding/gob"
	"go-ml.dev/pkg/autonub/datatype"
	"go-ml.dev/pkg/autonub/fu"
	"go-ml.dev/pkg/autonub/mapper"
	"go-ml.dev/pkg/autonub/nub"
	"go-ml.dev/pkg/zorros"
	"github.com/ulikunitz/xz"
	"io"
	"os"
	"path/filepath"
	"reflect"
)

type snapshot struct {
	Variables   map[string][]string
	Response    string
	Params      map[string]datatype.Params
	Input       []*mapper.Binding
	Output      []*mapper.Binding
	Graph       nub.Graph
	InputLayers []string
	InputNub    string
	OutputNub   string
	Loss        string
}

func name(l *nub.Layer) string {
	if l == nil {
		return ""
	}
	return l.Name
}

/*
Save writes fitted automater as xz compressed gob stream.
Custom handlers are not stored, they must be passed to Load again.
*/
func (a *Automater) Save(w io.Writer) (err error) {
	if err = a.checkFitted(); err != nil {
		return
	}
	s := snapshot{
		Variables: a.Variables,
		Response:  a.Response,
		Params:    a.Params,
		Input:     a.input.Bindings(),
		Output:    a.output.Bindings(),
		Graph:     a.Graph(),
		InputNub:  name(a.inputNub),
		OutputNub: name(a.outputNub),
	}
	for _, l := range a.inputLayers {
		s.InputLayers = append(s.InputLayers, l.Name)
	}
	if a.loss != nil {
		s.Loss = a.loss.Name()
	}
	xw, err := xz.NewWriter(w)
	if err != nil {
		return zorros.Trace(err)
	}
	if err = gob.NewEncoder(xw).Encode(s); err != nil {
		return zorros.Wrapf(err, "failed to encode automater: %v", err.Error())
	}
	if err = xw.Close(); err != nil {
		return zorros.Trace(err)
	}
	return
}

/*
Load reads fitted automater written by Save
*/
func Load(r io.Reader, handlers ...datatype.Handler) (*Automater, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to open automater stream: %v", err.Error())
	}
	s := snapshot{}
	if err = gob.NewDecoder(xr).Decode(&s); err != nil {
		return nil, zorros.Wrapf(err, "failed to decode automater: %v", err.Error())
	}
	a, err := New(Config{Variables: s.Variables, Response: s.Response, Params: s.Params, Handlers: handlers})
	if err != nil {
		return nil, err
	}
	if err = restore(a, s); err != nil {
		return nil, err
	}
	return a, nil
}

func restore(a *Automater, s snapshot) (err error) {
	if !reflect.DeepEqual(a.input.Variables(), variables(s.Input)) ||
		!reflect.DeepEqual(a.output.Variables(), variables(s.Output)) {
		return zorros.Errorf("stored bindings don't match declared variables")
	}
	if a.input, err = mapper.Restore(s.Input...); err != nil {
		return
	}
	if a.output, err = mapper.Restore(s.Output...); err != nil {
		return
	}
	layers, err := s.Graph.Build()
	if err != nil {
		return
	}
	lookup := func(n string) (*nub.Layer, error) {
		if n == "" {
			return nil, nil
		}
		if l, ok := layers[n]; ok {
			return l, nil
		}
		return nil, zorros.Errorf("stored graph does not have layer `%v`", n)
	}
	for _, n := range s.InputLayers {
		l, err := lookup(n)
		if err != nil {
			return err
		}
		a.inputLayers = append(a.inputLayers, l)
	}
	if a.inputNub, err = lookup(s.InputNub); err != nil {
		return
	}
	if a.outputNub, err = lookup(s.OutputNub); err != nil {
		return
	}
	if s.Loss != "" {
		l, ok := nub.LossByName(s.Loss)
		if !ok {
			return zorros.Errorf("unknown loss `%v`", s.Loss)
		}
		a.loss = l
	}
	a.fitted = true
	return
}

func variables(bs []*mapper.Binding) []string {
	r := make([]string, len(bs))
	for i, b := range bs {
		r[i] = b.Variable
	}
	return r
}

/*
SaveFile writes fitted automater into the file. Relative paths are resolved in the go-ml cache directory.
*/
func (a *Automater) SaveFile(path string) (err error) {
	path = fu.ModelPath(path)
	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zorros.Trace(err)
	}
	f, err := os.Create(path)
	if err != nil {
		return zorros.Trace(err)
	}
	if err = a.Save(f); err != nil {
		f.Close()
		os.Remove(path)
		return
	}
	if err = f.Close(); err != nil {
		return zorros.Trace(err)
	}
	return
}

/*
LoadFile reads fitted automater from the file written by SaveFile
*/
func LoadFile(path string, handlers ...datatype.Handler) (*Automater, error) {
	f, err := os.Open(fu.ModelPath(path))
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer f.Close()
	return Load(f, handlers...)
}
