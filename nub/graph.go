package nub

import (
	"go-ml.dev/pkg/zorros"
	"gopkg.in/yaml.v3"
	"io"
)

/*
Spec is a flat description of a layer referencing inputs by name
*/
type Spec struct {
	Name       string   `yaml:"name"`
	Kind       Kind     `yaml:"kind"`
	Shape      []int    `yaml:"shape,flow"`
	DType      string   `yaml:"dtype,omitempty"`
	InputDim   int      `yaml:"input_dim,omitempty"`
	Units      int      `yaml:"units,omitempty"`
	Activation string   `yaml:"activation,omitempty"`
	Inputs     []string `yaml:"inputs,omitempty,flow"`
}

/*
Graph is a topologically ordered list of layer specs, every layer follows its inputs
*/
type Graph struct {
	Layers []Spec `yaml:"layers"`
}

/*
Export flattens the layers and all their ancestors into a graph
*/
func Export(layers ...*Layer) Graph {
	g := Graph{}
	seen := map[*Layer]bool{}
	var visit func(*Layer)
	visit = func(l *Layer) {
		if l == nil || seen[l] {
			return
		}
		seen[l] = true
		s := Spec{
			Name:       l.Name,
			Kind:       l.Kind,
			Shape:      append([]int(nil), l.Shape...),
			DType:      l.DType,
			InputDim:   l.InputDim,
			Units:      l.Units,
			Activation: l.Activation,
		}
		for _, x := range l.Inputs {
			visit(x)
			s.Inputs = append(s.Inputs, x.Name)
		}
		g.Layers = append(g.Layers, s)
	}
	for _, l := range layers {
		visit(l)
	}
	return g
}

/*
Build restores layers from the graph and returns them by name
*/
func (g Graph) Build() (map[string]*Layer, error) {
	m := make(map[string]*Layer, len(g.Layers))
	for _, s := range g.Layers {
		if _, exists := m[s.Name]; exists {
			return nil, zorros.Errorf("layer `%v` is defined twice", s.Name)
		}
		l := &Layer{
			Name:       s.Name,
			Kind:       s.Kind,
			Shape:      append([]int(nil), s.Shape...),
			DType:      s.DType,
			InputDim:   s.InputDim,
			Units:      s.Units,
			Activation: s.Activation,
		}
		for _, n := range s.Inputs {
			x, ok := m[n]
			if !ok {
				return nil, zorros.Errorf("layer `%v` refers unknown or later defined input `%v`", s.Name, n)
			}
			l.Inputs = append(l.Inputs, x)
		}
		m[s.Name] = l
	}
	return m, nil
}

// WriteYAML writes the graph as YAML document
func (g Graph) WriteYAML(w io.Writer) error {
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	if err := e.Encode(g); err != nil {
		return zorros.Wrapf(err, "failed to encode graph: %v", err.Error())
	}
	if err := e.Close(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

// ReadYAML reads the graph from YAML document
func ReadYAML(r io.Reader) (g Graph, err error) {
	if err = yaml.NewDecoder(r).Decode(&g); err != nil {
		err = zorros.Wrapf(err, "failed to decode graph: %v", err.Error())
	}
	return
}
