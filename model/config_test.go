package model

import (
	"bytes"
	"go-ml.dev/pkg/autonub/schema"
	"go-ml.dev/pkg/autonub/tables"
	"gotest.tools/assert"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const titanicYaml = `
response: survived
variables:
  numerical: [age]
  categorical: [sex, embarked]
  text: [name]
  boolean: [survived]
params:
  text: {sequence_length: 3, lstm_units: 8}
  categorical: {embedding_max_width: 1}
`

func Test_LoadConfig(t *testing.T) {
	c, err := LoadConfig(strings.NewReader(titanicYaml))
	assert.NilError(t, err)
	assert.Assert(t, c.Response == "survived")
	assert.DeepEqual(t, c.Variables[schema.Categorical], []string{"sex", "embarked"})
	assert.Assert(t, c.Params[schema.Text].Int("sequence_length", 0) == 3)

	a := Lucky(c).LuckyFit(titanic())
	ls := a.InputLayers()
	assert.Assert(t, len(ls) == 4)
	// age, sex, embarked, name
	assert.Assert(t, a.InputNub().Width() == 1+1+1+16)

	x, err := a.TransformTable(titanic())
	assert.NilError(t, err)
	assert.Assert(t, x.Has("name_2") && !x.Has("name_3"))
	assert.Assert(t, x.Len() == 4)
}

func Test_LoadConfigFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "autonub")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "titanic.yaml")
	assert.NilError(t, ioutil.WriteFile(path, []byte(titanicYaml), 0644))
	c, err := LoadConfigFile(path)
	assert.NilError(t, err)
	assert.Assert(t, c.Variables[schema.Numerical][0] == "age")

	_, err = LoadConfigFile(filepath.Join(dir, "nothing.yaml"))
	assert.Assert(t, err != nil)
	_, err = LoadConfig(strings.NewReader("variables: [1, 2"))
	assert.ErrorContains(t, err, "failed to decode config")
}

func Test_GraphYaml(t *testing.T) {
	q := tables.Lucky(map[string]interface{}{
		"age": []float64{1, 2, 3},
		"sex": []string{"m", "f", "m"},
	})
	a := Lucky(Config{Variables: map[string][]string{
		schema.Numerical:   {"age"},
		schema.Categorical: {"sex"},
	}}).LuckyFit(q)
	bf := bytes.Buffer{}
	assert.NilError(t, a.Graph().WriteYAML(&bf))
	assert.Assert(t, strings.Contains(bf.String(), "concatenate_inputs"))
}
