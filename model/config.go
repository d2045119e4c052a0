package model

import (
	"go-ml.dev/pkg/autonub/datatype"
	"go-ml.dev/pkg/zorros"
	"gopkg.in/yaml.v3"
	"io"
	"os"
)

/*
Config declares variables of a dataset
*/
type Config struct {
	Variables map[string][]string        `yaml:"variables"` // variables by datatype name
	Response  string                     `yaml:"response"`  // optional response variable
	Params    map[string]datatype.Params `yaml:"params"`    // datatype hyper-parameters by datatype name
	Handlers  []datatype.Handler         `yaml:"-"`         // custom handlers replacing default ones
	Verbose   func(string)               `yaml:"-"`         // print function for progress messages
}

/*
LoadConfig reads configuration from YAML document like

	response: survived
	variables:
	  numerical: [age, fare]
	  categorical: [sex, pclass]
	  text: [name]
	params:
	  text: {sequence_length: 12}
*/
func LoadConfig(r io.Reader) (c Config, err error) {
	if err = yaml.NewDecoder(r).Decode(&c); err != nil {
		err = zorros.Wrapf(err, "failed to decode config: %v", err.Error())
	}
	return
}

// LoadConfigFile reads configuration from YAML file
func LoadConfigFile(path string) (c Config, err error) {
	f, err := os.Open(path)
	if err != nil {
		return c, zorros.Trace(err)
	}
	defer f.Close()
	return LoadConfig(f)
}
