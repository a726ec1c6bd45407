package conf

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

type Conf struct {
	Target  Target  `yaml:"target"`
	Request Request `yaml:"request"`
	Read    Read    `yaml:"read"`
	Output  Output  `yaml:"output"`
	Record  Record  `yaml:"record"`
	Log     Log     `yaml:"log"`
	Debug   Debug   `yaml:"debug"`
	Serve   Serve   `yaml:"serve"`
}

// Default returns a configuration equal to running with no config file:
// probe 127.0.0.1:8080 with GET /doThing.
func Default() *Conf {
	c := &Conf{}
	if err := c.Finalize(); err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return c
}

func LoadFromFile(path string) (*Conf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte) (*Conf, error) {
	c := &Conf{}
	if err := yaml.UnmarshalWithOptions(data, c, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Finalize(); err != nil {
		return nil, err
	}
	return c, nil
}

// Finalize fills defaults and validates every section. Call it again after
// overriding fields from command-line flags.
func (c *Conf) Finalize() error {
	c.setDefaults()
	return c.validate()
}

func (c *Conf) setDefaults() {
	c.Target.setDefaults()
	c.Request.setDefaults()
	c.Read.setDefaults()
	c.Output.setDefaults()
	c.Record.setDefaults()
	c.Log.setDefaults()
	c.Debug.setDefaults()
	c.Serve.setDefaults()
}

func (c *Conf) validate() error {
	var errs []error
	errs = append(errs, c.Target.validate()...)
	errs = append(errs, c.Request.validate()...)
	errs = append(errs, c.Read.validate()...)
	errs = append(errs, c.Output.validate()...)
	errs = append(errs, c.Record.validate()...)
	errs = append(errs, c.Log.validate()...)
	errs = append(errs, c.Debug.validate()...)
	errs = append(errs, c.Serve.validate()...)
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
}
