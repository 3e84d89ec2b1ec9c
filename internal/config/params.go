package config

import (
	"fmt"
	"os"

	"git.lost.host/meutraa/stamina/internal/rate"
	"gopkg.in/yaml.v3"
)

// LoadParams reads step parameters from a yaml file. Keys that are
// missing keep their default values.
func LoadParams(path string) (rate.StepParams, error) {
	p := rate.DefaultStepParams()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if nil != err {
		return p, fmt.Errorf("unable to read params: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); nil != err {
		return p, fmt.Errorf("unable to parse params %v: %w", path, err)
	}
	if err := p.Validate(); nil != err {
		return p, fmt.Errorf("invalid params in %v: %w", path, err)
	}
	return p, nil
}

func SaveParams(path string, p rate.StepParams) error {
	data, err := yaml.Marshal(&p)
	if nil != err {
		return fmt.Errorf("unable to marshal params: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); nil != err {
		return fmt.Errorf("unable to write params: %w", err)
	}
	return nil
}

// Options builds search options from the command line.
func Options() rate.Options {
	o := rate.DefaultOptions()
	o.Window = *Window
	o.Beam = *Beam
	return o
}
