package main

import (
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/graphsearch/models"
	"github.com/aukilabs/graphsearch/spatial"
	"gopkg.in/yaml.v3"
)

const (
	errTypeConfig = "config_error"
)

// graphConfig is the graph layout read from the YAML config file.
type graphConfig struct {
	Name           string         `yaml:"name"`
	Universe       spatial.Rect   `yaml:"universe"`
	Index          spatial.Config `yaml:"index"`
	EdgeThickness  float64        `yaml:"edge_thickness"`
	SelectionRange float64        `yaml:"selection_range"`
}

func defaultGraphConfig() graphConfig {
	return graphConfig{
		Name:           "graphsearch",
		Universe:       spatial.NewRect(0, 0, 800, 800),
		Index:          spatial.DefaultConfig(),
		EdgeThickness:  models.DefaultEdgeThickness,
		SelectionRange: 5,
	}
}

// loadGraphConfig reads the YAML file at path over the defaults. An empty
// path returns the defaults.
func loadGraphConfig(path string) (graphConfig, error) {
	conf := defaultGraphConfig()
	if path == "" {
		return conf, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return conf, errors.New("reading config file failed").
			WithType(errTypeConfig).
			WithTag("file_name", path).
			Wrap(err)
	}

	if err := yaml.Unmarshal(b, &conf); err != nil {
		return conf, errors.New("parsing config file failed").
			WithType(errTypeConfig).
			WithTag("file_name", path).
			Wrap(err)
	}

	if err := validateGraphConfig(conf); err != nil {
		return conf, errors.New("invalid config file").
			WithType(errors.Type(err)).
			WithTag("file_name", path).
			Wrap(err)
	}
	return conf, nil
}

func validateGraphConfig(conf graphConfig) error {
	if conf.Universe.Width() <= 0 || conf.Universe.Height() <= 0 {
		return errors.New("universe must have a positive area").
			WithType(errTypeConfig).
			WithTag("universe", conf.Universe)
	}

	if conf.EdgeThickness < 0 {
		return errors.New("edge thickness must not be negative").
			WithType(errTypeConfig).
			WithTag("edge_thickness", conf.EdgeThickness)
	}

	if conf.SelectionRange < 0 {
		return errors.New("selection range must not be negative").
			WithType(errTypeConfig).
			WithTag("selection_range", conf.SelectionRange)
	}

	return conf.Index.Validate()
}

func validateConfig(conf config) error {
	if conf.Input == "" && conf.AdminAddr == "" {
		return errors.New("have to specify an input file or an admin address").
			WithType(errTypeConfig)
	}

	if conf.Output != "" && conf.Output == conf.Input {
		return errors.New("output file must differ from the input file").
			WithType(errTypeConfig).
			WithTag("file_name", conf.Output)
	}

	return nil
}
