package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// config mirrors the optional YAML configuration file. Command line flags
// and arguments take precedence over it.
type config struct {
	// Grammar is the default symbol definition file, used when the command
	// gets no grammar argument.
	Grammar string `yaml:"grammar"`

	// LogLevel is the minimum log level name, as for the --log-level flag.
	LogLevel string `yaml:"log-level"`
}

// loadConfig reads and parses a configuration file. An empty path yields an
// empty configuration.
func loadConfig(path string) (*config, error) {
	cfg := &config{}
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading configuration")
	}
	if err = yaml.UnmarshalStrict(raw, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing configuration file %s", path)
	}
	return cfg, nil
}
