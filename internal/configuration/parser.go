// Copyright 2019 VMware, Inc. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package configuration

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// FromFile loads the configuration from a given file
func FromFile(filename string) (*Config, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to load configuration file: %v", err)
	}
	return FromYAML(contents)
}

// FromYAML loads the configuration from a blob of YAML and fills in defaults.
// The result is not validated, since command line flags may still change it.
func FromYAML(contents []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse configuration: %v", err)
	}
	cfg.SetDefaults()
	return &cfg, nil
}

// Default is the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

func (cfg *Config) SetDefaults() {
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}
	if cfg.Output == "" {
		cfg.Output = OutputJSON
	}
	if cfg.MaxRejected <= 0 {
		cfg.MaxRejected = DefaultMaxRejected
	}
	if cfg.Sink.ErrorLogPercent <= 0.0 || cfg.Sink.ErrorLogPercent > 1.0 {
		cfg.Sink.ErrorLogPercent = DefaultErrorLogPercent
	}
	if cfg.Stats.Prefix == "" {
		cfg.Stats.Prefix = DefaultStatsPrefix
	}
	if cfg.Stats.Interval <= 0 {
		cfg.Stats.Interval = DefaultStatsInterval
	}
}

// Validate checks the configuration once every override has been applied.
func (cfg *Config) Validate() error {
	switch cfg.Output {
	case OutputJSON, OutputWavefront:
	default:
		return fmt.Errorf("invalid output %q: must be %s or %s", cfg.Output, OutputJSON, OutputWavefront)
	}
	if cfg.Stats.Enabled && cfg.Output != OutputWavefront {
		return fmt.Errorf("stats reporting requires output %s", OutputWavefront)
	}
	return nil
}
