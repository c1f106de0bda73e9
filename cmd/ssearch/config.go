// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the command line flags. Unset keys leave the flag alone.
type fileConfig struct {
	Threshold      *float64 `yaml:"threshold"`
	Device         *string  `yaml:"device"`
	Content        *bool    `yaml:"content"`
	MaxContentSize *int     `yaml:"max_content_size"`
	MaxResults     *int     `yaml:"max_results"`
	Recursive      *bool    `yaml:"recursive"`
	Backend        *string  `yaml:"backend"`
	Host           *string  `yaml:"host"`
	Model          *string  `yaml:"model"`
	APIKey         *string  `yaml:"api_key"`
	Dimensions     *int     `yaml:"dimensions"`
	MaxRetries     *int     `yaml:"max_retries"`
	RetryDelay     *string  `yaml:"retry_delay"`
	Workers        *int     `yaml:"workers"`
	Progress       *bool    `yaml:"progress"`
	LogLevel       *string  `yaml:"log_level"`
}

// defaultConfigPath returns $XDG_CONFIG_HOME/ssearch/config.yaml, or the
// platform equivalent.
func defaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "ssearch", "config.yaml")
}

// loadFileConfig reads a YAML config file. ${VAR} references are expanded
// from the environment before parsing.
func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &fc, nil
}

// pairs lists the flag name and string value of every key present in the file.
func (fc *fileConfig) pairs() [][2]string {
	var out [][2]string
	add := func(name string, value string) {
		out = append(out, [2]string{name, value})
	}

	if fc.Threshold != nil {
		add("threshold", strconv.FormatFloat(*fc.Threshold, 'g', -1, 64))
	}
	if fc.Device != nil {
		add("device", *fc.Device)
	}
	if fc.Content != nil {
		add("content", strconv.FormatBool(*fc.Content))
	}
	if fc.MaxContentSize != nil {
		add("max-content-size", strconv.Itoa(*fc.MaxContentSize))
	}
	if fc.MaxResults != nil {
		add("max-results", strconv.Itoa(*fc.MaxResults))
	}
	if fc.Recursive != nil {
		add("recursive", strconv.FormatBool(*fc.Recursive))
	}
	if fc.Backend != nil {
		add("backend", *fc.Backend)
	}
	if fc.Host != nil {
		add("host", *fc.Host)
	}
	if fc.Model != nil {
		add("model", *fc.Model)
	}
	if fc.APIKey != nil {
		add("api-key", *fc.APIKey)
	}
	if fc.Dimensions != nil {
		add("dimensions", strconv.Itoa(*fc.Dimensions))
	}
	if fc.MaxRetries != nil {
		add("max-retries", strconv.Itoa(*fc.MaxRetries))
	}
	if fc.RetryDelay != nil {
		add("retry-delay", *fc.RetryDelay)
	}
	if fc.Workers != nil {
		add("workers", strconv.Itoa(*fc.Workers))
	}
	if fc.Progress != nil {
		add("progress", strconv.FormatBool(*fc.Progress))
	}
	if fc.LogLevel != nil {
		add("log-level", *fc.LogLevel)
	}
	return out
}

// applyConfigFile fills flags that were not given on the command line or
// through the environment from the config file. An explicit --config must
// exist; the default location is optional.
func applyConfigFile(c *cli.Context) error {
	path := c.String("config")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return nil
		}
	}

	fc, err := loadFileConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &configError{err: err}
	}

	for _, kv := range fc.pairs() {
		if c.IsSet(kv[0]) {
			continue
		}
		if err := c.Set(kv[0], kv[1]); err != nil {
			return &configError{err: fmt.Errorf("config %s: %s: %w", path, kv[0], err)}
		}
	}
	return nil
}
