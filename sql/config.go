// Copyright 2020-2021 Dolthub, Inc.
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

package sql

import (
	"os"

	yaml "gopkg.in/yaml.v2"
)

// EngineConfig is the engine's ambient configuration (§1.3 of
// SPEC_FULL.md): a default fixpoint bound and whether the physical
// planner's partial-aggregation strategy is enabled.
type EngineConfig struct {
	// DefaultMaxIterations is loaded and defaulted here, but the rule
	// executor does not read it: a FixedPoint batch that declares no
	// MaxIter of its own runs a single pass.
	DefaultMaxIterations int `yaml:"defaultMaxIterations"`
	// EnablePartialAggregation toggles the two-level partial aggregation
	// physical strategy (§4.7 strategy 5); when false every Aggregate
	// plans as a single all-tuples-clustered aggregate.
	EnablePartialAggregation bool `yaml:"enablePartialAggregation"`
}

// DefaultEngineConfig returns the hard-coded defaults used when no config
// file is supplied.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		DefaultMaxIterations:     100,
		EnablePartialAggregation: true,
	}
}

// LoadEngineConfig reads a YAML-encoded EngineConfig from path, starting
// from the defaults so a partial file only overrides what it sets.
func LoadEngineConfig(path string) (*EngineConfig, error) {
	cfg := DefaultEngineConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
