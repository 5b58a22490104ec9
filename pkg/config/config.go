// Copyright 2025 walteh LLC
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

package config

import (
	"github.com/walteh/errmigrate/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// 📚 Config represents the complete migration configuration
type Config struct {
	// Targets are the files to rewrite, in order. Entries may contain glob
	// metacharacters; they are expanded before processing.
	Targets []string `json:"targets" yaml:"targets" hcl:"targets,optional"`

	// DryRun reports what would change without writing anything
	DryRun bool `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`

	// Async processes files concurrently. Each file's read-rewrite-write
	// cycle is self-contained, so ordering of the per-file notices is the
	// only observable difference.
	Async bool `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`

	location string // path the config was loaded from, empty for Default
}

// Default returns the embedded configuration the tool ships with: the four
// original target files, sequential, writing in place. A bare invocation
// with no config file uses exactly this.
func Default() *Config {
	return &Config{
		Targets: rules.DefaultTargets(),
	}
}

// Location returns the path the config was loaded from, or "" for the
// embedded default.
func (c *Config) Location() string {
	return c.location
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return errors.New("at least one target is required")
	}
	seen := make(map[string]bool, len(c.Targets))
	for i, target := range c.Targets {
		if target == "" {
			return errors.Errorf("target %d: path is empty", i)
		}
		if seen[target] {
			return errors.Errorf("target %d: duplicate path %q", i, target)
		}
		seen[target] = true
	}
	return nil
}
