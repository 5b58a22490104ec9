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

package rewrite

import (
	"context"
	"io"

	"github.com/walteh/errmigrate/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// Result contains the outcome of applying a ruleset to one piece of content
type Result struct {
	// WasModified indicates if any rewrites were made
	WasModified bool

	// ReplacementCount is the total number of rewrites across all rules
	ReplacementCount int

	// RuleCounts maps rule name to the number of rewrites it made
	RuleCounts map[string]int

	// OriginalContent is the content before rewriting
	OriginalContent []byte

	// ModifiedContent is the content after rewriting
	ModifiedContent []byte
}

// Rewriter applies an ordered ruleset to in-memory text. It performs no file
// I/O; the same input and ruleset always produce the same output.
type Rewriter struct{}

// New creates a new Rewriter
func New() *Rewriter {
	return &Rewriter{}
}

// Transform reads all content and applies each rule in order. A rule that
// matches nothing leaves the text untouched; this is a valid, silent outcome,
// not an error.
func (r *Rewriter) Transform(ctx context.Context, content io.Reader, ruleset []rules.Rule) (*Result, error) {
	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &Result{
		OriginalContent: original,
		ModifiedContent: original,
		RuleCounts:      make(map[string]int, len(ruleset)),
	}

	current := string(original)
	for _, rule := range ruleset {
		next, count := rule.Apply(current)
		if count > 0 {
			result.WasModified = true
			result.ReplacementCount += count
			result.RuleCounts[rule.Name] += count
		}
		current = next
	}

	result.ModifiedContent = []byte(current)
	return result, nil
}

// Count reports, per rule, how many old-form occurrences the content holds
// without rewriting anything. Used by dry runs.
func (r *Rewriter) Count(ctx context.Context, content io.Reader, ruleset []rules.Rule) (*Result, error) {
	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &Result{
		OriginalContent: original,
		ModifiedContent: original,
		RuleCounts:      make(map[string]int, len(ruleset)),
	}

	text := string(original)
	for _, rule := range ruleset {
		if count := rule.Matches(text); count > 0 {
			result.WasModified = true
			result.ReplacementCount += count
			result.RuleCounts[rule.Name] += count
		}
	}

	return result, nil
}

// ValidateRules checks that all rules are usable
func (r *Rewriter) ValidateRules(ruleset []rules.Rule) error {
	for i, rule := range ruleset {
		if rule.Name == "" {
			return errors.Errorf("rule %d: name is required", i)
		}
		if rule.Pattern == nil {
			return errors.Errorf("rule %d (%s): pattern is required", i, rule.Name)
		}
	}
	return nil
}
