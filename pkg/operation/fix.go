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

package operation

import (
	"bytes"
	"context"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/errmigrate/pkg/config"
	"github.com/walteh/errmigrate/pkg/rewrite"
	"github.com/walteh/errmigrate/pkg/rules"
	"github.com/walteh/errmigrate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔧 FixOperation rewrites one target file in place. The write-back reuses
// the file's mode bits but is not atomic; a failure mid-write can leave the
// file truncated, same as the tool this replaces.
type FixOperation struct {
	path     string
	rewriter *rewrite.Rewriter
	ruleset  []rules.Rule
	reporter *status.Reporter
	tracker  *Tracker
}

// NewFixOperations builds one FixOperation per expanded target, in config
// order.
func NewFixOperations(cfg *config.Config, reporter *status.Reporter, tracker *Tracker) ([]Operation, error) {
	paths, err := ExpandTargets(cfg.Targets)
	if err != nil {
		return nil, err
	}

	rewriter := rewrite.New()
	ruleset := rules.Default()
	if err := rewriter.ValidateRules(ruleset); err != nil {
		return nil, errors.Errorf("validating ruleset: %w", err)
	}

	ops := make([]Operation, 0, len(paths))
	for _, path := range paths {
		ops = append(ops, &FixOperation{
			path:     path,
			rewriter: rewriter,
			ruleset:  ruleset,
			reporter: reporter,
			tracker:  tracker,
		})
	}
	return ops, nil
}

// Path implements Operation.Path
func (op *FixOperation) Path() string {
	return op.path
}

// Execute implements Operation.Execute
func (op *FixOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(op.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			op.reporter.NotFound(op.path)
			return nil
		}
		return errors.Errorf("checking %s: %w", op.path, err)
	}

	op.reporter.Fixing(op.path)

	data, err := os.ReadFile(op.path)
	if err != nil {
		return errors.Errorf("reading %s: %w", op.path, err)
	}

	result, err := op.rewriter.Transform(ctx, bytes.NewReader(data), op.ruleset)
	if err != nil {
		return errors.Errorf("rewriting %s: %w", op.path, err)
	}

	logger.Debug().
		Str("path", op.path).
		Int("replacements", result.ReplacementCount).
		Msg("transform complete")

	// write back even when unchanged, matching the original tool's
	// unconditional write
	if err := os.WriteFile(op.path, result.ModifiedContent, info.Mode().Perm()); err != nil {
		return errors.Errorf("writing %s: %w", op.path, err)
	}

	op.tracker.Record(result)
	return nil
}
