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
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes a batch of per-file operations
type Runner struct {
	logger *zerolog.Logger
	async  bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger, async bool) *Runner {
	return &Runner{
		logger: logger,
		async:  async,
	}
}

// Run executes all operations. Sequential by default, which preserves the
// notice ordering of the target list; async runs each file concurrently and
// stops at the first failure.
func (r *Runner) Run(ctx context.Context, ops []Operation) error {
	if r.async {
		return r.runAsync(ctx, ops)
	}
	return r.runSync(ctx, ops)
}

// 🔄 runSync runs operations one at a time, in order
func (r *Runner) runSync(ctx context.Context, ops []Operation) error {
	for _, op := range ops {
		if err := op.Execute(ctx); err != nil {
			return errors.Errorf("processing %s: %w", op.Path(), err)
		}
	}
	return nil
}

// ⚡ runAsync runs every operation concurrently. Files never overlap, so
// the only shared state is the tracker and reporter, which lock internally.
func (r *Runner) runAsync(ctx context.Context, ops []Operation) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, op := range ops {
		op := op
		g.Go(func() error {
			if err := op.Execute(gctx); err != nil {
				return errors.Errorf("processing %s: %w", op.Path(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.logger.Error().Err(err).Msg("async run failed")
		return err
	}
	return nil
}
