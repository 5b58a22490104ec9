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
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/errmigrate/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a single per-file unit of work
type Operation interface {
	// Path returns the target file this operation covers
	Path() string

	// Execute runs the operation. A missing target is not an error; real
	// I/O failures are.
	Execute(ctx context.Context) error
}

// 📊 Tracker accumulates per-file results across a run. Safe for
// concurrent use so async runs can share one.
type Tracker struct {
	mu           sync.Mutex
	filesSeen    int
	filesChanged int
	replacements int
}

// Record adds one processed file's result to the totals
func (t *Tracker) Record(res *rewrite.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filesSeen++
	if res.WasModified {
		t.filesChanged++
	}
	t.replacements += res.ReplacementCount
}

// Totals returns the accumulated counts
func (t *Tracker) Totals() (seen, changed, replacements int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filesSeen, t.filesChanged, t.replacements
}

// ExpandTargets resolves glob targets against the working directory. Literal
// paths pass through untouched whether or not they exist; the existence
// check happens later so the skip notice is still printed for them. A glob
// matching nothing simply contributes no paths.
func ExpandTargets(targets []string) ([]string, error) {
	var paths []string
	for _, target := range targets {
		if !strings.ContainsAny(target, "*?[{") {
			paths = append(paths, target)
			continue
		}
		matches, err := doublestar.FilepathGlob(target)
		if err != nil {
			return nil, errors.Errorf("expanding glob %q: %w", target, err)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
