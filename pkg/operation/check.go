package operation

import (
	"bytes"
	"context"
	"io/fs"
	"os"

	"github.com/walteh/errmigrate/pkg/config"
	"github.com/walteh/errmigrate/pkg/rewrite"
	"github.com/walteh/errmigrate/pkg/rules"
	"github.com/walteh/errmigrate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔍 CheckOperation is the dry-run counterpart of FixOperation: it counts
// old-form call sites in one target without touching the file.
type CheckOperation struct {
	path     string
	rewriter *rewrite.Rewriter
	ruleset  []rules.Rule
	reporter *status.Reporter
	tracker  *Tracker
}

// NewCheckOperations builds one CheckOperation per expanded target
func NewCheckOperations(cfg *config.Config, reporter *status.Reporter, tracker *Tracker) ([]Operation, error) {
	paths, err := ExpandTargets(cfg.Targets)
	if err != nil {
		return nil, err
	}

	rewriter := rewrite.New()
	ruleset := rules.Default()

	ops := make([]Operation, 0, len(paths))
	for _, path := range paths {
		ops = append(ops, &CheckOperation{
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
func (op *CheckOperation) Path() string {
	return op.path
}

// Execute implements Operation.Execute
func (op *CheckOperation) Execute(ctx context.Context) error {
	if _, err := os.Stat(op.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			op.reporter.NotFound(op.path)
			return nil
		}
		return errors.Errorf("checking %s: %w", op.path, err)
	}

	data, err := os.ReadFile(op.path)
	if err != nil {
		return errors.Errorf("reading %s: %w", op.path, err)
	}

	result, err := op.rewriter.Count(ctx, bytes.NewReader(data), op.ruleset)
	if err != nil {
		return errors.Errorf("scanning %s: %w", op.path, err)
	}

	op.reporter.WouldFix(op.path, result.ReplacementCount)
	// report per rule in ruleset order, not map order
	for _, rule := range op.ruleset {
		if count := result.RuleCounts[rule.Name]; count > 0 {
			op.reporter.RuleCount(rule.Name, count)
		}
	}

	op.tracker.Record(result)
	return nil
}
