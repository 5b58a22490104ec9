package status

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 Reporter provides user-facing feedback about the migration run. The
// per-file notices are written verbatim to the console writer so they stay
// byte-stable when piped; summaries go through pterm for interactive runs.
// Everything is mirrored to zerolog for debugging.
type Reporter struct {
	console io.Writer
	log     zerolog.Logger
	mu      sync.Mutex
}

// New creates a Reporter writing user output to console
func New(ctx context.Context, console io.Writer) *Reporter {
	return &Reporter{
		console: console,
		log:     *zerolog.Ctx(ctx),
	}
}

// Fixing announces that a target file exists and is being rewritten
func (r *Reporter) Fixing(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.console, "Fixing %s...\n", path)
	r.log.Info().Str("path", path).Msg("rewriting file")
}

// NotFound announces that a target file is absent and was skipped
func (r *Reporter) NotFound(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.console, "File not found: %s\n", path)
	r.log.Warn().Str("path", path).Msg("target missing, skipped")
}

// WouldFix announces a dry-run finding for one file
func (r *Reporter) WouldFix(path string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if count == 0 {
		fmt.Fprintf(r.console, "%s: nothing to rewrite\n", path)
	} else {
		fmt.Fprintf(r.console, "%s: %d call site(s) would be rewritten\n", path, count)
	}
	r.log.Info().Str("path", path).Int("count", count).Msg("dry run result")
}

// RuleCount prints one rule's dry-run tally, indented under its file
func (r *Reporter) RuleCount(rule string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.console, "    %s: %d\n", rule, count)
}

// Summary prints the end-of-run totals. Kept off the console writer's
// byte-stable path on purpose.
func (r *Reporter) Summary(filesChanged, filesSeen, replacements int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := fmt.Sprintf("%d of %d file(s) rewritten, %d call site(s) converted",
		filesChanged, filesSeen, replacements)
	if filesChanged == 0 {
		pterm.Info.WithPrefix(pterm.Prefix{Text: "•"}).Println(msg)
	} else {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✓"}).Println(msg)
	}
	r.log.Info().
		Int("files_changed", filesChanged).
		Int("files_seen", filesSeen).
		Int("replacements", replacements).
		Msg("run complete")
}

// Error prints a failure in red and mirrors it to the log
func (r *Reporter) Error(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.console, color.New(color.FgRed).Sprintf("Error: %v", err))
	r.log.Error().Err(err).Msg("run failed")
}
