package operation_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/errmigrate/pkg/config"
	"github.com/walteh/errmigrate/pkg/operation"
	"github.com/walteh/errmigrate/pkg/status"
)

// 🧪 createTestEnv creates a temp tree with one legacy source file and
// returns everything a run needs
func createTestEnv(t *testing.T) (context.Context, string, *status.Reporter, *bytes.Buffer, *zerolog.Logger) {
	t.Helper()
	tmpDir := t.TempDir()

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	var console bytes.Buffer
	reporter := status.New(ctx, &console)

	return ctx, tmpDir, reporter, &console, &logger
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFixOperation_RewritesInPlace(t *testing.T) {
	ctx, tmpDir, reporter, console, logger := createTestEnv(t)

	src := writeSource(t, tmpDir, "security.rs",
		`fn check() -> Result<(), AppError> {
    Err(AppError::Internal("boom"))
}
`)

	cfg := &config.Config{Targets: []string{src}}
	tracker := &operation.Tracker{}
	ops, err := operation.NewFixOperations(cfg, reporter, tracker)
	require.NoError(t, err)
	require.Len(t, ops, 1)

	runner := operation.NewRunner(logger, false)
	require.NoError(t, runner.Run(ctx, ops))

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Contains(t, string(data), "AppError::InternalError {")
	assert.Contains(t, string(data), `message: "boom".to_string(),`)
	assert.NotContains(t, string(data), `AppError::Internal("boom")`)

	assert.Equal(t, "Fixing "+src+"...\n", console.String())

	seen, changed, replacements := tracker.Totals()
	assert.Equal(t, 1, seen)
	assert.Equal(t, 1, changed)
	assert.Equal(t, 1, replacements)
}

func TestFixOperation_SkipsMissingAndProcessesRest(t *testing.T) {
	ctx, tmpDir, reporter, console, logger := createTestEnv(t)

	existing := writeSource(t, tmpDir, "monitoring.rs", `AppError::Process("gone")`)
	missing := filepath.Join(tmpDir, "websocket.rs")

	cfg := &config.Config{Targets: []string{missing, existing}}
	tracker := &operation.Tracker{}
	ops, err := operation.NewFixOperations(cfg, reporter, tracker)
	require.NoError(t, err)

	runner := operation.NewRunner(logger, false)
	require.NoError(t, runner.Run(ctx, ops))

	assert.Equal(t,
		"File not found: "+missing+"\n"+"Fixing "+existing+"...\n",
		console.String())

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Contains(t, string(data), "AppError::ProcessError {")
	assert.Contains(t, string(data), "process_id: None,")

	seen, changed, _ := tracker.Totals()
	assert.Equal(t, 1, seen)
	assert.Equal(t, 1, changed)
}

func TestFixOperation_AllTargetsMissingIsNotAnError(t *testing.T) {
	ctx, tmpDir, reporter, console, logger := createTestEnv(t)

	cfg := &config.Config{Targets: []string{
		filepath.Join(tmpDir, "a.rs"),
		filepath.Join(tmpDir, "b.rs"),
	}}
	tracker := &operation.Tracker{}
	ops, err := operation.NewFixOperations(cfg, reporter, tracker)
	require.NoError(t, err)

	require.NoError(t, operation.NewRunner(logger, false).Run(ctx, ops))

	assert.Contains(t, console.String(), "File not found: ")
	seen, _, _ := tracker.Totals()
	assert.Zero(t, seen)
}

func TestFixOperation_SecondRunIsNoOp(t *testing.T) {
	ctx, tmpDir, reporter, _, logger := createTestEnv(t)

	src := writeSource(t, tmpDir, "file_manager.rs", `AppError::FileSystem("disk full")`)
	cfg := &config.Config{Targets: []string{src}}

	runOnce := func() (string, int) {
		tracker := &operation.Tracker{}
		ops, err := operation.NewFixOperations(cfg, reporter, tracker)
		require.NoError(t, err)
		require.NoError(t, operation.NewRunner(logger, false).Run(ctx, ops))
		data, err := os.ReadFile(src)
		require.NoError(t, err)
		_, _, replacements := tracker.Totals()
		return string(data), replacements
	}

	first, replacements := runOnce()
	assert.Equal(t, 1, replacements)

	second, replacements := runOnce()
	assert.Zero(t, replacements)
	assert.Equal(t, first, second)
}

func TestFixOperation_PreservesFileMode(t *testing.T) {
	ctx, tmpDir, reporter, _, logger := createTestEnv(t)

	src := filepath.Join(tmpDir, "security.rs")
	require.NoError(t, os.WriteFile(src, []byte(`AppError::Internal("boom")`), 0o600))

	cfg := &config.Config{Targets: []string{src}}
	tracker := &operation.Tracker{}
	ops, err := operation.NewFixOperations(cfg, reporter, tracker)
	require.NoError(t, err)
	require.NoError(t, operation.NewRunner(logger, false).Run(ctx, ops))

	info, err := os.Stat(src)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCheckOperation_DoesNotModify(t *testing.T) {
	ctx, tmpDir, reporter, console, logger := createTestEnv(t)

	content := `AppError::Validation("bad") and AppError::Validation("worse")`
	src := writeSource(t, tmpDir, "security.rs", content)

	cfg := &config.Config{Targets: []string{src}, DryRun: true}
	tracker := &operation.Tracker{}
	ops, err := operation.NewCheckOperations(cfg, reporter, tracker)
	require.NoError(t, err)
	require.NoError(t, operation.NewRunner(logger, false).Run(ctx, ops))

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	assert.Contains(t, console.String(), src+": 2 call site(s) would be rewritten\n")
	assert.Contains(t, console.String(), "    validation: 2\n")

	_, _, replacements := tracker.Totals()
	assert.Equal(t, 2, replacements)
}

func TestExpandTargets(t *testing.T) {
	tmpDir := t.TempDir()
	a := writeSource(t, tmpDir, "a.rs", "")
	b := writeSource(t, tmpDir, "b.rs", "")
	writeSource(t, tmpDir, "c.txt", "")

	t.Run("literal_paths_pass_through", func(t *testing.T) {
		missing := filepath.Join(tmpDir, "missing.rs")
		paths, err := operation.ExpandTargets([]string{a, missing})
		require.NoError(t, err)
		assert.Equal(t, []string{a, missing}, paths)
	})

	t.Run("glob_expands", func(t *testing.T) {
		paths, err := operation.ExpandTargets([]string{filepath.Join(tmpDir, "*.rs")})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{a, b}, paths)
	})

	t.Run("glob_matching_nothing_contributes_no_paths", func(t *testing.T) {
		paths, err := operation.ExpandTargets([]string{filepath.Join(tmpDir, "*.go")})
		require.NoError(t, err)
		assert.Empty(t, paths)
	})
}
