package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifiedErrorMessage(t *testing.T) {
	cause := stderrors.New("no such file")
	err := MissingArtifactError("required template not found").
		WithContext("path", "templates/dl.sh.tmpl").
		WithCause(cause).
		Build()

	require.Equal(t, "required template not found (path=templates/dl.sh.tmpl): no such file", err.Error())
	require.Equal(t, CategoryMissingArtifact, err.Category())
	require.Equal(t, SeverityFatal, err.Severity())
	require.ErrorIs(t, err, cause)
	require.True(t, err.IsFatal())
}

func TestAsClassifiedThroughWrapping(t *testing.T) {
	inner := ConfigError("owner could not be determined").Build()
	wrapped := fmt.Errorf("resolve configuration: %w", inner)

	got, ok := AsClassified(wrapped)
	require.True(t, ok)
	require.Same(t, inner, got)
	require.True(t, HasCategory(wrapped, CategoryConfig))
	require.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
}

func TestIsMatchesCategoryAndMessage(t *testing.T) {
	a := ConfigError("repo missing").WithContext("source", "flag").Build()
	b := ConfigError("repo missing").Build()
	require.ErrorIs(t, a, b)
	require.NotErrorIs(t, a, ConfigError("owner missing").Build())
}

func TestWarningsAreNotFatal(t *testing.T) {
	err := DegradedError("checksum unavailable").Build()
	require.True(t, IsWarning(err))
	require.False(t, err.IsFatal())
	require.False(t, IsWarning(stderrors.New("x")))
}

func TestErrorContextMerge(t *testing.T) {
	base := ErrorContext{"a": 1, "b": 2}
	merged := base.Merge(ErrorContext{"b": 3})
	require.Equal(t, ErrorContext{"a": 1, "b": 3}, merged)
	require.Equal(t, 2, base["b"])

	s, ok := ErrorContext{"k": "v"}.GetString("k")
	require.True(t, ok)
	require.Equal(t, "v", s)
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "config error", err: ConfigError("owner unresolved").Build(), expected: 1},
		{name: "missing artifact", err: MissingArtifactError("template absent").Build(), expected: 1},
		{name: "degraded warning", err: DegradedError("checksum").Build(), expected: 0},
		{name: "external tool warning", err: ExternalToolError("uv sync failed").Build(), expected: 0},
		{name: "unclassified error", err: stderrors.New("boom"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var stderr bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.Default()).WithStderr(&stderr)

	code := adapter.Report(ConfigError("could not determine GitHub owner").Build())
	require.Equal(t, 1, code)
	require.Equal(t, "pagestrap: could not determine GitHub owner\n", stderr.String())

	stderr.Reset()
	require.Equal(t, 0, adapter.Report(nil))
	require.Empty(t, stderr.String())
}

func TestCLIErrorAdapter_VerboseIncludesCategory(t *testing.T) {
	var stderr bytes.Buffer
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(true, logger).WithStderr(&stderr)

	adapter.Report(MissingArtifactError("template absent").Build())
	require.Contains(t, stderr.String(), "[missing_artifact]")
	require.Contains(t, logs.String(), "category=missing_artifact")
}
