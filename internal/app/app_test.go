package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "hello", cfg: Config{Program: "hello"}},
		{name: "sum with args", cfg: Config{Program: "sum", Args: "[1, 2]"}},
		{name: "missing program", cfg: Config{}, wantErr: "Program is a required"},
		{name: "unknown program", cfg: Config{Program: "fib"}, wantErr: `unknown program "fib"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cfg, *cfg)
		})
	}
}

func TestProgramNames(t *testing.T) {
	assert.Equal(t, []string{"hello", "sum"}, ProgramNames())
	assert.NotEmpty(t, ProgramDescription("hello"))
}

func TestRun_Hello(t *testing.T) {
	// --- Arrange ---
	a, out, logs := SetupAppTest(t, &Config{Program: "hello"})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "5\nHello World\n", out.String())
	assert.Contains(t, logs.String(), "Running compiled program.")
	assert.NotContains(t, logs.String(), "Unconsumed stack values")
}

func TestRun_SumTakesArgs(t *testing.T) {
	a, out, _ := SetupAppTest(t, &Config{Program: "sum", Args: "[40, 2]"})

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, "42\n", out.String())
}

func TestRun_SumRejectsMissingArgs(t *testing.T) {
	a, out, _ := SetupAppTest(t, &Config{Program: "sum"})

	err := a.Run(context.Background())
	require.ErrorIs(t, err, ErrArgs)
	assert.Contains(t, err.Error(), "program takes 2 inputs, got 0")
	assert.Empty(t, out.String())
}

func TestRun_Dump(t *testing.T) {
	a, out, _ := SetupAppTest(t, &Config{Program: "sum", Args: "[1, 1]", Dump: true})

	require.NoError(t, a.Run(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "2", lines[len(lines)-1])
	dump := strings.Join(lines[:len(lines)-1], "\n")
	assert.Contains(t, dump, "add(i0, i1)")
	assert.Contains(t, dump, "print(")
}

func TestRun_UnknownProgram(t *testing.T) {
	a, _, _ := SetupAppTest(t, &Config{Program: "nope"})

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown program "nope"`)
}

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name      string
		level     string
		format    string
		debugSeen bool
		contains  string
	}{
		{name: "text at debug", level: "debug", format: "text", debugSeen: true, contains: "level=DEBUG"},
		{name: "json at debug", level: "DEBUG", format: "json", debugSeen: true, contains: `"level":"DEBUG"`},
		{name: "info hides debug", level: "info", format: "text"},
		{name: "unknown level is info", level: "loud", format: "text"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := &SafeBuffer{}
			logger := newLogger(tc.level, tc.format, buf)
			logger.Debug("probe")

			if !tc.debugSeen {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tc.contains)
			assert.Contains(t, buf.String(), "probe")
		})
	}
}
