package dispatch

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternalParamsOrder(t *testing.T) {
	e := New()
	var flags []string
	for _, p := range e.InternalParams() {
		flags = append(flags, p.Flag)
		assert.NotEmpty(t, p.Help, p.Flag)
	}
	want := []string{"--critical", "--error", "--warning", "--info", "--debug", "--help", "--longhelp"}
	if diff := cmp.Diff(want, flags); diff != "" {
		t.Errorf("internal parameters mismatch (-want +got):\n%s", diff)
	}
}

func TestInternalParamsAreCopies(t *testing.T) {
	te := newTestExecutor(t)

	params := te.InternalParams()
	for i := range params {
		params[i].Flag = "--changed"
		params[i].Handler = func(_ *Context, args []string) ([]string, error) {
			return args, nil
		}
	}

	code := te.Execute([]string{"greet", "--help", "--", "5", "x"}, false)
	require.Equal(t, -1, code)
	require.Zero(t, te.calls)
	assert.Equal(t, "--help", te.InternalParams()[5].Flag)
}

func TestParseInternalLevels(t *testing.T) {
	tests := []struct {
		args []string
		want logrus.Level
	}{
		{nil, logrus.InfoLevel},
		{[]string{"--critical"}, logrus.FatalLevel},
		{[]string{"--error"}, logrus.ErrorLevel},
		{[]string{"--warning"}, logrus.WarnLevel},
		{[]string{"--info"}, logrus.InfoLevel},
		{[]string{"--debug"}, logrus.DebugLevel},
		{[]string{"--debug", "--error"}, logrus.ErrorLevel},
	}
	for _, tt := range tests {
		te := newTestExecutor(t)
		te.Logger.SetLevel(logrus.PanicLevel)

		require.NoError(t, te.ParseInternal("greet", tt.args), "args %q", tt.args)
		assert.Equal(t, tt.want, te.Logger.GetLevel(), "args %q", tt.args)
	}
}

func TestParseInternalDefaultLevel(t *testing.T) {
	te := newTestExecutor(t)
	te.DefaultLevel = logrus.WarnLevel

	require.NoError(t, te.ParseInternal("greet", nil))
	require.Equal(t, logrus.WarnLevel, te.Logger.GetLevel())
}

func TestParseInternalUnknown(t *testing.T) {
	tests := [][]string{
		{"--bogus"},
		{"greet"},
		{"--debug", "stray"},
		{"--info", "--nope", "--debug"},
	}
	for _, args := range tests {
		te := newTestExecutor(t)
		te.Logger.SetLevel(logrus.WarnLevel)

		err := te.ParseInternal("greet", args)
		var unknown *UnknownParamError
		require.ErrorAs(t, err, &unknown, "args %q", args)
		require.NotEmpty(t, unknown.Params)
		assert.Equal(t, logrus.WarnLevel, te.Logger.GetLevel())
	}
}

func TestParseInternalHelp(t *testing.T) {
	t.Run("named command", func(t *testing.T) {
		te := newTestExecutor(t)
		err := te.ParseInternal("echo", []string{"--help", "greet"})
		require.ErrorIs(t, err, ErrAbort)
		assert.Contains(t, te.out.String(), greetUsage)
		assert.NotContains(t, te.out.String(), "echo(raw)")
	})

	t.Run("current command", func(t *testing.T) {
		te := newTestExecutor(t)
		te.Logger.SetLevel(logrus.WarnLevel)
		err := te.ParseInternal("greet", []string{"--help", "--debug"})
		require.ErrorIs(t, err, ErrAbort)
		assert.Contains(t, te.out.String(), greetUsage)
		assert.Contains(t, te.out.String(), "Print text count times.")
		// Nothing after --help is processed.
		assert.Equal(t, logrus.WarnLevel, te.Logger.GetLevel())
	})

	t.Run("unknown current command", func(t *testing.T) {
		te := newTestExecutor(t)
		err := te.ParseInternal("nosuch", []string{"--help"})
		require.ErrorIs(t, err, ErrAbort)
		assert.Contains(t, te.log.String(), "unknown command: nosuch")
		assert.Contains(t, te.out.String(), "Available commands:")
		assert.Contains(t, te.out.String(), greetUsage)
		assert.Contains(t, te.out.String(), "echo(raw)")
	})

	t.Run("unknown named command", func(t *testing.T) {
		te := newTestExecutor(t)
		err := te.ParseInternal("greet", []string{"--help", "nosuch"})
		require.ErrorIs(t, err, ErrAbort)
		assert.Contains(t, te.out.String(), "unknown command: nosuch")
	})
}

func TestParseInternalLongHelp(t *testing.T) {
	te := newTestExecutor(t)

	err := te.ParseInternal("whatever", []string{"--longhelp"})
	require.ErrorIs(t, err, ErrAbort)

	out := te.out.String()
	assert.Contains(t, out, "Expected parameters:")
	assert.Contains(t, out, "Returns count.")
	assert.Contains(t, out, "echo(raw)")
	assert.Less(t, strings.Index(out, greetUsage), strings.Index(out, "echo(raw)"))
}

func TestExecuteLongHelp(t *testing.T) {
	te := newTestExecutor(t)
	require.Equal(t, -1, te.Execute([]string{"greet", "--debug", "--longhelp", "--", "1", "x"}, false))
	require.Zero(t, te.calls)
	// The level is only applied when parsing completes.
	require.Equal(t, logrus.InfoLevel, te.Logger.GetLevel())
}
