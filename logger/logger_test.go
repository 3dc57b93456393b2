package logger

import (
	"bytes"
	"encoding/json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"DEBUG":   zerolog.DebugLevel,
		"debug":   zerolog.DebugLevel,
		"WARN":    zerolog.WarnLevel,
		"ERROR":   zerolog.ErrorLevel,
		"FATAL":   zerolog.FatalLevel,
		"PANIC":   zerolog.PanicLevel,
		"INFO":    zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for name, expected := range cases {
		require.Equal(t, expected, ParseLevel(name), name)
	}
}

func TestNewLoggerWithWriter(t *testing.T) {
	t.Setenv(levelEnvVariable, LOG_LEVEL_WARN)
	var buf bytes.Buffer
	l := NewLoggerWithWriter("Test", &buf)

	l.Info().Msg("hidden")
	require.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "Test", record["component"])
	require.Equal(t, "shown", record["message"])
}

func TestLogSupervisor(t *testing.T) {
	var out, logs bytes.Buffer
	s := logSupervisor{out: &out, logger: zerolog.New(&logs)}

	s.handleLine([]byte(`{"level_name":"info","message":"ok"}`))
	s.handleLine([]byte(""))
	s.handleLine([]byte("plain text"))
	require.Equal(t, "{\"level_name\":\"info\",\"message\":\"ok\"}\n", out.String())
	require.Contains(t, logs.String(), "not JSON formatted")

	s.handleLine([]byte("panic: runtime error"))
	s.handleLine([]byte(`{"after":"panic"}`))
	require.True(t, s.foundPanic)
	require.Equal(t, 2, strings.Count(s.panicLogs.String(), "\n"))

	require.Equal(t, 2, s.handleExit(2))
	require.Contains(t, logs.String(), "runtime error")
	require.Equal(t, 0, s.handleExit(0))
}
