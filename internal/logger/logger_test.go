package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"Warn", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{"FATAL", zerolog.FatalLevel},
		{"PANIC", zerolog.PanicLevel},
		{"DISABLED", zerolog.Disabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	_, err := ParseLevel("LOUD")
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	InitLogger("INFO", "layoutreport-test", &buf)
	Debug("hidden")
	Info("report built")
	Error("render failed", errors.New("boom"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "report built")
	assert.Contains(t, out, "layoutreport-test")
	assert.Contains(t, out, "boom")
}

func TestInitLoggerPanicsOnUnknownLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	assert.Panics(t, func() { InitLogger("LOUD", "x", &buf) })
}
