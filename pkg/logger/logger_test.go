package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DEBUG},
		{"DEBUG", DEBUG},
		{"error", ERROR},
		{"info", INFO},
		{"", INFO},
		{"verbose", INFO},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	l.Debugf("hidden %d", 1)
	l.Printf("shown %d", 2)
	l.Errorf("failed %d", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden 1")
	assert.Contains(t, out, "INFO: ")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "ERROR: ")
	assert.Contains(t, out, "failed 3")
	assert.Contains(t, out, "logger_test.go", "caller file should be reported, not logger.go")
}

func TestLoggerErrorLevelSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "error")

	l.Println("info line")
	l.Error("error line")

	assert.NotContains(t, buf.String(), "info line")
	assert.Contains(t, buf.String(), "error line")
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "omnicasa.log")

	l, closer := NewFileLogger(path, "info", DefaultRotation)
	l.Printf("http://example.test/GetGoalListJson?json=%s", `{"LanguageId":1}`)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `GetGoalListJson?json={"LanguageId":1}`)
	assert.NotContains(t, string(data), "\x1b[", "file output must not carry color codes")
}
