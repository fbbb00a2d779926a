package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"DEBUG", logrus.DebugLevel},
		{"trace", logrus.TraceLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"WARNING", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"unknown", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "debug", Format: FormatText, Output: &buf})

	WithComponent(l, "format").Debug("plan ready")

	out := buf.String()
	assert.Contains(t, out, "level=debug")
	assert.Contains(t, out, "component=format")
	assert.Contains(t, out, `msg="plan ready"`)
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: FormatJSON, Output: &buf})

	l.WithField("component", "engine").Info("opened")
	l.Debug("filtered out")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "engine", gjson.Get(lines[0], "component").String())
	assert.Equal(t, "opened", gjson.Get(lines[0], "msg").String())
	assert.Equal(t, "info", gjson.Get(lines[0], "level").String())
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	assert.Equal(t, logrus.PanicLevel, l.GetLevel())
}

func TestWithComponent_NilLogger(t *testing.T) {
	l := WithComponent(nil, "x")
	require.NotNil(t, l)
	l.Info("dropped")
}
