package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("parser", Options{Level: "warn", Format: "json", Out: &buf})
	require.NoError(t, err)

	l.Infof("hidden %d", 1)
	l.Warnf("overlap in %s", "B204")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "parser", entry["component"])
	assert.Equal(t, "overlap in B204", entry["message"])
}

func TestZerologLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("cli", Options{Format: "console", Out: &buf})
	require.NoError(t, err)
	l.Debugf("not shown")
	l.Infof("info %s", "test")
	l.Errorf("error")
	assert.Contains(t, buf.String(), "info test")
	assert.NotContains(t, buf.String(), "not shown")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("x", Options{Level: "loud"})
	assert.Error(t, err)
	_, err = New("x", Options{Format: "xml"})
	assert.Error(t, err)
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debugf("debug %d", 1)
	l.Infof("info")
	l.Warnf("warn")
	l.Errorf("error")
}
