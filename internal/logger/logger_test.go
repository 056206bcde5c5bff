package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Schera-ole/jmx-telegraf/internal/config"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zapcore.InfoLevel)

	log.Debugw("hidden")
	log.Warnw("Cannot retrieve bean attribute", "bean", "java.lang:type=Memory")
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "telegraf_jmx")
	assert.Contains(t, out, "Cannot retrieve bean attribute")
	assert.Contains(t, out, `"pid": `+strconv.Itoa(os.Getpid()))
	assert.Contains(t, out, `"run_id": "`)
	assert.Contains(t, out, `"bean": "java.lang:type=Memory"`)
}

func TestNewWithWriter_RunIDPerLogger(t *testing.T) {
	var first, second bytes.Buffer
	NewWithWriter(&first, zapcore.InfoLevel).Info("a")
	NewWithWriter(&second, zapcore.InfoLevel).Info("a")

	assert.NotEqual(t, first.String()[bytes.Index(first.Bytes(), []byte("run_id")):],
		second.String()[bytes.Index(second.Bytes(), []byte("run_id")):])
}

func TestNew(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "telegraf_jmx.log")
	cfg.LogLevel = "debug"

	log, closeFn, err := New(cfg)
	require.NoError(t, err)
	log.Debug("Retrieve url from command line parameters")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Retrieve url from command line parameters")
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "loud"

	_, _, err := New(cfg)
	assert.Error(t, err)
}
