package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

var linePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} - (INFO|ERROR|WARNING|DEBUG) - (.+)$`)

func newTestConfig(t *testing.T, console *bytes.Buffer) *LoggerConfig {
	t.Helper()
	cfg := DefaultLoggerConfig()
	cfg.LogDir = t.TempDir()
	cfg.Console = console
	return cfg
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestFileLineFormat(t *testing.T) {
	console := &bytes.Buffer{}
	cfg := newTestConfig(t, console)

	log, _, err := NewLoggerWithConfig(cfg)
	require.NoError(t, err)
	log.Info("image converted: /tmp/a_bw.png")
	log.Error("grayscale: file does not exist: /tmp/missing.png")
	log.Warn("history unavailable")
	_ = log.Sync()

	lines := readLines(t, LogFilePath(cfg))
	require.Len(t, lines, 3)

	m := linePattern.FindStringSubmatch(lines[0])
	require.NotNil(t, m, "line %q", lines[0])
	assert.Equal(t, "INFO", m[1])
	assert.Equal(t, "image converted: /tmp/a_bw.png", m[2])

	m = linePattern.FindStringSubmatch(lines[1])
	require.NotNil(t, m, "line %q", lines[1])
	assert.Equal(t, "ERROR", m[1])

	m = linePattern.FindStringSubmatch(lines[2])
	require.NotNil(t, m, "line %q", lines[2])
	assert.Equal(t, "WARNING", m[1])

	// 控制台镜像同样的内容
	assert.Contains(t, console.String(), "image converted: /tmp/a_bw.png")
	assert.Contains(t, console.String(), "history unavailable")
}

func TestFileIsAppended(t *testing.T) {
	cfg := newTestConfig(t, &bytes.Buffer{})

	for _, msg := range []string{"first", "second"} {
		log, _, err := NewLoggerWithConfig(cfg)
		require.NoError(t, err)
		log.Info(msg)
		_ = log.Sync()
	}

	lines := readLines(t, LogFilePath(cfg))
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " - INFO - first"))
	assert.True(t, strings.HasSuffix(lines[1], " - INFO - second"))
}

func TestLevelFiltering(t *testing.T) {
	console := &bytes.Buffer{}
	cfg := newTestConfig(t, console)
	cfg.EnableFile = false

	log, level, err := NewLoggerWithConfig(cfg)
	require.NoError(t, err)
	log.Debug("hidden")
	assert.NotContains(t, console.String(), "hidden")

	level.SetLevel(zapcore.DebugLevel)
	log.Debug("visible")
	assert.Contains(t, console.String(), "visible")
}

func TestVerboseEnablesDebug(t *testing.T) {
	cfg := newTestConfig(t, &bytes.Buffer{})
	cfg.Verbose = true
	cfg.EnableFile = false

	_, level, err := NewLoggerWithConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level.Level())
}

func TestNoSinksGivesNop(t *testing.T) {
	cfg := DefaultLoggerConfig()
	cfg.EnableConsole = false
	cfg.EnableFile = false

	log, _, err := NewLoggerWithConfig(cfg)
	require.NoError(t, err)
	assert.NotPanics(t, func() { log.Info("dropped") })
}

func TestUnwritableLogDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	cfg := DefaultLoggerConfig()
	cfg.LogDir = file
	cfg.EnableConsole = false

	_, _, err := NewLoggerWithConfig(cfg)
	assert.Error(t, err)
}

func TestLogFilePath(t *testing.T) {
	cfg := &LoggerConfig{}
	assert.Equal(t, filepath.Join(".", "image_processor.log"), LogFilePath(cfg))

	cfg.File = "/var/log/imgproc.log"
	assert.Equal(t, "/var/log/imgproc.log", LogFilePath(cfg))

	cfg.File = "ops.log"
	cfg.LogDir = "/tmp/logs"
	assert.Equal(t, "/tmp/logs/ops.log", LogFilePath(cfg))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
}

func TestColorLevelEncoder(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	enc := &sliceEncoder{}
	colorLevelEncoder(zapcore.WarnLevel, enc)
	colorLevelEncoder(zapcore.ErrorLevel, enc)
	assert.Equal(t, []string{"WARNING", "ERROR"}, enc.values)
}

// sliceEncoder 收集编码结果
type sliceEncoder struct {
	zapcore.PrimitiveArrayEncoder
	values []string
}

func (e *sliceEncoder) AppendString(v string) {
	e.values = append(e.values, v)
}
