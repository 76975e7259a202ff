package logger

import (
	"path/filepath"
	"testing"
	"time"

	"imgproc/core/history"
	"imgproc/core/imageops"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestOperationLogSeverity(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	oplog := NewOperationLog(zap.New(core), nil)

	oplog.Record(imageops.Event{Severity: imageops.SeverityInfo, Message: "image converted: /a_bw.png"})
	oplog.Record(imageops.Event{Severity: imageops.SeverityError, Message: "move: destination directory does not exist: /nope"})

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "image converted: /a_bw.png", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.NoError(t, oplog.Close())
}

func TestOperationLogForwardsToHistory(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"), zap.NewNop())
	require.NoError(t, err)
	recorder, err := history.NewRecorder(store, 8, zap.NewNop())
	require.NoError(t, err)

	oplog := NewOperationLog(zap.NewNop(), recorder)
	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	oplog.Record(imageops.Event{
		Time:        when,
		Severity:    imageops.SeverityInfo,
		Operation:   imageops.OpMove,
		Source:      "/a.png",
		Destination: "/dst/a.png",
		Message:     "file moved: /a.png -> /dst/a.png",
	})
	oplog.Record(imageops.Event{
		Severity:  imageops.SeverityError,
		Operation: imageops.OpGrayscale,
		Source:    "/b.gif",
		Kind:      imageops.KindUnsupportedFormat,
		Message:   "grayscale: unsupported file format .gif: /b.gif",
	})
	recorder.Flush()

	records, err := store.Recent(0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "grayscale", records[0].Operation)
	assert.False(t, records[0].Succeeded)
	assert.Equal(t, string(imageops.KindUnsupportedFormat), records[0].Kind)
	assert.Equal(t, "move", records[1].Operation)
	assert.True(t, records[1].Succeeded)
	assert.Equal(t, "/dst/a.png", records[1].Destination)
	assert.True(t, records[1].Time.Equal(when))

	require.NoError(t, oplog.Close())
}

// 日志后端出错不影响调用方
func TestOperationLogSwallowsPanics(t *testing.T) {
	oplog := NewOperationLog(zap.New(panicCore{}), nil)
	assert.NotPanics(t, func() {
		oplog.Record(imageops.Event{Severity: imageops.SeverityInfo, Message: "x"})
	})
}

func TestNilLoggerIsNop(t *testing.T) {
	oplog := NewOperationLog(nil, nil)
	assert.NotPanics(t, func() {
		oplog.Record(imageops.Event{Severity: imageops.SeverityError, Message: "x"})
	})
	assert.NoError(t, oplog.Close())
}

// panicCore 写入时panic的core
type panicCore struct{}

func (panicCore) Enabled(zapcore.Level) bool { return true }

func (c panicCore) With([]zapcore.Field) zapcore.Core { return c }

func (c panicCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return ce.AddCore(e, c)
}

func (panicCore) Write(zapcore.Entry, []zapcore.Field) error { panic("sink exploded") }

func (panicCore) Sync() error { return nil }
