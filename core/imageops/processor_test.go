package imageops

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// eventSink 收集操作事件
type eventSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *eventSink) Record(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *eventSink) all() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func newTestProcessor(t *testing.T) (*Processor, *eventSink) {
	t.Helper()
	sink := &eventSink{}
	opts := DefaultOptions()
	opts.CheckDiskSpace = false
	return NewProcessor(opts, sink, zap.NewNop()), sink
}

func TestProcessorSupportedFormats(t *testing.T) {
	p, _ := newTestProcessor(t)
	assert.Equal(t, []string{".bmp", ".jpeg", ".jpg", ".png"}, p.SupportedFormats())

	custom := NewProcessor(Options{Formats: []string{"PNG"}}, nil, nil)
	assert.Equal(t, []string{".png"}, custom.SupportedFormats())
}

func TestConvertToBlackWhiteSuccess(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	writeTestImage(t, src)
	p, sink := newTestProcessor(t)

	outcome := p.ConvertToBlackWhite(src)
	ok, resultPath, message := outcome.Tuple()
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "photo_bw.png"), resultPath)
	assert.Equal(t, "image converted successfully", message)
	assert.Equal(t, KindNone, outcome.Kind())
	assert.NoError(t, outcome.Err())

	events := sink.all()
	require.Len(t, events, 1)
	assert.Equal(t, SeverityInfo, events[0].Severity)
	assert.Equal(t, OpGrayscale, events[0].Operation)
	assert.Equal(t, "image converted: "+resultPath, events[0].Message)
}

func TestConvertToBlackWhiteFailure(t *testing.T) {
	p, sink := newTestProcessor(t)
	missing := filepath.Join(t.TempDir(), "missing.jpg")

	outcome := p.ConvertToBlackWhite(missing)
	ok, resultPath, message := outcome.Tuple()
	assert.False(t, ok)
	assert.Empty(t, resultPath)
	assert.Contains(t, message, "file does not exist")
	assert.Equal(t, KindNotFound, outcome.Kind())

	path, present := outcome.ResultPath()
	assert.False(t, present)
	assert.Empty(t, path)

	events := sink.all()
	require.Len(t, events, 1)
	assert.Equal(t, SeverityError, events[0].Severity)
	assert.Equal(t, KindNotFound, events[0].Kind)
}

func TestMoveImageScenarios(t *testing.T) {
	srcDir := t.TempDir()
	dst := t.TempDir()
	p, sink := newTestProcessor(t)

	first := filepath.Join(srcDir, "photo.jpg")
	writeFile(t, first, "a")
	outcome := p.MoveImage(first, dst)
	require.True(t, outcome.Succeeded())
	path, _ := outcome.ResultPath()
	assert.Equal(t, filepath.Join(dst, "photo.jpg"), path)
	assert.Equal(t, "file moved successfully", outcome.Message())

	second := filepath.Join(srcDir, "photo.jpg")
	writeFile(t, second, "b")
	outcome = p.MoveImage(second, dst)
	require.True(t, outcome.Succeeded())
	path, _ = outcome.ResultPath()
	assert.Equal(t, filepath.Join(dst, "photo_1.jpg"), path)

	third := filepath.Join(srcDir, "photo.jpg")
	writeFile(t, third, "c")
	outcome = p.MoveImage(third, filepath.Join(dst, "nope"))
	assert.False(t, outcome.Succeeded())
	assert.Equal(t, KindDestinationNotFound, outcome.Kind())
	assert.FileExists(t, third)

	events := sink.all()
	require.Len(t, events, 3)
	assert.Equal(t, "file moved: "+second+" -> "+filepath.Join(dst, "photo_1.jpg"), events[1].Message)
	assert.Equal(t, SeverityError, events[2].Severity)
	assert.Equal(t, OpMove, events[2].Operation)
}

func TestProcessorRecoversFromPanic(t *testing.T) {
	p, sink := newTestProcessor(t)
	p.mover.rename = func(oldpath, newpath string) error {
		panic("boom")
	}

	src := filepath.Join(t.TempDir(), "photo.png")
	writeFile(t, src, "x")

	var outcome Outcome
	assert.NotPanics(t, func() {
		outcome = p.MoveImage(src, t.TempDir())
	})
	assert.False(t, outcome.Succeeded())
	assert.Equal(t, KindMoveIOError, outcome.Kind())
	assert.Contains(t, outcome.Message(), "internal error: boom")
	require.Len(t, sink.all(), 1)
}

func TestValidateImagePath(t *testing.T) {
	p, _ := newTestProcessor(t)
	src := filepath.Join(t.TempDir(), "photo.PNG")
	writeFile(t, src, "x")

	assert.True(t, p.ValidateImagePath(src).Valid())
	assert.Equal(t, KindNotFound, p.ValidateImagePath("").Reason)
}
