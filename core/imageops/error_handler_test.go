package imageops

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpErrorMessage(t *testing.T) {
	cause := errors.New("disk on fire")
	oe := newOpError(KindMoveIOError, "move", "/a/b.png", cause)
	assert.Equal(t, "move: file could not be moved: /a/b.png: disk on fire", oe.Error())

	oe.Detail = "custom"
	assert.Equal(t, "move: custom: /a/b.png: disk on fire", oe.Error())
}

func TestKindOfWrappedError(t *testing.T) {
	cause := fs.ErrPermission
	oe := newOpError(KindPermissionDenied, "grayscale", "x.png", cause)
	wrapped := fmt.Errorf("outer: %w", oe)

	assert.Equal(t, KindPermissionDenied, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindPermissionDenied))
	assert.False(t, IsKind(wrapped, KindCodecError))
	assert.ErrorIs(t, wrapped, fs.ErrPermission)

	assert.Equal(t, KindNone, KindOf(errors.New("plain")))
	assert.False(t, IsKind(nil, KindNone))
}

func TestClassifyIOError(t *testing.T) {
	assert.Equal(t, KindPermissionDenied, classifyIOError(&fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}, KindCodecError))
	assert.Equal(t, KindCodecError, classifyIOError(errors.New("short write"), KindCodecError))
}

func TestOutcomeAccessors(t *testing.T) {
	success := Success("/out.png", "done")
	ok, path, msg := success.Tuple()
	assert.True(t, ok)
	assert.Equal(t, "/out.png", path)
	assert.Equal(t, "done", msg)
	assert.Equal(t, KindNone, success.Kind())
	assert.Nil(t, success.Err())

	failure := Failure(newOpError(KindCodecError, "decode", "/in.png", nil))
	ok, path, msg = failure.Tuple()
	assert.False(t, ok)
	assert.Empty(t, path)
	assert.Equal(t, "decode: image could not be processed: /in.png", msg)
	assert.Equal(t, KindCodecError, failure.Kind())
	assert.Error(t, failure.Err())
}
