package imageops

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestNormalizePathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := GlobalPathUtils.NormalizePath("~/pics/a.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "pics", "a.png"), got)

	got, err = GlobalPathUtils.NormalizePath("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)
}

func TestNormalizePathFileURI(t *testing.T) {
	got, err := GlobalPathUtils.NormalizePath("file:///tmp/my%20photo.png")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/my photo.png", got)
}

func TestNormalizePathRelative(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := GlobalPathUtils.NormalizePath("sub/../a.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "a.jpg"), got)
}

// 终端以 GBK 传入的路径在 UTF-8 文件存在时被修复
func TestNormalizePathRepairsGBK(t *testing.T) {
	dir := t.TempDir()
	utf8Path := filepath.Join(dir, "图片.png")
	writeFile(t, utf8Path, "x")

	gbk, err := simplifiedchinese.GBK.NewEncoder().String(utf8Path)
	require.NoError(t, err)
	require.False(t, utf8.ValidString(gbk))

	got, err := GlobalPathUtils.NormalizePath(gbk)
	require.NoError(t, err)
	assert.Equal(t, utf8Path, got)
}

// 文件名本身是 GBK 字节时保持原样，仍能通过校验
func TestNormalizePathKeepsExistingNonUTF8Name(t *testing.T) {
	dir := t.TempDir()
	name, err := simplifiedchinese.GBK.NewEncoder().String("中文.png")
	require.NoError(t, err)
	require.False(t, utf8.ValidString(name))
	path := filepath.Join(dir, name)
	writeFile(t, path, "x")

	got, err := GlobalPathUtils.NormalizePath(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	validator := NewPathValidator(NewFormatSet(DefaultFormats...))
	assert.True(t, validator.Validate(got).Valid())
}

// 原路径和修复后的路径都不存在时不改写
func TestNormalizePathLeavesMissingNonUTF8Path(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caf\xe9.png")

	got, err := GlobalPathUtils.NormalizePath(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestValidatePath(t *testing.T) {
	assert.True(t, GlobalPathUtils.ValidatePath("/tmp/a.png"))
	assert.False(t, GlobalPathUtils.ValidatePath(""))
	assert.False(t, GlobalPathUtils.ValidatePath("/tmp/a\x00.png"))
	assert.False(t, GlobalPathUtils.ValidatePath("/tmp/a\n.png"))
}
