package ui

import (
	"io"
	"os"
	"strconv"
	"strings"

	"imgproc/core/history"
	"imgproc/core/imageops"
	"imgproc/internal/i18n"

	"github.com/pterm/pterm"
)

// Display 终端输出
type Display struct {
	out io.Writer
}

// NewDisplay 创建输出器，out为nil时使用标准输出
func NewDisplay(out io.Writer) *Display {
	if out == nil {
		out = os.Stdout
	}
	return &Display{out: out}
}

// Writer 返回底层输出
func (d *Display) Writer() io.Writer {
	return d.out
}

// Success 成功提示
func (d *Display) Success(msg string) {
	pterm.Success.WithWriter(d.out).Println(msg)
}

// Error 错误提示
func (d *Display) Error(msg string) {
	pterm.Error.WithWriter(d.out).Println(msg)
}

// Info 普通提示
func (d *Display) Info(msg string) {
	pterm.Info.WithWriter(d.out).Println(msg)
}

// Outcome 输出一次操作的结果
func (d *Display) Outcome(op imageops.Operation, outcome imageops.Outcome) {
	if path, ok := outcome.ResultPath(); ok {
		key := i18n.TextConverted
		if op == imageops.OpMove {
			key = i18n.TextMoved
		}
		d.Success(i18n.Tf(key, path))
		return
	}
	d.Error(i18n.Tf(i18n.TextErrorPrefix, FailureText(outcome)))
}

// Formats 输出支持的格式列表
func (d *Display) Formats(formats []string) {
	items := make([]pterm.BulletListItem, 0, len(formats))
	for _, ext := range formats {
		items = append(items, pterm.BulletListItem{Level: 0, Text: ext})
	}
	pterm.DefaultSection.WithWriter(d.out).Println(i18n.T(i18n.TextFormatsHeader))
	_ = pterm.DefaultBulletList.WithWriter(d.out).WithItems(items).Render()
}

// History 输出操作历史表格
func (d *Display) History(records []history.Record, stats history.Stats) {
	pterm.DefaultSection.WithWriter(d.out).Println(i18n.T(i18n.TextHistoryHeader))
	if len(records) == 0 {
		d.Info(i18n.T(i18n.TextHistoryEmpty))
		return
	}

	data := pterm.TableData{{"#", "time", "operation", "status", "source", "result"}}
	for _, record := range records {
		status := i18n.T(i18n.TextSucceeded)
		result := record.Destination
		if !record.Succeeded {
			status = i18n.T(i18n.TextFailed)
			result = record.Message
		}
		data = append(data, []string{
			strconv.FormatUint(record.Seq, 10),
			record.Time.Local().Format("2006-01-02 15:04:05"),
			record.Operation,
			status,
			record.Source,
			result,
		})
	}
	_ = pterm.DefaultTable.WithWriter(d.out).WithHasHeader().WithData(data).Render()
	d.Info(i18n.Tf(i18n.TextHistoryStats, stats.Total, stats.Succeeded, stats.Failed))
}

// FailureText 本地化的失败原因，附带具体消息
func FailureText(outcome imageops.Outcome) string {
	text := KindText(outcome.Kind())
	if text == "" {
		return outcome.Message()
	}
	if msg := outcome.Message(); msg != "" && !strings.EqualFold(msg, text) {
		return text + " (" + msg + ")"
	}
	return text
}

// KindText 错误类别对应的本地化文本
func KindText(kind imageops.ErrorKind) string {
	key, ok := kindTexts[kind]
	if !ok {
		return ""
	}
	return i18n.T(key)
}

var kindTexts = map[imageops.ErrorKind]i18n.TextKey{
	imageops.KindNotFound:                 i18n.TextKindNotFound,
	imageops.KindUnsupportedFormat:        i18n.TextKindUnsupportedFormat,
	imageops.KindDestinationNotFound:      i18n.TextKindDestinationNotFound,
	imageops.KindDestinationNotADirectory: i18n.TextKindDestinationNotADirectory,
	imageops.KindPermissionDenied:         i18n.TextKindPermissionDenied,
	imageops.KindCodecError:               i18n.TextKindCodecError,
	imageops.KindMoveIOError:              i18n.TextKindMoveIOError,
	imageops.KindCollisionLimitExceeded:   i18n.TextKindCollisionLimitExceeded,
}
