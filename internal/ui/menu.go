package ui

import (
	"errors"
	"fmt"

	"imgproc/core/imageops"
	"imgproc/internal/i18n"

	"go.uber.org/zap"
)

var (
	// ErrInvalidChoice 菜单选择无效
	ErrInvalidChoice = errors.New("invalid menu choice")
	// ErrOperationFailed 操作返回失败结果
	ErrOperationFailed = errors.New("operation failed")
)

// ImageProcessor 菜单调用的图片操作
type ImageProcessor interface {
	ConvertToBlackWhite(imagePath string) imageops.Outcome
	MoveImage(sourcePath, destinationDir string) imageops.Outcome
}

// Menu 交互式两项菜单
type Menu struct {
	processor ImageProcessor
	prompter  Prompter
	display   *Display
	logger    *zap.Logger
}

// NewMenu 创建交互菜单
func NewMenu(processor ImageProcessor, prompter Prompter, display *Display, logger *zap.Logger) *Menu {
	if logger == nil {
		logger = zap.NewNop()
	}
	if display == nil {
		display = NewDisplay(nil)
	}
	return &Menu{
		processor: processor,
		prompter:  prompter,
		display:   display,
		logger:    logger,
	}
}

// Run 执行一轮菜单交互
// 先读取选择和图片路径，再按选择分派；选择无效时返回 ErrInvalidChoice
func (m *Menu) Run() error {
	options := []string{
		i18n.T(i18n.TextOptionGrayscale),
		i18n.T(i18n.TextOptionMove),
	}

	raw, err := m.prompter.Choose(i18n.T(i18n.TextChooseOperation), options, i18n.T(i18n.TextEnterChoice))
	if err != nil {
		return err
	}
	choice := ParseMenuChoice(raw, len(options))
	m.logger.Debug("菜单选择", zap.String("input", raw), zap.Int("choice", choice))

	rawPath, err := m.prompter.Input(i18n.T(i18n.TextEnterImagePath))
	if err != nil {
		return err
	}
	imagePath := NormalizeInputPath(rawPath)

	var (
		op      imageops.Operation
		outcome imageops.Outcome
	)
	switch choice {
	case 1:
		op = imageops.OpGrayscale
		outcome = m.processor.ConvertToBlackWhite(imagePath)
	case 2:
		rawDest, err := m.prompter.Input(i18n.T(i18n.TextEnterDestDir))
		if err != nil {
			return err
		}
		op = imageops.OpMove
		outcome = m.processor.MoveImage(imagePath, NormalizeInputPath(rawDest))
	default:
		m.display.Error(i18n.T(i18n.TextInvalidChoice))
		return ErrInvalidChoice
	}

	m.display.Outcome(op, outcome)
	if !outcome.Succeeded() {
		return fmt.Errorf("%w: %s", ErrOperationFailed, outcome.Message())
	}
	return nil
}
