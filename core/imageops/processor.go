package imageops

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Severity 事件级别
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Operation 操作名称
type Operation string

const (
	OpGrayscale Operation = "grayscale"
	OpMove      Operation = "move"
)

// Event 一次操作的记录
type Event struct {
	Time        time.Time
	Severity    Severity
	Operation   Operation
	Source      string
	Destination string
	Kind        ErrorKind
	Message     string
}

// Recorder 操作日志接收者，实现方不得让记录失败影响操作
type Recorder interface {
	Record(event Event)
}

type nopRecorder struct{}

func (nopRecorder) Record(Event) {}

// Options 处理器配置
type Options struct {
	Formats              []string
	MaxCollisionAttempts int
	Grayscale            GrayscaleOptions
	CheckDiskSpace       bool
	PreserveTimes        bool
}

// DefaultOptions 默认配置
func DefaultOptions() Options {
	return Options{
		Formats:              DefaultFormats,
		MaxCollisionAttempts: DefaultMaxCollisionAttempts,
		Grayscale:            DefaultGrayscaleOptions(),
		CheckDiskSpace:       true,
		PreserveTimes:        true,
	}
}

// Processor 图片处理入口：灰度转换与移动
type Processor struct {
	formats   *FormatSet
	validator *PathValidator
	resolver  *CollisionResolver
	transform *ImageTransform
	mover     *FileMover
	recorder  Recorder
	logger    *zap.Logger
}

// NewProcessor 创建处理器；格式集合在此固定，之后不再改变
func NewProcessor(opts Options, recorder Recorder, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	formats := opts.Formats
	if len(formats) == 0 {
		formats = DefaultFormats
	}

	formatSet := NewFormatSet(formats...)
	validator := NewPathValidator(formatSet)
	resolver := NewCollisionResolver(opts.MaxCollisionAttempts, logger.Named("resolver"))
	atomicOps := NewAtomicFileOperations(logger.Named("atomic"), opts.CheckDiskSpace, opts.PreserveTimes)

	return &Processor{
		formats:   formatSet,
		validator: validator,
		resolver:  resolver,
		transform: NewImageTransform(validator, resolver, atomicOps, opts.Grayscale, logger.Named("grayscale")),
		mover:     NewFileMover(validator, resolver, atomicOps, logger.Named("mover")),
		recorder:  recorder,
		logger:    logger,
	}
}

// ValidateImagePath 校验图片路径
func (p *Processor) ValidateImagePath(path string) ValidationResult {
	return p.validator.Validate(path)
}

// SupportedFormats 支持的扩展名列表
func (p *Processor) SupportedFormats() []string {
	return p.formats.List()
}

// ConvertToBlackWhite 生成 {name}_bw{ext} 灰度图
func (p *Processor) ConvertToBlackWhite(imagePath string) (outcome Outcome) {
	defer p.recoverInto(&outcome, OpGrayscale, KindCodecError, imagePath, "")

	outputPath, err := p.transform.ToGrayscale(imagePath)
	if err != nil {
		return p.fail(OpGrayscale, imagePath, "", err)
	}
	return p.succeed(OpGrayscale, imagePath, outputPath, "image converted successfully")
}

// MoveImage 将图片移动到目标目录，重名时追加 _N 后缀
func (p *Processor) MoveImage(sourcePath, destinationDir string) (outcome Outcome) {
	defer p.recoverInto(&outcome, OpMove, KindMoveIOError, sourcePath, destinationDir)

	finalPath, err := p.mover.Move(sourcePath, destinationDir)
	if err != nil {
		return p.fail(OpMove, sourcePath, destinationDir, err)
	}
	return p.succeed(OpMove, sourcePath, finalPath, "file moved successfully")
}

func (p *Processor) succeed(op Operation, source, resultPath, message string) Outcome {
	var text string
	switch op {
	case OpMove:
		text = "file moved: " + source + " -> " + resultPath
	default:
		text = "image converted: " + resultPath
	}
	p.recorder.Record(Event{
		Time:        time.Now(),
		Severity:    SeverityInfo,
		Operation:   op,
		Source:      source,
		Destination: resultPath,
		Message:     text,
	})
	return Success(resultPath, message)
}

func (p *Processor) fail(op Operation, source, destination string, err error) Outcome {
	var oe *OpError
	if !errors.As(err, &oe) {
		oe = newOpError(KindMoveIOError, string(op), source, err)
	}
	p.recorder.Record(Event{
		Time:        time.Now(),
		Severity:    SeverityError,
		Operation:   op,
		Source:      source,
		Destination: destination,
		Kind:        oe.Kind,
		Message:     oe.Error(),
	})
	return Failure(oe)
}

// recoverInto 防止panic穿过公共接口
func (p *Processor) recoverInto(outcome *Outcome, op Operation, kind ErrorKind, source, destination string) {
	r := recover()
	if r == nil {
		return
	}
	p.logger.Error("操作发生panic", zap.String("operation", string(op)), zap.Any("panic", r))
	oe := newOpError(kind, string(op), source, fmt.Errorf("internal error: %v", r))
	*outcome = p.fail(op, source, destination, oe)
}
