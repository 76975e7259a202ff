package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerConfig 日志配置
type LoggerConfig struct {
	Verbose       bool
	EnableFile    bool
	EnableConsole bool
	Level         zapcore.Level
	// 日志文件路径，相对路径基于 LogDir
	File   string
	LogDir string
	// 控制台输出，默认 os.Stderr
	Console io.Writer
}

// DefaultLoggerConfig 默认日志配置
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Verbose:       false,
		EnableFile:    true,
		EnableConsole: true,
		Level:         zapcore.InfoLevel,
		File:          "image_processor.log",
		LogDir:        ".",
	}
}

// TimeLayout 日志时间格式
const TimeLayout = "2006-01-02 15:04:05,000"

// lineEncoderConfig 生成 "timestamp - SEVERITY - message" 格式的编码器配置
func lineEncoderConfig(encodeLevel zapcore.LevelEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      encodeLevel,
		EncodeTime:       zapcore.TimeEncoderOfLayout(TimeLayout),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " - ",
	}
}

// NewLoggerWithConfig 使用配置创建日志实例
// 返回的 AtomicLevel 可用于运行时调整级别（配置热重载）
func NewLoggerWithConfig(config *LoggerConfig) (*zap.Logger, zap.AtomicLevel, error) {
	level := zap.NewAtomicLevelAt(config.Level)
	if config.Verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	var cores []zapcore.Core

	if config.EnableConsole {
		console := config.Console
		if console == nil {
			console = os.Stderr
		}
		consoleEncoder := zapcore.NewConsoleEncoder(lineEncoderConfig(colorLevelEncoder))
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.AddSync(console), level))
	}

	if config.EnableFile {
		file, err := openLogFile(config)
		if err != nil {
			return nil, level, err
		}
		fileEncoder := zapcore.NewConsoleEncoder(lineEncoderConfig(plainLevelEncoder))
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(file), level))
	}

	if len(cores) == 0 {
		return zap.NewNop(), level, nil
	}

	// 日志写入失败不应影响业务操作，内部错误输出直接丢弃
	logger := zap.New(zapcore.NewTee(cores...), zap.ErrorOutput(zapcore.AddSync(io.Discard)))

	return logger, level, nil
}

// openLogFile 以追加方式打开日志文件
func openLogFile(config *LoggerConfig) (*os.File, error) {
	path := LogFilePath(config)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// LogFilePath 计算日志文件路径
func LogFilePath(config *LoggerConfig) string {
	file := config.File
	if file == "" {
		file = "image_processor.log"
	}
	if filepath.IsAbs(file) {
		return file
	}
	logDir := config.LogDir
	if logDir == "" {
		logDir = "."
	}
	return filepath.Join(logDir, file)
}

// colorLevelEncoder 彩色级别编码器
func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var coloredLevel string
	switch level {
	case zapcore.DebugLevel:
		coloredLevel = color.CyanString("DEBUG")
	case zapcore.InfoLevel:
		coloredLevel = color.GreenString("INFO")
	case zapcore.WarnLevel:
		coloredLevel = color.YellowString("WARNING")
	case zapcore.ErrorLevel:
		coloredLevel = color.RedString("ERROR")
	default:
		coloredLevel = level.CapitalString()
	}
	enc.AppendString(coloredLevel)
}

// plainLevelEncoder 无颜色的级别编码器
func plainLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if level == zapcore.WarnLevel {
		enc.AppendString("WARNING")
		return
	}
	enc.AppendString(level.CapitalString())
}

// ParseLevel 解析日志级别字符串，无法识别时返回 info
func ParseLevel(text string) zapcore.Level {
	level, err := zapcore.ParseLevel(text)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// CreateComponentLogger 为组件创建子日志器
func CreateComponentLogger(parent *zap.Logger, component string) *zap.Logger {
	return parent.Named(component)
}
