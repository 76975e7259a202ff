package cmd

import (
	"fmt"
	"os"

	"imgproc/config"
	"imgproc/core/history"
	"imgproc/core/imageops"
	"imgproc/internal/i18n"
	"imgproc/internal/logger"

	"go.uber.org/zap"
)

// app 一次命令执行期间共享的组件
type app struct {
	configManager *config.ConfigManager
	log           *zap.Logger
	level         zap.AtomicLevel
	verbose       bool
	store         *history.Store
	oplog         *logger.OperationLog
	processor     *imageops.Processor
}

// appOptions 命令行覆盖项
type appOptions struct {
	configFile string
	verbose    bool
	language   string
}

// newApp 按 配置 → 日志 → 历史 → 处理器 的顺序装配组件
func newApp(opts appOptions) (*app, error) {
	configManager, err := config.NewConfigManager(opts.configFile, nil)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := configManager.GetConfig()

	lang := cfg.Language
	if opts.language != "" {
		lang = opts.language
	}
	if parsed, err := i18n.ParseLanguage(lang); err == nil {
		_ = i18n.GetGlobalI18nManager().SetLanguage(parsed)
	}

	logConfig := loggerConfigFrom(cfg, opts.verbose)
	log, level, err := logger.NewLoggerWithConfig(logConfig)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	configManager.SetLogger(logger.CreateComponentLogger(log, "config"))

	a := &app{
		configManager: configManager,
		log:           log,
		level:         level,
		verbose:       opts.verbose,
	}

	var recorder *history.Recorder
	if cfg.History.Enabled {
		recorder = a.openHistory(cfg.History)
	}

	a.oplog = logger.NewOperationLog(log, recorder)
	a.processor = imageops.NewProcessor(processorOptionsFrom(cfg), a.oplog, log)

	configManager.AddWatcher(a)
	if configManager.EnableHotReload() {
		log.Debug("配置热重载已启用", zap.String("file", configManager.ConfigFileUsed()))
	}

	log.Debug("imgproc initialized",
		zap.String("config", configManager.ConfigFileUsed()),
		zap.Strings("formats", a.processor.SupportedFormats()))
	return a, nil
}

// openHistory 打开历史数据库；失败时只记录警告，操作照常进行
func (a *app) openHistory(hc config.HistoryConfig) *history.Recorder {
	path := hc.Path
	if path == "" {
		path = history.DefaultPath()
	}
	historyLogger := logger.CreateComponentLogger(a.log, "history")

	store, err := history.Open(path, historyLogger)
	if err != nil {
		a.log.Warn("操作历史不可用", zap.String("path", path), zap.Error(err))
		return nil
	}
	recorder, err := history.NewRecorder(store, hc.MaxPending, historyLogger)
	if err != nil {
		_ = store.Close()
		a.log.Warn("操作历史不可用", zap.Error(err))
		return nil
	}
	a.store = store
	return recorder
}

// OnConfigChange 热重载时调整日志级别；格式集合与其余设置在启动时固定
// --verbose 优先于配置文件
func (a *app) OnConfigChange(oldConfig, newConfig *config.Config) error {
	if a.verbose || oldConfig.Logging.Level == newConfig.Logging.Level {
		return nil
	}
	level := logger.ParseLevel(newConfig.Logging.Level)
	a.level.SetLevel(level)
	a.log.Info("log level changed to " + level.CapitalString())
	return nil
}

// Close 刷新日志并关闭历史数据库
func (a *app) Close() error {
	if a == nil || a.oplog == nil {
		return nil
	}
	return a.oplog.Close()
}

func loggerConfigFrom(cfg *config.Config, verbose bool) *logger.LoggerConfig {
	lc := logger.DefaultLoggerConfig()
	lc.Verbose = verbose
	lc.Level = logger.ParseLevel(cfg.Logging.Level)
	lc.File = cfg.Logging.File
	lc.LogDir = cfg.Logging.LogDir
	lc.EnableFile = cfg.Logging.EnableFile
	lc.EnableConsole = cfg.Logging.EnableConsole
	lc.Console = os.Stderr
	return lc
}

func processorOptionsFrom(cfg *config.Config) imageops.Options {
	return imageops.Options{
		Formats:              cfg.Formats.Supported,
		MaxCollisionAttempts: cfg.Collision.MaxAttempts,
		Grayscale: imageops.GrayscaleOptions{
			Suffix:            cfg.Grayscale.Suffix,
			JPEGQuality:       cfg.Grayscale.JPEGQuality,
			ResolveCollisions: cfg.Grayscale.ResolveCollisions,
		},
		CheckDiskSpace: cfg.Move.CheckDiskSpace,
		PreserveTimes:  cfg.Move.PreserveTimes,
	}
}
