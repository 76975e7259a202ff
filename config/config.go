package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"imgproc/core/imageops"
)

// Config 应用配置结构
type Config struct {
	// 支持的图片格式
	Formats FormatsConfig `mapstructure:"formats"`

	// 文件名冲突设置
	Collision CollisionConfig `mapstructure:"collision"`

	// 灰度转换设置
	Grayscale GrayscaleConfig `mapstructure:"grayscale"`

	// 移动设置
	Move MoveConfig `mapstructure:"move"`

	// 日志设置
	Logging LoggingConfig `mapstructure:"logging"`

	// 操作历史设置
	History HistoryConfig `mapstructure:"history"`

	// 界面语言 (en, zh, ru)
	Language string `mapstructure:"language"`

	// 高级设置
	Advanced AdvancedConfig `mapstructure:"advanced"`
}

// FormatsConfig 格式配置
type FormatsConfig struct {
	// 支持的文件扩展名（白名单）
	Supported []string `mapstructure:"supported"`
}

// CollisionConfig 文件名冲突配置
type CollisionConfig struct {
	// 最大后缀编号
	MaxAttempts int `mapstructure:"max_attempts"`
}

// GrayscaleConfig 灰度转换配置
type GrayscaleConfig struct {
	// 输出文件名后缀
	Suffix string `mapstructure:"suffix"`

	// JPEG质量 (1-100)
	JPEGQuality int `mapstructure:"jpeg_quality"`

	// 输出文件已存在时改名而不是覆盖
	ResolveCollisions bool `mapstructure:"resolve_collisions"`
}

// MoveConfig 移动配置
type MoveConfig struct {
	// 跨设备复制前检查磁盘空间
	CheckDiskSpace bool `mapstructure:"check_disk_space"`

	// 跨设备复制时保留修改时间
	PreserveTimes bool `mapstructure:"preserve_times"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	// 日志级别 (debug, info, warn, error)
	Level string `mapstructure:"level"`

	// 日志文件
	File string `mapstructure:"file"`

	// 日志目录
	LogDir string `mapstructure:"log_dir"`

	// 是否启用文件日志
	EnableFile bool `mapstructure:"enable_file"`

	// 是否启用控制台日志
	EnableConsole bool `mapstructure:"enable_console"`
}

// HistoryConfig 操作历史配置
type HistoryConfig struct {
	// 是否记录操作历史
	Enabled bool `mapstructure:"enabled"`

	// 数据库路径，空表示 ~/.imgproc/history.db
	Path string `mapstructure:"path"`

	// 最多等待写入的记录数
	MaxPending int `mapstructure:"max_pending"`
}

// AdvancedConfig 高级配置
type AdvancedConfig struct {
	// 是否启用配置热重载
	EnableHotReload bool `mapstructure:"enable_hot_reload"`
}

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	var builder strings.Builder
	builder.WriteString("配置验证失败 [")
	builder.WriteString(e.Field)
	builder.WriteString("]: ")
	builder.WriteString(e.Message)
	builder.WriteString(" (当前值: ")
	builder.WriteString(fmt.Sprint(e.Value))
	builder.WriteString(")")
	return builder.String()
}

// ConfigWatcher 配置变更监听器
type ConfigWatcher interface {
	OnConfigChange(oldConfig, newConfig *Config) error
}

// ConfigManager 配置管理器
type ConfigManager struct {
	config     *Config
	viper      *viper.Viper
	logger     *zap.Logger
	mutex      sync.RWMutex
	watchers   []ConfigWatcher
	configFile string
}

// NewConfigManager 创建配置管理器
func NewConfigManager(configFile string, logger *zap.Logger) (*ConfigManager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cm := &ConfigManager{
		viper:      viper.New(),
		logger:     logger,
		configFile: configFile,
	}

	if err := cm.setupViper(); err != nil {
		return nil, err
	}

	config, err := cm.readConfig()
	if err != nil {
		return nil, err
	}
	cm.config = config

	return cm, nil
}

// NewConfig 加载一次配置
func NewConfig(configFile string, logger *zap.Logger) (*Config, error) {
	cm, err := NewConfigManager(configFile, logger)
	if err != nil {
		return nil, err
	}
	return cm.GetConfig(), nil
}

// setupViper 设置默认值、配置文件位置和环境变量
func (cm *ConfigManager) setupViper() error {
	setDefaults(cm.viper)

	if cm.configFile != "" {
		cm.viper.SetConfigFile(cm.configFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		cm.viper.AddConfigPath(home)
		cm.viper.AddConfigPath(".")
		cm.viper.SetConfigName(".imgproc")
		cm.viper.SetConfigType("yaml")
	}

	// 读取环境变量
	cm.viper.SetEnvPrefix("IMGPROC")
	cm.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cm.viper.AutomaticEnv()

	if err := cm.viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		// 配置文件不存在，使用默认配置
	}
	return nil
}

// readConfig 解析并验证配置
func (cm *ConfigManager) readConfig() (*Config, error) {
	var config Config
	if err := cm.viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := validateConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SetLogger 替换日志实例（日志本身依赖配置，加载后再注入）
func (cm *ConfigManager) SetLogger(logger *zap.Logger) {
	if logger == nil {
		return
	}
	cm.mutex.Lock()
	cm.logger = logger
	cm.mutex.Unlock()
}

// GetConfig 获取当前配置
func (cm *ConfigManager) GetConfig() *Config {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return cm.config
}

// ConfigFileUsed 实际使用的配置文件，未找到时为空
func (cm *ConfigManager) ConfigFileUsed() string {
	return cm.viper.ConfigFileUsed()
}

// AddWatcher 添加配置监听器
func (cm *ConfigManager) AddWatcher(watcher ConfigWatcher) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	cm.watchers = append(cm.watchers, watcher)
}

// Reload 重新读取配置文件并通知监听器
func (cm *ConfigManager) Reload() error {
	if err := cm.viper.ReadInConfig(); err != nil {
		return err
	}
	newConfig, err := cm.readConfig()
	if err != nil {
		return err
	}

	cm.mutex.Lock()
	oldConfig := cm.config
	cm.config = newConfig
	watchers := append([]ConfigWatcher(nil), cm.watchers...)
	cm.mutex.Unlock()

	for _, watcher := range watchers {
		if err := watcher.OnConfigChange(oldConfig, newConfig); err != nil {
			cm.logger.Error("配置变更通知失败", zap.Error(err))
		}
	}
	return nil
}

// EnableHotReload 启用配置热重载（需要 advanced.enable_hot_reload 且存在配置文件）
func (cm *ConfigManager) EnableHotReload() bool {
	if !cm.GetConfig().Advanced.EnableHotReload || cm.viper.ConfigFileUsed() == "" {
		return false
	}

	cm.viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		if err := cm.Reload(); err != nil {
			cm.logger.Error("重新加载配置失败", zap.String("file", e.Name), zap.Error(err))
			return
		}
		cm.logger.Debug("配置已重新加载", zap.String("file", e.Name))
	})
	cm.viper.WatchConfig()
	return true
}

// validateConfig 验证配置
func validateConfig(config *Config) error {
	if len(config.Formats.Supported) == 0 {
		return &ValidationError{
			Field:   "formats.supported",
			Value:   config.Formats.Supported,
			Message: "至少需要一个支持的扩展名",
		}
	}

	for _, ext := range config.Formats.Supported {
		if !imageops.HasCodec(ext) {
			return &ValidationError{
				Field:   "formats.supported",
				Value:   ext,
				Message: "没有可用的编解码器，仅支持 " + strings.Join(imageops.DefaultFormats, " "),
			}
		}
	}

	if config.Collision.MaxAttempts <= 0 {
		return &ValidationError{
			Field:   "collision.max_attempts",
			Value:   config.Collision.MaxAttempts,
			Message: "最大后缀编号必须大于0",
		}
	}

	if config.Grayscale.JPEGQuality < 1 || config.Grayscale.JPEGQuality > 100 {
		return &ValidationError{
			Field:   "grayscale.jpeg_quality",
			Value:   config.Grayscale.JPEGQuality,
			Message: "JPEG质量必须在1-100之间",
		}
	}

	if config.Grayscale.Suffix == "" || strings.ContainsAny(config.Grayscale.Suffix, `/\`) {
		return &ValidationError{
			Field:   "grayscale.suffix",
			Value:   config.Grayscale.Suffix,
			Message: "后缀不能为空且不能包含路径分隔符",
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[config.Logging.Level] {
		return &ValidationError{
			Field:   "logging.level",
			Value:   config.Logging.Level,
			Message: "日志级别必须是 debug, info, warn, error 之一",
		}
	}

	if config.History.MaxPending <= 0 {
		return &ValidationError{
			Field:   "history.max_pending",
			Value:   config.History.MaxPending,
			Message: "等待写入上限必须大于0",
		}
	}

	return nil
}
