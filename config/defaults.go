package config

import "github.com/spf13/viper"

// setDefaults 设置所有默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("formats.supported", []string{".png", ".jpg", ".jpeg", ".bmp"})

	v.SetDefault("collision.max_attempts", 10000)

	// 灰度转换默认保持覆盖行为
	v.SetDefault("grayscale.suffix", "_bw")
	v.SetDefault("grayscale.jpeg_quality", 95)
	v.SetDefault("grayscale.resolve_collisions", false)

	v.SetDefault("move.check_disk_space", true)
	v.SetDefault("move.preserve_times", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "image_processor.log")
	v.SetDefault("logging.log_dir", ".")
	v.SetDefault("logging.enable_file", true)
	v.SetDefault("logging.enable_console", true)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "")
	v.SetDefault("history.max_pending", 64)

	v.SetDefault("language", "en")

	v.SetDefault("advanced.enable_hot_reload", false)
}
