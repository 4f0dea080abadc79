package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nockpoint/nockit/internal/utils/fileutil"
	"github.com/nockpoint/nockit/internal/utils/logger"
	"gopkg.in/yaml.v3"
)

// ConfigMu protects concurrent access to the configuration file.
// ConfigMu 保护对配置文件的并发访问。
var ConfigMu sync.RWMutex

// DefaultConfigTemplate defines the default configuration file structure with
// bilingual comments. It is written on first use so a fresh config root is
// self-documenting.
const DefaultConfigTemplate = `# Nockit Configuration File / Nockit 配置文件

# Diagnostic logging for nockit itself. The file sink emits JSON records into
# the logs/ directory, so nockit's own output can be tailed, searched,
# analyzed and exported like any other log.
# nockit 自身的诊断日志。文件输出为 JSON 记录，写入 logs/ 目录。
logging:
  enabled: true
  # Level: debug, info, warn, error / 日志级别
  level: "info"
  # Max size in MB before rotation / 轮转前的最大大小（MB）
  max_size: 10
  # Max number of rotated files to keep / 保留的旧文件最大数量
  max_backups: 3
  # Max age of rotated files in days / 保留旧文件的最大天数
  max_age: 30
  compress: false

# Log engine defaults. Command-line flags override these.
# 日志引擎默认值。命令行标志优先。
engine:
  # Default line count for 'nockit tail' / tail 默认行数
  tail_lines: 100
  # Default analysis window: 1h, 6h, 12h, 1d, 1w, 1m (1m = 30 days)
  # 默认分析窗口（1m = 30 天）
  analyze_period: "1h"
  # Default retention for 'nockit clean', in days / clean 默认保留天数
  clean_days: 7
`

// EngineConfig holds engine-wide defaults overridable from the command line.
// EngineConfig 保存引擎级默认值，可被命令行覆盖。
type EngineConfig struct {
	TailLines     int    `yaml:"tail_lines"`
	AnalyzePeriod string `yaml:"analyze_period"`
	CleanDays     int    `yaml:"clean_days"`
}

// Config is the root nockit configuration.
// Config 是 nockit 的根配置。
type Config struct {
	Logging logger.LoggingConfig `yaml:"logging"`
	Engine  EngineConfig         `yaml:"engine"`
}

// Default returns the built-in configuration for the given config root.
// Default 返回给定配置根目录的内置配置。
func Default(configDir string) *Config {
	return &Config{
		Logging: logger.LoggingConfig{
			Enabled:    true,
			Level:      "info",
			Path:       filepath.Join(LogDir(configDir), SelfLogFileName),
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
			Compress:   false,
		},
		Engine: EngineConfig{
			TailLines:     100,
			AnalyzePeriod: "1h",
			CleanDays:     7,
		},
	}
}

// LogDir returns the log directory under the given config root.
// LogDir 返回给定配置根目录下的日志目录。
func LogDir(configDir string) string {
	return filepath.Join(configDir, LogDirName)
}

// Path returns the config file path under the given config root.
// Path 返回给定配置根目录下的配置文件路径。
func Path(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// Load reads the configuration for a config root, creating a commented
// default file on first use. Values missing from the file keep defaults.
// Load 读取配置根目录的配置，首次使用时创建带注释的默认文件。
func Load(configDir string) (*Config, error) {
	ConfigMu.Lock()
	defer ConfigMu.Unlock()

	path := Path(configDir)
	cfg := Default(configDir)

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		// First run: materialize the template so users can edit it
		// 首次运行：生成模板文件供用户编辑
		if err := writeTemplate(configDir, path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Logging.Path == "" {
		cfg.Logging.Path = filepath.Join(LogDir(configDir), SelfLogFileName)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Save persists the configuration atomically.
// Save 原子地持久化配置。
func Save(configDir string, cfg *Config) error {
	ConfigMu.Lock()
	defer ConfigMu.Unlock()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(Path(configDir), data, 0644)
}

// Validate checks configuration invariants.
// Validate 检查配置约束。
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	if c.Engine.TailLines < 0 {
		return fmt.Errorf("engine.tail_lines: must not be negative, got %d", c.Engine.TailLines)
	}
	if c.Engine.CleanDays < 0 {
		return fmt.Errorf("engine.clean_days: must not be negative, got %d", c.Engine.CleanDays)
	}
	return nil
}

func writeTemplate(configDir, path string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("create config dir %s: %w", configDir, err)
	}
	if err := fileutil.AtomicWriteFile(path, []byte(DefaultConfigTemplate), 0644); err != nil {
		return fmt.Errorf("write default config %s: %w", path, err)
	}
	return nil
}
