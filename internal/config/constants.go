package config

const (
	// DefaultConfigDir is the standard nockit configuration root, relative to
	// the working directory unless overridden with --config-dir.
	// DefaultConfigDir 是 nockit 的标准配置根目录。
	DefaultConfigDir = ".nockit"

	// LogDirName is the subdirectory of the config root that holds log files.
	// Every engine operation resolves its file set relative to it.
	// LogDirName 是配置根目录下存放日志文件的子目录。
	LogDirName = "logs"

	// ConfigFileName is the yaml configuration file inside the config root.
	// ConfigFileName 是配置根目录中的 yaml 配置文件。
	ConfigFileName = "config.yaml"

	// SelfLogFileName is where nockit writes its own structured logs. It lives
	// inside LogDirName so the engine's own output is analyzable.
	// SelfLogFileName 是 nockit 写入自身结构化日志的文件。
	SelfLogFileName = "nockit.log"

	// LogFileExt is the extension filter used by the file locator.
	// LogFileExt 是文件定位器使用的扩展名过滤器。
	LogFileExt = ".log"
)
