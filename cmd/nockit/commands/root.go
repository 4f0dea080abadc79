package commands

import (
	"github.com/nockpoint/nockit/internal/config"
	"github.com/nockpoint/nockit/internal/utils/logger"
	"github.com/spf13/cobra"
)

var (
	// configDir is the nockit configuration root; the log engine reads
	// <configDir>/logs.
	// configDir 是 nockit 配置根目录；日志引擎读取 <configDir>/logs。
	configDir string

	// verbose forces debug-level diagnostic logging.
	// verbose 强制 debug 级别的诊断日志。
	verbose bool

	// cfg holds the loaded configuration for the running command.
	// cfg 保存当前命令加载的配置。
	cfg *config.Config
)

var RootCmd = &cobra.Command{
	Use:   "nockit",
	Short: "Nockchain log management tool",
	// Short: Nockchain 日志管理工具
	Long: `nockit ingests, tails, searches, analyzes and exports the log files
produced by nockchain processes under <config-dir>/logs.
nockit 对 nockchain 进程在 <config-dir>/logs 下产生的日志文件进行
采集、跟踪、搜索、分析和导出。`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load configuration to get logging settings
		// 加载配置以获取日志设置
		loaded, err := config.Load(configDir)
		if err != nil {
			// If config fails to load, use defaults (console only)
			// 如果加载配置失败，使用默认配置（仅控制台）
			cfg = config.Default(configDir)
			cfg.Logging.Enabled = false
			logger.Init(cfg.Logging)
			logger.Get(nil).Warnf("Failed to load config, using defaults: %v", err)
		} else {
			cfg = loaded
			if verbose {
				cfg.Logging.Level = "debug"
			}
			logger.Init(cfg.Logging)
		}

		// Inject logger into context
		// 将 Logger 注入 Context
		ctx := logger.WithContext(cmd.Context(), logger.Get(nil))
		cmd.SetContext(ctx)
	},
}

// logDir returns the directory the engine operates on.
// logDir 返回引擎操作的目录。
func logDir() string {
	return config.LogDir(configDir)
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "c", config.DefaultConfigDir, "Configuration directory")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	RootCmd.AddCommand(TailCmd)    // tail - 跟踪日志
	RootCmd.AddCommand(SearchCmd)  // search - 搜索日志
	RootCmd.AddCommand(AnalyzeCmd) // analyze - 分析日志
	RootCmd.AddCommand(ExportCmd)  // export - 导出日志
	RootCmd.AddCommand(CleanCmd)   // clean - 清理旧日志
	RootCmd.AddCommand(VersionCmd) // version - 显示版本
}
