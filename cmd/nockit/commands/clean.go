package commands

import (
	"github.com/nockpoint/nockit/internal/logengine"
	"github.com/spf13/cobra"
)

// CleanCmd implements the 'clean' command
// CleanCmd 实现 'clean' 命令
var CleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean old log files",
	// Short: 清理旧日志文件
	Long: `Delete log files whose modification time is older than the retention
window. Use --dry-run to see what would be deleted.
删除修改时间超过保留窗口的日志文件。使用 --dry-run 预览将被删除的文件。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if !cmd.Flags().Changed("days") {
			days = cfg.Engine.CleanDays
		}

		return logengine.CleanLogs(cmd.Context(), cmd.OutOrStdout(), logDir(), days, dryRun)
	},
}

func init() {
	CleanCmd.Flags().IntP("days", "d", 7, "Days to keep logs")
	CleanCmd.Flags().Bool("dry-run", false, "Dry run (don't actually delete)")
}
