package commands

import (
	"github.com/nockpoint/nockit/internal/logengine"
	"github.com/spf13/cobra"
)

// AnalyzeCmd implements the 'analyze' command
// AnalyzeCmd 实现 'analyze' 命令
var AnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze log patterns and statistics",
	// Short: 分析日志模式和统计信息
	Long: `Parse all log files and aggregate entries inside the requested window
into level/target histograms, an error-pattern list and a time range.
Periods: 1h, 6h, 12h, 1d, 1w, 1m (note: 1m is a 30-day month, not one minute).
解析所有日志文件，将时间窗口内的记录聚合为统计信息。
注意：1m 表示 30 天，而不是一分钟。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetString("period")
		if !cmd.Flags().Changed("period") {
			period = cfg.Engine.AnalyzePeriod
		}
		return logengine.AnalyzeLogs(cmd.Context(), cmd.OutOrStdout(), logDir(), period)
	},
}

func init() {
	AnalyzeCmd.Flags().StringP("period", "p", "1h", "Time period for analysis (1h, 6h, 12h, 1d, 1w, 1m)")
}
