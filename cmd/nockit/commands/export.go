package commands

import (
	"github.com/nockpoint/nockit/internal/logengine"
	"github.com/spf13/cobra"
)

// ExportCmd implements the 'export' command
// ExportCmd 实现 'export' 命令
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export logs in various formats",
	// Short: 以多种格式导出日志
	Long: `Merge every log file, sort all entries by timestamp and write them to
the output path as json, csv or txt.
合并所有日志文件，按时间戳排序后以 json、csv 或 txt 格式写入输出文件。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		return logengine.ExportLogs(cmd.Context(), cmd.OutOrStdout(), logDir(), format, output)
	},
}

func init() {
	ExportCmd.Flags().StringP("format", "f", "json", "Output format (json, csv, txt)")
	ExportCmd.Flags().StringP("output", "o", "", "Output file")
	_ = ExportCmd.MarkFlagRequired("output")
}
