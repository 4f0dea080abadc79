package commands

import (
	"fmt"

	"github.com/nockpoint/nockit/internal/logengine"
	"github.com/spf13/cobra"
)

// SearchCmd implements the 'search' command
// SearchCmd 实现 'search' 命令
var SearchCmd = &cobra.Command{
	Use:   "search [pattern]",
	Short: "Search logs for patterns",
	// Short: 在日志中搜索模式
	Long: `Scan log files for lines matching a regular expression, or use --expr
to filter parsed entries with an expression such as 'Level == "ERROR"'.
使用正则表达式扫描日志行，或使用 --expr 对解析后的记录进行表达式过滤。`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		exprSrc, _ := cmd.Flags().GetString("expr")

		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}
		if pattern == "" && exprSrc == "" {
			return fmt.Errorf("a search pattern or --expr is required")
		}

		return logengine.SearchLogs(cmd.Context(), cmd.OutOrStdout(), logDir(), logengine.SearchOptions{
			Pattern: pattern,
			Expr:    exprSrc,
			File:    file,
		})
	},
}

func init() {
	SearchCmd.Flags().StringP("file", "f", "", "Log file to search (default: all files in the log directory)")
	SearchCmd.Flags().StringP("expr", "e", "", `Expression filter over parsed entries, e.g. 'Level == "ERROR" && Target == "net"'`)
}
