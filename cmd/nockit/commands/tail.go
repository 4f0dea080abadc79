package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/nockpoint/nockit/internal/logengine"
	"github.com/spf13/cobra"
)

// TailCmd implements the 'tail' command
// TailCmd 实现 'tail' 命令
var TailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Tail live logs",
	// Short: 跟踪实时日志
	Long: `Show the last lines of the most recently modified log file.
With --follow, keep streaming newly appended lines until interrupted.
显示最近修改的日志文件的末尾行。使用 --follow 持续输出新追加的行。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, _ := cmd.Flags().GetInt("lines")
		follow, _ := cmd.Flags().GetBool("follow")
		metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

		if !cmd.Flags().Changed("lines") {
			lines = cfg.Engine.TailLines
		}

		// Follow runs until Ctrl+C / SIGTERM
		// follow 模式运行直到 Ctrl+C / SIGTERM
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := logengine.TailOptions{Lines: lines, Follow: follow}

		if follow && metricsAddr != "" {
			metrics := logengine.NewFollowMetrics(metricsAddr)
			metrics.Start(ctx)
			defer metrics.Stop() //nolint:errcheck
			opts.OnLine = metrics.Observe
		}

		return logengine.TailLogs(ctx, cmd.OutOrStdout(), logDir(), opts)
	},
}

func init() {
	TailCmd.Flags().IntP("lines", "l", 100, "Number of lines to show")
	TailCmd.Flags().BoolP("follow", "f", false, "Follow log updates")
	TailCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics at this address while following (e.g. :9090)")
}
