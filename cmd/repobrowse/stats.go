package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// newStatsCmd shows cache counts and the last rate-limit snapshot
func newStatsCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry counts and the last-seen API quota",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := opts.client.CacheStats()
			rl := opts.client.LastRateLimit()
			faint := color.New(color.Faint)

			fmt.Fprintf(cmd.OutOrStdout(), "%s trees=%d repositories=%d files=%d blobs=%d\n",
				faint.Sprint("cache:"), stats.Trees, stats.Repositories, stats.Files, stats.Blobs)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d/%d used=%d reset=%s\n",
				faint.Sprint("quota:"), rl.Remaining, rl.Limit, rl.Used,
				rl.ResetTime().Format(time.Kitchen))
			return nil
		},
	}
}
