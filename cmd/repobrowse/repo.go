package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// newRepoCmd shows repository metadata
func newRepoCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "repo <owner/repo>",
		Short: "Show repository metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := parseRepoArg(args[0])
			if err != nil {
				return err
			}

			data, rl, err := opts.client.GetRepository(cmd.Context(), owner, repo)
			if err != nil {
				return reportError(cmd, err)
			}

			bold := color.New(color.Bold)
			faint := color.New(color.Faint)

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", bold.Sprint(data.FullName), faint.Sprint(data.HTMLURL))
			if data.Description != "" {
				fmt.Fprintln(cmd.OutOrStdout(), data.Description)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s %d  %s %d",
				faint.Sprint("default branch:"), color.YellowString(data.DefaultBranch),
				faint.Sprint("stars:"), data.Stargazers,
				faint.Sprint("forks:"), data.Forks)
			if data.Language != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s", faint.Sprint("language:"), data.Language)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d/%d\n", faint.Sprint("api quota remaining:"), rl.Remaining, rl.Limit)
			return nil
		},
	}
}
