package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/walteh/repobrowse/pkg/github"
)

// newLsCmd lists the direct children of a directory
func newLsCmd(opts *rootOpts) *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "ls <owner/repo> [path]",
		Short: "List the direct children of a repository directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := parseRepoArg(args[0])
			if err != nil {
				return err
			}

			dir := ""
			if len(args) == 2 {
				dir = args[1]
			}

			items, _, err := opts.client.GetDirectoryContents(cmd.Context(), owner, repo, dir, ref)
			if err != nil {
				return reportError(cmd, err)
			}

			for _, item := range items {
				if item.Type == github.ItemTypeDirectory {
					fmt.Fprintln(cmd.OutOrStdout(), color.CyanString(item.Name+"/"))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", item.Name, color.New(color.Faint).Sprintf("(%d bytes)", item.Size))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&ref, "ref", "r", "", "branch, tag or commit (defaults to the default branch)")
	return cmd
}
