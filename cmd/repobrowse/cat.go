package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// newCatCmd prints a file's decoded content
func newCatCmd(opts *rootOpts) *cobra.Command {
	var (
		ref string
		sha string
	)

	cmd := &cobra.Command{
		Use:   "cat <owner/repo> [path]",
		Short: "Print a file's decoded content",
		Long: `Cat fetches a file by path, or by blob SHA with --sha, decodes it and
prints it. Binary files are reported, not dumped.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := parseRepoArg(args[0])
			if err != nil {
				return err
			}

			if sha == "" && len(args) < 2 {
				return fmt.Errorf("either a path argument or --sha is required")
			}

			var (
				content  *string
				isBinary bool
				size     int
			)
			if sha != "" {
				data, _, err := opts.client.GetFileContentBySHA(cmd.Context(), owner, repo, sha)
				if err != nil {
					return reportError(cmd, err)
				}
				content, isBinary, size = data.Content, data.IsBinary, data.Size
			} else {
				data, _, err := opts.client.GetFileContent(cmd.Context(), owner, repo, args[1], ref)
				if err != nil {
					return reportError(cmd, err)
				}
				content, isBinary, size = data.Content, data.IsBinary, data.Size
			}

			if isBinary || content == nil {
				pterm.Info.Printfln("binary content (%d bytes), not shown", size)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), *content)
			return nil
		},
	}

	cmd.Flags().StringVarP(&ref, "ref", "r", "", "branch, tag or commit (defaults to the default branch)")
	cmd.Flags().StringVar(&sha, "sha", "", "fetch by blob SHA instead of path")
	return cmd
}
