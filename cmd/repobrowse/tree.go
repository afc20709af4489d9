package main

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/repobrowse/pkg/github"
)

// newTreeCmd renders the flattened repository tree
func newTreeCmd(opts *rootOpts) *cobra.Command {
	var (
		ref   string
		globs []string
	)

	cmd := &cobra.Command{
		Use:   "tree <owner/repo>",
		Short: "Render the repository file tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := parseRepoArg(args[0])
			if err != nil {
				return err
			}

			var items []github.TreeItem
			var truncated bool
			if len(globs) > 0 {
				files, _, err := opts.client.ListFiles(cmd.Context(), owner, repo, ref, globs...)
				if err != nil {
					return reportError(cmd, err)
				}
				items = files
			} else {
				tree, _, err := opts.client.GetRepositoryFiles(cmd.Context(), owner, repo, ref)
				if err != nil {
					return reportError(cmd, err)
				}
				items = tree.All
				truncated = tree.Truncated
			}

			root := buildTreeNode(args[0], items)
			if err := pterm.DefaultTree.WithRoot(root).Render(); err != nil {
				return err
			}
			if truncated {
				pterm.Warning.Println("listing truncated by GitHub; large repository shown incompletely")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&ref, "ref", "r", "", "branch, tag or commit (defaults to the default branch)")
	cmd.Flags().StringSliceVarP(&globs, "glob", "g", nil, "only show files matching these doublestar patterns")
	return cmd
}

// treeNode is a mutable intermediate shape; pterm.TreeNode embeds children
// by value, so the hierarchy is assembled here first and converted once.
type treeNode struct {
	label    string
	children []*treeNode
}

// buildTreeNode folds flat paths into pterm's nested tree shape.
func buildTreeNode(rootLabel string, items []github.TreeItem) pterm.TreeNode {
	root := &treeNode{label: rootLabel}
	index := map[string]*treeNode{"": root}

	for _, item := range items {
		parent := ""
		if i := strings.LastIndex(item.Path, "/"); i >= 0 {
			parent = item.Path[:i]
		}

		label := item.Name
		parentNode, ok := index[parent]
		if !ok {
			// Glob filtering can orphan a file from its directory chain;
			// attach it to the root with its full path instead.
			parentNode = root
			label = item.Path
		}

		n := &treeNode{label: label}
		if item.Type == github.ItemTypeDirectory {
			n.label = pterm.Cyan(label + "/")
			index[item.Path] = n
		}
		parentNode.children = append(parentNode.children, n)
	}

	return convertTreeNode(root)
}

func convertTreeNode(n *treeNode) pterm.TreeNode {
	out := pterm.TreeNode{Text: n.label}
	for _, child := range n.children {
		out.Children = append(out.Children, convertTreeNode(child))
	}
	return out
}
