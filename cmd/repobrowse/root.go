package main

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/repobrowse/pkg/config"
	"github.com/walteh/repobrowse/pkg/github"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	token      string
	baseURL    string
	noCache    bool
	debug      bool
)

// rootOpts carries the constructed client into each command.
type rootOpts struct {
	client *github.Client
}

// newRootCmd builds the repobrowse command tree
func newRootCmd() *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "repobrowse",
		Short: "Browse GitHub repository trees and files from the terminal",
		Long: `repobrowse fetches repository metadata, trees and file contents from the
GitHub REST API, with an in-memory TTL cache so repeated browsing of the
same repository stays cheap on API quota.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			cfg := &config.Config{}
			if configFile != "" {
				loaded, err := config.Load(cmd.Context(), configFile)
				if err != nil {
					return errors.Errorf("loading config: %w", err)
				}
				cfg = loaded
			}

			resolvedBase := baseURL
			if resolvedBase == "" {
				resolvedBase = cfg.BaseURL
			}

			tree, repository, file, blob := cfg.TTLs()
			cache := github.NewContentCacheWithTTLs(github.TTLConfig{
				Tree:       tree,
				Repository: repository,
				File:       file,
				Blob:       blob,
			})

			opts.client = github.New(github.Options{
				Token:        cfg.ResolveToken(token),
				BaseURL:      resolvedBase,
				Cache:        cache,
				DisableCache: noCache || cfg.NoCache,
			})
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (.yaml or .hcl)")
	cmd.PersistentFlags().StringVarP(&token, "token", "t", "", "GitHub access token (overrides config and GITHUB_TOKEN)")
	cmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (for GitHub Enterprise)")
	cmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "disable the response cache")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(newRepoCmd(opts))
	cmd.AddCommand(newTreeCmd(opts))
	cmd.AddCommand(newLsCmd(opts))
	cmd.AddCommand(newCatCmd(opts))
	cmd.AddCommand(newStatsCmd(opts))

	return cmd
}

// parseRepoArg splits an "owner/repo" argument.
func parseRepoArg(arg string) (owner, repo string, err error) {
	parts := strings.Split(arg, "/")
	if len(parts) != 2 {
		return "", "", errors.Errorf("invalid repository name: %s (want owner/repo)", arg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])
	if owner == "" || repo == "" {
		return "", "", errors.Errorf("invalid repository name: %s (want owner/repo)", arg)
	}
	return owner, repo, nil
}

// reportError prints the taxonomy's user-facing message, with a retry hint
// when the failure is transient.
func reportError(cmd *cobra.Command, err error) error {
	msg := github.UserMessage(err)
	if github.IsRetryable(err) {
		msg += " (retrying may help)"
	}
	cmd.PrintErrln(msg)
	return err
}
