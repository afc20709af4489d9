// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 GetRepository fetches repository metadata. A cache hit returns the
// last-known rate-limit snapshot since no HTTP call was made.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, RateLimit, error) {
	if c.cache != nil {
		if data := c.cache.GetRepository(owner, repo); data != nil {
			zerolog.Ctx(ctx).Debug().Str("repo", owner+"/"+repo).Msg("repository cache hit")
			return data, c.LastRateLimit(), nil
		}
	}

	var data Repository
	rl, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s", owner, repo), &data, ResourceRepository)
	if err != nil {
		return nil, rl, err
	}

	if c.cache != nil {
		c.cache.SetRepository(owner, repo, &data)
	}
	return &data, rl, nil
}

// 🌳 GetTree fetches the raw git tree at ref. When ref is empty the
// repository's default branch is resolved first via GetRepository (itself
// cached). Not independently cached; GetRepositoryFiles caches the
// flattened result.
func (c *Client) GetTree(ctx context.Context, owner, repo, ref string, recursive bool) (*TreeResponse, RateLimit, error) {
	if ref == "" {
		repoData, rl, err := c.GetRepository(ctx, owner, repo)
		if err != nil {
			return nil, rl, errors.Errorf("resolving default branch: %w", err)
		}
		ref = repoData.DefaultBranch
	}

	endpoint := fmt.Sprintf("/repos/%s/%s/git/trees/%s", owner, repo, ref)
	if recursive {
		endpoint += "?recursive=1"
	}

	var data TreeResponse
	rl, err := c.get(ctx, endpoint, &data, ResourceBranch)
	if err != nil {
		return nil, rl, err
	}
	return &data, rl, nil
}

// 🌳 GetRepositoryFiles fetches and flattens the recursive tree at ref:
// blobs become files, trees become directories, All keeps upstream order
// with directories first. The flattened result is cached per (repo, ref).
func (c *Client) GetRepositoryFiles(ctx context.Context, owner, repo, ref string) (*RepositoryTree, RateLimit, error) {
	if c.cache != nil {
		if data := c.cache.GetTree(owner, repo, ref); data != nil {
			zerolog.Ctx(ctx).Debug().Str("repo", owner+"/"+repo).Str("ref", ref).Msg("tree cache hit")
			return data, c.LastRateLimit(), nil
		}
	}

	raw, rl, err := c.GetTree(ctx, owner, repo, ref, true)
	if err != nil {
		return nil, rl, err
	}

	tree := flattenTree(raw)
	if tree.Truncated {
		zerolog.Ctx(ctx).Warn().
			Str("repo", owner+"/"+repo).
			Str("ref", ref).
			Msg("tree listing truncated by upstream; listing is incomplete")
	}

	if c.cache != nil {
		c.cache.SetTree(owner, repo, ref, tree)
	}
	return tree, rl, nil
}

// 📂 GetDirectoryContents returns the direct children of path within the
// flattened tree. The root is path "". Derived from GetRepositoryFiles and
// not independently cached.
func (c *Client) GetDirectoryContents(ctx context.Context, owner, repo, dir, ref string) ([]TreeItem, RateLimit, error) {
	tree, rl, err := c.GetRepositoryFiles(ctx, owner, repo, ref)
	if err != nil {
		return nil, rl, err
	}

	dir = strings.Trim(dir, "/")

	var children []TreeItem
	for _, item := range tree.All {
		if isDirectChild(item.Path, dir) {
			children = append(children, item)
		}
	}
	return children, rl, nil
}

// 📂 ListFiles returns the tree's files whose paths match any of the given
// doublestar patterns. With no patterns every file is returned.
func (c *Client) ListFiles(ctx context.Context, owner, repo, ref string, patterns ...string) ([]TreeItem, RateLimit, error) {
	tree, rl, err := c.GetRepositoryFiles(ctx, owner, repo, ref)
	if err != nil {
		return nil, rl, err
	}

	if len(patterns) == 0 {
		return tree.Files, rl, nil
	}

	var matched []TreeItem
	for _, item := range tree.Files {
		for _, pattern := range patterns {
			ok, err := doublestar.Match(pattern, item.Path)
			if err != nil {
				return nil, rl, errors.Errorf("matching pattern %q: %w", pattern, err)
			}
			if ok {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched, rl, nil
}

// flattenTree partitions raw tree entries into files and directories,
// deriving each item's name from its final path segment.
func flattenTree(raw *TreeResponse) *RepositoryTree {
	tree := &RepositoryTree{
		SHA:       raw.SHA,
		Truncated: raw.Truncated,
	}

	for _, entry := range raw.Tree {
		item := TreeItem{
			Path: entry.Path,
			Name: baseName(entry.Path),
			SHA:  entry.SHA,
			URL:  entry.URL,
		}
		switch entry.Type {
		case "blob":
			item.Type = ItemTypeFile
			item.Size = entry.Size
			tree.Files = append(tree.Files, item)
		case "tree":
			item.Type = ItemTypeDirectory
			tree.Directories = append(tree.Directories, item)
		}
	}

	tree.All = make([]TreeItem, 0, len(tree.Directories)+len(tree.Files))
	tree.All = append(tree.All, tree.Directories...)
	tree.All = append(tree.All, tree.Files...)
	return tree
}

func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// isDirectChild reports whether path sits immediately under dir. For the
// root that means no separator at all; otherwise the path must extend dir
// by exactly one segment.
func isDirectChild(path, dir string) bool {
	if dir == "" {
		return !strings.Contains(path, "/")
	}
	prefix := dir + "/"
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return !strings.Contains(path[len(prefix):], "/")
}
