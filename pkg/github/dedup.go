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

	"golang.org/x/sync/singleflight"
)

// 🚦 DedupClient coalesces identical concurrent fetches so a burst of
// requests for the same resource costs one upstream call. It is a
// convenience layer: the wrapped client and its cache are correct without
// it, they just issue duplicate HTTP calls on concurrent misses.
type DedupClient struct {
	client *Client
	group  singleflight.Group
}

// 🏭 NewDedupClient wraps a client with in-flight de-duplication.
func NewDedupClient(client *Client) *DedupClient {
	return &DedupClient{client: client}
}

// Unwrap returns the underlying client for operations that need no
// coalescing (cache invalidation, stats, rate-limit snapshots).
func (d *DedupClient) Unwrap() *Client {
	return d.client
}

type dedupResult[T any] struct {
	data T
	rl   RateLimit
}

func dedup[T any](d *DedupClient, key string, fetch func() (T, RateLimit, error)) (T, RateLimit, error) {
	v, err, _ := d.group.Do(key, func() (any, error) {
		data, rl, err := fetch()
		if err != nil {
			return dedupResult[T]{rl: rl}, err
		}
		return dedupResult[T]{data: data, rl: rl}, nil
	})
	res := v.(dedupResult[T])
	return res.data, res.rl, err
}

// 🔍 GetRepository coalesces concurrent metadata fetches per repository.
func (d *DedupClient) GetRepository(ctx context.Context, owner, repo string) (*Repository, RateLimit, error) {
	return dedup(d, repoKey(owner, repo), func() (*Repository, RateLimit, error) {
		return d.client.GetRepository(ctx, owner, repo)
	})
}

// 🌳 GetRepositoryFiles coalesces concurrent tree fetches per (repo, ref).
func (d *DedupClient) GetRepositoryFiles(ctx context.Context, owner, repo, ref string) (*RepositoryTree, RateLimit, error) {
	return dedup(d, treeKey(owner, repo, ref), func() (*RepositoryTree, RateLimit, error) {
		return d.client.GetRepositoryFiles(ctx, owner, repo, ref)
	})
}

// 📄 GetFileContent coalesces concurrent file fetches per (repo, path, ref).
func (d *DedupClient) GetFileContent(ctx context.Context, owner, repo, path, ref string) (*FileContent, RateLimit, error) {
	return dedup(d, fileKey(owner, repo, path, ref), func() (*FileContent, RateLimit, error) {
		return d.client.GetFileContent(ctx, owner, repo, path, ref)
	})
}

// 📄 GetFileContentBySHA coalesces concurrent blob fetches per SHA.
func (d *DedupClient) GetFileContentBySHA(ctx context.Context, owner, repo, sha string) (*FileContent, RateLimit, error) {
	return dedup(d, blobKey(owner, repo, sha), func() (*FileContent, RateLimit, error) {
		return d.client.GetFileContentBySHA(ctx, owner, repo, sha)
	})
}
