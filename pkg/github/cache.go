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
	"fmt"
	"sync"
	"time"

	"github.com/walteh/repobrowse/pkg/cache"
)

// 🕰️ Default TTLs per key space. Path-addressed content can change when a
// ref moves, so it is cached briefly; a blob's SHA is a hash of its bytes,
// so SHA-addressed content is immutable and can be cached for a long time.
const (
	DefaultTreeTTL       = 30 * time.Minute
	DefaultRepositoryTTL = 15 * time.Minute
	DefaultFileTTL       = 5 * time.Minute
	DefaultBlobTTL       = 24 * time.Hour
)

// 🔧 TTLConfig overrides the per-space TTLs. Zero fields keep the default.
type TTLConfig struct {
	Tree       time.Duration
	Repository time.Duration
	File       time.Duration
	Blob       time.Duration
}

func (c TTLConfig) withDefaults() TTLConfig {
	if c.Tree == 0 {
		c.Tree = DefaultTreeTTL
	}
	if c.Repository == 0 {
		c.Repository = DefaultRepositoryTTL
	}
	if c.File == 0 {
		c.File = DefaultFileTTL
	}
	if c.Blob == 0 {
		c.Blob = DefaultBlobTTL
	}
	return c
}

// 📊 CacheStats is a live count of entries per space. Display only.
type CacheStats struct {
	Trees        int
	Repositories int
	Files        int
	Blobs        int
}

// 🗄️ ContentCache holds four independent TTL key spaces for GitHub
// responses. The one cross-space coupling: storing a file by path also
// stores it by blob SHA, so content already seen via a path lookup is a
// SHA-addressed hit without another round trip.
type ContentCache struct {
	trees *cache.Store[*RepositoryTree]
	repos *cache.Store[*Repository]
	files *cache.Store[*FileContent]
	blobs *cache.Store[*FileContent]
	ttls  TTLConfig
}

// 🏭 NewContentCache creates an empty cache with default TTLs.
func NewContentCache() *ContentCache {
	return NewContentCacheWithTTLs(TTLConfig{})
}

// 🏭 NewContentCacheWithTTLs creates an empty cache with TTL overrides.
func NewContentCacheWithTTLs(ttls TTLConfig) *ContentCache {
	return &ContentCache{
		trees: cache.NewStore[*RepositoryTree](),
		repos: cache.NewStore[*Repository](),
		files: cache.NewStore[*FileContent](),
		blobs: cache.NewStore[*FileContent](),
		ttls:  ttls.withDefaults(),
	}
}

// 🕰️ SetClock overrides every space's clock. Test hook only.
func (c *ContentCache) SetClock(now func() time.Time) {
	c.trees.SetClock(now)
	c.repos.SetClock(now)
	c.files.SetClock(now)
	c.blobs.SetClock(now)
}

// Key formats. "@" cannot appear in an owner or repository name, so
// "owner/repo@" is an exact segment boundary: invalidating one repository
// can never touch another whose name merely shares a substring.

func repoKey(owner, repo string) string {
	return fmt.Sprintf("%s/%s", owner, repo)
}

func treeKey(owner, repo, ref string) string {
	if ref == "" {
		ref = "default"
	}
	return fmt.Sprintf("%s/%s@tree:%s", owner, repo, ref)
}

func fileKey(owner, repo, path, ref string) string {
	if ref == "" {
		ref = "default"
	}
	return fmt.Sprintf("%s/%s@file:%s:%s", owner, repo, ref, path)
}

func blobKey(owner, repo, sha string) string {
	return fmt.Sprintf("%s/%s@blob:%s", owner, repo, sha)
}

// 🔍 GetRepository returns cached repository metadata, or nil on miss.
func (c *ContentCache) GetRepository(owner, repo string) *Repository {
	data, ok := c.repos.Get(repoKey(owner, repo))
	if !ok {
		return nil
	}
	return data
}

// 📝 SetRepository caches repository metadata.
func (c *ContentCache) SetRepository(owner, repo string, data *Repository) {
	c.repos.Set(repoKey(owner, repo), data, c.ttls.Repository)
}

// 🔍 GetTree returns a cached flattened tree, or nil on miss.
func (c *ContentCache) GetTree(owner, repo, ref string) *RepositoryTree {
	data, ok := c.trees.Get(treeKey(owner, repo, ref))
	if !ok {
		return nil
	}
	return data
}

// 📝 SetTree caches a flattened tree.
func (c *ContentCache) SetTree(owner, repo, ref string, data *RepositoryTree) {
	c.trees.Set(treeKey(owner, repo, ref), data, c.ttls.Tree)
}

// 🔍 GetFileContent returns cached path-addressed content, or nil on miss.
func (c *ContentCache) GetFileContent(owner, repo, path, ref string) *FileContent {
	data, ok := c.files.Get(fileKey(owner, repo, path, ref))
	if !ok {
		return nil
	}
	return data
}

// 📝 SetFileContent caches path-addressed content. When the content carries
// a SHA it is also written to the blob space under the blob TTL.
func (c *ContentCache) SetFileContent(owner, repo, path, ref string, data *FileContent) {
	c.files.Set(fileKey(owner, repo, path, ref), data, c.ttls.File)
	if data != nil && data.SHA != "" {
		c.blobs.Set(blobKey(owner, repo, data.SHA), data, c.ttls.Blob)
	}
}

// 🔍 GetFileContentBySHA returns cached SHA-addressed content, or nil.
func (c *ContentCache) GetFileContentBySHA(owner, repo, sha string) *FileContent {
	data, ok := c.blobs.Get(blobKey(owner, repo, sha))
	if !ok {
		return nil
	}
	return data
}

// 📝 SetFileContentBySHA caches SHA-addressed content.
func (c *ContentCache) SetFileContentBySHA(owner, repo, sha string, data *FileContent) {
	c.blobs.Set(blobKey(owner, repo, sha), data, c.ttls.Blob)
}

// 🗑️ InvalidateRepository removes every entry in every space belonging to
// owner/repo, leaving all other repositories untouched.
func (c *ContentCache) InvalidateRepository(owner, repo string) {
	prefix := repoKey(owner, repo) + "@"
	c.trees.DeletePrefix(prefix)
	c.files.DeletePrefix(prefix)
	c.blobs.DeletePrefix(prefix)
	c.repos.Delete(repoKey(owner, repo))
}

// 🧹 InvalidateAll clears every space.
func (c *ContentCache) InvalidateAll() {
	c.trees.Clear()
	c.repos.Clear()
	c.files.Clear()
	c.blobs.Clear()
}

// 📊 Stats reports live entry counts per space.
func (c *ContentCache) Stats() CacheStats {
	return CacheStats{
		Trees:        c.trees.Len(),
		Repositories: c.repos.Len(),
		Files:        c.files.Len(),
		Blobs:        c.blobs.Len(),
	}
}

var (
	defaultCacheMu sync.Mutex
	defaultCache   *ContentCache
)

// 🌐 DefaultCache returns the process-wide cache, creating it on first
// use. Library code should prefer injecting a cache via Options; this
// accessor exists so short-lived callers can share one without plumbing.
func DefaultCache() *ContentCache {
	defaultCacheMu.Lock()
	defer defaultCacheMu.Unlock()
	if defaultCache == nil {
		defaultCache = NewContentCache()
	}
	return defaultCache
}

// 🧹 ResetDefaultCache discards the process-wide cache. Test isolation
// only; production code paths should never call this.
func ResetDefaultCache() {
	defaultCacheMu.Lock()
	defer defaultCacheMu.Unlock()
	defaultCache = nil
}
