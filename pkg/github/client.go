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
	"net/http"
	"os"
	"sync"
)

// 🌐 DefaultBaseURL is the public GitHub REST API root.
const DefaultBaseURL = "https://api.github.com"

// 🔧 Options configures a Client. The zero value is usable: anonymous
// access against the public API with the process-wide cache.
type Options struct {
	// Token authenticates requests. An explicit value always wins; when
	// empty the GITHUB_TOKEN environment variable is consulted once, at
	// construction. No Authorization header is sent when neither exists.
	Token string

	// BaseURL overrides the API root, for tests or enterprise hosts.
	BaseURL string

	// HTTPClient overrides the transport. Defaults to http.DefaultClient.
	// The client imposes no timeout of its own; bound latency with the
	// request context or a transport timeout.
	HTTPClient *http.Client

	// Cache injects a cache instance. When nil the process-wide default
	// is used, unless DisableCache is set.
	Cache        *ContentCache
	DisableCache bool

	// Detector overrides binary-detection thresholds.
	Detector *BinaryDetector
}

// 🎯 Client talks to the GitHub REST API: repository metadata, recursive
// tree listings, contents by path, and blobs by SHA. Every operation
// returns the data alongside the rate-limit snapshot parsed from the
// response, or a typed *Error.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	cache      *ContentCache
	detector   *BinaryDetector

	mu        sync.Mutex
	rateLimit RateLimit
}

// 🏭 New creates a client. Configuration is resolved once here: explicit
// option > environment > none.
func New(opts Options) *Client {
	token := opts.Token
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var store *ContentCache
	if !opts.DisableCache {
		store = opts.Cache
		if store == nil {
			store = DefaultCache()
		}
	}

	detector := opts.Detector
	if detector == nil {
		detector = NewBinaryDetector()
	}

	return &Client{
		token:      token,
		baseURL:    baseURL,
		httpClient: httpClient,
		cache:      store,
		detector:   detector,
	}
}

// 📊 LastRateLimit returns the most recent rate-limit snapshot, updated on
// every HTTP exchange whether it succeeded or failed. Before any exchange
// it reports the anonymous-access default.
func (c *Client) LastRateLimit() RateLimit {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rateLimit == (RateLimit{}) {
		return RateLimit{Limit: 60, Remaining: 60}
	}
	return c.rateLimit
}

func (c *Client) setRateLimit(rl RateLimit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rateLimit = rl
}

// 🗑️ InvalidateCache drops every cached entry for one repository.
func (c *Client) InvalidateCache(owner, repo string) {
	if c.cache != nil {
		c.cache.InvalidateRepository(owner, repo)
	}
}

// 🧹 InvalidateAllCache drops every cached entry.
func (c *Client) InvalidateAllCache() {
	if c.cache != nil {
		c.cache.InvalidateAll()
	}
}

// 📊 CacheStats reports live cache entry counts, or zeros when caching is
// disabled. Display only.
func (c *Client) CacheStats() CacheStats {
	if c.cache == nil {
		return CacheStats{}
	}
	return c.cache.Stats()
}
