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
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// 📄 GetFileContent fetches a file by path, decoding and classifying its
// payload. Results are cached by (repo, path, ref); the store also
// populates the SHA-addressed space so later blob lookups hit.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path, ref string) (*FileContent, RateLimit, error) {
	path = strings.TrimLeft(path, "/")

	if c.cache != nil {
		if data := c.cache.GetFileContent(owner, repo, path, ref); data != nil {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("file cache hit")
			return data, c.LastRateLimit(), nil
		}
	}

	endpoint := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, escapePath(path))
	if ref != "" {
		endpoint += "?ref=" + url.QueryEscape(ref)
	}

	var raw contentResponse
	rl, err := c.get(ctx, endpoint, &raw, ResourceFile)
	if err != nil {
		return nil, rl, err
	}

	data := c.decodeContent(raw)
	if c.cache != nil {
		c.cache.SetFileContent(owner, repo, path, ref, data)
	}
	return data, rl, nil
}

// 📄 GetFileContentBySHA fetches a blob by its SHA. The blob endpoint
// carries no path information, so Name and Path are empty. Blob content is
// immutable, so it sits in the longest-lived cache space.
func (c *Client) GetFileContentBySHA(ctx context.Context, owner, repo, sha string) (*FileContent, RateLimit, error) {
	if c.cache != nil {
		if data := c.cache.GetFileContentBySHA(owner, repo, sha); data != nil {
			zerolog.Ctx(ctx).Debug().Str("sha", sha).Msg("blob cache hit")
			return data, c.LastRateLimit(), nil
		}
	}

	var raw contentResponse
	rl, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/git/blobs/%s", owner, repo, sha), &raw, ResourceFile)
	if err != nil {
		return nil, rl, err
	}

	// The blob endpoint reports sha/size/content/encoding only.
	raw.Name = ""
	raw.Path = ""
	if raw.SHA == "" {
		raw.SHA = sha
	}

	data := c.decodeContent(raw)
	if c.cache != nil {
		c.cache.SetFileContentBySHA(owner, repo, data.SHA, data)
	}
	return data, rl, nil
}

// 📄 GetRawFileContent is a convenience wrapper returning just the decoded
// text, nil when the file is binary.
func (c *Client) GetRawFileContent(ctx context.Context, owner, repo, path, ref string) (*string, RateLimit, error) {
	data, rl, err := c.GetFileContent(ctx, owner, repo, path, ref)
	if err != nil {
		return nil, rl, err
	}
	return data.Content, rl, nil
}

// decodeContent classifies and decodes a contents/blob payload. Decoding
// never fails out to the caller: an undecodable payload is classified
// binary with the raw payload preserved.
func (c *Client) decodeContent(raw contentResponse) *FileContent {
	data := &FileContent{
		Name:       raw.Name,
		Path:       raw.Path,
		SHA:        raw.SHA,
		Size:       raw.Size,
		Encoding:   raw.Encoding,
		RawContent: raw.Content,
	}

	name := raw.Name
	if name == "" {
		name = raw.Path
	}

	data.Content, data.IsBinary = c.detector.Decode(name, raw.Content)
	return data
}

// escapePath escapes each path segment for use in a URL while keeping the
// separators intact.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
