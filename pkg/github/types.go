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
	"time"
)

// 📊 RateLimit is an immutable snapshot of the API quota headers from the
// most recent response. Reset is unix seconds.
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     int64
	Used      int
}

// 🕰️ ResetTime returns the quota reset instant.
func (r RateLimit) ResetTime() time.Time {
	return time.Unix(r.Reset, 0)
}

// ⏳ MinutesUntilReset returns whole minutes until the quota resets,
// rounded up, never negative.
func (r RateLimit) MinutesUntilReset() int {
	until := time.Until(r.ResetTime())
	if until <= 0 {
		return 0
	}
	minutes := int((until + time.Minute - 1) / time.Minute)
	return minutes
}

// 🏷️ ItemType distinguishes tree entries.
type ItemType string

const (
	ItemTypeFile      ItemType = "file"
	ItemTypeDirectory ItemType = "directory"
)

// 📄 TreeItem is one entry of a flattened repository tree. Name is the last
// path segment; Size is zero for directories.
type TreeItem struct {
	Path string
	Name string
	Type ItemType
	SHA  string
	Size int
	URL  string
}

// 🌳 RepositoryTree is a flattened recursive listing, partitioned into
// directories and files. All preserves upstream order, directories first.
// Truncated means the upstream listing was cut off past a size limit and
// must never be treated as complete.
type RepositoryTree struct {
	SHA         string
	Truncated   bool
	Files       []TreeItem
	Directories []TreeItem
	All         []TreeItem
}

// 📦 Repository is the subset of repository metadata the browser needs.
type Repository struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
	Private       bool   `json:"private"`
	Fork          bool   `json:"fork"`
	Stargazers    int    `json:"stargazers_count"`
	Forks         int    `json:"forks_count"`
	Language      string `json:"language"`
	HTMLURL       string `json:"html_url"`
}

// 📃 FileContent is a fetched file. Content is the decoded text, nil when
// the payload is binary or could not be decoded; RawContent always keeps
// the encoded payload as received so callers have a fallback.
//
// Invariant: IsBinary implies Content == nil.
type FileContent struct {
	Name       string
	Path       string
	SHA        string
	Size       int
	Encoding   string
	Content    *string
	IsBinary   bool
	RawContent string
}

// 🧾 TreeResponse is the wire shape of the git tree endpoint, exposed for
// callers that want the unflattened listing.
type TreeResponse struct {
	SHA       string      `json:"sha"`
	Truncated bool        `json:"truncated"`
	Tree      []TreeEntry `json:"tree"`
}

// 🧾 TreeEntry is one raw entry of a git tree listing.
type TreeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
	Size int    `json:"size"`
	URL  string `json:"url"`
}

// 🧾 contentResponse is the wire shape of the contents and blob endpoints.
// The blob endpoint carries no name or path.
type contentResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

// 🧾 apiError is the JSON error body GitHub returns on non-2xx status.
type apiError struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}
