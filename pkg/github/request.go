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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const (
	acceptHeader     = "application/vnd.github+json"
	apiVersionHeader = "2022-11-28"
)

// 🌐 get performs one authenticated GET against the API, decodes the JSON
// body into out, and returns the rate-limit snapshot parsed from the
// response headers. Failures come back as typed *Error values; the
// snapshot slot is updated whether the call succeeded or not.
func (c *Client) get(ctx context.Context, endpoint string, out any, resource Resource) (RateLimit, error) {
	logger := zerolog.Ctx(ctx)

	url := endpoint
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = c.baseURL + endpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return c.LastRateLimit(), &Error{
			Kind:    ErrUnknown,
			Message: fmt.Sprintf("building request for %s: %v", endpoint, err),
			cause:   err,
		}
	}

	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersionHeader)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	logger.Debug().Str("url", url).Msg("github api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.LastRateLimit(), &Error{
			Kind:    ErrNetwork,
			Message: fmt.Sprintf("requesting %s: %v", endpoint, err),
			cause:   err,
		}
	}
	defer resp.Body.Close()

	rl := parseRateLimit(resp.Header)
	c.setRateLimit(rl)

	logger.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("ratelimit_remaining", rl.Remaining).
		Msg("github api response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return rl, classifyStatus(resp, rl, resource)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return rl, &Error{
			Kind:    ErrNetwork,
			Message: fmt.Sprintf("reading response from %s: %v", endpoint, err),
			cause:   err,
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return rl, &Error{
			Kind:    ErrUnknown,
			Message: fmt.Sprintf("decoding response from %s: %v", endpoint, err),
			cause:   err,
		}
	}

	return rl, nil
}

// 📊 parseRateLimit reads the four quota headers. Absent headers fall back
// to the conservative anonymous-access default rather than erroring.
func parseRateLimit(h http.Header) RateLimit {
	rl := RateLimit{Limit: 60, Remaining: 60}
	if v, err := strconv.Atoi(h.Get("x-ratelimit-limit")); err == nil {
		rl.Limit = v
	}
	if v, err := strconv.Atoi(h.Get("x-ratelimit-remaining")); err == nil {
		rl.Remaining = v
	}
	if v, err := strconv.ParseInt(h.Get("x-ratelimit-reset"), 10, 64); err == nil {
		rl.Reset = v
	}
	if v, err := strconv.Atoi(h.Get("x-ratelimit-used")); err == nil {
		rl.Used = v
	}
	return rl
}

// ⚖️ classifyStatus maps a non-2xx response onto the error taxonomy. A 403
// only counts as a rate limit when the quota is actually exhausted; any
// other 403 is some other authorization failure and falls through to the
// generic path.
func classifyStatus(resp *http.Response, rl RateLimit, resource Resource) *Error {
	var body apiError
	_ = json.NewDecoder(resp.Body).Decode(&body)
	message := body.Message
	if message == "" {
		message = resp.Status
	}

	switch {
	case resp.StatusCode == http.StatusForbidden && rl.Remaining == 0:
		snapshot := rl
		return &Error{
			Kind:       ErrRateLimit,
			Message:    fmt.Sprintf("rate limit exceeded, resets at %s", rl.ResetTime().Format("15:04:05 MST")),
			StatusCode: resp.StatusCode,
			RateLimit:  &snapshot,
		}
	case resp.StatusCode == http.StatusNotFound:
		if resource == "" {
			resource = ResourceGeneric
		}
		return &Error{
			Kind:       ErrNotFound,
			Message:    message,
			StatusCode: resp.StatusCode,
			Resource:   resource,
		}
	case resp.StatusCode == http.StatusUnauthorized:
		return &Error{
			Kind:       ErrAuth,
			Message:    message,
			StatusCode: resp.StatusCode,
		}
	case resp.StatusCode >= 500:
		return &Error{
			Kind:       ErrServer,
			Message:    message,
			StatusCode: resp.StatusCode,
		}
	default:
		return &Error{
			Kind:       ErrUnknown,
			Message:    message,
			StatusCode: resp.StatusCode,
		}
	}
}
