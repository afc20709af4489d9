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
	stderrors "errors"
	"fmt"
	"net"
	"net/url"
)

// 🏷️ ErrorKind classifies an API failure.
type ErrorKind string

const (
	ErrRateLimit ErrorKind = "rate_limit"
	ErrNotFound  ErrorKind = "not_found"
	ErrAuth      ErrorKind = "auth"
	ErrNetwork   ErrorKind = "network"
	ErrServer    ErrorKind = "server"
	ErrUnknown   ErrorKind = "unknown"
)

// 🏷️ Resource discriminates what a not-found error refers to, so user
// messaging can be specific.
type Resource string

const (
	ResourceRepository Resource = "repository"
	ResourceFile       Resource = "file"
	ResourceBranch     Resource = "branch"
	ResourceGeneric    Resource = "resource"
)

// ⚠️ Error is the typed failure every client operation returns. Callers
// inspect it through errors.As or the package helpers; they never need the
// raw HTTP status.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int        // zero when no HTTP response was involved
	Resource   Resource   // set for not-found errors
	RateLimit  *RateLimit // set for rate-limit errors
	cause      error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("github: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("github: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// 🔁 IsRetryable reports whether an immediate retry could plausibly
// succeed. Only transient failure kinds qualify.
func (e *Error) IsRetryable() bool {
	return e.Kind == ErrNetwork || e.Kind == ErrServer
}

// 📝 UserMessage renders a message suitable for showing to an end user.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case ErrRateLimit:
		if e.RateLimit != nil {
			if minutes := e.RateLimit.MinutesUntilReset(); minutes > 0 {
				return fmt.Sprintf("GitHub API rate limit exceeded. Try again in %d minute(s).", minutes)
			}
		}
		return "GitHub API rate limit exceeded. Try again shortly."
	case ErrNotFound:
		switch e.Resource {
		case ResourceRepository:
			return "Repository not found. It may be private or may have been removed."
		case ResourceFile:
			return "File not found in this repository."
		case ResourceBranch:
			return "Branch or ref not found in this repository."
		default:
			return "The requested resource was not found."
		}
	case ErrAuth:
		return "GitHub authentication failed. Check your access token."
	case ErrNetwork:
		return "Could not reach GitHub. Check your connection and try again."
	case ErrServer:
		return "GitHub is having trouble right now. Try again in a moment."
	default:
		return "Something went wrong talking to GitHub."
	}
}

// 🔄 FromError normalizes any error into the taxonomy. Typed errors pass
// through untouched, transport-level failures become network errors, and
// everything else is unknown.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var ghErr *Error
	if stderrors.As(err, &ghErr) {
		return ghErr
	}

	var urlErr *url.Error
	var netErr net.Error
	if stderrors.As(err, &urlErr) || stderrors.As(err, &netErr) {
		return &Error{
			Kind:    ErrNetwork,
			Message: err.Error(),
			cause:   err,
		}
	}

	return &Error{
		Kind:    ErrUnknown,
		Message: err.Error(),
		cause:   err,
	}
}

// 🔍 Classify returns the kind of an opaque error value.
func Classify(err error) ErrorKind {
	if err == nil {
		return ""
	}
	return FromError(err).Kind
}

// 🔁 IsRetryable reports whether retrying an opaque error is sensible.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return FromError(err).IsRetryable()
}

// 📝 UserMessage returns the user-facing message for an opaque error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return FromError(err).UserMessage()
}
