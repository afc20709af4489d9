package github

import (
	stderrors "errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTaxonomy(t *testing.T) {
	t.Run("test_retryability_per_kind", func(t *testing.T) {
		tests := []struct {
			kind      ErrorKind
			retryable bool
		}{
			{ErrRateLimit, false},
			{ErrNotFound, false},
			{ErrAuth, false},
			{ErrNetwork, true},
			{ErrServer, true},
			{ErrUnknown, false},
		}

		for _, tt := range tests {
			t.Run(string(tt.kind), func(t *testing.T) {
				err := &Error{Kind: tt.kind, Message: "x"}
				assert.Equal(t, tt.retryable, err.IsRetryable(), "retryability should match kind")
			})
		}
	})

	t.Run("test_rate_limit_user_message_includes_minutes", func(t *testing.T) {
		rl := &RateLimit{Limit: 60, Remaining: 0, Reset: time.Now().Add(10 * time.Minute).Unix()}
		err := &Error{Kind: ErrRateLimit, Message: "rate limit exceeded", RateLimit: rl}

		assert.Contains(t, err.UserMessage(), "minute", "message should mention the wait")
		assert.Greater(t, rl.MinutesUntilReset(), 0, "reset should be in the future")
	})

	t.Run("test_rate_limit_message_after_reset", func(t *testing.T) {
		rl := &RateLimit{Limit: 60, Remaining: 0, Reset: time.Now().Add(-time.Minute).Unix()}
		assert.Equal(t, 0, rl.MinutesUntilReset(), "a past reset should report zero minutes")

		err := &Error{Kind: ErrRateLimit, RateLimit: rl}
		assert.Contains(t, err.UserMessage(), "shortly", "past reset falls back to the generic wording")
	})

	t.Run("test_not_found_message_per_resource", func(t *testing.T) {
		tests := []struct {
			resource Resource
			contains string
		}{
			{ResourceRepository, "Repository"},
			{ResourceFile, "File"},
			{ResourceBranch, "Branch"},
			{ResourceGeneric, "resource"},
		}

		for _, tt := range tests {
			t.Run(string(tt.resource), func(t *testing.T) {
				err := &Error{Kind: ErrNotFound, Resource: tt.resource}
				assert.Contains(t, err.UserMessage(), tt.contains, "message should be tailored to the resource")
			})
		}
	})

	t.Run("test_from_error_passthrough", func(t *testing.T) {
		typed := &Error{Kind: ErrAuth, Message: "bad credentials"}
		wrapped := fmt.Errorf("calling api: %w", typed)

		got := FromError(wrapped)
		assert.Equal(t, ErrAuth, got.Kind, "typed errors pass through a wrap")
	})

	t.Run("test_from_error_network", func(t *testing.T) {
		netErr := &url.Error{Op: "Get", URL: "https://api.github.com", Err: stderrors.New("connection refused")}
		got := FromError(netErr)
		assert.Equal(t, ErrNetwork, got.Kind, "url.Error should classify as network")
		assert.True(t, got.IsRetryable(), "network errors are retryable")
	})

	t.Run("test_from_error_unknown", func(t *testing.T) {
		got := FromError(stderrors.New("something odd"))
		assert.Equal(t, ErrUnknown, got.Kind, "arbitrary errors classify as unknown")
		assert.False(t, got.IsRetryable(), "unknown errors are not retryable")
	})

	t.Run("test_opaque_helpers", func(t *testing.T) {
		var err error = &Error{Kind: ErrServer, Message: "boom", StatusCode: 502}

		assert.Equal(t, ErrServer, Classify(err), "Classify should see through the interface")
		assert.True(t, IsRetryable(err), "IsRetryable should see through the interface")
		assert.NotEmpty(t, UserMessage(err), "UserMessage should produce text")

		assert.Equal(t, ErrorKind(""), Classify(nil), "nil error has no kind")
		assert.False(t, IsRetryable(nil), "nil error is not retryable")
	})

	t.Run("test_errors_as", func(t *testing.T) {
		var err error = fmt.Errorf("wrap: %w", &Error{Kind: ErrNotFound, Resource: ResourceFile})

		var ghErr *Error
		require.True(t, stderrors.As(err, &ghErr), "errors.As should find the typed error")
		assert.Equal(t, ErrNotFound, ghErr.Kind, "kind should survive wrapping")
	})

	t.Run("test_error_string_includes_status", func(t *testing.T) {
		err := &Error{Kind: ErrUnknown, Message: "nope", StatusCode: 422}
		assert.Contains(t, err.Error(), "422", "status code should appear in the developer message")
	})
}
