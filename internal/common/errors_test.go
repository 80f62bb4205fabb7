package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		userMessage string
		wantMessage string
	}{
		{
			name:        "with wrapped error",
			err:         errors.New("connection refused"),
			userMessage: "could not deliver report",
			wantMessage: "could not deliver report: connection refused",
		},
		{
			name:        "without wrapped error",
			err:         nil,
			userMessage: "invalid report reason",
			wantMessage: "invalid report reason",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUserError(tt.userMessage, tt.err)
			assert.Equal(t, tt.wantMessage, err.Error())

			var userErr *UserError
			require.True(t, errors.As(err, &userErr))
			assert.Equal(t, tt.userMessage, userErr.UserMessage)
		})
	}
}

func TestUserErrorUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("post: %w", ErrReportDelivery)
	err := NewUserError("could not deliver report", wrapped)

	assert.True(t, errors.Is(err, ErrReportDelivery))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "rate limit is retryable",
			err:  ErrRateLimit,
			want: true,
		},
		{
			name: "remote unavailable is retryable",
			err:  fmt.Errorf("analyze: %w", ErrRemoteUnavailable),
			want: true,
		},
		{
			name: "deadline exceeded is retryable",
			err:  context.DeadlineExceeded,
			want: true,
		},
		{
			name: "explicit retryable error",
			err:  &RetryableError{Err: errors.New("flaky"), Retryable: true},
			want: true,
		},
		{
			name: "explicit non-retryable error",
			err:  &RetryableError{Err: errors.New("bad request"), Retryable: false},
			want: false,
		},
		{
			name: "plain error is not retryable",
			err:  errors.New("boom"),
			want: false,
		},
		{
			name: "malformed url is not retryable",
			err:  ErrMalformedURL,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
