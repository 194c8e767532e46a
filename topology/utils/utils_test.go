// Copyright 2025 Redpanda Data, Inc.
//
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kerr"
	"go.uber.org/zap"
)

func TestRetry(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("succeeds after retries", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, logger, time.Second, time.Millisecond, func() *RetryError {
			calls++
			if calls < 3 {
				return RetryableError(errors.New("not yet"))
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non retryable", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, logger, time.Second, time.Millisecond, func() *RetryError {
			calls++
			return NonRetryableError(errors.New("boom"))
		})
		assert.EqualError(t, err, "boom")
		assert.Equal(t, 1, calls)
	})

	t.Run("times out", func(t *testing.T) {
		err := Retry(ctx, logger, 5*time.Millisecond, time.Millisecond, func() *RetryError {
			return RetryableError(errors.New("still failing"))
		})
		var timeout *TimeoutError
		require.True(t, errors.As(err, &timeout))
		assert.EqualError(t, timeout.Unwrap(), "still failing")
		assert.Greater(t, timeout.Attempts, 1)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := Retry(cctx, logger, time.Minute, 10*time.Millisecond, func() *RetryError {
			return RetryableError(errors.New("still failing"))
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetryKafka(t *testing.T) {
	calls := 0
	err := RetryKafka(context.Background(), zap.NewNop(), time.Second, time.Millisecond, func() error {
		calls++
		if calls == 1 {
			return kerr.LeaderNotAvailable
		}
		return kerr.TopicAlreadyExists
	})
	assert.ErrorIs(t, err, kerr.TopicAlreadyExists)
	assert.Equal(t, 2, calls)
}

func TestErrorPredicates(t *testing.T) {
	for _, tt := range []struct {
		name      string
		err       error
		notFound  bool
		exists    bool
		denied    bool
		retriable bool
	}{
		{name: "nil"},
		{name: "unknown topic", err: fmt.Errorf("describe: %w", kerr.UnknownTopicOrPartition), notFound: true, retriable: true},
		{name: "already exists", err: kerr.TopicAlreadyExists, exists: true},
		{name: "topic auth", err: kerr.TopicAuthorizationFailed, denied: true},
		{name: "leader", err: kerr.LeaderNotAvailable, retriable: true},
		{name: "http 404", err: &HTTPError{StatusCode: http.StatusNotFound}, notFound: true},
		{name: "http 403", err: &HTTPError{StatusCode: http.StatusForbidden}, denied: true},
		{name: "http 503", err: &HTTPError{StatusCode: http.StatusServiceUnavailable}, retriable: true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.exists, IsAlreadyExists(tt.err))
			assert.Equal(t, tt.denied, IsPermissionDenied(tt.err))
			assert.Equal(t, tt.retriable, IsRetriable(tt.err))
		})
	}
}

func TestHandleGracefulRemoval(t *testing.T) {
	logger := zap.NewNop()
	assert.NoError(t, HandleGracefulRemoval(logger, "topic", "orders", nil, "delete topic"))
	assert.NoError(t, HandleGracefulRemoval(logger, "topic", "orders", kerr.UnknownTopicOrPartition, "delete topic"))

	err := HandleGracefulRemoval(logger, "topic", "orders", kerr.TopicAuthorizationFailed, "delete topic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete topic")
	assert.ErrorIs(t, err, kerr.TopicAuthorizationFailed)
}
