// Copyright 2023 Redpanda Data, Inc.
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

// Package utils contains the retry and error classification helpers used by
// the topology builder clients.
package utils

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Retry calls f until it succeeds, fails with a non-retryable error, the
// timeout elapses or ctx is done, waiting waitUnit between attempts.
func Retry(ctx context.Context, logger *zap.Logger, timeout, waitUnit time.Duration, f func() *RetryError) error {
	deadline := time.Now().Add(timeout)
	for attempt := 1; ; attempt++ {
		err := f()
		if err == nil {
			return nil
		}
		if !err.Retryable {
			return err.Err
		}
		if time.Now().After(deadline) {
			return &TimeoutError{Timeout: timeout, Attempts: attempt, Wrapped: err.Err}
		}
		logger.Debug("retrying", zap.Int("attempt", attempt), zap.Error(err.Err), zap.Duration("wait", waitUnit))

		sleeper := time.NewTimer(waitUnit)
		select {
		case <-ctx.Done():
			if !sleeper.Stop() {
				<-sleeper.C
			}
		case <-sleeper.C:
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// RetryKafka retries f while it fails with an error the Kafka protocol marks
// as retriable.
func RetryKafka(ctx context.Context, logger *zap.Logger, timeout, waitUnit time.Duration, f func() error) error {
	return Retry(ctx, logger, timeout, waitUnit, func() *RetryError {
		err := f()
		switch {
		case err == nil:
			return nil
		case IsRetriable(err):
			return RetryableError(err)
		default:
			return NonRetryableError(err)
		}
	})
}

// RetryError is the required return type of functions passed to Retry
type RetryError struct {
	Err       error
	Retryable bool
}

// RetryableError is a helper to create a RetryError that's retryable
func RetryableError(err error) *RetryError {
	if err == nil {
		return &RetryError{Err: fmt.Errorf("RetryableError was passed a nil error"), Retryable: false}
	}
	return &RetryError{Err: err, Retryable: true}
}

// NonRetryableError is a helper to create a RetryError that's _not_ retryable
func NonRetryableError(err error) *RetryError {
	if err == nil {
		return &RetryError{Err: fmt.Errorf("NonRetryableError was passed a nil error"), Retryable: false}
	}
	return &RetryError{Err: err, Retryable: false}
}

// TimeoutError is returned when Retry times out.
type TimeoutError struct {
	Timeout  time.Duration
	Attempts int
	Wrapped  error
}

func (err *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %v and %d attempts: %v", err.Timeout, err.Attempts, err.Wrapped)
}

func (err *TimeoutError) Unwrap() error {
	return err.Wrapped
}
