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

package kclients

import (
	"context"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	burstPeriod  = 10.0
	minLimit     = rate.Limit(1)
	recoverAfter = 30 * time.Second
)

// rateLimiter paces admin requests. Brokers reporting a throttle halve the
// rate and block new requests until the throttle interval has passed; the
// configured rate is restored once no throttle was seen for recoverAfter.
type rateLimiter struct {
	mu           sync.Mutex
	limiter      *rate.Limiter
	initialLimit rate.Limit
	initialBurst int
	blockedUntil time.Time
	lastThrottle time.Time
	now          func() time.Time
	logger       *zap.Logger
}

var _ kgo.HookBrokerThrottle = (*rateLimiter)(nil)

func newRateLimiter(perSecond int, logger *zap.Logger) *rateLimiter {
	limit, burst := rate.Inf, 0
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
		burst = max(1, int(float64(perSecond)/burstPeriod))
	}
	return &rateLimiter{
		limiter:      rate.NewLimiter(limit, burst),
		initialLimit: limit,
		initialBurst: burst,
		now:          time.Now,
		logger:       logger,
	}
}

// OnBrokerThrottle implements kgo.HookBrokerThrottle.
func (r *rateLimiter) OnBrokerThrottle(meta kgo.BrokerMetadata, throttleInterval time.Duration, _ bool) {
	if throttleInterval <= 0 || r.initialLimit == rate.Inf {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.lastThrottle = now
	if until := now.Add(throttleInterval); until.After(r.blockedUntil) {
		r.blockedUntil = until
	}
	limit := r.limiter.Limit() / 2
	if limit < minLimit {
		limit = minLimit
	}
	r.limiter.SetLimit(limit)
	r.limiter.SetBurst(max(1, r.limiter.Burst()/2))
	r.logger.Warn("broker throttled admin requests",
		zap.Int32("broker", meta.NodeID),
		zap.Duration("throttle", throttleInterval),
		zap.Float64("limit", float64(limit)),
	)
}

// Wait blocks until a request may be issued or ctx is done.
func (r *rateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	now := r.now()
	if r.limiter.Limit() < r.initialLimit && !r.lastThrottle.IsZero() && now.Sub(r.lastThrottle) > recoverAfter {
		r.logger.Debug("restoring admin request rate", zap.Float64("limit", float64(r.initialLimit)))
		r.limiter.SetLimit(r.initialLimit)
		r.limiter.SetBurst(r.initialBurst)
	}
	wait := r.blockedUntil.Sub(now)
	r.mu.Unlock()

	if wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return r.limiter.Wait(ctx)
}
