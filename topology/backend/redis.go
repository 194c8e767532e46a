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

package backend

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key the state is stored under when none is
// configured.
const DefaultRedisKey = "topology-builder.cluster-state"

// redisKV is the subset of the redis client the backend uses.
type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// RedisBackend stores the state as a single value in Redis.
type RedisBackend struct {
	client redisKV
	key    string
}

var _ Backend = (*RedisBackend)(nil)

// NewRedisBackend connects to the Redis server at host:port.
func NewRedisBackend(host string, port int, key string) (*RedisBackend, error) {
	if host == "" {
		return nil, errors.New("redis.host is required by the redis state backend")
	}
	if port == 0 {
		port = 6379
	}
	client := redis.NewClient(&redis.Options{Addr: net.JoinHostPort(host, strconv.Itoa(port))})
	return newRedisBackend(client, key), nil
}

func newRedisBackend(client redisKV, key string) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{client: client, key: key}
}

// Load implements Backend.
func (b *RedisBackend) Load(ctx context.Context) (*State, error) {
	raw, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewState(nil, nil), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load cluster state from redis key %s", b.key)
	}
	state, err := decode(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "redis key %s", b.key)
	}
	return state, nil
}

// Save implements Backend.
func (b *RedisBackend) Save(ctx context.Context, state *State) error {
	raw, err := encode(state)
	if err != nil {
		return err
	}
	if err := b.client.Set(ctx, b.key, raw, 0).Err(); err != nil {
		return errors.Wrapf(err, "unable to save cluster state to redis key %s", b.key)
	}
	return nil
}

// Close implements Backend.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
