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
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/redis/go-redis/v9"
	"github.com/redpanda-data/topology-builder/topology/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() *State {
	return NewState(
		models.NewACLSet(
			models.NewACLEntry("User:producer", models.ResourceTypeTopic, "ctx.proj.orders", models.OperationWrite),
			models.NewACLEntry("User:producer", models.ResourceTypeTopic, "ctx.proj.orders", models.OperationDescribe),
			models.NewACLEntry("User:consumer", models.ResourceTypeGroup, "*", models.OperationRead),
		),
		models.NewRoleBindingSet(models.RoleBinding{
			Principal: "User:owner", Role: models.RoleResourceOwner, Scope: "abc",
			ResourceType: models.ResourceTypeTopic, ResourceName: "ctx.proj", PatternType: models.PatternTypePrefixed,
		}),
	)
}

type memRedis struct {
	data   map[string]string
	closed bool
}

func (m *memRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memRedis) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (m *memRedis) Close() error {
	m.closed = true
	return nil
}

type memS3 struct {
	objects map[string][]byte
}

func (m *memS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	raw, ok := m.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "The specified key does not exist.", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(raw))}, nil
}

func (m *memS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	raw, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.objects[*in.Bucket+"/"+*in.Key] = raw
	return &s3.PutObjectOutput{}, nil
}

func TestBackends_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backends := map[string]Backend{
		"file":  NewFileBackend(filepath.Join(t.TempDir(), DefaultStateFile)),
		"redis": newRedisBackend(&memRedis{data: map[string]string{}}, ""),
		"s3":    newS3Backend(&memS3{objects: map[string][]byte{}}, "bucket", ""),
	}
	for name, b := range backends {
		t.Run(name, func(t *testing.T) {
			empty, err := b.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, empty.ACLs)
			assert.Empty(t, empty.RoleBindings)

			want := sampleState()
			require.NoError(t, b.Save(ctx, want))
			got, err := b.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.True(t, want.ACLSet().Equal(got.ACLSet()))
			assert.True(t, want.RoleBindingSet().Equal(got.RoleBindingSet()))

			// Save replaces the whole value.
			smaller := NewState(models.NewACLSet(want.ACLs[0]), nil)
			require.NoError(t, b.Save(ctx, smaller))
			got, err = b.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, smaller, got)
			require.NoError(t, b.Close())
		})
	}
}

func TestFileBackend_DigestMismatch(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state")
	b := NewFileBackend(path)
	require.NoError(t, b.Save(ctx, sampleState()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	tampered := bytes.Replace(raw, []byte("User:producer"), []byte("User:intruder"), 1)
	require.NoError(t, os.WriteFile(path, tampered, 0o600))

	_, err = b.Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "digest mismatch")
}

func TestDecode(t *testing.T) {
	s, err := decode(nil)
	require.NoError(t, err)
	assert.Empty(t, s.ACLs)

	_, err = decode([]byte("not json"))
	assert.Error(t, err)

	_, err = decode([]byte(`{"version":7,"digest":"","state":{}}`))
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	for _, tt := range []struct {
		name    string
		kind    string
		cfg     Config
		expType Backend
		expErr  bool
	}{
		{name: "default", kind: "", expType: &FileBackend{}},
		{name: "file", kind: "FILE", expType: &FileBackend{}},
		{name: "redis", kind: "redis", cfg: Config{RedisHost: "localhost"}, expType: &RedisBackend{}},
		{name: "redis without host", kind: "redis", expErr: true},
		{name: "s3 without bucket", kind: "s3", expErr: true},
		{name: "unknown", kind: "zookeeper", expErr: true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.kind, tt.cfg)
			if tt.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.expType, b)
			require.NoError(t, b.Close())
		})
	}
}
