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

// Package backend persists the fingerprint of the access entries a previous
// sync applied. The cluster cannot report which entries this tool created, so
// the fingerprint is what revocations are computed against.
package backend

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/redpanda-data/topology-builder/topology/models"
)

// Kind selects a Backend implementation.
type Kind string

// Backend kinds.
const (
	KindFile  Kind = "file"
	KindRedis Kind = "redis"
	KindS3    Kind = "s3"
)

// DefaultStateFile is the file the file backend uses when none is configured.
const DefaultStateFile = ".cluster-state"

// Backend loads and saves the fingerprint. Save replaces the whole value.
type Backend interface {
	// Load returns the stored state, or an empty state when nothing was
	// saved yet.
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, state *State) error
	Close() error
}

// Config carries the settings of every backend kind.
type Config struct {
	File string

	RedisHost string
	RedisPort int
	RedisKey  string

	S3Bucket string
	S3Key    string
	S3Region string
}

// ParseKind resolves a configured backend name. An empty name selects the
// file backend.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindFile, nil
	case KindFile, KindRedis, KindS3:
		return k, nil
	default:
		return "", errors.Errorf("unknown state backend %q, must be one of: file, redis, s3", s)
	}
}

// New creates the backend of the given kind.
func New(kind string, cfg Config) (Backend, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case KindRedis:
		return NewRedisBackend(cfg.RedisHost, cfg.RedisPort, cfg.RedisKey)
	case KindS3:
		return NewS3Backend(cfg.S3Region, cfg.S3Bucket, cfg.S3Key)
	default:
		file := cfg.File
		if file == "" {
			file = DefaultStateFile
		}
		return NewFileBackend(file), nil
	}
}

// State is the persisted fingerprint of managed access entries.
type State struct {
	ACLs         []models.ACLEntry    `json:"acls"`
	RoleBindings []models.RoleBinding `json:"role_bindings"`
}

// NewState builds a state from sets, ordering its content so that equal sets
// serialise identically.
func NewState(acls models.ACLSet, bindings models.RoleBindingSet) *State {
	s := &State{
		ACLs:         []models.ACLEntry{},
		RoleBindings: []models.RoleBinding{},
	}
	if acls != nil {
		s.ACLs = models.SortedACLs(acls)
	}
	if bindings != nil {
		s.RoleBindings = models.SortedRoleBindings(bindings)
	}
	return s
}

// ACLSet returns the stored ACL entries as a set.
func (s *State) ACLSet() models.ACLSet {
	return models.NewACLSet(s.ACLs...)
}

// RoleBindingSet returns the stored role bindings as a set.
func (s *State) RoleBindingSet() models.RoleBindingSet {
	return models.NewRoleBindingSet(s.RoleBindings...)
}
