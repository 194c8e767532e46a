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

// Package clusterstate reads immutable snapshots of a live cluster, infers
// the roles principals play from their ACLs and turns a snapshot back into a
// declared topology.
package clusterstate

import (
	"maps"
	"slices"
	"sort"

	"github.com/redpanda-data/topology-builder/topology/models"
)

// TopicState is an observed topic.
type TopicState struct {
	Name              string
	Partitions        int32
	ReplicationFactor int16
	// Replicas holds, per partition index, the ordered broker ids.
	Replicas [][]int32
	// Config holds the non-default configuration entries.
	Config map[string]string
}

func (t TopicState) clone() TopicState {
	out := t
	out.Config = maps.Clone(t.Config)
	out.Replicas = make([][]int32, len(t.Replicas))
	for i, r := range t.Replicas {
		out.Replicas[i] = slices.Clone(r)
	}
	return out
}

// RoleState is a role definition of the role binding service.
type RoleState struct {
	Name      string
	ScopeType string
	// Operations maps a resource type to the operations the role allows on it.
	Operations map[string][]string
}

// ClusterState is an immutable snapshot of a cluster. Every accessor returns
// a copy.
type ClusterState struct {
	config       map[string]string
	topics       map[string]TopicState
	kafkaACLs    map[string]models.ACLSet
	registryACLs map[string]models.ACLSet
	rbacACLs     map[string]models.ACLSet
	rbacRoles    map[string]RoleState
	rbacBindings map[string][]models.RoleBinding
}

// Parts are the independently gathered pieces of a snapshot.
type Parts struct {
	Config       map[string]string
	Topics       []TopicState
	KafkaACLs    []models.ACLEntry
	RegistryACLs []models.ACLEntry
	RBACACLs     []models.ACLEntry
	RBACRoles    []RoleState
	RBACBindings []models.RoleBinding
}

// New assembles a snapshot. ACL entries are grouped per principal and
// structural duplicates collapse.
func New(p Parts) *ClusterState {
	s := &ClusterState{
		config:       maps.Clone(p.Config),
		topics:       make(map[string]TopicState, len(p.Topics)),
		kafkaACLs:    groupACLs(p.KafkaACLs),
		registryACLs: groupACLs(p.RegistryACLs),
		rbacACLs:     groupACLs(p.RBACACLs),
		rbacRoles:    make(map[string]RoleState, len(p.RBACRoles)),
		rbacBindings: make(map[string][]models.RoleBinding),
	}
	if s.config == nil {
		s.config = map[string]string{}
	}
	for _, t := range p.Topics {
		s.topics[t.Name] = t.clone()
	}
	for _, r := range p.RBACRoles {
		s.rbacRoles[r.Name] = r
	}
	byPrincipal := make(map[string]models.RoleBindingSet)
	for _, b := range p.RBACBindings {
		set, ok := byPrincipal[b.Principal]
		if !ok {
			set = models.NewRoleBindingSet()
			byPrincipal[b.Principal] = set
		}
		set.Insert(b)
	}
	for principal, set := range byPrincipal {
		s.rbacBindings[principal] = models.SortedRoleBindings(set)
	}
	return s
}

func groupACLs(entries []models.ACLEntry) map[string]models.ACLSet {
	out := make(map[string]models.ACLSet)
	for _, e := range entries {
		set, ok := out[e.Principal]
		if !ok {
			set = models.NewACLSet()
			out[e.Principal] = set
		}
		set.Insert(e)
	}
	return out
}

func cloneACLs(m map[string]models.ACLSet) map[string]models.ACLSet {
	out := make(map[string]models.ACLSet, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}

// Config returns the non-default cluster configuration.
func (s *ClusterState) Config() map[string]string { return maps.Clone(s.config) }

// Topics returns the observed topics by name.
func (s *ClusterState) Topics() map[string]TopicState {
	out := make(map[string]TopicState, len(s.topics))
	for k, v := range s.topics {
		out[k] = v.clone()
	}
	return out
}

// TopicNames returns the sorted names of the observed topics.
func (s *ClusterState) TopicNames() []string {
	names := make([]string, 0, len(s.topics))
	for n := range s.topics {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// KafkaACLs returns the natively granted ACLs per principal.
func (s *ClusterState) KafkaACLs() map[string]models.ACLSet { return cloneACLs(s.kafkaACLs) }

// RegistryACLs returns the schema registry ACLs per principal.
func (s *ClusterState) RegistryACLs() map[string]models.ACLSet { return cloneACLs(s.registryACLs) }

// RBACACLs returns the centralized ACLs of the role binding service per
// principal.
func (s *ClusterState) RBACACLs() map[string]models.ACLSet { return cloneACLs(s.rbacACLs) }

// RBACRoles returns the role definitions by name.
func (s *ClusterState) RBACRoles() map[string]RoleState {
	out := make(map[string]RoleState, len(s.rbacRoles))
	for k, v := range s.rbacRoles {
		v.Operations = maps.Clone(v.Operations)
		out[k] = v
	}
	return out
}

// RBACBindings returns the role bindings per principal, ordered by ID.
func (s *ClusterState) RBACBindings() map[string][]models.RoleBinding {
	out := make(map[string][]models.RoleBinding, len(s.rbacBindings))
	for k, v := range s.rbacBindings {
		out[k] = slices.Clone(v)
	}
	return out
}
