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

package clusterstate

import (
	"context"
	"fmt"
	"sort"

	"github.com/redpanda-data/topology-builder/topology/clients"
	"github.com/redpanda-data/topology-builder/topology/kclients"
	"github.com/redpanda-data/topology-builder/topology/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Provider reads cluster snapshots.
type Provider struct {
	admin    kclients.AdminClient
	registry kclients.SchemaRegistryACLClientInterface
	mds      clients.MDSClient
	logger   *zap.Logger
}

// NewProvider returns a provider. registry and mds may be nil, in which case
// the schema registry and role binding parts of the snapshot stay empty.
func NewProvider(admin kclients.AdminClient, registry kclients.SchemaRegistryACLClientInterface, mds clients.MDSClient, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{admin: admin, registry: registry, mds: mds, logger: logger}
}

// Read returns one snapshot. Every part is gathered independently and the
// snapshot is assembled only once all of them succeeded.
func (p *Provider) Read(ctx context.Context) (*ClusterState, error) {
	names, err := p.admin.ListApplicationTopics(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to list topics: %w", err)
	}

	var (
		descriptions map[string]kclients.TopicDescription
		topicConfigs map[string]map[string]string
		parts        Parts
	)
	g, gctx := errgroup.WithContext(ctx)
	if len(names) > 0 {
		g.Go(func() error {
			var err error
			descriptions, err = p.admin.DescribeTopics(gctx, names...)
			if err != nil {
				return fmt.Errorf("unable to describe topics: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			topicConfigs, err = p.admin.DescribeTopicConfigs(gctx, kclients.ConfigScopeNonDefault, names...)
			if err != nil {
				return fmt.Errorf("unable to describe topic configs: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		parts.Config, err = p.admin.DescribeClusterConfig(gctx)
		if err != nil {
			return fmt.Errorf("unable to describe cluster config: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		parts.KafkaACLs, err = p.admin.ListACLs(gctx)
		if err != nil {
			return fmt.Errorf("unable to list ACLs: %w", err)
		}
		return nil
	})
	if p.registry != nil {
		g.Go(func() error {
			var err error
			parts.RegistryACLs, err = p.registry.ListACLs(gctx, "")
			if err != nil {
				return fmt.Errorf("unable to list schema registry ACLs: %w", err)
			}
			return nil
		})
	}
	if p.mds != nil {
		g.Go(func() error {
			var err error
			parts.RBACRoles, parts.RBACBindings, err = p.readRoles(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			parts.RBACACLs, err = p.mds.SearchACLs(gctx)
			if err != nil {
				return fmt.Errorf("unable to search centralized ACLs: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, name := range names {
		parts.Topics = append(parts.Topics, topicState(name, descriptions[name], topicConfigs[name]))
	}
	state := New(parts)
	p.logger.Debug("read cluster state",
		zap.Int("topics", len(parts.Topics)),
		zap.Int("acls", len(parts.KafkaACLs)),
		zap.Int("registry_acls", len(parts.RegistryACLs)),
		zap.Int("role_bindings", len(parts.RBACBindings)))
	return state, nil
}

func (p *Provider) readRoles(ctx context.Context) ([]RoleState, []models.RoleBinding, error) {
	defs, err := p.mds.ListRoles(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to list roles: %w", err)
	}
	roles := make([]RoleState, 0, len(defs))
	principals := make(map[string]struct{})
	for _, d := range defs {
		roles = append(roles, roleState(d))
		bound, err := p.mds.LookupPrincipals(ctx, d.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to look up principals of role %s: %w", d.Name, err)
		}
		for _, pr := range bound {
			principals[pr] = struct{}{}
		}
	}
	sorted := make([]string, 0, len(principals))
	for pr := range principals {
		sorted = append(sorted, pr)
	}
	sort.Strings(sorted)

	var bindings []models.RoleBinding
	for _, pr := range sorted {
		bs, err := p.mds.LookupRoleBindings(ctx, pr)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to look up role bindings of %s: %w", pr, err)
		}
		bindings = append(bindings, bs...)
	}
	return roles, bindings, nil
}

func roleState(d clients.RoleDefinition) RoleState {
	ops := make(map[string][]string, len(d.AccessPolicy.AllowedOperations))
	for _, a := range d.AccessPolicy.AllowedOperations {
		ops[a.ResourceType] = append(ops[a.ResourceType], a.Operations...)
	}
	return RoleState{Name: d.Name, ScopeType: d.AccessPolicy.ScopeType, Operations: ops}
}

func topicState(name string, desc kclients.TopicDescription, config map[string]string) TopicState {
	var rf int16
	for _, r := range desc.Replicas {
		if n := int16(len(r)); n > rf {
			rf = n
		}
	}
	if config == nil {
		config = map[string]string{}
	}
	return TopicState{
		Name:              name,
		Partitions:        int32(len(desc.Replicas)),
		ReplicationFactor: rf,
		Replicas:          desc.Replicas,
		Config:            config,
	}
}
