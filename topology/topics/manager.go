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

// Package topics reconciles declared topics against the topics of a cluster.
package topics

import (
	"context"
	"fmt"
	"io"

	"github.com/redpanda-data/topology-builder/topology/actions"
	"github.com/redpanda-data/topology-builder/topology/kclients"
	"github.com/redpanda-data/topology-builder/topology/models"
	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Options configure a Manager.
type Options struct {
	AllowDelete bool
	// InternalPrefixes are the topic prefixes never considered for deletion.
	InternalPrefixes []string
}

// Manager plans and applies topic changes.
type Manager struct {
	admin   kclients.AdminClient
	schemas kclients.SchemaRegistryClient
	opts    Options
	logger  *zap.Logger
}

// NewManager returns a topic manager. schemas may be nil when no schema
// registry is configured.
func NewManager(admin kclients.AdminClient, schemas kclients.SchemaRegistryClient, opts Options, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{admin: admin, schemas: schemas, opts: opts, logger: logger}
}

// Plan lists the application topics once and returns one SyncTopic per
// declared topic in declaration order, followed by a DeleteTopics batch with
// the undeclared non-internal topics when deletes are allowed.
func (m *Manager) Plan(ctx context.Context, topology *models.Topology) (*actions.Plan, error) {
	listed, err := m.admin.ListApplicationTopics(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to list topics: %w", err)
	}
	observed := sets.New(listed...)
	declared := sets.New[string]()
	plan := actions.NewPlan()

	for i := range topology.Projects {
		p := &topology.Projects[i]
		for j := range p.Topics {
			topic := &p.Topics[j]
			name := topology.TopicName(p, topic)
			partitions, err := topic.Partitions()
			if err != nil {
				return nil, err
			}
			rf, err := topic.ReplicationFactor()
			if err != nil {
				return nil, err
			}
			plan.Add(&actions.SyncTopic{
				Admin:             m.admin,
				Schemas:           m.schemas,
				Logger:            m.logger,
				Topic:             name,
				Partitions:        partitions,
				ReplicationFactor: rf,
				Config:            topic.TopicConfig(),
				Schema:            topic.Schemas,
				Exists:            observed.Has(name),
			})
			declared.Insert(name)
		}
	}

	if m.opts.AllowDelete {
		if orphans := m.orphans(observed, declared); len(orphans) > 0 {
			plan.Add(&actions.DeleteTopics{Admin: m.admin, Topics: orphans})
		}
	}
	return plan, nil
}

// orphans returns observed − declared − internal, sorted.
func (m *Manager) orphans(observed, declared sets.Set[string]) []string {
	var out []string
	for _, t := range sets.List(observed.Difference(declared)) {
		if kclients.IsInternalTopic(t, m.opts.InternalPrefixes) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Sync plans and executes the topic changes.
func (m *Manager) Sync(ctx context.Context, topology *models.Topology, executor *actions.Executor) error {
	plan, err := m.Plan(ctx, topology)
	if err != nil {
		return err
	}
	m.logger.Debug("planned topic actions", zap.Int("actions", plan.Len()))
	return executor.Execute(ctx, plan)
}

// PrintCurrentState writes every topic of the cluster to w, internal ones
// included.
func (m *Manager) PrintCurrentState(ctx context.Context, w io.Writer) error {
	listed, err := m.admin.ListTopics(ctx)
	if err != nil {
		return fmt.Errorf("unable to list topics: %w", err)
	}
	if _, err := fmt.Fprintln(w, "List of Topics:"); err != nil {
		return err
	}
	for _, t := range listed {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}
	return nil
}
