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

package access

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/redpanda-data/topology-builder/topology/actions"
	"github.com/redpanda-data/topology-builder/topology/backend"
	"github.com/redpanda-data/topology-builder/topology/clients"
	"github.com/redpanda-data/topology-builder/topology/kclients"
	"github.com/redpanda-data/topology-builder/topology/models"
	"go.uber.org/zap"
)

// Manager plans and applies access changes. Only entries a previous sync
// recorded in the state backend are ever revoked.
type Manager struct {
	builder     BindingsBuilder
	state       backend.Backend
	admin       kclients.AdminClient
	registry    kclients.SchemaRegistryACLClientInterface
	mds         clients.MDSClient
	allowDelete bool
	logger      *zap.Logger
}

// ManagerOpts holds the collaborators of a Manager. Registry and MDS are
// optional.
type ManagerOpts struct {
	Builder     BindingsBuilder
	State       backend.Backend
	Admin       kclients.AdminClient
	Registry    kclients.SchemaRegistryACLClientInterface
	MDS         clients.MDSClient
	AllowDelete bool
	Logger      *zap.Logger
}

// NewManager returns an access manager.
func NewManager(opts ManagerOpts) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		builder:     opts.Builder,
		state:       opts.State,
		admin:       opts.Admin,
		registry:    opts.Registry,
		mds:         opts.MDS,
		allowDelete: opts.AllowDelete,
		logger:      logger,
	}
}

// Planned is the result of planning: the actions to run and the state to
// record once they succeeded.
type Planned struct {
	Plan *actions.Plan
	Next *backend.State
}

// Plan diffs the desired access against the previously applied one.
func (m *Manager) Plan(ctx context.Context, topology *models.Topology) (*Planned, error) {
	desired, err := m.builder.Build(topology)
	if err != nil {
		return nil, err
	}
	for _, e := range models.SortedACLs(desired.ACLs) {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}

	previous, err := m.state.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load the cluster state: %w", err)
	}
	prevACLs, prevBindings := previous.ACLSet(), previous.RoleBindingSet()

	grantACLs := desired.ACLs.Difference(prevACLs)
	revokeACLs := prevACLs.Difference(desired.ACLs)
	bindRoles := desired.RoleBindings.Difference(prevBindings)
	unbindRoles := prevBindings.Difference(desired.RoleBindings)

	if m.mds == nil && (bindRoles.Len() > 0 || (m.allowDelete && unbindRoles.Len() > 0)) {
		return nil, errors.New("role bindings to apply but no role binding service is configured")
	}
	if m.registry == nil && (hasRegistryACLs(grantACLs) || (m.allowDelete && hasRegistryACLs(revokeACLs))) {
		return nil, errors.New("schema registry ACLs to apply but no schema registry is configured")
	}

	plan := actions.NewPlan()
	if grantACLs.Len() > 0 {
		plan.Add(&actions.CreateBindings{Admin: m.admin, Reg: m.registry, Entries: models.SortedACLs(grantACLs)})
	}
	if bindRoles.Len() > 0 {
		plan.Add(&actions.BindRoles{MDS: m.mds, Bindings: models.SortedRoleBindings(bindRoles)})
	}

	nextACLs, nextBindings := desired.ACLs, desired.RoleBindings
	if m.allowDelete {
		if revokeACLs.Len() > 0 {
			plan.Add(&actions.ClearBindings{Admin: m.admin, Reg: m.registry, Entries: models.SortedACLs(revokeACLs)})
		}
		if unbindRoles.Len() > 0 {
			plan.Add(&actions.UnbindRoles{MDS: m.mds, Bindings: models.SortedRoleBindings(unbindRoles)})
		}
	} else {
		nextACLs = nextACLs.Union(revokeACLs)
		nextBindings = nextBindings.Union(unbindRoles)
	}

	m.logger.Debug("planned access changes",
		zap.Int("grant", grantACLs.Len()),
		zap.Int("revoke", revokeACLs.Len()),
		zap.Int("bind", bindRoles.Len()),
		zap.Int("unbind", unbindRoles.Len()),
		zap.Bool("allow_delete", m.allowDelete))
	return &Planned{Plan: plan, Next: backend.NewState(nextACLs, nextBindings)}, nil
}

func hasRegistryACLs(s models.ACLSet) bool {
	for e := range s {
		if e.IsSchemaRegistry() {
			return true
		}
	}
	return false
}

// Sync plans, executes and, unless the executor only prints, records the
// applied access in the state backend.
func (m *Manager) Sync(ctx context.Context, topology *models.Topology, executor *actions.Executor) error {
	planned, err := m.Plan(ctx, topology)
	if err != nil {
		return err
	}
	if err := executor.Execute(ctx, planned.Plan); err != nil {
		return err
	}
	if executor.DryRun() {
		return nil
	}
	if err := m.state.Save(ctx, planned.Next); err != nil {
		return fmt.Errorf("unable to save the cluster state: %w", err)
	}
	return nil
}

// PrintCurrentState writes the ACLs of the cluster per principal to w,
// schema registry ACLs included when a registry is configured.
func (m *Manager) PrintCurrentState(ctx context.Context, w io.Writer) error {
	entries, err := m.admin.ListACLs(ctx)
	if err != nil {
		return err
	}
	if m.registry != nil {
		registry, err := m.registry.ListACLs(ctx, "")
		if err != nil {
			return fmt.Errorf("unable to list schema registry ACLs: %w", err)
		}
		entries = append(entries, registry...)
	}
	grouped := make(map[string]models.ACLSet)
	for _, e := range entries {
		if _, ok := grouped[e.Principal]; !ok {
			grouped[e.Principal] = models.NewACLSet()
		}
		grouped[e.Principal].Insert(e)
	}
	principals := make([]string, 0, len(grouped))
	for p := range grouped {
		principals = append(principals, p)
	}
	sort.Strings(principals)

	if _, err := fmt.Fprintln(w, "List of ACLs:"); err != nil {
		return err
	}
	for _, p := range principals {
		if _, err := fmt.Fprintf(w, "%s:\n", p); err != nil {
			return err
		}
		for _, e := range models.SortedACLs(grouped[p]) {
			if _, err := fmt.Fprintf(w, "  %s\n", e); err != nil {
				return err
			}
		}
	}
	return nil
}
