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

package actions

import (
	"context"
	"fmt"

	"github.com/redpanda-data/topology-builder/topology/clients"
	"github.com/redpanda-data/topology-builder/topology/kclients"
	"github.com/redpanda-data/topology-builder/topology/models"
	"go.uber.org/multierr"
)

// splitRegistry separates the schema registry entries from the broker ones.
func splitRegistry(entries []models.ACLEntry) (broker, registry []models.ACLEntry) {
	for _, e := range entries {
		if e.IsSchemaRegistry() {
			registry = append(registry, e)
		} else {
			broker = append(broker, e)
		}
	}
	return broker, registry
}

// CreateBindings grants ACL entries. Schema registry entries go to the
// registry ACL API.
type CreateBindings struct {
	Admin   kclients.AdminClient
	Reg     kclients.SchemaRegistryACLClientInterface
	Entries []models.ACLEntry
}

var _ Action = (*CreateBindings)(nil)

func (*CreateBindings) action() {}

// Kind implements Action.
func (*CreateBindings) Kind() Kind { return KindCreateBindings }

func (a *CreateBindings) String() string {
	return renderACLs(fmt.Sprintf("CreateBindings(%d)", len(a.Entries)), a.Entries)
}

// Run implements Action.
func (a *CreateBindings) Run(ctx context.Context) error {
	broker, registry := splitRegistry(a.Entries)
	if len(registry) > 0 && a.Reg == nil {
		return fmt.Errorf("%d schema registry ACLs declared but no schema registry is configured", len(registry))
	}
	if len(broker) > 0 {
		if err := a.Admin.CreateACLs(ctx, broker); err != nil {
			return err
		}
	}
	for _, e := range registry {
		if err := a.Reg.CreateACL(ctx, e); err != nil {
			return fmt.Errorf("unable to create schema registry ACL %s: %w", e.ID(), err)
		}
	}
	return nil
}

// ClearBindings revokes ACL entries a previous sync granted.
type ClearBindings struct {
	Admin   kclients.AdminClient
	Reg     kclients.SchemaRegistryACLClientInterface
	Entries []models.ACLEntry
}

var _ Action = (*ClearBindings)(nil)

func (*ClearBindings) action() {}

// Kind implements Action.
func (*ClearBindings) Kind() Kind { return KindClearBindings }

func (a *ClearBindings) String() string {
	return renderACLs(fmt.Sprintf("ClearBindings(%d)", len(a.Entries)), a.Entries)
}

// Run implements Action.
func (a *ClearBindings) Run(ctx context.Context) error {
	broker, registry := splitRegistry(a.Entries)
	if len(registry) > 0 && a.Reg == nil {
		return fmt.Errorf("%d schema registry ACLs to revoke but no schema registry is configured", len(registry))
	}
	if len(broker) > 0 {
		if err := a.Admin.DeleteACLs(ctx, broker); err != nil {
			return err
		}
	}
	var errs error
	for _, e := range registry {
		errs = multierr.Append(errs, a.Reg.DeleteACL(ctx, e))
	}
	return errs
}

// BindRoles creates role bindings through the role binding service.
type BindRoles struct {
	MDS      clients.MDSClient
	Bindings []models.RoleBinding
}

var _ Action = (*BindRoles)(nil)

func (*BindRoles) action() {}

// Kind implements Action.
func (*BindRoles) Kind() Kind { return KindBindRoles }

func (a *BindRoles) String() string {
	return renderRoleBindings(fmt.Sprintf("BindRoles(%d)", len(a.Bindings)), a.Bindings)
}

// Run implements Action.
func (a *BindRoles) Run(ctx context.Context) error {
	for _, b := range a.Bindings {
		if err := a.MDS.BindRole(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// UnbindRoles removes role bindings a previous sync created.
type UnbindRoles struct {
	MDS      clients.MDSClient
	Bindings []models.RoleBinding
}

var _ Action = (*UnbindRoles)(nil)

func (*UnbindRoles) action() {}

// Kind implements Action.
func (*UnbindRoles) Kind() Kind { return KindUnbindRoles }

func (a *UnbindRoles) String() string {
	return renderRoleBindings(fmt.Sprintf("UnbindRoles(%d)", len(a.Bindings)), a.Bindings)
}

// Run implements Action.
func (a *UnbindRoles) Run(ctx context.Context) error {
	var errs error
	for _, b := range a.Bindings {
		errs = multierr.Append(errs, a.MDS.UnbindRole(ctx, b))
	}
	return errs
}
