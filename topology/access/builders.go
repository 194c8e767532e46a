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

// Package access reconciles the ACLs and role bindings a topology declares
// against the ones a previous sync applied.
package access

import (
	"fmt"
	"strings"

	"github.com/redpanda-data/topology-builder/topology/models"
)

// Access control implementations.
const (
	ImplementationACLs = "acls"
	ImplementationRBAC = "rbac"
)

// Defaults used when a declaration leaves a name out.
const (
	DefaultConsumerGroup       = "*"
	DefaultConnectCluster      = "kafka-cluster"
	DefaultConnectGroup        = "connect-cluster"
	DefaultConnectOffsetsTopic = "connect-offsets"
	DefaultConnectStatusTopic  = "connect-status"
	DefaultConnectConfigsTopic = "connect-configs"
	DefaultSchemasTopic        = "_schemas"
	DefaultSchemaRegistryGroup = "schema-registry"
)

// Bindings is the desired access of a topology.
type Bindings struct {
	ACLs         models.ACLSet
	RoleBindings models.RoleBindingSet
}

// BindingsBuilder derives the desired access from a topology.
type BindingsBuilder interface {
	Build(topology *models.Topology) (*Bindings, error)
}

// NewBindingsBuilder returns the builder of the given implementation. scope
// is the cluster the role bindings apply to and is only used by rbac.
func NewBindingsBuilder(implementation, scope string) (BindingsBuilder, error) {
	switch strings.ToLower(strings.TrimSpace(implementation)) {
	case "", ImplementationACLs:
		return &ACLBindingsBuilder{}, nil
	case ImplementationRBAC:
		if scope == "" {
			return nil, fmt.Errorf("the %s access control implementation requires a cluster id", ImplementationRBAC)
		}
		return &RBACBindingsBuilder{Scope: scope}, nil
	default:
		return nil, fmt.Errorf("unknown access control implementation %q, expected %s or %s",
			implementation, ImplementationACLs, ImplementationRBAC)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// rawACLs returns the raw entries of a project with the principal taken from
// the map key and the builder defaults filled in. Declaring the same entry
// twice fails with a *models.DuplicateACLError.
func rawACLs(p *models.Project) ([]models.ACLEntry, error) {
	var out []models.ACLEntry
	for principal, entries := range p.RawACLs {
		for _, e := range entries {
			e.Principal = principal
			e.Host = orDefault(e.Host, models.AnyHost)
			norm, err := normalize(e)
			if err != nil {
				return nil, fmt.Errorf("project %s: %w", p.Name, err)
			}
			out = append(out, norm)
		}
	}
	if _, err := models.GroupByPrincipal(out); err != nil {
		return nil, fmt.Errorf("project %s: %w", p.Name, err)
	}
	return out, nil
}

// normalize parses the enum fields of e, filling in LITERAL and ALLOW when
// they are left out.
func normalize(e models.ACLEntry) (models.ACLEntry, error) {
	var err error
	if e.ResourceType, err = models.ParseResourceType(string(e.ResourceType)); err != nil {
		return e, err
	}
	if e.PatternType, err = models.ParsePatternType(orDefault(string(e.PatternType), string(models.PatternTypeLiteral))); err != nil {
		return e, err
	}
	if e.Operation, err = models.ParseOperation(string(e.Operation)); err != nil {
		return e, err
	}
	if e.Permission, err = models.ParsePermission(orDefault(string(e.Permission), string(models.PermissionAllow))); err != nil {
		return e, err
	}
	return e, nil
}

// ACLBindingsBuilder grants access through native ACLs.
type ACLBindingsBuilder struct{}

// Build implements BindingsBuilder.
func (*ACLBindingsBuilder) Build(topology *models.Topology) (*Bindings, error) {
	acls := models.NewACLSet()
	add := func(principal string, rt models.ResourceType, resource string, ops ...models.Operation) {
		for _, op := range ops {
			acls.Insert(models.NewACLEntry(principal, rt, resource, op))
		}
	}

	for i := range topology.Projects {
		p := &topology.Projects[i]
		topics := topology.ProjectTopicNames(p)

		for _, pr := range p.Producers {
			for _, t := range topics {
				add(pr.Principal, models.ResourceTypeTopic, t, models.OperationDescribe, models.OperationWrite)
			}
		}
		for _, c := range p.Consumers {
			for _, t := range topics {
				add(c.Principal, models.ResourceTypeTopic, t, models.OperationDescribe, models.OperationRead)
			}
			add(c.Principal, models.ResourceTypeGroup, orDefault(c.Group, DefaultConsumerGroup), models.OperationRead)
		}
		for _, s := range p.Streams {
			for _, t := range s.Topics.Read {
				add(s.Principal, models.ResourceTypeTopic, t, models.OperationRead)
			}
			for _, t := range s.Topics.Write {
				add(s.Principal, models.ResourceTypeTopic, t, models.OperationWrite)
			}
			prefix := orDefault(s.ApplicationID, topology.ProjectPrefix(p))
			acls.Insert(
				models.NewACLEntry(s.Principal, models.ResourceTypeTopic, prefix, models.OperationAll).Prefixed(),
				models.NewACLEntry(s.Principal, models.ResourceTypeGroup, prefix, models.OperationAll).Prefixed(),
			)
		}
		for _, c := range p.Connectors {
			add(c.Principal, models.ResourceTypeCluster, DefaultConnectCluster, models.OperationCreate)
			add(c.Principal, models.ResourceTypeGroup, orDefault(c.Group, DefaultConnectGroup), models.OperationRead)
			for _, t := range []string{
				orDefault(c.OffsetTopic, DefaultConnectOffsetsTopic),
				orDefault(c.StatusTopic, DefaultConnectStatusTopic),
				orDefault(c.ConfigsTopic, DefaultConnectConfigsTopic),
			} {
				add(c.Principal, models.ResourceTypeTopic, t, models.OperationRead, models.OperationWrite)
			}
			for _, t := range c.Topics.Read {
				add(c.Principal, models.ResourceTypeTopic, t, models.OperationRead)
			}
			for _, t := range c.Topics.Write {
				add(c.Principal, models.ResourceTypeTopic, t, models.OperationWrite)
			}
		}
		raw, err := rawACLs(p)
		if err != nil {
			return nil, err
		}
		acls.Insert(raw...)
	}

	for _, sr := range topology.Platform.SchemaRegistry {
		add(sr.Principal, models.ResourceTypeTopic, orDefault(sr.Topic, DefaultSchemasTopic),
			models.OperationDescribeConfigs, models.OperationRead, models.OperationWrite, models.OperationDescribe)
		add(sr.Principal, models.ResourceTypeGroup, orDefault(sr.Group, DefaultSchemaRegistryGroup), models.OperationRead)
	}

	return &Bindings{ACLs: acls, RoleBindings: models.NewRoleBindingSet()}, nil
}

// RBACBindingsBuilder grants access through role bindings of the role
// binding service. Raw ACLs are still granted as native ACLs.
type RBACBindingsBuilder struct {
	// Scope is the Kafka cluster id the bindings apply to.
	Scope string
}

func (b *RBACBindingsBuilder) binding(principal, role string, rt models.ResourceType, resource string, pt models.PatternType) models.RoleBinding {
	return models.RoleBinding{
		Principal:    principal,
		Role:         role,
		Scope:        b.Scope,
		ResourceType: rt,
		ResourceName: resource,
		PatternType:  pt,
	}
}

// Build implements BindingsBuilder.
func (b *RBACBindingsBuilder) Build(topology *models.Topology) (*Bindings, error) {
	acls := models.NewACLSet()
	bindings := models.NewRoleBindingSet()
	literal := func(principal, role string, rt models.ResourceType, resources ...string) {
		for _, r := range resources {
			bindings.Insert(b.binding(principal, role, rt, r, models.PatternTypeLiteral))
		}
	}

	for i := range topology.Projects {
		p := &topology.Projects[i]
		topics := topology.ProjectTopicNames(p)

		for _, pr := range p.Producers {
			literal(pr.Principal, models.RoleDeveloperWrite, models.ResourceTypeTopic, topics...)
		}
		for _, c := range p.Consumers {
			literal(c.Principal, models.RoleDeveloperRead, models.ResourceTypeTopic, topics...)
			literal(c.Principal, models.RoleDeveloperRead, models.ResourceTypeGroup, orDefault(c.Group, DefaultConsumerGroup))
		}
		for _, s := range p.Streams {
			literal(s.Principal, models.RoleDeveloperRead, models.ResourceTypeTopic, s.Topics.Read...)
			literal(s.Principal, models.RoleDeveloperWrite, models.ResourceTypeTopic, s.Topics.Write...)
			prefix := orDefault(s.ApplicationID, topology.ProjectPrefix(p))
			bindings.Insert(
				b.binding(s.Principal, models.RoleResourceOwner, models.ResourceTypeTopic, prefix, models.PatternTypePrefixed),
				b.binding(s.Principal, models.RoleResourceOwner, models.ResourceTypeGroup, prefix, models.PatternTypePrefixed),
			)
		}
		for _, c := range p.Connectors {
			literal(c.Principal, models.RoleDeveloperRead, models.ResourceTypeTopic, c.Topics.Read...)
			literal(c.Principal, models.RoleDeveloperWrite, models.ResourceTypeTopic, c.Topics.Write...)
			literal(c.Principal, models.RoleResourceOwner, models.ResourceTypeGroup, orDefault(c.Group, DefaultConnectGroup))
			literal(c.Principal, models.RoleResourceOwner, models.ResourceTypeTopic,
				orDefault(c.OffsetTopic, DefaultConnectOffsetsTopic),
				orDefault(c.StatusTopic, DefaultConnectStatusTopic),
				orDefault(c.ConfigsTopic, DefaultConnectConfigsTopic))
		}
		for _, d := range p.RBAC {
			rb, err := b.declared(topology, p, d)
			if err != nil {
				return nil, err
			}
			bindings.Insert(rb)
		}
		raw, err := rawACLs(p)
		if err != nil {
			return nil, err
		}
		acls.Insert(raw...)
	}

	for _, sr := range topology.Platform.SchemaRegistry {
		literal(sr.Principal, models.RoleResourceOwner, models.ResourceTypeTopic, orDefault(sr.Topic, DefaultSchemasTopic))
		literal(sr.Principal, models.RoleResourceOwner, models.ResourceTypeGroup, orDefault(sr.Group, DefaultSchemaRegistryGroup))
	}

	return &Bindings{ACLs: acls, RoleBindings: bindings}, nil
}

// declared turns an rbac entry of a project into a binding. An entry without
// a resource binds the role on the project prefix.
func (b *RBACBindingsBuilder) declared(topology *models.Topology, p *models.Project, d models.RoleBindingDecl) (models.RoleBinding, error) {
	if d.Principal == "" || d.Role == "" {
		return models.RoleBinding{}, fmt.Errorf("project %s: rbac entries need a principal and a role", p.Name)
	}
	rt, err := models.ParseResourceType(orDefault(d.ResourceType, string(models.ResourceTypeTopic)))
	if err != nil {
		return models.RoleBinding{}, fmt.Errorf("project %s: %w", p.Name, err)
	}
	resource, pattern := d.Resource, d.PatternType
	if resource == "" {
		resource = topology.ProjectPrefix(p)
		pattern = orDefault(pattern, string(models.PatternTypePrefixed))
	}
	pt, err := models.ParsePatternType(orDefault(pattern, string(models.PatternTypeLiteral)))
	if err != nil {
		return models.RoleBinding{}, fmt.Errorf("project %s: %w", p.Name, err)
	}
	return b.binding(d.Principal, d.Role, rt, resource, pt), nil
}
