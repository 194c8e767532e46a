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

package models

import (
	"fmt"
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Predefined roles of the role binding service.
const (
	RoleDeveloperRead  = "DeveloperRead"
	RoleDeveloperWrite = "DeveloperWrite"
	RoleResourceOwner  = "ResourceOwner"
	RoleSecurityAdmin  = "SecurityAdmin"
	RoleSystemAdmin    = "SystemAdmin"
)

// RoleBinding delegates the operations bundled in Role to Principal over a
// resource pattern within Scope. An empty ResourceName binds the role at the
// cluster level.
type RoleBinding struct {
	Principal    string       `json:"principal" yaml:"principal"`
	Role         string       `json:"role" yaml:"role"`
	Scope        string       `json:"scope" yaml:"scope,omitempty"`
	ResourceType ResourceType `json:"resource_type,omitempty" yaml:"resourceType,omitempty"`
	ResourceName string       `json:"resource_name,omitempty" yaml:"resourceName,omitempty"`
	PatternType  PatternType  `json:"pattern_type,omitempty" yaml:"patternType,omitempty"`
}

// IsClusterLevel reports whether the binding carries no resource pattern.
func (b RoleBinding) IsClusterLevel() bool {
	return b.ResourceName == ""
}

// ID generates a unique ID for the role binding, in the same shape as the
// ACL entry ID.
func (b RoleBinding) ID() string {
	return fmt.Sprintf("%s:%s:%s:%s:%s:%s", b.Principal, b.Role, b.Scope, b.ResourceType, b.ResourceName, b.PatternType)
}

func (b RoleBinding) String() string {
	if b.IsClusterLevel() {
		return fmt.Sprintf("%s as %s on cluster %s", b.Principal, b.Role, b.Scope)
	}
	return fmt.Sprintf("%s as %s on %s %s(%s) in %s", b.Principal, b.Role, b.ResourceType, b.ResourceName, b.PatternType, b.Scope)
}

// RoleBindingSet is a set of role bindings keyed by their structural identity.
type RoleBindingSet = sets.Set[RoleBinding]

// NewRoleBindingSet returns a set holding the given bindings.
func NewRoleBindingSet(bindings ...RoleBinding) RoleBindingSet {
	return sets.New(bindings...)
}

// SortedRoleBindings returns the bindings of s ordered by ID.
func SortedRoleBindings(s RoleBindingSet) []RoleBinding {
	out := s.UnsortedList()
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
