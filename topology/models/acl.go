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
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// ResourceType is the type of the resource an ACL entry applies to.
type ResourceType string

// PatternType is the name-matching mode of an ACL entry.
type PatternType string

// Operation is the operation an ACL entry allows or denies.
type Operation string

// Permission is the effect of an ACL entry.
type Permission string

// Resource types. SUBJECT and REGISTRY are schema registry resources.
const (
	ResourceTypeTopic           ResourceType = "TOPIC"
	ResourceTypeGroup           ResourceType = "GROUP"
	ResourceTypeCluster         ResourceType = "CLUSTER"
	ResourceTypeTransactionalID ResourceType = "TRANSACTIONAL_ID"
	ResourceTypeDelegationToken ResourceType = "DELEGATION_TOKEN"
	ResourceTypeUser            ResourceType = "USER"
	ResourceTypeSubject         ResourceType = "SUBJECT"
	ResourceTypeRegistry        ResourceType = "REGISTRY"
)

// Pattern types.
const (
	PatternTypeLiteral  PatternType = "LITERAL"
	PatternTypePrefixed PatternType = "PREFIXED"
)

// Operations.
const (
	OperationAll             Operation = "ALL"
	OperationRead            Operation = "READ"
	OperationWrite           Operation = "WRITE"
	OperationCreate          Operation = "CREATE"
	OperationDelete          Operation = "DELETE"
	OperationAlter           Operation = "ALTER"
	OperationDescribe        Operation = "DESCRIBE"
	OperationClusterAction   Operation = "CLUSTER_ACTION"
	OperationDescribeConfigs Operation = "DESCRIBE_CONFIGS"
	OperationAlterConfigs    Operation = "ALTER_CONFIGS"
	OperationIdempotentWrite Operation = "IDEMPOTENT_WRITE"
	OperationCreateTokens    Operation = "CREATE_TOKENS"
	OperationDescribeTokens  Operation = "DESCRIBE_TOKENS"
)

// Permissions.
const (
	PermissionAllow Permission = "ALLOW"
	PermissionDeny  Permission = "DENY"
)

// AnyHost is the wildcard host every builder uses by default.
const AnyHost = "*"

var (
	resourceTypes = []ResourceType{
		ResourceTypeTopic, ResourceTypeGroup, ResourceTypeCluster, ResourceTypeTransactionalID,
		ResourceTypeDelegationToken, ResourceTypeUser, ResourceTypeSubject, ResourceTypeRegistry,
	}
	patternTypes = []PatternType{PatternTypeLiteral, PatternTypePrefixed}
	operations   = []Operation{
		OperationAll, OperationRead, OperationWrite, OperationCreate, OperationDelete, OperationAlter,
		OperationDescribe, OperationClusterAction, OperationDescribeConfigs, OperationAlterConfigs,
		OperationIdempotentWrite, OperationCreateTokens, OperationDescribeTokens,
	}
	permissions = []Permission{PermissionAllow, PermissionDeny}
)

// parseEnum finds s, case-insensitively, in the given list of known values.
func parseEnum[T ~string](s, kind string, known []T) (T, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for _, k := range known {
		if string(k) == up {
			return k, nil
		}
	}
	return "", fmt.Errorf("failed to parse ACL %s: unknown parameter: %v", kind, s)
}

// ParseResourceType parses an ACL resource type.
func ParseResourceType(s string) (ResourceType, error) {
	return parseEnum(s, "resource type", resourceTypes)
}

// ParsePatternType parses an ACL resource pattern type.
func ParsePatternType(s string) (PatternType, error) {
	return parseEnum(s, "resource pattern type", patternTypes)
}

// ParseOperation parses an ACL operation.
func ParseOperation(s string) (Operation, error) {
	return parseEnum(s, "operation", operations)
}

// ParsePermission parses an ACL permission type.
func ParsePermission(s string) (Permission, error) {
	return parseEnum(s, "permission type", permissions)
}

// ACLEntry is a single permission entry. It is a comparable value type:
// equality and hashing are structural over all seven fields.
type ACLEntry struct {
	Principal    string       `json:"principal" yaml:"principal"`
	Host         string       `json:"host" yaml:"host"`
	Resource     string       `json:"resource" yaml:"resource"`
	ResourceType ResourceType `json:"resource_type" yaml:"resourceType"`
	PatternType  PatternType  `json:"pattern_type" yaml:"patternType"`
	Operation    Operation    `json:"operation" yaml:"operation"`
	Permission   Permission   `json:"permission" yaml:"permission"`
}

// NewACLEntry returns an ALLOW entry for any host with a LITERAL pattern.
func NewACLEntry(principal string, rt ResourceType, resource string, op Operation) ACLEntry {
	return ACLEntry{
		Principal:    principal,
		Host:         AnyHost,
		Resource:     resource,
		ResourceType: rt,
		PatternType:  PatternTypeLiteral,
		Operation:    op,
		Permission:   PermissionAllow,
	}
}

// Prefixed returns a copy of the entry with a PREFIXED pattern.
func (a ACLEntry) Prefixed() ACLEntry {
	a.PatternType = PatternTypePrefixed
	return a
}

// Validate checks that every enum field holds a known value.
func (a ACLEntry) Validate() error {
	if a.Principal == "" {
		return fmt.Errorf("ACL entry for resource %q has no principal", a.Resource)
	}
	if _, err := ParseResourceType(string(a.ResourceType)); err != nil {
		return err
	}
	if _, err := ParsePatternType(string(a.PatternType)); err != nil {
		return err
	}
	if _, err := ParseOperation(string(a.Operation)); err != nil {
		return err
	}
	if _, err := ParsePermission(string(a.Permission)); err != nil {
		return err
	}
	return nil
}

// IsSchemaRegistry reports whether the entry targets a schema registry
// resource rather than a broker resource.
func (a ACLEntry) IsSchemaRegistry() bool {
	return a.ResourceType == ResourceTypeSubject || a.ResourceType == ResourceTypeRegistry
}

// ID generates a unique ID for the ACL entry.
func (a ACLEntry) ID() string {
	return fmt.Sprintf("%s:%s:%s:%s:%s:%s:%s",
		a.ResourceType,
		a.Resource,
		a.PatternType,
		a.Principal,
		a.Host,
		a.Operation,
		a.Permission)
}

func (a ACLEntry) String() string {
	return fmt.Sprintf("%s %s %s on %s %s(%s) from host %s",
		a.Principal, a.Permission, a.Operation, a.ResourceType, a.Resource, a.PatternType, a.Host)
}

// ACLSet is a set of ACL entries keyed by their structural identity.
type ACLSet = sets.Set[ACLEntry]

// NewACLSet returns a set holding the given entries, duplicates collapsed.
func NewACLSet(entries ...ACLEntry) ACLSet {
	return sets.New(entries...)
}

// SortedACLs returns the entries of s ordered by ID.
func SortedACLs(s ACLSet) []ACLEntry {
	out := s.UnsortedList()
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// DuplicateACLError is returned when grouping finds the same entry twice.
type DuplicateACLError struct {
	Entry ACLEntry
}

func (e *DuplicateACLError) Error() string {
	return fmt.Sprintf("duplicate ACL entry for principal %s: %s", e.Entry.Principal, e.Entry.ID())
}

// GroupByPrincipal groups entries per principal. Seeing the same entry twice
// is a modeling error and returns a *DuplicateACLError.
func GroupByPrincipal(entries []ACLEntry) (map[string]ACLSet, error) {
	out := make(map[string]ACLSet)
	for _, e := range entries {
		set, ok := out[e.Principal]
		if !ok {
			set = sets.New[ACLEntry]()
			out[e.Principal] = set
		}
		if set.Has(e) {
			return nil, &DuplicateACLError{Entry: e}
		}
		set.Insert(e)
	}
	return out, nil
}

// FlattenACLs returns all entries of a per-principal map ordered by ID.
func FlattenACLs(m map[string]ACLSet) []ACLEntry {
	all := sets.New[ACLEntry]()
	for _, s := range m {
		all = all.Union(s)
	}
	return SortedACLs(all)
}
