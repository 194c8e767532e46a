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
	"sort"

	"github.com/redpanda-data/topology-builder/topology/models"
)

// Fixed resource names of a connect worker.
const (
	ConnectClusterResource = "kafka-cluster"
	ConnectGroup           = "connect-cluster"
	ConnectOffsetsTopic    = "connect-offsets"
	ConnectStatusTopic     = "connect-status"
	ConnectConfigsTopic    = "connect-configs"
)

// Role is a role a principal can be inferred to play.
type Role int

// Roles.
const (
	RoleProducer Role = 1 << iota
	RoleConsumer
	RoleStreams
	RoleConnector
)

// Roles is a set of roles.
type Roles int

// Has reports whether r is in the set.
func (rs Roles) Has(r Role) bool { return int(rs)&int(r) != 0 }

func (r Role) String() string {
	switch r {
	case RoleProducer:
		return "producer"
	case RoleConsumer:
		return "consumer"
	case RoleStreams:
		return "streams"
	case RoleConnector:
		return "connector"
	default:
		return "unknown"
	}
}

// Classify returns every role whose predicate holds for principal over the
// topics in scope.
func Classify(topics []string, principal string, entries models.ACLSet) Roles {
	var rs Roles
	if IsProducer(topics, principal, entries) {
		rs |= Roles(RoleProducer)
	}
	if IsConsumer(topics, principal, entries) {
		rs |= Roles(RoleConsumer)
	}
	if IsStreams(entries) {
		rs |= Roles(RoleStreams)
	}
	if IsConnector(principal, entries) {
		rs |= Roles(RoleConnector)
	}
	return rs
}

func allow(principal string, rt models.ResourceType, resource string, op models.Operation) models.ACLEntry {
	return models.NewACLEntry(principal, rt, resource, op)
}

// IsProducer reports whether principal holds DESCRIBE and WRITE on every
// topic in scope. An empty scope never classifies.
func IsProducer(topics []string, principal string, entries models.ACLSet) bool {
	if len(topics) == 0 {
		return false
	}
	for _, t := range topics {
		if !entries.HasAll(
			allow(principal, models.ResourceTypeTopic, t, models.OperationDescribe),
			allow(principal, models.ResourceTypeTopic, t, models.OperationWrite),
		) {
			return false
		}
	}
	return true
}

// IsConsumer reports whether principal holds DESCRIBE and READ on every topic
// in scope plus READ on at least one group.
func IsConsumer(topics []string, principal string, entries models.ACLSet) bool {
	if len(topics) == 0 {
		return false
	}
	for _, t := range topics {
		if !entries.HasAll(
			allow(principal, models.ResourceTypeTopic, t, models.OperationDescribe),
			allow(principal, models.ResourceTypeTopic, t, models.OperationRead),
		) {
			return false
		}
	}
	_, ok := consumerGroup(entries)
	return ok
}

// IsStreams reports whether the entries hold ALL on a prefixed topic pattern.
func IsStreams(entries models.ACLSet) bool {
	_, ok := streamsPrefix(entries)
	return ok
}

// IsConnector reports whether principal holds CREATE on the cluster, READ on
// the connect group and READ and WRITE on the three connect topics.
func IsConnector(principal string, entries models.ACLSet) bool {
	required := []models.ACLEntry{
		allow(principal, models.ResourceTypeCluster, ConnectClusterResource, models.OperationCreate),
		allow(principal, models.ResourceTypeGroup, ConnectGroup, models.OperationRead),
	}
	for _, t := range []string{ConnectOffsetsTopic, ConnectStatusTopic, ConnectConfigsTopic} {
		required = append(required,
			allow(principal, models.ResourceTypeTopic, t, models.OperationRead),
			allow(principal, models.ResourceTypeTopic, t, models.OperationWrite),
		)
	}
	return entries.HasAll(required...)
}

func isAllowAnyHost(e models.ACLEntry, rt models.ResourceType, op models.Operation) bool {
	return e.Permission == models.PermissionAllow && e.Host == models.AnyHost &&
		e.ResourceType == rt && e.Operation == op
}

func isGroupRead(e models.ACLEntry) bool {
	if !isAllowAnyHost(e, models.ResourceTypeGroup, models.OperationRead) {
		return false
	}
	return e.PatternType == models.PatternTypeLiteral ||
		(e.PatternType == models.PatternTypePrefixed && e.Resource == "*")
}

// consumerGroup returns the lowest group the entries grant READ on.
func consumerGroup(entries models.ACLSet) (string, bool) {
	var groups []string
	for e := range entries {
		if isGroupRead(e) {
			groups = append(groups, e.Resource)
		}
	}
	if len(groups) == 0 {
		return "", false
	}
	sort.Strings(groups)
	return groups[0], true
}

// streamsPrefix returns the lowest topic prefix the entries grant ALL on.
func streamsPrefix(entries models.ACLSet) (string, bool) {
	var prefixes []string
	for e := range entries {
		if isAllowAnyHost(e, models.ResourceTypeTopic, models.OperationAll) && e.PatternType == models.PatternTypePrefixed {
			prefixes = append(prefixes, e.Resource)
		}
	}
	if len(prefixes) == 0 {
		return "", false
	}
	sort.Strings(prefixes)
	return prefixes[0], true
}

// literalTopics returns the sorted topics the entries grant op on with a
// LITERAL pattern.
func literalTopics(entries models.ACLSet, op models.Operation) []string {
	var out []string
	for e := range entries {
		if isAllowAnyHost(e, models.ResourceTypeTopic, op) && e.PatternType == models.PatternTypeLiteral {
			out = append(out, e.Resource)
		}
	}
	sort.Strings(out)
	return out
}
