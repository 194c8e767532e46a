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

// Package models contains the declared topology and the value types shared by
// the reconcilers.
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Topic configuration keys carrying the partition count and the replication
// factor of a declared topic.
const (
	NumPartitionsKey     = "num.partitions"
	ReplicationFactorKey = "replication.factor"
)

// Defaults applied when a declared topic omits its partition count or
// replication factor.
const (
	DefaultPartitions        int32 = 3
	DefaultReplicationFactor int16 = 2
)

// Topology is a declared cluster topology.
type Topology struct {
	Context  string    `yaml:"context"`
	Source   string    `yaml:"source,omitempty"`
	Projects []Project `yaml:"projects"`
	Platform Platform  `yaml:"platform,omitempty"`
}

// Project groups topics and the principals that use them.
type Project struct {
	Name       string                `yaml:"name"`
	Topics     []Topic               `yaml:"topics,omitempty"`
	Producers  []Producer            `yaml:"producers,omitempty"`
	Consumers  []Consumer            `yaml:"consumers,omitempty"`
	Streams    []KStream             `yaml:"streams,omitempty"`
	Connectors []Connector           `yaml:"connectors,omitempty"`
	RBAC       []RoleBindingDecl     `yaml:"rbac,omitempty"`
	RawACLs    map[string][]ACLEntry `yaml:"acls,omitempty"`

	// Unqualified projects name their topics verbatim, without the
	// context[.source].project prefix.
	Unqualified bool `yaml:"unqualified,omitempty"`
}

// Topic is a declared topic.
type Topic struct {
	Name     string            `yaml:"name"`
	DataType string            `yaml:"dataType,omitempty"`
	Config   map[string]string `yaml:"config,omitempty"`
	Schemas  *TopicSchemas     `yaml:"schemas,omitempty"`
}

// TopicSchemas points at the schema files registered for a topic's key and
// value subjects.
type TopicSchemas struct {
	KeySchemaFile   string `yaml:"key.schema.file,omitempty"`
	ValueSchemaFile string `yaml:"value.schema.file,omitempty"`
	Type            string `yaml:"type,omitempty"`
	Compatibility   string `yaml:"compatibility,omitempty"`
}

// Platform holds cluster-wide services that need access to the cluster.
type Platform struct {
	SchemaRegistry []SchemaRegistryInstance `yaml:"schema_registry,omitempty"`
}

// IsZero lets the YAML encoder omit an empty platform.
func (p Platform) IsZero() bool {
	return len(p.SchemaRegistry) == 0
}

// SchemaRegistryInstance is a schema registry principal.
type SchemaRegistryInstance struct {
	Principal string `yaml:"principal"`
	Topic     string `yaml:"topic,omitempty"`
	Group     string `yaml:"group,omitempty"`
}

// Producer is a principal writing to every topic of its project.
type Producer struct {
	Principal string `yaml:"principal"`
}

// Consumer is a principal reading every topic of its project.
type Consumer struct {
	Principal string `yaml:"principal"`
	Group     string `yaml:"group,omitempty"`
}

// TopicAccess lists the topics a streams application or connector reads
// and writes.
type TopicAccess struct {
	Read  []string `yaml:"read,omitempty"`
	Write []string `yaml:"write,omitempty"`
}

// KStream is a stream processing application.
type KStream struct {
	Principal     string      `yaml:"principal"`
	ApplicationID string      `yaml:"applicationId,omitempty"`
	Topics        TopicAccess `yaml:"topics"`
}

// Connector is a connect worker principal.
type Connector struct {
	Principal    string      `yaml:"principal"`
	Group        string      `yaml:"group,omitempty"`
	StatusTopic  string      `yaml:"status_topic,omitempty"`
	OffsetTopic  string      `yaml:"offset_topic,omitempty"`
	ConfigsTopic string      `yaml:"configs_topic,omitempty"`
	Topics       TopicAccess `yaml:"topics,omitempty"`
}

// RoleBindingDecl is a role binding declared directly in a project. An empty
// Resource binds the role on the project prefix.
type RoleBindingDecl struct {
	Principal    string `yaml:"principal"`
	Role         string `yaml:"role"`
	ResourceType string `yaml:"resourceType,omitempty"`
	Resource     string `yaml:"resource,omitempty"`
	PatternType  string `yaml:"patternType,omitempty"`
}

// ProjectPrefix returns context[.source].project.
func (t *Topology) ProjectPrefix(p *Project) string {
	parts := []string{t.Context}
	if t.Source != "" {
		parts = append(parts, t.Source)
	}
	parts = append(parts, p.Name)
	return strings.Join(parts, ".")
}

// TopicName returns the fully-qualified name of a declared topic:
// context[.source].project.topic[.dataType], or topic[.dataType] within an
// unqualified project.
func (t *Topology) TopicName(p *Project, topic *Topic) string {
	name := topic.Name
	if !p.Unqualified {
		name = t.ProjectPrefix(p) + "." + name
	}
	if topic.DataType != "" {
		name += "." + topic.DataType
	}
	return name
}

// TopicNames returns the fully-qualified names of every declared topic in
// declaration order.
func (t *Topology) TopicNames() []string {
	var names []string
	for i := range t.Projects {
		p := &t.Projects[i]
		for j := range p.Topics {
			names = append(names, t.TopicName(p, &p.Topics[j]))
		}
	}
	return names
}

// ProjectTopicNames returns the fully-qualified names of a project's topics.
func (t *Topology) ProjectTopicNames(p *Project) []string {
	names := make([]string, 0, len(p.Topics))
	for j := range p.Topics {
		names = append(names, t.TopicName(p, &p.Topics[j]))
	}
	return names
}

// Partitions returns the declared partition count.
func (t *Topic) Partitions() (int32, error) {
	v, ok := t.Config[NumPartitionsKey]
	if !ok || v == "" {
		return DefaultPartitions, nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("topic %s: invalid %s %q", t.Name, NumPartitionsKey, v)
	}
	return int32(n), nil
}

// ReplicationFactor returns the declared replication factor.
func (t *Topic) ReplicationFactor() (int16, error) {
	v, ok := t.Config[ReplicationFactorKey]
	if !ok || v == "" {
		return DefaultReplicationFactor, nil
	}
	n, err := strconv.ParseInt(v, 10, 16)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("topic %s: invalid %s %q", t.Name, ReplicationFactorKey, v)
	}
	return int16(n), nil
}

// TopicConfig returns the declared configuration without the partition count
// and replication factor keys.
func (t *Topic) TopicConfig() map[string]string {
	out := make(map[string]string, len(t.Config))
	for k, v := range t.Config {
		if k == NumPartitionsKey || k == ReplicationFactorKey {
			continue
		}
		out[k] = v
	}
	return out
}
