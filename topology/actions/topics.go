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
	"os"
	"sort"
	"strings"

	"github.com/redpanda-data/topology-builder/topology/kclients"
	"github.com/redpanda-data/topology-builder/topology/models"
	"github.com/redpanda-data/topology-builder/topology/utils"
	"go.uber.org/zap"
)

// SyncTopic creates a topic, or brings an existing one in line with its
// declaration.
type SyncTopic struct {
	Admin   kclients.AdminClient
	Schemas kclients.SchemaRegistryClient
	Logger  *zap.Logger

	Topic             string
	Partitions        int32
	ReplicationFactor int16
	Config            map[string]string
	Schema            *models.TopicSchemas
	// Exists is whether the topic was observed when the plan was built.
	Exists bool
}

var _ Action = (*SyncTopic)(nil)

func (*SyncTopic) action() {}

// Kind implements Action.
func (*SyncTopic) Kind() Kind { return KindSyncTopic }

func (a *SyncTopic) String() string {
	s := fmt.Sprintf("SyncTopic(topic=%s, partitions=%d, replicationFactor=%d, config=%s)",
		a.Topic, a.Partitions, a.ReplicationFactor, renderConfig(a.Config))
	if a.Schema != nil {
		s += fmt.Sprintf(" schemas(key=%s, value=%s)", a.Schema.KeySchemaFile, a.Schema.ValueSchemaFile)
	}
	return s
}

func (a *SyncTopic) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// Run implements Action.
func (a *SyncTopic) Run(ctx context.Context) error {
	if !a.Exists {
		err := a.Admin.CreateTopic(ctx, a.Topic, a.Partitions, a.ReplicationFactor, a.Config)
		switch {
		case err == nil:
			a.logger().Info("created topic", zap.String("topic", a.Topic))
			return a.registerSchemas(ctx)
		case utils.IsAlreadyExists(err):
			a.logger().Debug("topic already exists, updating instead", zap.String("topic", a.Topic))
		default:
			return fmt.Errorf("unable to create topic %s: %w", a.Topic, err)
		}
	}
	if err := a.update(ctx); err != nil {
		return err
	}
	return a.registerSchemas(ctx)
}

func (a *SyncTopic) update(ctx context.Context) error {
	configs, err := a.Admin.DescribeTopicConfigs(ctx, kclients.ConfigScopeDynamic, a.Topic)
	if err != nil {
		return err
	}
	set, remove := diffConfig(configs[a.Topic], a.Config)
	if len(set) > 0 || len(remove) > 0 {
		if err := a.Admin.AlterTopicConfig(ctx, a.Topic, set, remove); err != nil {
			return fmt.Errorf("unable to update config of topic %s: %w", a.Topic, err)
		}
		a.logger().Info("updated topic config", zap.String("topic", a.Topic), zap.Int("set", len(set)), zap.Strings("removed", remove))
	}

	desc, err := a.Admin.DescribeTopics(ctx, a.Topic)
	if err != nil {
		return err
	}
	current := int32(len(desc[a.Topic].Replicas))
	switch {
	case a.Partitions > current:
		if err := a.Admin.UpdatePartitions(ctx, a.Topic, a.Partitions); err != nil {
			return err
		}
		a.logger().Info("increased topic partitions", zap.String("topic", a.Topic), zap.Int32("from", current), zap.Int32("to", a.Partitions))
	case a.Partitions < current:
		a.logger().Warn("partition count cannot be decreased, keeping the current count",
			zap.String("topic", a.Topic), zap.Int32("current", current), zap.Int32("declared", a.Partitions))
	}
	return nil
}

// diffConfig returns the keys to set and the dynamic overrides to remove so
// that current matches desired.
func diffConfig(current, desired map[string]string) (set map[string]string, remove []string) {
	set = make(map[string]string)
	for k, v := range desired {
		if cur, ok := current[k]; !ok || cur != v {
			set[k] = v
		}
	}
	for k := range current {
		if _, ok := desired[k]; !ok {
			remove = append(remove, k)
		}
	}
	sort.Strings(remove)
	return set, remove
}

func (a *SyncTopic) registerSchemas(ctx context.Context) error {
	if a.Schema == nil || (a.Schema.KeySchemaFile == "" && a.Schema.ValueSchemaFile == "") {
		return nil
	}
	if a.Schemas == nil {
		return fmt.Errorf("topic %s declares schemas but no schema registry is configured", a.Topic)
	}
	for _, s := range []struct{ suffix, file string }{
		{"key", a.Schema.KeySchemaFile},
		{"value", a.Schema.ValueSchemaFile},
	} {
		if s.file == "" {
			continue
		}
		raw, err := os.ReadFile(s.file)
		if err != nil {
			return fmt.Errorf("unable to read %s schema of topic %s: %w", s.suffix, a.Topic, err)
		}
		subject := a.Topic + "-" + s.suffix
		id, err := a.Schemas.RegisterSchema(ctx, subject, a.Schema.Type, strings.TrimSpace(string(raw)))
		if err != nil {
			return err
		}
		if err := a.Schemas.SetSubjectCompatibility(ctx, subject, a.Schema.Compatibility); err != nil {
			return err
		}
		a.logger().Info("registered schema", zap.String("subject", subject), zap.Int("id", id))
	}
	return nil
}

// DeleteTopics deletes a batch of topics.
type DeleteTopics struct {
	Admin  kclients.AdminClient
	Topics []string
}

var _ Action = (*DeleteTopics)(nil)

func (*DeleteTopics) action() {}

// Kind implements Action.
func (*DeleteTopics) Kind() Kind { return KindDeleteTopics }

func (a *DeleteTopics) String() string {
	return renderList(fmt.Sprintf("DeleteTopics(%d)", len(a.Topics)), a.Topics)
}

// Run implements Action.
func (a *DeleteTopics) Run(ctx context.Context) error {
	return a.Admin.DeleteTopics(ctx, a.Topics...)
}
