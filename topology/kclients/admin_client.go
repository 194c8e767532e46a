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

package kclients

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redpanda-data/topology-builder/topology/models"
	"github.com/redpanda-data/topology-builder/topology/utils"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/kmsg"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	retryTimeout = 30 * time.Second
	retryWait    = 500 * time.Millisecond
)

// AdminClient is the administrative protocol client the reconcilers use.
type AdminClient interface {
	// ListTopics returns the sorted names of every topic, internal ones
	// included.
	ListTopics(ctx context.Context) ([]string, error)
	// ListApplicationTopics returns the sorted names of the topics that are
	// neither internal to the cluster nor match an internal prefix.
	ListApplicationTopics(ctx context.Context) ([]string, error)
	DescribeTopics(ctx context.Context, topics ...string) (map[string]TopicDescription, error)
	// DescribeTopicConfigs returns the configuration of each topic, narrowed
	// to the entries scope selects.
	DescribeTopicConfigs(ctx context.Context, scope ConfigScope, topics ...string) (map[string]map[string]string, error)
	DescribeClusterConfig(ctx context.Context) (map[string]string, error)
	CreateTopic(ctx context.Context, topic string, partitions int32, replicationFactor int16, configs map[string]string) error
	AlterTopicConfig(ctx context.Context, topic string, set map[string]string, remove []string) error
	UpdatePartitions(ctx context.Context, topic string, partitions int32) error
	DeleteTopics(ctx context.Context, topics ...string) error
	// ListACLs returns every ACL of the cluster.
	ListACLs(ctx context.Context) ([]models.ACLEntry, error)
	CreateACLs(ctx context.Context, entries []models.ACLEntry) error
	DeleteACLs(ctx context.Context, entries []models.ACLEntry) error
	Close()
}

// TopicDescription is the partition layout of a topic.
type TopicDescription struct {
	Topic string
	// Replicas holds, per partition index, the ordered broker ids.
	Replicas [][]int32
}

// ConfigScope selects the topic configuration entries DescribeTopicConfigs
// returns.
type ConfigScope int

const (
	// ConfigScopeDynamic keeps the per-topic overrides only. Syncing diffs
	// against these, so that it never removes inherited values.
	ConfigScopeDynamic ConfigScope = iota
	// ConfigScopeNonDefault keeps every entry that is not a built-in
	// default, broker level overrides included.
	ConfigScopeNonDefault
)

// KafkaAdminClient implements AdminClient with franz-go.
type KafkaAdminClient struct {
	cl               *kgo.Client
	adm              *kadm.Client
	limiter          *rateLimiter
	internalPrefixes []string
	logger           *zap.Logger
}

var _ AdminClient = (*KafkaAdminClient)(nil)

// NewKafkaAdminClient creates an admin client for the configured cluster.
func NewKafkaAdminClient(cfg *Config, logger *zap.Logger) (*KafkaAdminClient, error) {
	limiter := newRateLimiter(cfg.RequestsPerSecond, logger)
	opts, err := clientOptions(cfg, logger, limiter)
	if err != nil {
		return nil, err
	}
	cl, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create kafka client: %w", err)
	}
	return &KafkaAdminClient{
		cl:               cl,
		adm:              kadm.NewClient(cl),
		limiter:          limiter,
		internalPrefixes: cfg.InternalTopicPrefixes,
		logger:           logger,
	}, nil
}

// IsInternalTopic reports whether topic starts with any of the prefixes.
func IsInternalTopic(topic string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(topic, p) {
			return true
		}
	}
	return false
}

func (c *KafkaAdminClient) listTopics(ctx context.Context, withInternal bool) (kadm.TopicDetails, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if withInternal {
		return c.adm.ListTopicsWithInternal(ctx)
	}
	return c.adm.ListTopics(ctx)
}

// ListTopics implements AdminClient.
func (c *KafkaAdminClient) ListTopics(ctx context.Context) ([]string, error) {
	details, err := c.listTopics(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("unable to list topics: %w", err)
	}
	names := make([]string, 0, len(details))
	for name := range details {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ListApplicationTopics implements AdminClient.
func (c *KafkaAdminClient) ListApplicationTopics(ctx context.Context) ([]string, error) {
	details, err := c.listTopics(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("unable to list topics: %w", err)
	}
	names := make([]string, 0, len(details))
	for name, d := range details {
		if d.IsInternal || IsInternalTopic(name, c.internalPrefixes) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DescribeTopics implements AdminClient.
func (c *KafkaAdminClient) DescribeTopics(ctx context.Context, topics ...string) (map[string]TopicDescription, error) {
	if len(topics) == 0 {
		return map[string]TopicDescription{}, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	details, err := c.adm.ListTopicsWithInternal(ctx, topics...)
	if err != nil {
		return nil, fmt.Errorf("unable to describe topics: %w", err)
	}
	out := make(map[string]TopicDescription, len(details))
	for name, d := range details {
		if d.Err != nil {
			return nil, fmt.Errorf("unable to describe topic %s: %w", name, d.Err)
		}
		var n int32
		for p := range d.Partitions {
			if p+1 > n {
				n = p + 1
			}
		}
		replicas := make([][]int32, n)
		for p, pd := range d.Partitions {
			replicas[p] = append([]int32(nil), pd.Replicas...)
		}
		out[name] = TopicDescription{Topic: name, Replicas: replicas}
	}
	return out, nil
}

// DescribeTopicConfigs implements AdminClient.
func (c *KafkaAdminClient) DescribeTopicConfigs(ctx context.Context, scope ConfigScope, topics ...string) (map[string]map[string]string, error) {
	if len(topics) == 0 {
		return map[string]map[string]string{}, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	rcs, err := c.adm.DescribeTopicConfigs(ctx, topics...)
	if err != nil {
		return nil, fmt.Errorf("unable to describe topic configs: %w", err)
	}
	out := make(map[string]map[string]string, len(rcs))
	for _, rc := range rcs {
		if rc.Err != nil {
			return nil, fmt.Errorf("unable to describe configs of topic %s: %w", rc.Name, rc.Err)
		}
		out[rc.Name] = filterConfig(rc.Configs, scope)
	}
	return out, nil
}

func filterConfig(configs []kadm.Config, scope ConfigScope) map[string]string {
	filtered := make(map[string]string)
	for _, cfg := range configs {
		if cfg.Value == nil {
			continue
		}
		switch scope {
		case ConfigScopeNonDefault:
			if cfg.Source == kmsg.ConfigSourceDefaultConfig || cfg.Sensitive {
				continue
			}
		default:
			if cfg.Source != kmsg.ConfigSourceDynamicTopicConfig {
				continue
			}
		}
		filtered[cfg.Key] = *cfg.Value
	}
	return filtered
}

// DescribeClusterConfig implements AdminClient. Only non-default entries are
// returned.
func (c *KafkaAdminClient) DescribeClusterConfig(ctx context.Context) (map[string]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	rcs, err := c.adm.DescribeBrokerConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to describe cluster config: %w", err)
	}
	out := make(map[string]string)
	for _, rc := range rcs {
		if rc.Err != nil {
			return nil, fmt.Errorf("unable to describe cluster config: %w", rc.Err)
		}
		for _, cfg := range rc.Configs {
			if cfg.Source == kmsg.ConfigSourceDefaultConfig || cfg.Value == nil || cfg.Sensitive {
				continue
			}
			out[cfg.Key] = *cfg.Value
		}
	}
	return out, nil
}

// CreateTopic implements AdminClient.
func (c *KafkaAdminClient) CreateTopic(ctx context.Context, topic string, partitions int32, replicationFactor int16, configs map[string]string) error {
	cfgs := make(map[string]*string, len(configs))
	for k, v := range configs {
		cfgs[k] = kadm.StringPtr(v)
	}
	return utils.RetryKafka(ctx, c.logger, retryTimeout, retryWait, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		resp, err := c.adm.CreateTopic(ctx, partitions, replicationFactor, cfgs, topic)
		if err != nil {
			return err
		}
		return resp.Err
	})
}

// AlterTopicConfig implements AdminClient.
func (c *KafkaAdminClient) AlterTopicConfig(ctx context.Context, topic string, set map[string]string, remove []string) error {
	var alters []kadm.AlterConfig
	for k, v := range set {
		alters = append(alters, kadm.AlterConfig{Op: kadm.SetConfig, Name: k, Value: kadm.StringPtr(v)})
	}
	for _, k := range remove {
		alters = append(alters, kadm.AlterConfig{Op: kadm.DeleteConfig, Name: k})
	}
	if len(alters) == 0 {
		return nil
	}
	return utils.RetryKafka(ctx, c.logger, retryTimeout, retryWait, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		resps, err := c.adm.AlterTopicConfigs(ctx, alters, topic)
		if err != nil {
			return err
		}
		for _, r := range resps {
			if r.Err != nil {
				return fmt.Errorf("unable to alter configs of topic %s: %w", r.Name, r.Err)
			}
		}
		return nil
	})
}

// UpdatePartitions implements AdminClient.
func (c *KafkaAdminClient) UpdatePartitions(ctx context.Context, topic string, partitions int32) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	resps, err := c.adm.UpdatePartitions(ctx, int(partitions), topic)
	if err != nil {
		return fmt.Errorf("unable to update partitions of topic %s: %w", topic, err)
	}
	for _, r := range resps {
		if r.Err != nil {
			return fmt.Errorf("unable to update partitions of topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// DeleteTopics implements AdminClient. Topics already gone are not an error.
func (c *KafkaAdminClient) DeleteTopics(ctx context.Context, topics ...string) error {
	if len(topics) == 0 {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	resps, err := c.adm.DeleteTopics(ctx, topics...)
	if err != nil {
		return fmt.Errorf("unable to delete topics: %w", err)
	}
	var errs error
	for _, r := range resps {
		errs = multierr.Append(errs, utils.HandleGracefulRemoval(c.logger, "topic", r.Topic, r.Err, "delete topic "+r.Topic))
	}
	return errs
}

// ListACLs implements AdminClient.
func (c *KafkaAdminClient) ListACLs(ctx context.Context) ([]models.ACLEntry, error) {
	req := kmsg.NewPtrDescribeACLsRequest()
	req.ResourceType = kmsg.ACLResourceTypeAny
	req.ResourcePatternType = kmsg.ACLResourcePatternTypeAny
	req.Operation = kmsg.ACLOperationAny
	req.PermissionType = kmsg.ACLPermissionTypeAny

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := req.RequestWith(ctx, c.cl)
	if err != nil {
		return nil, fmt.Errorf("unable to list ACLs: %w", err)
	}
	if err := kerr.ErrorForCode(resp.ErrorCode); err != nil {
		return nil, fmt.Errorf("unable to list ACLs: %w", withMessage(err, resp.ErrorMessage))
	}

	var entries []models.ACLEntry
	for _, r := range resp.Resources {
		for _, a := range r.ACLs {
			entry, err := entryFromKmsg(a.Principal, a.Host, r.ResourceName, r.ResourceType, r.ResourcePatternType, a.Operation, a.PermissionType)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// CreateACLs implements AdminClient.
func (c *KafkaAdminClient) CreateACLs(ctx context.Context, entries []models.ACLEntry) error {
	if len(entries) == 0 {
		return nil
	}
	req := kmsg.NewPtrCreateACLsRequest()
	for _, e := range entries {
		k, err := entryToKmsg(e)
		if err != nil {
			return err
		}
		creation := kmsg.NewCreateACLsRequestCreation()
		creation.ResourceType = k.resourceType
		creation.ResourceName = e.Resource
		creation.ResourcePatternType = k.patternType
		creation.Principal = e.Principal
		creation.Host = e.Host
		creation.Operation = k.operation
		creation.PermissionType = k.permission
		req.Creations = append(req.Creations, creation)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	resp, err := req.RequestWith(ctx, c.cl)
	if err != nil {
		return fmt.Errorf("unable to create ACLs: %w", err)
	}
	var errs error
	for i, r := range resp.Results {
		if err := kerr.ErrorForCode(r.ErrorCode); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to create ACL %s: %w", entries[i].ID(), withMessage(err, r.ErrorMessage)))
		}
	}
	return errs
}

// DeleteACLs implements AdminClient. Each entry is deleted with an exact
// match filter.
func (c *KafkaAdminClient) DeleteACLs(ctx context.Context, entries []models.ACLEntry) error {
	if len(entries) == 0 {
		return nil
	}
	req := kmsg.NewPtrDeleteACLsRequest()
	for _, e := range entries {
		k, err := entryToKmsg(e)
		if err != nil {
			return err
		}
		filter := kmsg.NewDeleteACLsRequestFilter()
		filter.ResourceType = k.resourceType
		filter.ResourceName = kmsg.StringPtr(e.Resource)
		filter.ResourcePatternType = k.patternType
		filter.Principal = kmsg.StringPtr(e.Principal)
		filter.Host = kmsg.StringPtr(e.Host)
		filter.Operation = k.operation
		filter.PermissionType = k.permission
		req.Filters = append(req.Filters, filter)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	resp, err := req.RequestWith(ctx, c.cl)
	if err != nil {
		return fmt.Errorf("unable to delete ACLs: %w", err)
	}
	var errs error
	for i, r := range resp.Results {
		if err := kerr.ErrorForCode(r.ErrorCode); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to delete ACL %s: %w", entries[i].ID(), withMessage(err, r.ErrorMessage)))
		}
	}
	return errs
}

// Close implements AdminClient.
func (c *KafkaAdminClient) Close() {
	c.adm.Close()
}

func withMessage(err error, msg *string) error {
	if msg == nil || *msg == "" {
		return err
	}
	return fmt.Errorf("%w: %s", err, *msg)
}

type kmsgACL struct {
	resourceType kmsg.ACLResourceType
	patternType  kmsg.ACLResourcePatternType
	operation    kmsg.ACLOperation
	permission   kmsg.ACLPermissionType
}

func entryToKmsg(e models.ACLEntry) (kmsgACL, error) {
	var (
		k   kmsgACL
		err error
	)
	if e.IsSchemaRegistry() {
		return k, fmt.Errorf("ACL %s targets the schema registry and cannot be sent to the brokers", e.ID())
	}
	if k.resourceType, err = kmsg.ParseACLResourceType(string(e.ResourceType)); err != nil {
		return k, fmt.Errorf("ACL %s: %w", e.ID(), err)
	}
	if k.patternType, err = kmsg.ParseACLResourcePatternType(string(e.PatternType)); err != nil {
		return k, fmt.Errorf("ACL %s: %w", e.ID(), err)
	}
	if k.operation, err = kmsg.ParseACLOperation(string(e.Operation)); err != nil {
		return k, fmt.Errorf("ACL %s: %w", e.ID(), err)
	}
	if k.permission, err = kmsg.ParseACLPermissionType(string(e.Permission)); err != nil {
		return k, fmt.Errorf("ACL %s: %w", e.ID(), err)
	}
	return k, nil
}

func entryFromKmsg(principal, host, resource string, rt kmsg.ACLResourceType, pt kmsg.ACLResourcePatternType, op kmsg.ACLOperation, perm kmsg.ACLPermissionType) (models.ACLEntry, error) {
	resourceType, err := models.ParseResourceType(rt.String())
	if err != nil {
		return models.ACLEntry{}, err
	}
	patternType, err := models.ParsePatternType(pt.String())
	if err != nil {
		return models.ACLEntry{}, err
	}
	operation, err := models.ParseOperation(op.String())
	if err != nil {
		return models.ACLEntry{}, err
	}
	permission, err := models.ParsePermission(perm.String())
	if err != nil {
		return models.ACLEntry{}, err
	}
	return models.ACLEntry{
		Principal:    principal,
		Host:         host,
		Resource:     resource,
		ResourceType: resourceType,
		PatternType:  patternType,
		Operation:    operation,
		Permission:   permission,
	}, nil
}
