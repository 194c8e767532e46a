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

// Package config contains the configuration used to initialize the clients,
// the state backend and the reconcilers.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/redpanda-data/topology-builder/topology/access"
	"github.com/redpanda-data/topology-builder/topology/backend"
	"github.com/redpanda-data/topology-builder/topology/clients"
	"github.com/redpanda-data/topology-builder/topology/kclients"
	"github.com/redpanda-data/topology-builder/topology/models"
)

// Client properties keys.
const (
	BootstrapServers          = "bootstrap.servers"
	ClientID                  = "client.id"
	SecurityProtocol          = "security.protocol"
	SASLMechanism             = "sasl.mechanism"
	SASLUsername              = "sasl.username"
	SASLPassword              = "sasl.password"
	SSLCALocation             = "ssl.ca.location"
	SSLCertificateLocation    = "ssl.certificate.location"
	SSLKeyLocation            = "ssl.key.location"
	InternalPrefixes          = "topology.topic.internal.prefixes"
	StateBackend              = "topology.state.backend"
	StateFile                 = "topology.state.file"
	RedisHost                 = "redis.host"
	RedisPort                 = "redis.port"
	RedisKey                  = "redis.key"
	S3Bucket                  = "s3.bucket"
	S3Key                     = "s3.key"
	S3Region                  = "s3.region"
	SchemaRegistryURL         = "schema.registry.url"
	SchemaRegistryUsername    = "schema.registry.username"
	SchemaRegistryPassword    = "schema.registry.password"
	AccessControlImpl         = "topology.access.control.implementation"
	MDSServer                 = "mds.server"
	MDSUser                   = "mds.user"
	MDSPassword               = "mds.password"
	MDSKafkaClusterID         = "mds.kafka.cluster.id"
	MDSTimeout                = "mds.timeout.ms"
	AdminRequestsPerSecond    = "admin.requests.per.second"
	ExportContext             = "topology.export.context"
	defaultInternalPrefix     = "_"
	defaultRedisPort          = 6379
	defaultRequestsPerSecond  = 0
	defaultMDSTimeout         = 30 * time.Second
	defaultAccessControlImpl  = access.ImplementationACLs
	defaultBackendKind        = string(backend.KindFile)
	defaultSecurityProtocol   = "PLAINTEXT"
	saslSecurityProtocolInfix = "SASL"
)

// Environment variables read when the matching secret is not set in the
// client properties file.
const (
	SASLPasswordEnv           = "TOPOLOGY_BUILDER_SASL_PASSWORD"
	SchemaRegistryPasswordEnv = "TOPOLOGY_BUILDER_SCHEMA_REGISTRY_PASSWORD"
	MDSPasswordEnv            = "TOPOLOGY_BUILDER_MDS_PASSWORD"
)

// Mode is the direction of a run.
type Mode int

// Modes.
const (
	ModeImport Mode = iota
	ModeExport
)

// Options are the command line flags.
type Options struct {
	Topology     string
	Brokers      string
	ClientConfig string
	AllowDelete  bool
	DryRun       bool
	Quiet        bool
	Import       bool
	Export       bool
	Verbose      bool
}

// Config is the resolved configuration of a run.
type Config struct {
	Options
	Mode       Mode
	properties map[string]string
}

// New validates the flags and reads the client properties file.
func New(opts Options) (*Config, error) {
	if opts.Topology == "" {
		return nil, errors.New("--topology is required")
	}
	if opts.ClientConfig == "" {
		return nil, errors.New("--clientConfig is required")
	}
	if opts.Import && opts.Export {
		return nil, errors.New("--import and --export are mutually exclusive")
	}
	mode := ModeImport
	if opts.Export {
		mode = ModeExport
	}
	if mode == ModeImport {
		if _, err := os.Stat(opts.Topology); err != nil {
			return nil, errors.Wrap(err, "unable to read the topology")
		}
	}
	props, err := godotenv.Read(opts.ClientConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read the client config %s", opts.ClientConfig)
	}
	cfg := &Config{Options: opts, Mode: mode, properties: props}
	if cfg.Brokers == "" {
		cfg.Brokers = props[BootstrapServers]
	}
	if cfg.Brokers == "" {
		return nil, errors.Errorf("--brokers is required unless %s is set in the client config", BootstrapServers)
	}
	if _, err := backend.ParseKind(cfg.Property(StateBackend, defaultBackendKind)); err != nil {
		return nil, err
	}
	if _, err := access.NewBindingsBuilder(cfg.AccessControlImplementation(), cfg.Property(MDSKafkaClusterID, "")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Property returns the value of a client property, or def when unset.
func (c *Config) Property(key, def string) string {
	if v, ok := c.properties[key]; ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (c *Config) intProperty(key string, def int) (int, error) {
	v := c.Property(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return n, nil
}

func firstNonEmptyString(args ...string) string {
	for _, a := range args {
		if a != "" {
			return a
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// InternalTopicPrefixes returns the prefixes of topics never deleted.
func (c *Config) InternalTopicPrefixes() []string {
	return splitList(c.Property(InternalPrefixes, defaultInternalPrefix))
}

// Kafka returns the admin client configuration.
func (c *Config) Kafka() (*kclients.Config, error) {
	rps, err := c.intProperty(AdminRequestsPerSecond, defaultRequestsPerSecond)
	if err != nil {
		return nil, err
	}
	protocol := strings.ToUpper(c.Property(SecurityProtocol, defaultSecurityProtocol))
	cfg := &kclients.Config{
		Brokers:               splitList(c.Brokers),
		ClientID:              c.Property(ClientID, ""),
		TLSEnabled:            strings.Contains(protocol, "SSL"),
		CAFile:                c.Property(SSLCALocation, ""),
		CertFile:              c.Property(SSLCertificateLocation, ""),
		KeyFile:               c.Property(SSLKeyLocation, ""),
		InternalTopicPrefixes: c.InternalTopicPrefixes(),
		RequestsPerSecond:     rps,
	}
	if strings.Contains(protocol, saslSecurityProtocolInfix) {
		cfg.SASLMechanism = c.Property(SASLMechanism, "PLAIN")
		cfg.Username = c.Property(SASLUsername, "")
		cfg.Password = firstNonEmptyString(c.Property(SASLPassword, ""), os.Getenv(SASLPasswordEnv))
	}
	return cfg, nil
}

// BackendKind returns the configured state backend kind.
func (c *Config) BackendKind() string {
	return c.Property(StateBackend, defaultBackendKind)
}

// Backend returns the state backend configuration.
func (c *Config) Backend() (backend.Config, error) {
	port, err := c.intProperty(RedisPort, defaultRedisPort)
	if err != nil {
		return backend.Config{}, err
	}
	return backend.Config{
		File:      c.Property(StateFile, backend.DefaultStateFile),
		RedisHost: c.Property(RedisHost, ""),
		RedisPort: port,
		RedisKey:  c.Property(RedisKey, ""),
		S3Bucket:  c.Property(S3Bucket, ""),
		S3Key:     c.Property(S3Key, ""),
		S3Region:  c.Property(S3Region, ""),
	}, nil
}

// AccessControlImplementation returns acls or rbac.
func (c *Config) AccessControlImplementation() string {
	return strings.ToLower(c.Property(AccessControlImpl, defaultAccessControlImpl))
}

// MDS returns the role binding service configuration and whether one is
// configured.
func (c *Config) MDS() (clients.MDSConfig, bool, error) {
	server := c.Property(MDSServer, "")
	if server == "" {
		return clients.MDSConfig{}, false, nil
	}
	timeout, err := c.intProperty(MDSTimeout, int(defaultMDSTimeout/time.Millisecond))
	if err != nil {
		return clients.MDSConfig{}, false, err
	}
	return clients.MDSConfig{
		Server:         server,
		User:           c.Property(MDSUser, ""),
		Password:       firstNonEmptyString(c.Property(MDSPassword, ""), os.Getenv(MDSPasswordEnv)),
		KafkaClusterID: c.Property(MDSKafkaClusterID, ""),
		Timeout:        time.Duration(timeout) * time.Millisecond,
	}, true, nil
}

// SchemaRegistry returns the schema registry URL and credentials. An empty
// URL means no registry is configured.
func (c *Config) SchemaRegistry() (url, username, password string) {
	return c.Property(SchemaRegistryURL, ""),
		c.Property(SchemaRegistryUsername, ""),
		firstNonEmptyString(c.Property(SchemaRegistryPassword, ""), os.Getenv(SchemaRegistryPasswordEnv))
}

// ValidateWith checks the topology against this configuration before any
// cluster contact.
func (c *Config) ValidateWith(t *models.Topology) error {
	if strings.TrimSpace(t.Context) == "" {
		return errors.New("the topology has no context")
	}
	seen := make(map[string]string)
	for i := range t.Projects {
		p := &t.Projects[i]
		if p.Name == "" {
			return errors.Errorf("project %d of context %s has no name", i, t.Context)
		}
		for j := range p.Topics {
			topic := &p.Topics[j]
			name := t.TopicName(p, topic)
			if prev, ok := seen[name]; ok {
				return errors.Errorf("topic %s is declared twice, in projects %s and %s", name, prev, p.Name)
			}
			seen[name] = p.Name
			if _, err := topic.Partitions(); err != nil {
				return err
			}
			if _, err := topic.ReplicationFactor(); err != nil {
				return err
			}
			if topic.Schemas != nil && c.Property(SchemaRegistryURL, "") == "" {
				return errors.Errorf("topic %s declares schemas but %s is not set", name, SchemaRegistryURL)
			}
		}
		if len(p.RBAC) > 0 && c.AccessControlImplementation() != access.ImplementationRBAC {
			return errors.Errorf("project %s declares rbac bindings but %s is %s",
				p.Name, AccessControlImpl, c.AccessControlImplementation())
		}
	}
	if c.AccessControlImplementation() == access.ImplementationRBAC && c.Property(MDSServer, "") == "" {
		return errors.Errorf("%s is required when %s is %s", MDSServer, AccessControlImpl, access.ImplementationRBAC)
	}
	return nil
}
