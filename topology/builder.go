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

// Package topology applies declared topologies to a cluster and exports the
// topology of a running cluster.
package topology

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/redpanda-data/topology-builder/topology/access"
	"github.com/redpanda-data/topology-builder/topology/actions"
	"github.com/redpanda-data/topology-builder/topology/backend"
	"github.com/redpanda-data/topology-builder/topology/clients"
	"github.com/redpanda-data/topology-builder/topology/clusterstate"
	"github.com/redpanda-data/topology-builder/topology/config"
	"github.com/redpanda-data/topology-builder/topology/kclients"
	"github.com/redpanda-data/topology-builder/topology/serdes"
	"github.com/redpanda-data/topology-builder/topology/topics"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Clients are the collaborators of a Builder. Schemas, RegistryACLs and MDS
// are nil when the matching service is not configured.
type Clients struct {
	Admin        kclients.AdminClient
	Schemas      kclients.SchemaRegistryClient
	RegistryACLs kclients.SchemaRegistryACLClientInterface
	MDS          clients.MDSClient
	State        backend.Backend
}

// Close releases the admin client and the state backend.
func (c *Clients) Close() error {
	if c.Admin != nil {
		c.Admin.Close()
	}
	if c.State != nil {
		return c.State.Close()
	}
	return nil
}

// Connect creates the clients described by cfg.
func Connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Clients, error) {
	kcfg, err := cfg.Kafka()
	if err != nil {
		return nil, err
	}
	admin, err := kclients.NewKafkaAdminClient(kcfg, logger)
	if err != nil {
		return nil, fmt.Errorf("unable to create the admin client: %w", err)
	}
	c := &Clients{Admin: admin}

	if url, user, pass := cfg.SchemaRegistry(); url != "" {
		srClient, err := kclients.NewSchemaRegistryClient(url, user, pass)
		if err != nil {
			return nil, multierr.Append(err, c.Close())
		}
		c.Schemas = kclients.NewSRClient(srClient)
		if c.RegistryACLs, err = kclients.NewSchemaRegistryACLClient(srClient); err != nil {
			return nil, multierr.Append(err, c.Close())
		}
	}

	mdsCfg, ok, err := cfg.MDS()
	if err != nil {
		return nil, multierr.Append(err, c.Close())
	}
	if ok {
		mds, err := clients.NewMDSClient(mdsCfg, logger)
		if err != nil {
			return nil, multierr.Append(err, c.Close())
		}
		if err := mds.Login(ctx); err != nil {
			return nil, multierr.Append(fmt.Errorf("unable to log in to %s: %w", mdsCfg.Server, err), c.Close())
		}
		c.MDS = mds
	}

	bcfg, err := cfg.Backend()
	if err != nil {
		return nil, multierr.Append(err, c.Close())
	}
	if c.State, err = backend.New(cfg.BackendKind(), bcfg); err != nil {
		return nil, multierr.Append(err, c.Close())
	}
	return c, nil
}

// Builder runs one import or export.
type Builder struct {
	cfg     *config.Config
	clients *Clients
	out     io.Writer
	logger  *zap.Logger
}

// NewBuilder returns a Builder writing its reports to out.
func NewBuilder(cfg *config.Config, c *Clients, out io.Writer, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{cfg: cfg, clients: c, out: out, logger: logger}
}

// Run imports or exports depending on the configured mode.
func (b *Builder) Run(ctx context.Context) error {
	if b.cfg.Mode == config.ModeExport {
		return b.Export(ctx)
	}
	return b.Import(ctx)
}

// Import reconciles the cluster with the declared topology: topics first,
// then access.
func (b *Builder) Import(ctx context.Context) error {
	t, err := serdes.Build(b.cfg.Topology)
	if err != nil {
		return err
	}
	if err := b.cfg.ValidateWith(t); err != nil {
		return err
	}
	if ce := b.logger.Check(zap.DebugLevel, "declared topology"); ce != nil {
		ce.Write(zap.String("topology", spew.Sdump(t)))
	}

	builder, err := access.NewBindingsBuilder(b.cfg.AccessControlImplementation(), b.cfg.Property(config.MDSKafkaClusterID, ""))
	if err != nil {
		return err
	}
	executor := actions.NewExecutor(b.cfg.DryRun, b.out, b.logger)
	topicManager := topics.NewManager(b.clients.Admin, b.clients.Schemas, topics.Options{
		AllowDelete:      b.cfg.AllowDelete,
		InternalPrefixes: b.cfg.InternalTopicPrefixes(),
	}, b.logger.Named("topics"))
	accessManager := access.NewManager(access.ManagerOpts{
		Builder:     builder,
		State:       b.clients.State,
		Admin:       b.clients.Admin,
		Registry:    b.clients.RegistryACLs,
		MDS:         b.clients.MDS,
		AllowDelete: b.cfg.AllowDelete,
		Logger:      b.logger.Named("access"),
	})

	if err := topicManager.Sync(ctx, t, executor); err != nil {
		return err
	}
	if err := accessManager.Sync(ctx, t, executor); err != nil {
		return err
	}

	if !b.cfg.Quiet && !b.cfg.DryRun {
		if err := topicManager.PrintCurrentState(ctx, b.out); err != nil {
			return err
		}
		if err := accessManager.PrintCurrentState(ctx, b.out); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(b.out, "Kafka Topology imported")
	return err
}

// Export reads the cluster and writes the generated topology to the
// topology file, or to the output when the file is "-".
func (b *Builder) Export(ctx context.Context) error {
	state, err := clusterstate.NewProvider(b.clients.Admin, b.clients.RegistryACLs, b.clients.MDS, b.logger.Named("clusterstate")).Read(ctx)
	if err != nil {
		return err
	}
	if ce := b.logger.Check(zap.DebugLevel, "cluster state"); ce != nil {
		ce.Write(zap.String("state", spew.Sdump(state)))
	}
	t, err := (&clusterstate.Generator{Context: b.cfg.Property(config.ExportContext, "")}).Generate(state)
	if err != nil {
		return err
	}
	raw, err := serdes.Serialise(t)
	if err != nil {
		return err
	}
	if b.cfg.Topology == "-" {
		if _, err := b.out.Write(raw); err != nil {
			return err
		}
	} else if err := os.WriteFile(b.cfg.Topology, raw, 0o644); err != nil {
		return fmt.Errorf("unable to write %s: %w", b.cfg.Topology, err)
	}
	_, err = fmt.Fprintln(b.out, "Kafka Topology exported")
	return err
}
