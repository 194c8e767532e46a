package topology

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/golang/mock/gomock"
	"github.com/redpanda-data/topology-builder/topology/backend"
	"github.com/redpanda-data/topology-builder/topology/config"
	"github.com/redpanda-data/topology-builder/topology/kclients"
	"github.com/redpanda-data/topology-builder/topology/mocks"
	"github.com/redpanda-data/topology-builder/topology/models"
	"github.com/redpanda-data/topology-builder/topology/serdes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

const ordersTopology = `context: ctx
projects:
  - name: proj
    topics:
      - name: orders
    producers:
      - principal: User:producer
`

type fixture struct {
	dir     string
	admin   *mocks.MockAdminClient
	state   backend.Backend
	clients *Clients
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	admin := mocks.NewMockAdminClient(gomock.NewController(t))
	state := backend.NewFileBackend(filepath.Join(dir, backend.DefaultStateFile))
	return &fixture{
		dir:     dir,
		admin:   admin,
		state:   state,
		clients: &Clients{Admin: admin, State: state},
	}
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (f *fixture) config(t *testing.T, opts config.Options) *config.Config {
	t.Helper()
	opts.ClientConfig = f.write(t, "client.properties", "bootstrap.servers=localhost:9092\n")
	cfg, err := config.New(opts)
	require.NoError(t, err)
	return cfg
}

func TestImport(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(t, config.Options{Topology: f.write(t, "topology.yaml", ordersTopology)})
	ctx := context.Background()

	gomock.InOrder(
		f.admin.EXPECT().ListApplicationTopics(gomock.Any()).Return(nil, nil),
		f.admin.EXPECT().CreateTopic(gomock.Any(), "ctx.proj.orders", int32(3), int16(2), gomock.Any()).Return(nil),
		f.admin.EXPECT().CreateACLs(gomock.Any(), gomock.Any()).Return(nil),
		f.admin.EXPECT().ListTopics(gomock.Any()).Return([]string{"ctx.proj.orders"}, nil),
		f.admin.EXPECT().ListACLs(gomock.Any()).Return(nil, nil),
	)

	var out bytes.Buffer
	require.NoError(t, NewBuilder(cfg, f.clients, &out, nil).Run(ctx))
	assert.Equal(t, "List of Topics:\nctx.proj.orders\nList of ACLs:\nKafka Topology imported\n", out.String())

	saved, err := f.state.Load(ctx)
	require.NoError(t, err)
	assert.True(t, saved.ACLSet().Has(
		models.NewACLEntry("User:producer", models.ResourceTypeTopic, "ctx.proj.orders", models.OperationWrite)))
}

func TestImport_DryRun(t *testing.T) {
	f := newFixture(t)
	cfg := f.config(t, config.Options{Topology: f.write(t, "topology.yaml", ordersTopology), DryRun: true})
	ctx := context.Background()

	f.admin.EXPECT().ListApplicationTopics(gomock.Any()).Return(nil, nil)

	var out bytes.Buffer
	require.NoError(t, NewBuilder(cfg, f.clients, &out, nil).Run(ctx))
	assert.Contains(t, out.String(), "SyncTopic(topic=ctx.proj.orders, partitions=3, replicationFactor=2")
	assert.Contains(t, out.String(), "CreateBindings(")
	assert.NotContains(t, out.String(), "List of Topics:")

	saved, err := f.state.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, saved.ACLSet().Len())
}

func TestImport_InvalidTopologyTouchesNothing(t *testing.T) {
	f := newFixture(t)
	topo := ordersTopology + `  - name: proj
    topics:
      - name: orders
`
	cfg := f.config(t, config.Options{Topology: f.write(t, "topology.yaml", topo)})

	err := NewBuilder(cfg, f.clients, &bytes.Buffer{}, nil).Run(context.Background())
	assert.ErrorContains(t, err, "declared twice")
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.admin.EXPECT().ListApplicationTopics(gomock.Any()).Return([]string{"ctx.proj.orders"}, nil)
	f.admin.EXPECT().DescribeTopics(gomock.Any(), "ctx.proj.orders").Return(map[string]kclients.TopicDescription{
		"ctx.proj.orders": {Topic: "ctx.proj.orders", Replicas: [][]int32{{1, 2}, {2, 3}, {3, 1}}},
	}, nil)
	f.admin.EXPECT().DescribeTopicConfigs(gomock.Any(), kclients.ConfigScopeNonDefault, "ctx.proj.orders").Return(map[string]map[string]string{
		"ctx.proj.orders": {"cleanup.policy": "compact"},
	}, nil)
	f.admin.EXPECT().DescribeClusterConfig(gomock.Any()).Return(map[string]string{}, nil)
	f.admin.EXPECT().ListACLs(gomock.Any()).Return([]models.ACLEntry{
		models.NewACLEntry("User:producer", models.ResourceTypeTopic, "ctx.proj.orders", models.OperationDescribe),
		models.NewACLEntry("User:producer", models.ResourceTypeTopic, "ctx.proj.orders", models.OperationWrite),
	}, nil)

	target := filepath.Join(f.dir, "exported.yaml")
	cfg := f.config(t, config.Options{Topology: target, Export: true})

	var out bytes.Buffer
	require.NoError(t, NewBuilder(cfg, f.clients, &out, nil).Run(ctx))
	assert.Equal(t, "Kafka Topology exported\n", out.String())

	exported, err := serdes.Build(target)
	require.NoError(t, err)
	assert.Equal(t, "ctx", exported.Context)
	assert.Equal(t, []string{"ctx.proj.orders"}, exported.TopicNames())
	require.Len(t, exported.Projects, 1)
	p := exported.Projects[0]
	assert.Equal(t, "proj", p.Name)
	require.Len(t, p.Topics, 1)
	assert.Equal(t, "orders", p.Topics[0].Name)
	assert.Equal(t, "compact", p.Topics[0].Config["cleanup.policy"])
	assert.Equal(t, []models.Producer{{Principal: "User:producer"}}, p.Producers)
}

func TestNewCommand_Flags(t *testing.T) {
	for _, tt := range []struct {
		name string
		args []string
	}{
		{name: "missing topology", args: []string{"--clientConfig", "c.properties"}},
		{name: "missing client config", args: []string{"--topology", "t.yaml"}},
		{name: "import and export", args: []string{"--topology", "t.yaml", "--clientConfig", "c.properties", "--import", "--export"}},
		{name: "unknown flag", args: []string{"--topology", "t.yaml", "--clientConfig", "c.properties", "--zookeeper", "z"}},
		{name: "missing files", args: []string{"--topology", "missing.yaml", "--clientConfig", "missing.properties"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewCommand("test")
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			assert.Error(t, cmd.Execute())
		})
	}
}

func TestNewCommand_Version(t *testing.T) {
	cmd := NewCommand("1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
}
