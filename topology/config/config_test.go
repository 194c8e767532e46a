package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redpanda-data/topology-builder/topology/backend"
	"github.com/redpanda-data/topology-builder/topology/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProps(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client.properties")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeTopology(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topology.yaml")
	require.NoError(t, os.WriteFile(path, []byte("context: ctx\n"), 0o600))
	return path
}

func TestNew_Flags(t *testing.T) {
	props := writeProps(t, "bootstrap.servers=localhost:9092\n")
	topo := writeTopology(t)

	for _, tt := range []struct {
		name    string
		opts    Options
		expErr  bool
		expMode Mode
	}{
		{name: "import by default", opts: Options{Topology: topo, ClientConfig: props}, expMode: ModeImport},
		{name: "export", opts: Options{Topology: "out.yaml", ClientConfig: props, Export: true}, expMode: ModeExport},
		{name: "missing topology", opts: Options{ClientConfig: props}, expErr: true},
		{name: "missing client config", opts: Options{Topology: topo}, expErr: true},
		{name: "import and export", opts: Options{Topology: topo, ClientConfig: props, Import: true, Export: true}, expErr: true},
		{name: "import of a missing file", opts: Options{Topology: "missing.yaml", ClientConfig: props}, expErr: true},
		{name: "unreadable client config", opts: Options{Topology: topo, ClientConfig: "missing.properties"}, expErr: true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := New(tt.opts)
			if tt.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expMode, cfg.Mode)
		})
	}
}

func TestNew_Brokers(t *testing.T) {
	topo := writeTopology(t)

	cfg, err := New(Options{Topology: topo, ClientConfig: writeProps(t, "bootstrap.servers=a:9092\n"), Brokers: "b:9092,c:9092"})
	require.NoError(t, err)
	kc, err := cfg.Kafka()
	require.NoError(t, err)
	assert.Equal(t, []string{"b:9092", "c:9092"}, kc.Brokers)

	_, err = New(Options{Topology: topo, ClientConfig: writeProps(t, "# no brokers\n")})
	assert.Error(t, err)
}

func TestNew_RejectsUnknownSettings(t *testing.T) {
	topo := writeTopology(t)
	for _, props := range []string{
		"bootstrap.servers=a:9092\ntopology.state.backend=etcd\n",
		"bootstrap.servers=a:9092\ntopology.access.control.implementation=ldap\n",
		"bootstrap.servers=a:9092\ntopology.access.control.implementation=rbac\n",
	} {
		_, err := New(Options{Topology: topo, ClientConfig: writeProps(t, props)})
		assert.Error(t, err, props)
	}
}

func TestKafka(t *testing.T) {
	t.Setenv(SASLPasswordEnv, "from-env")
	props := writeProps(t, `bootstrap.servers=a:9092
security.protocol=SASL_SSL
sasl.mechanism=SCRAM-SHA-256
sasl.username=admin
ssl.ca.location=/etc/ca.pem
topology.topic.internal.prefixes=_, __confluent
admin.requests.per.second=10
`)
	cfg, err := New(Options{Topology: writeTopology(t), ClientConfig: props})
	require.NoError(t, err)

	kc, err := cfg.Kafka()
	require.NoError(t, err)
	assert.Equal(t, "SCRAM-SHA-256", kc.SASLMechanism)
	assert.Equal(t, "admin", kc.Username)
	assert.Equal(t, "from-env", kc.Password)
	assert.True(t, kc.TLSEnabled)
	assert.Equal(t, "/etc/ca.pem", kc.CAFile)
	assert.Equal(t, []string{"_", "__confluent"}, kc.InternalTopicPrefixes)
	assert.Equal(t, 10, kc.RequestsPerSecond)
}

func TestKafka_Plaintext(t *testing.T) {
	cfg, err := New(Options{Topology: writeTopology(t), ClientConfig: writeProps(t, "bootstrap.servers=a:9092\nsasl.username=ignored\n")})
	require.NoError(t, err)
	kc, err := cfg.Kafka()
	require.NoError(t, err)
	assert.Empty(t, kc.SASLMechanism)
	assert.False(t, kc.TLSEnabled)
	assert.Equal(t, []string{"_"}, kc.InternalTopicPrefixes)
}

func TestBackendAndMDS(t *testing.T) {
	props := writeProps(t, `bootstrap.servers=a:9092
topology.state.backend=redis
redis.host=localhost
redis.key=topology
mds.server=http://mds:8090
mds.user=mds
mds.password=secret
mds.kafka.cluster.id=c1
mds.timeout.ms=500
`)
	cfg, err := New(Options{Topology: writeTopology(t), ClientConfig: props})
	require.NoError(t, err)

	assert.Equal(t, string(backend.KindRedis), cfg.BackendKind())
	bc, err := cfg.Backend()
	require.NoError(t, err)
	assert.Equal(t, 6379, bc.RedisPort)
	assert.Equal(t, backend.DefaultStateFile, bc.File)

	mds, ok, err := cfg.MDS()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "c1", mds.KafkaClusterID)
	assert.Equal(t, 500*time.Millisecond, mds.Timeout)
}

func TestMDS_NotConfigured(t *testing.T) {
	cfg, err := New(Options{Topology: writeTopology(t), ClientConfig: writeProps(t, "bootstrap.servers=a:9092\n")})
	require.NoError(t, err)
	_, ok, err := cfg.MDS()
	require.NoError(t, err)
	assert.False(t, ok)
	url, _, _ := cfg.SchemaRegistry()
	assert.Empty(t, url)
}

func TestValidateWith(t *testing.T) {
	base := func() *models.Topology {
		return &models.Topology{
			Context: "ctx",
			Projects: []models.Project{
				{Name: "a", Topics: []models.Topic{{Name: "orders"}}},
				{Name: "b", Topics: []models.Topic{{Name: "orders"}}},
			},
		}
	}
	cfg, err := New(Options{Topology: writeTopology(t), ClientConfig: writeProps(t, "bootstrap.servers=a:9092\n")})
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateWith(base()))

	for _, tt := range []struct {
		name   string
		mutate func(*models.Topology)
	}{
		{name: "no context", mutate: func(t *models.Topology) { t.Context = "" }},
		{name: "unnamed project", mutate: func(t *models.Topology) { t.Projects[1].Name = "" }},
		{name: "duplicate topic", mutate: func(t *models.Topology) { t.Projects[1].Name = "a" }},
		{name: "bad partitions", mutate: func(t *models.Topology) {
			t.Projects[0].Topics[0].Config = map[string]string{models.NumPartitionsKey: "many"}
		}},
		{name: "bad replication factor", mutate: func(t *models.Topology) {
			t.Projects[0].Topics[0].Config = map[string]string{models.ReplicationFactorKey: "0"}
		}},
		{name: "schemas without registry", mutate: func(t *models.Topology) {
			t.Projects[0].Topics[0].Schemas = &models.TopicSchemas{ValueSchemaFile: "v.avsc"}
		}},
		{name: "rbac with acls", mutate: func(t *models.Topology) {
			t.Projects[0].RBAC = []models.RoleBindingDecl{{Principal: "User:a", Role: models.RoleResourceOwner}}
		}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			topo := base()
			tt.mutate(topo)
			assert.Error(t, cfg.ValidateWith(topo))
		})
	}
}

func TestValidateWith_DataTypeDisambiguates(t *testing.T) {
	cfg, err := New(Options{Topology: writeTopology(t), ClientConfig: writeProps(t, "bootstrap.servers=a:9092\n")})
	require.NoError(t, err)
	topo := &models.Topology{
		Context: "ctx",
		Projects: []models.Project{{Name: "a", Topics: []models.Topic{
			{Name: "orders"},
			{Name: "orders", DataType: "avro"},
		}}},
	}
	assert.NoError(t, cfg.ValidateWith(topo))
}
