package actions

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/golang/mock/gomock"
	"github.com/redpanda-data/topology-builder/topology/kclients"
	"github.com/redpanda-data/topology-builder/topology/mocks"
	"github.com/redpanda-data/topology-builder/topology/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kerr"
)

func init() {
	color.NoColor = true
}

func TestDiffConfig(t *testing.T) {
	for _, tt := range []struct {
		name      string
		current   map[string]string
		desired   map[string]string
		expSet    map[string]string
		expRemove []string
	}{
		{
			name:    "nothing to do",
			current: map[string]string{"cleanup.policy": "compact"},
			desired: map[string]string{"cleanup.policy": "compact"},
			expSet:  map[string]string{},
		},
		{
			name:    "changed and added",
			current: map[string]string{"cleanup.policy": "delete"},
			desired: map[string]string{"cleanup.policy": "compact", "retention.ms": "1000"},
			expSet:  map[string]string{"cleanup.policy": "compact", "retention.ms": "1000"},
		},
		{
			name:      "removed overrides",
			current:   map[string]string{"segment.ms": "10", "retention.ms": "1000"},
			desired:   map[string]string{},
			expSet:    map[string]string{},
			expRemove: []string{"retention.ms", "segment.ms"},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			set, remove := diffConfig(tt.current, tt.desired)
			assert.Equal(t, tt.expSet, set)
			assert.Equal(t, tt.expRemove, remove)
		})
	}
}

func TestSyncTopic_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockAdminClient(ctrl)
	ctx := context.Background()

	admin.EXPECT().CreateTopic(ctx, "ctx.proj.orders", int32(3), int16(2), map[string]string{"cleanup.policy": "compact"}).Return(nil)

	a := &SyncTopic{
		Admin: admin, Topic: "ctx.proj.orders", Partitions: 3, ReplicationFactor: 2,
		Config: map[string]string{"cleanup.policy": "compact"},
	}
	require.NoError(t, a.Run(ctx))
}

func TestSyncTopic_CreateRaceFallsBackToUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockAdminClient(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		admin.EXPECT().CreateTopic(ctx, "t", int32(6), int16(2), map[string]string{}).Return(kerr.TopicAlreadyExists),
		admin.EXPECT().DescribeTopicConfigs(ctx, kclients.ConfigScopeDynamic, "t").Return(map[string]map[string]string{"t": {"retention.ms": "1"}}, nil),
		admin.EXPECT().AlterTopicConfig(ctx, "t", map[string]string{}, []string{"retention.ms"}).Return(nil),
		admin.EXPECT().DescribeTopics(ctx, "t").Return(map[string]kclients.TopicDescription{
			"t": {Topic: "t", Replicas: [][]int32{{1, 2}, {2, 3}, {3, 1}}},
		}, nil),
		admin.EXPECT().UpdatePartitions(ctx, "t", int32(6)).Return(nil),
	)

	a := &SyncTopic{Admin: admin, Topic: "t", Partitions: 6, ReplicationFactor: 2, Config: map[string]string{}}
	require.NoError(t, a.Run(ctx))
}

func TestSyncTopic_UpdateNeverShrinks(t *testing.T) {
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockAdminClient(ctrl)
	ctx := context.Background()

	admin.EXPECT().DescribeTopicConfigs(ctx, kclients.ConfigScopeDynamic, "t").Return(map[string]map[string]string{"t": {}}, nil)
	admin.EXPECT().DescribeTopics(ctx, "t").Return(map[string]kclients.TopicDescription{
		"t": {Topic: "t", Replicas: [][]int32{{1}, {2}, {3}, {1}}},
	}, nil)

	a := &SyncTopic{Admin: admin, Topic: "t", Partitions: 2, ReplicationFactor: 1, Exists: true}
	require.NoError(t, a.Run(ctx))
}

func TestSyncTopic_RegistersSchemas(t *testing.T) {
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockAdminClient(ctrl)
	reg := mocks.NewMockSchemaRegistryClient(ctrl)
	ctx := context.Background()

	dir := t.TempDir()
	valueFile := filepath.Join(dir, "value.avsc")
	require.NoError(t, os.WriteFile(valueFile, []byte(`{"type":"string"}`+"\n"), 0o600))

	admin.EXPECT().CreateTopic(ctx, "t", int32(1), int16(1), gomock.Any()).Return(nil)
	reg.EXPECT().RegisterSchema(ctx, "t-value", "AVRO", `{"type":"string"}`).Return(7, nil)
	reg.EXPECT().SetSubjectCompatibility(ctx, "t-value", "BACKWARD").Return(nil)

	a := &SyncTopic{
		Admin: admin, Schemas: reg, Topic: "t", Partitions: 1, ReplicationFactor: 1,
		Schema: &models.TopicSchemas{ValueSchemaFile: valueFile, Type: "AVRO", Compatibility: "BACKWARD"},
	}
	require.NoError(t, a.Run(ctx))
}

func TestSyncTopic_SchemasWithoutRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockAdminClient(ctrl)
	admin.EXPECT().CreateTopic(gomock.Any(), "t", int32(1), int16(1), gomock.Any()).Return(nil)

	a := &SyncTopic{
		Admin: admin, Topic: "t", Partitions: 1, ReplicationFactor: 1,
		Schema: &models.TopicSchemas{KeySchemaFile: "key.avsc"},
	}
	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema registry is configured")
}

func TestCreateBindings_SplitsRegistryEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockAdminClient(ctrl)
	reg := mocks.NewMockSchemaRegistryACLClientInterface(ctrl)
	ctx := context.Background()

	topic := models.NewACLEntry("User:app", models.ResourceTypeTopic, "t", models.OperationWrite)
	subject := models.NewACLEntry("User:app", models.ResourceTypeSubject, "t-value", models.OperationRead)

	admin.EXPECT().CreateACLs(ctx, []models.ACLEntry{topic}).Return(nil)
	reg.EXPECT().CreateACL(ctx, subject).Return(nil)

	a := &CreateBindings{Admin: admin, Reg: reg, Entries: []models.ACLEntry{topic, subject}}
	require.NoError(t, a.Run(ctx))

	noReg := &CreateBindings{Admin: admin, Entries: []models.ACLEntry{subject}}
	assert.Error(t, noReg.Run(ctx))
}

func TestBindings_NoRegistryTouchesNothing(t *testing.T) {
	// No expectations: a broker call before the registry check fails the test.
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockAdminClient(ctrl)
	ctx := context.Background()

	entries := []models.ACLEntry{
		models.NewACLEntry("User:app", models.ResourceTypeTopic, "t", models.OperationWrite),
		models.NewACLEntry("User:app", models.ResourceTypeSubject, "t-value", models.OperationRead),
	}

	err := (&CreateBindings{Admin: admin, Entries: entries}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema registry is configured")

	err = (&ClearBindings{Admin: admin, Entries: entries}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema registry is configured")
}

func TestUnbindRoles_AggregatesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	mds := mocks.NewMockMDSClient(ctrl)
	ctx := context.Background()

	b1 := models.RoleBinding{Principal: "User:a", Role: models.RoleDeveloperRead, Scope: "c"}
	b2 := models.RoleBinding{Principal: "User:b", Role: models.RoleDeveloperRead, Scope: "c"}
	mds.EXPECT().UnbindRole(ctx, b1).Return(errors.New("boom"))
	mds.EXPECT().UnbindRole(ctx, b2).Return(nil)

	err := (&UnbindRoles{MDS: mds, Bindings: []models.RoleBinding{b1, b2}}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestActionString(t *testing.T) {
	a := &SyncTopic{Topic: "t", Partitions: 3, ReplicationFactor: 2, Config: map[string]string{"b": "2", "a": "1"}}
	assert.Equal(t, "SyncTopic(topic=t, partitions=3, replicationFactor=2, config={a=1, b=2})", a.String())
	assert.Equal(t, a.String(), a.String())

	d := &DeleteTopics{Topics: []string{"x", "y"}}
	assert.Equal(t, "DeleteTopics(2)\n  - x\n  - y", d.String())
	assert.True(t, d.Kind().IsDestructive())
	assert.False(t, a.Kind().IsDestructive())
}

func TestExecutor_DryRunTouchesNothing(t *testing.T) {
	// No expectations: any call on the mock fails the test.
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockAdminClient(ctrl)

	plan := NewPlan(
		&SyncTopic{Admin: admin, Topic: "t", Partitions: 1, ReplicationFactor: 1},
		&DeleteTopics{Admin: admin, Topics: []string{"old"}},
	)
	var out bytes.Buffer
	require.NoError(t, NewExecutor(true, &out, nil).Execute(context.Background(), plan))

	assert.Equal(t, []State{Printed, Printed}, plan.States())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "SyncTopic(topic=t, partitions=1, replicationFactor=1, config={})", lines[0])
	assert.Equal(t, "DeleteTopics(1)", lines[1])
}

func TestExecutor_StopsAtFirstFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockAdminClient(ctrl)
	ctx := context.Background()

	admin.EXPECT().CreateTopic(ctx, "a", int32(1), int16(1), gomock.Any()).Return(nil)
	admin.EXPECT().CreateTopic(ctx, "b", int32(1), int16(1), gomock.Any()).Return(kerr.PolicyViolation)

	plan := NewPlan(
		&SyncTopic{Admin: admin, Topic: "a", Partitions: 1, ReplicationFactor: 1},
		&SyncTopic{Admin: admin, Topic: "b", Partitions: 1, ReplicationFactor: 1},
		&DeleteTopics{Admin: admin, Topics: []string{"c"}},
	)
	err := NewExecutor(false, nil, nil).Execute(ctx, plan)
	require.Error(t, err)
	assert.True(t, errors.Is(err, kerr.PolicyViolation))
	assert.Contains(t, err.Error(), "SyncTopic(topic=b")
	assert.Equal(t, []State{Succeeded, Failed, Planned}, plan.States())

	// A plan that already ran cannot run again.
	assert.Error(t, NewExecutor(false, nil, nil).Execute(ctx, plan))
}

func TestPlan(t *testing.T) {
	p := NewPlan(nil, &DeleteTopics{Topics: []string{"a"}})
	assert.Equal(t, 1, p.Len())
	p.Add(&ClearBindings{})
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, KindClearBindings, p.Actions()[1].Kind())
	assert.Equal(t, Planned, p.State(1))
	assert.True(t, NewPlan().IsEmpty())
}
