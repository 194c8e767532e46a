package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopology_TopicName(t *testing.T) {
	for _, tt := range []struct {
		name   string
		source string
		topic  Topic
		exp    string
	}{
		{"plain", "", Topic{Name: "orders"}, "ctx.proj.orders"},
		{"with source", "src", Topic{Name: "orders"}, "ctx.src.proj.orders"},
		{"with data type", "", Topic{Name: "orders", DataType: "avro"}, "ctx.proj.orders.avro"},
		{"with both", "src", Topic{Name: "orders", DataType: "avro"}, "ctx.src.proj.orders.avro"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			top := Topology{Context: "ctx", Source: tt.source}
			p := Project{Name: "proj", Topics: []Topic{tt.topic}}
			assert.Equal(t, tt.exp, top.TopicName(&p, &p.Topics[0]))
		})
	}
}

func TestTopology_TopicNames(t *testing.T) {
	top := Topology{
		Context: "ctx",
		Projects: []Project{
			{Name: "a", Topics: []Topic{{Name: "t2"}, {Name: "t1"}}},
			{Name: "b", Topics: []Topic{{Name: "t3"}}},
		},
	}
	assert.Equal(t, []string{"ctx.a.t2", "ctx.a.t1", "ctx.b.t3"}, top.TopicNames())
	assert.Equal(t, []string{"ctx.b.t3"}, top.ProjectTopicNames(&top.Projects[1]))
}

func TestTopology_UnqualifiedProject(t *testing.T) {
	top := Topology{
		Context: "ctx",
		Source:  "src",
		Projects: []Project{
			{Name: "cluster", Unqualified: true, Topics: []Topic{{Name: "legacy"}, {Name: "events", DataType: "json"}}},
		},
	}
	assert.Equal(t, []string{"legacy", "events.json"}, top.TopicNames())
}

func TestTopic_PartitionsAndReplication(t *testing.T) {
	topic := Topic{Name: "orders", Config: map[string]string{
		NumPartitionsKey:     "6",
		ReplicationFactorKey: "3",
		"cleanup.policy":     "compact",
	}}
	p, err := topic.Partitions()
	require.NoError(t, err)
	assert.Equal(t, int32(6), p)
	rf, err := topic.ReplicationFactor()
	require.NoError(t, err)
	assert.Equal(t, int16(3), rf)
	assert.Equal(t, map[string]string{"cleanup.policy": "compact"}, topic.TopicConfig())

	empty := Topic{Name: "empty"}
	p, err = empty.Partitions()
	require.NoError(t, err)
	assert.Equal(t, DefaultPartitions, p)
	rf, err = empty.ReplicationFactor()
	require.NoError(t, err)
	assert.Equal(t, DefaultReplicationFactor, rf)

	bad := Topic{Name: "bad", Config: map[string]string{NumPartitionsKey: "many", ReplicationFactorKey: "-1"}}
	_, err = bad.Partitions()
	assert.Error(t, err)
	_, err = bad.ReplicationFactor()
	assert.Error(t, err)
}
