package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These are golden tests, to ensure we parse properly and the string types
// do not change, as they are persisted in the cluster state store.

func Test_ParseResourceType(t *testing.T) {
	for _, tt := range []struct {
		name   string
		input  string
		exp    ResourceType
		expErr bool
	}{
		{"topic", "TOPIC", ResourceTypeTopic, false},
		{"topic lowercase", "topic", ResourceTypeTopic, false},
		{"group", "GROUP", ResourceTypeGroup, false},
		{"cluster", "CLUSTER", ResourceTypeCluster, false},
		{"transactional", "TRANSACTIONAL_ID", ResourceTypeTransactionalID, false},
		{"delegation token", "DELEGATION_TOKEN", ResourceTypeDelegationToken, false},
		{"user", "USER", ResourceTypeUser, false},
		{"subject", "SUBJECT", ResourceTypeSubject, false},
		{"registry", "REGISTRY", ResourceTypeRegistry, false},
		{"wrong input", "WRONG_INPUT", "", true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResourceType(tt.input)
			if tt.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.exp, got)
		})
	}
}

func Test_ParseOperation(t *testing.T) {
	for _, tt := range []struct {
		input  string
		exp    Operation
		expErr bool
	}{
		{"ALL", OperationAll, false},
		{"READ", OperationRead, false},
		{"WRITE", OperationWrite, false},
		{"CREATE", OperationCreate, false},
		{"DELETE", OperationDelete, false},
		{"ALTER", OperationAlter, false},
		{"DESCRIBE", OperationDescribe, false},
		{"CLUSTER_ACTION", OperationClusterAction, false},
		{"DESCRIBE_CONFIGS", OperationDescribeConfigs, false},
		{"ALTER_CONFIGS", OperationAlterConfigs, false},
		{"IDEMPOTENT_WRITE", OperationIdempotentWrite, false},
		{"CREATE_TOKENS", OperationCreateTokens, false},
		{"DESCRIBE_TOKENS", OperationDescribeTokens, false},
		{"ANY", "", true},
	} {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOperation(tt.input)
			if tt.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.exp, got)
		})
	}
}

func Test_ParsePatternAndPermission(t *testing.T) {
	p, err := ParsePatternType("prefixed")
	require.NoError(t, err)
	assert.Equal(t, PatternTypePrefixed, p)
	_, err = ParsePatternType("MATCH")
	assert.Error(t, err)

	perm, err := ParsePermission("Deny")
	require.NoError(t, err)
	assert.Equal(t, PermissionDeny, perm)
	_, err = ParsePermission("MAYBE")
	assert.Error(t, err)
}

func TestACLEntry_StructuralEquality(t *testing.T) {
	a := NewACLEntry("User:app", ResourceTypeTopic, "orders", OperationRead)
	b := NewACLEntry("User:app", ResourceTypeTopic, "orders", OperationRead)
	c := b.Prefixed()

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	set := NewACLSet(a, b, c)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has(NewACLEntry("User:app", ResourceTypeTopic, "orders", OperationRead)))
}

func TestACLEntry_Defaults(t *testing.T) {
	a := NewACLEntry("User:app", ResourceTypeGroup, "g", OperationRead)
	assert.Equal(t, AnyHost, a.Host)
	assert.Equal(t, PatternTypeLiteral, a.PatternType)
	assert.Equal(t, PermissionAllow, a.Permission)
	assert.Equal(t, "GROUP:g:LITERAL:User:app:*:READ:ALLOW", a.ID())
	assert.NoError(t, a.Validate())

	a.Operation = "JUMP"
	assert.Error(t, a.Validate())
}

func TestGroupByPrincipal(t *testing.T) {
	a := NewACLEntry("User:a", ResourceTypeTopic, "t1", OperationWrite)
	b := NewACLEntry("User:b", ResourceTypeTopic, "t1", OperationRead)

	grouped, err := GroupByPrincipal([]ACLEntry{a, b})
	require.NoError(t, err)
	assert.Len(t, grouped, 2)
	assert.True(t, grouped["User:a"].Has(a))

	_, err = GroupByPrincipal([]ACLEntry{a, b, a})
	var dup *DuplicateACLError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, a, dup.Entry)
}

func TestSortedACLs(t *testing.T) {
	a := NewACLEntry("User:a", ResourceTypeTopic, "t2", OperationWrite)
	b := NewACLEntry("User:a", ResourceTypeTopic, "t1", OperationWrite)
	c := NewACLEntry("User:a", ResourceTypeGroup, "g", OperationRead)

	assert.Equal(t, []ACLEntry{c, b, a}, SortedACLs(NewACLSet(a, b, c)))
	assert.Equal(t, []ACLEntry{c, b, a}, FlattenACLs(map[string]ACLSet{
		"User:a": NewACLSet(a, c),
		"User:b": NewACLSet(b),
	}))
}
