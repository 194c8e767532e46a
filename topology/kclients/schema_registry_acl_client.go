// Copyright 2024 Redpanda Data, Inc.
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

	"github.com/redpanda-data/common-go/rpsr"
	"github.com/redpanda-data/topology-builder/topology/models"
	"github.com/twmb/franz-go/pkg/sr"
)

// SchemaRegistryACLClientInterface defines the interface for Schema Registry ACL operations
type SchemaRegistryACLClientInterface interface {
	CreateACL(ctx context.Context, acl models.ACLEntry) error
	ListACLs(ctx context.Context, principal string) ([]models.ACLEntry, error)
	DeleteACL(ctx context.Context, acl models.ACLEntry) error
}

// SchemaRegistryACLClient wraps the common-go rpsr.Client for ACL operations
type SchemaRegistryACLClient struct {
	client *rpsr.Client
}

var _ SchemaRegistryACLClientInterface = (*SchemaRegistryACLClient)(nil)

// NewSchemaRegistryACLClient creates a new Schema Registry ACL client using common-go rpsr
func NewSchemaRegistryACLClient(srClient *sr.Client) (*SchemaRegistryACLClient, error) {
	aclClient, err := rpsr.NewClient(srClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create ACL client: %w", err)
	}
	return &SchemaRegistryACLClient{
		client: aclClient,
	}, nil
}

// CreateACL creates a new Schema Registry ACL
func (c *SchemaRegistryACLClient) CreateACL(ctx context.Context, acl models.ACLEntry) error {
	return c.client.CreateACLs(ctx, []rpsr.ACL{toRPACL(acl)})
}

// ListACLs lists the Schema Registry ACLs of a principal, or every ACL when
// principal is empty.
func (c *SchemaRegistryACLClient) ListACLs(ctx context.Context, principal string) ([]models.ACLEntry, error) {
	rpACLs, err := c.client.ListACLs(ctx, &rpsr.ACL{Principal: principal})
	if err != nil {
		return nil, err
	}

	result := make([]models.ACLEntry, 0, len(rpACLs))
	for i := range rpACLs {
		result = append(result, fromRPACL(&rpACLs[i]))
	}
	return result, nil
}

// DeleteACL deletes a Schema Registry ACL
func (c *SchemaRegistryACLClient) DeleteACL(ctx context.Context, acl models.ACLEntry) error {
	return c.client.DeleteACLs(ctx, []rpsr.ACL{toRPACL(acl)})
}

// toRPACL converts an ACL entry to the common-go rpsr.ACL format
func toRPACL(acl models.ACLEntry) rpsr.ACL {
	return rpsr.ACL{
		Principal:    acl.Principal,
		Resource:     acl.Resource,
		ResourceType: rpsr.ResourceType(acl.ResourceType),
		PatternType:  rpsr.PatternType(acl.PatternType),
		Host:         acl.Host,
		Operation:    rpsr.Operation(acl.Operation),
		Permission:   rpsr.Permission(acl.Permission),
	}
}

// fromRPACL converts the common-go rpsr.ACL format to an ACL entry
func fromRPACL(rpACL *rpsr.ACL) models.ACLEntry {
	return models.ACLEntry{
		Principal:    rpACL.Principal,
		Resource:     rpACL.Resource,
		ResourceType: models.ResourceType(rpACL.ResourceType),
		PatternType:  models.PatternType(rpACL.PatternType),
		Host:         rpACL.Host,
		Operation:    models.Operation(rpACL.Operation),
		Permission:   models.Permission(rpACL.Permission),
	}
}
