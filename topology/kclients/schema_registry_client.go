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
	"strings"

	"github.com/twmb/franz-go/pkg/sr"
)

const (
	// DefaultCompatibilityLevel is the default compatibility level for Schema Registry subjects
	DefaultCompatibilityLevel = "BACKWARD"
)

// SchemaRegistryClient registers topic schemas.
type SchemaRegistryClient interface {
	RegisterSchema(ctx context.Context, subject, schemaType, schema string) (int, error)
	SetSubjectCompatibility(ctx context.Context, subject, compatibility string) error
}

// SRClient implements SchemaRegistryClient with the franz-go sr package.
type SRClient struct {
	client *sr.Client
}

var _ SchemaRegistryClient = (*SRClient)(nil)

// NewSchemaRegistryClient creates a Schema Registry client for url. Basic
// auth is used when username is set.
func NewSchemaRegistryClient(url, username, password string) (*sr.Client, error) {
	if url == "" {
		return nil, fmt.Errorf("schema registry URL is empty")
	}
	opts := []sr.ClientOpt{sr.URLs(url)}
	if username != "" {
		opts = append(opts, sr.BasicAuth(username, password))
	}
	client, err := sr.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema registry client: %w", err)
	}
	return client, nil
}

// NewSRClient wraps an sr.Client.
func NewSRClient(client *sr.Client) *SRClient {
	return &SRClient{client: client}
}

// ParseSchemaType maps a declared schema type to its registry type. An empty
// type means AVRO.
func ParseSchemaType(s string) (sr.SchemaType, error) {
	switch strings.ToUpper(s) {
	case "", "AVRO":
		return sr.TypeAvro, nil
	case "PROTOBUF":
		return sr.TypeProtobuf, nil
	case "JSON":
		return sr.TypeJSON, nil
	default:
		return 0, fmt.Errorf("unknown schema type %q", s)
	}
}

// RegisterSchema registers schema under subject and returns its id.
func (c *SRClient) RegisterSchema(ctx context.Context, subject, schemaType, schema string) (int, error) {
	t, err := ParseSchemaType(schemaType)
	if err != nil {
		return 0, err
	}
	ss, err := c.client.CreateSchema(ctx, subject, sr.Schema{Schema: schema, Type: t})
	if err != nil {
		return 0, fmt.Errorf("failed to register schema for subject %s: %w", subject, err)
	}
	return ss.ID, nil
}

// SetSubjectCompatibility sets the compatibility level for a subject
func (c *SRClient) SetSubjectCompatibility(ctx context.Context, subject, compatibility string) error {
	if compatibility == "" {
		return nil // No compatibility to set
	}

	var level sr.CompatibilityLevel
	if err := level.UnmarshalText([]byte(strings.ToUpper(compatibility))); err != nil {
		return fmt.Errorf("unknown compatibility level %q for subject %s", compatibility, subject)
	}

	results := c.client.SetCompatibility(ctx, sr.SetCompatibility{Level: level}, subject)
	for _, result := range results {
		if result.Err != nil {
			return result.Err
		}
	}
	return nil
}
