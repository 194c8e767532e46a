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

//go:build generate
// +build generate

// Package mocks provides mocked cluster, registry and state clients for testing.
package mocks

//go:generate mockgen -destination=./mock_admin_client.go -package=mocks github.com/redpanda-data/topology-builder/topology/kclients AdminClient
//go:generate mockgen -destination=./mock_schema_registry_client.go -package=mocks github.com/redpanda-data/topology-builder/topology/kclients SchemaRegistryClient
//go:generate mockgen -destination=./mock_schema_registry_acl_client.go -package=mocks github.com/redpanda-data/topology-builder/topology/kclients SchemaRegistryACLClientInterface
//go:generate mockgen -destination=./mock_mds_client.go -package=mocks github.com/redpanda-data/topology-builder/topology/clients MDSClient
//go:generate mockgen -destination=./mock_backend.go -package=mocks github.com/redpanda-data/topology-builder/topology/backend Backend
