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

// Package clients provides the REST client of the role binding service
// (metadata service, MDS) used when access is managed through RBAC.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/redpanda-data/topology-builder/topology/models"
	"github.com/redpanda-data/topology-builder/topology/utils"
	"go.uber.org/zap"
)

const kafkaClusterScopeKey = "kafka-cluster"

// MDSClient is the client of the role binding service.
type MDSClient interface {
	Login(ctx context.Context) error
	ListRoles(ctx context.Context) ([]RoleDefinition, error)
	// LookupPrincipals returns the principals bound to role in the client's
	// scope.
	LookupPrincipals(ctx context.Context, role string) ([]string, error)
	LookupRoleBindings(ctx context.Context, principal string) ([]models.RoleBinding, error)
	BindRole(ctx context.Context, binding models.RoleBinding) error
	UnbindRole(ctx context.Context, binding models.RoleBinding) error
	// SearchACLs returns the centralized ACLs stored by the service.
	SearchACLs(ctx context.Context) ([]models.ACLEntry, error)
}

// RoleDefinition is a role as defined by the service.
type RoleDefinition struct {
	Name         string       `json:"name"`
	AccessPolicy AccessPolicy `json:"accessPolicy"`
}

// AccessPolicy lists the operations a role allows per resource type.
type AccessPolicy struct {
	ScopeType         string             `json:"scopeType"`
	AllowedOperations []AllowedOperation `json:"allowedOperations"`
}

// AllowedOperation is one entry of an AccessPolicy.
type AllowedOperation struct {
	ResourceType string   `json:"resourceType"`
	Operations   []string `json:"operations"`
}

// MDSConfig holds the connection settings of the service.
type MDSConfig struct {
	Server         string
	User           string
	Password       string
	KafkaClusterID string
	Timeout        time.Duration
}

// MDSRestClient implements MDSClient over HTTP.
type MDSRestClient struct {
	cfg    MDSConfig
	client *retryablehttp.Client
	logger *zap.Logger

	mu    sync.RWMutex
	token string
}

var _ MDSClient = (*MDSRestClient)(nil)

// NewMDSClient creates a client for the service at cfg.Server.
func NewMDSClient(cfg MDSConfig, logger *zap.Logger) (*MDSRestClient, error) {
	if cfg.Server == "" {
		return nil, fmt.Errorf("mds.server is not set")
	}
	if cfg.KafkaClusterID == "" {
		return nil, fmt.Errorf("mds.kafka.cluster.id is not set")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = NewLeveledLogger(logger)
	if cfg.Timeout > 0 {
		rc.HTTPClient.Timeout = cfg.Timeout
	}
	cfg.Server = strings.TrimSuffix(cfg.Server, "/")
	return &MDSRestClient{cfg: cfg, client: rc, logger: logger}, nil
}

type tokenResponse struct {
	AuthToken string `json:"auth_token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}

// Login exchanges the configured credentials for a bearer token used by
// every following request.
func (c *MDSRestClient) Login(ctx context.Context) error {
	if c.cfg.User == "" {
		return fmt.Errorf("mds.user is not set")
	}
	var tokenContainer tokenResponse
	if err := c.do(ctx, http.MethodGet, "/security/1.0/authenticate", nil, &tokenContainer); err != nil {
		return fmt.Errorf("unable to authenticate against %v: %w", c.cfg.Server, err)
	}
	if tokenContainer.AuthToken == "" {
		return fmt.Errorf("no auth token found in response")
	}
	c.mu.Lock()
	c.token = tokenContainer.AuthToken
	c.mu.Unlock()
	return nil
}

type scope struct {
	Clusters map[string]string `json:"clusters"`
}

func (c *MDSRestClient) scope() scope {
	return scope{Clusters: map[string]string{kafkaClusterScopeKey: c.cfg.KafkaClusterID}}
}

type resourcePattern struct {
	ResourceType string `json:"resourceType"`
	Name         string `json:"name"`
	PatternType  string `json:"patternType"`
}

type bindingRequest struct {
	Scope            scope             `json:"scope"`
	ResourcePatterns []resourcePattern `json:"resourcePatterns"`
}

// ListRoles implements MDSClient.
func (c *MDSRestClient) ListRoles(ctx context.Context) ([]RoleDefinition, error) {
	var roles []RoleDefinition
	if err := c.do(ctx, http.MethodGet, "/security/1.0/roles", nil, &roles); err != nil {
		return nil, fmt.Errorf("unable to list roles: %w", err)
	}
	return roles, nil
}

// LookupPrincipals implements MDSClient.
func (c *MDSRestClient) LookupPrincipals(ctx context.Context, role string) ([]string, error) {
	var principals []string
	path := "/security/1.0/lookup/role/" + url.PathEscape(role)
	if err := c.do(ctx, http.MethodPost, path, c.scope(), &principals); err != nil {
		return nil, fmt.Errorf("unable to look up principals of role %s: %w", role, err)
	}
	sort.Strings(principals)
	return principals, nil
}

// LookupRoleBindings implements MDSClient.
func (c *MDSRestClient) LookupRoleBindings(ctx context.Context, principal string) ([]models.RoleBinding, error) {
	// principal -> role -> resource patterns
	var lookup map[string]map[string][]resourcePattern
	path := "/security/1.0/lookup/principal/" + url.PathEscape(principal) + "/resources"
	if err := c.do(ctx, http.MethodPost, path, c.scope(), &lookup); err != nil {
		return nil, fmt.Errorf("unable to look up role bindings of %s: %w", principal, err)
	}
	var bindings []models.RoleBinding
	for p, roles := range lookup {
		for role, patterns := range roles {
			if len(patterns) == 0 {
				bindings = append(bindings, models.RoleBinding{Principal: p, Role: role, Scope: c.cfg.KafkaClusterID})
				continue
			}
			for _, rp := range patterns {
				rt, err := ResourceTypeFromMDS(rp.ResourceType)
				if err != nil {
					return nil, err
				}
				bindings = append(bindings, models.RoleBinding{
					Principal:    p,
					Role:         role,
					Scope:        c.cfg.KafkaClusterID,
					ResourceType: rt,
					ResourceName: rp.Name,
					PatternType:  models.PatternType(strings.ToUpper(rp.PatternType)),
				})
			}
		}
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].ID() < bindings[j].ID() })
	return bindings, nil
}

func (*MDSRestClient) bindingPath(b models.RoleBinding) string {
	path := "/security/1.0/principals/" + url.PathEscape(b.Principal) + "/roles/" + url.PathEscape(b.Role)
	if b.IsClusterLevel() {
		return path
	}
	return path + "/bindings"
}

func (c *MDSRestClient) bindingBody(b models.RoleBinding) (any, error) {
	if b.IsClusterLevel() {
		return c.scope(), nil
	}
	rt, err := ResourceTypeToMDS(b.ResourceType)
	if err != nil {
		return nil, err
	}
	pt := b.PatternType
	if pt == "" {
		pt = models.PatternTypeLiteral
	}
	return bindingRequest{
		Scope:            c.scope(),
		ResourcePatterns: []resourcePattern{{ResourceType: rt, Name: b.ResourceName, PatternType: string(pt)}},
	}, nil
}

// BindRole implements MDSClient.
func (c *MDSRestClient) BindRole(ctx context.Context, b models.RoleBinding) error {
	body, err := c.bindingBody(b)
	if err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodPost, c.bindingPath(b), body, nil); err != nil {
		return fmt.Errorf("unable to bind %s: %w", b, err)
	}
	return nil
}

// UnbindRole implements MDSClient. Bindings already gone are not an error.
func (c *MDSRestClient) UnbindRole(ctx context.Context, b models.RoleBinding) error {
	body, err := c.bindingBody(b)
	if err != nil {
		return err
	}
	err = c.do(ctx, http.MethodDelete, c.bindingPath(b), body, nil)
	return utils.HandleGracefulRemoval(c.logger, "role binding", b.ID(), err, "unbind "+b.String())
}

type aclBinding struct {
	Pattern resourcePattern `json:"pattern"`
	Entry   struct {
		Principal      string `json:"principal"`
		Operation      string `json:"operation"`
		PermissionType string `json:"permissionType"`
		Host           string `json:"host"`
	} `json:"entry"`
}

type aclSearchRequest struct {
	Scope            scope          `json:"scope"`
	ACLBindingFilter map[string]any `json:"aclBindingFilter"`
}

// SearchACLs implements MDSClient.
func (c *MDSRestClient) SearchACLs(ctx context.Context) ([]models.ACLEntry, error) {
	req := aclSearchRequest{
		Scope: c.scope(),
		ACLBindingFilter: map[string]any{
			"patternFilter": map[string]string{"resourceType": "ANY", "patternType": "ANY"},
			"entryFilter":   map[string]string{"operation": "ANY", "permissionType": "ANY"},
		},
	}
	var found []aclBinding
	if err := c.do(ctx, http.MethodPost, "/security/1.0/acls:search", req, &found); err != nil {
		return nil, fmt.Errorf("unable to search ACLs: %w", err)
	}
	entries := make([]models.ACLEntry, 0, len(found))
	for _, b := range found {
		rt, err := ResourceTypeFromMDS(b.Pattern.ResourceType)
		if err != nil {
			return nil, err
		}
		entry := models.ACLEntry{
			Principal:    b.Entry.Principal,
			Host:         b.Entry.Host,
			Resource:     b.Pattern.Name,
			ResourceType: rt,
			PatternType:  models.PatternType(strings.ToUpper(b.Pattern.PatternType)),
			Operation:    models.Operation(strings.ToUpper(b.Entry.Operation)),
			Permission:   models.Permission(strings.ToUpper(b.Entry.PermissionType)),
		}
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// do sends one request. A token the service rejects is renewed through Login
// and the request sent once more.
func (c *MDSRestClient) do(ctx context.Context, method, path string, in, out any) error {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	err := c.send(ctx, method, path, in, out, token)
	if token == "" || !utils.IsPermissionDenied(err) {
		return err
	}

	c.logger.Debug("auth token rejected, logging in again", zap.String("path", path))
	c.mu.Lock()
	if c.token == token {
		c.token = ""
	}
	c.mu.Unlock()
	if err := c.Login(ctx); err != nil {
		return err
	}
	c.mu.RLock()
	token = c.token
	c.mu.RUnlock()
	return c.send(ctx, method, path, in, out, token)
}

func (c *MDSRestClient) send(ctx context.Context, method, path string, in, out any, token string) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("unable to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.cfg.Server+path, body)
	if err != nil {
		return fmt.Errorf("unable to issue request to %v: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.SetBasicAuth(c.cfg.User, c.cfg.Password)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %v failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &utils.HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("error decoding response of %v: %w", path, err)
	}
	return nil
}

var resourceTypesToMDS = map[models.ResourceType]string{
	models.ResourceTypeTopic:           "Topic",
	models.ResourceTypeGroup:           "Group",
	models.ResourceTypeCluster:         "Cluster",
	models.ResourceTypeTransactionalID: "TransactionalId",
	models.ResourceTypeDelegationToken: "DelegationToken",
	models.ResourceTypeUser:            "User",
	models.ResourceTypeSubject:         "Subject",
}

// ResourceTypeToMDS converts a resource type to the service's naming.
func ResourceTypeToMDS(rt models.ResourceType) (string, error) {
	if s, ok := resourceTypesToMDS[rt]; ok {
		return s, nil
	}
	return "", fmt.Errorf("resource type %q cannot be bound through RBAC", rt)
}

// ResourceTypeFromMDS converts a resource type from the service's naming.
func ResourceTypeFromMDS(s string) (models.ResourceType, error) {
	for rt, name := range resourceTypesToMDS {
		if strings.EqualFold(name, s) || strings.EqualFold(string(rt), s) {
			return rt, nil
		}
	}
	return "", fmt.Errorf("unknown RBAC resource type %q", s)
}
