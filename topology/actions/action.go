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

// Package actions contains the mutations a sync applies to the cluster, the
// ordered plan holding them and the executor that prints or runs the plan.
package actions

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/redpanda-data/topology-builder/topology/models"
)

// Kind tags the variant of an Action.
type Kind int

// Action kinds.
const (
	KindSyncTopic Kind = iota
	KindDeleteTopics
	KindCreateBindings
	KindClearBindings
	KindBindRoles
	KindUnbindRoles
)

func (k Kind) String() string {
	switch k {
	case KindSyncTopic:
		return "SyncTopic"
	case KindDeleteTopics:
		return "DeleteTopics"
	case KindCreateBindings:
		return "CreateBindings"
	case KindClearBindings:
		return "ClearBindings"
	case KindBindRoles:
		return "BindRoles"
	case KindUnbindRoles:
		return "UnbindRoles"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsDestructive reports whether actions of this kind remove resources.
func (k Kind) IsDestructive() bool {
	return k == KindDeleteTopics || k == KindClearBindings || k == KindUnbindRoles
}

// Action is a single describable mutation. The set of implementations is
// closed to this package.
type Action interface {
	Kind() Kind
	// String renders the action for dry-run output. It never touches the
	// cluster and is stable for equal actions.
	String() string
	// Run applies the action. Running an action whose intent is already
	// satisfied is a no-op.
	Run(ctx context.Context) error

	action()
}

func renderList(header string, items []string) string {
	var sb strings.Builder
	sb.WriteString(header)
	for _, it := range items {
		sb.WriteString("\n  - ")
		sb.WriteString(it)
	}
	return sb.String()
}

func renderACLs(header string, entries []models.ACLEntry) string {
	items := make([]string, 0, len(entries))
	for _, e := range entries {
		items = append(items, e.String())
	}
	sort.Strings(items)
	return renderList(header, items)
}

func renderRoleBindings(header string, bindings []models.RoleBinding) string {
	items := make([]string, 0, len(bindings))
	for _, b := range bindings {
		items = append(items, b.String())
	}
	sort.Strings(items)
	return renderList(header, items)
}

func renderConfig(cfg map[string]string) string {
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+cfg[k])
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}
