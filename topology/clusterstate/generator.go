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

package clusterstate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/redpanda-data/topology-builder/topology/models"
)

// DefaultContext labels a generated topology when no context is configured
// and none can be inferred from the topic names.
const DefaultContext = "default"

// UnqualifiedProject names the project holding the topics whose names are not
// of the form context.project.topic.
const UnqualifiedProject = "unqualified"

// Generator turns a snapshot into a declared topology.
type Generator struct {
	// Context is the context label of the generated topology. When empty the
	// most common leading segment of the topic names is used.
	Context string
}

// Generate returns a topology whose re-import targets the observed topics.
// Names of the form context.project.topic are split into one project per
// project segment; the other names land verbatim in an unqualified project.
// It fails with a *models.DuplicateACLError when the same entry is both
// natively granted and centralized.
func (g *Generator) Generate(s *ClusterState) (*models.Topology, error) {
	all := append(models.FlattenACLs(s.KafkaACLs()), models.FlattenACLs(s.RegistryACLs())...)
	all = append(all, models.FlattenACLs(s.RBACACLs())...)
	grouped, err := models.GroupByPrincipal(all)
	if err != nil {
		return nil, err
	}

	names := s.TopicNames()
	context := g.Context
	if context == "" {
		context = inferContext(names)
	}
	topology := &models.Topology{Context: context, Projects: splitProjects(context, s.Topics())}
	if len(topology.Projects) == 0 {
		topology.Projects = []models.Project{{Name: context}}
	}

	principals := make([]string, 0, len(grouped))
	for p := range grouped {
		principals = append(principals, p)
	}
	sort.Strings(principals)

	for i := range topology.Projects {
		project := &topology.Projects[i]
		topics := topology.ProjectTopicNames(project)
		for _, p := range principals {
			entries := grouped[p]
			roles := Classify(topics, p, entries)
			if roles.Has(RoleProducer) {
				project.Producers = append(project.Producers, models.Producer{Principal: p})
			}
			if roles.Has(RoleConsumer) {
				group, _ := consumerGroup(entries)
				project.Consumers = append(project.Consumers, models.Consumer{Principal: p, Group: group})
			}
		}
	}

	// Access that is not scoped to one project goes to the first one.
	home := &topology.Projects[0]
	for _, p := range principals {
		entries := grouped[p]
		roles := Classify(nil, p, entries)
		if roles.Has(RoleStreams) {
			prefix, _ := streamsPrefix(entries)
			home.Streams = append(home.Streams, models.KStream{
				Principal:     p,
				ApplicationID: prefix,
				Topics:        topicAccess(entries),
			})
		}
		if roles.Has(RoleConnector) {
			home.Connectors = append(home.Connectors, models.Connector{
				Principal:    p,
				Group:        ConnectGroup,
				StatusTopic:  ConnectStatusTopic,
				OffsetTopic:  ConnectOffsetsTopic,
				ConfigsTopic: ConnectConfigsTopic,
				Topics:       topicAccess(entries),
			})
		}
	}

	if len(grouped) > 0 {
		home.RawACLs = make(map[string][]models.ACLEntry, len(grouped))
		for p, entries := range grouped {
			home.RawACLs[p] = models.SortedACLs(entries)
		}
	}

	bindings := s.RBACBindings()
	bound := make([]string, 0, len(bindings))
	for p := range bindings {
		bound = append(bound, p)
	}
	sort.Strings(bound)
	for _, p := range bound {
		for _, b := range bindings[p] {
			home.RBAC = append(home.RBAC, models.RoleBindingDecl{
				Principal:    b.Principal,
				Role:         b.Role,
				ResourceType: string(b.ResourceType),
				Resource:     b.ResourceName,
				PatternType:  string(b.PatternType),
			})
		}
	}

	return topology, nil
}

// splitName splits context.project.topic. The topic part may hold dots.
func splitName(context, name string) (project, topic string, ok bool) {
	rest, ok := strings.CutPrefix(name, context+".")
	if !ok {
		return "", "", false
	}
	project, topic, ok = strings.Cut(rest, ".")
	if !ok || project == "" || topic == "" {
		return "", "", false
	}
	return project, topic, true
}

// inferContext returns the most common leading segment among the names that
// split into context, project and topic. Ties go to the smallest segment.
func inferContext(names []string) string {
	counts := make(map[string]int)
	for _, n := range names {
		context, _, ok := strings.Cut(n, ".")
		if !ok || context == "" {
			continue
		}
		if _, _, ok := splitName(context, n); ok {
			counts[context]++
		}
	}
	best, bestCount := DefaultContext, 0
	for c, n := range counts {
		if n > bestCount || (n == bestCount && c < best) {
			best, bestCount = c, n
		}
	}
	return best
}

// splitProjects groups the topics per project, projects and topics sorted by
// name. The unqualified project comes last.
func splitProjects(context string, topics map[string]TopicState) []models.Project {
	byProject := make(map[string][]models.Topic)
	var unqualified []models.Topic
	for _, t := range topics {
		topic := extractTopic(t)
		project, name, ok := splitName(context, t.Name)
		if !ok {
			unqualified = append(unqualified, topic)
			continue
		}
		topic.Name = name
		byProject[project] = append(byProject[project], topic)
	}

	names := make([]string, 0, len(byProject))
	for n := range byProject {
		names = append(names, n)
	}
	sort.Strings(names)

	projects := make([]models.Project, 0, len(names)+1)
	for _, n := range names {
		projects = append(projects, models.Project{Name: n, Topics: sortTopics(byProject[n])})
	}
	if len(unqualified) > 0 {
		name := UnqualifiedProject
		for byProject[name] != nil {
			name += "_"
		}
		projects = append(projects, models.Project{Name: name, Unqualified: true, Topics: sortTopics(unqualified)})
	}
	return projects
}

func sortTopics(topics []models.Topic) []models.Topic {
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics
}

// extractTopic carries the dynamic overrides of a topic along with its
// partition count and replication factor.
func extractTopic(t TopicState) models.Topic {
	config := make(map[string]string, len(t.Config)+2)
	for k, v := range t.Config {
		config[k] = v
	}
	config[models.NumPartitionsKey] = strconv.Itoa(int(t.Partitions))
	config[models.ReplicationFactorKey] = strconv.Itoa(int(t.ReplicationFactor))
	return models.Topic{Name: t.Name, Config: config}
}

func topicAccess(entries models.ACLSet) models.TopicAccess {
	return models.TopicAccess{
		Read:  literalTopics(entries, models.OperationRead),
		Write: literalTopics(entries, models.OperationWrite),
	}
}
