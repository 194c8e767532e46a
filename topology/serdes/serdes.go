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

// Package serdes reads and writes topology declarations.
package serdes

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/redpanda-data/topology-builder/topology/models"
	"gopkg.in/yaml.v3"
)

// ContextMismatchError is returned when merged fragments declare different
// contexts.
type ContextMismatchError struct {
	File     string
	Expected string
	Got      string
}

func (e *ContextMismatchError) Error() string {
	return "file " + e.File + " declares context " + e.Got + " but previous files declare " + e.Expected
}

// SourceMismatchError is returned when merged fragments declare different
// sources.
type SourceMismatchError struct {
	File     string
	Expected string
	Got      string
}

func (e *SourceMismatchError) Error() string {
	return "file " + e.File + " declares source " + e.Got + " but previous files declare " + e.Expected
}

// Build parses a declaration file, or every .yaml and .yml file of a
// directory in lexicographic order merged into one topology.
func Build(fileOrDir string) (*models.Topology, error) {
	info, err := os.Stat(fileOrDir)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read the topology")
	}
	if !info.IsDir() {
		return parseFile(fileOrDir)
	}

	entries, err := os.ReadDir(fileOrDir)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list %s", fileOrDir)
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(fileOrDir, e.Name()))
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, errors.Errorf("no topology files found in %s", fileOrDir)
	}

	var merged *models.Topology
	for _, f := range files {
		t, err := parseFile(f)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = t
			continue
		}
		if err := merge(merged, t, f); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func parseFile(path string) (*models.Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open the topology")
	}
	defer f.Close()
	t, err := Deserialise(f)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse %s", path)
	}
	return t, nil
}

// merge appends the projects and platform principals of src to dst. Contexts
// must match, ignoring case. A fragment without a source takes the source of
// the others.
func merge(dst, src *models.Topology, file string) error {
	if !strings.EqualFold(dst.Context, src.Context) {
		return &ContextMismatchError{File: file, Expected: dst.Context, Got: src.Context}
	}
	switch {
	case src.Source == "":
	case dst.Source == "":
		dst.Source = src.Source
	case dst.Source != src.Source:
		return &SourceMismatchError{File: file, Expected: dst.Source, Got: src.Source}
	}
	dst.Projects = append(dst.Projects, src.Projects...)
	dst.Platform.SchemaRegistry = append(dst.Platform.SchemaRegistry, src.Platform.SchemaRegistry...)
	return nil
}

// Deserialise decodes one declaration. Unknown fields are rejected.
func Deserialise(r io.Reader) (*models.Topology, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var t models.Topology
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty topology")
		}
		return nil, err
	}
	return &t, nil
}

// Serialise encodes a declaration.
func Serialise(t *models.Topology) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return nil, errors.Wrap(err, "unable to encode the topology")
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
