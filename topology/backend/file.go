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

package backend

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileBackend stores the state in a local file.
type FileBackend struct {
	path string
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend returns a backend writing to path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Load implements Backend.
func (b *FileBackend) Load(_ context.Context) (*State, error) {
	raw, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return NewState(nil, nil), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read cluster state file %s", b.path)
	}
	state, err := decode(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "cluster state file %s", b.path)
	}
	return state, nil
}

// Save implements Backend. The file is replaced atomically.
func (b *FileBackend) Save(_ context.Context, state *State) error {
	raw, err := encode(state)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "unable to create temporary cluster state file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return errors.Wrap(err, "unable to write cluster state")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "unable to write cluster state")
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return errors.Wrapf(err, "unable to replace cluster state file %s", b.path)
	}
	return nil
}

// Close implements Backend.
func (*FileBackend) Close() error { return nil }
