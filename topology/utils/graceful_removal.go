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

package utils

import (
	"fmt"

	"go.uber.org/zap"
)

// HandleGracefulRemoval handles the result of removing a resource that may
// already be gone.
//
// Behavior:
//   - nil and NotFound errors are a clean removal and return nil
//   - every other error is returned as "failed to {operation}: {err}"
func HandleGracefulRemoval(logger *zap.Logger, resourceType, resourceID string, err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case IsNotFound(err):
		logger.Info(fmt.Sprintf("%s %s not found, nothing to remove", resourceType, resourceID))
		return nil
	default:
		return fmt.Errorf("failed to %s: %w", operation, err)
	}
}
