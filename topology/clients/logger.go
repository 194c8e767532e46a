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

package clients

import (
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// LeveledLogger routes retryablehttp logs to zap.
type LeveledLogger struct {
	sugar *zap.SugaredLogger
}

var _ retryablehttp.LeveledLogger = (*LeveledLogger)(nil)

// NewLeveledLogger returns a retryablehttp.LeveledLogger writing to logger.
func NewLeveledLogger(logger *zap.Logger) *LeveledLogger {
	return &LeveledLogger{sugar: logger.Named("mds").Sugar()}
}

// Error implements retryablehttp.LeveledLogger.
func (l *LeveledLogger) Error(msg string, keysAndValues ...any) { l.sugar.Errorw(msg, keysAndValues...) }

// Info implements retryablehttp.LeveledLogger. Request logs are demoted to
// debug.
func (l *LeveledLogger) Info(msg string, keysAndValues ...any) { l.sugar.Debugw(msg, keysAndValues...) }

// Debug implements retryablehttp.LeveledLogger.
func (l *LeveledLogger) Debug(msg string, keysAndValues ...any) { l.sugar.Debugw(msg, keysAndValues...) }

// Warn implements retryablehttp.LeveledLogger.
func (l *LeveledLogger) Warn(msg string, keysAndValues ...any) { l.sugar.Warnw(msg, keysAndValues...) }
