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
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// KgoLogger bridges franz-go client logs into a zap logger.
type KgoLogger struct {
	sugar *zap.SugaredLogger
	level zapcore.Level
}

// NewKgoLogger returns a kgo.Logger writing to logger.
func NewKgoLogger(logger *zap.Logger) *KgoLogger {
	return &KgoLogger{
		sugar: logger.Named("kgo").Sugar(),
		level: zapcore.LevelOf(logger.Core()),
	}
}

// Level implements kgo.Logger.
func (l *KgoLogger) Level() kgo.LogLevel {
	switch {
	case l.level <= zapcore.DebugLevel:
		return kgo.LogLevelDebug
	case l.level == zapcore.InfoLevel:
		return kgo.LogLevelInfo
	case l.level == zapcore.WarnLevel:
		return kgo.LogLevelWarn
	case l.level < zapcore.InvalidLevel:
		return kgo.LogLevelError
	default:
		return kgo.LogLevelNone
	}
}

// Log implements kgo.Logger.
func (l *KgoLogger) Log(level kgo.LogLevel, msg string, keyvals ...any) {
	switch level {
	case kgo.LogLevelError:
		l.sugar.Errorw(msg, keyvals...)
	case kgo.LogLevelWarn:
		l.sugar.Warnw(msg, keyvals...)
	case kgo.LogLevelInfo:
		l.sugar.Infow(msg, keyvals...)
	case kgo.LogLevelDebug:
		l.sugar.Debugw(msg, keyvals...)
	}
}
