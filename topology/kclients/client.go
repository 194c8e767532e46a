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

// Package kclients provides utilities for creating franz-go Kafka clients
// and the schema registry clients used by the topology builder.
package kclients

import (
	"fmt"
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl"
	"github.com/twmb/franz-go/pkg/sasl/plain"
	"github.com/twmb/franz-go/pkg/sasl/scram"
	"github.com/twmb/tlscfg"
	"go.uber.org/zap"
)

// Supported SASL mechanisms.
const (
	SASLMechanismPlain       = "PLAIN"
	SASLMechanismScramSha256 = "SCRAM-SHA-256"
	SASLMechanismScramSha512 = "SCRAM-SHA-512"
)

// Config holds the connection settings of the administrative client.
type Config struct {
	Brokers  []string
	ClientID string

	SASLMechanism string
	Username      string
	Password      string

	TLSEnabled bool
	CAFile     string
	CertFile   string
	KeyFile    string

	InternalTopicPrefixes []string
	RequestsPerSecond     int
}

func saslMechanism(cfg *Config) (sasl.Mechanism, error) {
	switch strings.ToUpper(cfg.SASLMechanism) {
	case SASLMechanismPlain:
		return plain.Auth{User: cfg.Username, Pass: cfg.Password}.AsMechanism(), nil
	case SASLMechanismScramSha256:
		return scram.Auth{User: cfg.Username, Pass: cfg.Password}.AsSha256Mechanism(), nil
	case SASLMechanismScramSha512:
		return scram.Auth{User: cfg.Username, Pass: cfg.Password}.AsSha512Mechanism(), nil
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism %q", cfg.SASLMechanism)
	}
}

// clientOptions translates cfg into franz-go client options.
func clientOptions(cfg *Config, logger *zap.Logger, hooks ...kgo.Hook) ([]kgo.Opt, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("no bootstrap servers configured")
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "topology-builder"
	}
	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(clientID),
		kgo.WithLogger(NewKgoLogger(logger)),
	}
	if len(hooks) > 0 {
		opts = append(opts, kgo.WithHooks(hooks...))
	}
	if cfg.SASLMechanism != "" {
		mech, err := saslMechanism(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, kgo.SASL(mech))
	}
	if cfg.TLSEnabled {
		tc, err := tlscfg.New(
			tlscfg.MaybeWithDiskCA(cfg.CAFile, tlscfg.ForClient),
			tlscfg.MaybeWithDiskKeyPair(cfg.CertFile, cfg.KeyFile),
		)
		if err != nil {
			return nil, fmt.Errorf("unable to create TLS configuration: %w", err)
		}
		opts = append(opts, kgo.DialTLSConfig(tc))
	}
	return opts, nil
}
