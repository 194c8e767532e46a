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

package topology

import (
	"os"

	"github.com/redpanda-data/topology-builder/topology/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Flag names.
const (
	FlagTopology     = "topology"
	FlagBrokers      = "brokers"
	FlagClientConfig = "clientConfig"
	FlagAllowDelete  = "allowDelete"
	FlagDryRun       = "dryRun"
	FlagQuiet        = "quiet"
	FlagImport       = "import"
	FlagExport       = "export"
	FlagVerbose      = "verbose"
)

// NewLogger returns a console logger writing to stderr.
func NewLogger(verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Development = false
	cfg.DisableStacktrace = !verbose
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// NewCommand returns the root command.
func NewCommand(version string) *cobra.Command {
	var opts config.Options
	cmd := &cobra.Command{
		Use:           "topology-builder",
		Short:         "Apply a declared topology to a Kafka cluster, or export the topology of a cluster",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(opts)
			if err != nil {
				return err
			}
			logger, err := NewLogger(opts.Verbose)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			ctx := cmd.Context()
			c, err := Connect(ctx, cfg, logger)
			if err != nil {
				return err
			}
			runErr := NewBuilder(cfg, c, cmd.OutOrStdout(), logger).Run(ctx)
			return multierr.Append(runErr, c.Close())
		},
	}

	addFlags(cmd.Flags(), &opts)
	cmd.MarkFlagsMutuallyExclusive(FlagImport, FlagExport)
	_ = cmd.MarkFlagRequired(FlagTopology)
	_ = cmd.MarkFlagRequired(FlagClientConfig)
	return cmd
}

func addFlags(f *pflag.FlagSet, opts *config.Options) {
	f.StringVar(&opts.Topology, FlagTopology, "", "topology file or directory to import, or the file to export to (- for stdout)")
	f.StringVar(&opts.Brokers, FlagBrokers, "", "comma-separated bootstrap servers, overrides bootstrap.servers")
	f.StringVar(&opts.ClientConfig, FlagClientConfig, "", "admin client properties file")
	f.BoolVar(&opts.AllowDelete, FlagAllowDelete, false, "delete undeclared topics and revoke managed access")
	f.BoolVar(&opts.DryRun, FlagDryRun, false, "print the planned actions without running them")
	f.BoolVar(&opts.Quiet, FlagQuiet, false, "do not print the cluster state after an import")
	f.BoolVar(&opts.Import, FlagImport, false, "apply the topology to the cluster (default)")
	f.BoolVar(&opts.Export, FlagExport, false, "write the topology of the cluster")
	f.BoolVar(&opts.Verbose, FlagVerbose, false, "debug logging")
}

// Execute runs the root command and exits non-zero on failure.
func Execute(version string) {
	cmd := NewCommand(version)
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
