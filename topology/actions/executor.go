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

package actions

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// Executor prints or runs a plan.
type Executor struct {
	dryRun bool
	out    io.Writer
	logger *zap.Logger

	create  *color.Color
	destroy *color.Color
}

// NewExecutor returns an executor. In dry-run mode actions are written to
// out and never run.
func NewExecutor(dryRun bool, out io.Writer, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		dryRun:  dryRun,
		out:     out,
		logger:  logger,
		create:  color.New(color.FgGreen),
		destroy: color.New(color.FgRed),
	}
}

// DryRun reports whether the executor only prints.
func (e *Executor) DryRun() bool { return e.dryRun }

// Execute walks the plan in order. It stops at the first failing action,
// marks it Failed and leaves the remaining actions Planned.
func (e *Executor) Execute(ctx context.Context, plan *Plan) error {
	for i, s := range plan.steps {
		if s.state != Planned {
			return fmt.Errorf("action %d (%s) is %s, only planned actions can be executed", i, s.action.Kind(), s.state)
		}
	}
	for _, s := range plan.steps {
		if e.dryRun {
			if err := e.print(s.action); err != nil {
				return err
			}
			s.state = Printed
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		e.logger.Debug("running action", zap.Stringer("kind", s.action.Kind()))
		if err := s.action.Run(ctx); err != nil {
			s.state = Failed
			return fmt.Errorf("%s: %w", s.action, err)
		}
		s.state = Succeeded
	}
	return nil
}

func (e *Executor) print(a Action) error {
	c := e.create
	if a.Kind().IsDestructive() {
		c = e.destroy
	}
	_, err := c.Fprintln(e.out, a.String())
	return err
}
