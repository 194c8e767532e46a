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

// State is the lifecycle position of an action within a plan.
type State int

// Action states. Planned is the only initial state; the others are terminal.
const (
	Planned State = iota
	Printed
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Planned:
		return "planned"
	case Printed:
		return "printed"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

type step struct {
	action Action
	state  State
}

// Plan is an ordered list of actions. Execution follows insertion order.
type Plan struct {
	steps []*step
}

// NewPlan returns a plan holding the given actions in order.
func NewPlan(actions ...Action) *Plan {
	p := &Plan{}
	for _, a := range actions {
		p.Add(a)
	}
	return p
}

// Add appends an action in the Planned state. Nil actions are ignored.
func (p *Plan) Add(a Action) {
	if a == nil {
		return
	}
	p.steps = append(p.steps, &step{action: a, state: Planned})
}

// Len returns the number of actions.
func (p *Plan) Len() int { return len(p.steps) }

// IsEmpty reports whether the plan holds no actions.
func (p *Plan) IsEmpty() bool { return len(p.steps) == 0 }

// Actions returns the actions in execution order.
func (p *Plan) Actions() []Action {
	out := make([]Action, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.action
	}
	return out
}

// State returns the state of the i-th action.
func (p *Plan) State(i int) State { return p.steps[i].state }

// States returns the state of every action in execution order.
func (p *Plan) States() []State {
	out := make([]State, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.state
	}
	return out
}
