// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cor (Chain of Responsibility) provides the building blocks for
// composing workflows out of small, individually traced commands. A Chain
// executes its commands in order, piping the output of one command into
// the input of the next through a shared Context.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Default context keys used to pipe data between commands in a chain.
const (
	CtxIn  = "__ctx_input__"
	CtxOut = "__ctx_output__"
)

// Context is the shared property bag passed through a chain of commands.
// Each command reads its inputs from the context and writes its results
// back for subsequent commands to use.
type Context interface {
	// SetContext replaces the standard Go context. Used by the chain to
	// scope each command's work to its own trace span.
	SetContext(context context.Context)

	// GetContext returns the current standard Go context.
	GetContext() context.Context

	// Add stores a key-value pair and returns the context for chaining.
	Add(key string, value interface{}) Context

	// Get returns the value stored under key, or nil.
	Get(key string) interface{}

	// Remove deletes the value stored under key.
	Remove(key string)

	// AddError records an error, keyed by the name of the command that
	// produced it.
	AddError(key string, err error)

	// GetErrors returns all errors collected during the workflow.
	GetErrors() map[string]error

	// HasErrors reports whether any command has recorded an error.
	HasErrors() bool
}

// Executable is any object with a core execution step.
type Executable interface {
	// Execute runs the object's business logic against the shared context.
	Execute(context Context)
}

// Command represents an atomic, testable unit of work. It is the
// fundamental building block of a workflow.
type Command interface {
	Executable

	// GetName returns the command's unique name, used for logging and
	// telemetry.
	GetName() string

	// GetInputParam returns the context key the command reads its primary
	// input from.
	GetInputParam() string

	// GetOutputParam returns the context key the command stores its
	// primary output under.
	GetOutputParam() string

	// IsExecutable reports whether the command can run with the current
	// state of the context.
	IsExecutable(context Context) bool

	// GetTracer returns the OpenTelemetry tracer for this command.
	GetTracer() trace.Tracer

	// GetMeter returns the OpenTelemetry meter for creating metrics.
	GetMeter() metric.Meter

	// GetSuccessCounter returns a counter incremented on success.
	GetSuccessCounter() metric.Int64Counter

	// GetErrorCounter returns a counter incremented on failure.
	GetErrorCounter() metric.Int64Counter
}

// Chain is a sequence of commands. A Chain is itself a Command, so chains
// can be nested within other chains.
type Chain interface {
	Command

	// ContinueOnFailure configures whether the chain keeps executing after
	// one of its commands records an error.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command to the execution sequence.
	AddCommand(command Command) Chain
}
