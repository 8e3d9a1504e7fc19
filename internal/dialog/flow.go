// Package dialog implements the per-user finite-state dialogue engine
// and the declarative flow descriptions it runs.
package dialog

import "context"

// FlowID names a multi-step dialogue (e.g. "add-workout").
type FlowID string

// StateID names one step within a flow.
type StateID string

// MenuID identifies a rendered option set for back navigation.
type MenuID string

// Input is one inbound user event: free text, a selected option, or a
// photo with optional caption. The transport guarantees it originates
// from the session's own user.
type Input struct {
	Text  string
	Photo []byte
}

// Prompt is what the transport should render next. An empty Options
// slice means free text is expected.
type Prompt struct {
	Text    string
	Options []string
	Menu    MenuID
}

// Context is the accumulating key-value data collected across a flow's
// steps, consumed when the flow completes.
type Context map[string]any

// String returns a string value from the context.
func (c Context) String(key string) (string, bool) {
	v, ok := c[key].(string)
	return v, ok
}

// Int returns an int value from the context.
func (c Context) Int(key string) (int, bool) {
	v, ok := c[key].(int)
	return v, ok
}

// Float returns a float64 value from the context.
func (c Context) Float(key string) (float64, bool) {
	v, ok := c[key].(float64)
	return v, ok
}

// clone returns a shallow copy so handlers cannot mutate engine state
// before validation succeeds.
func (c Context) clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Result is a step handler's decision. Exactly one of the shapes is
// meaningful: Invalid re-prompts the same state with nothing applied;
// Done completes the flow after the handler performed its single
// repository write; otherwise Next advances the flow.
type Result struct {
	// Invalid holds the corrective message for rejected input.
	Invalid string
	// Set is merged into the flow context on success.
	Set Context
	// Next is the following state when the flow continues.
	Next StateID
	// Done marks the transition into a terminal state.
	Done bool
	// Reply is sent to the user on completion or alongside the next prompt.
	Reply string
}

// Invalid builds a validation-failure result.
func Invalid(msg string) Result { return Result{Invalid: msg} }

// Handler processes input for one state. The next state may depend on
// the full accumulated context, not only the latest answer. Handlers
// must perform their one repository write only when returning Done.
type Handler func(ctx context.Context, fc Context, in Input) Result

// State is one step of a flow: the prompt shown on entry and the
// handler run on the next input.
type State struct {
	Prompt func(fc Context) Prompt
	Handle Handler
}

// Flow is a declarative multi-step dialogue definition.
type Flow struct {
	ID     FlowID
	Entry  StateID
	States map[StateID]State
}
