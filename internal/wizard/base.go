package wizard

import (
	"context"
	"errors"
)

// userMessager is implemented by errors that carry a message safe to show to the customer
type userMessager interface {
	UserMessage() string
}

// MessageFor returns the text shown in a step for err
func MessageFor(err error) string {
	var m userMessager
	if errors.As(err, &m) {
		return m.UserMessage()
	}
	return err.Error()
}

// Base implements the life cycle and the property machinery shared by all steps.
// Embed it and call Bind with the concrete step.
type Base struct {
	id          string
	cartContext CartContext
	schema      Schema
	hooks       Hooks
	emitter     Emitter

	props   map[string]interface{}
	options map[string][]interface{}

	isLoaded   bool
	isActive   bool
	isHidden   bool
	isDisabled bool
	message    string

	preventReact bool
}

// NewBase creates a step base with every property at its default
func NewBase(id string, cartContext CartContext, schema Schema) Base {
	return Base{
		id:          id,
		cartContext: cartContext,
		schema:      schema,
		props:       schema.Defaults(),
		options:     make(map[string][]interface{}),
	}
}

// Bind attaches the concrete step's hooks
func (b *Base) Bind(hooks Hooks) {
	b.hooks = hooks
}

func (b *Base) ID() string               { return b.id }
func (b *Base) CartContext() CartContext { return b.cartContext }
func (b *Base) IsLoaded() bool           { return b.isLoaded }
func (b *Base) IsActive() bool           { return b.isActive }
func (b *Base) IsHidden() bool           { return b.isHidden }
func (b *Base) IsDisabled() bool         { return b.isDisabled }
func (b *Base) Message() string          { return b.message }

// SetHidden marks the step as disabled by configuration; the sequencer skips it
func (b *Base) SetHidden(hidden bool) {
	b.isHidden = hidden
}

// SetMessage sets the text shown in the step
func (b *Base) SetMessage(message string) {
	b.message = message
}

// SetEmitter sets the receiver of the step's events
func (b *Base) SetEmitter(emitter Emitter) {
	b.emitter = emitter
}

// Emit raises an event on behalf of the step
func (b *Base) Emit(eventType EventType) {
	if b.emitter == nil {
		return
	}
	b.emitter.Emit(Event{Type: eventType, StepID: b.id})
}

// Properties returns a copy of the current values
func (b *Base) Properties() map[string]interface{} {
	values := make(map[string]interface{}, len(b.props))
	for k, v := range b.props {
		values[k] = v
	}
	return values
}

// GetProperty returns the current value of name
func (b *Base) GetProperty(name string) interface{} {
	return b.props[name]
}

// GetInt returns an integer property, 0 if it is not one
func (b *Base) GetInt(name string) int {
	v, _ := b.props[name].(int)
	return v
}

// GetString returns a string property, "" if it is not one
func (b *Base) GetString(name string) string {
	v, _ := b.props[name].(string)
	return v
}

// GetBool returns a bool property, false if it is not one
func (b *Base) GetBool(name string) bool {
	v, _ := b.props[name].(bool)
	return v
}

// Options returns the allow-list of name: the one set with SetOptions, else the schema's
func (b *Base) Options(name string) []interface{} {
	if opts, ok := b.options[name]; ok {
		return opts
	}
	if p, ok := b.schema.Lookup(name); ok {
		return p.Options
	}
	return nil
}

// SetOptions replaces the allow-list of name; nil removes the restriction
func (b *Base) SetOptions(name string, options []interface{}) {
	p, ok := b.schema.Lookup(name)
	if !ok {
		return
	}
	b.options[name] = p.Type.CoerceAll(options)
}

// SetProperty coerces and validates value and applies it. It returns false when
// the value was rejected by the allow-list or did not change; in both cases no
// hooks run. React runs once, after the outermost update and all updates chained
// from AfterUpdate.
func (b *Base) SetProperty(name string, value interface{}) bool {
	p, ok := b.schema.Lookup(name)
	if !ok {
		return false
	}

	v := p.Type.Coerce(value)
	if !IsEmptyValue(v) {
		if opts := b.Options(name); opts != nil && !containsValue(opts, v) {
			return false
		}
	}

	old := b.props[name]
	if old == v {
		return false
	}
	b.props[name] = v

	outermost := !b.preventReact
	b.preventReact = true
	b.hooks.AfterUpdate(name, v, old)
	if outermost {
		b.preventReact = false
		b.hooks.React()
	}

	return true
}

// SetProperties applies values in schema order with a single React at the end.
// It returns true if anything changed.
func (b *Base) SetProperties(values map[string]interface{}) bool {
	outermost := !b.preventReact
	b.preventReact = true

	changed := false
	for _, p := range b.schema {
		if v, ok := values[p.Name]; ok {
			changed = b.SetProperty(p.Name, v) || changed
		}
	}

	if outermost {
		b.preventReact = false
		if changed {
			b.hooks.React()
		}
	}
	return changed
}

// ResetProperty sets name back to its default through SetProperty
func (b *Base) ResetProperty(name string) {
	if p, ok := b.schema.Lookup(name); ok {
		b.SetProperty(name, p.Default)
	}
}

// Load runs OnLoad the first time and OnReload afterwards. A failure is shown
// as the step message and returned.
func (b *Base) Load(ctx context.Context) error {
	b.message = ""

	var err error
	if !b.isLoaded {
		err = b.hooks.OnLoad(ctx)
		if err == nil {
			b.isLoaded = true
		}
	} else {
		err = b.hooks.OnReload(ctx)
	}

	if err != nil {
		b.message = MessageFor(err)
	}
	b.hooks.React()

	return err
}

// Show makes the step current and enabled
func (b *Base) Show() {
	b.isActive = true
	b.isDisabled = false
}

// Hide deactivates the step
func (b *Base) Hide() {
	b.isActive = false
}

// Reset returns the step to its constructed state; the next Load is a first load
func (b *Base) Reset() {
	b.hooks.OnReset()

	b.props = b.schema.Defaults()
	b.options = make(map[string][]interface{})
	b.isLoaded = false
	b.isDisabled = false
	b.message = ""
}

// Submit runs MaybeSubmit when the step is active and its input is valid. It
// returns true when the step proceeded; the step_next event is then emitted.
func (b *Base) Submit(ctx context.Context) bool {
	if !b.isActive || b.isDisabled || !b.hooks.IsValidInput() {
		return false
	}

	b.isDisabled = true
	b.message = ""

	outcome := b.hooks.MaybeSubmit(ctx)
	switch outcome.kind {
	case outcomeReject:
		b.CancelSubmission(outcome.reason)
		return false
	case outcomeAwait:
		if err := outcome.wait(ctx); err != nil {
			b.CancelSubmission(MessageFor(err))
			return false
		}
	}

	b.Emit(EventStepNext)
	return true
}

// Cancel leaves the step backwards
func (b *Base) Cancel() {
	if !b.isActive {
		return
	}
	b.Emit(EventStepBack)
}

// CancelSubmission re-enables the step after a failed submit and shows message
func (b *Base) CancelSubmission(message string) {
	b.isDisabled = false
	b.message = message
	b.hooks.React()
}

// State returns a snapshot of the step
func (b *Base) State() State {
	state := State{
		ID:         b.id,
		Context:    b.cartContext,
		Loaded:     b.isLoaded,
		Active:     b.isActive,
		Hidden:     b.isHidden,
		Disabled:   b.isDisabled,
		Valid:      b.hooks.IsValidInput(),
		Message:    b.message,
		Properties: b.Properties(),
	}

	for _, p := range b.schema {
		if opts := b.Options(p.Name); opts != nil {
			if state.Options == nil {
				state.Options = make(map[string][]interface{})
			}
			state.Options[p.Name] = opts
		}
	}

	if d, ok := b.hooks.(Describer); ok {
		state.Details = d.Describe()
	}

	return state
}
