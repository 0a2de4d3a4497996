package wizard

import "context"

// CartContext tells whether a step's state belongs to one cart item or to the whole cart
type CartContext string

const (
	ContextCartItem CartContext = "cart item"
	ContextCart     CartContext = "cart"
)

// Hooks are implemented by every concrete step and called by Base
type Hooks interface {
	// OnLoad runs on the first load after construction or reset
	OnLoad(ctx context.Context) error
	// OnReload runs on every later load
	OnReload(ctx context.Context) error
	// OnReset drops step-specific state
	OnReset()
	IsValidInput() bool
	MaybeSubmit(ctx context.Context) Outcome
	// AfterUpdate runs after a property changed; chained SetProperty calls are batched
	AfterUpdate(name string, value, old interface{})
	// React re-derives the step view state after changes settle
	React()
}

// Describer is implemented by steps that expose extra view data (slots, gateways, results)
type Describer interface {
	Describe() interface{}
}

// Step is what the sequencer drives. Concrete steps satisfy it by embedding Base.
type Step interface {
	ID() string
	CartContext() CartContext
	IsLoaded() bool
	IsActive() bool
	IsHidden() bool
	Load(ctx context.Context) error
	Show()
	Hide()
	Reset()
	Submit(ctx context.Context) bool
	Cancel()
	SetProperties(values map[string]interface{}) bool
	SetEmitter(emitter Emitter)
	State() State
}

// State is a read-only snapshot of a step
type State struct {
	ID         string                   `json:"id"`
	Context    CartContext              `json:"context"`
	Loaded     bool                     `json:"loaded"`
	Active     bool                     `json:"active"`
	Hidden     bool                     `json:"hidden"`
	Disabled   bool                     `json:"disabled"`
	Valid      bool                     `json:"valid"`
	Message    string                   `json:"message,omitempty"`
	Properties map[string]interface{}   `json:"properties"`
	Options    map[string][]interface{} `json:"options,omitempty"`
	Details    interface{}              `json:"details,omitempty"`
}
