package wizard

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
	"github.com/m04kA/SMC-BookingWizard/pkg/orderedmap"
)

type direction int

const (
	forward direction = iota
	backward
)

// Sequencer moves the customer through the ordered steps. At most one step is
// current. Steps talk to it only through events; events raised while an
// operation runs are queued and handled in order once it returns.
type Sequencer struct {
	steps         *orderedmap.Map[string, Step]
	currentStepID string
	cart          *cart.Cart
	queue         []Event
	logger        Logger
	observer      TransitionObserver
}

// NewSequencer creates a sequencer over the shared cart. observer may be nil.
func NewSequencer(c *cart.Cart, logger Logger, observer TransitionObserver) *Sequencer {
	return &Sequencer{
		steps:    orderedmap.New[string, Step](),
		cart:     c,
		logger:   logger,
		observer: observer,
	}
}

// AddStep appends step; insertion order is the wizard order
func (s *Sequencer) AddStep(step Step) {
	step.SetEmitter(s)
	s.steps.Push(step.ID(), step)
}

// Cart returns the shared cart
func (s *Sequencer) Cart() *cart.Cart {
	return s.cart
}

// CurrentStepID returns the ID of the current step, "" before the start
func (s *Sequencer) CurrentStepID() string {
	return s.currentStepID
}

// CurrentStep returns the current step, nil before the start
func (s *Sequencer) CurrentStep() Step {
	step, ok := s.steps.Get(s.currentStepID)
	if !ok {
		return nil
	}
	return step
}

// Step returns the step with id
func (s *Sequencer) Step(id string) (Step, error) {
	step, ok := s.steps.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStepNotFound, id)
	}
	return step, nil
}

// Steps returns the steps in order
func (s *Sequencer) Steps() []Step {
	return s.steps.Values()
}

// CanGoBack returns true if a visible step precedes the current one
func (s *Sequencer) CanGoBack() bool {
	found := false
	visible := false
	s.steps.ForEach(func(id string, step Step) bool {
		if id == s.currentStepID {
			found = true
			return false
		}
		visible = visible || !step.IsHidden()
		return true
	})
	return found && visible
}

// Emit queues an event; it is handled after the running operation
func (s *Sequencer) Emit(event Event) {
	s.queue = append(s.queue, event)
}

// Dispatch handles an event coming from outside, then every event it caused
func (s *Sequencer) Dispatch(ctx context.Context, event Event) error {
	if !event.IsValid() {
		return fmt.Errorf("%w: %q from %q", ErrInvalidEvent, event.Type, event.StepID)
	}
	s.Emit(event)
	return s.drain(ctx)
}

// Run executes fn and then handles the events it raised
func (s *Sequencer) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		s.queue = nil
		return err
	}
	return s.drain(ctx)
}

// Start begins the first booking item
func (s *Sequencer) Start(ctx context.Context) error {
	if s.steps.IsEmpty() {
		return ErrNoSteps
	}
	return s.Run(ctx, s.GoToFirstStep)
}

// Resume reopens stepID without creating a new item; used after a session restore
func (s *Sequencer) Resume(ctx context.Context, stepID string) error {
	if !s.steps.Has(stepID) {
		return fmt.Errorf("%w: %s", ErrStepNotFound, stepID)
	}
	return s.Run(ctx, func(ctx context.Context) error {
		return s.switchStep(ctx, stepID, forward)
	})
}

func (s *Sequencer) drain(ctx context.Context) error {
	for len(s.queue) > 0 {
		event := s.queue[0]
		s.queue = s.queue[1:]

		if err := s.handle(ctx, event); err != nil {
			s.queue = nil
			return err
		}
	}
	return nil
}

func (s *Sequencer) handle(ctx context.Context, event Event) error {
	if event.StepID != s.currentStepID {
		s.logger.Warn("Sequencer: ignoring %s from step %s, current step is %s", event.Type, event.StepID, s.currentStepID)
		return nil
	}

	switch event.Type {
	case EventStepNext:
		return s.GoToNextStep(ctx)
	case EventStepBack:
		return s.GoToPreviousStep(ctx)
	case EventStepNew:
		return s.GoToFirstStep(ctx)
	case EventResetBooking:
		return s.ResetBooking(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEvent, event.Type)
	}
}

// GoToNextStep switches to the next step; from the last step it does nothing
func (s *Sequencer) GoToNextStep(ctx context.Context) error {
	if s.currentStepID == "" {
		first, ok := s.steps.FirstKey()
		if !ok {
			return ErrNoSteps
		}
		return s.switchStep(ctx, first, forward)
	}

	next := s.steps.FindNextKey(s.currentStepID)
	if next == "" || next == s.currentStepID {
		return nil
	}
	return s.switchStep(ctx, next, forward)
}

// GoToPreviousStep switches to the previous step; from the first step it does nothing
func (s *Sequencer) GoToPreviousStep(ctx context.Context) error {
	if s.currentStepID == "" {
		return nil
	}

	previous := s.steps.FindPreviousKey(s.currentStepID)
	if previous == "" || previous == s.currentStepID {
		return nil
	}
	return s.switchStep(ctx, previous, backward)
}

// GoToFirstStep starts a new cart item: creates it, resets every cart item step
// and switches to the first step
func (s *Sequencer) GoToFirstStep(ctx context.Context) error {
	first, ok := s.steps.FirstKey()
	if !ok {
		return ErrNoSteps
	}

	s.cart.CreateItem("")

	for _, step := range s.steps.Values() {
		if step.CartContext() == ContextCartItem {
			step.Reset()
		}
	}

	return s.switchStep(ctx, first, forward)
}

// ResetBooking clears the cart and every step and starts over
func (s *Sequencer) ResetBooking(ctx context.Context) error {
	s.cart.Reset()

	for _, step := range s.steps.Values() {
		step.Reset()
	}

	return s.GoToFirstStep(ctx)
}

// switchStep hides the current step before the new one loads. A hidden
// destination that loaded fine is passed through automatically in the
// direction of travel.
func (s *Sequencer) switchStep(ctx context.Context, stepID string, dir direction) error {
	step, err := s.Step(stepID)
	if err != nil {
		return err
	}

	if current := s.CurrentStep(); current != nil {
		current.Hide()
	}

	from := s.currentStepID
	s.currentStepID = stepID
	if s.observer != nil {
		s.observer.ObserveStepTransition(from, stepID)
	}

	loadErr := step.Load(ctx)
	step.Show()

	if loadErr != nil {
		s.logger.Warn("Sequencer: step %s failed to load: %v", stepID, loadErr)
		return nil
	}

	if !step.IsHidden() {
		return nil
	}

	if dir == forward {
		if !step.Submit(ctx) {
			s.logger.Warn("Sequencer: hidden step %s did not submit", stepID)
		}
		return nil
	}
	step.Cancel()

	return nil
}
