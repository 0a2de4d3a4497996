package wizard

import "context"

type outcomeKind int

const (
	outcomeProceed outcomeKind = iota
	outcomeReject
	outcomeAwait
)

// Outcome is the result of a step's MaybeSubmit hook
type Outcome struct {
	kind   outcomeKind
	reason string
	wait   func(ctx context.Context) error
}

// Proceed moves the wizard to the next step
func Proceed() Outcome {
	return Outcome{kind: outcomeProceed}
}

// Reject keeps the wizard on the step and shows reason
func Reject(reason string) Outcome {
	return Outcome{kind: outcomeReject, reason: reason}
}

// Await runs fn; nil proceeds, an error rejects with its message
func Await(fn func(ctx context.Context) error) Outcome {
	return Outcome{kind: outcomeAwait, wait: fn}
}
