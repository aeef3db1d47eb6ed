// Package domain encodes the shop order as seen by the payment gateway and the
// rules for moving it between statuses in response to gateway callbacks.
package domain

import (
	"fmt"
	"slices"
	"time"
)

// OrderStatus is the shop-side order state.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusOnHold     OrderStatus = "on-hold"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusFailed     OrderStatus = "failed"
	StatusCancelled  OrderStatus = "cancelled"
	StatusRefunded   OrderStatus = "refunded"
)

// Order is owned by the shop. The gateway reads it and changes it only through
// the order store (status + note, mark paid).
type Order struct {
	ID        int64
	Key       string
	Status    OrderStatus
	Total     Money
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	Notes     []Note
}

// Note is one entry of the order's append-only audit log.
type Note struct {
	ID        int64
	OrderID   int64
	Body      string
	CreatedAt time.Time
}

// IsTerminal reports whether the order can no longer change status.
func (o *Order) IsTerminal() bool {
	switch o.Status {
	case StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsPaid reports whether the gateway has already been paid for this order.
func (o *Order) IsPaid() bool {
	switch o.Status {
	case StatusProcessing, StatusCompleted, StatusRefunded:
		return true
	default:
		return false
	}
}

// AwaitingPayment reports whether the shopper can still be sent to the gateway.
func (o *Order) AwaitingPayment() bool {
	return o.Status == StatusPending || o.Status == StatusOnHold
}

// CanTransitionTo enforces the monotonic status order.
func (o *Order) CanTransitionTo(target OrderStatus) error {
	switch o.Status {
	case StatusPending:
		return o.allow(target, StatusOnHold, StatusProcessing, StatusCompleted, StatusFailed, StatusCancelled)
	case StatusOnHold:
		return o.allow(target, StatusProcessing, StatusCompleted, StatusFailed, StatusCancelled)
	case StatusProcessing:
		return o.allow(target, StatusCompleted, StatusRefunded)
	case StatusCompleted:
		return o.allow(target, StatusRefunded)
	}
	return NewInvalidTransitionError(o.Status, target)
}

func (o *Order) allow(target OrderStatus, allowed ...OrderStatus) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return NewInvalidTransitionError(o.Status, target)
}

// TransitionKind says what the store has to do for a decided transition.
type TransitionKind int

const (
	// TransitionApply changes the status (and for Approved marks the order paid).
	TransitionApply TransitionKind = iota
	// TransitionNoteOnly keeps the status and appends the note.
	TransitionNoteOnly
	// TransitionNoop touches nothing.
	TransitionNoop
	// TransitionReject touches nothing and is reported to the caller.
	TransitionReject
)

// Transition is the decision for one outcome against one order snapshot.
type Transition struct {
	Kind     TransitionKind
	From     OrderStatus
	To       OrderStatus
	Note     string
	MarkPaid bool
	Reason   string
}

// Decide computes what an outcome does to the order. It has no side effects;
// the applier carries the result out against the store.
func (o *Order) Decide(outcome GatewayOutcome, message string) Transition {
	switch outcome.Kind {
	case OutcomeApproved:
		return o.decide(StatusCompleted, completedNote(), true)
	case OutcomeDeclined:
		return o.decide(StatusFailed, declinedNote(outcome.Raw, message), false)
	default:
		return o.decide(StatusOnHold, heldNote(outcome.Raw), false)
	}
}

func (o *Order) decide(target OrderStatus, note string, markPaid bool) Transition {
	t := Transition{From: o.Status, To: target, Note: note}

	if o.Status == target || (markPaid && o.IsPaid()) {
		if markPaid {
			// payment already recorded; a second completion must not repeat it
			t.Kind = TransitionNoop
			t.Note = ""
			t.To = o.Status
			return t
		}
		t.Kind = TransitionNoteOnly
		return t
	}

	if o.IsTerminal() {
		t.Kind = TransitionReject
		t.Note = ""
		t.Reason = fmt.Sprintf("order is %s and final: %v", o.Status, NewInvalidTransitionError(o.Status, target))
		return t
	}

	if err := o.CanTransitionTo(target); err != nil {
		t.Kind = TransitionReject
		t.Note = ""
		t.Reason = err.Error()
		return t
	}

	t.Kind = TransitionApply
	t.MarkPaid = markPaid
	return t
}

func completedNote() string {
	return "Payment completed via Cornerstone."
}

func declinedNote(status, message string) string {
	return fmt.Sprintf("Payment %s via Cornerstone. Message: %s.", status, message)
}

func heldNote(status string) string {
	if status == "" {
		return "Payment returned no status via Cornerstone."
	}
	return fmt.Sprintf("Payment %s via Cornerstone.", status)
}
