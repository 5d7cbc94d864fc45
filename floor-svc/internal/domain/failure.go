package domain

import (
	"errors"
	"fmt"
)

// Storage-level sentinels. Services translate them into Failures with the matching reason.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Reason is a machine-readable code for an expected business outcome.
type Reason string

const (
	ReasonSessionNotFound Reason = "session_not_found"
	ReasonWaveNotFound    Reason = "wave_not_found"
	ReasonItemNotFound    Reason = "item_not_found"
	ReasonSeatNotFound    Reason = "seat_not_found"
	ReasonPaymentNotFound Reason = "payment_not_found"

	ReasonSessionNotOpen       Reason = "session_not_open"
	ReasonTableHasOpenSession  Reason = "table_has_open_session"
	ReasonWaveAlreadyFired     Reason = "wave_already_fired"
	ReasonItemSentToKitchen    Reason = "item_sent_to_kitchen"
	ReasonItemNotSentToKitchen Reason = "item_not_sent_to_kitchen"
	ReasonItemVoided           Reason = "item_voided"
	ReasonItemAlreadyVoided    Reason = "item_already_voided"
	ReasonItemAlreadyRefired   Reason = "item_already_refired"
	ReasonItemNotRefirable     Reason = "item_not_refirable"
	ReasonItemNotPending       Reason = "item_not_pending"
	ReasonItemNotPreparing     Reason = "item_not_preparing"
	ReasonItemNotReady         Reason = "item_not_ready"
	ReasonSeatInactive         Reason = "seat_inactive"
	ReasonPaymentStatusFinal   Reason = "payment_status_final"
	ReasonUnauthorized         Reason = "unauthorized"
	ReasonSeatNotInSession     Reason = "seat_not_in_session"
	ReasonItemNotInOrder       Reason = "item_not_in_order"
	ReasonNoWaveToFire         Reason = "no_wave_to_fire"
	ReasonUnfinishedItems      Reason = "unfinished_items"
	ReasonUnpaidBalance        Reason = "unpaid_balance"
	ReasonPartialFailure       Reason = "partial_failure"
	ReasonInvalidQuantity      Reason = "invalid_quantity"
	ReasonInvalidStatus        Reason = "invalid_status"
	ReasonInvalidAmount        Reason = "invalid_amount"
	ReasonInvalidInput         Reason = "invalid_input"
)

// Category groups reasons by how callers are expected to react.
type Category string

const (
	CategoryNotFound      Category = "not_found"
	CategoryPrecondition  Category = "precondition"
	CategoryAuthorization Category = "authorization"
	CategoryConsistency   Category = "consistency"
	CategoryBusinessRule  Category = "business_rule"
	CategoryValidation    Category = "validation"
)

var reasonCategories = map[Reason]Category{
	ReasonSessionNotFound: CategoryNotFound,
	ReasonWaveNotFound:    CategoryNotFound,
	ReasonItemNotFound:    CategoryNotFound,
	ReasonSeatNotFound:    CategoryNotFound,
	ReasonPaymentNotFound: CategoryNotFound,

	ReasonSessionNotOpen:       CategoryPrecondition,
	ReasonTableHasOpenSession:  CategoryPrecondition,
	ReasonWaveAlreadyFired:     CategoryPrecondition,
	ReasonItemSentToKitchen:    CategoryPrecondition,
	ReasonItemNotSentToKitchen: CategoryPrecondition,
	ReasonItemVoided:           CategoryPrecondition,
	ReasonItemAlreadyVoided:    CategoryPrecondition,
	ReasonItemAlreadyRefired:   CategoryPrecondition,
	ReasonItemNotRefirable:     CategoryPrecondition,
	ReasonItemNotPending:       CategoryPrecondition,
	ReasonItemNotPreparing:     CategoryPrecondition,
	ReasonItemNotReady:         CategoryPrecondition,
	ReasonSeatInactive:         CategoryPrecondition,
	ReasonPaymentStatusFinal:   CategoryPrecondition,

	ReasonUnauthorized: CategoryAuthorization,

	ReasonSeatNotInSession: CategoryConsistency,
	ReasonItemNotInOrder:   CategoryConsistency,
	ReasonNoWaveToFire:     CategoryConsistency,

	ReasonUnfinishedItems: CategoryBusinessRule,
	ReasonUnpaidBalance:   CategoryBusinessRule,
	ReasonPartialFailure:  CategoryBusinessRule,

	ReasonInvalidQuantity: CategoryValidation,
	ReasonInvalidStatus:   CategoryValidation,
	ReasonInvalidAmount:   CategoryValidation,
	ReasonInvalidInput:    CategoryValidation,
}

// Category returns the taxonomy bucket of r. Unknown reasons are treated as precondition violations.
func (r Reason) Category() Category {
	if c, ok := reasonCategories[r]; ok {
		return c
	}
	return CategoryPrecondition
}

// Failure is an expected, recoverable outcome of an operation. It travels as an error so callers
// can branch on it with AsFailure; anything that is not a Failure is an infrastructure fault.
type Failure struct {
	Reason  Reason         `json:"reason"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (f *Failure) Error() string {
	if f.Message == "" {
		return string(f.Reason)
	}
	return fmt.Sprintf("%s: %s", f.Reason, f.Message)
}

// Is matches another *Failure by reason so errors.Is works against the sentinel-style values
// returned by Fail.
func (f *Failure) Is(target error) bool {
	if t, ok := target.(*Failure); ok {
		return f.Reason == t.Reason
	}
	return false
}

func (f *Failure) Category() Category {
	return f.Reason.Category()
}

// With returns f with an extra diagnostic detail attached.
func (f *Failure) With(key string, value any) *Failure {
	if f.Details == nil {
		f.Details = make(map[string]any)
	}
	f.Details[key] = value
	return f
}

func Fail(reason Reason, message string) *Failure {
	return &Failure{Reason: reason, Message: message}
}

// AsFailure extracts a *Failure from err's chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// HasReason reports whether err carries a Failure with the given reason.
func HasReason(err error, reason Reason) bool {
	f, ok := AsFailure(err)
	return ok && f.Reason == reason
}
