// Package apperr defines the error kinds surfaced by the ledger to its callers.
//
// Every failure the engine reports is a local validation failure carrying a Kind and
// a human-readable message. Callers match kinds with errors.Is against the sentinel
// values below, or extract the kind with KindOf.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind string

const (
	KindInvalidAmount        Kind = "InvalidAmount"
	KindInvalidSplitType     Kind = "InvalidSplitType"
	KindNoParticipants       Kind = "NoParticipants"
	KindSplitSumMismatch     Kind = "SplitSumMismatch"
	KindDuplicateParticipant Kind = "DuplicateParticipant"
	KindMemberNotFound       Kind = "MemberNotFound"
	KindTripNotFound         Kind = "TripNotFound"
	KindExpenseNotFound      Kind = "ExpenseNotFound"
	KindSettlementNotFound   Kind = "SettlementNotFound"
	KindItineraryNotFound    Kind = "ItineraryItemNotFound"
	KindUnauthorized         Kind = "Unauthorized"
	KindInvalidInput         Kind = "InvalidInput"
)

// Error is a ledger error with a kind and message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return string(e.Kind)
	}
	return e.Msg
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidAmount        = &Error{Kind: KindInvalidAmount}
	ErrInvalidSplitType     = &Error{Kind: KindInvalidSplitType}
	ErrNoParticipants       = &Error{Kind: KindNoParticipants}
	ErrSplitSumMismatch     = &Error{Kind: KindSplitSumMismatch}
	ErrDuplicateParticipant = &Error{Kind: KindDuplicateParticipant}
	ErrMemberNotFound       = &Error{Kind: KindMemberNotFound}
	ErrTripNotFound         = &Error{Kind: KindTripNotFound}
	ErrExpenseNotFound      = &Error{Kind: KindExpenseNotFound}
	ErrSettlementNotFound   = &Error{Kind: KindSettlementNotFound}
	ErrItineraryNotFound    = &Error{Kind: KindItineraryNotFound}
	ErrUnauthorized         = &Error{Kind: KindUnauthorized}
	ErrInvalidInput         = &Error{Kind: KindInvalidInput}
)

// New returns an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
