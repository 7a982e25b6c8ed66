package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/apperr"
	"github.com/mmynk/tripsplit/internal/auth"
)

// ErrorKindHeader carries the apperr.Kind of a failed call so clients can branch on
// it without parsing messages.
const ErrorKindHeader = "Error-Kind"

// toConnectError maps domain errors onto Connect codes. Errors that are already
// *connect.Error pass through.
func toConnectError(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrDisplayName):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, err)
	}

	kind := apperr.KindOf(err)
	if kind == "" {
		return connect.NewError(connect.CodeInternal, err)
	}

	connectErr = connect.NewError(codeFor(kind), err)
	connectErr.Meta().Set(ErrorKindHeader, string(kind))
	return connectErr
}

func codeFor(kind apperr.Kind) connect.Code {
	switch kind {
	case apperr.KindInvalidAmount,
		apperr.KindInvalidSplitType,
		apperr.KindNoParticipants,
		apperr.KindSplitSumMismatch,
		apperr.KindDuplicateParticipant,
		apperr.KindInvalidInput:
		return connect.CodeInvalidArgument
	case apperr.KindTripNotFound, apperr.KindExpenseNotFound, apperr.KindSettlementNotFound, apperr.KindItineraryNotFound:
		return connect.CodeNotFound
	case apperr.KindMemberNotFound:
		return connect.CodeFailedPrecondition
	case apperr.KindUnauthorized:
		return connect.CodePermissionDenied
	default:
		return connect.CodeInternal
	}
}
