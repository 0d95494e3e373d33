package sharing

import (
	"github.com/pkg/errors"
)

// Kind classifies every failure the sharing operations can return
type Kind string

const (
	KindNotAuthenticated       Kind = "NOT_AUTHENTICATED"
	KindNotAMember             Kind = "NOT_A_MEMBER"
	KindForbidden              Kind = "FORBIDDEN"
	KindAlreadyMember          Kind = "ALREADY_MEMBER"
	KindDuplicateInvite        Kind = "DUPLICATE_INVITE"
	KindInviteQuotaExceeded    Kind = "INVITE_QUOTA_EXCEEDED"
	KindInvalidOrExpiredInvite Kind = "INVALID_OR_EXPIRED_INVITE"
	KindMaxUsesReached         Kind = "MAX_USES_REACHED"
	KindEmailMismatch          Kind = "EMAIL_MISMATCH"
	KindNotFound               Kind = "NOT_FOUND"
	KindInvalidArgument        Kind = "INVALID_ARGUMENT"
	KindRateLimited            Kind = "RATE_LIMITED"
	KindStoreFailure           Kind = "STORE_FAILURE"
)

// Error carries a user-facing message. Cause is only set for store failures.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works for every not-found message
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotAuthenticated       = &Error{Kind: KindNotAuthenticated, Message: "please log in first"}
	ErrNotAMember             = &Error{Kind: KindNotAMember, Message: "you are not a member of this album"}
	ErrForbidden              = &Error{Kind: KindForbidden, Message: "you are not allowed to do this"}
	ErrAlreadyMember          = &Error{Kind: KindAlreadyMember, Message: "this user is already a member"}
	ErrDuplicateInvite        = &Error{Kind: KindDuplicateInvite, Message: "this email address already has a pending invite"}
	ErrInviteQuotaExceeded    = &Error{Kind: KindInviteQuotaExceeded, Message: "this album already has the maximum number of active invite links"}
	ErrInvalidOrExpiredInvite = &Error{Kind: KindInvalidOrExpiredInvite, Message: "this invite is invalid or has expired"}
	ErrMaxUsesReached         = &Error{Kind: KindMaxUsesReached, Message: "this invite link has reached its maximum number of uses"}
	ErrEmailMismatch          = &Error{Kind: KindEmailMismatch, Message: "this invite was sent to a different email address"}
	ErrNotFound               = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInvalidArgument        = &Error{Kind: KindInvalidArgument, Message: "invalid request"}
	ErrRateLimited            = &Error{Kind: KindRateLimited, Message: "too many requests, please try again later"}
	ErrStoreFailure           = &Error{Kind: KindStoreFailure, Message: "storage error"}
)

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func notFound(what string) *Error {
	return newError(KindNotFound, what+" not found")
}

func invalid(message string) *Error {
	return newError(KindInvalidArgument, message)
}

// storeFailure wraps a data store error, keeping the cause and its stack
func storeFailure(err error, action string) *Error {
	return &Error{Kind: KindStoreFailure, Message: "storage error", Cause: errors.Wrap(err, action)}
}

// KindOf returns the kind of a sharing error, or KindStoreFailure for anything else
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStoreFailure
}
