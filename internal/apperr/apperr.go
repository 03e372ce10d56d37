// Package apperr is the error taxonomy shared by the access-control core.
// Services return these sentinels; the HTTP layer maps kinds to status codes.
// On read paths a denial is reported as the NotFound sentinel of the resource
// so callers cannot distinguish "hidden" from "missing".
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindAuthorization
	KindNotFound
)

// Error is a coded error. Comparisons go through errors.Is against the
// package sentinels.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

// Is matches by code, so wrapped copies compare equal to the sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func newErr(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

var (
	ErrInvalidFormat       = newErr(KindValidation, "invalid_format", "username must be 3-24 chars of [a-z0-9_], not starting or ending with _")
	ErrReserved            = newErr(KindValidation, "reserved", "username is reserved")
	ErrSelfFollow          = newErr(KindValidation, "self_follow", "cannot follow yourself")
	ErrInvalidDecision     = newErr(KindValidation, "invalid_decision", "decision must be approve or reject")
	ErrInvalidVisibility   = newErr(KindValidation, "invalid_visibility", "unsupported visibility value")
	ErrTaken               = newErr(KindConflict, "taken", "username is already taken")
	ErrDuplicateFollowEdge = newErr(KindConflict, "duplicate_follow_edge", "a follow edge already exists for this pair")
	ErrEdgeAlreadyDecided  = newErr(KindConflict, "edge_already_decided", "follow request was already decided")
	ErrNotAuthenticated    = newErr(KindAuthorization, "not_authenticated", "authentication required")
	ErrNotOwner            = newErr(KindAuthorization, "not_owner", "not allowed")
	ErrProfileNotFound     = newErr(KindNotFound, "profile_not_found", "profile not found")
	ErrEdgeNotFound        = newErr(KindNotFound, "edge_not_found", "follow edge not found")
	ErrItemNotFound        = newErr(KindNotFound, "item_not_found", "catalog item not found")
	ErrUsernameNotFound    = newErr(KindNotFound, "username_not_found", "username not found")
)

// KindOf reports the taxonomy kind of err, or 0 for infrastructure errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
