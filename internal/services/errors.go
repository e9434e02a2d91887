// internal/services/errors.go
package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to
// stable API error codes with errors.Is; anything else is a 500.
var (
	ErrTradeNotFound        = errors.New("trade not found")
	ErrBookNotFound         = errors.New("book not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrUnauthorized         = errors.New("not a permitted party for this operation")
	ErrInvalidOwnership     = errors.New("book ownership precondition not satisfied")
	ErrInvalidStatus        = errors.New("invalid trade status")
	ErrInvalidProposal      = errors.New("invalid proposed book")
	ErrInvalidTransition    = errors.New("transition not reachable from current state")
	ErrAwaitingCounterparty = errors.New("both parties must agree to complete the trade")
	ErrBookUnavailable      = errors.New("book is not available for trading")
	ErrEmailTaken           = errors.New("user with this email already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrStorageFailure       = errors.New("storage failure")
)
