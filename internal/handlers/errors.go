// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookswap/bookswap-api/internal/i18n"
	"github.com/bookswap/bookswap-api/internal/services"
	"github.com/bookswap/bookswap-api/internal/utils"
)

// serviceError translates service-layer sentinel errors into stable API
// error codes. Unrecognized errors surface as 500s.
func serviceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrTradeNotFound):
		utils.NotFoundResponse(c, "trade")
	case errors.Is(err, services.ErrBookNotFound):
		utils.NotFoundResponse(c, "book")
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, "user")
	case errors.Is(err, services.ErrUnauthorized):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyTradeUnauthorized))
	case errors.Is(err, services.ErrInvalidOwnership):
		utils.BadRequestResponse(c, "INVALID_OWNERSHIP", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidStatus):
		utils.BadRequestResponse(c, "INVALID_STATUS", i18n.T(lang, i18n.KeyTradeInvalidStatus), nil)
	case errors.Is(err, services.ErrInvalidProposal):
		utils.BadRequestResponse(c, "INVALID_PROPOSAL", i18n.T(lang, i18n.KeyTradeInvalidBook), nil)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.BadRequestResponse(c, "INVALID_TRANSITION", i18n.T(lang, i18n.KeyTradeNotTransitable), nil)
	case errors.Is(err, services.ErrAwaitingCounterparty):
		utils.BadRequestResponse(c, "AWAITING_COUNTERPARTY", i18n.T(lang, i18n.KeyTradeAwaitingParty), nil)
	case errors.Is(err, services.ErrBookUnavailable):
		utils.BadRequestResponse(c, "BOOK_UNAVAILABLE", i18n.T(lang, i18n.KeyBookUnavailable), nil)
	case errors.Is(err, services.ErrEmailTaken):
		utils.BadRequestResponse(c, "USER_EXISTS", i18n.T(lang, i18n.KeyAuthUserExists), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", i18n.T(lang, i18n.KeyAuthInvalidCredentials), nil)
	case errors.Is(err, services.ErrStorageFailure):
		utils.InternalErrorResponse(c, "")
	default:
		utils.BadRequestResponse(c, "", err.Error(), nil)
	}
}

// actingUserID resolves the authenticated caller set by the auth
// middleware. Returns false after writing the 401 response.
func actingUserID(c *gin.Context) (string, bool) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return "", false
	}
	return userID, true
}
