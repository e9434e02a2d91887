// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess      = "success"
	KeyError        = "error"
	KeyAccessDenied = "access_denied"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthPasswordChanged    = "auth.password_changed"

	// User Management
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"
	KeyUserPicUpdated     = "user.profile_pic_updated"
	KeyUserDeleted        = "user.deleted"

	// Books
	KeyBookCreated     = "book.created"
	KeyBookUpdated     = "book.updated"
	KeyBookDeleted     = "book.deleted"
	KeyBookNotFound    = "book.not_found"
	KeyBookUnavailable = "book.unavailable"
	KeyBookNotYours    = "book.not_yours"

	// Trades
	KeyTradeInitiated      = "trade.initiated"
	KeyTradeResponded      = "trade.responded"
	KeyTradeCountered      = "trade.countered"
	KeyTradeCancelled      = "trade.cancelled"
	KeyTradeAwaitingParty  = "trade.awaiting_counterparty"
	KeyTradeCompleted      = "trade.completed"
	KeyTradeNotFound       = "trade.not_found"
	KeyTradeUnauthorized   = "trade.unauthorized"
	KeyTradeInvalidStatus  = "trade.invalid_status"
	KeyTradeInvalidBook    = "trade.invalid_proposed_book"
	KeyTradeNotTransitable = "trade.invalid_transition"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
)
