package constants

// OAuthErrorCode identifies a failure stage in the OAuth login flow.
type OAuthErrorCode string

const (
	// Provider-reported errors (callback query params)
	OAuthErrorAccessDenied       OAuthErrorCode = "access_denied"
	OAuthErrorInvalidRequest     OAuthErrorCode = "invalid_request"
	OAuthErrorUnauthorizedClient OAuthErrorCode = "unauthorized_client"
	OAuthErrorServerError        OAuthErrorCode = "server_error"

	// Our own callback validation failures
	OAuthErrorMissingCode    OAuthErrorCode = "missing_code"
	OAuthErrorMissingState   OAuthErrorCode = "missing_state"
	OAuthErrorInvalidState   OAuthErrorCode = "invalid_state"
	OAuthErrorExpiredState   OAuthErrorCode = "expired_state"
	OAuthErrorExchangeFailed OAuthErrorCode = "exchange_failed"
	OAuthErrorUserInfoFailed OAuthErrorCode = "userinfo_failed"
)

var oauthErrorMessages = map[OAuthErrorCode]string{
	OAuthErrorAccessDenied:       "You denied the authorization request. Please try again if you wish to continue.",
	OAuthErrorInvalidRequest:     "Invalid OAuth request. Please contact support if this persists.",
	OAuthErrorUnauthorizedClient: "OAuth application is not authorized. Please contact support.",
	OAuthErrorServerError:        "OAuth provider encountered an error. Please try again later.",

	OAuthErrorMissingCode:    "Authorization code is missing. Please try logging in again.",
	OAuthErrorMissingState:   "Security validation failed. Please try logging in again.",
	OAuthErrorInvalidState:   "Invalid security token. This link may have expired.",
	OAuthErrorExpiredState:   "Login session expired. Please try again.",
	OAuthErrorExchangeFailed: "Failed to complete authentication. Please try again.",
	OAuthErrorUserInfoFailed: "Failed to retrieve your profile information. Please try again.",
}

// GetOAuthErrorMessage returns a user-facing message for an OAuth error code.
func GetOAuthErrorMessage(code OAuthErrorCode) string {
	if msg, ok := oauthErrorMessages[code]; ok {
		return msg
	}
	return "An unexpected error occurred during authentication. Please try again."
}

func GetOAuthErrorMessageFromString(code string) string {
	return GetOAuthErrorMessage(OAuthErrorCode(code))
}
