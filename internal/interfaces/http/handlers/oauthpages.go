package handlers

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reque-io/reque/internal/application/user/usecases"
	"github.com/reque-io/reque/internal/shared/constants"
)

// detectDeviceType detects device type from User-Agent
func detectDeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "mobile") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone") {
		return "mobile"
	}
	if strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad") {
		return "tablet"
	}
	return "web"
}

// oauthErrorMessageFor maps callback usecase failures to user-facing text.
func oauthErrorMessageFor(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "invalid or expired state"):
		return constants.GetOAuthErrorMessage(constants.OAuthErrorInvalidState)
	case strings.Contains(msg, "exchange"):
		return constants.GetOAuthErrorMessage(constants.OAuthErrorExchangeFailed)
	case strings.Contains(msg, "user info"):
		return constants.GetOAuthErrorMessage(constants.OAuthErrorUserInfoFailed)
	default:
		return constants.GetOAuthErrorMessage("")
	}
}

// getAllowedOriginsJS generates a JavaScript array literal of allowed origins.
// Never returns '*'; without explicit origins the postMessage is skipped.
func (h *AuthHandler) getAllowedOriginsJS() string {
	if len(h.allowedOrigins) == 0 {
		h.logger.Errorw("allowed_origins not configured, OAuth popup cannot notify its opener")
		return ""
	}

	quoted := make([]string, len(h.allowedOrigins))
	for i, origin := range h.allowedOrigins {
		quoted[i] = fmt.Sprintf("'%s'", origin)
	}
	return strings.Join(quoted, ", ")
}

const oauthPageStyle = `
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex; justify-content: center; align-items: center;
            min-height: 100vh; background: #fafafa; color: #111;
        }
        @media (prefers-color-scheme: dark) {
            body { background: #0a0a0a; color: #fafafa; }
            .card { background: #18181b; border-color: #27272a; }
            .hint { color: #a1a1aa; }
        }
        .card {
            text-align: center; padding: 48px 40px; background: #fff;
            border: 1px solid #e4e4e7; border-radius: 16px;
            max-width: 380px; width: 90%;
        }
        h1 { font-size: 20px; font-weight: 600; margin-bottom: 8px; }
        .hint { font-size: 14px; color: #71717a; line-height: 1.5; margin-bottom: 16px; }
        .close-btn {
            height: 40px; padding: 0 20px; font-size: 14px; font-weight: 500;
            border-radius: 8px; border: 1px solid #e4e4e7; background: inherit;
            color: inherit; cursor: pointer;
        }
`

// renderOAuthSuccess renders the popup success page. Tokens are already set
// as HttpOnly cookies before this page renders; the page notifies the opener
// via postMessage (best-effort) and then tries to close itself.
func (h *AuthHandler) renderOAuthSuccess(c *gin.Context, result *usecases.OAuthCallbackResult) {
	userJSON, _ := json.Marshal(result.User)

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Login Successful</title>
    <style>%s</style>
</head>
<body>
    <div class="card">
        <h1>Login Successful</h1>
        <p class="hint" id="auto-hint">This window will close automatically.</p>
        <button class="close-btn" id="fallback" style="display:none" onclick="window.close()">Close Window</button>
    </div>
    <script>
        if (window.opener) {
            var allowedOrigins = [%s];
            allowedOrigins.forEach(function(origin) {
                try {
                    window.opener.postMessage({ type: 'oauth_success', user: %s }, origin);
                } catch (e) {}
            });
        }
        setTimeout(function() { try { window.close(); } catch (e) {} }, 1500);
        setTimeout(function() {
            if (!window.closed) {
                document.getElementById('auto-hint').style.display = 'none';
                document.getElementById('fallback').style.display = 'inline-flex';
            }
        }, 3000);
    </script>
</body>
</html>`, oauthPageStyle, h.getAllowedOriginsJS(), string(userJSON))

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, page)
}

// renderOAuthError renders the popup failure page with a manual close button.
func (h *AuthHandler) renderOAuthError(c *gin.Context, errorMsg string) {
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Login Failed</title>
    <style>%s</style>
</head>
<body>
    <div class="card">
        <h1>Login Failed</h1>
        <p class="hint">%s</p>
        <button class="close-btn" onclick="window.close()">Close Window</button>
    </div>
    <script>
        if (window.opener) {
            var allowedOrigins = [%s];
            allowedOrigins.forEach(function(origin) {
                try {
                    window.opener.postMessage({ type: 'oauth_error' }, origin);
                } catch (e) {}
            });
        }
    </script>
</body>
</html>`, oauthPageStyle, html.EscapeString(errorMsg), h.getAllowedOriginsJS())

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusBadRequest, page)
}
