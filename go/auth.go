package shelterserver

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-shelter-server/internal/shared/auth"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "session"

// Authenticator resolves a session token to the user behind it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Viewer, error)
}

// SessionMiddleware attaches the viewer for a valid session token. Requests with
// no token or an unknown one continue anonymously; handlers decide whether to refuse them.
func SessionMiddleware(sessions Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}
		viewer, err := sessions.Authenticate(c.Request.Context(), token)
		if err == nil {
			c.Request = c.Request.WithContext(auth.WithViewer(c.Request.Context(), viewer))
		}
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

func viewer(c *gin.Context) auth.Viewer {
	return auth.FromContext(c.Request.Context())
}
