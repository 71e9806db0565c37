// internal/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/marketflow-backend/internal/config"
	"github.com/javajoker/marketflow-backend/internal/services"
)

const (
	workspaceContextKey = "workspace"
	sessionIDValue      = "sid"
)

// NewCookieStore builds the signed cookie store that carries the session id.
func NewCookieStore(cfg config.SessionConfig, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.IdleDuration().Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Session resolves the caller's workspace from the session cookie, creating
// a new workspace when none is valid, and refreshes the cookie.
func Session(store sessions.Store, cookieName string, workspaces *services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Request, cookieName)
		if err != nil {
			// A tampered or stale cookie still yields a usable new session
			logrus.WithError(err).Debug("Discarding unreadable session cookie")
		}

		id, _ := session.Values[sessionIDValue].(string)
		ws, _ := workspaces.Resolve(id)

		// Re-issued on every request so the cookie expiry slides with the
		// workspace idle timeout.
		session.Values[sessionIDValue] = ws.ID
		if err := session.Save(c.Request, c.Writer); err != nil {
			logrus.WithError(err).Error("Failed to save session cookie")
		}

		c.Set(workspaceContextKey, ws)
		c.Next()
	}
}

// CurrentWorkspace returns the workspace resolved by Session, or nil.
func CurrentWorkspace(c *gin.Context) *services.Workspace {
	if value, exists := c.Get(workspaceContextKey); exists {
		if ws, ok := value.(*services.Workspace); ok {
			return ws
		}
	}
	return nil
}
