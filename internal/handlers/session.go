// internal/handlers/session.go
package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/marketflow-backend/internal/i18n"
	"github.com/javajoker/marketflow-backend/internal/models"
	"github.com/javajoker/marketflow-backend/internal/services"
	"github.com/javajoker/marketflow-backend/internal/utils"
)

const (
	eventWriteWait  = 10 * time.Second
	eventPingPeriod = 30 * time.Second
)

type SessionHandler struct {
	upgrader websocket.Upgrader
}

// NewSessionHandler accepts websocket upgrades from the same host or from
// one of allowedOrigins.
func NewSessionHandler(allowedOrigins []string) *SessionHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return &SessionHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := allowed[origin]; ok {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && u.Host == r.Host
			},
		},
	}
}

type UpdateRoleRequest struct {
	Role models.AppRole `json:"role" validate:"required,app_role"`
}

// GET /api/session
func (h *SessionHandler) GetSession(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}
	utils.SuccessResponse(c, ws.Snapshot())
}

// PUT /api/session/role
func (h *SessionHandler) UpdateRole(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ws.SetRole(req.Role); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyRoleInvalid), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySessionRoleUpdated),
		"session": ws.Snapshot(),
	})
}

// POST /api/session/cart
func (h *SessionHandler) AddToCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	count := ws.AddToCart()
	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyCartUpdated),
		"cart_count": count,
	})
}

// GET /api/session/recently-viewed
func (h *SessionHandler) RecentlyViewed(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	items := ws.Recent.Items()
	utils.ListResponse(c, items, len(items))
}

// GET /api/session/events
func (h *SessionHandler) Events(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	// Subscribe before the upgrade so no event published after the
	// handshake is missed.
	events, unsubscribe := ws.Events.Subscribe()
	defer unsubscribe()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).WithField("session_id", ws.ID).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	snapshot := services.Event{Type: services.EventSnapshot, Data: ws.Snapshot(), At: time.Now().UTC()}
	if err := writeEvent(conn, snapshot); err != nil {
		return
	}

	ticker := time.NewTicker(eventPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, open := <-events:
			if !open {
				return
			}
			if err := writeEvent(conn, event); err != nil {
				logrus.WithError(err).WithField("session_id", ws.ID).Debug("Websocket write failed")
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(eventWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

func writeEvent(conn *websocket.Conn, event services.Event) error {
	conn.SetWriteDeadline(time.Now().Add(eventWriteWait))
	return conn.WriteJSON(event)
}
