package dashboard

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/trip-dashboard/pkg/logger"
	ws "github.com/richxcame/trip-dashboard/pkg/websocket"
	"go.uber.org/zap"
)

// StreamStatus upgrades to a WebSocket and pushes the current status and
// every transition after it. The stream ends with the loaded or failed
// status.
func (h *Handler) StreamStatus(c *gin.Context) {
	controller, ok := h.session(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithContext(c.Request.Context()).Warn("status stream upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := logger.WithContext(c.Request.Context()).With(zap.String("session_id", c.Param("id")))

	// Subscribe before reading the current status so no transition is lost.
	updates, unsubscribe := controller.Subscribe()
	defer unsubscribe()

	current := controller.Status()
	if err := ws.WriteJSON(conn, current); err != nil {
		log.Debug("status stream write failed", zap.Error(err))
		return
	}
	if current.State.Terminal() {
		_ = ws.CloseNormal(conn, string(current.State))
		return
	}

	err = ws.StreamJSON(c.Request.Context(), conn, updates)
	switch {
	case err == nil:
		final := controller.Status()
		if err := ws.WriteJSON(conn, final); err != nil {
			log.Debug("status stream write failed", zap.Error(err))
			return
		}
		_ = ws.CloseNormal(conn, string(final.State))
	case errors.Is(err, ws.ErrPeerGone):
		log.Debug("status stream client left")
	default:
		log.Debug("status stream ended", zap.Error(err))
	}
}
