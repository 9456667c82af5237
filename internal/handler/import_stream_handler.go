package handler

import (
	"net/http"
	"strings"

	"github.com/collegeconnect/suggester-backend/internal/config"
	"github.com/collegeconnect/suggester-backend/internal/middleware"
	"github.com/collegeconnect/suggester-backend/internal/model"
	ws "github.com/collegeconnect/suggester-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// ImportStreamHandler streams cutoff import progress to admin clients.
type ImportStreamHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewImportStreamHandler creates a new ImportStreamHandler.
func NewImportStreamHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *ImportStreamHandler {
	return &ImportStreamHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "import_stream_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// ImportProgressStream godoc
// WS /ws/v1/admin/import/stream
// Upgrades to WebSocket and relays import progress events published by
// the import service over Redis Pub/Sub.
func (h *ImportStreamHandler) ImportProgressStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if !middleware.HasPermission(claims, model.PermissionCutoffsImport) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("user_id", claims.UserID).Logger()
	wsLog.Info().Msg("Admin connected to import stream")

	ctx := c.Request.Context()
	sub := h.rdb.Subscribe(ctx, config.CacheKey.ImportProgressChannel())
	defer sub.Close()

	// Reader goroutine: answers pings and detects the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}
			if msg.Action == ws.ActionPing {
				ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			} else {
				ws.WriteError(conn, "unknown action")
			}
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			err := ws.WriteTyped(conn, ws.ProgressResponse{
				Event:    ws.EventProgress,
				Progress: []byte(msg.Payload),
			})
			if err != nil {
				wsLog.Debug().Err(err).Msg("Progress write failed")
				return
			}
		}
	}
}
