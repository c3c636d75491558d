package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/istadem2077/turanmath-backend/internal/config"
	"github.com/istadem2077/turanmath-backend/internal/middleware"
	"github.com/istadem2077/turanmath-backend/internal/response"
	"github.com/istadem2077/turanmath-backend/internal/service"
	"github.com/istadem2077/turanmath-backend/internal/websocket"
)

const monitorPingInterval = 30 * time.Second

// MonitorHandler streams live submission completions of a classroom to the
// owning teacher over a WebSocket connection.
type MonitorHandler struct {
	rdb              *redis.Client
	classroomService *service.ClassroomService
	log              zerolog.Logger
	upgrader         gorillaws.Upgrader
}

// NewMonitorHandler creates a new MonitorHandler. allowedOrigins empty
// means all origins are accepted (dev default).
func NewMonitorHandler(
	rdb *redis.Client,
	classroomService *service.ClassroomService,
	log zerolog.Logger,
	allowedOrigins []string,
) *MonitorHandler {
	return &MonitorHandler{
		rdb:              rdb,
		classroomService: classroomService,
		log:              log.With().Str("component", "monitor_handler").Logger(),
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}
				return false
			},
		},
	}
}

// StreamClassroomMonitor godoc
// GET /ws/v1/teacher/classrooms/:classroom_id/monitor?token=...
// Subscribes to the classroom monitor channel and forwards each published
// submission-completed event to the connected teacher.
func (h *MonitorHandler) StreamClassroomMonitor(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	classroomID, err := uuid.Parse(c.Param("classroom_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.classroomService.VerifyOwner(c.Request.Context(), classroomID, claims.TeacherID); err != nil {
		failClassroomError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	channel := config.CacheKey.ClassroomMonitorChannel(classroomID.String())

	sub := h.rdb.Subscribe(ctx, channel)
	defer sub.Close()

	// Single-writer: the read loop never writes, it forwards client pings
	// through a channel so all frames leave from the select below.
	done := make(chan struct{})
	clientPings := make(chan struct{}, 1)
	go func() {
		defer close(done)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if string(msg) == "ping" {
				select {
				case clientPings <- struct{}{}:
				default:
				}
			}
		}
	}()

	ping := time.NewTicker(monitorPingInterval)
	defer ping.Stop()

	events := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(gorillaws.PingMessage, nil); err != nil {
				return
			}
		case <-clientPings:
			if err := websocket.WriteTyped(conn, websocket.PongResponse{Event: websocket.EventPong}); err != nil {
				return
			}
		case msg, ok := <-events:
			if !ok {
				_ = websocket.WriteError(conn, "monitor stream closed")
				return
			}
			event := websocket.SubmissionEvent{
				Event:   websocket.EventSubmission,
				Payload: []byte(msg.Payload),
			}
			if err := websocket.WriteTyped(conn, event); err != nil {
				h.log.Debug().Err(err).Msg("Monitor write failed, closing stream")
				return
			}
		}
	}
}
