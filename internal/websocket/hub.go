package websocket

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mikra-backend/internal/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans vocab-set activation events out to connected study clients.
// Events arrive on a single Redis channel; one shared subscription runs while
// at least one client is connected.
type Hub struct {
	mu          sync.RWMutex
	connections []*websocket.Conn
	redisClient *redis.Client
	auth        *middleware.TokenAuth
	channel     string
	logger      *zap.Logger
	cancel      context.CancelFunc
}

func NewHub(redisClient *redis.Client, auth *middleware.TokenAuth, channel string, logger *zap.Logger) *Hub {
	return &Hub{
		redisClient: redisClient,
		auth:        auth,
		channel:     channel,
		logger:      logger,
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Authenticate via token query param
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.auth.Resolve(tokenStr)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.register(conn)
	h.logger.Info("websocket connected", zap.String("user_id", user.ID))

	// Keep connection alive and handle disconnect
	go func() {
		defer h.unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections = append(h.connections, conn)

	// First client starts the shared subscription.
	if len(h.connections) == 1 && h.redisClient != nil {
		ctx, cancel := context.WithCancel(context.Background())
		h.cancel = cancel
		go h.subscribe(ctx)
	}
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()

	for i, c := range h.connections {
		if c == conn {
			h.connections = append(h.connections[:i], h.connections[i+1:]...)
			break
		}
	}

	if len(h.connections) == 0 && h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

func (h *Hub) subscribe(ctx context.Context) {
	pubsub := h.redisClient.Subscribe(ctx, h.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast([]byte(msg.Payload))
		}
	}
}

func (h *Hub) broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections {
		conn.WriteMessage(websocket.TextMessage, data)
	}
}
