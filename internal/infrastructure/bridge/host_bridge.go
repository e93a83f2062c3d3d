package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"castdeck/internal/core/domain"
	"castdeck/internal/core/ports"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The bridge binds to loopback; the host process and panel
		// renderer are the only expected peers.
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HostBridge is the websocket seam between the engine and its host
// process. Inbound, the host pushes fire-and-forget lifecycle events
// (mirroring, stream state, dependency downloads) that are dispatched to
// the session service. Outbound, state-change notifications fan out to
// every connected panel client so the UI repaints.
type HostBridge struct {
	sessions ports.SessionService

	mu      sync.RWMutex
	clients map[*websocket.Conn]chan domain.StateChange

	pingInterval time.Duration
	pongTimeout  time.Duration
	writeTimeout time.Duration

	// inboundLimiter bounds how fast the host may push events;
	// notifyLimiter throttles the outbound repaint fanout, which the
	// meter pipeline would otherwise drive at frame rate.
	inboundLimiter *rate.Limiter
	notifyLimiter  *rate.Limiter

	logger *zap.SugaredLogger
}

type Options struct {
	PingInterval    time.Duration
	PongTimeout     time.Duration
	EventsPerSecond float64
	EventBurst      int
	NotifyPerSecond float64
}

func NewHostBridge(opts Options, logger *zap.SugaredLogger) *HostBridge {
	if opts.PingInterval <= 0 {
		opts.PingInterval = 30 * time.Second
	}
	if opts.PongTimeout <= 0 {
		opts.PongTimeout = 60 * time.Second
	}
	if opts.EventsPerSecond <= 0 {
		opts.EventsPerSecond = 100
	}
	if opts.EventBurst <= 0 {
		opts.EventBurst = 200
	}
	if opts.NotifyPerSecond <= 0 {
		opts.NotifyPerSecond = 30
	}
	return &HostBridge{
		clients:        make(map[*websocket.Conn]chan domain.StateChange),
		pingInterval:   opts.PingInterval,
		pongTimeout:    opts.PongTimeout,
		writeTimeout:   10 * time.Second,
		inboundLimiter: rate.NewLimiter(rate.Limit(opts.EventsPerSecond), opts.EventBurst),
		notifyLimiter:  rate.NewLimiter(rate.Limit(opts.NotifyPerSecond), 1),
		logger:         logger,
	}
}

// SetSessionService wires the inbound event sink. The bridge is
// constructed before the services so it can serve as the store's
// notifier; events arriving before this is called are dropped.
func (b *HostBridge) SetSessionService(s ports.SessionService) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions = s
}

// Notify implements ports.Notifier. Drops are acceptable: a panel that
// misses one repaint hint catches up on the next.
func (b *HostBridge) Notify(change domain.StateChange) {
	if !b.notifyLimiter.Allow() {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.clients {
		select {
		case ch <- change:
		default:
		}
	}
}

// HandleWebSocket serves one bridge connection. The same endpoint carries
// inbound host events and outbound panel notifications.
func (b *HostBridge) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Errorw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	out := make(chan domain.StateChange, 64)
	b.mu.Lock()
	b.clients[conn] = out
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		delete(b.clients, conn)
		b.mu.Unlock()
	}()

	conn.SetReadDeadline(time.Now().Add(b.pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(b.pongTimeout))
	})

	done := make(chan struct{})
	go b.readLoop(conn, done)

	pingTicker := time.NewTicker(b.pingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-done:
			return
		case change := <-out:
			conn.SetWriteDeadline(time.Now().Add(b.writeTimeout))
			if err := conn.WriteJSON(change); err != nil {
				b.logger.Debugw("notification write failed", "error", err)
				return
			}
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(b.writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (b *HostBridge) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				b.logger.Debugw("bridge connection closed", "error", err)
			}
			return
		}
		if !b.inboundLimiter.Allow() {
			b.logger.Warnw("host event rate limit exceeded, dropping event")
			continue
		}

		var ev domain.HostEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			b.logger.Warnw("malformed host event", "error", err)
			continue
		}
		b.mu.RLock()
		sink := b.sessions
		b.mu.RUnlock()
		if sink == nil {
			continue
		}
		sink.HandleHostEvent(context.Background(), ev)
	}
}

// CloseAll disconnects every client, used on shutdown.
func (b *HostBridge) CloseAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for conn := range b.clients {
		conn.Close()
		delete(b.clients, conn)
	}
}
