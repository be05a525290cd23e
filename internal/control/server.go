package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"SolarSystem/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Command is a control panel action sent by a websocket client, e.g.
// {"command":"attach","target":"planet3"} or {"command":"press","key":"m"}.
type Command struct {
	Client  uuid.UUID `json:"-"`
	Command string    `json:"command"`
	Target  string    `json:"target,omitempty"`
	Key     string    `json:"key,omitempty"`
}

// Telemetry is broadcast to every client while the scene runs.
type Telemetry struct {
	Type            string                `json:"type"`
	Time            float64               `json:"time"`
	SunRadius       float32               `json:"sunRadius"`
	Planet2Pipeline string                `json:"planet2Pipeline"`
	Target          string                `json:"target"`
	Bodies          map[string][3]float32 `json:"bodies"`
}

type message struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(v)
}

const writeTimeout = 2 * time.Second

// Server accepts websocket clients on /ws, forwards their commands to the
// frame loop and broadcasts telemetry back.
type Server struct {
	upgrader  websocket.Upgrader
	commands  chan Command
	telemetry chan Telemetry

	clientsMu sync.RWMutex
	clients   map[uuid.UUID]*client
}

// checkOrigin accepts non-browser clients, same-origin pages and pages
// served from the local machine.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	switch host := u.Hostname(); host {
	case "localhost":
		return true
	default:
		ip := net.ParseIP(host)
		return ip != nil && ip.IsLoopback()
	}
}

// NewServer creates a server whose command channel holds up to buffer
// pending commands. Commands arriving while it is full are rejected.
func NewServer(buffer int) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: checkOrigin,
		},
		commands:  make(chan Command, buffer),
		telemetry: make(chan Telemetry, 1),
		clients:   make(map[uuid.UUID]*client),
	}
}

// Commands delivers client commands in arrival order.
func (s *Server) Commands() <-chan Command {
	return s.commands
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Publish queues t for broadcast. Only the latest telemetry is kept, so a
// slow client never stalls the caller.
func (s *Server) Publish(t Telemetry) {
	t.Type = "telemetry"
	for {
		select {
		case s.telemetry <- t:
			return
		default:
		}
		select {
		case <-s.telemetry:
		default:
		}
	}
}

// Run broadcasts published telemetry until ctx is done.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-s.telemetry:
			s.broadcast(t)
		}
	}
}

// ListenAndServe serves on addr and broadcasts telemetry until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	go s.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		s.closeAll()
	}()

	logger.Log.Info("Control panel listening", zap.String("addr", "ws://"+addr+"/ws"))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("control: listen %s: %w", addr, err)
	}
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warn("WebSocket upgrade error", zap.Error(err))
		return
	}
	defer conn.Close()

	id := uuid.New()
	c := &client{conn: conn}
	s.clientsMu.Lock()
	s.clients[id] = c
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, id)
		s.clientsMu.Unlock()
		logger.Log.Info("Control client disconnected", zap.Stringer("client", id))
	}()

	logger.Log.Info("Control client connected", zap.Stringer("client", id), zap.String("remote", r.RemoteAddr))
	if err := c.send(message{Type: "hello", ID: id.String()}); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Log.Debug("WebSocket read error", zap.Stringer("client", id), zap.Error(err))
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil || cmd.Command == "" {
			c.send(message{Type: "error", Error: "invalid command"})
			continue
		}
		cmd.Client = id

		select {
		case s.commands <- cmd:
		default:
			logger.Log.Warn("Control command dropped, queue full", zap.String("command", cmd.Command))
			c.send(message{Type: "error", Error: "busy"})
		}
	}
}

func (s *Server) broadcast(v any) {
	s.clientsMu.RLock()
	var failed []uuid.UUID
	for id, c := range s.clients {
		if err := c.send(v); err != nil {
			logger.Log.Debug("WebSocket write error", zap.Stringer("client", id), zap.Error(err))
			c.conn.Close()
			failed = append(failed, id)
		}
	}
	s.clientsMu.RUnlock()

	if len(failed) > 0 {
		s.clientsMu.Lock()
		for _, id := range failed {
			delete(s.clients, id)
		}
		s.clientsMu.Unlock()
	}
}

func (s *Server) closeAll() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for id, c := range s.clients {
		c.conn.Close()
		delete(s.clients, id)
	}
}
