package server

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/riverwalkmud/samud/internal/antispam"
	"github.com/riverwalkmud/samud/internal/chatfilter"
	"github.com/riverwalkmud/samud/internal/command"
	"github.com/riverwalkmud/samud/internal/config"
	"github.com/riverwalkmud/samud/internal/database"
	"github.com/riverwalkmud/samud/internal/logger"
	"github.com/riverwalkmud/samud/internal/namefilter"
)

// Server accepts connections, runs the auth flow, and keeps the registry of
// live sessions that chat and room broadcasts are delivered through.
type Server struct {
	address          string
	listener         net.Listener
	store            database.Store
	serverConfig     *config.ServerConfig
	sessions         []*Session
	mu               sync.RWMutex
	shutdown         chan struct{}
	shutdownOnce     sync.Once
	StartTime        time.Time
	chatFilter       *chatfilter.ChatFilter
	antispamConfig   antispam.Config
	nameFilter       *namefilter.NameFilter
	connLimiter      *ConnLimiter
	loginRateLimiter *LoginRateLimiter
}

func NewServer(address string, store database.Store, cfg *config.ServerConfig) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		address:          address,
		store:            store,
		serverConfig:     cfg,
		shutdown:         make(chan struct{}),
		StartTime:        time.Now(),
		antispamConfig:   antispam.Config{},
		connLimiter:      NewConnLimiter(cfg.Connections),
		loginRateLimiter: NewLoginRateLimiter(cfg.RateLimit),
	}
}

// SetChatFilter sets the chat filter applied to say and shout messages.
func (s *Server) SetChatFilter(cf *chatfilter.ChatFilter) {
	s.chatFilter = cf
}

// SetAntispamConfig sets the per-session spam throttle configuration.
func (s *Server) SetAntispamConfig(cfg antispam.Config) {
	s.antispamConfig = cfg
}

// SetNameFilter sets the filter applied to signup usernames.
func (s *Server) SetNameFilter(nf *namefilter.NameFilter) {
	s.nameFilter = nf
}

// GetServerConfig returns the server configuration.
func (s *Server) GetServerConfig() *config.ServerConfig {
	return s.serverConfig
}

// Store returns the world store backing the game.
func (s *Server) Store() database.Store {
	return s.store
}

// Addr returns the telnet listener address, or nil before Start has bound
// it. Useful when the server was started on port 0.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) prompt() string {
	if p := s.serverConfig.Game.Prompt; p != "" {
		return p
	}
	return "> "
}

func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	logger.Info("Server listening", "address", s.address)

	for {
		select {
		case <-s.shutdown:
			return nil
		default:
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.shutdown:
					return nil
				default:
					logger.Error("Error accepting connection", "error", err)
					continue
				}
			}

			go s.handleConnection(conn)
		}
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	remoteAddr := conn.RemoteAddr().String()
	ip := extractIP(remoteAddr)

	if s.connLimiter != nil && !s.connLimiter.TryAcquire(ip) {
		logger.Warning("Connection rejected - limit exceeded",
			"remote_addr", remoteAddr,
			"ip", ip)
		conn.Write([]byte("Too many connections. Please try again later.\r\n"))
		conn.Close()
		return
	}

	defer func() {
		if s.connLimiter != nil {
			s.connLimiter.Release(ip)
		}
		conn.Close()
	}()

	s.handleClient(NewTelnetClient(conn))
}

// handleClient is the shared session lifecycle for telnet and WebSocket
// connections: auth, registration, command loop, teardown.
func (s *Server) handleClient(client Client) {
	logger.Info("Client connected", "remote_addr", client.RemoteAddr())

	sess := newSession(s, client)
	if err := sess.runAuth(); err != nil {
		logger.Info("Client left before authenticating", "remote_addr", client.RemoteAddr())
		return
	}

	s.register(sess)
	defer func() {
		s.unregister(sess)
		logger.Info("Client disconnected", "player", sess.Name())
	}()

	sess.runGame()
}

// StartWebSocket starts the WebSocket listener on the given address.
func (s *Server) StartWebSocket(address string) error {
	http.HandleFunc("/ws", s.handleWebSocketUpgrade)

	logger.Info("WebSocket server listening", "address", address)
	return http.ListenAndServe(address, nil)
}

func (s *Server) handleWebSocketUpgrade(w http.ResponseWriter, r *http.Request) {
	clientIP := getRealIP(r)

	if s.connLimiter != nil && !s.connLimiter.TryAcquire(clientIP) {
		logger.Warning("WebSocket connection rejected - limit exceeded",
			"remote_addr", r.RemoteAddr,
			"client_ip", clientIP)
		http.Error(w, "Too many connections. Please try again later.", http.StatusTooManyRequests)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.serverConfig.WebSocket.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("WebSocket connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		if s.connLimiter != nil {
			s.connLimiter.Release(clientIP)
		}
		return
	}

	if max := s.serverConfig.WebSocket.MaxMessageSize; max > 0 {
		wsConn.SetReadLimit(max)
	}

	go func() {
		defer func() {
			if s.connLimiter != nil {
				s.connLimiter.Release(clientIP)
			}
			wsConn.Close()
		}()
		s.handleClient(NewWebSocketClient(wsConn))
	}()
}

// getRealIP extracts the client IP from an HTTP request, honoring
// X-Forwarded-For and X-Real-IP headers set by reverse proxies.
func getRealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			clientIP := strings.TrimSpace(ips[0])
			if clientIP != "" {
				return clientIP
			}
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	return extractIP(r.RemoteAddr)
}

func (s *Server) Shutdown() {
	s.shutdownOnce.Do(func() {
		close(s.shutdown)
		s.mu.Lock()
		if s.listener != nil {
			s.listener.Close()
		}
		s.mu.Unlock()

		if s.loginRateLimiter != nil {
			s.loginRateLimiter.Stop()
		}

		for _, sess := range s.snapshot() {
			sess.client.Close()
		}

		logger.Info("Server shutdown complete")
	})
}

func (s *Server) register(sess *Session) {
	s.mu.Lock()
	s.sessions = append(s.sessions, sess)
	s.mu.Unlock()
}

func (s *Server) unregister(sess *Session) {
	s.mu.Lock()
	for i, candidate := range s.sessions {
		if candidate == sess {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
}

// snapshot copies the session list so broadcast writes happen outside the
// registry lock.
func (s *Server) snapshot() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// BroadcastToRoom sends a message to every session in a room except the
// given one. Returns the number of sessions the message reached.
func (s *Server) BroadcastToRoom(roomID, message string, except command.Session) int {
	notified := 0
	for _, sess := range s.snapshot() {
		if command.Session(sess) == except {
			continue
		}
		if sess.RoomID() == roomID {
			sess.Send(message)
			notified++
		}
	}
	return notified
}

// BroadcastToAll sends a message to every session, including the sender.
func (s *Server) BroadcastToAll(message string) {
	for _, sess := range s.snapshot() {
		sess.Send(message)
	}
}

// OnlineNames lists the usernames of all sessions in connection order.
func (s *Server) OnlineNames() []string {
	sessions := s.snapshot()
	names := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		names = append(names, sess.Name())
	}
	return names
}

// NamesInRoom lists the usernames of sessions in a room, excluding the
// given session.
func (s *Server) NamesInRoom(roomID string, except command.Session) []string {
	var names []string
	for _, sess := range s.snapshot() {
		if command.Session(sess) == except {
			continue
		}
		if sess.RoomID() == roomID {
			names = append(names, sess.Name())
		}
	}
	return names
}

// GetOnlinePlayerCount returns the number of authenticated sessions.
func (s *Server) GetOnlinePlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CheckChat runs a proposed chat message through the spam throttle and the
// word filter. Returns the message to deliver and true, or a rejection
// notice and false.
func (s *Server) CheckChat(sess command.Session, message string) (string, bool) {
	if own, ok := sess.(*Session); ok && own.spam != nil {
		result := own.spam.Check(message)
		if !result.Allowed {
			return result.Reason, false
		}
	}

	if s.chatFilter != nil && s.chatFilter.IsEnabled() {
		result := s.chatFilter.Check(message)
		if result.Violated {
			logger.Warning("Chat message matched filter",
				"player", sess.Name(),
				"words", strings.Join(result.MatchedWords, ","))
			if s.chatFilter.IsBlockMode() {
				return "Your message was not sent.", false
			}
			return result.Filtered, true
		}
	}

	return message, true
}

var _ command.ServerInterface = (*Server)(nil)
