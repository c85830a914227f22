// Package remote exposes the timeline over HTTP: a JSON snapshot at
// /state and a websocket at /ws that streams state updates and accepts
// playback commands.
//
// The server never touches the timeline directly. The host publishes
// snapshots and receives commands through a Dispatcher, so the timeline
// keeps a single writer.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/papapumpkin/cutline/internal/zoom"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

// ErrUnknownType is reported to clients that send an unrecognized message.
var ErrUnknownType = errors.New("unknown message type")

type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type handlerFunc func(payload json.RawMessage) (Command, error)

type client struct {
	conn *websocket.Conn
	send chan Output
}

// Server serves /state and /ws.
type Server struct {
	dispatch Dispatcher
	logger   *slog.Logger
	upgrader websocket.Upgrader
	validate *validator.Validate
	routes   map[string]handlerFunc

	mu      sync.Mutex
	latest  State
	clients map[*client]struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a server forwarding commands to d.
func NewServer(d Dispatcher, opts ...Option) *Server {
	s := &Server{
		dispatch: d,
		logger:   slog.New(slog.DiscardHandler),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate: validator.New(),
		clients:  make(map[*client]struct{}),
		latest:   State{Items: []Item{}},
	}
	for _, o := range opts {
		o(s)
	}
	s.routes = map[string]handlerFunc{
		TypeSetPlay: s.handleSetPlay,
		TypeSetZoom: s.handleSetZoom,
		TypeSeek:    s.handleSeek,
	}
	return s
}

// Mux returns the HTTP handler.
func (s *Server) Mux() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/state", s.getState)
	r.HandleFunc("/ws", s.serveWS)

	return r
}

// Publish records st as the latest state and broadcasts it to every
// connected client. Slow clients miss updates rather than block the caller.
func (s *Server) Publish(st State) {
	out := Output{Type: TypeStateUpdated, Payload: st}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = st
	for c := range s.clients {
		select {
		case c.send <- out:
		default:
			s.logger.Debug("dropping update for slow client", "remote_addr", c.conn.RemoteAddr().String())
		}
	}
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("remote: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		s.closeClients()
	}()

	s.logger.Info("remote server listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("remote: serve: %w", err)
	}
	return nil
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st := s.latest
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		s.logger.WarnContext(r.Context(), "failed to write state", "error", err)
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan Output, sendBuffer)}
	s.mu.Lock()
	c.send <- Output{Type: TypeStateUpdated, Payload: s.latest}
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	done := make(chan struct{})
	go s.writeLoop(c, done)
	s.readLoop(r.Context(), c)

	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	close(done)
}

func (s *Server) readLoop(ctx context.Context, c *client) {
	for {
		var msg message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.DebugContext(ctx, "websocket read ended", "error", err)
			}
			return
		}

		handler, ok := s.routes[msg.Type]
		if !ok {
			s.reply(c, fmt.Errorf("%w: %q", ErrUnknownType, msg.Type))
			continue
		}
		cmd, err := handler(msg.Payload)
		if err != nil {
			s.reply(c, err)
			continue
		}
		s.logger.InfoContext(ctx, "remote command", "type", cmd.Type)
		s.dispatch.Dispatch(cmd)
	}
}

func (s *Server) writeLoop(c *client, done <-chan struct{}) {
	defer c.conn.Close()
	for {
		select {
		case out := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(out); err != nil {
				s.logger.Debug("websocket write failed", "error", err)
				return
			}
		case <-done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

func (s *Server) reply(c *client, err error) {
	select {
	case c.send <- Output{Type: TypeError, Payload: map[string]string{"error": err.Error()}}:
	default:
	}
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		_ = c.conn.Close()
	}
}

func (s *Server) decode(payload json.RawMessage, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

func (s *Server) handleSetPlay(payload json.RawMessage) (Command, error) {
	var in SetPlayInput
	if err := s.decode(payload, &in); err != nil {
		return Command{}, err
	}
	return Command{Type: TypeSetPlay, Play: *in.Play}, nil
}

func (s *Server) handleSetZoom(payload json.RawMessage) (Command, error) {
	var in SetZoomInput
	if err := s.decode(payload, &in); err != nil {
		return Command{}, err
	}
	return Command{Type: TypeSetZoom, Zoom: zoom.Level(in.Zoom)}, nil
}

func (s *Server) handleSeek(payload json.RawMessage) (Command, error) {
	var in SeekInput
	if err := s.decode(payload, &in); err != nil {
		return Command{}, err
	}
	return Command{Type: TypeSeek, SeekMs: *in.Ms}, nil
}
