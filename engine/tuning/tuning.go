// Package tuning exposes controller tunables over a WebSocket so speeds can be
// adjusted while the simulation runs.
package tuning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-locomotion/common"
	"github.com/Carmen-Shannon/oxy-locomotion/engine/controller"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Path is the WebSocket endpoint served by Handler.
const Path = "/tuning"

// State is the wire form of the tunables. Rotation speed is in degrees per tick.
type State struct {
	WalkSpeed        float32 `json:"walk_speed"`
	RunSpeed         float32 `json:"run_speed"`
	RotationSpeedDeg float32 `json:"rotation_speed_deg"`
}

// Update is a client request. Omitted fields are left unchanged.
type Update struct {
	WalkSpeed        *float32 `json:"walk_speed,omitempty"`
	RunSpeed         *float32 `json:"run_speed,omitempty"`
	RotationSpeedDeg *float32 `json:"rotation_speed_deg,omitempty"`
}

// Reply is sent on connect, after every update and to report rejected updates.
type Reply struct {
	State State  `json:"state"`
	Error string `json:"error,omitempty"`
}

func stateOf(cfg controller.Config) State {
	return State{
		WalkSpeed:        cfg.WalkSpeed,
		RunSpeed:         cfg.RunSpeed,
		RotationSpeedDeg: common.RadToDeg(cfg.RotationSpeed),
	}
}

func (u Update) apply(cfg *controller.Config) {
	if u.WalkSpeed != nil {
		cfg.WalkSpeed = *u.WalkSpeed
	}
	if u.RunSpeed != nil {
		cfg.RunSpeed = *u.RunSpeed
	}
	if u.RotationSpeedDeg != nil {
		cfg.RotationSpeed = common.DegToRad(*u.RotationSpeedDeg)
	}
}

// client serialises writes to one connection; gorilla connections allow a single writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(r Reply) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(r)
}

type Server struct {
	tunables *controller.Tunables
	addr     string
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewServer creates a tuning server over the given tunables.
//
// Parameters:
//   - tunables: the tunables shared with the controllers
//   - options: functional options to configure the server
//
// Returns:
//   - *Server: the server, not yet listening
func NewServer(tunables *controller.Tunables, options ...ServerBuilderOption) *Server {
	s := &Server{
		tunables: tunables,
		addr:     "127.0.0.1:7070",
		logger:   zap.NewNop(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*client]struct{}),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Handler returns the HTTP handler serving Path.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, s.handleWebSocket)
	return mux
}

// Run listens on the configured address and serves until ctx is cancelled, then shuts
// the HTTP server down and closes every open connection.
//
// Parameters:
//   - ctx: controls the server lifetime
//
// Returns:
//   - error: a listen or serve failure; nil after a clean shutdown
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("tuning listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("tuning server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("tuning serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		s.closeClients()
		s.logger.Info("tuning server stopped")
		return err
	})
	return g.Wait()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("tuning upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	defer s.drop(c)

	log := s.logger.With(zap.String("remote", conn.RemoteAddr().String()))
	log.Debug("tuning client connected")

	if err := c.send(Reply{State: stateOf(s.tunables.Get())}); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Debug("tuning client disconnected", zap.Error(err))
			return
		}

		var u Update
		if err := json.Unmarshal(data, &u); err != nil {
			_ = c.send(Reply{State: stateOf(s.tunables.Get()), Error: fmt.Sprintf("decode update: %v", err)})
			continue
		}

		cfg, err := s.tunables.Update(u.apply)
		if err != nil {
			log.Info("tuning update rejected", zap.Error(err))
			_ = c.send(Reply{State: stateOf(cfg), Error: err.Error()})
			continue
		}

		log.Info("tunables updated",
			zap.Float32("walk_speed", cfg.WalkSpeed),
			zap.Float32("run_speed", cfg.RunSpeed),
			zap.Float32("rotation_speed_deg", common.RadToDeg(cfg.RotationSpeed)),
		)
		s.broadcast(Reply{State: stateOf(cfg)})
	}
}

func (s *Server) broadcast(r Reply) {
	s.mu.Lock()
	targets := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		targets = append(targets, c)
	}
	s.mu.Unlock()

	for _, c := range targets {
		if err := c.send(r); err != nil {
			s.logger.Debug("tuning broadcast failed", zap.Error(err))
		}
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	_ = c.conn.Close()
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		_ = c.conn.Close()
	}
}
