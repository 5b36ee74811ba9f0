package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/wcagdemo/internal/catalog"
	"github.com/muurk/wcagdemo/internal/discovery"
	"github.com/muurk/wcagdemo/internal/logging"
	"github.com/muurk/wcagdemo/internal/version"
)

// ShutdownTimeout bounds how long Serve waits for in-flight requests after
// its context ends.
const ShutdownTimeout = 5 * time.Second

// Config holds the server configuration
type Config struct {
	Addr      string // Listen address, host:port
	Advertise bool   // Register the server over mDNS while it runs
	Instance  string // mDNS instance name
}

// Server serves the case catalog and remote trap sessions over HTTP.
type Server struct {
	cfg     Config
	logger  *zap.Logger
	metrics *metrics
	router  chi.Router

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	catalog *catalog.Catalog

	connMu sync.Mutex
	conns  map[string]*websocket.Conn
}

// New creates a server for cat. A nil logger uses the global "server"
// logger.
func New(cat *catalog.Catalog, cfg Config, logger *zap.Logger) *Server {
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = logging.Named("server")
	}
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: newMetrics(),
		catalog: cat,
		conns:   make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Catalog returns the catalog currently served.
func (s *Server) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// SetCatalog swaps the served catalog. Open trap sessions are unaffected.
func (s *Server) SetCatalog(cat *catalog.Catalog) {
	if cat == nil {
		return
	}
	s.mu.Lock()
	s.catalog = cat
	s.mu.Unlock()
	s.logger.Info("catalog replaced", zap.Int("cases", cat.Len()))
}

// ActiveSessions returns the number of open trap sessions.
func (s *Server) ActiveSessions() int {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	return len(s.conns)
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. When advertising is enabled the mDNS registration runs
// alongside and is withdrawn on shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("version", version.Version),
		zap.Int("cases", s.Catalog().Len()),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		// Hijacked websocket connections are not tracked by http.Server.
		s.closeSessions()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if s.cfg.Advertise {
		inst := discovery.Instance{
			Name:    s.cfg.Instance,
			Port:    listenerPort(ln),
			Version: version.Version,
			Cases:   s.Catalog().Len(),
		}
		g.Go(func() error {
			if err := discovery.Advertise(gctx, inst, s.logger.Named("mdns")); err != nil {
				// The HTTP server stays up without mDNS.
				s.logger.Warn("mDNS advertisement failed", zap.Error(err))
			}
			return nil
		})
	}

	err := g.Wait()
	logging.Sync()
	return err
}

func listenerPort(ln net.Listener) int {
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

func (s *Server) track(id string, conn *websocket.Conn) {
	s.connMu.Lock()
	s.conns[id] = conn
	s.connMu.Unlock()
	s.metrics.sessions.Inc()
}

func (s *Server) untrack(id string) {
	s.connMu.Lock()
	delete(s.conns, id)
	s.connMu.Unlock()
	s.metrics.sessions.Dec()
}

// closeSessions sends a going-away close frame to every open session.
func (s *Server) closeSessions() {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for id, conn := range s.conns {
		s.logger.Debug("closing trap session", zap.String("session", id))
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		_ = conn.Close()
	}
}
