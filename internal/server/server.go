package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"

	"github.com/rs/cors"

	"github.com/soar/virtualinput/internal/hub"
	"github.com/soar/virtualinput/internal/vinput"
)

// StateSource provides the latest registry snapshot.
type StateSource interface {
	CurrentState() vinput.RegistryInfo
}

// Options configures the HTTP side of the server.
type Options struct {
	Addr   string
	Minify bool
	// CORSOrigins may read /api from other pages, such as stream overlays.
	CORSOrigins []string
}

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	actions     hub.Actions
	state       StateSource
	frontendFS  fs.FS
	opts        Options
	httpServer  *http.Server
}

func New(h *hub.Hub, b *hub.Broadcaster, actions hub.Actions, state StateSource, frontendFS fs.FS, opts Options) *Server {
	return &Server{
		hub:         h,
		broadcaster: b,
		actions:     actions,
		state:       state,
		frontendFS:  frontendFS,
		opts:        opts,
	}
}

// Handler builds the HTTP routes.
func (s *Server) Handler() (http.Handler, error) {
	static, err := newAssets(s.frontendFS, s.opts.Minify)
	if err != nil {
		return nil, fmt.Errorf("load frontend: %w", err)
	}

	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.Handle("/ws", newWebSocketHandler(s.hub, s.broadcaster, s.actions))

	api := cors.New(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet},
	})
	mux.Handle("GET /api/state", api.Handler(http.HandlerFunc(s.handleState)))

	// Static files (frontend)
	mux.Handle("/", static)

	return mux, nil
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.state.CurrentState()); err != nil {
		log.Printf("Error writing state: %v", err)
	}
}

func (s *Server) ListenAndServe() error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:    s.opts.Addr,
		Handler: handler,
	}

	log.Printf("HTTP server listening on %s", s.opts.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		log.Println("Shutting down HTTP server...")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// URL returns the address a local browser should open.
func URL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
