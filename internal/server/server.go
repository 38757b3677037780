package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/adminui/internal/models"
	"github.com/desertthunder/adminui/internal/services"
	"github.com/desertthunder/adminui/internal/shared"
	"golang.org/x/time/rate"
)

//go:embed sample/members.json
var sampleRoster []byte

// SampleMembers returns the embedded roster.
func SampleMembers() []models.Member {
	members, err := services.DecodeMembers(sampleRoster)
	if err != nil {
		panic(fmt.Sprintf("embedded roster is invalid: %v", err))
	}
	return members
}

// MembersHandler serves a fixed roster as JSON.
type MembersHandler struct {
	payload []byte
}

// NewMembersHandler encodes members once; a nil slice serves the embedded roster.
func NewMembersHandler(members []models.Member) (*MembersHandler, error) {
	if members == nil {
		return &MembersHandler{payload: sampleRoster}, nil
	}

	payload, err := json.Marshal(members)
	if err != nil {
		return nil, fmt.Errorf("failed to encode roster: %w", err)
	}
	return &MembersHandler{payload: payload}, nil
}

func (h *MembersHandler) Routes() []string {
	return []string{"GET /members.json", "GET /api/members"}
}

func (h *MembersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(h.payload)
}

// Options configures a [Server].
type Options struct {
	Config  shared.ServerConfig
	Members []models.Member // nil serves the embedded roster
	Logger  *log.Logger
}

// Server is the roster fixture server.
type Server struct {
	addr    string
	router  *BasicRouter
	logger  *log.Logger
	members int
}

// New builds the router with logging and, when configured, per-client rate limiting.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}

	members := opts.Members
	if members == nil {
		members = SampleMembers()
	}
	handler, err := NewMembersHandler(opts.Members)
	if err != nil {
		return nil, err
	}

	router := NewBasicRouter()
	router.Use(Logging(opts.Logger))
	if opts.Config.RateLimit > 0 {
		burst := max(opts.Config.Burst, 1)
		router.Use(RateLimit(NewClientLimiter(rate.Limit(opts.Config.RateLimit), burst)))
	}

	s := &Server{
		addr:    opts.Config.Addr(),
		router:  router,
		logger:  opts.Logger,
		members: len(members),
	}

	router.Handler(handler)
	router.HandleFunc("GET /health", s.health)
	return s, nil
}

// Handler exposes the routed handler for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"status": "ok", "members": s.members})
}

// ListenAndServe serves on the configured address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving members", "addr", ln.Addr().String(), "members", s.members)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
