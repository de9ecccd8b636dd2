// Package callback hosts the single-use localhost listener that completes
// the browser authentication handshake. The auth service redirects the
// user's browser back to this listener with a token query parameter.
package callback

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/doclane/doclane-cli/internal/core/domain"
	"github.com/doclane/doclane-cli/internal/core/ports/driven"
)

// Ensure Server implements the interface.
var _ driven.AuthListener = (*Server)(nil)

const (
	// DefaultPort is the port the auth service redirects back to.
	DefaultPort = 8008

	// shutdownGrace gives the success response time to flush before the
	// listener is torn down.
	shutdownGrace = 100 * time.Millisecond
)

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Server owns the bound socket and the pending token result.
// It produces at most one result per instance; the consumer receives exactly
// one via WaitForToken. A Server must not be reused across runs.
type Server struct {
	mu         sync.Mutex
	port       int
	tokenChan  chan string
	errChan    chan error
	settleOnce sync.Once
	server     *http.Server
	listener   net.Listener
}

// NewServer creates a callback server. A non-positive port selects the default.
func NewServer(port int) *Server {
	if port <= 0 {
		port = DefaultPort
	}
	return &Server{
		port:      port,
		tokenChan: make(chan string, 1),
		errChan:   make(chan error, 1),
	}
}

// Start binds the listener and begins serving. The bind is synchronous: when
// Start returns nil the socket is held.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleCallback)

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: listen on %s: %v", domain.ErrListenerStart, addr, err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.settle("", err)
		}
	}()

	return nil
}

// handleCallback processes the redirect from the auth service.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	query, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		s.respond(w, http.StatusInternalServerError, "Server error")
		s.settle("", fmt.Errorf("parse callback query: %w", err))
		return
	}

	token := query.Get("token")
	if token == "" {
		// The listener stays up on this path; Stop still releases the
		// socket when the orchestrator gives up.
		s.respond(w, http.StatusBadRequest, "No token received")
		s.settle("", domain.ErrNoToken)
		return
	}

	s.respond(w, http.StatusOK, "Token received")
	s.settle(token, nil)

	// Tear down after the response bytes have flushed.
	go func() {
		time.Sleep(shutdownGrace)
		_ = s.Stop()
	}()
}

// respond writes one of the three JSON callback responses. The open CORS
// header lets the auth service's page read the result.
func (s *Server) respond(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response{
		Success: status == http.StatusOK,
		Message: message,
	})
}

// settle records the first result; later requests are answered but ignored.
func (s *Server) settle(token string, err error) {
	s.settleOnce.Do(func() {
		if err != nil {
			s.errChan <- err
			return
		}
		s.tokenChan <- token
	})
}

// WaitForToken blocks until the handshake settles or the context expires.
func (s *Server) WaitForToken(ctx context.Context) (string, error) {
	select {
	case token := <-s.tokenChan:
		return token, nil
	case err := <-s.errChan:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Stop shuts down the listener. Safe to call multiple times and on a server
// that never started.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Port returns the port the server listens on.
func (s *Server) Port() int {
	return s.port
}

// CallbackURL returns the address the auth service redirects back to.
func (s *Server) CallbackURL() string {
	return fmt.Sprintf("http://localhost:%d/", s.port)
}

// OpenBrowser opens the default browser to the given URL.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
