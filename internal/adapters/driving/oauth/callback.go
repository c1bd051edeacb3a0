// Package oauth runs the local half of the Google installed-app
// authorization flow: a loopback HTTP server that receives the redirect
// with the authorization code, and a helper that drives the full
// authorize-exchange sequence.
package oauth

import (
	"context"
	"fmt"
	"html"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// CallbackServer handles the OAuth redirect callback.
// It starts a local HTTP server to receive the authorization code.
type CallbackServer struct {
	mu            sync.Mutex
	port          int
	expectedState string
	codeChan      chan string
	errChan       chan error
	server        *http.Server
	listener      net.Listener
}

// NewCallbackServer creates a new OAuth callback server.
// The expectedState is used to validate the callback matches the request.
func NewCallbackServer(port int, expectedState string) *CallbackServer {
	return &CallbackServer{
		port:          port,
		expectedState: expectedState,
		codeChan:      make(chan string, 1),
		errChan:       make(chan error, 1),
	}
}

// Start starts the callback server on the configured port.
// If port is 0, a random available port will be chosen.
func (s *CallbackServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", s.handleCallback)

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	// Record the actual port (matters when port was 0)
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case s.errChan <- err:
			default:
			}
		}
	}()

	return nil
}

// handleCallback processes the OAuth callback request.
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		errDesc := r.URL.Query().Get("error_description")
		s.errChan <- fmt.Errorf("oauth error: %s - %s", errParam, errDesc)
		fmt.Fprint(w, resultHTML("Authorization failed", html.EscapeString(errDesc)))
		return
	}

	if state := r.URL.Query().Get("state"); state != s.expectedState {
		s.errChan <- fmt.Errorf("state mismatch: expected %s, got %s", s.expectedState, state)
		fmt.Fprint(w, resultHTML("Authorization failed", "invalid state parameter"))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		s.errChan <- fmt.Errorf("no authorization code received")
		fmt.Fprint(w, resultHTML("Authorization failed", "no code received"))
		return
	}

	select {
	case s.codeChan <- code:
	default:
	}

	fmt.Fprint(w, resultHTML("Authorization successful",
		"You can close this window and return to the terminal."))
}

// WaitForCode blocks until the authorization code is received or timeout.
func (s *CallbackServer) WaitForCode(timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	select {
	case code := <-s.codeChan:
		return code, nil
	case err := <-s.errChan:
		return "", err
	case <-ctx.Done():
		return "", fmt.Errorf("timeout waiting for authorization callback")
	}
}

// Stop shuts down the callback server.
func (s *CallbackServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Port returns the port the server is listening on.
func (s *CallbackServer) Port() int {
	return s.port
}

// RedirectURI returns the redirect URI for this callback server.
func (s *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://localhost:%d/callback", s.port)
}

func resultHTML(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>instapaper-gdocs</title>
    <style>
        body { font-family: sans-serif; margin: 80px auto; max-width: 480px; text-align: center; }
        h1 { font-size: 22px; }
        p { color: #555; }
    </style>
</head>
<body>
    <h1>%s</h1>
    <p>%s</p>
</body>
</html>`, title, message)
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
