package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/parsecompare"
)

// ShutdownTimeout is the time given for outstanding requests to finish before
// the server is forcibly stopped.
const ShutdownTimeout = 15 * time.Second

// MaxRequestBodySize caps the JSON body of /api/parse.
const MaxRequestBodySize = 1 << 20

// Server serves the comparison API and the static web client.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Addr is the bind address, e.g. ":3000".
	Addr string

	// StaticDir is the directory served at "/". Empty disables static files.
	StaticDir string

	ComparisonService parsecompare.ComparisonService
	Logger            *slog.Logger
}

// NewServer returns a new instance of Server.
func NewServer() *Server {
	return &Server{
		server: &http.Server{ReadHeaderTimeout: 10 * time.Second},
		Logger: slog.New(slog.DiscardHandler),
	}
}

// Open begins listening on Addr and serving requests in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	s.server.Handler = s.Handler()

	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("http server stopped", "err", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Port returns the TCP port the server is listening on, or 0 if not open.
func (s *Server) Port() int {
	if s.ln == nil {
		return 0
	}
	return s.ln.Addr().(*net.TCPAddr).Port
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	return "http://localhost:" + strconv.Itoa(s.Port())
}

// Handler returns the server's routes wrapped in its middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/parse", s.handleParse)
	if s.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.StaticDir)))
	}
	return s.withRequestID(s.withLogging(s.withRecovery(mux)))
}

// parseRequest is the JSON body of POST /api/parse.
type parseRequest struct {
	URL       string `json:"url"`
	UserAgent string `json:"userAgent"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var body parseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBodySize)).Decode(&body); err != nil {
		s.Error(w, r, parsecompare.Errorf(parsecompare.EINVALID, "Invalid request body"))
		return
	}

	s.Logger.Info("parsing url", "url", body.URL, "request_id", RequestID(r.Context()))

	// A disconnecting client does not abort the comparison; the fetch timeout
	// bounds its duration.
	ctx := context.WithoutCancel(r.Context())

	result, err := s.ComparisonService.Compare(ctx, &parsecompare.FetchRequest{
		URL:       body.URL,
		UserAgent: body.UserAgent,
	})
	if err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// errorResponse is the body of a 400 response.
type errorResponse struct {
	Error string `json:"error"`
}

// failureResponse is the body of a 500 response. Details is always present.
type failureResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Error writes err to w: EINVALID errors become 400 responses carrying the
// message, everything else becomes a 500 with the message as details.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := parsecompare.ErrorCode(err), parsecompare.ErrorMessage(err)

	if code == parsecompare.EINVALID {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	s.Logger.Error("parsing error",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestID(r.Context()),
		"err", err,
	)
	writeJSON(w, http.StatusInternalServerError, failureResponse{
		Error:   "Failed to parse URL",
		Details: msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
