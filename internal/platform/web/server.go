// Package web serves the runner to browsers: an embedded canvas client, a
// websocket that streams one simulation per connection, score JSON and a
// QR code for sharing the play link.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/registry"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

const timeout = 10 * time.Second

//go:embed static/index.html
var indexHTML []byte

//go:embed static/app.js
var appJS []byte

// Config holds configuration for the web server.
type Config struct {
	Bind       string
	Port       int
	TickRate   int
	ConfigPath string
	Difficulty config.DifficultyPreset
	Version    string
	// DefaultVariant is where "/" redirects.
	DefaultVariant string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Bind:           "0.0.0.0",
		Port:           8080,
		TickRate:       60,
		DefaultVariant: "classic",
		Version:        "dev",
	}
}

// Server is the HTTP front end. Each websocket connection gets its own
// simulation; the store is shared.
type Server struct {
	cfg      Config
	store    *storage.Store
	logger   *log.Logger
	router   *httprouter.Router
	upgrader websocket.Upgrader
}

// NewServer wires the routes. store may be nil, which disables history and
// keeps high scores in memory per connection.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "runner-web",
		})
	}

	s := &Server{
		cfg:    cfg,
		store:  store,
		logger: logger,
		router: httprouter.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		s.logger.Error("panic serving request", "path", r.URL.Path, "panic", v)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}

	s.router.GET("/", s.redirectDefault())
	s.router.GET("/app.js", serveStatic("application/javascript; charset=utf-8", appJS))
	s.router.GET("/healthz", s.serveHealthCheck())
	s.router.GET("/version", s.serveVersion())
	s.router.GET("/variants", s.serveVariants())
	s.router.GET("/scores/:variant", s.serveScores())
	s.router.GET("/play/:variant", s.servePage())
	s.router.GET("/play/:variant/ws", s.serveWS())
	s.router.GET("/play/:variant/qr", s.serveQR())

	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(s.cfg.Bind, strconv.Itoa(s.cfg.Port)),
		Handler:           s.router,
		IdleTimeout:       10 * time.Minute,
		ReadHeaderTimeout: timeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "url", "http://"+srv.Addr+"/")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func securityHeaders(w http.ResponseWriter) {
	w.Header().Set("Cross-Origin-Resource-Policy", "same-site")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
}

func serveStatic(contentType string, body []byte) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		securityHeaders(w)
		_, _ = w.Write(body)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	securityHeaders(w)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// knownVariant writes a 404 and returns false for unregistered variants.
func (s *Server) knownVariant(w http.ResponseWriter, variant string) bool {
	if registry.Exists(variant) {
		return true
	}
	s.writeJSON(w, http.StatusNotFound, map[string]string{
		"error": fmt.Sprintf("unknown variant %q", variant),
	})
	return false
}

func (s *Server) redirectDefault() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		http.Redirect(w, r, "/play/"+s.cfg.DefaultVariant, http.StatusTemporaryRedirect)
	}
}

func (s *Server) servePage() httprouter.Handle {
	page := serveStatic("text/html; charset=utf-8", indexHTML)
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if !s.knownVariant(w, ps.ByName("variant")) {
			return
		}
		page(w, r, ps)
	}
}

func (s *Server) serveHealthCheck() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(w)
		_, _ = w.Write([]byte("ok\n"))
	}
}

func (s *Server) serveVersion() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(w)
		_, _ = w.Write([]byte("dino-runner " + s.cfg.Version + "\n"))
	}
}

// VariantSummary is one entry of GET /variants.
type VariantSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Record int    `json:"record"`
}

func (s *Server) serveVariants() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		list := registry.List()
		out := make([]VariantSummary, 0, len(list))
		for _, v := range list {
			sum := VariantSummary{ID: v.ID, Title: v.Title}
			if s.store != nil {
				rec, err := s.store.Record(v.ID)
				if err != nil {
					s.logger.Error("read record", "variant", v.ID, "err", err)
				}
				sum.Record = rec
			}
			out = append(out, sum)
		}
		s.writeJSON(w, http.StatusOK, out)
	}
}

// ScoresResponse is the body of GET /scores/:variant.
type ScoresResponse struct {
	Variant string       `json:"variant"`
	Record  int          `json:"record"`
	Top     []ScoreEntry `json:"top"`
}

// ScoreEntry is one finished session.
type ScoreEntry struct {
	Score     int       `json:"score"`
	Ticks     int       `json:"ticks"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) serveScores() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		variant := ps.ByName("variant")
		if !s.knownVariant(w, variant) {
			return
		}

		resp := ScoresResponse{Variant: variant, Top: []ScoreEntry{}}
		if s.store != nil {
			limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			top, err := s.store.TopScores(variant, limit)
			if err != nil {
				s.logger.Error("top scores", "variant", variant, "err", err)
				s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
				return
			}
			for _, e := range top {
				resp.Top = append(resp.Top, ScoreEntry{Score: e.Score, Ticks: e.Ticks, CreatedAt: e.CreatedAt})
			}
			if resp.Record, err = s.store.Record(variant); err != nil {
				s.logger.Error("read record", "variant", variant, "err", err)
			}
		}
		s.writeJSON(w, http.StatusOK, resp)
	}
}

// serveWS upgrades the connection and runs one play session on it.
func (s *Server) serveWS() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		variant := ps.ByName("variant")
		if !s.knownVariant(w, variant) {
			return
		}

		ropts := registry.Options{
			ConfigPath: s.cfg.ConfigPath,
			Difficulty: s.cfg.Difficulty,
			Seed:       time.Now().UnixNano(),
		}
		if s.store != nil {
			ropts.Store = s.store.HighScores(variant, s.logger)
		}
		sim, err := registry.Create(variant, ropts)
		if err != nil {
			s.logger.Error("create session", "variant", variant, "err", err)
			s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Warn("upgrade failed", "err", err)
			return
		}
		defer conn.Close()

		logger := s.logger.With("remote", r.RemoteAddr)
		logger.Info("player connected", "variant", variant)

		sess := &playSession{
			conn:     conn,
			sim:      sim,
			variant:  variant,
			tickRate: s.cfg.TickRate,
			store:    s.store,
			logger:   logger,
			commands: make(chan command, 16),
		}

		// Request contexts descend from the server's base context, so
		// shutting the server down also ends live sessions.
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		go sess.readPump(ctx, cancel)
		sess.loop(ctx)

		logger.Info("player disconnected", "variant", variant)
	}
}
