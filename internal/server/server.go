package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"

	"github.com/gorilla/mux"

	fragments "github.com/goliatone/go-fragments"
	contactscomponent "github.com/goliatone/go-fragments/components/contacts"
	countercomponent "github.com/goliatone/go-fragments/components/counter"
	"github.com/goliatone/go-fragments/internal/logging"
	"github.com/goliatone/go-fragments/internal/metrics"
	contactstore "github.com/goliatone/go-fragments/pkg/contacts"
	counterstore "github.com/goliatone/go-fragments/pkg/counter"
	"github.com/goliatone/go-fragments/pkg/fragment"
	"github.com/goliatone/go-fragments/pkg/render/template"
)

// Server owns the router and, once started, the listener.
type Server struct {
	opts     Options
	logger   *slog.Logger
	recorder metrics.Recorder
	render   *fragment.Renderer
	router   *mux.Router
	handler  http.Handler
	srv      *http.Server
}

// New builds the router for renderer. It does not listen; see Run.
func New(renderer template.BlockRenderer, fns ...OptionFn) (*Server, error) {
	if renderer == nil {
		return nil, errors.New("server: renderer is required")
	}
	opts := NewOptions(fns...)
	if opts.Counter == nil {
		opts.Counter = counterstore.New(0)
	}
	if opts.Contacts == nil {
		opts.Contacts = contactstore.NewStore()
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if opts.Metrics != nil {
		recorder = opts.Metrics
	}

	s := &Server{
		opts:     opts,
		logger:   logging.OrNop(opts.Logger),
		recorder: recorder,
		render:   fragment.NewRenderer(renderer, recorder),
		router:   mux.NewRouter(),
	}
	if err := s.routes(renderer); err != nil {
		return nil, err
	}
	s.handler = chain(s.router,
		requestID,
		observe(s.logger, s.recorder),
		recoverPanics(s.logger),
	)
	return s, nil
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Router exposes the underlying router for additional routes.
func (s *Server) Router() *mux.Router {
	return s.router
}

func (s *Server) routes(renderer template.BlockRenderer) error {
	r := s.router
	r.Use(captureRoute)

	r.HandleFunc("/", s.index).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet, http.MethodHead)

	counter := countercomponent.New(s.opts.Counter, renderer,
		countercomponent.WithLogger(s.logger.With(slog.String("component", "counter"))),
		countercomponent.WithRecorder(s.recorder),
	)
	if _, err := counter.RegisterRoutes(r, ""); err != nil {
		return fmt.Errorf("server: counter routes: %w", err)
	}

	contacts := contactscomponent.New(s.opts.Contacts, renderer,
		contactscomponent.WithLogger(s.logger.With(slog.String("component", "contacts"))),
		contactscomponent.WithRecorder(s.recorder),
	)
	if _, err := contacts.RegisterRoutes(r, ""); err != nil {
		return fmt.Errorf("server: contact routes: %w", err)
	}

	s.mountAssets(r)

	if s.opts.Metrics != nil {
		r.Handle(s.opts.MetricsPath, s.opts.Metrics.Handler()).Methods(http.MethodGet)
	}

	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(notFound)
	return nil
}

func (s *Server) mountAssets(r *mux.Router) {
	var static http.Handler
	if s.opts.StaticDir != "" {
		static = http.FileServer(http.Dir(s.opts.StaticDir))
	} else {
		static = http.FileServer(http.FS(fragments.StaticFS()))
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", static)).Methods(http.MethodGet, http.MethodHead)

	stylesheet := s.opts.Stylesheet
	r.HandleFunc("/assets/main.css", func(w http.ResponseWriter, req *http.Request) {
		if stylesheet != "" {
			http.ServeFile(w, req, stylesheet)
			return
		}
		serveFileFS(w, req, fragments.AssetsFS(), "main.css")
	}).Methods(http.MethodGet, http.MethodHead)
}

// serveFileFS is the go1.21 equivalent of http.ServeFileFS (go1.22+).
func serveFileFS(w http.ResponseWriter, req *http.Request, fsys fs.FS, name string) {
	f, err := http.FS(fsys).Open("/" + name)
	if err != nil {
		http.NotFound(w, req)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, req)
		return
	}
	http.ServeContent(w, req, info.Name(), info.ModTime(), f)
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	out, err := s.render.Block(s.opts.IndexTemplate, s.opts.IndexBlock, nil)
	if err != nil {
		fragment.Fail(w, r, s.logger, err)
		return
	}
	fragment.Write(w, http.StatusOK, out)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(NotFoundBody))
}

// Run listens on the configured address and serves until ctx is done, then
// shuts down within ShutdownGrace.
func (s *Server) Run(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on a pre-bound listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.srv = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()
	s.logger.Info("http server started", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownGrace)
	defer cancel()

	s.logger.Info("http server stopping", slog.Duration("grace", s.opts.ShutdownGrace))
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}
