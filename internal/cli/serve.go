package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pegplanner/pkg/buildinfo"
	"github.com/matzehuels/pegplanner/pkg/catalog"
	perrors "github.com/matzehuels/pegplanner/pkg/errors"
	"github.com/matzehuels/pegplanner/pkg/observability"
	"github.com/matzehuels/pegplanner/pkg/persist"
	"github.com/matzehuels/pegplanner/pkg/planner"
)

const (
	// reloadInterval bounds how stale a preview can be.
	reloadInterval = time.Second

	shutdownTimeout = 5 * time.Second
)

// serveCommand runs the read-only preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live preview of the board over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *session) error {
				if addr == "" {
					addr = s.cfg.Server.Addr
				}
				srv := &http.Server{
					Addr:              addr,
					Handler:           newPreviewServer(s.Planner, c.Logger).routes(),
					ReadHeaderTimeout: 5 * time.Second,
				}

				errc := make(chan error, 1)
				go func() { errc <- srv.ListenAndServe() }()
				printInfo(c.out, "Serving the board on %s", StyleHighlight.Render("http://"+addr+"/board.svg"))

				select {
				case err := <-errc:
					return err
				case <-cmd.Context().Done():
				}

				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return cmd.Context().Err()
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+defaultServerAddr+")")

	return cmd
}

// previewServer renders the stored layout. Layouts are reloaded from the
// store at most once per reloadInterval so changes made by other commands
// show up.
type previewServer struct {
	mu     sync.RWMutex
	p      *planner.Planner
	loaded time.Time
	logger *log.Logger
}

func newPreviewServer(p *planner.Planner, logger *log.Logger) *previewServer {
	return &previewServer{p: p, loaded: time.Now(), logger: logger}
}

func (s *previewServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestHooks)
	r.Use(middleware.SetHeader("Server", buildinfo.ServerHeader()))

	r.Get("/healthz", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/layout", s.layout)
		r.Get("/summary", s.summary)
		r.Get("/catalog", s.catalog)
	})
	r.Get("/board.svg", s.image(planner.FormatSVG, "image/svg+xml"))
	r.Get("/board.png", s.image(planner.FormatPNG, "image/png"))
	return r
}

// read runs fn against a fresh enough planner under the read lock.
func (s *previewServer) read(ctx context.Context, fn func(p *planner.Planner) error) error {
	s.mu.Lock()
	if time.Since(s.loaded) >= reloadInterval {
		rep := s.p.Reload(ctx)
		if rep.Err != nil {
			s.logger.Warn("stored layout unreadable", "err", rep.Err)
		}
		s.loaded = time.Now()
	}
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.p)
}

func (s *previewServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *previewServer) layout(w http.ResponseWriter, r *http.Request) {
	var rec persist.Record
	err := s.read(r.Context(), func(p *planner.Planner) error {
		rec = persist.FromLayout(p.Layout())
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *previewServer) summary(w http.ResponseWriter, r *http.Request) {
	var sum planner.Summary
	s.read(r.Context(), func(p *planner.Planner) error {
		sum = p.Summary()
		return nil
	})
	writeJSON(w, http.StatusOK, sum)
}

type catalogResponse struct {
	Templates  []catalog.ItemTemplate `json:"templates"`
	BoardSizes []catalog.BoardSize    `json:"boardSizes"`
	Colors     []catalog.BoardColor   `json:"colors"`
	Textures   []catalog.BoardTexture `json:"textures"`
}

func (s *previewServer) catalog(w http.ResponseWriter, r *http.Request) {
	cat := s.p.Catalog()
	writeJSON(w, http.StatusOK, catalogResponse{
		Templates:  cat.Templates(),
		BoardSizes: cat.BoardSizes(),
		Colors:     cat.Colors(),
		Textures:   cat.Textures(),
	})
}

func (s *previewServer) image(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data []byte
		err := s.read(r.Context(), func(p *planner.Planner) error {
			var err error
			data, err = p.Render(format)
			return err
		})
		if err != nil {
			s.logger.Error("render failed", "format", format, "err", err)
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-store")
		w.Write(data)
	}
}

// requestHooks reports every request to the HTTP hooks.
func requestHooks(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case perrors.Is(err, perrors.ErrCodeInvalidInput):
		status = http.StatusBadRequest
	case perrors.IsUnknownID(err):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{
		"error": perrors.UserMessage(err),
		"code":  string(perrors.GetCode(err)),
	})
}
