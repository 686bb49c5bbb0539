package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/snapshot/internal/gateway"
	"github.com/sells-group/snapshot/internal/model"
	"github.com/sells-group/snapshot/internal/research"
	"github.com/sells-group/snapshot/internal/session"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the research API server",
	Long:  "Serves the research flow over HTTP: provider proxies, report generation, deep dives, and the source ledger for one research session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}
		mode, err := research.ParseMode(cfg.Research.Mode)
		if err != nil {
			return err
		}

		primary, validator, err := buildProviders(ctx)
		if err != nil {
			return err
		}

		sess := session.New()
		srv := &apiServer{
			orchestrator: research.New(primary, validator, sess),
			session:      sess,
			primary:      primary,
			validator:    validator,
			mode:         mode,
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: srv.routes(cfg.Server.AllowedOrigins),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			httpSrv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port), zap.String("mode", string(mode)))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// apiServer exposes one research session over HTTP.
type apiServer struct {
	orchestrator *research.Orchestrator
	session      *session.Session
	primary      gateway.Provider
	validator    gateway.Provider
	mode         research.Mode
}

func (s *apiServer) routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/providers/claude", s.handleProvider(s.primary))
		r.Post("/providers/gemini", s.handleProvider(s.validator))
		r.Post("/research", s.handleResearch)
		r.Post("/research/{section}", s.handleDeepDive)
		r.Get("/report", s.handleReport)
		r.Get("/sources", s.handleSources)
	})

	return r
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleProvider proxies a raw prompt to one provider and returns its text.
func (s *apiServer) handleProvider(p gateway.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p == nil {
			writeError(w, http.StatusServiceUnavailable, "provider is not configured")
			return
		}

		var req struct {
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
			writeError(w, http.StatusBadRequest, "prompt is required")
			return
		}

		text, err := p.Send(r.Context(), req.Prompt)
		if err != nil {
			zap.L().Error("provider call failed",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			writeError(w, http.StatusBadGateway, "failed to get response from "+p.Name())
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"text": text})
	}
}

func (s *apiServer) handleResearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Company string `json:"company"`
		Mode    string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Company == "" {
		writeError(w, http.StatusBadRequest, "company is required")
		return
	}

	mode := s.mode
	if req.Mode != "" {
		var err error
		if mode, err = research.ParseMode(req.Mode); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	report, err := s.orchestrator.Run(r.Context(), req.Company, mode)
	if err != nil {
		zap.L().Error("research failed",
			zap.String("company", req.Company),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, research.StageErrored.Message())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *apiServer) handleDeepDive(w http.ResponseWriter, r *http.Request) {
	section, err := session.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Competitors []string `json:"competitors"`
	}
	// An empty body means default selection; chunked requests carry no
	// Content-Length, so decode rather than sniff.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := s.orchestrator.DeepDive(r.Context(), section, req.Competitors)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, report)
	case eris.Is(err, research.ErrNoReport):
		writeError(w, http.StatusNotFound, "no report yet")
	case eris.Is(err, research.ErrDiveInFlight):
		writeError(w, http.StatusConflict, "deep dive already in progress")
	default:
		zap.L().Error("deep dive failed",
			zap.String("section", string(section)),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, "deep dive failed")
	}
}

func (s *apiServer) handleReport(w http.ResponseWriter, r *http.Request) {
	report := s.session.Report()
	if report == nil {
		writeError(w, http.StatusNotFound, "no report yet")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *apiServer) handleSources(w http.ResponseWriter, r *http.Request) {
	sources := s.session.Sources()
	if sources == nil {
		sources = []model.Source{}
	}
	writeJSON(w, http.StatusOK, sources)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
