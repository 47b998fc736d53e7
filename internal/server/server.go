package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cloud-ru/deferred-contract-go/internal/calculations"
	"github.com/cloud-ru/deferred-contract-go/internal/config"
	"github.com/cloud-ru/deferred-contract-go/internal/metrics"
	"github.com/cloud-ru/deferred-contract-go/internal/tools"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Server отдает инструменты расчета по HTTP
type Server struct {
	Port    int
	tools   map[string]tools.ToolHandler
	handler http.Handler
}

// New создает сервер с роутером chi
func New(cfg *config.Config, registry map[string]tools.ToolHandler) *Server {
	s := &Server{
		Port:  cfg.Port,
		tools: registry,
	}
	s.handler = s.newRouter(cfg.CORSAllowedOrigins)
	return s
}

// Handler возвращает корневой http.Handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) newRouter(allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/tools", func(r chi.Router) {
		r.Get("/", s.listTools)
		r.Post("/{name}", s.callTool)
	})

	return r
}

// Start запускает HTTP сервер и блокируется до отмены контекста
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverError := make(chan error, 1)

	go func() {
		slog.Info("HTTP сервер запущен", "component", "server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("остановка HTTP сервера", "component", "server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("server startup failed: %w", err)
	}
}

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"tools": tools.Names(s.tools)})
}

func (s *Server) callTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	handler, ok := s.tools[name]
	if !ok {
		metrics.APICalls.WithLabelValues("http", name, "not_found").Inc()
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown tool: %s", name))
		return
	}

	var params map[string]interface{}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return
	}
	if params == nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: expected object")
		return
	}

	result, err := handler(r.Context(), params)
	if err != nil {
		writeToolError(w, r, name, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeToolError(w http.ResponseWriter, r *http.Request, name string, err error) {
	var termsErr *calculations.InvalidTermsError
	switch {
	case errors.Is(err, tools.ErrInvalidParameter):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &termsErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: err.Error(),
			Field: termsErr.Field,
		})
	default:
		slog.Error("ошибка инструмента",
			"component", "server",
			"tool", name,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// requestLogger пишет одну строку slog на запрос
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		slog.Debug("http request",
			"component", "server",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
