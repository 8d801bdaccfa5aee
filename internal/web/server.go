package web

import (
	"embed"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"renotrack/internal/blobstore"
	"renotrack/internal/service"
)

//go:embed static/index.html
var staticFS embed.FS

type Server struct {
	service *service.ProgressService
	blobs   blobstore.BlobStore
	router  chi.Router
	logger  *slog.Logger
}

func NewServer(svc *service.ProgressService, blobs blobstore.BlobStore, logger *slog.Logger) *Server {
	s := &Server{
		service: svc,
		blobs:   blobs,
		logger:  logger,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/progress", s.handleProgress)
		r.Post("/checklist/{id}", s.handleSetChecklist)
		r.Post("/notes/{id}", s.handleSetNote)
		r.Post("/status/{id}", s.handleSetStatus)
		r.Post("/photos/{slotID}", s.handleUploadPhoto)
		r.Delete("/photos/{photoID}", s.handleDeletePhoto)
		r.Get("/photos/{slotID}/download", s.handleDownloadArchive)
	})

	r.Get("/uploads/{filename}", s.handleServeUpload)

	// Anything else gets the client shell so deep links resolve.
	r.NotFound(s.handleFallback)

	return r
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, s.router).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleFallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet || strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}

	shell, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		s.logger.Error("failed to read client shell", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal server error"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(shell); err != nil {
		s.logger.Error("failed to write client shell", "error", err)
	}
}
