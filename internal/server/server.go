package server

import (
    "context"
    "encoding/json"
    "net/http"
    "time"

    "github.com/google/uuid"
    "github.com/gorilla/handlers"
    "github.com/gorilla/mux"
    "github.com/rs/zerolog/log"

    "wikiquiz/internal/extract"
    "wikiquiz/internal/quiz"
    "wikiquiz/internal/store"
)

// Fetcher retrieves the raw document behind a URL.
type Fetcher interface {
    Get(ctx context.Context, url string) ([]byte, error)
}

// Extractor parses fetched markup into a structured article.
type Extractor func(input []byte) (extract.Article, error)

// QuizGenerator produces quiz content from extracted article text.
type QuizGenerator interface {
    Generate(ctx context.Context, content string, sections []string) (quiz.Result, error)
}

// QuizStore is the persistence surface the handlers need.
type QuizStore interface {
    Create(ctx context.Context, r *store.Record) error
    FindByURL(ctx context.Context, url string) (*store.Record, error)
    FindByID(ctx context.Context, id uint) (*store.Record, error)
    List(ctx context.Context) ([]store.Summary, error)
}

// Server wires the pipeline components behind the HTTP routes.
type Server struct {
    fetcher   Fetcher
    extract   Extractor
    generator QuizGenerator
    store     QuizStore
}

func New(f Fetcher, e Extractor, g QuizGenerator, st QuizStore) *Server {
    return &Server{fetcher: f, extract: e, generator: g, store: st}
}

// Router builds the HTTP handler: routes plus CORS, request-id, and access
// logging middleware.
func (s *Server) Router() http.Handler {
    r := mux.NewRouter()
    r.HandleFunc("/generate-quiz", s.handleGenerate).Methods(http.MethodPost)
    r.HandleFunc("/quizzes", s.handleList).Methods(http.MethodGet)
    r.HandleFunc("/quiz/{id:[0-9]+}", s.handleGetByID).Methods(http.MethodGet)
    r.HandleFunc("/quiz/{id:[0-9]+}/pdf", s.handlePDF).Methods(http.MethodGet)
    r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

    var h http.Handler = requestLogger(r)
    h = handlers.CORS(
        handlers.AllowedOrigins([]string{"*"}),
        handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
        handlers.AllowedHeaders([]string{"Content-Type"}),
    )(h)
    return h
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
    writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusRecorder struct {
    http.ResponseWriter
    status int
}

func (sr *statusRecorder) WriteHeader(code int) {
    sr.status = code
    sr.ResponseWriter.WriteHeader(code)
}

// requestLogger tags every request with an id, exposes it in the response
// headers and the request-scoped logger, and emits one access log line.
func requestLogger(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        id := uuid.NewString()
        w.Header().Set("X-Request-ID", id)
        logger := log.With().Str("request_id", id).Logger()
        r = r.WithContext(logger.WithContext(r.Context()))

        rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
        start := time.Now()
        next.ServeHTTP(rec, r)
        logger.Info().
            Str("method", r.Method).
            Str("path", r.URL.Path).
            Int("status", rec.status).
            Dur("duration", time.Since(start)).
            Msg("request")
    })
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
    writeJSON(w, status, map[string]string{"error": msg})
}
