package main

import (
    "context"
    "errors"
    "flag"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/joho/godotenv"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"

    "wikiquiz/internal/app"
    "wikiquiz/internal/extract"
    "wikiquiz/internal/fetch"
    "wikiquiz/internal/llm"
    "wikiquiz/internal/quiz"
    "wikiquiz/internal/server"
    "wikiquiz/internal/store"
)

func main() {
    // Logging setup
    zerolog.TimeFieldFormat = time.RFC3339
    log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

    // Best-effort dotenv load before flags read the environment.
    _ = godotenv.Load()

    var (
        configPath    string
        listenAddr    string
        llmBaseURL    string
        llmModel      string
        llmKey        string
        mock          bool
        dbDriver      string
        dbDSN         string
        fetchUA       string
        fetchTimeout  time.Duration
        fetchAttempts int
        verbose       bool
    )

    flag.StringVar(&configPath, "config", "", "Path to optional YAML config file")
    flag.StringVar(&listenAddr, "listen", "", "HTTP listen address (default :8080)")
    flag.StringVar(&llmBaseURL, "llm.base", "", "OpenAI-compatible base URL")
    flag.StringVar(&llmModel, "llm.model", "", "Model name")
    flag.StringVar(&llmKey, "llm.key", "", "API key for the generative backend")
    flag.BoolVar(&mock, "mock", false, "Disable the backend and serve the fixed fallback quiz")
    flag.StringVar(&dbDriver, "db.driver", "", "Database driver: sqlite or mysql (default sqlite)")
    flag.StringVar(&dbDSN, "db.dsn", "", "Database DSN (default wikiquiz.db)")
    flag.StringVar(&fetchUA, "fetch.ua", "", "User-Agent for page fetches")
    flag.DurationVar(&fetchTimeout, "fetch.timeout", 0, "Per-request fetch timeout (default 30s)")
    flag.IntVar(&fetchAttempts, "fetch.attempts", 0, "Fetch attempts including the first (default 3)")
    flag.BoolVar(&verbose, "v", false, "Verbose logging")
    flag.Parse()

    cfg := app.Config{
        ListenAddr:     listenAddr,
        LLMBaseURL:     llmBaseURL,
        LLMModel:       llmModel,
        LLMAPIKey:      llmKey,
        Mock:           mock,
        DBDriver:       dbDriver,
        DBDSN:          dbDSN,
        FetchUserAgent: fetchUA,
        FetchTimeout:   fetchTimeout,
        FetchAttempts:  fetchAttempts,
        Verbose:        verbose,
    }
    app.ApplyEnvToConfig(&cfg)
    if configPath != "" {
        fc, err := app.LoadConfigFile(configPath)
        if err != nil {
            log.Fatal().Err(err).Str("path", configPath).Msg("load config file")
        }
        app.ApplyFileConfig(&cfg, fc)
    }

    // Defaults after all sources are merged
    if cfg.ListenAddr == "" {
        cfg.ListenAddr = ":8080"
    }
    if cfg.DBDSN == "" {
        cfg.DBDSN = "wikiquiz.db"
    }
    if cfg.FetchTimeout == 0 {
        cfg.FetchTimeout = 30 * time.Second
    }
    if cfg.FetchAttempts == 0 {
        cfg.FetchAttempts = 3
    }

    if cfg.Verbose {
        zerolog.SetGlobalLevel(zerolog.DebugLevel)
    } else {
        zerolog.SetGlobalLevel(zerolog.InfoLevel)
    }

    if err := cfg.Validate(); err != nil {
        log.Fatal().Err(err).Msg("invalid configuration")
    }

    if err := run(cfg); err != nil {
        log.Fatal().Err(err).Msg("run failed")
    }
}

func run(cfg app.Config) error {
    st, err := store.Open(cfg.DBDriver, cfg.DBDSN)
    if err != nil {
        return err
    }
    defer st.Close()

    generator := &quiz.Generator{Model: cfg.LLMModel, Mock: cfg.Mock}
    if !cfg.Mock {
        generator.Client = llm.New(cfg.LLMAPIKey, cfg.LLMBaseURL)
    }

    fetcher := &fetch.Client{
        UserAgent:         cfg.FetchUserAgent,
        MaxAttempts:       cfg.FetchAttempts,
        PerRequestTimeout: cfg.FetchTimeout,
    }

    srv := server.New(fetcher, extract.FromHTML, generator, st)
    httpServer := &http.Server{
        Addr:              cfg.ListenAddr,
        Handler:           srv.Router(),
        ReadHeaderTimeout: 10 * time.Second,
        WriteTimeout:      2 * time.Minute,
    }

    errCh := make(chan error, 1)
    go func() {
        log.Info().Str("addr", cfg.ListenAddr).Bool("mock", cfg.Mock).Msg("listening")
        errCh <- httpServer.ListenAndServe()
    }()

    stop := make(chan os.Signal, 1)
    signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
    select {
    case err := <-errCh:
        if errors.Is(err, http.ErrServerClosed) {
            return nil
        }
        return err
    case sig := <-stop:
        log.Info().Str("signal", sig.String()).Msg("shutting down")
        ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
        defer cancel()
        return httpServer.Shutdown(ctx)
    }
}
