package app

import (
    "os"
    "strings"
    "time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values (flags) take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
    if cfg == nil {
        return
    }

    if cfg.ListenAddr == "" {
        cfg.ListenAddr = os.Getenv("LISTEN_ADDR")
    }

    if cfg.LLMBaseURL == "" {
        cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
    }
    if cfg.LLMModel == "" {
        cfg.LLMModel = os.Getenv("LLM_MODEL")
    }
    if cfg.LLMAPIKey == "" {
        // LLM_API_KEY is the native name; GOOGLE_API_KEY is accepted for
        // compatibility with older deployments.
        v := os.Getenv("LLM_API_KEY")
        if v == "" {
            v = os.Getenv("GOOGLE_API_KEY")
        }
        cfg.LLMAPIKey = v
    }

    if cfg.DBDriver == "" {
        cfg.DBDriver = os.Getenv("DATABASE_DRIVER")
    }
    if cfg.DBDSN == "" {
        cfg.DBDSN = os.Getenv("DATABASE_URL")
    }

    if cfg.FetchUserAgent == "" {
        cfg.FetchUserAgent = os.Getenv("FETCH_USER_AGENT")
    }
    if cfg.FetchTimeout == 0 {
        if s := os.Getenv("FETCH_TIMEOUT"); s != "" {
            if d, err := time.ParseDuration(s); err == nil {
                cfg.FetchTimeout = d
            }
        }
    }

    setBool := func(dst *bool, envKey string) {
        if *dst {
            return
        }
        switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
        case "1", "true", "yes", "on":
            *dst = true
        }
    }
    setBool(&cfg.Mock, "USE_MOCK")
    setBool(&cfg.Verbose, "VERBOSE")
}
