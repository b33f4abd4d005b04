package app

import (
    "errors"
    "time"
)

// Config holds runtime configuration for the service.
type Config struct {
    // HTTP
    ListenAddr string

    // LLM
    LLMBaseURL string
    LLMModel   string
    LLMAPIKey  string

    // Mock disables the generative backend entirely; generation always
    // returns the fixed fallback payload.
    Mock bool

    // Database
    DBDriver string
    DBDSN    string

    // Fetch
    FetchUserAgent string
    FetchTimeout   time.Duration
    FetchAttempts  int

    // Behavior
    Verbose bool
}

// Validate rejects configurations that cannot start: live mode requires
// backend credentials.
func (c Config) Validate() error {
    if !c.Mock && c.LLMAPIKey == "" {
        return errors.New("live mode requires an LLM API key; set llm.key or enable mock mode")
    }
    if !c.Mock && c.LLMModel == "" {
        return errors.New("live mode requires an LLM model name")
    }
    return nil
}
