package app

import (
    "os"
    "path/filepath"
    "testing"
    "time"
)

func TestApplyEnvToConfig_FillsUnsetOnly(t *testing.T) {
    t.Setenv("LLM_MODEL", "env-model")
    t.Setenv("LLM_API_KEY", "env-key")
    t.Setenv("USE_MOCK", "true")
    t.Setenv("DATABASE_URL", "env.db")
    t.Setenv("FETCH_TIMEOUT", "15s")

    cfg := Config{LLMModel: "flag-model"}
    ApplyEnvToConfig(&cfg)

    if cfg.LLMModel != "flag-model" {
        t.Fatalf("explicit value must win over env, got %q", cfg.LLMModel)
    }
    if cfg.LLMAPIKey != "env-key" {
        t.Fatalf("expected env key, got %q", cfg.LLMAPIKey)
    }
    if !cfg.Mock {
        t.Fatal("expected USE_MOCK=true to enable mock mode")
    }
    if cfg.DBDSN != "env.db" {
        t.Fatalf("expected env dsn, got %q", cfg.DBDSN)
    }
    if cfg.FetchTimeout != 15*time.Second {
        t.Fatalf("expected parsed fetch timeout, got %v", cfg.FetchTimeout)
    }
}

func TestApplyEnvToConfig_GoogleKeyCompat(t *testing.T) {
    t.Setenv("LLM_API_KEY", "")
    t.Setenv("GOOGLE_API_KEY", "legacy-key")
    cfg := Config{}
    ApplyEnvToConfig(&cfg)
    if cfg.LLMAPIKey != "legacy-key" {
        t.Fatalf("expected legacy key fallback, got %q", cfg.LLMAPIKey)
    }
}

func TestApplyFileConfig_LowestPrecedence(t *testing.T) {
    cfg := Config{LLMModel: "flag-model"}
    var fc FileConfig
    fc.Listen = ":9000"
    fc.LLM.Model = "file-model"
    fc.DB.Driver = "sqlite"
    fc.Fetch.Attempts = 5
    ApplyFileConfig(&cfg, fc)

    if cfg.LLMModel != "flag-model" {
        t.Fatalf("file config must not override explicit value, got %q", cfg.LLMModel)
    }
    if cfg.ListenAddr != ":9000" || cfg.DBDriver != "sqlite" || cfg.FetchAttempts != 5 {
        t.Fatalf("file config must fill unset fields, got %+v", cfg)
    }
}

func TestLoadConfigFile_YAML(t *testing.T) {
    dir := t.TempDir()
    path := filepath.Join(dir, "wikiquiz.yaml")
    body := "listen: \":8081\"\nmock: true\nllm:\n  model: gpt-4o-mini\n  key: abc\ndb:\n  driver: sqlite\n  dsn: quiz.db\nfetch:\n  timeout: 20s\n"
    if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
        t.Fatalf("write config: %v", err)
    }
    fc, err := LoadConfigFile(path)
    if err != nil {
        t.Fatalf("load config: %v", err)
    }
    if fc.Listen != ":8081" || !fc.Mock || fc.LLM.Model != "gpt-4o-mini" || fc.DB.DSN != "quiz.db" {
        t.Fatalf("unexpected file config %+v", fc)
    }
    if fc.Fetch.Timeout != 20*time.Second {
        t.Fatalf("expected parsed duration, got %v", fc.Fetch.Timeout)
    }
}

func TestValidate_LiveModeRequiresKey(t *testing.T) {
    cfg := Config{LLMModel: "gpt-4o-mini"}
    if err := cfg.Validate(); err == nil {
        t.Fatal("expected error for live mode without API key")
    }
    cfg.Mock = true
    if err := cfg.Validate(); err != nil {
        t.Fatalf("mock mode must not require credentials: %v", err)
    }
    cfg = Config{LLMModel: "gpt-4o-mini", LLMAPIKey: "k"}
    if err := cfg.Validate(); err != nil {
        t.Fatalf("expected valid live config, got %v", err)
    }
}
