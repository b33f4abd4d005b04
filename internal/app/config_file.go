package app

import (
    "fmt"
    "os"
    "time"

    yaml "gopkg.in/yaml.v3"
)

// FileConfig is the YAML configuration schema. Nested sections map naturally
// to the flag names (llm.base, db.driver, ...).
type FileConfig struct {
    Listen string `yaml:"listen"`

    LLM struct {
        BaseURL string `yaml:"base"`
        Model   string `yaml:"model"`
        APIKey  string `yaml:"key"`
    } `yaml:"llm"`

    DB struct {
        Driver string `yaml:"driver"`
        DSN    string `yaml:"dsn"`
    } `yaml:"db"`

    Fetch struct {
        UserAgent string        `yaml:"userAgent"`
        Timeout   time.Duration `yaml:"timeout"`
        Attempts  int           `yaml:"attempts"`
    } `yaml:"fetch"`

    Mock    bool `yaml:"mock"`
    Verbose bool `yaml:"verbose"`
}

// LoadConfigFile reads a YAML file into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    if err := yaml.Unmarshal(b, &fc); err != nil {
        return fc, fmt.Errorf("parse config yaml: %w", err)
    }
    return fc, nil
}

// ApplyFileConfig overlays file values into cfg for fields still unset after
// flag and env resolution, so the file supplies defaults without overriding
// anything explicit.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil {
        return
    }
    if cfg.ListenAddr == "" && fc.Listen != "" {
        cfg.ListenAddr = fc.Listen
    }
    if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
        cfg.LLMBaseURL = fc.LLM.BaseURL
    }
    if cfg.LLMModel == "" && fc.LLM.Model != "" {
        cfg.LLMModel = fc.LLM.Model
    }
    if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
        cfg.LLMAPIKey = fc.LLM.APIKey
    }
    if cfg.DBDriver == "" && fc.DB.Driver != "" {
        cfg.DBDriver = fc.DB.Driver
    }
    if cfg.DBDSN == "" && fc.DB.DSN != "" {
        cfg.DBDSN = fc.DB.DSN
    }
    if cfg.FetchUserAgent == "" && fc.Fetch.UserAgent != "" {
        cfg.FetchUserAgent = fc.Fetch.UserAgent
    }
    if cfg.FetchTimeout == 0 && fc.Fetch.Timeout > 0 {
        cfg.FetchTimeout = fc.Fetch.Timeout
    }
    if cfg.FetchAttempts == 0 && fc.Fetch.Attempts > 0 {
        cfg.FetchAttempts = fc.Fetch.Attempts
    }
    if !cfg.Mock && fc.Mock {
        cfg.Mock = true
    }
    if !cfg.Verbose && fc.Verbose {
        cfg.Verbose = true
    }
}
