// internal/config/config.go
package config

import (
    "encoding/json"
    "fmt"
    "os"

    "redline/internal/diff"
)

type Config struct {
    Server struct {
        Host string `json:"host"`
        Port int    `json:"port"`
    } `json:"server"`

    Database struct {
        Path string `json:"path"`
    } `json:"database"`

    Vault struct {
        Path      string `json:"path"`
        CacheSize int    `json:"cache_size"`
    } `json:"vault"`

    Diff struct {
        ContextLines int `json:"context_lines"`
        MinGap       int `json:"min_gap"`
    } `json:"diff"`

    // MaxDocumentBytes caps document size before diffing; 0 means the
    // default cap.
    MaxDocumentBytes int `json:"max_document_bytes"`

    Environment string `json:"environment"` // dev, prod
    LogLevel    string `json:"log_level"`   // debug, info, warn, error
}

const defaultMaxDocumentBytes = 4 << 20

// DefaultPath returns the config file selected by REDLINE_ENV.
func DefaultPath() string {
    env := os.Getenv("REDLINE_ENV")
    if env == "" {
        env = "development"
    }
    return fmt.Sprintf("config/config.%s.json", env)
}

func Load(path string) (*Config, error) {
    file, err := os.Open(path)
    if err != nil {
        return nil, err
    }
    defer file.Close()

    var config Config
    if err := json.NewDecoder(file).Decode(&config); err != nil {
        return nil, err
    }
    config.applyDefaults()

    return &config, nil
}

func (c *Config) applyDefaults() {
    defaults := diff.DefaultConfig()
    if c.Diff.ContextLines == 0 {
        c.Diff.ContextLines = defaults.ContextLines
    }
    if c.Diff.MinGap == 0 {
        c.Diff.MinGap = defaults.MinGap
    }
    if c.Vault.CacheSize == 0 {
        c.Vault.CacheSize = 128
    }
    if c.MaxDocumentBytes == 0 {
        c.MaxDocumentBytes = defaultMaxDocumentBytes
    }
    if c.LogLevel == "" {
        c.LogLevel = "info"
    }
}

// DiffConfig returns the engine config selected by this configuration.
func (c *Config) DiffConfig() diff.Config {
    return diff.Config{ContextLines: c.Diff.ContextLines, MinGap: c.Diff.MinGap}
}
