package bggpt

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the BgGPT client.
type Config struct {
	BaseURL     string        // e.g. http://localhost:11434
	Model       string        // e.g. "todorov/bggpt:9b"
	Temperature float32       // 0..2
	Timeout     time.Duration // http client timeout
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BGGPT_URL")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}
