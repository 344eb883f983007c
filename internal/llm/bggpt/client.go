// Package bggpt talks to an Ollama-style generation endpoint hosting a
// Bulgarian language model. One prompt in, the model's raw text out;
// prompt construction and response parsing live in the llm package.
package bggpt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gotvi/gotvi-backend/internal/llm"
)

// generateResponse is the endpoint's envelope; Response carries the raw
// model text (either JSON or the markdown-like recipe shape).
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate implements llm.TextGenerator against POST {base}/api/generate
// with body {model, prompt, stream:false}.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.generate.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"prompt_len", len(prompt),
	)

	body := map[string]any{
		"model":  c.cfg.Model,
		"prompt": prompt,
		"stream": false,
	}
	if c.cfg.Temperature > 0 {
		body["options"] = map[string]any{"temperature": c.cfg.Temperature}
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/api/generate"
	raw, status, err := llm.SendJSON(ctx, c.http, endpoint, body, nil, c.log)
	if err != nil {
		c.log.Error("llm.generate.http_error",
			"req_id", rid, "status", status, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		c.log.Error("llm.generate.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	if strings.TrimSpace(out.Response) == "" {
		c.log.Error("llm.generate.empty_response",
			"req_id", rid, "elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("empty response from model")
	}

	c.log.Info("llm.generate.ok",
		"req_id", rid,
		"response_len", len(out.Response),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out.Response, nil
}
