// scanreceipt runs the receipt pipeline once against a scan-result JSON
// file and prints the structured result. With -dry-run it stops after
// building the prompt, which is handy for tuning prompt wording without a
// model endpoint.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/gotvi/gotvi-backend/internal/common"
	"github.com/gotvi/gotvi-backend/internal/entity"
	"github.com/gotvi/gotvi-backend/internal/llm"
	"github.com/gotvi/gotvi-backend/internal/llm/bggpt"
	"github.com/gotvi/gotvi-backend/internal/normalize"
)

func main() {
	var (
		path   = flag.String("file", "", "path to a scan-result JSON file")
		dryRun = flag.Bool("dry-run", false, "print the prompt instead of calling the model")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)
	_ = godotenv.Load()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: scanreceipt -file scan.json [-dry-run]")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*path)
	if err != nil {
		fatal("read file", err)
	}
	var scan entity.ScanResult
	if err := json.Unmarshal(raw, &scan); err != nil {
		fatal("decode scan result", err)
	}

	text, err := normalize.Receipt(scan)
	if err != nil {
		fatal("normalize", err)
	}
	prompt := llm.BuildReceiptPrompt(text)

	if *dryRun {
		fmt.Println(prompt)
		return
	}

	cfg := common.LoadConfig()
	model := bggpt.NewClient(bggpt.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	answer, err := model.Generate(context.Background(), prompt)
	if err != nil {
		fatal("generate", err)
	}
	receipt, err := llm.ParseReceiptResponse(answer)
	if err != nil {
		fatal("parse response", err)
	}

	out, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		fatal("encode result", err)
	}
	fmt.Println(string(out))
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "scanreceipt: %s: %v\n", msg, err)
	os.Exit(1)
}
