// Package pipeline wires the receipt and recipe flows end to end:
// normalize → prompt → model call → parse → persist. Each call is a
// single-shot, stateless transformation; retries belong to callers.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gotvi/gotvi-backend/internal/classify"
	"github.com/gotvi/gotvi-backend/internal/common"
	"github.com/gotvi/gotvi-backend/internal/entity"
	"github.com/gotvi/gotvi-backend/internal/llm"
	"github.com/gotvi/gotvi-backend/internal/normalize"
	"github.com/gotvi/gotvi-backend/internal/repository"
)

// Processor coordinates the two model-backed flows.
type Processor struct {
	logger     *slog.Logger
	model      llm.TextGenerator
	classifier *classify.Classifier
	inventory  repository.InventoryRepository
	receipts   repository.ReceiptRepository
}

func NewProcessor(
	logger *slog.Logger,
	model llm.TextGenerator,
	classifier *classify.Classifier,
	inventory repository.InventoryRepository,
	receipts repository.ReceiptRepository,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if classifier == nil {
		classifier = classify.New(logger)
	}
	return &Processor{
		logger:     logger,
		model:      model,
		classifier: classifier,
		inventory:  inventory,
		receipts:   receipts,
	}
}

// ProcessReceipt turns a raw scan result into a categorized receipt:
// normalize the scanned lines, ask the model to structure them, parse the
// strict-JSON answer and persist the result for the user.
func (p *Processor) ProcessReceipt(ctx context.Context, userID uuid.UUID, scan entity.ScanResult) (entity.StoredReceipt, error) {
	start := time.Now()

	text, err := normalize.Receipt(scan)
	if err != nil {
		p.logger.Error("pipeline.receipt.normalize_failed", "user_id", userID, "error", err)
		return entity.StoredReceipt{}, err
	}
	p.logger.Debug("pipeline.receipt.normalized", "user_id", userID, "lines", len(scan.Amounts), "text_len", len(text))

	answer, err := p.model.Generate(ctx, llm.BuildReceiptPrompt(text))
	if err != nil {
		p.logger.Error("pipeline.receipt.model_failed", "user_id", userID, "error", err)
		return entity.StoredReceipt{}, err
	}

	receipt, err := llm.ParseReceiptResponse(answer)
	if err != nil {
		p.logger.Error("pipeline.receipt.parse_failed", "user_id", userID, "error", err)
		return entity.StoredReceipt{}, err
	}

	stored, err := p.receipts.Save(ctx, userID, receipt)
	if err != nil {
		p.logger.Error("pipeline.receipt.save_failed", "user_id", userID, "error", err)
		return entity.StoredReceipt{}, err
	}

	p.logger.Info("pipeline.receipt.ok",
		"req_id", common.RequestIDFromContext(ctx),
		"user_id", userID,
		"receipt_id", stored.ID,
		"foods", len(receipt.FoodItems),
		"beverages", len(receipt.Beverages),
		"total", receipt.TotalAmount,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return stored, nil
}

// GenerateRecipes proposes recipes from the user's pantry. The result is a
// slice with a single recipe today; the plural shape leaves room for
// multi-recipe generation without an API break.
func (p *Processor) GenerateRecipes(ctx context.Context, userID uuid.UUID) ([]entity.GeneratedRecipe, error) {
	items, err := p.inventory.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p.GenerateRecipesFromItems(ctx, userID, items)
}

// GenerateRecipesFromItems is the inventory-independent flow: callers that
// already hold the item list (or do not persist one) use it directly.
func (p *Processor) GenerateRecipesFromItems(ctx context.Context, userID uuid.UUID, items []entity.InventoryItem) ([]entity.GeneratedRecipe, error) {
	start := time.Now()

	if len(items) == 0 {
		p.logger.Warn("pipeline.recipe.empty_inventory", "user_id", userID)
		return nil, common.NewAppError("EMPTY_INVENTORY", "no ingredients to cook with", common.ErrEmptyInventory)
	}

	selected := p.classifier.SelectForRecipe(items)
	if len(selected) == 0 {
		p.logger.Warn("pipeline.recipe.nothing_cookable", "user_id", userID, "items", len(items))
		return nil, common.NewAppError("EMPTY_INVENTORY", "no cookable ingredients in inventory", common.ErrEmptyInventory)
	}

	answer, err := p.model.Generate(ctx, llm.BuildRecipePrompt(selected))
	if err != nil {
		p.logger.Error("pipeline.recipe.model_failed", "user_id", userID, "error", err)
		return nil, err
	}

	recipe, err := llm.ParseRecipeResponse(answer)
	if err != nil {
		p.logger.Error("pipeline.recipe.parse_failed", "user_id", userID, "error", err)
		return nil, err
	}

	p.logger.Info("pipeline.recipe.ok",
		"req_id", common.RequestIDFromContext(ctx),
		"user_id", userID,
		"title", recipe.Title,
		"ingredients", len(recipe.Ingredients),
		"steps", len(recipe.FullRecipe),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return []entity.GeneratedRecipe{recipe}, nil
}
