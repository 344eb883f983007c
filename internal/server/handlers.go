package server

import (
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/gotvi/gotvi-backend/internal/common"
	"github.com/gotvi/gotvi-backend/internal/entity"
	"github.com/gotvi/gotvi-backend/internal/export"
	"github.com/gotvi/gotvi-backend/internal/pipeline"
	"github.com/gotvi/gotvi-backend/internal/repository"
)

type Handler struct {
	processor *pipeline.Processor
	inventory repository.InventoryRepository
	receipts  repository.ReceiptRepository
	exporter  *export.Service
	validator *validator.Validate
	logger    *slog.Logger
}

func NewHandler(
	processor *pipeline.Processor,
	inventory repository.InventoryRepository,
	receipts repository.ReceiptRepository,
	exporter *export.Service,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		processor: processor,
		inventory: inventory,
		receipts:  receipts,
		exporter:  exporter,
		validator: validator.New(),
		logger:    logger,
	}
}

func (h *Handler) ProcessReceipt(c *fiber.Ctx) error {
	req := new(ProcessReceiptRequest)
	if err := c.BodyParser(req); err != nil {
		h.logger.Warn("server.receipt.bad_body", "error", err)
		return errorResponse(c, fiber.StatusBadRequest, "invalid request body", err)
	}
	if err := h.validator.Struct(req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid request", err)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid user id", err)
	}

	stored, err := h.processor.ProcessReceipt(c.UserContext(), userID, req.Scan)
	if err != nil {
		return pipelineError(c, "receipt processing failed", err)
	}
	return successResponse(c, fiber.StatusOK, stored)
}

func (h *Handler) GenerateRecipes(c *fiber.Ctx) error {
	req := new(GenerateRecipesRequest)
	if err := c.BodyParser(req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid request body", err)
	}
	if err := h.validator.Struct(req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid request", err)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid user id", err)
	}

	var recipes []entity.GeneratedRecipe
	if len(req.Items) > 0 {
		items := make([]entity.InventoryItem, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, entity.InventoryItem{
				UserID:   userID,
				Name:     it.Name,
				Quantity: it.Quantity,
				Unit:     it.Unit,
			})
		}
		recipes, err = h.processor.GenerateRecipesFromItems(c.UserContext(), userID, items)
	} else {
		recipes, err = h.processor.GenerateRecipes(c.UserContext(), userID)
	}
	if err != nil {
		return pipelineError(c, "recipe generation failed", err)
	}
	return successResponse(c, fiber.StatusOK, recipes)
}

func (h *Handler) ListReceipts(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid user id", err)
	}
	from, to, err := dateWindow(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid date window", err)
	}

	receipts, err := h.receipts.ListByUser(c.UserContext(), userID, from, to)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "listing receipts failed", err)
	}
	if receipts == nil {
		receipts = []entity.StoredReceipt{}
	}
	return successResponse(c, fiber.StatusOK, receipts)
}

func (h *Handler) ExportReceipts(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid user id", err)
	}
	from, to, err := dateWindow(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid date window", err)
	}

	data, err := h.exporter.ExportReceiptsXLSX(c.UserContext(), userID, from, to)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "export failed", err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="receipts.xlsx"`)
	return c.Send(data)
}

func (h *Handler) ListInventory(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid user id", err)
	}
	items, err := h.inventory.ListByUser(c.UserContext(), userID)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "listing inventory failed", err)
	}
	if items == nil {
		items = []entity.InventoryItem{}
	}
	return successResponse(c, fiber.StatusOK, items)
}

func (h *Handler) AddInventory(c *fiber.Ctx) error {
	req := new(AddInventoryRequest)
	if err := c.BodyParser(req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid request body", err)
	}
	if err := h.validator.Struct(req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid request", err)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid user id", err)
	}

	item, err := h.inventory.Add(c.UserContext(), entity.InventoryItem{
		UserID:   userID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	})
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "adding inventory item failed", err)
	}
	return successResponse(c, fiber.StatusCreated, item)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return successResponse(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}

// dateWindow parses optional from/to query params (YYYY-MM-DD).
func dateWindow(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}

// pipelineError maps pipeline failures onto HTTP statuses: caller mistakes
// are 4xx, model misbehavior is a bad gateway.
func pipelineError(c *fiber.Ctx, message string, err error) error {
	switch {
	case errors.Is(err, common.ErrTransform), errors.Is(err, common.ErrInvalidInput):
		return errorResponse(c, fiber.StatusBadRequest, message, err)
	case errors.Is(err, common.ErrEmptyInventory):
		return errorResponse(c, fiber.StatusUnprocessableEntity, message, err)
	case errors.Is(err, common.ErrModelReported),
		errors.Is(err, common.ErrRecipeParse),
		errors.Is(err, common.ErrRecipeFormat):
		return errorResponse(c, fiber.StatusBadGateway, message, err)
	default:
		return errorResponse(c, fiber.StatusInternalServerError, message, err)
	}
}

func successResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(successEnvelope{Status: "success", Data: data})
}

func errorResponse(c *fiber.Ctx, status int, message string, err error) error {
	env := errorEnvelope{Status: "error", Message: message}
	if err != nil {
		env.Error = err.Error()
	}
	return c.Status(status).JSON(env)
}
