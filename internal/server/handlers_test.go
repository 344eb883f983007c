package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotvi/gotvi-backend/internal/entity"
	"github.com/gotvi/gotvi-backend/internal/export"
	"github.com/gotvi/gotvi-backend/internal/pipeline"
)

type stubModel struct {
	response string
}

func (m *stubModel) Generate(context.Context, string) (string, error) {
	return m.response, nil
}

type memInventory struct {
	items []entity.InventoryItem
}

func (r *memInventory) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.InventoryItem, error) {
	var out []entity.InventoryItem
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memInventory) Add(_ context.Context, item entity.InventoryItem) (entity.InventoryItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items = append(r.items, item)
	return item, nil
}

type memReceipts struct {
	saved []entity.StoredReceipt
}

func (r *memReceipts) Save(_ context.Context, userID uuid.UUID, receipt entity.ProcessedReceipt) (entity.StoredReceipt, error) {
	stored := entity.StoredReceipt{ID: uuid.New(), UserID: userID, Receipt: receipt, ProcessedAt: time.Now().UTC()}
	r.saved = append(r.saved, stored)
	return stored, nil
}

func (r *memReceipts) ListByUser(_ context.Context, userID uuid.UUID, _, _ *time.Time) ([]entity.StoredReceipt, error) {
	var out []entity.StoredReceipt
	for _, s := range r.saved {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func newTestApp(model *stubModel) (*memInventory, *memReceipts, *fiber.App) {
	inv := &memInventory{}
	rec := &memReceipts{}
	processor := pipeline.NewProcessor(nil, model, nil, inv, rec)
	exporter := export.NewService(rec, nil)
	h := NewHandler(processor, inv, rec, exporter, nil)
	return inv, rec, NewApp(h)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestHealthz(t *testing.T) {
	_, _, app := newTestApp(&stubModel{})
	resp, _ := doJSON(t, app, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProcessReceiptHandler(t *testing.T) {
	model := &stubModel{response: `{"храни": [{"име": "Хляб", "цена": 1.50}], "напитки": [], "обща_сума": 1.50}`}
	_, rec, app := newTestApp(model)

	userID := uuid.New()
	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/receipts/process", ProcessReceiptRequest{
		UserID: userID.String(),
		Scan: entity.ScanResult{
			Amounts:     []entity.ScanEntry{{Text: "Хляб 1.50"}},
			TotalAmount: entity.ScanAmount{Text: "1.50"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	require.Len(t, rec.saved, 1)

	var env struct {
		Status string               `json:"status"`
		Data   entity.StoredReceipt `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, 1.50, env.Data.Receipt.TotalAmount)
}

func TestProcessReceiptHandlerRejectsBadUserID(t *testing.T) {
	_, _, app := newTestApp(&stubModel{})
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/receipts/process", map[string]any{
		"user_id": "not-a-uuid",
		"scan":    entity.ScanResult{Amounts: []entity.ScanEntry{}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateRecipesHandlerEmptyInventory(t *testing.T) {
	_, _, app := newTestApp(&stubModel{})
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/recipes/generate", GenerateRecipesRequest{
		UserID: uuid.New().String(),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGenerateRecipesHandlerWithExplicitItems(t *testing.T) {
	model := &stubModel{response: "**Пиле с ориз**\n\n**Необходими продукти:**\n- пилешко (500 г)\n\n**Начин на приготвяне:**\n1. Гответе.\n"}
	_, _, app := newTestApp(model)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/recipes/generate", GenerateRecipesRequest{
		UserID: uuid.New().String(),
		Items: []InventoryItemRequest{
			{Name: "Пилешко филе", Quantity: 0.5, Unit: "кг"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var env struct {
		Data []entity.GeneratedRecipe `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Пиле с ориз", env.Data[0].Title)
}

func TestGenerateRecipesHandlerModelGibberishIsBadGateway(t *testing.T) {
	model := &stubModel{response: "never mind the template"}
	_, _, app := newTestApp(model)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/recipes/generate", GenerateRecipesRequest{
		UserID: uuid.New().String(),
		Items:  []InventoryItemRequest{{Name: "Пилешко филе"}},
	})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestInventoryAddAndList(t *testing.T) {
	_, _, app := newTestApp(&stubModel{})
	userID := uuid.New()

	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/inventory", AddInventoryRequest{
		UserID:   userID.String(),
		Name:     "Домати",
		Quantity: 2,
		Unit:     "кг",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = doJSON(t, app, http.MethodGet, "/api/v1/inventory?user_id="+userID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Data []entity.InventoryItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Домати", env.Data[0].Name)
}

func TestExportReceiptsHandler(t *testing.T) {
	model := &stubModel{response: `{"храни": [{"име": "Хляб"}], "напитки": [], "обща_сума": 1.50}`}
	_, _, app := newTestApp(model)
	userID := uuid.New()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/receipts/process", ProcessReceiptRequest{
		UserID: userID.String(),
		Scan: entity.ScanResult{
			Amounts:     []entity.ScanEntry{{Text: "Хляб 1.50"}},
			TotalAmount: entity.ScanAmount{Text: "1.50"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/v1/receipts/export?user_id="+userID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.NotEmpty(t, raw)
}
