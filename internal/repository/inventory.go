package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gotvi/gotvi-backend/internal/common"
	"github.com/gotvi/gotvi-backend/internal/entity"
)

// InventoryRepository reads and writes a user's pantry items.
type InventoryRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.InventoryItem, error)
	Add(ctx context.Context, item entity.InventoryItem) (entity.InventoryItem, error)
}

type inventoryRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewInventoryRepository(db *sql.DB, logger *slog.Logger) InventoryRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &inventoryRepository{db: db, logger: logger}
}

func (r *inventoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, quantity, unit, added_at
		   FROM inventory_items
		  WHERE user_id = $1
		  ORDER BY added_at, id`, userID.String())
	if err != nil {
		r.logger.Error("inventory.list.query_failed", "user_id", userID, "error", err)
		return nil, common.WrapError(err, "list inventory")
	}
	defer rows.Close()

	var items []entity.InventoryItem
	for rows.Next() {
		var (
			item          entity.InventoryItem
			idStr, usrStr string
		)
		if err := rows.Scan(&idStr, &usrStr, &item.Name, &item.Quantity, &item.Unit, &item.AddedAt); err != nil {
			return nil, common.WrapError(err, "scan inventory item")
		}
		if item.ID, err = uuid.Parse(idStr); err != nil {
			return nil, common.WrapError(err, "parse inventory id")
		}
		if item.UserID, err = uuid.Parse(usrStr); err != nil {
			return nil, common.WrapError(err, "parse inventory user id")
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *inventoryRepository) Add(ctx context.Context, item entity.InventoryItem) (entity.InventoryItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inventory_items (id, user_id, name, quantity, unit, added_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID.String(), item.UserID.String(), item.Name, item.Quantity, item.Unit, item.AddedAt)
	if err != nil {
		r.logger.Error("inventory.add.insert_failed", "user_id", item.UserID, "error", err)
		return entity.InventoryItem{}, common.WrapError(err, "add inventory item")
	}
	return item, nil
}
