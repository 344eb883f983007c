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

// Item kinds as stored in receipt_items.kind.
const (
	kindFood     = "FOOD"
	kindBeverage = "BEVERAGE"
)

// ReceiptRepository persists processed receipts and their line items.
type ReceiptRepository interface {
	Save(ctx context.Context, userID uuid.UUID, receipt entity.ProcessedReceipt) (entity.StoredReceipt, error)
	ListByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]entity.StoredReceipt, error)
}

type receiptRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewReceiptRepository(db *sql.DB, logger *slog.Logger) ReceiptRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &receiptRepository{db: db, logger: logger}
}

func (r *receiptRepository) Save(ctx context.Context, userID uuid.UUID, receipt entity.ProcessedReceipt) (entity.StoredReceipt, error) {
	stored := entity.StoredReceipt{
		ID:          uuid.New(),
		UserID:      userID,
		Receipt:     receipt,
		ProcessedAt: time.Now().UTC(),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return entity.StoredReceipt{}, common.WrapError(err, "begin tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO receipts (id, user_id, total_amount, processed_at)
		 VALUES ($1, $2, $3, $4)`,
		stored.ID.String(), userID.String(), receipt.TotalAmount, stored.ProcessedAt)
	if err != nil {
		r.logger.Error("receipt.save.insert_failed", "user_id", userID, "error", err)
		return entity.StoredReceipt{}, common.WrapError(err, "insert receipt")
	}

	if err := insertItems(ctx, tx, stored.ID, kindFood, receipt.FoodItems); err != nil {
		return entity.StoredReceipt{}, err
	}
	if err := insertItems(ctx, tx, stored.ID, kindBeverage, receipt.Beverages); err != nil {
		return entity.StoredReceipt{}, err
	}

	if err := tx.Commit(); err != nil {
		return entity.StoredReceipt{}, common.WrapError(err, "commit receipt")
	}
	return stored, nil
}

func insertItems(ctx context.Context, tx *sql.Tx, receiptID uuid.UUID, kind string, items []entity.ReceiptItem) error {
	for i, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO receipt_items (receipt_id, position, kind, name, quantity, price, unit)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			receiptID.String(), i, kind, item.Name,
			nullFloat(item.Quantity), nullFloat(item.Price), nullString(item.Unit))
		if err != nil {
			return common.WrapError(err, "insert receipt item")
		}
	}
	return nil
}

func (r *receiptRepository) ListByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]entity.StoredReceipt, error) {
	query := `SELECT id, user_id, total_amount, processed_at
		    FROM receipts
		   WHERE user_id = $1`
	args := []any{userID.String()}
	if from != nil {
		args = append(args, *from)
		query += ` AND processed_at >= $2`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += ` AND processed_at <= $3`
		} else {
			query += ` AND processed_at <= $2`
		}
	}
	query += ` ORDER BY processed_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("receipt.list.query_failed", "user_id", userID, "error", err)
		return nil, common.WrapError(err, "list receipts")
	}
	defer rows.Close()

	var receipts []entity.StoredReceipt
	for rows.Next() {
		var (
			stored        entity.StoredReceipt
			idStr, usrStr string
		)
		if err := rows.Scan(&idStr, &usrStr, &stored.Receipt.TotalAmount, &stored.ProcessedAt); err != nil {
			return nil, common.WrapError(err, "scan receipt")
		}
		if stored.ID, err = uuid.Parse(idStr); err != nil {
			return nil, common.WrapError(err, "parse receipt id")
		}
		if stored.UserID, err = uuid.Parse(usrStr); err != nil {
			return nil, common.WrapError(err, "parse receipt user id")
		}
		receipts = append(receipts, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "iterate receipts")
	}

	for i := range receipts {
		if err := r.loadItems(ctx, &receipts[i]); err != nil {
			return nil, err
		}
	}
	return receipts, nil
}

func (r *receiptRepository) loadItems(ctx context.Context, stored *entity.StoredReceipt) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, name, quantity, price, unit
		   FROM receipt_items
		  WHERE receipt_id = $1
		  ORDER BY kind, position`, stored.ID.String())
	if err != nil {
		return common.WrapError(err, "load receipt items")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind     string
			item     entity.ReceiptItem
			quantity sql.NullFloat64
			price    sql.NullFloat64
			unit     sql.NullString
		)
		if err := rows.Scan(&kind, &item.Name, &quantity, &price, &unit); err != nil {
			return common.WrapError(err, "scan receipt item")
		}
		if quantity.Valid {
			item.Quantity = &quantity.Float64
		}
		if price.Valid {
			item.Price = &price.Float64
		}
		if unit.Valid {
			item.Unit = &unit.String
		}
		switch kind {
		case kindBeverage:
			stored.Receipt.Beverages = append(stored.Receipt.Beverages, item)
		default:
			stored.Receipt.FoodItems = append(stored.Receipt.FoodItems, item)
		}
	}
	return rows.Err()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
