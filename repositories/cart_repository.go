package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ecom-cart/database"
	"ecom-cart/models"

	sq "github.com/Masterminds/squirrel"
)

// The merge only happens while the sum stays within models.MaxQuantity;
// otherwise no row is returned.
var mergeQuantitySuffix = fmt.Sprintf(
	`ON CONFLICT (product_id) DO UPDATE SET quantity = cart_items.quantity + excluded.quantity WHERE cart_items.quantity <= %d - excluded.quantity RETURNING id`,
	models.MaxQuantity,
)

type CartRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewCartRepository(db *sql.DB, dialect string) *CartRepository {
	return &CartRepository{
		db: db,
		sb: database.StatementBuilder(dialect),
	}
}

// AddOrMerge inserts a line item for productID, or adds quantity to the
// existing line when the product is already in the cart. It returns the id of
// the affected line; that id differs from newID when a merge happened. A merge
// that would push the line past models.MaxQuantity fails with ErrQuantityLimit
// and leaves the line unchanged.
func (r *CartRepository) AddOrMerge(ctx context.Context, newID string, productID, quantity int, addedAt time.Time) (string, error) {
	const op = "CartRepository.AddOrMerge"

	var id string
	err := r.sb.Insert("cart_items").
		Columns("id", "product_id", "quantity", "added_at").
		Values(newID, productID, quantity, addedAt).
		Suffix(mergeQuantitySuffix).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: product %d: %w", op, productID, ErrQuantityLimit)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// List returns cart lines joined with their product, oldest first.
func (r *CartRepository) List(ctx context.Context) ([]models.CartItem, error) {
	const op = "CartRepository.List"

	items, err := r.list(ctx, r.db)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	const op = "CartRepository.UpdateQuantity"

	res, err := r.sb.Update("cart_items").
		Set("quantity", quantity).
		Where(sq.Eq{"id": id}).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, id, res)
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	const op = "CartRepository.Delete"

	res, err := r.sb.Delete("cart_items").
		Where(sq.Eq{"id": id}).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, id, res)
}

// Checkout reads the whole cart, hands it to fn and clears the cart, all in one
// transaction. When fn returns an error nothing is deleted and the error is
// returned unchanged.
func (r *CartRepository) Checkout(ctx context.Context, fn func(items []models.CartItem) error) (checkoutErr error) {
	const op = "CartRepository.Checkout"
	log := slog.With("op", op)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}
	defer func() {
		if checkoutErr == nil {
			if err := tx.Commit(); err != nil {
				checkoutErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}
		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	items, err := r.list(ctx, tx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := fn(items); err != nil {
		return err
	}

	if _, err := r.sb.Delete("cart_items").RunWith(tx).ExecContext(ctx); err != nil {
		return fmt.Errorf("%s: failed to clear cart: %w", op, err)
	}
	return nil
}

func (r *CartRepository) list(ctx context.Context, runner sq.BaseRunner) ([]models.CartItem, error) {
	rows, err := r.sb.Select(
		"ci.id", "ci.product_id", "p.name", "p.price", "p.image", "ci.quantity", "ci.added_at",
	).
		From("cart_items ci").
		Join("products p ON p.id = ci.product_id").
		OrderBy("ci.added_at", "ci.id").
		RunWith(runner).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var (
			item    models.CartItem
			image   sql.NullString
			addedAt sql.NullTime
		)
		err := rows.Scan(&item.ID, &item.ProductID, &item.Name, &item.Price, &image, &item.Quantity, &addedAt)
		if err != nil {
			return nil, err
		}
		item.Image = imageOrPlaceholder(image)
		item.AddedAt = addedAt.Time
		item.ItemTotal = models.LineTotal(item.Price, item.Quantity)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func checkAffected(op, id string, res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: getting affected rows: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: cart item %s: %w", op, id, ErrNotFound)
	}
	return nil
}
