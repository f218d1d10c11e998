package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"ecom-cart/database"
	"ecom-cart/models"

	sq "github.com/Masterminds/squirrel"
)

var productColumns = []string{"id", "name", "price", "image", "description", "created_at"}

type ProductRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewProductRepository(db *sql.DB, dialect string) *ProductRepository {
	return &ProductRepository{
		db: db,
		sb: database.StatementBuilder(dialect),
	}
}

// List returns every product in id order.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	const op = "ProductRepository.List"

	rows, err := r.sb.Select(productColumns...).
		From("products").
		OrderBy("id").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	const op = "ProductRepository.GetByID"

	row := r.sb.Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": id}).
		RunWith(r.db).
		QueryRowContext(ctx)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: product %d: %w", op, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	const op = "ProductRepository.Count"

	var count int
	err := r.sb.Select("COUNT(*)").
		From("products").
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// SeedIfEmpty inserts products when the table has no rows and reports how
// many were inserted. Count and insert share one transaction.
func (r *ProductRepository) SeedIfEmpty(ctx context.Context, products []models.Product) (inserted int, seedErr error) {
	const op = "ProductRepository.SeedIfEmpty"
	log := slog.With("op", op)

	if len(products) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}
	defer func() {
		if seedErr == nil {
			if err := tx.Commit(); err != nil {
				inserted = 0
				seedErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}
		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	var count int
	err = r.sb.Select("COUNT(*)").
		From("products").
		RunWith(tx).
		QueryRowContext(ctx).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if count > 0 {
		return 0, nil
	}

	insert := r.sb.Insert("products").Columns("id", "name", "price", "image", "description")
	for _, p := range products {
		insert = insert.Values(p.ID, p.Name, p.Price, p.Image, p.Description)
	}
	if _, err := insert.RunWith(tx).ExecContext(ctx); err != nil {
		return 0, fmt.Errorf("%s: failed to insert products: %w", op, err)
	}

	return len(products), nil
}

func scanProduct(row sq.RowScanner) (models.Product, error) {
	var (
		p           models.Product
		image       sql.NullString
		description sql.NullString
		createdAt   sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &image, &description, &createdAt); err != nil {
		return models.Product{}, err
	}
	p.Image = imageOrPlaceholder(image)
	p.Description = description.String
	p.CreatedAt = createdAt.Time
	return p, nil
}

func imageOrPlaceholder(image sql.NullString) string {
	if image.String == "" {
		return models.DefaultProductImage
	}
	return image.String
}
