package postgres

import (
	"context"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/repository"
)

const categoryColumns = `id, name, COALESCE(description, ''), created_at, updated_at`

type categoryRepository struct {
	db repository.DBTX
}

func NewCategoryRepository(db repository.DBTX) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func scanCategory(rs rowScanner) (*domain.Category, error) {
	c := &domain.Category{}
	if err := rs.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO categories (name, description, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`
	now := time.Now().UTC()
	if err := r.db.QueryRowContext(ctx, query, c.Name, c.Description, now, now).Scan(&c.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("Category already exists with name: %s", c.Name)
		}
		return err
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return scanCategory(r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return scanCategory(r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE LOWER(name) = LOWER($1)`, name))
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET name=$1, description=$2, updated_at=$3 WHERE id=$4`, c.Name, c.Description, now, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("Category already exists with name: %s", c.Name)
		}
		return err
	}
	c.UpdatedAt = now
	return expectRow(res)
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Conflict("Category %d is still referenced by cars", id)
		}
		return err
	}
	return expectRow(res)
}
