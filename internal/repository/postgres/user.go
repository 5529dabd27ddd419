package postgres

import (
	"context"
	"time"

	"github.com/kevserarslan/car-rental-management/internal/domain"
	"github.com/kevserarslan/car-rental-management/internal/repository"
)

const userColumns = `id, name, email, password_hash, COALESCE(phone, ''), COALESCE(address, ''), COALESCE(driver_license, ''), role, created_at, updated_at`

type userRepository struct {
	db repository.DBTX
}

func NewUserRepository(db repository.DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

func scanUser(rs rowScanner) (*domain.User, error) {
	u := &domain.User{}
	err := rs.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Address, &u.DriverLicense, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (name, email, password_hash, phone, address, driver_license, role, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.Phone, u.Address, u.DriverLicense, u.Role, now, now).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("Email already exists: %s", u.Email)
		}
		return err
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name=$1, email=$2, password_hash=$3, phone=$4, address=$5, driver_license=$6, role=$7, updated_at=$8 WHERE id=$9`
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.Phone, u.Address, u.DriverLicense, u.Role, now, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("Email already exists: %s", u.Email)
		}
		return err
	}
	u.UpdatedAt = now
	return expectRow(res)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Conflict("User %d is still referenced by reservations", id)
		}
		return err
	}
	return expectRow(res)
}
