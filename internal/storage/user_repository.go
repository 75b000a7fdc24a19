package storage

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/money-tracker/internal/errors"
	"github.com/money-tracker/internal/models"
)

// UserRepository handles user persistence. Deleting a user cascades to the
// user's portfolios (and through them to holdings) and performance settings
// via the schema's foreign keys.
type UserRepository struct {
	db *PostgresDB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *PostgresDB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Subscribed defaults to true unless set.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return errors.NewValidationError("username", err.Error())
	}

	query := `
		INSERT INTO custom_users (username, subscribed)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.Pool().QueryRow(ctx, query, user.Username, user.Subscribed).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return mapConstraintError("create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, subscribed, created_at
		FROM custom_users
		WHERE id = $1
	`

	var user models.User
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Subscribed,
		&user.CreatedAt,
	)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewNotFoundError("user", id)
		}
		return nil, mapConstraintError("get user", err)
	}

	return &user, nil
}

// GetByUsername retrieves a user by the identity it wraps.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, subscribed, created_at
		FROM custom_users
		WHERE username = $1
	`

	var user models.User
	err := r.db.Pool().QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Subscribed,
		&user.CreatedAt,
	)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewNotFoundError("user", username)
		}
		return nil, mapConstraintError("get user by username", err)
	}

	return &user, nil
}

// SetSubscribed flips the report subscription flag.
func (r *UserRepository) SetSubscribed(ctx context.Context, id int64, subscribed bool) error {
	query := `UPDATE custom_users SET subscribed = $2 WHERE id = $1`

	result, err := r.db.Pool().Exec(ctx, query, id, subscribed)
	if err != nil {
		return mapConstraintError("update subscription", err)
	}
	if result.RowsAffected() == 0 {
		return errors.NewNotFoundError("user", id)
	}

	return nil
}

// Delete removes a user and, through cascade, everything the user owns.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Pool().Exec(ctx, `DELETE FROM custom_users WHERE id = $1`, id)
	if err != nil {
		return mapConstraintError("delete user", err)
	}
	if result.RowsAffected() == 0 {
		return errors.NewNotFoundError("user", id)
	}

	return nil
}

// List retrieves users with pagination, newest first.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	query := `
		SELECT id, username, subscribed, created_at
		FROM custom_users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Pool().Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapConstraintError("list users", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Subscribed, &user.CreatedAt); err != nil {
			return nil, mapConstraintError("scan user", err)
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}
