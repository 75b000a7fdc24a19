package storage

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/money-tracker/internal/errors"
	"github.com/money-tracker/internal/models"
)

// PortfolioRepository handles portfolio persistence. A user may own any
// number of portfolios; deleting one cascades to its holdings.
type PortfolioRepository struct {
	db *PostgresDB
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(db *PostgresDB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// Create inserts a new portfolio for a user. Referencing a nonexistent user
// fails with a foreign-key violation.
func (r *PortfolioRepository) Create(ctx context.Context, portfolio *models.Portfolio) error {
	query := `
		INSERT INTO portfolios (user_id)
		VALUES ($1)
		RETURNING id, created_at
	`

	err := r.db.Pool().QueryRow(ctx, query, portfolio.UserID).
		Scan(&portfolio.ID, &portfolio.CreatedAt)
	if err != nil {
		return mapConstraintError("create portfolio", err)
	}

	return nil
}

// GetByID retrieves a portfolio by ID
func (r *PortfolioRepository) GetByID(ctx context.Context, id int64) (*models.Portfolio, error) {
	query := `SELECT id, user_id, created_at FROM portfolios WHERE id = $1`

	var portfolio models.Portfolio
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&portfolio.ID,
		&portfolio.UserID,
		&portfolio.CreatedAt,
	)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewNotFoundError("portfolio", id)
		}
		return nil, mapConstraintError("get portfolio", err)
	}

	return &portfolio, nil
}

// ListByUser retrieves all portfolios owned by a user.
func (r *PortfolioRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Portfolio, error) {
	query := `SELECT id, user_id, created_at FROM portfolios WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.Pool().Query(ctx, query, userID)
	if err != nil {
		return nil, mapConstraintError("list portfolios", err)
	}
	defer rows.Close()

	var portfolios []*models.Portfolio
	for rows.Next() {
		var p models.Portfolio
		if err := rows.Scan(&p.ID, &p.UserID, &p.CreatedAt); err != nil {
			return nil, mapConstraintError("scan portfolio", err)
		}
		portfolios = append(portfolios, &p)
	}

	return portfolios, rows.Err()
}

// Delete removes a portfolio and, through cascade, its holdings.
func (r *PortfolioRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Pool().Exec(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		return mapConstraintError("delete portfolio", err)
	}
	if result.RowsAffected() == 0 {
		return errors.NewNotFoundError("portfolio", id)
	}

	return nil
}
