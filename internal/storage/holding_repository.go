package storage

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/money-tracker/internal/errors"
	"github.com/money-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// HoldingRepository handles the portfolio/asset join rows. The schema keeps
// at most one holding per (portfolio, asset) pair; a duplicate insert fails
// with a uniqueness violation rather than merging quantities.
//
// acquisition_date is stamped with the current date on every write, updates
// included. That reproduces the source system's behavior on purpose.
type HoldingRepository struct {
	db *PostgresDB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *PostgresDB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// Create inserts a holding. Fails with a uniqueness violation when the
// portfolio already holds the asset, and a foreign-key violation when
// either parent row is missing.
func (r *HoldingRepository) Create(ctx context.Context, holding *models.Holding) error {
	query := `
		INSERT INTO portfolios_assets (portfolio_id, asset_id, quantity, acquisition_date)
		VALUES ($1, $2, $3, CURRENT_DATE)
		RETURNING id, acquisition_date
	`

	err := r.db.Pool().QueryRow(ctx, query,
		holding.PortfolioID,
		holding.AssetID,
		holding.Quantity.String(),
	).Scan(&holding.ID, &holding.AcquisitionDate)
	if err != nil {
		return mapConstraintError("create holding", err)
	}

	return nil
}

// UpdateQuantity replaces the held quantity and restamps acquisition_date.
func (r *HoldingRepository) UpdateQuantity(ctx context.Context, id int64, quantity decimal.Decimal) error {
	query := `
		UPDATE portfolios_assets
		SET quantity = $2, acquisition_date = CURRENT_DATE
		WHERE id = $1
	`

	result, err := r.db.Pool().Exec(ctx, query, id, quantity.String())
	if err != nil {
		return mapConstraintError("update holding", err)
	}
	if result.RowsAffected() == 0 {
		return errors.NewNotFoundError("holding", id)
	}

	return nil
}

// GetByID retrieves a holding by ID
func (r *HoldingRepository) GetByID(ctx context.Context, id int64) (*models.Holding, error) {
	query := `
		SELECT id, portfolio_id, asset_id, quantity::text, acquisition_date
		FROM portfolios_assets
		WHERE id = $1
	`

	holding, err := scanHolding(r.db.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewNotFoundError("holding", id)
		}
		return nil, mapConstraintError("get holding", err)
	}

	return holding, nil
}

// GetByPortfolioAsset retrieves the unique holding for a (portfolio, asset) pair.
func (r *HoldingRepository) GetByPortfolioAsset(ctx context.Context, portfolioID, assetID int64) (*models.Holding, error) {
	query := `
		SELECT id, portfolio_id, asset_id, quantity::text, acquisition_date
		FROM portfolios_assets
		WHERE portfolio_id = $1 AND asset_id = $2
	`

	holding, err := scanHolding(r.db.Pool().QueryRow(ctx, query, portfolioID, assetID))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewNotFoundError("holding", portfolioID)
		}
		return nil, mapConstraintError("get holding", err)
	}

	return holding, nil
}

// ListByPortfolio retrieves all holdings in a portfolio.
func (r *HoldingRepository) ListByPortfolio(ctx context.Context, portfolioID int64) ([]*models.Holding, error) {
	query := `
		SELECT id, portfolio_id, asset_id, quantity::text, acquisition_date
		FROM portfolios_assets
		WHERE portfolio_id = $1
		ORDER BY id
	`

	rows, err := r.db.Pool().Query(ctx, query, portfolioID)
	if err != nil {
		return nil, mapConstraintError("list holdings", err)
	}
	defer rows.Close()

	var holdings []*models.Holding
	for rows.Next() {
		holding, err := scanHolding(rows)
		if err != nil {
			return nil, mapConstraintError("scan holding", err)
		}
		holdings = append(holdings, holding)
	}

	return holdings, rows.Err()
}

// Delete removes a holding.
func (r *HoldingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Pool().Exec(ctx, `DELETE FROM portfolios_assets WHERE id = $1`, id)
	if err != nil {
		return mapConstraintError("delete holding", err)
	}
	if result.RowsAffected() == 0 {
		return errors.NewNotFoundError("holding", id)
	}

	return nil
}

func scanHolding(row pgx.Row) (*models.Holding, error) {
	var holding models.Holding
	var quantity string

	if err := row.Scan(
		&holding.ID,
		&holding.PortfolioID,
		&holding.AssetID,
		&quantity,
		&holding.AcquisitionDate,
	); err != nil {
		return nil, err
	}

	q, err := decimal.NewFromString(quantity)
	if err != nil {
		return nil, err
	}
	holding.Quantity = q

	return &holding, nil
}
