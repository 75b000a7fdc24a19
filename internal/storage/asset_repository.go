package storage

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/money-tracker/internal/errors"
	"github.com/money-tracker/internal/models"
)

// AssetRepository handles asset persistence. Deleting an asset cascades to
// its holdings and daily info rows.
type AssetRepository struct {
	db *PostgresDB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *PostgresDB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create inserts a new asset.
func (r *AssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	if err := asset.Validate(); err != nil {
		return errors.NewValidationError("asset", err.Error())
	}

	query := `
		INSERT INTO assets (name, symbol, type)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.Pool().QueryRow(ctx, query, asset.Name, asset.Symbol, asset.Type).
		Scan(&asset.ID)
	if err != nil {
		return mapConstraintError("create asset", err)
	}

	return nil
}

// GetByID retrieves an asset by ID
func (r *AssetRepository) GetByID(ctx context.Context, id int64) (*models.Asset, error) {
	query := `SELECT id, name, symbol, type FROM assets WHERE id = $1`

	var asset models.Asset
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&asset.ID,
		&asset.Name,
		&asset.Symbol,
		&asset.Type,
	)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewNotFoundError("asset", id)
		}
		return nil, mapConstraintError("get asset", err)
	}

	return &asset, nil
}

// GetBySymbol retrieves every asset carrying the symbol. Symbols are not
// unique, so the result is a slice.
func (r *AssetRepository) GetBySymbol(ctx context.Context, symbol string) ([]*models.Asset, error) {
	query := `SELECT id, name, symbol, type FROM assets WHERE symbol = $1 ORDER BY id`

	rows, err := r.db.Pool().Query(ctx, query, symbol)
	if err != nil {
		return nil, mapConstraintError("get assets by symbol", err)
	}
	defer rows.Close()

	return scanAssets(rows)
}

// List retrieves assets with pagination.
func (r *AssetRepository) List(ctx context.Context, limit, offset int) ([]*models.Asset, error) {
	query := `SELECT id, name, symbol, type FROM assets ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Pool().Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapConstraintError("list assets", err)
	}
	defer rows.Close()

	return scanAssets(rows)
}

// Delete removes an asset and, through cascade, its holdings and daily info.
func (r *AssetRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Pool().Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return mapConstraintError("delete asset", err)
	}
	if result.RowsAffected() == 0 {
		return errors.NewNotFoundError("asset", id)
	}

	return nil
}

func scanAssets(rows pgx.Rows) ([]*models.Asset, error) {
	var assets []*models.Asset
	for rows.Next() {
		var asset models.Asset
		if err := rows.Scan(&asset.ID, &asset.Name, &asset.Symbol, &asset.Type); err != nil {
			return nil, mapConstraintError("scan asset", err)
		}
		assets = append(assets, &asset)
	}
	return assets, rows.Err()
}
