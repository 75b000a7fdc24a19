package storage

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/money-tracker/internal/errors"
	"github.com/money-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// DailyAssetInfoRepository handles price/volume observations. The ingestion
// job appends rows; nothing deduplicates observations taken at the same
// instant. Rows disappear with their asset via cascade.
type DailyAssetInfoRepository struct {
	db *PostgresDB
}

// NewDailyAssetInfoRepository creates a new daily asset info repository
func NewDailyAssetInfoRepository(db *PostgresDB) *DailyAssetInfoRepository {
	return &DailyAssetInfoRepository{db: db}
}

// Record appends an observation. A zero Timestamp defaults to now; a zero
// Volume is stored as 0, matching the schema default.
func (r *DailyAssetInfoRepository) Record(ctx context.Context, info *models.DailyAssetInfo) error {
	if info.Timestamp.IsZero() {
		info.Timestamp = time.Now().UTC()
	}

	query := `
		INSERT INTO daily_asset_info (asset_id, price, volume, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.Pool().QueryRow(ctx, query,
		info.AssetID,
		info.Price.String(),
		info.Volume.String(),
		info.Timestamp,
	).Scan(&info.ID)
	if err != nil {
		return mapConstraintError("record daily asset info", err)
	}

	return nil
}

// LatestForAsset retrieves the most recent observation for an asset.
func (r *DailyAssetInfoRepository) LatestForAsset(ctx context.Context, assetID int64) (*models.DailyAssetInfo, error) {
	query := `
		SELECT id, asset_id, price::text, volume::text, timestamp
		FROM daily_asset_info
		WHERE asset_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`

	info, err := scanDailyAssetInfo(r.db.Pool().QueryRow(ctx, query, assetID))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewNotFoundError("daily asset info", assetID)
		}
		return nil, mapConstraintError("get latest asset info", err)
	}

	return info, nil
}

// ListByAsset retrieves observations for an asset within [from, to],
// oldest first.
func (r *DailyAssetInfoRepository) ListByAsset(ctx context.Context, assetID int64, from, to time.Time) ([]*models.DailyAssetInfo, error) {
	query := `
		SELECT id, asset_id, price::text, volume::text, timestamp
		FROM daily_asset_info
		WHERE asset_id = $1 AND timestamp >= $2 AND timestamp <= $3
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := r.db.Pool().Query(ctx, query, assetID, from, to)
	if err != nil {
		return nil, mapConstraintError("list asset info", err)
	}
	defer rows.Close()

	var infos []*models.DailyAssetInfo
	for rows.Next() {
		info, err := scanDailyAssetInfo(rows)
		if err != nil {
			return nil, mapConstraintError("scan asset info", err)
		}
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

func scanDailyAssetInfo(row pgx.Row) (*models.DailyAssetInfo, error) {
	var info models.DailyAssetInfo
	var price, volume string

	if err := row.Scan(
		&info.ID,
		&info.AssetID,
		&price,
		&volume,
		&info.Timestamp,
	); err != nil {
		return nil, err
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	v, err := decimal.NewFromString(volume)
	if err != nil {
		return nil, err
	}
	info.Price = p
	info.Volume = v

	return &info, nil
}
