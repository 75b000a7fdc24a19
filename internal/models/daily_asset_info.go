package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyAssetInfo represents one price/volume observation for an asset. The
// ingestion job appends a row per fetch; nothing forbids several rows for
// the same instant.
type DailyAssetInfo struct {
	ID        int64           `json:"id" db:"id"`
	AssetID   int64           `json:"assetId" db:"asset_id"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Volume    decimal.Decimal `json:"volume" db:"volume"`
	Timestamp time.Time       `json:"timestamp" db:"timestamp"`
}
