package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio represents a user's collection of holdings. A user may own any
// number of portfolios; deleting the user deletes them all.
type Portfolio struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Holding links an asset into a portfolio with the quantity held. At most
// one holding row exists per (portfolio, asset) pair.
//
// AcquisitionDate is stamped with the current date on every write, updates
// included. That matches the behavior of the system this schema was ported
// from; whether updates should preserve the original date is an open
// question with the stakeholders.
type Holding struct {
	ID              int64           `json:"id" db:"id"`
	PortfolioID     int64           `json:"portfolioId" db:"portfolio_id"`
	AssetID         int64           `json:"assetId" db:"asset_id"`
	Quantity        decimal.Decimal `json:"quantity" db:"quantity"`
	AcquisitionDate time.Time       `json:"acquisitionDate" db:"acquisition_date"`
}
