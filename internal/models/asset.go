package models

import (
	"fmt"

	"github.com/money-tracker/internal/types"
)

// Asset represents a tradable instrument. Symbols are deliberately not
// unique: the same ticker can exist on several venues or asset classes.
type Asset struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Symbol string `json:"symbol" db:"symbol"`
	Type   string `json:"type" db:"type"`
}

func (a *Asset) String() string {
	return fmt.Sprintf("%s (%s) - %s", a.Name, a.Symbol, a.Type)
}

// Validate checks the fields the schema constrains.
func (a *Asset) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(a.Name) > types.MaxAssetNameLen {
		return fmt.Errorf("name exceeds %d characters", types.MaxAssetNameLen)
	}
	if a.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if len(a.Symbol) > types.MaxAssetSymbolLen {
		return fmt.Errorf("symbol exceeds %d characters", types.MaxAssetSymbolLen)
	}
	if len(a.Type) > types.MaxAssetTypeLen {
		return fmt.Errorf("type exceeds %d characters", types.MaxAssetTypeLen)
	}
	return nil
}
