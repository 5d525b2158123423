package models

import "time"

// Holding is one portfolio position: a user-owned record of a traded
// instrument symbol, quantity and per-share cost basis. A user holds at most
// one row per symbol.
type Holding struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	UserID    uint      `gorm:"column:user_id;not null;index;uniqueIndex:idx_holdings_user_symbol"`
	Symbol    string    `gorm:"column:symbol;size:12;not null;uniqueIndex:idx_holdings_user_symbol"`
	Quantity  float64   `gorm:"column:quantity;not null"`
	CostBasis float64   `gorm:"column:cost_basis;not null"`
	Notes     string    `gorm:"column:notes;size:500"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Holding) TableName() string {
	return "holdings"
}
