package models

import "time"

// PointLog is an append-only ledger row. Points is signed; Balance is the
// user's balance right after the entry was applied.
type PointLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Points      int       `gorm:"not null" json:"points"`
	Balance     int       `gorm:"not null" json:"balance"`
	RelatedID   *uint     `gorm:"index" json:"relatedId,omitempty"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
