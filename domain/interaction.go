package domain

import (
	"time"
)

const (
	InteractionView     = "view"
	InteractionLike     = "like"
	InteractionCart     = "cart"
	InteractionWishlist = "wishlist"
	InteractionPurchase = "purchase"
)

// UserInteraction is an append-only behavior record. Multiple rows may exist
// for the same (user, item) pair; they are aggregated at read time.
type UserInteraction struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	ItemID          uint64    `gorm:"column:item_id;not null;index" json:"item_id"`
	InteractionType string    `gorm:"column:interaction_type;not null" json:"interaction_type"`
	Rating          *float64  `gorm:"column:rating" json:"rating,omitempty"`
	Timestamp       time.Time `gorm:"column:timestamp;index" json:"timestamp"`
}

func (UserInteraction) TableName() string {
	return "user_interactions"
}

// InteractionFilter narrows InteractionRepository queries. Nil fields are
// ignored.
type InteractionFilter struct {
	UserID *uint
	ItemID *uint64
	Since  *time.Time
	Until  *time.Time
}
