package domain

import (
	"time"
)

const (
	PreferenceKeyCategory = "category"
	PreferenceKeyStyle    = "style"
	PreferenceKeyColor    = "color"
	PreferenceKeyBrand    = "brand"
)

// UserPreference is a weighted taste signal, unique on (user_id, key, value).
// Feedback bumps an existing row's weight by 0.1 instead of inserting a
// duplicate.
type UserPreference struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint      `gorm:"column:user_id;not null;uniqueIndex:idx_user_pref" json:"user_id"`
	PreferenceKey   string    `gorm:"column:preference_key;not null;uniqueIndex:idx_user_pref" json:"key"`
	PreferenceValue string    `gorm:"column:preference_value;not null;uniqueIndex:idx_user_pref" json:"value"`
	Weight          float64   `gorm:"column:weight;default:1" json:"weight"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
