package domain

import (
	"time"
)

// CREATE TABLE public.fashion_items (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name            TEXT NOT NULL,
//     category        TEXT NOT NULL,
//     subcategory     TEXT,
//     brand           TEXT,
//     price           NUMERIC,
//     color           TEXT,
//     style           TEXT,
//     season          TEXT,
//     description     TEXT,
//     image_url       TEXT,
//     trending_score  NUMERIC DEFAULT 0,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type FashionItem struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"column:name;type:text;not null" json:"name"`
	Category      string    `gorm:"column:category;type:text;not null" json:"category"`
	Subcategory   string    `gorm:"column:subcategory;type:text" json:"subcategory"`
	Brand         string    `gorm:"column:brand;type:text" json:"brand"`
	Price         float64   `gorm:"column:price;type:numeric" json:"price"`
	Color         string    `gorm:"column:color;type:text" json:"color"`
	Style         string    `gorm:"column:style;type:text" json:"style"`
	Season        string    `gorm:"column:season;type:text" json:"season"`
	Description   string    `gorm:"column:description;type:text" json:"description"`
	ImageURL      string    `gorm:"column:image_url;type:text" json:"image_url"`
	TrendingScore float64   `gorm:"column:trending_score;type:numeric;default:0" json:"trending_score"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (FashionItem) TableName() string {
	return "fashion_items"
}
