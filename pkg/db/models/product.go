package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a listing owned by a shop account. Status false marks it removed.
type Product struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name             string          `gorm:"column:name;not null"`
	ShortDescription string          `gorm:"column:short_description;not null;default:''"`
	LongDescription  string          `gorm:"column:long_description;not null;default:''"`
	Quantity         int             `gorm:"column:quantity;not null;default:0"`
	MainImage        string          `gorm:"column:main_image;not null;default:''"`
	Price            decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	CategoryID       *uuid.UUID      `gorm:"column:category_id;type:uuid"`
	ShopID           uuid.UUID       `gorm:"column:shop_id;type:uuid;not null;index"`
	Status           bool            `gorm:"column:status;not null;default:true"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
