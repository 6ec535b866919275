package models

import "gorm.io/gorm"

// Product represents a product in the store catalog.
type Product struct {
	ID               string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name             string          `json:"name" validate:"required,min=3,max=100"`
	ShortDescription string          `json:"short_description" validate:"omitempty,max=200"`
	Description      string          `json:"description" validate:"omitempty,max=2000"`
	Category         string          `json:"category" gorm:"index;type:varchar(100)" validate:"omitempty,max=100"`
	Price            float64         `json:"price" validate:"required,gt=0"`
	DiscountPrice    float64         `json:"discount_price" validate:"gte=0"` // 0 means no sale price
	Stock            int             `json:"stock" validate:"gte=0"`
	IsFeatured       bool            `json:"is_featured"`
	Sizes            []SizeVariant   `json:"sizes,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Flavors          []FlavorVariant `json:"flavors,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	gorm.Model       `json:"-"`
}

// EffectivePrice returns the price a buyer pays for the base product,
// preferring the sale price when one is set.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

// SizeVariant is a selectable size for a product, carrying its own price.
type SizeVariant struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	ProductID string  `json:"-" gorm:"index;type:varchar(36)"`
	Label     string  `json:"label" validate:"required,max=50"`
	Price     float64 `json:"price" validate:"required,gt=0"`
}

// FlavorVariant is a selectable flavor for a product.
type FlavorVariant struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID string `json:"-" gorm:"index;type:varchar(36)"`
	Label     string `json:"label" validate:"required,max=50"`
	Available bool   `json:"available"`
}
