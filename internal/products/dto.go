package product

import (
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the product payload returned to clients.
type ProductDTO struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	ShortDescription string          `json:"shortDescription"`
	LongDescription  string          `json:"longDescription"`
	Quantity         int             `json:"quantity"`
	MainImage        string          `json:"mainImage"`
	Price            decimal.Decimal `json:"price"`
	CategoryID       *uuid.UUID      `json:"categoryId,omitempty"`
	ShopID           uuid.UUID       `json:"shopId"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// CreateProductInput is the validated payload to create a product.
type CreateProductInput struct {
	Name             string          `json:"name" validate:"required,max=255"`
	ShortDescription string          `json:"shortDescription" validate:"max=500"`
	LongDescription  string          `json:"longDescription"`
	Quantity         int             `json:"quantity" validate:"gte=0"`
	MainImage        string          `json:"mainImage"`
	Price            decimal.Decimal `json:"price"`
	CategoryID       *uuid.UUID      `json:"categoryId,omitempty"`
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name             *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	ShortDescription *string          `json:"shortDescription,omitempty" validate:"omitempty,max=500"`
	LongDescription  *string          `json:"longDescription,omitempty"`
	Quantity         *int             `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	MainImage        *string          `json:"mainImage,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	CategoryID       *uuid.UUID       `json:"categoryId,omitempty"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:               p.ID,
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		Quantity:         p.Quantity,
		MainImage:        p.MainImage,
		Price:            p.Price,
		CategoryID:       p.CategoryID,
		ShopID:           p.ShopID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func fromModels(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, *FromModel(&products[i]))
	}
	return out
}
