package dashboard

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InfoDTO is the shop-wide summary shown on the admin dashboard.
type InfoDTO struct {
	ProductsCount          int64               `json:"productsCount"`
	UsersCount             int64               `json:"usersCount"`
	TotalRevenue           decimal.Decimal     `json:"totalRevenue"`
	TotalRevenueByProducts []ProductRevenueDTO `json:"totalRevenueByProducts"`
}

// ProductRevenueDTO is the revenue attributed to one product. ShopID is nil
// when the product row no longer exists.
type ProductRevenueDTO struct {
	ShopID     *uuid.UUID      `json:"shopId"`
	ProductID  uuid.UUID       `json:"productId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}
