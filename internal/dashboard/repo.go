package dashboard

import (
	"context"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const revenueByProductQuery = `
SELECT oi.product_id AS product_id,
       p.shop_id AS shop_id,
       SUM(oi.price) AS price_sum,
       SUM(oi.quantity) AS quantity_sum
FROM order_items oi
LEFT JOIN products p ON p.id = oi.product_id
GROUP BY oi.product_id, p.shop_id
ORDER BY price_sum DESC, oi.product_id
`

// ProductRevenueRow is one order_items group keyed by product.
type ProductRevenueRow struct {
	ProductID   uuid.UUID           `gorm:"column:product_id"`
	ShopID      uuid.NullUUID       `gorm:"column:shop_id"`
	PriceSum    decimal.NullDecimal `gorm:"column:price_sum"`
	QuantitySum *int64              `gorm:"column:quantity_sum"`
}

// Repository runs the read-only aggregate queries behind the dashboard.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountProducts counts every product row, removed ones included.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumOrderTotals returns the sum of all order totals; Valid is false when there are no orders.
func (r *Repository) SumOrderTotals(ctx context.Context) (decimal.NullDecimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("SUM(total_price)").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return total, nil
}

// RevenueByProduct groups order items per product, highest price sum first.
func (r *Repository) RevenueByProduct(ctx context.Context) ([]ProductRevenueRow, error) {
	var rows []ProductRevenueRow
	if err := r.db.WithContext(ctx).Raw(revenueByProductQuery).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
