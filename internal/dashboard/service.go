package dashboard

import (
	"context"
	"fmt"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service exposes the dashboard read model.
type Service interface {
	GetInfo(ctx context.Context) (*InfoDTO, error)
}

type aggregateRepository interface {
	CountProducts(ctx context.Context) (int64, error)
	SumOrderTotals(ctx context.Context) (decimal.NullDecimal, error)
	RevenueByProduct(ctx context.Context) ([]ProductRevenueRow, error)
}

type activeUserCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

type service struct {
	repo  aggregateRepository
	users activeUserCounter
}

func NewService(repo aggregateRepository, users activeUserCounter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user counter required")
	}
	return &service{repo: repo, users: users}, nil
}

func (s *service) GetInfo(ctx context.Context) (*InfoDTO, error) {
	productsCount, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
	}

	usersCount, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count active users")
	}

	totals, err := s.repo.SumOrderTotals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum order totals")
	}

	rows, err := s.repo.RevenueByProduct(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revenue by product")
	}

	info := &InfoDTO{
		ProductsCount:          productsCount,
		UsersCount:             usersCount,
		TotalRevenue:           decimal.Zero,
		TotalRevenueByProducts: make([]ProductRevenueDTO, 0, len(rows)),
	}
	if totals.Valid {
		info.TotalRevenue = totals.Decimal
	}
	for _, row := range rows {
		info.TotalRevenueByProducts = append(info.TotalRevenueByProducts, productRevenue(row))
	}
	return info, nil
}

// productRevenue multiplies the summed item prices by the summed quantities.
// A missing or zero quantity sum counts as one.
func productRevenue(row ProductRevenueRow) ProductRevenueDTO {
	price := decimal.Zero
	if row.PriceSum.Valid {
		price = row.PriceSum.Decimal
	}
	quantity := int64(1)
	if row.QuantitySum != nil && *row.QuantitySum != 0 {
		quantity = *row.QuantitySum
	}

	dto := ProductRevenueDTO{
		ProductID:  row.ProductID,
		TotalPrice: price.Mul(decimal.NewFromInt(quantity)),
	}
	if row.ShopID.Valid {
		shopID := row.ShopID.UUID
		dto.ShopID = &shopID
	}
	return dto
}
