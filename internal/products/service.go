package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/validation"
	"github.com/google/uuid"
)

const forbiddenMessage = "You can not perform this action"

// Actor identifies the authenticated caller of a mutating operation.
type Actor struct {
	UserID uuid.UUID
	Role   enums.Role
}

// Service exposes shop product management operations.
type Service interface {
	CreateProduct(ctx context.Context, actor Actor, input CreateProductInput) (*ProductDTO, error)
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListMyProducts(ctx context.Context, actor Actor) ([]ProductDTO, error)
	UpdateProduct(ctx context.Context, actor Actor, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, actor Actor, id uuid.UUID) error
}

type productRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListActive(ctx context.Context) ([]models.Product, error)
	ListActiveByShop(ctx context.Context, shopID uuid.UUID) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo productRepository
}

// NewService constructs a product service instance.
func NewService(repo productRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateProduct(ctx context.Context, actor Actor, input CreateProductInput) (*ProductDTO, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	created, err := s.repo.Create(ctx, &models.Product{
		Name:             input.Name,
		ShortDescription: input.ShortDescription,
		LongDescription:  input.LongDescription,
		Quantity:         input.Quantity,
		MainImage:        input.MainImage,
		Price:            input.Price,
		CategoryID:       input.CategoryID,
		ShopID:           actor.UserID,
		Status:           true,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return FromModel(created), nil
}

func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return fromModels(products), nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(product), nil
}

func (s *service) ListMyProducts(ctx context.Context, actor Actor) ([]ProductDTO, error) {
	products, err := s.repo.ListActiveByShop(ctx, actor.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list shop products")
	}
	return fromModels(products), nil
}

// UpdateProduct applies the provided fields. Only the owning shop or an ADMIN may edit.
func (s *service) UpdateProduct(ctx context.Context, actor Actor, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	product, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkPermission(product, actor); err != nil {
		return nil, err
	}

	applyUpdateToProduct(product, input)
	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return FromModel(updated), nil
}

// DeleteProduct removes a product from every listing by clearing its status.
func (s *service) DeleteProduct(ctx context.Context, actor Actor, id uuid.UUID) error {
	product, err := s.loadActive(ctx, id)
	if err != nil {
		return err
	}
	if err := checkPermission(product, actor); err != nil {
		return err
	}

	removed, err := s.repo.SoftDelete(ctx, product.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	if !removed {
		return notFound(id)
	}
	return nil
}

func (s *service) loadActive(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, notFound(id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}

func notFound(id uuid.UUID) error {
	return pkgerrors.Newf(pkgerrors.CodeNotFound, "Product has ID: %s not found", id)
}

func checkPermission(product *models.Product, actor Actor) error {
	if actor.Role == enums.RoleAdmin || product.ShopID == actor.UserID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, forbiddenMessage)
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.ShortDescription != nil {
		product.ShortDescription = *input.ShortDescription
	}
	if input.LongDescription != nil {
		product.LongDescription = *input.LongDescription
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.MainImage != nil {
		product.MainImage = *input.MainImage
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
}
