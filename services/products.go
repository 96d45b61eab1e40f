package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/vasanthreddy12/e-commerce/models"
	"github.com/vasanthreddy12/e-commerce/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductService struct {
	products repositories.ProductRepository
}

func NewProductService(stores repositories.Stores) *ProductService {
	return &ProductService{products: stores.Products}
}

type ProductPage struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int64            `json:"page"`
	Pages    int64            `json:"pages"`
}

func (s *ProductService) List(ctx context.Context, q models.ProductQuery) (ProductPage, error) {
	q.Page, q.Limit = normalizePage(q.Page, q.Limit)
	products, total, err := s.products.List(ctx, q)
	if err != nil {
		return ProductPage{}, fmt.Errorf("%w: list products: %v", ErrServerFault, err)
	}
	return ProductPage{Products: products, Total: total, Page: q.Page, Pages: pageCount(total, q.Limit)}, nil
}

func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	return product, productErr(err, "load product")
}

func (s *ProductService) Create(ctx context.Context, product models.Product) (models.Product, error) {
	product.ID = primitive.NilObjectID
	if err := s.products.Insert(ctx, &product); err != nil {
		return models.Product{}, fmt.Errorf("%w: insert product: %v", ErrServerFault, err)
	}
	log.Infow("product created", "product", product.ID.Hex(), "name", product.Name)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, update models.ProductUpdate) (models.Product, error) {
	product, err := s.products.Update(ctx, id, update)
	return product, productErr(err, "update product")
}

func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := productErr(s.products.Delete(ctx, id), "delete product"); err != nil {
		return err
	}
	log.Infow("product deleted", "product", id.Hex())
	return nil
}

func productErr(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return ErrProductNotFound
	default:
		return fmt.Errorf("%w: %s: %v", ErrServerFault, op, err)
	}
}
