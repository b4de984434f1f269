package service

import (
	"context"
	"strings"

	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *model.Product) error
	UpdateProduct(ctx context.Context, id uint, req *ProductUpdate) (bool, error)
	DeleteProduct(ctx context.Context, id uint) error
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductByID(ctx context.Context, id uint) (*model.Product, error)
}

// ProductUpdate changes only the fields that are set. An empty Barcode
// removes the product's barcode.
type ProductUpdate struct {
	Barcode *string
	Name    *string
	Price   *decimal.Decimal
	Stock   *int
}

type productService struct {
	productRepo repository.ProductRepository
	log         *zap.Logger
}

func NewProductService(pRepo repository.ProductRepository, log *zap.Logger) ProductService {
	return &productService{
		productRepo: pRepo,
		log:         log.Named("product"),
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *model.Product) error {
	// 1. Normalize and validate
	req.Name = strings.TrimSpace(req.Name)
	req.Barcode = optional(req.Barcode)
	if err := validate(req); err != nil {
		return err
	}

	// 2. Save; a unique index guards the barcode
	if err := s.productRepo.Create(ctx, req); err != nil {
		return translate(err, "barcode")
	}

	s.log.Info("product created", zap.Uint("product_id", req.ID), zap.String("barcode", req.BarcodeOrNA()))
	return nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uint, req *ProductUpdate) (bool, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return false, translate(err, "product")
	}

	fields := map[string]interface{}{}
	if req.Barcode != nil {
		product.Barcode = optional(req.Barcode)
		fields["barcode"] = product.Barcode
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		product.Name = strings.TrimSpace(*req.Name)
		fields["name"] = product.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
		fields["price"] = product.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
		fields["stock"] = product.Stock
	}
	if len(fields) == 0 {
		return false, nil
	}
	if err := validate(product); err != nil {
		return false, err
	}

	if err := s.productRepo.Update(ctx, id, fields); err != nil {
		return false, translate(err, "barcode")
	}
	s.log.Info("product updated", zap.Uint("product_id", id))
	return true, nil
}

// DeleteProduct never checks sale history; old lines keep the dangling id
func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return translate(err, "product")
	}
	s.log.Info("product deleted", zap.Uint("product_id", id))
	return nil
}

func (s *productService) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.FindAll(ctx)
}

func (s *productService) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "product")
	}
	return product, nil
}
