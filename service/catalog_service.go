package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"store-service/cache"
	"store-service/kafka"
	"store-service/model"
	"store-service/repository"
)

// CatalogService owns categories and products. Product reads go through the
// cache; every write invalidates it and emits an event.
type CatalogService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	cache      cache.Cache
	events     kafka.Publisher
	logger     *zap.Logger
	group      singleflight.Group
}

func NewCatalogService(categories repository.CategoryRepository, products repository.ProductRepository, c cache.Cache, events kafka.Publisher, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		categories: categories,
		products:   products,
		cache:      c,
		events:     events,
		logger:     logger,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*model.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, category *model.Category) error {
	category.CreatedAt = time.Now()
	if err := s.categories.Create(ctx, category); err != nil {
		return err
	}
	s.events.PublishCategoryCreatedEvent(map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, in *model.Category) (*model.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = in.Name
	category.Desc = in.Desc
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	s.events.PublishCategoryUpdatedEvent(map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, category); err != nil {
		return err
	}
	s.events.PublishCategoryDeletedEvent(map[string]interface{}{
		"category_id": category.ID,
	})
	return nil
}

func (s *CatalogService) ListProducts(ctx context.Context, categoryID *uint) ([]model.Product, error) {
	return s.products.List(ctx, categoryID)
}

// GetProduct serves from the cache when it can. Concurrent misses for the
// same product share a single database read.
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.cache.GetProduct(ctx, id)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("product cache read failed", zap.Uint("product_id", id), zap.Error(err))
	}

	v, err, _ := s.group.Do(strconv.FormatUint(uint64(id), 10), func() (interface{}, error) {
		product, err := s.products.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		go func() {
			if err := s.cache.SetProduct(context.Background(), product); err != nil {
				s.logger.Warn("product cache write failed", zap.Uint("product_id", id), zap.Error(err))
			}
		}()
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Product), nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *model.Product) error {
	if _, err := s.categories.GetByID(ctx, product.CategoryID); err != nil {
		return err
	}
	product.CreatedAt = time.Now()
	if err := s.products.Create(ctx, product); err != nil {
		return err
	}
	s.events.PublishProductCreatedEvent(map[string]interface{}{
		"product_id":  product.ID,
		"name":        product.Name,
		"price":       product.Price,
		"stock":       product.Stock,
		"category_id": product.CategoryID,
	})
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in *model.Product) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != product.CategoryID {
		if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
			return nil, err
		}
	}
	product.Name = in.Name
	product.Desc = in.Desc
	product.Price = in.Price
	product.Stock = in.Stock
	product.CategoryID = in.CategoryID
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	s.dropProduct(ctx, id)
	s.events.PublishProductUpdatedEvent(map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"price":      product.Price,
		"stock":      product.Stock,
	})
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, product); err != nil {
		return err
	}
	s.dropProduct(ctx, id)
	s.events.PublishProductDeletedEvent(map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

// UpdateStock replaces a product's stock with the requested value. The only
// check is that a value was sent at all; it is applied as given, negative or
// not.
func (s *CatalogService) UpdateStock(ctx context.Context, id uint, requested *int) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if requested == nil {
		return nil, ErrStockNotProvided
	}
	product.Stock = *requested
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	s.dropProduct(ctx, id)
	s.events.PublishStockUpdatedEvent(map[string]interface{}{
		"product_id": product.ID,
		"stock":      product.Stock,
	})
	s.logger.Info("stock updated", zap.Uint("product_id", product.ID), zap.Int("stock", product.Stock))
	return product, nil
}

func (s *CatalogService) dropProduct(ctx context.Context, id uint) {
	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		s.logger.Warn("product cache invalidation failed", zap.Uint("product_id", id), zap.Error(err))
	}
}
