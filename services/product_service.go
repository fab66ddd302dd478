package services

import (
	"context"
	"errors"

	"colheita-backend/apperrors"
	"colheita-backend/cache"
	"colheita-backend/models"
	"colheita-backend/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ProductService defines the interface for product business logic.
type ProductService interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	ListByFarm(ctx context.Context, farmID string) ([]models.Product, error)
	ListAvailable(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type productServiceImpl struct {
	products repository.ProductRepository
	farms    repository.FarmRepository
	images   ProductImageService
	cache    *cache.CacheManager
	logger   *zap.Logger
}

func NewProductService(
	products repository.ProductRepository,
	farms repository.FarmRepository,
	images ProductImageService,
	cacheManager *cache.CacheManager,
	logger *zap.Logger,
) ProductService {
	return &productServiceImpl{
		products: products,
		farms:    farms,
		images:   images,
		cache:    cacheManager,
		logger:   logger,
	}
}

// Create lists a new product under a farm, resolving a display image
// from the product name and denormalizing the farm's name and phone.
func (s *productServiceImpl) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	farmID, err := primitive.ObjectIDFromHex(req.FarmID)
	if err != nil {
		return nil, apperrors.Validation("Invalid farm id", err)
	}

	farm, err := s.farms.FindByID(ctx, farmID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Farm not found")
		}
		return nil, apperrors.Storage("Failed to load farm", err)
	}

	product := &models.Product{
		FarmID:      farmID,
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		IsAvailable: true,
		Image:       s.images.GetImageByName(ctx, req.Name),
		FarmName:    farm.Name,
		FarmerPhone: farm.Phone,
		ExpiresAt:   req.ExpiresAt,
	}

	id, err := s.products.Create(ctx, product)
	if err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, apperrors.Storage("Failed to create product", err)
	}
	product.ID = id

	s.logger.Info("Product created",
		zap.String("id", id.Hex()),
		zap.String("name", product.Name),
		zap.String("farm", farm.Name),
	)
	return product, nil
}

func (s *productServiceImpl) GetByID(ctx context.Context, id string) (*models.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid product id", err)
	}

	if cached, ok := s.cache.GetProduct(ctx, id); ok {
		return cached, nil
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Storage("Failed to load product", err)
	}

	s.cache.SetProductAsync(id, product)
	return product, nil
}

func (s *productServiceImpl) ListByFarm(ctx context.Context, farmID string) ([]models.Product, error) {
	fid, err := primitive.ObjectIDFromHex(farmID)
	if err != nil {
		return nil, apperrors.Validation("Invalid farm id", err)
	}

	products, err := s.products.FindByFarm(ctx, fid)
	if err != nil {
		return nil, apperrors.Storage("Failed to list farm products", err)
	}
	return products, nil
}

func (s *productServiceImpl) ListAvailable(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.FindAvailable(ctx)
	if err != nil {
		return nil, apperrors.Storage("Failed to list available products", err)
	}
	return products, nil
}

// Update applies a partial update with merge semantics. When the name
// changes and UpdateImage is set, a fresh image is resolved for the new
// name.
func (s *productServiceImpl) Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid product id", err)
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
		if req.UpdateImage {
			updates["image"] = s.images.GetImageByName(ctx, *req.Name)
		}
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.IsAvailable != nil {
		updates["isAvailable"] = *req.IsAvailable
	}
	if req.ExpiresAt != nil {
		updates["expiresAt"] = *req.ExpiresAt
	}

	if len(updates) == 0 {
		return nil, apperrors.Validation("No fields to update", nil)
	}

	if err := s.products.Update(ctx, productID, updates); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Storage("Failed to update product", err)
	}

	s.cache.InvalidateProduct(ctx, id)

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, apperrors.Storage("Failed to reload product", err)
	}
	return product, nil
}

func (s *productServiceImpl) Delete(ctx context.Context, id string) error {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.Validation("Invalid product id", err)
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("Product not found")
		}
		return apperrors.Storage("Failed to delete product", err)
	}

	s.cache.InvalidateProduct(ctx, id)
	s.logger.Info("Product deleted", zap.String("id", id))
	return nil
}
