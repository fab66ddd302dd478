package services

import (
	"context"

	"colheita-backend/cache"
	"colheita-backend/models"
	"colheita-backend/repository"

	"go.uber.org/zap"
)

// ProductImageService resolves a display image for a product name,
// checking the redis cache and the persisted lookup collection before
// calling the external search, and persisting fresh results for reuse.
type ProductImageService interface {
	GetImageByName(ctx context.Context, productName string) models.ProductImage
}

type productImageServiceImpl struct {
	images   repository.ProductImageRepository
	searcher ImageSearcher
	cache    *cache.CacheManager
	logger   *zap.Logger
}

func NewProductImageService(
	images repository.ProductImageRepository,
	searcher ImageSearcher,
	cacheManager *cache.CacheManager,
	logger *zap.Logger,
) ProductImageService {
	return &productImageServiceImpl{
		images:   images,
		searcher: searcher,
		cache:    cacheManager,
		logger:   logger,
	}
}

// GetImageByName never fails: when every lookup path is exhausted it
// returns a placeholder image for the name.
func (s *productImageServiceImpl) GetImageByName(ctx context.Context, productName string) models.ProductImage {
	if productName == "" {
		return PlaceholderImage(productName)
	}

	normalized := NormalizeProductName(productName)

	if cached, ok := s.cache.GetProductImage(ctx, normalized); ok {
		return *cached
	}

	if record, err := s.images.FindByNormalizedName(ctx, normalized); err == nil {
		s.cache.SetProductImage(ctx, normalized, &record.Image)
		return record.Image
	}

	results, err := s.searcher.SearchProductImages(ctx, productName)
	if err != nil || len(results) == 0 {
		if err != nil {
			s.logger.Warn("Image search failed, using placeholder",
				zap.String("product", productName),
				zap.Error(err),
			)
		}
		return PlaceholderImage(productName)
	}

	best := results[0]
	record := &models.ProductImageRecord{
		NormalizedName: normalized,
		OriginalName:   productName,
		Image:          best,
	}
	if err := s.images.Save(ctx, record); err != nil {
		s.logger.Warn("Failed to persist product image", zap.String("product", productName), zap.Error(err))
	}
	s.cache.SetProductImage(ctx, normalized, &best)

	return best
}
