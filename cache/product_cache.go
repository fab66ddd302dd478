package cache

import (
	"context"
	"encoding/json"
	"time"

	"colheita-backend/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	ProductCachePrefix      = "product:detail:"
	ProductImageCachePrefix = "product:image:"

	DefaultCacheTTL = 15 * time.Minute
	ImageCacheTTL   = 24 * time.Hour
)

// CacheManager handles all Redis caching operations. A nil redis client
// disables every operation, so callers never branch on cache presence.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(redis *redis.Client) *CacheManager {
	return &CacheManager{
		redis: redis,
		ttl:   DefaultCacheTTL,
	}
}

// GetProduct retrieves a cached product detail.
func (cm *CacheManager) GetProduct(ctx context.Context, id string) (*models.Product, bool) {
	if cm.redis == nil {
		return nil, false
	}

	cachedData, err := cm.redis.Get(ctx, ProductCachePrefix+id).Result()
	if err != nil {
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(cachedData), &product); err != nil {
		zap.L().Warn("Failed to unmarshal cached product", zap.Error(err))
		return nil, false
	}

	return &product, true
}

// SetProductAsync caches a product detail asynchronously.
func (cm *CacheManager) SetProductAsync(id string, product *models.Product) {
	if cm.redis == nil {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		jsonBytes, err := json.Marshal(product)
		if err != nil {
			zap.L().Warn("Failed to marshal product for cache", zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, ProductCachePrefix+id, jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product", zap.Error(err))
		}
	}()
}

// InvalidateProduct drops the cached detail for a product after a write.
func (cm *CacheManager) InvalidateProduct(ctx context.Context, id string) {
	if cm.redis == nil {
		return
	}

	if err := cm.redis.Del(ctx, ProductCachePrefix+id).Err(); err != nil {
		zap.L().Warn("Failed to invalidate product cache", zap.String("id", id), zap.Error(err))
	}
}

// GetProductImage retrieves a cached image lookup keyed by normalized
// product name.
func (cm *CacheManager) GetProductImage(ctx context.Context, normalizedName string) (*models.ProductImage, bool) {
	if cm.redis == nil {
		return nil, false
	}

	cachedData, err := cm.redis.Get(ctx, ProductImageCachePrefix+normalizedName).Result()
	if err != nil {
		return nil, false
	}

	var image models.ProductImage
	if err := json.Unmarshal([]byte(cachedData), &image); err != nil {
		zap.L().Warn("Failed to unmarshal cached product image", zap.Error(err))
		return nil, false
	}

	return &image, true
}

// SetProductImage caches an image lookup result.
func (cm *CacheManager) SetProductImage(ctx context.Context, normalizedName string, image *models.ProductImage) {
	if cm.redis == nil {
		return
	}

	jsonBytes, err := json.Marshal(image)
	if err != nil {
		zap.L().Warn("Failed to marshal product image for cache", zap.Error(err))
		return
	}

	if err := cm.redis.Set(ctx, ProductImageCachePrefix+normalizedName, jsonBytes, ImageCacheTTL).Err(); err != nil {
		zap.L().Warn("Failed to cache product image", zap.Error(err))
	}
}
