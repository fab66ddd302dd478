package services_test

import (
	"context"
	"testing"

	"colheita-backend/apperrors"
	"colheita-backend/cache"
	"colheita-backend/models"
	"colheita-backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestProductService(products *mockProductRepo, farms *mockFarmRepo, images *mockImageService) services.ProductService {
	logger, _ := zap.NewDevelopment()
	return services.NewProductService(products, farms, images, cache.NewCacheManager(nil), logger)
}

func TestCreateProduct_DenormalizesFarmAndImage(t *testing.T) {
	products := newMockProductRepo()
	farms := newMockFarmRepo()
	images := &mockImageService{image: models.ProductImage{URL: "https://example.com/alface.jpg", Alt: "Alface"}}
	svc := newTestProductService(products, farms, images)

	farmID := farms.add(&models.Farm{
		OwnerID: "farmer-1",
		Name:    "Sítio Boa Vista",
		Phone:   "+55 11 99999-0000",
	})

	product, err := svc.Create(context.Background(), &models.CreateProductRequest{
		FarmID:   farmID.Hex(),
		Name:     "Alface",
		Quantity: 20,
		Unit:     models.UnitKilogram,
	})
	require.NoError(t, err)

	assert.False(t, product.ID.IsZero())
	assert.True(t, product.IsAvailable)
	assert.Equal(t, "Sítio Boa Vista", product.FarmName)
	assert.Equal(t, "+55 11 99999-0000", product.FarmerPhone)
	assert.Equal(t, "https://example.com/alface.jpg", product.Image.URL)
	assert.Equal(t, []string{"Alface"}, images.calls)
}

func TestCreateProduct_FarmNotFound(t *testing.T) {
	svc := newTestProductService(newMockProductRepo(), newMockFarmRepo(), &mockImageService{})

	_, err := svc.Create(context.Background(), &models.CreateProductRequest{
		FarmID:   primitive.NewObjectID().Hex(),
		Name:     "Alface",
		Quantity: 20,
		Unit:     models.UnitKilogram,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateProduct_MergesOnlyGivenFields(t *testing.T) {
	products := newMockProductRepo()
	svc := newTestProductService(products, newMockFarmRepo(), &mockImageService{})

	productID := products.add(&models.Product{Name: "Tomate", Quantity: 5, IsAvailable: true})

	newQuantity := 8.0
	_, err := svc.Update(context.Background(), productID.Hex(), &models.UpdateProductRequest{
		Quantity: &newQuantity,
	})
	require.NoError(t, err)

	require.Len(t, products.updates, 1)
	updates := products.updates[0]
	assert.Contains(t, updates, "quantity")
	assert.NotContains(t, updates, "name", "untouched fields must not appear in the update")
	assert.NotContains(t, updates, "isAvailable")
}

func TestUpdateProduct_NameChangeRefreshesImage(t *testing.T) {
	products := newMockProductRepo()
	images := &mockImageService{image: models.ProductImage{URL: "https://example.com/cenoura.jpg"}}
	svc := newTestProductService(products, newMockFarmRepo(), images)

	productID := products.add(&models.Product{Name: "Tomate", Quantity: 5})

	newName := "Cenoura"
	updated, err := svc.Update(context.Background(), productID.Hex(), &models.UpdateProductRequest{
		Name:        &newName,
		UpdateImage: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Cenoura"}, images.calls)
	assert.Equal(t, "https://example.com/cenoura.jpg", updated.Image.URL)
}

func TestUpdateProduct_NameChangeWithoutFlagKeepsImage(t *testing.T) {
	products := newMockProductRepo()
	images := &mockImageService{}
	svc := newTestProductService(products, newMockFarmRepo(), images)

	productID := products.add(&models.Product{Name: "Tomate", Image: models.ProductImage{URL: "https://example.com/old.jpg"}})

	newName := "Cenoura"
	updated, err := svc.Update(context.Background(), productID.Hex(), &models.UpdateProductRequest{
		Name: &newName,
	})
	require.NoError(t, err)

	assert.Empty(t, images.calls)
	assert.Equal(t, "https://example.com/old.jpg", updated.Image.URL)
}

func TestUpdateProduct_EmptyRequestRejected(t *testing.T) {
	products := newMockProductRepo()
	svc := newTestProductService(products, newMockFarmRepo(), &mockImageService{})

	productID := products.add(&models.Product{Name: "Tomate"})

	_, err := svc.Update(context.Background(), productID.Hex(), &models.UpdateProductRequest{})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := newTestProductService(newMockProductRepo(), newMockFarmRepo(), &mockImageService{})

	_, err := svc.GetByID(context.Background(), primitive.NewObjectID().Hex())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListAvailable_FiltersSoldOut(t *testing.T) {
	products := newMockProductRepo()
	svc := newTestProductService(products, newMockFarmRepo(), &mockImageService{})

	products.add(&models.Product{Name: "Tomate", IsAvailable: true})
	products.add(&models.Product{Name: "Alface", IsAvailable: false})

	available, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Tomate", available[0].Name)
}
