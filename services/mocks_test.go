package services_test

import (
	"context"
	"sort"
	"time"

	"colheita-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// --- Mock ReservationRepository ---

type mockReservationRepo struct {
	reservations map[primitive.ObjectID]*models.Reservation
	insertErr    error
	updateErr    error
}

func newMockReservationRepo() *mockReservationRepo {
	return &mockReservationRepo{reservations: make(map[primitive.ObjectID]*models.Reservation)}
}

func (m *mockReservationRepo) Insert(_ context.Context, reservation *models.Reservation) (primitive.ObjectID, error) {
	if m.insertErr != nil {
		return primitive.NilObjectID, m.insertErr
	}
	id := primitive.NewObjectID()
	now := time.Now().UTC()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	stored := *reservation
	stored.ID = id
	m.reservations[id] = &stored
	return id, nil
}

func (m *mockReservationRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Reservation, error) {
	reservation, ok := m.reservations[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *reservation
	return &copied, nil
}

func (m *mockReservationRepo) FindByUser(_ context.Context, userID string) ([]models.Reservation, error) {
	return m.filter(func(r *models.Reservation) bool { return r.UserID == userID }), nil
}

func (m *mockReservationRepo) FindByFarmer(_ context.Context, farmerID string) ([]models.Reservation, error) {
	return m.filter(func(r *models.Reservation) bool { return r.FarmerID == farmerID }), nil
}

func (m *mockReservationRepo) FindByProduct(_ context.Context, productID primitive.ObjectID) ([]models.Reservation, error) {
	return m.filter(func(r *models.Reservation) bool { return r.ProductID == productID }), nil
}

func (m *mockReservationRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.ReservationStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	reservation, ok := m.reservations[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	reservation.Status = status
	reservation.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockReservationRepo) filter(keep func(*models.Reservation) bool) []models.Reservation {
	var result []models.Reservation
	for _, r := range m.reservations {
		if keep(r) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

// --- Mock ProductRepository ---

type mockProductRepo struct {
	products map[primitive.ObjectID]*models.Product
	updates  []bson.M
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[primitive.ObjectID]*models.Product)}
}

func (m *mockProductRepo) add(product *models.Product) primitive.ObjectID {
	id := primitive.NewObjectID()
	stored := *product
	stored.ID = id
	m.products[id] = &stored
	return id
}

func (m *mockProductRepo) Create(_ context.Context, product *models.Product) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	return m.add(product), nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *product
	return &copied, nil
}

func (m *mockProductRepo) FindByFarm(_ context.Context, farmID primitive.ObjectID) ([]models.Product, error) {
	var result []models.Product
	for _, p := range m.products {
		if p.FarmID == farmID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProductRepo) FindAvailable(_ context.Context) ([]models.Product, error) {
	var result []models.Product
	for _, p := range m.products {
		if p.IsAvailable {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProductRepo) Update(_ context.Context, id primitive.ObjectID, updates bson.M) error {
	product, ok := m.products[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	m.updates = append(m.updates, updates)
	if name, ok := updates["name"].(string); ok {
		product.Name = name
	}
	if quantity, ok := updates["quantity"].(float64); ok {
		product.Quantity = quantity
	}
	if available, ok := updates["isAvailable"].(bool); ok {
		product.IsAvailable = available
	}
	if image, ok := updates["image"].(models.ProductImage); ok {
		product.Image = image
	}
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.products[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) DecrementQuantity(_ context.Context, id primitive.ObjectID, amount float64) (bool, error) {
	product, ok := m.products[id]
	if !ok || product.Quantity < amount {
		return false, nil
	}
	product.Quantity -= amount
	return true, nil
}

func (m *mockProductRepo) MarkUnavailableIfDepleted(_ context.Context, id primitive.ObjectID) error {
	product, ok := m.products[id]
	if !ok {
		return nil
	}
	if product.Quantity == 0 {
		product.IsAvailable = false
	}
	return nil
}

// --- Mock FarmRepository ---

type mockFarmRepo struct {
	farms map[primitive.ObjectID]*models.Farm
}

func newMockFarmRepo() *mockFarmRepo {
	return &mockFarmRepo{farms: make(map[primitive.ObjectID]*models.Farm)}
}

func (m *mockFarmRepo) add(farm *models.Farm) primitive.ObjectID {
	id := primitive.NewObjectID()
	stored := *farm
	stored.ID = id
	m.farms[id] = &stored
	return id
}

func (m *mockFarmRepo) Create(_ context.Context, farm *models.Farm) (primitive.ObjectID, error) {
	return m.add(farm), nil
}

func (m *mockFarmRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Farm, error) {
	farm, ok := m.farms[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *farm
	return &copied, nil
}

func (m *mockFarmRepo) FindByOwner(_ context.Context, ownerID string) ([]models.Farm, error) {
	var result []models.Farm
	for _, f := range m.farms {
		if f.OwnerID == ownerID {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (m *mockFarmRepo) FindAll(_ context.Context) ([]models.Farm, error) {
	var result []models.Farm
	for _, f := range m.farms {
		result = append(result, *f)
	}
	return result, nil
}

func (m *mockFarmRepo) Update(_ context.Context, id primitive.ObjectID, updates bson.M) error {
	farm, ok := m.farms[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if name, ok := updates["name"].(string); ok {
		farm.Name = name
	}
	if phone, ok := updates["phone"].(string); ok {
		farm.Phone = phone
	}
	if description, ok := updates["description"].(string); ok {
		farm.Description = description
	}
	if ownerID, ok := updates["ownerId"].(string); ok {
		farm.OwnerID = ownerID
	}
	return nil
}

func (m *mockFarmRepo) Upsert(_ context.Context, id primitive.ObjectID, updates bson.M) error {
	if _, ok := m.farms[id]; !ok {
		m.farms[id] = &models.Farm{ID: id}
	}
	return m.Update(context.Background(), id, updates)
}

func (m *mockFarmRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.farms[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.farms, id)
	return nil
}

// --- Mock NotificationService ---

type mockNotifier struct {
	created []string
	decided []string
}

func (m *mockNotifier) ListByFarm(_ context.Context, _ string) ([]models.Notification, error) {
	return nil, nil
}

func (m *mockNotifier) MarkAsRead(_ context.Context, _ string) error { return nil }

func (m *mockNotifier) NotifyReservationCreated(_ context.Context, reservation *models.Reservation, _ string) {
	m.created = append(m.created, reservation.ID.Hex())
}

func (m *mockNotifier) NotifyReservationDecided(_ context.Context, reservation *models.Reservation) {
	m.decided = append(m.decided, reservation.ID.Hex())
}

// --- Mock SNS Publisher ---

type mockSNSPublisher struct {
	published []string
}

func (m *mockSNSPublisher) Publish(_ context.Context, topicArn string, _ []byte) error {
	m.published = append(m.published, topicArn)
	return nil
}

// --- Mock ProductImageService ---

type mockImageService struct {
	image models.ProductImage
	calls []string
}

func (m *mockImageService) GetImageByName(_ context.Context, productName string) models.ProductImage {
	m.calls = append(m.calls, productName)
	return m.image
}
