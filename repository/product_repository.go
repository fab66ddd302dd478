package repository

import (
	"context"
	"time"

	"colheita-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByFarm(ctx context.Context, farmID primitive.ObjectID) ([]models.Product, error)
	FindAvailable(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DecrementQuantity(ctx context.Context, id primitive.ObjectID, amount float64) (bool, error)
	MarkUnavailableIfDepleted(ctx context.Context, id primitive.ObjectID) error
}

// MongoProductRepository implements ProductRepository over a MongoDB
// collection.
type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		collection: db.Collection("products"),
	}
}

func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *MongoProductRepository) FindByFarm(ctx context.Context, farmID primitive.ObjectID) ([]models.Product, error) {
	return r.find(ctx, bson.M{"farmId": farmID})
}

func (r *MongoProductRepository) FindAvailable(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{"isAvailable": true})
}

// Update applies a partial update with merge semantics: only the given
// fields are touched.
func (r *MongoProductRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error {
	updates["updatedAt"] = time.Now().UTC()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DecrementQuantity conditionally deducts amount from the product's
// quantity. The filter requires quantity >= amount so two concurrent
// approvals cannot drive the stock negative; returns false when the
// condition did not hold at write time.
func (r *MongoProductRepository) DecrementQuantity(ctx context.Context, id primitive.ObjectID, amount float64) (bool, error) {
	filter := bson.M{"_id": id, "quantity": bson.M{"$gte": amount}}
	update := bson.M{
		"$inc": bson.M{"quantity": -amount},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

// MarkUnavailableIfDepleted flips isAvailable to false when the quantity
// has reached exactly zero.
func (r *MongoProductRepository) MarkUnavailableIfDepleted(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "quantity": 0}
	update := bson.M{"$set": bson.M{
		"isAvailable": false,
		"updatedAt":   time.Now().UTC(),
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

func (r *MongoProductRepository) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
