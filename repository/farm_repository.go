package repository

import (
	"context"
	"time"

	"colheita-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FarmRepository defines the interface for farm data access.
type FarmRepository interface {
	Create(ctx context.Context, farm *models.Farm) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Farm, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.Farm, error)
	FindAll(ctx context.Context) ([]models.Farm, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error
	Upsert(ctx context.Context, id primitive.ObjectID, updates bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoFarmRepository implements FarmRepository over a MongoDB collection.
type MongoFarmRepository struct {
	collection *mongo.Collection
}

func NewMongoFarmRepository(db *mongo.Database) *MongoFarmRepository {
	return &MongoFarmRepository{
		collection: db.Collection("farms"),
	}
}

func (r *MongoFarmRepository) Create(ctx context.Context, farm *models.Farm) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	farm.CreatedAt = now
	farm.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, farm)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoFarmRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Farm, error) {
	var farm models.Farm
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&farm)
	if err != nil {
		return nil, err
	}
	return &farm, nil
}

func (r *MongoFarmRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Farm, error) {
	return r.find(ctx, bson.M{"ownerId": ownerID})
}

func (r *MongoFarmRepository) FindAll(ctx context.Context) ([]models.Farm, error) {
	return r.find(ctx, bson.M{})
}

// Update applies a partial update with merge semantics.
func (r *MongoFarmRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error {
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

// Upsert merges the given fields into the farm document, creating it
// when absent.
func (r *MongoFarmRepository) Upsert(ctx context.Context, id primitive.ObjectID, updates bson.M) error {
	updates["updatedAt"] = time.Now().UTC()
	update := bson.M{
		"$set":         updates,
		"$setOnInsert": bson.M{"createdAt": time.Now().UTC()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	return err
}

func (r *MongoFarmRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoFarmRepository) find(ctx context.Context, filter bson.M) ([]models.Farm, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var farms []models.Farm
	if err = cursor.All(ctx, &farms); err != nil {
		return nil, err
	}
	return farms, nil
}
