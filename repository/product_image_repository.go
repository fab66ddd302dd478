package repository

import (
	"context"
	"time"

	"colheita-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductImageRepository persists resolved image lookups so repeated
// products with the same name skip the external search.
type ProductImageRepository interface {
	Save(ctx context.Context, record *models.ProductImageRecord) error
	FindByNormalizedName(ctx context.Context, normalizedName string) (*models.ProductImageRecord, error)
}

// MongoProductImageRepository implements ProductImageRepository over a
// MongoDB collection keyed by normalized product name.
type MongoProductImageRepository struct {
	collection *mongo.Collection
}

func NewMongoProductImageRepository(db *mongo.Database) *MongoProductImageRepository {
	return &MongoProductImageRepository{
		collection: db.Collection("productImages"),
	}
}

// Save upserts the record under its normalized name.
func (r *MongoProductImageRepository) Save(ctx context.Context, record *models.ProductImageRecord) error {
	record.CreatedAt = time.Now().UTC()
	filter := bson.M{"_id": record.NormalizedName}
	update := bson.M{"$set": bson.M{
		"originalName": record.OriginalName,
		"image":        record.Image,
		"createdAt":    record.CreatedAt,
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *MongoProductImageRepository) FindByNormalizedName(ctx context.Context, normalizedName string) (*models.ProductImageRecord, error) {
	var record models.ProductImageRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": normalizedName}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
