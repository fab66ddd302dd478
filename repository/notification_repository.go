package repository

import (
	"context"
	"time"

	"colheita-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationRepository defines the interface for notification data access.
type NotificationRepository interface {
	Insert(ctx context.Context, notification *models.Notification) error
	FindByFarm(ctx context.Context, farmID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id primitive.ObjectID) error
}

// MongoNotificationRepository implements NotificationRepository over a
// MongoDB collection.
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{
		collection: db.Collection("notifications"),
	}
}

func (r *MongoNotificationRepository) Insert(ctx context.Context, notification *models.Notification) error {
	notification.CreatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

func (r *MongoNotificationRepository) FindByFarm(ctx context.Context, farmID string) ([]models.Notification, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"farmId": farmID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *MongoNotificationRepository) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
