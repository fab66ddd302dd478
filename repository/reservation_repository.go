package repository

import (
	"context"
	"sort"
	"time"

	"colheita-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ReservationRepository defines the interface for reservation data access.
// List methods return reservations ordered by createdAt descending; if the
// store cannot perform the ordered query, the implementation falls back to
// an unordered fetch plus an in-process sort, transparently to the caller.
type ReservationRepository interface {
	Insert(ctx context.Context, reservation *models.Reservation) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error)
	FindByUser(ctx context.Context, userID string) ([]models.Reservation, error)
	FindByFarmer(ctx context.Context, farmerID string) ([]models.Reservation, error)
	FindByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ReservationStatus) error
}

// MongoReservationRepository implements ReservationRepository over a
// MongoDB collection.
type MongoReservationRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewMongoReservationRepository(db *mongo.Database, logger *zap.Logger) *MongoReservationRepository {
	return &MongoReservationRepository{
		collection: db.Collection("reservations"),
		logger:     logger,
	}
}

// Insert persists a new reservation with server-assigned timestamps and
// returns the generated id.
func (r *MongoReservationRepository) Insert(ctx context.Context, reservation *models.Reservation) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, reservation)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoReservationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation)
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *MongoReservationRepository) FindByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	return r.findWithOrderFallback(ctx, bson.M{"userId": userID})
}

func (r *MongoReservationRepository) FindByFarmer(ctx context.Context, farmerID string) ([]models.Reservation, error) {
	return r.findWithOrderFallback(ctx, bson.M{"farmerId": farmerID})
}

func (r *MongoReservationRepository) FindByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Reservation, error) {
	return r.findWithOrderFallback(ctx, bson.M{"productId": productID})
}

// UpdateStatus sets the status and refreshes updatedAt. Returns
// mongo.ErrNoDocuments if the id does not exist.
func (r *MongoReservationRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ReservationStatus) error {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoReservationRepository) findWithOrderFallback(ctx context.Context, filter bson.M) ([]models.Reservation, error) {
	return findOrdered(ctx, r.logger, func(ctx context.Context, findOptions *options.FindOptions) ([]models.Reservation, error) {
		cursor, err := r.collection.Find(ctx, filter, findOptions)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var reservations []models.Reservation
		if err = cursor.All(ctx, &reservations); err != nil {
			return nil, err
		}
		return reservations, nil
	})
}

// findReservations runs a filtered query with the given find options.
type findReservations func(ctx context.Context, findOptions *options.FindOptions) ([]models.Reservation, error)

// findOrdered issues the query with a server-side sort on createdAt. If
// the store rejects the ordered query (e.g. missing index), it retries
// unordered and sorts in-process, transparently to the caller.
func findOrdered(ctx context.Context, logger *zap.Logger, find findReservations) ([]models.Reservation, error) {
	sorted := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	reservations, err := find(ctx, sorted)
	if err == nil {
		return reservations, nil
	}

	logger.Warn("Ordered reservation query rejected, retrying without sort", zap.Error(err))

	reservations, err = find(ctx, options.Find())
	if err != nil {
		return nil, err
	}

	sortByCreatedAtDesc(reservations)
	return reservations, nil
}

// sortByCreatedAtDesc orders reservations newest first, matching the
// server-side sort the fallback path could not use.
func sortByCreatedAtDesc(reservations []models.Reservation) {
	sort.SliceStable(reservations, func(i, j int) bool {
		return reservations[i].CreatedAt.After(reservations[j].CreatedAt)
	})
}
