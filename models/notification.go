package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types written by the reservation workflow.
const (
	NotificationReservationCreated  = "reservation_created"
	NotificationReservationApproved = "reservation_approved"
	NotificationReservationRejected = "reservation_rejected"
)

// Notification is an in-app message for a farm or a consumer.
type Notification struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FarmID        string             `json:"farmId,omitempty" bson:"farmId,omitempty"`
	UserID        string             `json:"userId,omitempty" bson:"userId,omitempty"`
	ReservationID string             `json:"reservationId,omitempty" bson:"reservationId,omitempty"`
	Type          string             `json:"type" bson:"type"`
	Message       string             `json:"message" bson:"message"`
	Read          bool               `json:"read" bson:"read"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}
