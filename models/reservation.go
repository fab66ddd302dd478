package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReservationStatus tracks a reservation through the approval workflow.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusApproved  ReservationStatus = "approved"
	StatusRejected  ReservationStatus = "rejected"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Quantity units accepted for a reservation.
const (
	UnitGram     = "g"
	UnitKilogram = "kg"
	UnitTon      = "ton"
)

// legalTransitions is the transition table of the reservation state
// machine. rejected, completed and cancelled are terminal.
var legalTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCompleted, StatusCancelled},
}

// Valid reports whether s is a known reservation status.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted out of s.
func (s ReservationStatus) Terminal() bool {
	return len(legalTransitions[s]) == 0 && s.Valid()
}

// CanTransitionTo reports whether the state machine permits moving from
// s to next.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Reservation is a consumer's request to collect a quantity of a product
// from a farm. The product/farm fields are a snapshot taken at creation
// time and are never refreshed against the live records.
type Reservation struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	UserID    string             `json:"userId" bson:"userId"`
	FarmerID  string             `json:"farmerId" bson:"farmerId"`

	ProductName  string       `json:"productName" bson:"productName"`
	ProductImage ProductImage `json:"productImage" bson:"productImage"`
	FarmerName   string       `json:"farmerName" bson:"farmerName"`
	FarmerPhone  string       `json:"farmerPhone" bson:"farmerPhone"`

	Quantity  float64           `json:"quantity" bson:"quantity"`
	Unit      string            `json:"unit" bson:"unit"`
	UserPhone string            `json:"userPhone,omitempty" bson:"userPhone,omitempty"`
	Message   string            `json:"message,omitempty" bson:"message,omitempty"`
	Status    ReservationStatus `json:"status" bson:"status"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CreateReservationRequest is the payload accepted when a consumer
// reserves a product.
type CreateReservationRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	FarmerID  string  `json:"farmerId" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	Unit      string  `json:"unit" binding:"required,quantityunit"`
	UserPhone string  `json:"userPhone,omitempty"`
	Message   string  `json:"message,omitempty"`
}

// ReservationEvent is published to SNS on reservation lifecycle changes.
type ReservationEvent struct {
	EventType     string    `json:"event_type"`
	ReservationID string    `json:"reservation_id"`
	ProductID     string    `json:"product_id"`
	UserID        string    `json:"user_id"`
	FarmerID      string    `json:"farmer_id"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `json:"unit"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}
