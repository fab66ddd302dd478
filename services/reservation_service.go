package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"colheita-backend/apperrors"
	"colheita-backend/models"
	"colheita-backend/repository"
	aws_pkg "colheita-backend/pkg/aws"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ReservationService enforces the reservation state machine and
// coordinates quantity reconciliation against the product record.
type ReservationService interface {
	Create(ctx context.Context, userID string, req *models.CreateReservationRequest) (*models.Reservation, error)
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]models.Reservation, error)
	ListByFarmer(ctx context.Context, farmerID string) ([]models.Reservation, error)
	ListByProduct(ctx context.Context, productID string) ([]models.Reservation, error)
	Approve(ctx context.Context, id string) (*models.Reservation, error)
	Reject(ctx context.Context, id string) (*models.Reservation, error)
	Cancel(ctx context.Context, id string) (*models.Reservation, error)
	Complete(ctx context.Context, id string) (*models.Reservation, error)
}

type reservationServiceImpl struct {
	reservations  repository.ReservationRepository
	products      repository.ProductRepository
	notifications NotificationService
	snsClient     aws_pkg.SNSPublisher
	snsTopicArn   string
	logger        *zap.Logger
}

func NewReservationService(
	reservations repository.ReservationRepository,
	products repository.ProductRepository,
	notifications NotificationService,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	logger *zap.Logger,
) ReservationService {
	return &reservationServiceImpl{
		reservations:  reservations,
		products:      products,
		notifications: notifications,
		snsClient:     snsClient,
		snsTopicArn:   snsTopicArn,
		logger:        logger,
	}
}

// Create builds a pending reservation with a frozen snapshot of the
// product and farm fields. Stock is not validated here: the quantity
// check happens only at approval.
func (s *reservationServiceImpl) Create(ctx context.Context, userID string, req *models.CreateReservationRequest) (*models.Reservation, error) {
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, apperrors.Validation("Invalid product id", err)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Storage("Failed to load product", err)
	}

	reservation := &models.Reservation{
		ProductID:    productID,
		UserID:       userID,
		FarmerID:     req.FarmerID,
		ProductName:  product.Name,
		ProductImage: product.Image,
		FarmerName:   product.FarmName,
		FarmerPhone:  product.FarmerPhone,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		UserPhone:    req.UserPhone,
		Message:      req.Message,
		Status:       models.StatusPending,
	}

	id, err := s.reservations.Insert(ctx, reservation)
	if err != nil {
		s.logger.Error("Failed to create reservation", zap.Error(err))
		return nil, apperrors.Storage("Failed to create reservation", err)
	}
	reservation.ID = id

	s.notifications.NotifyReservationCreated(ctx, reservation, product.FarmID.Hex())
	s.publishReservationEvent(ctx, reservation, "reservation_created")

	s.logger.Info("Reservation created",
		zap.String("id", id.Hex()),
		zap.String("product", reservation.ProductName),
		zap.Float64("quantity", reservation.Quantity),
		zap.String("unit", reservation.Unit),
	)
	return reservation, nil
}

func (s *reservationServiceImpl) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	return s.load(ctx, id)
}

func (s *reservationServiceImpl) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	reservations, err := s.reservations.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Storage("Failed to list user reservations", err)
	}
	return reservations, nil
}

func (s *reservationServiceImpl) ListByFarmer(ctx context.Context, farmerID string) ([]models.Reservation, error) {
	reservations, err := s.reservations.FindByFarmer(ctx, farmerID)
	if err != nil {
		return nil, apperrors.Storage("Failed to list farmer reservations", err)
	}
	return reservations, nil
}

func (s *reservationServiceImpl) ListByProduct(ctx context.Context, productID string) ([]models.Reservation, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, apperrors.Validation("Invalid product id", err)
	}

	reservations, err := s.reservations.FindByProduct(ctx, pid)
	if err != nil {
		return nil, apperrors.Storage("Failed to list product reservations", err)
	}
	return reservations, nil
}

// Approve moves a pending reservation to approved and deducts the
// reserved quantity from the product. The status update lands first and
// the product update second; a failure between the two surfaces to the
// caller for manual reconciliation, there is no rollback.
func (s *reservationServiceImpl) Approve(ctx context.Context, id string) (*models.Reservation, error) {
	reservation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !reservation.Status.CanTransitionTo(models.StatusApproved) {
		return nil, apperrors.IllegalTransition(
			fmt.Sprintf("Cannot approve a reservation with status %q", reservation.Status))
	}

	product, err := s.products.FindByID(ctx, reservation.ProductID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Storage("Failed to load product", err)
	}

	requested := reservation.Quantity
	available := product.Quantity
	if requested > available {
		return nil, apperrors.InsufficientQuantity(
			fmt.Sprintf("Requested %g %s but only %g available", requested, reservation.Unit, available))
	}

	if err := s.reservations.UpdateStatus(ctx, reservation.ID, models.StatusApproved); err != nil {
		return nil, apperrors.Storage("Failed to update reservation status", err)
	}
	reservation.Status = models.StatusApproved

	// Conditional write: the deduction only lands if the product still
	// holds at least the requested quantity, so concurrent approvals
	// cannot drive the stock negative.
	deducted, err := s.products.DecrementQuantity(ctx, reservation.ProductID, requested)
	if err != nil {
		s.logger.Error("Product update failed after reservation approval, manual reconciliation needed",
			zap.String("reservation", reservation.ID.Hex()),
			zap.String("product", reservation.ProductID.Hex()),
		)
		return nil, apperrors.Storage("Reservation approved but product update failed", err)
	}
	if !deducted {
		s.logger.Warn("Quantity deduction lost a concurrent race, manual reconciliation needed",
			zap.String("reservation", reservation.ID.Hex()),
			zap.String("product", reservation.ProductID.Hex()),
		)
		return nil, apperrors.InsufficientQuantity(
			"Reservation approved but stock was consumed concurrently")
	}

	if err := s.products.MarkUnavailableIfDepleted(ctx, reservation.ProductID); err != nil {
		s.logger.Warn("Failed to refresh product availability",
			zap.String("product", reservation.ProductID.Hex()),
			zap.Error(err),
		)
	}

	s.notifications.NotifyReservationDecided(ctx, reservation)
	s.publishReservationEvent(ctx, reservation, "reservation_approved")

	s.logger.Info("Reservation approved",
		zap.String("id", reservation.ID.Hex()),
		zap.Float64("deducted", requested),
	)
	return reservation, nil
}

// Reject moves a pending reservation to rejected.
func (s *reservationServiceImpl) Reject(ctx context.Context, id string) (*models.Reservation, error) {
	reservation, err := s.transition(ctx, id, models.StatusRejected)
	if err != nil {
		return nil, err
	}
	s.notifications.NotifyReservationDecided(ctx, reservation)
	s.publishReservationEvent(ctx, reservation, "reservation_rejected")
	return reservation, nil
}

// Cancel moves a pending or approved reservation to cancelled. No
// quantity is returned to the product.
func (s *reservationServiceImpl) Cancel(ctx context.Context, id string) (*models.Reservation, error) {
	return s.transition(ctx, id, models.StatusCancelled)
}

// Complete moves an approved reservation to completed.
func (s *reservationServiceImpl) Complete(ctx context.Context, id string) (*models.Reservation, error) {
	return s.transition(ctx, id, models.StatusCompleted)
}

// transition performs a pure status change with no product side effect.
// Repeating a transition the reservation already finished is a no-op
// success; anything the state machine forbids fails with
// IllegalTransition.
func (s *reservationServiceImpl) transition(ctx context.Context, id string, target models.ReservationStatus) (*models.Reservation, error) {
	reservation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if reservation.Status == target {
		return reservation, nil
	}

	if !reservation.Status.CanTransitionTo(target) {
		return nil, apperrors.IllegalTransition(
			fmt.Sprintf("Cannot move reservation from %q to %q", reservation.Status, target))
	}

	if err := s.reservations.UpdateStatus(ctx, reservation.ID, target); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Reservation not found")
		}
		return nil, apperrors.Storage("Failed to update reservation status", err)
	}

	reservation.Status = target
	s.logger.Info("Reservation status updated",
		zap.String("id", reservation.ID.Hex()),
		zap.String("status", string(target)),
	)
	return reservation, nil
}

func (s *reservationServiceImpl) load(ctx context.Context, id string) (*models.Reservation, error) {
	reservationID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid reservation id", err)
	}

	reservation, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Reservation not found")
		}
		return nil, apperrors.Storage("Failed to load reservation", err)
	}
	return reservation, nil
}

// publishReservationEvent publishes a lifecycle event to SNS. Skipped
// silently when SNS is not configured.
func (s *reservationServiceImpl) publishReservationEvent(ctx context.Context, reservation *models.Reservation, eventType string) {
	if s.snsClient == nil || s.snsTopicArn == "" {
		return
	}

	event := models.ReservationEvent{
		EventType:     eventType,
		ReservationID: reservation.ID.Hex(),
		ProductID:     reservation.ProductID.Hex(),
		UserID:        reservation.UserID,
		FarmerID:      reservation.FarmerID,
		Quantity:      reservation.Quantity,
		Unit:          reservation.Unit,
		Status:        string(reservation.Status),
		Timestamp:     time.Now(),
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Failed to marshal reservation event", zap.Error(err))
		return
	}

	if err := s.snsClient.Publish(ctx, s.snsTopicArn, eventBytes); err != nil {
		s.logger.Error("Failed to publish reservation event", zap.Error(err))
		return
	}

	s.logger.Info("Published reservation event",
		zap.String("event_type", eventType),
		zap.String("reservation", reservation.ID.Hex()),
	)
}
