package services

import (
	"context"
	"errors"
	"fmt"

	"colheita-backend/apperrors"
	"colheita-backend/models"
	"colheita-backend/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// NotificationService defines the interface for in-app notifications.
type NotificationService interface {
	ListByFarm(ctx context.Context, farmID string) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
	NotifyReservationCreated(ctx context.Context, reservation *models.Reservation, farmID string)
	NotifyReservationDecided(ctx context.Context, reservation *models.Reservation)
}

type notificationServiceImpl struct {
	notifications repository.NotificationRepository
	logger        *zap.Logger
}

func NewNotificationService(notifications repository.NotificationRepository, logger *zap.Logger) NotificationService {
	return &notificationServiceImpl{
		notifications: notifications,
		logger:        logger,
	}
}

func (s *notificationServiceImpl) ListByFarm(ctx context.Context, farmID string) ([]models.Notification, error) {
	notifications, err := s.notifications.FindByFarm(ctx, farmID)
	if err != nil {
		return nil, apperrors.Storage("Failed to list notifications", err)
	}
	return notifications, nil
}

func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, id string) error {
	notificationID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.Validation("Invalid notification id", err)
	}

	if err := s.notifications.MarkRead(ctx, notificationID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("Notification not found")
		}
		return apperrors.Storage("Failed to mark notification as read", err)
	}
	return nil
}

// NotifyReservationCreated writes a notification for the farm. Failures
// are logged, never surfaced: the reservation itself already succeeded.
func (s *notificationServiceImpl) NotifyReservationCreated(ctx context.Context, reservation *models.Reservation, farmID string) {
	notification := &models.Notification{
		FarmID:        farmID,
		ReservationID: reservation.ID.Hex(),
		Type:          models.NotificationReservationCreated,
		Message:       fmt.Sprintf("Nova reserva de %g %s de %s", reservation.Quantity, reservation.Unit, reservation.ProductName),
	}
	if err := s.notifications.Insert(ctx, notification); err != nil {
		s.logger.Warn("Failed to write reservation notification",
			zap.String("reservation", reservation.ID.Hex()),
			zap.Error(err),
		)
	}
}

// NotifyReservationDecided writes a notification for the consumer after
// an approve or reject. Failures are logged, never surfaced.
func (s *notificationServiceImpl) NotifyReservationDecided(ctx context.Context, reservation *models.Reservation) {
	notificationType := models.NotificationReservationApproved
	message := fmt.Sprintf("Sua reserva de %s foi aprovada", reservation.ProductName)
	if reservation.Status == models.StatusRejected {
		notificationType = models.NotificationReservationRejected
		message = fmt.Sprintf("Sua reserva de %s foi rejeitada", reservation.ProductName)
	}

	notification := &models.Notification{
		UserID:        reservation.UserID,
		ReservationID: reservation.ID.Hex(),
		Type:          notificationType,
		Message:       message,
	}
	if err := s.notifications.Insert(ctx, notification); err != nil {
		s.logger.Warn("Failed to write reservation notification",
			zap.String("reservation", reservation.ID.Hex()),
			zap.Error(err),
		)
	}
}
