package controllers

import (
	"context"
	"errors"
	"net/http"

	"colheita-backend/apperrors"
	"colheita-backend/logger"
	"colheita-backend/middleware"
	"colheita-backend/models"
	"colheita-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationController handles HTTP requests for the reservation
// workflow.
type ReservationController struct {
	reservationService services.ReservationService
}

func NewReservationController(svc services.ReservationService) *ReservationController {
	return &ReservationController{reservationService: svc}
}

// Create handles POST /reservations
func (rc *ReservationController) Create(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	reservation, err := rc.reservationService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"reservation": reservation})
}

// GetByID handles GET /reservations/:id
func (rc *ReservationController) GetByID(ctx *gin.Context) {
	reservation, err := rc.reservationService.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"reservation": reservation})
}

// ListByUser handles GET /reservations/user/:userId
func (rc *ReservationController) ListByUser(ctx *gin.Context) {
	reservations, err := rc.reservationService.ListByUser(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

// ListByFarmer handles GET /reservations/farmer/:farmerId
func (rc *ReservationController) ListByFarmer(ctx *gin.Context) {
	reservations, err := rc.reservationService.ListByFarmer(ctx.Request.Context(), ctx.Param("farmerId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

// ListByProduct handles GET /reservations/product/:productId
func (rc *ReservationController) ListByProduct(ctx *gin.Context) {
	reservations, err := rc.reservationService.ListByProduct(ctx.Request.Context(), ctx.Param("productId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

// Approve handles PUT /reservations/:id/approve
func (rc *ReservationController) Approve(ctx *gin.Context) {
	rc.respondTransition(ctx, rc.reservationService.Approve)
}

// Reject handles PUT /reservations/:id/reject
func (rc *ReservationController) Reject(ctx *gin.Context) {
	rc.respondTransition(ctx, rc.reservationService.Reject)
}

// Cancel handles PUT /reservations/:id/cancel
func (rc *ReservationController) Cancel(ctx *gin.Context) {
	rc.respondTransition(ctx, rc.reservationService.Cancel)
}

// Complete handles PUT /reservations/:id/complete
func (rc *ReservationController) Complete(ctx *gin.Context) {
	rc.respondTransition(ctx, rc.reservationService.Complete)
}

func (rc *ReservationController) respondTransition(
	ctx *gin.Context,
	op func(context.Context, string) (*models.Reservation, error),
) {
	reservation, err := op(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"reservation": reservation})
}

// respondError maps application errors to HTTP responses, keeping the
// error kind in the body so the UI can render distinct messaging.
// Server-side failures are logged with the request ID; client errors
// only warn.
func respondError(ctx *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error(ctx, appErr.Message, appErr.Err)
		} else {
			logger.Warn(ctx, appErr.Message, zap.String("kind", string(appErr.Kind)))
		}
		ctx.JSON(appErr.Code, gin.H{"error": appErr.Message, "kind": appErr.Kind})
		return
	}
	logger.Error(ctx, "Unhandled error", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
