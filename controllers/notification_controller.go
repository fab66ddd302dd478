package controllers

import (
	"net/http"

	"colheita-backend/services"

	"github.com/gin-gonic/gin"
)

// NotificationController handles HTTP requests for notifications.
type NotificationController struct {
	notificationService services.NotificationService
}

func NewNotificationController(svc services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: svc}
}

// ListByFarm handles GET /notifications/farm/:farmId
func (nc *NotificationController) ListByFarm(ctx *gin.Context) {
	notifications, err := nc.notificationService.ListByFarm(ctx.Request.Context(), ctx.Param("farmId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkAsRead handles PUT /notifications/:id/read
func (nc *NotificationController) MarkAsRead(ctx *gin.Context) {
	if err := nc.notificationService.MarkAsRead(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"read": true})
}
