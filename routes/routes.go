package routes

import (
	"colheita-backend/controllers"
	"colheita-backend/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterReservationRoutes wires the reservation workflow endpoints.
// Every route requires an authenticated caller.
func RegisterReservationRoutes(r *gin.Engine, rc *controllers.ReservationController, jwtSecret string) {
	reservationRoutes := r.Group("/reservations")
	reservationRoutes.Use(middleware.WriteRateLimit(), middleware.AuthMiddleware(jwtSecret))
	{
		reservationRoutes.POST("/", rc.Create)
		reservationRoutes.GET("/:id", rc.GetByID)
		reservationRoutes.GET("/user/:userId", rc.ListByUser)
		reservationRoutes.GET("/farmer/:farmerId", rc.ListByFarmer)
		reservationRoutes.GET("/product/:productId", rc.ListByProduct)
		reservationRoutes.PUT("/:id/approve", rc.Approve)
		reservationRoutes.PUT("/:id/reject", rc.Reject)
		reservationRoutes.PUT("/:id/cancel", rc.Cancel)
		reservationRoutes.PUT("/:id/complete", rc.Complete)
	}
}

// RegisterProductRoutes wires the product CRUD endpoints. Reads are
// public, writes require authentication.
func RegisterProductRoutes(r *gin.Engine, pc *controllers.ProductController, jwtSecret string) {
	productRoutes := r.Group("/products")
	{
		productRoutes.GET("/", pc.ListAvailable)
		productRoutes.GET("/:id", pc.GetByID)
		productRoutes.GET("/farm/:farmId", pc.ListByFarm)
	}

	protected := r.Group("/products")
	protected.Use(middleware.WriteRateLimit(), middleware.AuthMiddleware(jwtSecret))
	{
		protected.POST("/", pc.Create)
		protected.PUT("/:id", pc.Update)
		protected.DELETE("/:id", pc.Delete)
	}
}

// RegisterFarmRoutes wires the farm CRUD endpoints.
func RegisterFarmRoutes(r *gin.Engine, fc *controllers.FarmController, jwtSecret string) {
	farmRoutes := r.Group("/farms")
	{
		farmRoutes.GET("/", fc.ListAll)
		farmRoutes.GET("/:id", fc.GetByID)
		farmRoutes.GET("/owner/:ownerId", fc.ListByOwner)
	}

	protected := r.Group("/farms")
	protected.Use(middleware.WriteRateLimit(), middleware.AuthMiddleware(jwtSecret))
	{
		protected.POST("/", fc.Create)
		protected.PUT("/:id", fc.Update)
		protected.PUT("/:id/profile", fc.Save)
		protected.DELETE("/:id", fc.Delete)
	}
}

// RegisterNotificationRoutes wires the notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, nc *controllers.NotificationController, jwtSecret string) {
	notificationRoutes := r.Group("/notifications")
	notificationRoutes.Use(middleware.AuthMiddleware(jwtSecret))
	{
		notificationRoutes.GET("/farm/:farmId", nc.ListByFarm)
		notificationRoutes.PUT("/:id/read", nc.MarkAsRead)
	}
}
