package controllers

import (
	"net/http"

	"colheita-backend/middleware"
	"colheita-backend/models"
	"colheita-backend/services"

	"github.com/gin-gonic/gin"
)

// FarmController handles HTTP requests for farm operations.
type FarmController struct {
	farmService services.FarmService
}

func NewFarmController(svc services.FarmService) *FarmController {
	return &FarmController{farmService: svc}
}

// Create handles POST /farms
func (fc *FarmController) Create(ctx *gin.Context) {
	ownerID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateFarmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	farm, err := fc.farmService.Create(ctx.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"farm": farm})
}

// GetByID handles GET /farms/:id
func (fc *FarmController) GetByID(ctx *gin.Context) {
	farm, err := fc.farmService.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"farm": farm})
}

// ListAll handles GET /farms
func (fc *FarmController) ListAll(ctx *gin.Context) {
	farms, err := fc.farmService.ListAll(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"farms": farms})
}

// ListByOwner handles GET /farms/owner/:ownerId
func (fc *FarmController) ListByOwner(ctx *gin.Context) {
	farms, err := fc.farmService.ListByOwner(ctx.Request.Context(), ctx.Param("ownerId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"farms": farms})
}

// Update handles PUT /farms/:id
func (fc *FarmController) Update(ctx *gin.Context) {
	var req models.UpdateFarmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	farm, err := fc.farmService.Update(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"farm": farm})
}

// Save handles PUT /farms/:id/profile
func (fc *FarmController) Save(ctx *gin.Context) {
	ownerID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateFarmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	farm, err := fc.farmService.Save(ctx.Request.Context(), ctx.Param("id"), ownerID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"farm": farm})
}

// Delete handles DELETE /farms/:id
func (fc *FarmController) Delete(ctx *gin.Context) {
	if err := fc.farmService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}
