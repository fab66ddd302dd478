package controllers

import (
	"net/http"

	"colheita-backend/models"
	"colheita-backend/services"

	"github.com/gin-gonic/gin"
)

// ProductController handles HTTP requests for product operations.
type ProductController struct {
	productService services.ProductService
}

func NewProductController(svc services.ProductService) *ProductController {
	return &ProductController{productService: svc}
}

// Create handles POST /products
func (pc *ProductController) Create(ctx *gin.Context) {
	var req models.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, err := pc.productService.Create(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"product": product})
}

// GetByID handles GET /products/:id
func (pc *ProductController) GetByID(ctx *gin.Context) {
	product, err := pc.productService.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// ListAvailable handles GET /products
func (pc *ProductController) ListAvailable(ctx *gin.Context) {
	products, err := pc.productService.ListAvailable(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// ListByFarm handles GET /products/farm/:farmId
func (pc *ProductController) ListByFarm(ctx *gin.Context) {
	products, err := pc.productService.ListByFarm(ctx.Request.Context(), ctx.Param("farmId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// Update handles PUT /products/:id
func (pc *ProductController) Update(ctx *gin.Context) {
	var req models.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, err := pc.productService.Update(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// Delete handles DELETE /products/:id
func (pc *ProductController) Delete(ctx *gin.Context) {
	if err := pc.productService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}
