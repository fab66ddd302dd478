package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductImage holds the display image resolved for a product.
type ProductImage struct {
	URL       string `json:"url" bson:"url"`
	Thumbnail string `json:"thumbnail" bson:"thumbnail"`
	Alt       string `json:"alt" bson:"alt"`
}

// Product is a donated lot offered by a farm. FarmName and FarmerPhone
// are carried on the product so reservations can snapshot them without
// an extra farm lookup.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FarmID      primitive.ObjectID `json:"farmId" bson:"farmId"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Quantity    float64            `json:"quantity" bson:"quantity"`
	Unit        string             `json:"unit" bson:"unit"`
	IsAvailable bool               `json:"isAvailable" bson:"isAvailable"`
	Image       ProductImage       `json:"image" bson:"image"`
	FarmName    string             `json:"farmName" bson:"farmName"`
	FarmerPhone string             `json:"farmerPhone,omitempty" bson:"farmerPhone,omitempty"`
	ExpiresAt   *time.Time         `json:"expiresAt,omitempty" bson:"expiresAt,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateProductRequest is the payload accepted when a producer lists a
// new product.
type CreateProductRequest struct {
	FarmID      string     `json:"farmId" binding:"required"`
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description,omitempty"`
	Quantity    float64    `json:"quantity" binding:"required,gt=0"`
	Unit        string     `json:"unit" binding:"required,quantityunit"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// UpdateProductRequest carries a partial update. Nil fields are left
// untouched (merge semantics). When Name changes and UpdateImage is set,
// a fresh image is resolved for the new name.
type UpdateProductRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Quantity    *float64   `json:"quantity,omitempty"`
	Unit        *string    `json:"unit,omitempty" binding:"omitempty,quantityunit"`
	IsAvailable *bool      `json:"isAvailable,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	UpdateImage bool       `json:"updateImage,omitempty"`
}

// ProductImageRecord is a persisted image lookup result, keyed by the
// normalized product name so later products with the same name reuse it.
type ProductImageRecord struct {
	NormalizedName string       `json:"normalizedName" bson:"_id"`
	OriginalName   string       `json:"originalName" bson:"originalName"`
	Image          ProductImage `json:"image" bson:"image"`
	CreatedAt      time.Time    `json:"createdAt" bson:"createdAt"`
}
