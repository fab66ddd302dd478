package services

import (
	"context"
	"errors"

	"colheita-backend/apperrors"
	"colheita-backend/models"
	"colheita-backend/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// FarmService defines the interface for farm business logic.
type FarmService interface {
	Create(ctx context.Context, ownerID string, req *models.CreateFarmRequest) (*models.Farm, error)
	GetByID(ctx context.Context, id string) (*models.Farm, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Farm, error)
	ListAll(ctx context.Context) ([]models.Farm, error)
	Update(ctx context.Context, id string, req *models.UpdateFarmRequest) (*models.Farm, error)
	Save(ctx context.Context, id string, ownerID string, req *models.CreateFarmRequest) (*models.Farm, error)
	Delete(ctx context.Context, id string) error
}

type farmServiceImpl struct {
	farms  repository.FarmRepository
	logger *zap.Logger
}

func NewFarmService(farms repository.FarmRepository, logger *zap.Logger) FarmService {
	return &farmServiceImpl{
		farms:  farms,
		logger: logger,
	}
}

// Create registers a new farm owned by the authenticated caller.
func (s *farmServiceImpl) Create(ctx context.Context, ownerID string, req *models.CreateFarmRequest) (*models.Farm, error) {
	farm := &models.Farm{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Phone:       req.Phone,
		Address:     req.Address,
		Location:    req.Location,
	}

	id, err := s.farms.Create(ctx, farm)
	if err != nil {
		s.logger.Error("Failed to create farm", zap.Error(err))
		return nil, apperrors.Storage("Failed to create farm", err)
	}
	farm.ID = id

	s.logger.Info("Farm created", zap.String("id", id.Hex()), zap.String("name", farm.Name))
	return farm, nil
}

func (s *farmServiceImpl) GetByID(ctx context.Context, id string) (*models.Farm, error) {
	farmID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid farm id", err)
	}

	farm, err := s.farms.FindByID(ctx, farmID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Farm not found")
		}
		return nil, apperrors.Storage("Failed to load farm", err)
	}
	return farm, nil
}

func (s *farmServiceImpl) ListByOwner(ctx context.Context, ownerID string) ([]models.Farm, error) {
	farms, err := s.farms.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Storage("Failed to list owner farms", err)
	}
	return farms, nil
}

func (s *farmServiceImpl) ListAll(ctx context.Context) ([]models.Farm, error) {
	farms, err := s.farms.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Storage("Failed to list farms", err)
	}
	return farms, nil
}

// Update applies a partial farm update with merge semantics.
func (s *farmServiceImpl) Update(ctx context.Context, id string, req *models.UpdateFarmRequest) (*models.Farm, error) {
	farmID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid farm id", err)
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}

	if len(updates) == 0 {
		return nil, apperrors.Validation("No fields to update", nil)
	}

	if err := s.farms.Update(ctx, farmID, updates); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Farm not found")
		}
		return nil, apperrors.Storage("Failed to update farm", err)
	}

	farm, err := s.farms.FindByID(ctx, farmID)
	if err != nil {
		return nil, apperrors.Storage("Failed to reload farm", err)
	}
	return farm, nil
}

// Save writes the full farm profile under a known id, creating the
// document when it does not exist yet. Fields absent from the request
// keep their stored values.
func (s *farmServiceImpl) Save(ctx context.Context, id string, ownerID string, req *models.CreateFarmRequest) (*models.Farm, error) {
	farmID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid farm id", err)
	}

	updates := bson.M{
		"ownerId":     ownerID,
		"name":        req.Name,
		"description": req.Description,
		"phone":       req.Phone,
		"address":     req.Address,
		"location":    req.Location,
	}

	if err := s.farms.Upsert(ctx, farmID, updates); err != nil {
		return nil, apperrors.Storage("Failed to save farm", err)
	}

	farm, err := s.farms.FindByID(ctx, farmID)
	if err != nil {
		return nil, apperrors.Storage("Failed to reload farm", err)
	}

	s.logger.Info("Farm saved", zap.String("id", id))
	return farm, nil
}

func (s *farmServiceImpl) Delete(ctx context.Context, id string) error {
	farmID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.Validation("Invalid farm id", err)
	}

	if err := s.farms.Delete(ctx, farmID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("Farm not found")
		}
		return apperrors.Storage("Failed to delete farm", err)
	}

	s.logger.Info("Farm deleted", zap.String("id", id))
	return nil
}
