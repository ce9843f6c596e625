package service

import (
	"context"

	"house-designer/internal/common/logger"
	"house-designer/internal/designer/models"
)

// ============================================================
// Extras Service
// ============================================================

type ExtrasService struct {
	specs  *SpecificationService
	extras ExtrasStore
	log    *logger.Logger
}

func NewExtrasService(specs *SpecificationService, extras ExtrasStore, log *logger.Logger) *ExtrasService {
	return &ExtrasService{specs: specs, extras: extras, log: log.With("service", "ExtrasService")}
}

// Attach создаёт Extras со свежими копиями дверей и окон и возвращает его.
func (s *ExtrasService) Attach(ctx context.Context, caller models.Identity, specificationID string, in models.ExtrasInput) (*models.Extras, error) {
	if _, err := s.specs.owned(ctx, caller, specificationID); err != nil {
		return nil, err
	}

	doors, windows, err := models.CopyOpenings(in.Doors, in.Windows)
	if err != nil {
		return nil, err
	}
	e := &models.Extras{
		HouseSpecificationsID: specificationID,
		Doors:                 doors,
		Windows:               windows,
	}
	if err := s.extras.Add(ctx, e); err != nil {
		return nil, err
	}
	s.log.Info("extras attached", "extrasId", e.ID, "specificationId", specificationID, "doors", len(doors), "windows", len(windows))
	return e, nil
}

func (s *ExtrasService) ListBySpecification(ctx context.Context, caller models.Identity, specificationID string) ([]models.Extras, error) {
	if _, err := s.specs.owned(ctx, caller, specificationID); err != nil {
		return nil, err
	}
	return s.extras.GetAll(ctx, models.ExtrasFilter{HouseSpecificationsID: specificationID})
}

// Update заменяет списки дверей и окон целиком.
func (s *ExtrasService) Update(ctx context.Context, caller models.Identity, id string, in models.ExtrasInput) (*models.Extras, error) {
	e, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	doors, windows, err := models.CopyOpenings(in.Doors, in.Windows)
	if err != nil {
		return nil, err
	}
	e.Doors, e.Windows = doors, windows
	if err := s.extras.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExtrasService) Delete(ctx context.Context, caller models.Identity, id string) error {
	if _, err := s.owned(ctx, caller, id); err != nil {
		return err
	}
	return s.extras.Delete(ctx, id)
}

func (s *ExtrasService) owned(ctx context.Context, caller models.Identity, id string) (*models.Extras, error) {
	e, err := s.extras.Get(ctx, models.ExtrasFilter{ID: id})
	if err != nil {
		return nil, err
	}
	if _, err := s.specs.owned(ctx, caller, e.HouseSpecificationsID); err != nil {
		return nil, err
	}
	return e, nil
}
