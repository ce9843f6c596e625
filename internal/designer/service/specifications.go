package service

import (
	"context"

	"house-designer/internal/common/logger"
	"house-designer/internal/designer/models"
)

// ============================================================
// Specification Service
// ============================================================

type SpecificationService struct {
	projects ProjectStore
	specs    SpecificationStore
	log      *logger.Logger
}

func NewSpecificationService(projects ProjectStore, specs SpecificationStore, log *logger.Logger) *SpecificationService {
	return &SpecificationService{projects: projects, specs: specs, log: log.With("service", "SpecificationService")}
}

// Create строит спецификацию из input; все размеры формы обязательны.
func (s *SpecificationService) Create(ctx context.Context, caller models.Identity, projectID string, in models.SpecificationInput) (*models.HouseSpecification, error) {
	if _, err := ownedProject(ctx, s.projects, caller, projectID); err != nil {
		return nil, err
	}

	spec := &models.HouseSpecification{ProjectID: projectID}
	if err := in.Apply(spec, models.DeriveStrict); err != nil {
		return nil, err
	}
	if err := s.specs.Add(ctx, spec); err != nil {
		return nil, err
	}
	s.log.Info("specification created", "specificationId", spec.ID, "projectId", projectID, "shape", spec.ShapeType)
	return spec, nil
}

func (s *SpecificationService) Get(ctx context.Context, caller models.Identity, id string) (*models.HouseSpecification, error) {
	return s.owned(ctx, caller, id)
}

func (s *SpecificationService) ListByProject(ctx context.Context, caller models.Identity, projectID string) ([]models.HouseSpecification, error) {
	if _, err := ownedProject(ctx, s.projects, caller, projectID); err != nil {
		return nil, err
	}
	return s.specs.GetAll(ctx, models.SpecificationFilter{ProjectID: projectID})
}

// Update заменяет спецификацию целиком; отсутствующие размеры становятся 0.
func (s *SpecificationService) Update(ctx context.Context, caller models.Identity, id string, in models.SpecificationInput) (*models.HouseSpecification, error) {
	spec, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := in.Apply(spec, models.DeriveLenient); err != nil {
		return nil, err
	}
	if err := s.specs.Update(ctx, spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func (s *SpecificationService) Delete(ctx context.Context, caller models.Identity, id string) error {
	if _, err := s.owned(ctx, caller, id); err != nil {
		return err
	}
	return s.specs.Delete(ctx, id)
}

func (s *SpecificationService) owned(ctx context.Context, caller models.Identity, id string) (*models.HouseSpecification, error) {
	spec, err := s.specs.Get(ctx, models.SpecificationFilter{ID: id})
	if err != nil {
		return nil, err
	}
	if _, err := ownedProject(ctx, s.projects, caller, spec.ProjectID); err != nil {
		return nil, err
	}
	return spec, nil
}
