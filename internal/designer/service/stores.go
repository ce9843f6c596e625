package service

import (
	"context"

	"house-designer/internal/designer/models"
)

// ============================================================
// Persistence contracts
// ============================================================

type ProjectStore interface {
	Add(ctx context.Context, p *models.Project) error
	GetByID(ctx context.Context, id string) (*models.Project, error)
	GetAll(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error)
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id string) error
}

type SpecificationStore interface {
	Add(ctx context.Context, s *models.HouseSpecification) error
	Get(ctx context.Context, filter models.SpecificationFilter) (*models.HouseSpecification, error)
	GetAll(ctx context.Context, filter models.SpecificationFilter) ([]models.HouseSpecification, error)
	Update(ctx context.Context, s *models.HouseSpecification) error
	Delete(ctx context.Context, id string) error
}

type ExtrasStore interface {
	Add(ctx context.Context, e *models.Extras) error
	Get(ctx context.Context, filter models.ExtrasFilter) (*models.Extras, error)
	GetAll(ctx context.Context, filter models.ExtrasFilter) ([]models.Extras, error)
	Update(ctx context.Context, e *models.Extras) error
	Delete(ctx context.Context, id string) error
}

// PublicProjectStore не даёт писать Likes/Views напрямую: счётчики меняются
// только через ToggleLike и RecordView.
type PublicProjectStore interface {
	Add(ctx context.Context, p *models.PublicProject) error
	GetByID(ctx context.Context, id string) (*models.PublicProject, error)
	GetByProjectID(ctx context.Context, projectID string) (*models.PublicProject, error)
	GetAll(ctx context.Context, filter models.PublicProjectFilter) ([]models.PublicProject, error)
	Update(ctx context.Context, p *models.PublicProject) error
	Delete(ctx context.Context, id string) error
	IsProjectPublic(ctx context.Context, projectID string) (bool, error)
	ToggleLike(ctx context.Context, publicProjectID, userID string) (models.LikeResult, error)
	RecordView(ctx context.Context, view models.PublicProjectView) (bool, error)
	LikedBy(ctx context.Context, userID string, ids []string) (map[string]bool, error)
}
