package service

import (
	"context"
	"strings"

	"house-designer/internal/common/apierr"
	"house-designer/internal/common/logger"
	"house-designer/internal/designer/models"
)

// ============================================================
// Project Service
// ============================================================

type ProjectService struct {
	projects ProjectStore
	log      *logger.Logger
}

func NewProjectService(projects ProjectStore, log *logger.Logger) *ProjectService {
	return &ProjectService{projects: projects, log: log.With("service", "ProjectService")}
}

func (s *ProjectService) Create(ctx context.Context, caller models.Identity, in models.ProjectInput) (*models.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := &models.Project{
		OwnerID:     caller.UserID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
	}
	if err := s.projects.Add(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("project created", "projectId", p.ID, "ownerId", p.OwnerID)
	return p, nil
}

func (s *ProjectService) List(ctx context.Context, caller models.Identity) ([]models.Project, error) {
	return s.projects.GetAll(ctx, models.ProjectFilter{OwnerID: caller.UserID})
}

// Get возвращает проект, если caller — его владелец.
func (s *ProjectService) Get(ctx context.Context, caller models.Identity, id string) (*models.Project, error) {
	return ownedProject(ctx, s.projects, caller, id)
}

func (s *ProjectService) Update(ctx context.Context, caller models.Identity, id string, in models.ProjectInput) (*models.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, err := ownedProject(ctx, s.projects, caller, id)
	if err != nil {
		return nil, err
	}
	p.Title = strings.TrimSpace(in.Title)
	p.Description = in.Description
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, caller models.Identity, id string) error {
	if _, err := ownedProject(ctx, s.projects, caller, id); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("project deleted", "projectId", id)
	return nil
}

func ownedProject(ctx context.Context, projects ProjectStore, caller models.Identity, id string) (*models.Project, error) {
	p, err := projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.UserID == "" || p.OwnerID != caller.UserID {
		return nil, apierr.ErrPermissionDenied
	}
	return p, nil
}
