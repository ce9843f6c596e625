package service

import (
	"context"
	"strings"

	"house-designer/internal/common/apierr"
	"house-designer/internal/common/logger"
	"house-designer/internal/designer/models"
)

// ============================================================
// Gallery Service
// ============================================================

type GalleryService struct {
	projects ProjectStore
	public   PublicProjectStore
	log      *logger.Logger
}

func NewGalleryService(projects ProjectStore, public PublicProjectStore, log *logger.Logger) *GalleryService {
	return &GalleryService{projects: projects, public: public, log: log.With("service", "GalleryService")}
}

type GalleryQuery struct {
	Page     int
	PageSize int
	SortBy   string
	// UserID помечает лайкнутые этим пользователем проекты (isLiked).
	UserID string
}

// Publish делает проект публичным. Повторная публикация → ErrAlreadyPublic.
func (s *GalleryService) Publish(ctx context.Context, caller models.Identity, projectID string, in models.PublishInput) (*models.PublicProject, error) {
	project, err := ownedProject(ctx, s.projects, caller, projectID)
	if err != nil {
		return nil, err
	}

	public, err := s.public.IsProjectPublic(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if public {
		return nil, apierr.ErrAlreadyPublic
	}

	pp := &models.PublicProject{
		ProjectID:   projectID,
		Thumbnail:   in.Thumbnail,
		AuthorName:  caller.Name,
		Title:       firstNonEmpty(in.Title, project.Title),
		Description: firstNonEmpty(in.Description, project.Description),
	}
	if err := s.public.Add(ctx, pp); err != nil {
		return nil, err
	}
	s.log.Info("project published", "projectId", projectID, "publicProjectId", pp.ID)
	return pp, nil
}

// UpdatePublic меняет только переданные (непустые) поля.
func (s *GalleryService) UpdatePublic(ctx context.Context, caller models.Identity, publicProjectID string, in models.PublishInput) (*models.PublicProject, error) {
	pp, err := s.ownedPublic(ctx, caller, publicProjectID)
	if err != nil {
		return nil, err
	}
	if in.Thumbnail != "" {
		pp.Thumbnail = in.Thumbnail
	}
	if in.Title != "" {
		pp.Title = in.Title
	}
	if in.Description != "" {
		pp.Description = in.Description
	}
	if err := s.public.Update(ctx, pp); err != nil {
		return nil, err
	}
	return pp, nil
}

func (s *GalleryService) Unpublish(ctx context.Context, caller models.Identity, publicProjectID string) error {
	if _, err := s.ownedPublic(ctx, caller, publicProjectID); err != nil {
		return err
	}
	if err := s.public.Delete(ctx, publicProjectID); err != nil {
		return err
	}
	s.log.Info("project unpublished", "publicProjectId", publicProjectID)
	return nil
}

func (s *GalleryService) IsProjectPublic(ctx context.Context, projectID string) (bool, error) {
	return s.public.IsProjectPublic(ctx, projectID)
}

// List ранжирует все публичные проекты в памяти и отдаёт запрошенную страницу.
func (s *GalleryService) List(ctx context.Context, q GalleryQuery) (*models.GalleryPage, error) {
	all, err := s.public.GetAll(ctx, models.PublicProjectFilter{})
	if err != nil {
		return nil, err
	}

	sortBy := ParseSortBy(q.SortBy)
	page, pageSize := NormalizePage(q.Page, q.PageSize)
	items := Paginate(RankPublicProjects(all, sortBy), page, pageSize)

	ids := make([]string, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	liked, err := s.public.LikedBy(ctx, q.UserID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.PublicProjectDTO, 0, len(items))
	for _, p := range items {
		out = append(out, models.PublicProjectDTO{PublicProject: p, IsLiked: liked[p.ID]})
	}

	return &models.GalleryPage{
		Items:      out,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: len(all),
		TotalPages: totalPages(len(all), pageSize),
		SortBy:     string(sortBy),
	}, nil
}

// Get возвращает публичный проект и записывает просмотр.
func (s *GalleryService) Get(ctx context.Context, id string, viewer models.Identity, ip string) (*models.PublicProjectDTO, error) {
	pp, err := s.public.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if recorded, err := s.RecordView(ctx, id, viewer.UserID, ip); err != nil {
		s.log.Warn("record view failed", "publicProjectId", id, "error", err)
	} else if recorded {
		pp.Views++
	}

	dto := &models.PublicProjectDTO{PublicProject: *pp}
	if viewer.UserID != "" {
		liked, err := s.public.LikedBy(ctx, viewer.UserID, []string{id})
		if err != nil {
			return nil, err
		}
		dto.IsLiked = liked[id]
	}
	return dto, nil
}

// ToggleLike ставит лайк, если его нет, иначе снимает.
func (s *GalleryService) ToggleLike(ctx context.Context, publicProjectID string, caller models.Identity) (models.LikeResult, error) {
	if caller.UserID == "" {
		return models.LikeResult{}, apierr.ErrUnauthorized
	}
	res, err := s.public.ToggleLike(ctx, publicProjectID, caller.UserID)
	if err != nil {
		return models.LikeResult{}, err
	}
	s.log.Debug("like toggled", "publicProjectId", publicProjectID, "userId", caller.UserID, "isLiked", res.IsLiked)
	return res, nil
}

// RecordView увеличивает Views на каждый вызов, без дедупликации по
// userID/ip: они только сохраняются. Отсутствующий проект — не ошибка.
func (s *GalleryService) RecordView(ctx context.Context, publicProjectID, userID, ip string) (bool, error) {
	found, err := s.public.RecordView(ctx, models.PublicProjectView{
		PublicProjectID: publicProjectID,
		UserID:          userID,
		IPAddress:       ip,
	})
	if err != nil {
		return false, err
	}
	if !found {
		s.log.Debug("view for unknown public project ignored", "publicProjectId", publicProjectID)
	}
	return found, nil
}

func (s *GalleryService) ownedPublic(ctx context.Context, caller models.Identity, publicProjectID string) (*models.PublicProject, error) {
	pp, err := s.public.GetByID(ctx, publicProjectID)
	if err != nil {
		return nil, err
	}
	if _, err := ownedProject(ctx, s.projects, caller, pp.ProjectID); err != nil {
		return nil, err
	}
	return pp, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
