package models

import (
	"strings"
	"time"

	"house-designer/internal/common/apierr"
)

// ============================================================
// Project
// ============================================================

type Project struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProjectInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (in ProjectInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return apierr.Validation("title is required")
	}
	return nil
}

// ============================================================
// Public Project (gallery)
// ============================================================

type PublicProject struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	Thumbnail   string    `json:"thumbnail"`
	Views       int       `json:"views"`
	Likes       int       `json:"likes"`
	AuthorName  string    `json:"authorName"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"publishedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PublicProjectView struct {
	ID              string
	PublicProjectID string
	UserID          string
	IPAddress       string
	ViewedAt        time.Time
}

// PublishInput — метаданные публикации; пустые Title/Description берутся из проекта.
type PublishInput struct {
	Thumbnail   string `json:"thumbnail"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type PublicProjectDTO struct {
	PublicProject
	IsLiked bool `json:"isLiked"`
}

type GalleryPage struct {
	Items      []PublicProjectDTO `json:"items"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalCount int                `json:"totalCount"`
	TotalPages int                `json:"totalPages"`
	SortBy     string             `json:"sortBy"`
}

type LikeResult struct {
	IsLiked bool `json:"isLiked"`
	Likes   int  `json:"likes"`
}

// ============================================================
// Identity
// ============================================================

// Identity — пользователь, от имени которого выполняется запрос.
type Identity struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}
