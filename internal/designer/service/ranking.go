package service

import (
	"slices"
	"strings"

	"house-designer/internal/designer/models"
)

// ============================================================
// Gallery ranking
// ============================================================

type SortBy string

const (
	SortNewest     SortBy = "newest"
	SortPopular    SortBy = "popular"
	SortMostLiked  SortBy = "most_liked"
	SortMostViewed SortBy = "most_viewed"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// ParseSortBy приводит значение к известной стратегии; неизвестное → newest.
func ParseSortBy(raw string) SortBy {
	switch s := SortBy(strings.ToLower(strings.TrimSpace(raw))); s {
	case SortPopular, SortMostLiked, SortMostViewed:
		return s
	default:
		return SortNewest
	}
}

// RankPublicProjects возвращает новый срез, упорядоченный по убыванию
// выбранной метрики. При равенстве: более поздняя публикация, затем Id.
func RankPublicProjects(all []models.PublicProject, sortBy SortBy) []models.PublicProject {
	out := slices.Clone(all)

	var score func(p models.PublicProject) int
	switch ParseSortBy(string(sortBy)) {
	case SortPopular:
		score = func(p models.PublicProject) int { return p.Views + p.Likes }
	case SortMostLiked:
		score = func(p models.PublicProject) int { return p.Likes }
	case SortMostViewed:
		score = func(p models.PublicProject) int { return p.Views }
	}

	slices.SortStableFunc(out, func(a, b models.PublicProject) int {
		if score != nil {
			if sa, sb := score(a), score(b); sa != sb {
				return sb - sa
			}
		}
		if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// NormalizePage подставляет значения по умолчанию для неположительных page/pageSize.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Paginate пропускает (page-1)*pageSize элементов и берёт pageSize.
func Paginate[T any](items []T, page, pageSize int) []T {
	page, pageSize = NormalizePage(page, pageSize)
	// сравнение до умножения: большой page не переполняет start
	if page-1 >= totalPages(len(items), pageSize) {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	return items[start:end]
}

func totalPages(total, pageSize int) int {
	if total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
