package models

// Фильтры для выборок; пустое поле не ограничивает выборку.

type ProjectFilter struct {
	OwnerID string
}

type SpecificationFilter struct {
	ID        string
	ProjectID string
}

type ExtrasFilter struct {
	ID                    string
	HouseSpecificationsID string
}

type PublicProjectFilter struct {
	AuthorName string
	ProjectIDs []string
}
