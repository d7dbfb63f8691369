package collections

import (
	"time"

	"github.com/google/uuid"

	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/pagination"
)

// CreateInput carries the fields accepted when creating a collection.
type CreateInput struct {
	Name        string
	Slug        string
	Description *string
	Image       *string
	IsActive    *bool
}

// UpdateInput patches a collection. Nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	Slug        *string
	Description *string
	Image       *string
	IsActive    *bool
}

// ListInput carries listing parameters.
type ListInput struct {
	Page pagination.Params
}

// CollectionDTO is the outward shape of a collection.
type CollectionDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CollectionCategoryDTO is one category placed in a collection, in display
// order.
type CollectionCategoryDTO struct {
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Position   int       `json:"position"`
}

// ListResult is one page of collections plus the cursor for the next page.
type ListResult struct {
	Items      []CollectionDTO `json:"items"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

func toDTO(m *models.Collection) *CollectionDTO {
	return &CollectionDTO{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Image:       m.Image,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toCategoryDTO(link *models.CategoryCollection) CollectionCategoryDTO {
	dto := CollectionCategoryDTO{
		CategoryID: link.CategoryID,
		Position:   link.Position,
	}
	if link.Category != nil {
		dto.Name = link.Category.Name
		dto.Slug = link.Category.Slug
	}
	return dto
}
