package categories

import (
	"time"

	"github.com/google/uuid"

	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/enums"
	"github.com/smuvr/spraby/pkg/pagination"
)

// CreateInput carries the fields accepted when creating a category.
type CreateInput struct {
	Name        string
	Slug        string
	Description *string
	Image       *string
	IsActive    *bool
}

// UpdateInput patches a category. Nil fields are left untouched.
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

// AttachOptionInput assigns an option to a category. Re-attaching an already
// assigned option updates is_required and position in place.
type AttachOptionInput struct {
	OptionID   uuid.UUID
	IsRequired bool
	Position   int
}

// AttachCollectionInput places a category into a collection at a position.
type AttachCollectionInput struct {
	CollectionID uuid.UUID
	Position     int
}

// CategoryDTO is the outward shape of a category.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryOptionDTO is one option assigned to a category, in display order.
type CategoryOptionDTO struct {
	OptionID   uuid.UUID        `json:"option_id"`
	Name       string           `json:"name"`
	Slug       string           `json:"slug"`
	Type       enums.OptionType `json:"type"`
	IsRequired bool             `json:"is_required"`
	Position   int              `json:"position"`
}

// CategoryCollectionDTO is one collection the category is placed in.
type CategoryCollectionDTO struct {
	CollectionID uuid.UUID `json:"collection_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Position     int       `json:"position"`
}

// ListResult is one page of categories plus the cursor for the next page.
type ListResult struct {
	Items      []CategoryDTO `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

func toDTO(m *models.Category) *CategoryDTO {
	return &CategoryDTO{
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

func toOptionDTO(link *models.CategoryOption) CategoryOptionDTO {
	dto := CategoryOptionDTO{
		OptionID:   link.OptionID,
		IsRequired: link.IsRequired,
		Position:   link.Position,
	}
	if link.Option != nil {
		dto.Name = link.Option.Name
		dto.Slug = link.Option.Slug
		dto.Type = link.Option.Type
	}
	return dto
}

func toCollectionDTO(link *models.CategoryCollection) CategoryCollectionDTO {
	dto := CategoryCollectionDTO{
		CollectionID: link.CollectionID,
		Position:     link.Position,
	}
	if link.Collection != nil {
		dto.Name = link.Collection.Name
		dto.Slug = link.Collection.Slug
	}
	return dto
}
