package brands

import (
	"time"

	"github.com/google/uuid"

	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/pagination"
)

// CreateInput carries the fields accepted when registering a brand. UserID
// names the owning account; when nil the acting user becomes the owner.
type CreateInput struct {
	UserID      *uuid.UUID
	Name        string
	Slug        string
	Description *string
	Logo        *string
	IsActive    *bool
}

// UpdateInput patches a brand. Nil fields are left untouched. Ownership does
// not change through updates.
type UpdateInput struct {
	Name        *string
	Slug        *string
	Description *string
	Logo        *string
	IsActive    *bool
}

// ListInput carries listing parameters and optional filters.
type ListInput struct {
	Page       pagination.Params
	UserID     *uuid.UUID
	ActiveOnly bool
}

// BrandDTO is the outward shape of a brand.
type BrandDTO struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Logo        *string   `json:"logo,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BrandCategoryDTO is one category the brand may list products into.
type BrandCategoryDTO struct {
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
}

// ListFilter is the repository-level shape of a brand listing.
type ListFilter struct {
	Limit      int
	Cursor     *pagination.Cursor
	UserID     *uuid.UUID
	ActiveOnly bool
}

// ListResult is one page of brands plus the cursor for the next page.
type ListResult struct {
	Items      []BrandDTO `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

func toDTO(m *models.Brand) *BrandDTO {
	return &BrandDTO{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Logo:        m.Logo,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toCategoryDTO(link *models.BrandCategory) BrandCategoryDTO {
	dto := BrandCategoryDTO{CategoryID: link.CategoryID}
	if link.Category != nil {
		dto.Name = link.Category.Name
		dto.Slug = link.Category.Slug
	}
	return dto
}
