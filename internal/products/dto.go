package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/pagination"
)

// CreateInput carries the fields accepted when listing a product.
type CreateInput struct {
	BrandID          uuid.UUID
	CategoryID       uuid.UUID
	Name             string
	Slug             string
	Description      *string
	ShortDescription *string
	IsActive         *bool
}

// UpdateInput patches a product. Nil fields are left untouched. Moving the
// product to another category re-checks the brand's category grants.
type UpdateInput struct {
	CategoryID       *uuid.UUID
	Name             *string
	Slug             *string
	Description      *string
	ShortDescription *string
	IsActive         *bool
}

// ListInput carries listing parameters and filters. TrashedOnly surfaces
// soft-deleted products for review and restore.
type ListInput struct {
	Page          pagination.Params
	BrandID       *uuid.UUID
	CategoryID    *uuid.UUID
	ActiveOnly    bool
	AvailableOnly bool
	TrashedOnly   bool
}

// ListFilter is the repository-level shape of a product listing.
type ListFilter struct {
	Limit         int
	Cursor        *pagination.Cursor
	BrandID       *uuid.UUID
	CategoryID    *uuid.UUID
	ActiveOnly    bool
	AvailableOnly bool
	TrashedOnly   bool
}

// AttachImageInput links an image to the product. VariantID scopes the image
// to one variant; a nil VariantID places it in the product gallery.
// Re-attaching an image updates position, scope, and the primary flag.
type AttachImageInput struct {
	ImageID   uuid.UUID
	VariantID *uuid.UUID
	Position  int
	IsPrimary bool
}

// ProductDTO is the outward shape of a product. IsAvailable is derived: true
// when at least one variant is available with stock on hand.
type ProductDTO struct {
	ID               uuid.UUID  `json:"id"`
	BrandID          uuid.UUID  `json:"brand_id"`
	CategoryID       uuid.UUID  `json:"category_id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Description      *string    `json:"description,omitempty"`
	ShortDescription *string    `json:"short_description,omitempty"`
	IsActive         bool       `json:"is_active"`
	IsAvailable      bool       `json:"is_available"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// ProductImageDTO is one image linked to a product, in gallery order.
type ProductImageDTO struct {
	ImageID   uuid.UUID  `json:"image_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Path      string     `json:"path"`
	Alt       *string    `json:"alt,omitempty"`
	Position  int        `json:"position"`
	IsPrimary bool       `json:"is_primary"`
}

// ListResult is one page of products plus the cursor for the next page.
type ListResult struct {
	Items      []ProductDTO `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

func toDTO(m *models.Product, available bool) *ProductDTO {
	dto := &ProductDTO{
		ID:               m.ID,
		BrandID:          m.BrandID,
		CategoryID:       m.CategoryID,
		Name:             m.Name,
		Slug:             m.Slug,
		Description:      m.Description,
		ShortDescription: m.ShortDescription,
		IsActive:         m.IsActive,
		IsAvailable:      available,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		dto.DeletedAt = &deletedAt
	}
	return dto
}

func toImageDTO(link *models.ProductImage) ProductImageDTO {
	dto := ProductImageDTO{
		ImageID:   link.ImageID,
		VariantID: link.VariantID,
		Position:  link.Position,
		IsPrimary: link.IsPrimary,
	}
	if link.Image != nil {
		dto.Path = link.Image.Path
		dto.Alt = link.Image.Alt
	}
	return dto
}
