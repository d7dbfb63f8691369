package images

import (
	"time"

	"github.com/google/uuid"

	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/pagination"
)

// CreateInput carries the fields accepted when registering an image asset.
type CreateInput struct {
	Path        string
	Alt         *string
	Description *string
}

// UpdateInput patches an image's metadata. The stored path is immutable.
type UpdateInput struct {
	Alt         *string
	Description *string
}

// ListInput carries listing parameters.
type ListInput struct {
	Page pagination.Params
}

// ImageDTO is the outward shape of an image asset.
type ImageDTO struct {
	ID          uuid.UUID `json:"id"`
	Path        string    `json:"path"`
	Alt         *string   `json:"alt,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListResult is one page of images plus the cursor for the next page.
type ListResult struct {
	Items      []ImageDTO `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

func toDTO(m *models.Image) *ImageDTO {
	return &ImageDTO{
		ID:          m.ID,
		Path:        m.Path,
		Alt:         m.Alt,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
