package options

import (
	"time"

	"github.com/google/uuid"

	"github.com/smuvr/spraby/pkg/db/models"
	"github.com/smuvr/spraby/pkg/enums"
	"github.com/smuvr/spraby/pkg/pagination"
)

// CreateInput carries the fields accepted when defining a new option.
// Slug and InternalName are derived from Name when omitted.
type CreateInput struct {
	Name         string
	InternalName string
	Slug         string
	Type         enums.OptionType
}

// UpdateInput patches an option. Nil fields are left untouched; an omitted
// slug is re-derived when the name changes.
type UpdateInput struct {
	Name         *string
	InternalName *string
	Slug         *string
	Type         *enums.OptionType
}

// ListInput carries listing parameters.
type ListInput struct {
	Page pagination.Params
}

// OptionDTO is the outward shape of an option definition.
type OptionDTO struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	InternalName string           `json:"internal_name"`
	Slug         string           `json:"slug"`
	Type         enums.OptionType `json:"type"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ListResult is one page of options plus the cursor for the next page.
type ListResult struct {
	Items      []OptionDTO `json:"items"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

func toDTO(m *models.Option) *OptionDTO {
	return &OptionDTO{
		ID:           m.ID,
		Name:         m.Name,
		InternalName: m.InternalName,
		Slug:         m.Slug,
		Type:         m.Type,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
