package domain

import "time"

// Sector represents an organizational unit. Users and feedback entries are
// scoped to a sector. Sectors are never physically deleted; deactivation
// (Active=false) is the only delete path.
type Sector struct {
	// ID is the unique identifier for the sector (auto-generated).
	ID int64 `json:"id"`

	// Name is the unique sector name. Uniqueness holds across active and
	// inactive sectors alike. Constraints: 1-100 characters.
	Name string `json:"nome"`

	// Description is an optional free-text description.
	Description *string `json:"descricao"`

	// Active indicates whether the sector is active. Inactive sectors are
	// hidden from listings and block authentication for their users.
	Active bool `json:"ativo"`

	// CreatedAt is the timestamp when the sector was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the sector was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSector creates a new active Sector.
func NewSector(name string, description *string) *Sector {
	now := time.Now().UTC()
	return &Sector{
		Name:        name,
		Description: description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
