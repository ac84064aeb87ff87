package model

import (
	"time"

	"github.com/mbolis/fieldform/schema"
)

// Form is a named, typed container owning exactly one current schema.
// Version is the optimistic-lock counter: every schema update must carry the
// version it read, and bumps it by one on success.
type Form struct {
	ID        int           `json:"id,omitempty"`
	Version   int           `json:"version,omitempty"`
	Name      string        `json:"name" validate:"required"`
	Type      string        `json:"type" validate:"required,oneof=job inspection maintenance safety custom"`
	Schema    schema.Schema `json:"schema"`
	CreatedAt time.Time     `json:"created_at,omitempty"`
	UpdatedAt time.Time     `json:"updated_at,omitempty"`
}
