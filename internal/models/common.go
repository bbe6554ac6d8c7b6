// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields. Records in this system are immutable after
// insert and never deleted, so there is no soft-delete column.
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the record ID in the application so the same models
// work on PostgreSQL and on the sqlite databases used in tests.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Enums
type CeramicStatus string

const (
	CeramicStatusListed CeramicStatus = "listed"
	CeramicStatusSold   CeramicStatus = "sold"
)
