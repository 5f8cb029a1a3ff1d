package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ChangeTypeCreate  = "CREATE"
	ChangeTypeUpdate  = "UPDATE"
	ChangeTypeDelete  = "DELETE"
	ChangeTypeReorder = "REORDER"
)

// Changelog rows are append-only. Nothing in the codebase issues an update or
// delete against this table.
type Changelog struct {
	gorm.Model
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	WBSItemID    uuid.UUID `json:"wbs_item_id" gorm:"type:uuid;not null;index"`
	ChangedBy    uuid.UUID `json:"changed_by" gorm:"type:uuid;not null"`
	ChangeType   string    `json:"change_type" gorm:"type:varchar(20);not null"`
	OldValue     string    `json:"old_value" gorm:"type:text"`
	NewValue     string    `json:"new_value" gorm:"type:text"`
	ChangeReason string    `json:"change_reason" gorm:"type:text"`
	ChangedAt    time.Time `json:"changed_at" gorm:"not null;index"`
}

func (c *Changelog) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.ChangedAt.IsZero() {
		c.ChangedAt = time.Now().UTC()
	}
	return nil
}
