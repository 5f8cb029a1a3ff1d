package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WBSItem is one node of a project's work breakdown structure. ParentID is a
// lookup key only: the tree is rebuilt on demand from the flat item list, so
// no item ever holds a strong reference to another.
type WBSItem struct {
	gorm.Model
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	ProjectID   uuid.UUID  `json:"project_id" gorm:"type:uuid;not null;index"`
	ParentID    *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`
	Code        string     `json:"code" gorm:"type:varchar(64);not null"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	Description string     `json:"description" gorm:"type:text"`
	LevelNumber int        `json:"level_number" gorm:"not null"`
	SortOrder   int        `json:"sort_order" gorm:"not null"`
}

func (w *WBSItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
