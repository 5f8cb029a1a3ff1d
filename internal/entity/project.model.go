package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	gorm.Model
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"type:varchar(100)"`
	Items     []WBSItem `json:"items,omitempty" gorm:"foreignKey:ProjectID"`
	CompanyID uuid.UUID `json:"company_id" gorm:"type:uuid"`
	Company   Company   `json:"-" gorm:"foreignKey:CompanyID"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
