package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Workspace struct {
	ID         string `gorm:"primaryKey"`
	MerchantID string `gorm:"index"`
	Name       string `gorm:"index"`
	Metadata   datatypes.JSONMap `gorm:"column:workspace_metadata"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt
}
