package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null;unique"`
	Description string `gorm:"size:500"`
	SKU         string `gorm:"size:50;index"`
	Slug        string `gorm:"size:120;uniqueIndex"`
	Price       float64
	CategoryID  *uint `gorm:"index"`
	Category    *ProductCategory
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
