package models

import "time"

type StoreType string

const (
	StoreTypeCentral StoreType = "central"
	StoreTypeBranch  StoreType = "branch"
)

type Store struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null;unique"`
	Type      StoreType `gorm:"size:20;not null;default:branch"`
	Address   string    `gorm:"size:255"`
	CityID    *uint     `gorm:"index"`
	City      *City
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
	UpdatedAt time.Time

	Admins []StoreHasAdmin
}

// StoreHasAdmin binds a staff user to the store they manage.
// AssigneeID is the super admin who made the assignment.
type StoreHasAdmin struct {
	ID         uint `gorm:"primaryKey"`
	StoreID    uint `gorm:"index;not null"`
	Store      Store
	UserID     uint `gorm:"index;not null"`
	User       User
	AssigneeID *uint
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type City struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null"`
}
