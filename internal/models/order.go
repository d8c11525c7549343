package models

import (
	"time"

	"gorm.io/gorm"
)

// Order status codes. Orders enter the warehouse listing only after a
// payment proof is uploaded (status 2 and above).
const (
	OrderStatusAwaitingPayment     = 1
	OrderStatusWaitingConfirmation = 2
	OrderStatusProcessing          = 3
	OrderStatusDelivered           = 4
	OrderStatusCompleted           = 5
	OrderStatusCancelled           = 6
)

type Order struct {
	ID            uint   `gorm:"primaryKey"`
	Invoice       string `gorm:"size:20;index;not null"`
	UserID        uint   `gorm:"index;not null"`
	User          User
	StoreID       uint `gorm:"index;not null"`
	Store         Store
	ManagedByID   uint `gorm:"not null"` // store admin assigned at checkout
	ManagedBy     User `gorm:"foreignKey:ManagedByID"`
	ExpeditionID  uint `gorm:"not null"`
	Expedition    Expedition
	OrderStatusID int  `gorm:"index;not null"`
	AddressID     uint `gorm:"not null"`
	Address       Address
	PaymentProof  *string `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`

	Details []OrderDetail `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderDetail struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`
	Product   Product
	Quantity  int     `gorm:"not null"`
	Price     float64 `gorm:"not null"` // unit price at checkout
	Subtotal  float64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Expedition struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Address struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null"`
	Label     string `gorm:"size:100"`
	Street    string `gorm:"size:255;not null"`
	CityID    *uint  `gorm:"index"`
	City      *City
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
