package models

import "time"

type AdjustmentType string

const (
	AdjustmentTypeAddition  AdjustmentType = "addition"
	AdjustmentTypeReduction AdjustmentType = "reduction"
)

// Mutation lifecycle: a "pending" row is an open inter-store transfer
// request; it is closed by inserting a paired "complete" row whose
// AdjustmentRelatedID points back at it. Pending rows are never updated.
const (
	MutationPending  = "pending"
	MutationComplete = "complete"
)

type StockAdjustment struct {
	ID                  uint           `gorm:"primaryKey"`
	QtyChange           int            `gorm:"not null"`
	Type                AdjustmentType `gorm:"size:20;not null"`
	MutationType        *string        `gorm:"size:20;index"`
	ManagedByID         uint           `gorm:"index;not null"`
	ManagedBy           User           `gorm:"foreignKey:ManagedByID"`
	ProductID           uint           `gorm:"index;not null"`
	Product             Product
	Detail              string `gorm:"size:255"`
	FromStoreID         *uint  `gorm:"index"`
	FromStore           *Store `gorm:"foreignKey:FromStoreID"`
	DestiniedStoreID    *uint  `gorm:"index"`
	DestiniedStore      *Store `gorm:"foreignKey:DestiniedStoreID"`
	OrderDetailID       *uint  `gorm:"index"`
	OrderDetail         *OrderDetail
	AdjustmentRelatedID *uint `gorm:"index"` // set on "complete" rows only
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
