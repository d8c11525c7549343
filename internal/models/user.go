package models

import (
	"time"

	"gorm.io/gorm"
)

type RoleName string

const (
	RoleSuperAdmin RoleName = "super_admin"
	RoleStoreAdmin RoleName = "store_admin"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Username     string `gorm:"size:100;uniqueIndex;not null"`
	Email        string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	Roles []Role `gorm:"many2many:user_has_roles"`
}

type Role struct {
	ID   uint     `gorm:"primaryKey"`
	Name RoleName `gorm:"size:50;uniqueIndex;not null"`

	Permissions []Permission `gorm:"many2many:role_has_permissions"`
}

type UserHasRole struct {
	UserID uint `gorm:"primaryKey"`
	RoleID uint `gorm:"primaryKey"`
}

// PermissionAdminAccess opens the admin console surface to staff whose
// role carries it, without granting the super_admin role itself.
const PermissionAdminAccess = "admin_access"

type Permission struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
}

type RoleHasPermission struct {
	RoleID       uint `gorm:"primaryKey"`
	PermissionID uint `gorm:"primaryKey"`
}
