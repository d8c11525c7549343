package database

import (
	"log"

	"freshmart-backend/internal/config"
	"freshmart-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.City{},
		&models.User{},
		&models.Role{},
		&models.UserHasRole{},
		&models.Permission{},
		&models.RoleHasPermission{},
		&models.Store{},
		&models.StoreHasAdmin{},
		&models.ProductCategory{},
		&models.Product{},
		&models.Address{},
		&models.Expedition{},
		&models.Order{},
		&models.OrderDetail{},
		&models.StockAdjustment{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	seedRoles()

	log.Println("Database connection established, migration complete.")
}

// seedRoles makes sure the two staff roles exist so that role
// assignment never races against first use.
func seedRoles() {
	for _, name := range []models.RoleName{models.RoleSuperAdmin, models.RoleStoreAdmin} {
		var role models.Role
		if err := DB.Where("name = ?", name).First(&role).Error; err != nil {
			DB.Create(&models.Role{Name: name})
		}
	}
}
