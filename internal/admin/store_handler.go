package admin

import (
	"strings"

	"freshmart-backend/internal/database"
	"freshmart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StoreResponse struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	Type      models.StoreType `json:"type"`
	Address   string           `json:"address"`
	CityID    *uint            `json:"city_id"`
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	CreatedAt string           `json:"created_at"`
}

type CreateStoreRequest struct {
	Name      string           `json:"name"`
	Type      models.StoreType `json:"type"`
	Address   string           `json:"address"`
	CityID    *uint            `json:"city_id"`
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
}

type UpdateStoreRequest struct {
	Name      *string           `json:"name"`
	Type      *models.StoreType `json:"type"`
	Address   *string           `json:"address"`
	CityID    *uint             `json:"city_id"`
	Latitude  *float64          `json:"latitude"`
	Longitude *float64          `json:"longitude"`
}

func toStoreResponse(s models.Store) StoreResponse {
	return StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Type:      s.Type,
		Address:   s.Address,
		CityID:    s.CityID,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		CreatedAt: s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/admin/stores
func CreateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Store name is required")
		}

		if body.Type == "" {
			body.Type = models.StoreTypeBranch
		}
		if body.Type != models.StoreTypeCentral && body.Type != models.StoreTypeBranch {
			return fiber.NewError(fiber.StatusBadRequest, "type must be 'central' or 'branch'")
		}

		store := models.Store{
			Name:      body.Name,
			Type:      body.Type,
			Address:   body.Address,
			CityID:    body.CityID,
			Latitude:  body.Latitude,
			Longitude: body.Longitude,
		}

		if err := database.DB.Create(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create store")
		}

		return c.Status(fiber.StatusCreated).JSON(toStoreResponse(store))
	}
}

// GET /api/admin/stores
func ListStoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stores []models.Store
		if err := database.DB.Order("name asc").Find(&stores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list stores")
		}

		resp := make([]StoreResponse, 0, len(stores))
		for _, s := range stores {
			resp = append(resp, toStoreResponse(s))
		}

		return c.JSON(resp)
	}
}

// GET /api/admin/stores/:id
func GetStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Store not found")
		}

		return c.JSON(toStoreResponse(store))
	}
}

// PUT /api/admin/stores/:id
func UpdateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Store not found")
		}

		var body UpdateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Store name cannot be empty")
			}
			store.Name = name
		}
		if body.Type != nil {
			if *body.Type != models.StoreTypeCentral && *body.Type != models.StoreTypeBranch {
				return fiber.NewError(fiber.StatusBadRequest, "type must be 'central' or 'branch'")
			}
			store.Type = *body.Type
		}
		if body.Address != nil {
			store.Address = *body.Address
		}
		if body.CityID != nil {
			store.CityID = body.CityID
		}
		if body.Latitude != nil {
			store.Latitude = *body.Latitude
		}
		if body.Longitude != nil {
			store.Longitude = *body.Longitude
		}

		if err := database.DB.Save(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update store")
		}

		return c.JSON(toStoreResponse(store))
	}
}

// DELETE /api/admin/stores/:id
func DeleteStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Store not found")
		}

		var orderCount int64
		database.DB.Model(&models.Order{}).Where("store_id = ?", store.ID).Count(&orderCount)
		if orderCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Store has orders and cannot be deleted")
		}

		if err := database.DB.Delete(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete store")
		}

		return c.JSON(fiber.Map{"ok": true})
	}
}
