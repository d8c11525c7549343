package admin

import (
	"strings"

	"freshmart-backend/internal/auth"
	"freshmart-backend/internal/database"
	"freshmart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type CreateStoreAdminRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type StoreAdminResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	StoreID   uint   `json:"store_id"`
	CreatedAt string `json:"created_at"`
}

// POST /api/admin/stores/:id/admins
// Creates a staff user, grants the store_admin role and binds them to
// the store in one request.
func CreateStoreAdminHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.ClaimsFromCtx(c)
		if err != nil {
			return err
		}

		storeIDParam := c.Params("id")
		var store models.Store
		if err := database.DB.First(&store, "id = ?", storeIDParam).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Store not found")
		}

		var body CreateStoreAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Username = strings.TrimSpace(body.Username)

		if body.Name == "" || body.Username == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, username, email and password are required")
		}

		var count int64
		database.DB.Model(&models.User{}).
			Where("email = ? OR username = ?", body.Email, body.Username).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Email or username is already taken")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		var role models.Role
		if err := database.DB.Where("name = ?", models.RoleStoreAdmin).First(&role).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "store_admin role is missing")
		}

		user := models.User{
			Name:         body.Name,
			Username:     body.Username,
			Email:        body.Email,
			PasswordHash: string(hash),
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
		}

		if err := database.DB.Create(&models.UserHasRole{UserID: user.ID, RoleID: role.ID}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not assign role")
		}

		assigneeID := claims.UserID
		binding := models.StoreHasAdmin{
			StoreID:    store.ID,
			UserID:     user.ID,
			AssigneeID: &assigneeID,
		}
		if err := database.DB.Create(&binding).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not bind admin to store")
		}

		return c.Status(fiber.StatusCreated).JSON(StoreAdminResponse{
			ID:        user.ID,
			Name:      user.Name,
			Username:  user.Username,
			Email:     user.Email,
			StoreID:   store.ID,
			CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// GET /api/admin/stores/:id/admins
func ListStoreAdminsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeIDParam := c.Params("id")
		var store models.Store
		if err := database.DB.First(&store, "id = ?", storeIDParam).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Store not found")
		}

		var bindings []models.StoreHasAdmin
		if err := database.DB.
			Preload("User").
			Where("store_id = ?", store.ID).
			Order("id asc").
			Find(&bindings).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list store admins")
		}

		resp := make([]StoreAdminResponse, 0, len(bindings))
		for _, b := range bindings {
			resp = append(resp, StoreAdminResponse{
				ID:        b.User.ID,
				Name:      b.User.Name,
				Username:  b.User.Username,
				Email:     b.User.Email,
				StoreID:   b.StoreID,
				CreatedAt: b.User.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(resp)
	}
}
