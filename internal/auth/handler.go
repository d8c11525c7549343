package auth

import (
	"strings"

	"freshmart-backend/internal/config"
	"freshmart-backend/internal/database"
	"freshmart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Username = strings.TrimSpace(body.Username)

		if body.Email == "" || body.Password == "" || body.Name == "" || body.Username == "" {
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

		user := models.User{
			Name:         body.Name,
			Username:     body.Username,
			Email:        body.Email,
			PasswordHash: string(hash),
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"ok": true,
			"data": fiber.Map{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
			},
		})
	}
}

// POST /api/auth/register-super-admin
// Bootstrap endpoint; refuses once a super admin exists.
func RegisterSuperAdminHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Username = strings.TrimSpace(body.Username)

		if body.Email == "" || body.Password == "" || body.Name == "" || body.Username == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, username, email and password are required")
		}

		var role models.Role
		if err := database.DB.Where("name = ?", models.RoleSuperAdmin).First(&role).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "super_admin role is missing")
		}

		var count int64
		database.DB.Model(&models.UserHasRole{}).
			Where("role_id = ?", role.ID).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "A super admin already exists")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
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

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"ok": true,
			"data": fiber.Map{
				"id":    user.ID,
				"email": user.Email,
				"role":  models.RoleSuperAdmin,
			},
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Wrong email or password")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Wrong email or password")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate token")
		}

		return c.JSON(fiber.Map{
			"ok":    true,
			"token": token,
			"user": fiber.Map{
				"id":       user.ID,
				"name":     user.Name,
				"username": user.Username,
				"email":    user.Email,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := ClaimsFromCtx(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.Preload("Roles").First(&user, claims.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		roles := make([]models.RoleName, 0, len(user.Roles))
		for _, r := range user.Roles {
			roles = append(roles, r.Name)
		}

		response := fiber.Map{
			"ok":       true,
			"user_id":  user.ID,
			"name":     user.Name,
			"username": user.Username,
			"email":    user.Email,
			"roles":    roles,
		}

		// a store admin also gets their bound store
		var binding models.StoreHasAdmin
		if err := database.DB.Preload("Store").Where("user_id = ?", user.ID).Order("id asc").First(&binding).Error; err == nil {
			response["store"] = fiber.Map{
				"id":   binding.Store.ID,
				"name": binding.Store.Name,
				"type": binding.Store.Type,
			}
		}

		return c.JSON(response)
	}
}
