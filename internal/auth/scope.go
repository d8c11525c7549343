package auth

import (
	"freshmart-backend/internal/database"
	"freshmart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminScope is the resolved staff authorization for one request. A
// principal may legitimately hold both roles; super admin privileges
// take precedence for store filtering.
type AdminScope struct {
	UserID       uint
	IsSuperAdmin bool
	IsStoreAdmin bool
	StoreID      uint // bound store, set only when IsStoreAdmin
}

// ResolveAdminScope looks up the staff roles of a principal. Roles are
// stored in the user_has_roles join table, not on the token, so the
// check always reflects the current assignments.
func ResolveAdminScope(userID uint) (*AdminScope, error) {
	var roles []models.Role
	err := database.DB.
		Joins("JOIN user_has_roles ON user_has_roles.role_id = roles.id").
		Where("user_has_roles.user_id = ?", userID).
		Where("roles.name IN ?", []models.RoleName{models.RoleSuperAdmin, models.RoleStoreAdmin}).
		Find(&roles).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not resolve roles")
	}

	scope := &AdminScope{UserID: userID}
	for _, r := range roles {
		switch r.Name {
		case models.RoleSuperAdmin:
			scope.IsSuperAdmin = true
		case models.RoleStoreAdmin:
			scope.IsStoreAdmin = true
		}
	}

	if !scope.IsSuperAdmin && !scope.IsStoreAdmin {
		return nil, fiber.NewError(fiber.StatusForbidden, "You are not authorized to perform this action")
	}

	if scope.IsStoreAdmin {
		var binding models.StoreHasAdmin
		err := database.DB.
			Where("user_id = ?", userID).
			Order("id asc").
			First(&binding).Error
		if err != nil {
			// distinct from having no staff role at all
			return nil, fiber.NewError(fiber.StatusForbidden, "You are not authorized for any store")
		}
		scope.StoreID = binding.StoreID
	}

	return scope, nil
}

// FilterStoreID decides which store a listing is scoped to. A store
// admin is always pinned to their own binding; a caller-supplied store
// id is only honored for super admins. Nil means no store filter.
func (s *AdminScope) FilterStoreID(requested *uint) *uint {
	if s.IsSuperAdmin {
		return requested
	}
	storeID := s.StoreID
	return &storeID
}

// CanActOnStore reports whether the principal may mutate state scoped
// to the given store.
func (s *AdminScope) CanActOnStore(storeID uint) bool {
	if s.IsSuperAdmin {
		return true
	}
	return s.IsStoreAdmin && s.StoreID == storeID
}

// HasPermission checks a named permission through the role/permission
// join tables.
func HasPermission(userID uint, permission string) bool {
	var count int64
	database.DB.Model(&models.Permission{}).
		Joins("JOIN role_has_permissions ON role_has_permissions.permission_id = permissions.id").
		Joins("JOIN user_has_roles ON user_has_roles.role_id = role_has_permissions.role_id").
		Where("user_has_roles.user_id = ? AND permissions.name = ?", userID, permission).
		Count(&count)
	return count > 0
}

// RequireSuperAdmin guards the admin console routes. Super admins pass
// outright; other staff pass only when one of their roles carries the
// admin_access permission.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := ClaimsFromCtx(c)
		if err != nil {
			return err
		}
		scope, scopeErr := ResolveAdminScope(claims.UserID)
		if scopeErr == nil && scope.IsSuperAdmin {
			return c.Next()
		}
		if HasPermission(claims.UserID, models.PermissionAdminAccess) {
			return c.Next()
		}
		if scopeErr != nil {
			return scopeErr
		}
		return fiber.NewError(fiber.StatusForbidden, "You are not authorized to perform this action")
	}
}
