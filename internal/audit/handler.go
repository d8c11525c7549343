package audit

import (
	"strconv"

	"freshmart-backend/internal/database"
	"freshmart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?page&limit&entity_type&store_id (super_admin only)
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		if limit < 1 || limit > 100 {
			limit = 20
		}

		dbq := database.DB.Model(&models.AuditLog{})

		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}
		if storeIDStr := c.Query("store_id"); storeIDStr != "" {
			storeID, err := strconv.Atoi(storeIDStr)
			if err != nil || storeID < 1 {
				return fiber.NewError(fiber.StatusBadRequest, "store_id is invalid")
			}
			dbq = dbq.Where("store_id = ?", storeID)
		}

		var total int64
		if err := dbq.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count audit logs")
		}

		var logs []models.AuditLog
		if err := dbq.
			Order("created_at desc").
			Limit(limit).
			Offset((page - 1) * limit).
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list audit logs")
		}

		return c.JSON(fiber.Map{
			"ok":    true,
			"data":  logs,
			"total": total,
			"page":  page,
		})
	}
}
