package catalog

import (
	"strconv"

	"freshmart-backend/internal/database"
	"freshmart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const defaultPageSize = 12

var sortableColumns = map[string]string{
	"name":       "products.name",
	"price":      "products.price",
	"created_at": "products.created_at",
}

type ProductResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	SKU          string  `json:"sku"`
	Slug         string  `json:"slug"`
	Price        float64 `json:"price"`
	CategoryID   *uint   `json:"category_id"`
	CategoryName string  `json:"category_name"`
}

// GET /api/products?page&limit&search&sortBy&order&category_id
// Read-only catalog listing; soft-deleted products are filtered out by
// the ORM's deleted_at convention.
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
		if limit < 1 || limit > 100 {
			limit = defaultPageSize
		}

		dbq := database.DB.Model(&models.Product{})

		if search := c.Query("search"); search != "" {
			pattern := "%" + search + "%"
			dbq = dbq.Where(
				"products.name ILIKE ? OR products.description ILIKE ? OR products.sku ILIKE ? OR products.slug ILIKE ?",
				pattern, pattern, pattern, pattern,
			)
		}

		if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
			categoryID, err := strconv.Atoi(categoryIDStr)
			if err != nil || categoryID < 1 {
				return fiber.NewError(fiber.StatusBadRequest, "category_id is invalid")
			}
			dbq = dbq.Where("products.category_id = ?", categoryID)
		}

		sortColumn, ok := sortableColumns[c.Query("sortBy", "name")]
		if !ok {
			sortColumn = sortableColumns["name"]
		}
		sortDir := "asc"
		if c.Query("order") == "desc" {
			sortDir = "desc"
		}

		var total int64
		if err := dbq.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count products")
		}

		var products []models.Product
		if err := dbq.
			Preload("Category").
			Order(sortColumn + " " + sortDir).
			Limit(limit).
			Offset((page - 1) * limit).
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list products")
		}

		resp := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			categoryName := ""
			if p.Category != nil {
				categoryName = p.Category.Name
			}
			resp = append(resp, ProductResponse{
				ID:           p.ID,
				Name:         p.Name,
				Description:  p.Description,
				SKU:          p.SKU,
				Slug:         p.Slug,
				Price:        p.Price,
				CategoryID:   p.CategoryID,
				CategoryName: categoryName,
			})
		}

		return c.JSON(fiber.Map{
			"ok":    true,
			"data":  resp,
			"total": total,
			"page":  page,
			"limit": limit,
		})
	}
}
