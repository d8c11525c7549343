package warehouse

import (
	"strconv"
	"time"

	"freshmart-backend/internal/auth"
	"freshmart-backend/internal/database"
	"freshmart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const defaultPageSize = 10

var sortableColumns = map[string]string{
	"created_at":      "orders.created_at",
	"invoice":         "orders.invoice",
	"order_status_id": "orders.order_status_id",
}

type CustomerResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type ManagedOrderDetailResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

type ManagedOrderResponse struct {
	ID                uint                         `json:"id"`
	Invoice           string                       `json:"invoice"`
	Customer          CustomerResponse             `json:"customer"`
	StoreID           uint                         `json:"store_id"`
	OrderStatusID     int                          `json:"order_status_id"`
	PaymentProof      *string                      `json:"payment_proof"`
	TotalProductPrice float64                      `json:"totalProductPrice"`
	DeliveryPrice     float64                      `json:"deliveryPrice"`
	Details           []ManagedOrderDetailResponse `json:"details"`
	CreatedAt         string                       `json:"created_at"`
}

// buildListQuery applies every manage-orders filter except pagination,
// shared by the JSON listing and the XLSX export.
func buildListQuery(c *fiber.Ctx, scope *auth.AdminScope) (*gorm.DB, error) {
	dbq := database.DB.Model(&models.Order{}).
		Where("orders.order_status_id IN ?", StatusCodesForFilter(c.Query("filter", "all"))).
		Where("orders.payment_proof IS NOT NULL")

	var requestedStore *uint
	if storeIDStr := c.Query("storeId"); storeIDStr != "" {
		parsed, err := strconv.Atoi(storeIDStr)
		if err != nil || parsed < 1 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "storeId is invalid")
		}
		id := uint(parsed)
		requestedStore = &id
	}
	if storeID := scope.FilterStoreID(requestedStore); storeID != nil {
		dbq = dbq.Where("orders.store_id = ?", *storeID)
	}

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		dbq = dbq.Where(`(
			EXISTS (
				SELECT 1 FROM order_details
				JOIN products ON products.id = order_details.product_id
				WHERE order_details.order_id = orders.id AND products.name ILIKE ?
			)
			OR EXISTS (
				SELECT 1 FROM users
				WHERE users.id = orders.user_id AND (users.name ILIKE ? OR users.username ILIKE ?)
			)
		)`, pattern, pattern, pattern)
	}

	if startDateStr := c.Query("startDate"); startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "startDate must be 'YYYY-MM-DD'")
		}
		dbq = dbq.Where("orders.created_at >= ?", startDate)
	}
	if endDateStr := c.Query("endDate"); endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "endDate must be 'YYYY-MM-DD'")
		}
		dbq = dbq.Where("orders.created_at < ?", endDate.AddDate(0, 0, 1))
	}

	sortColumn, ok := sortableColumns[c.Query("sortBy", "created_at")]
	if !ok {
		sortColumn = sortableColumns["created_at"]
	}
	sortDir := "asc"
	if c.Query("order") == "desc" {
		sortDir = "desc"
	}
	dbq = dbq.Order(sortColumn + " " + sortDir)

	return dbq, nil
}

func toManagedOrderResponse(o models.Order) ManagedOrderResponse {
	totalProductPrice, deliveryPrice := OrderTotals(o.Details)

	detailsResp := make([]ManagedOrderDetailResponse, 0, len(o.Details))
	for _, d := range o.Details {
		detailsResp = append(detailsResp, ManagedOrderDetailResponse{
			ID:          d.ID,
			ProductID:   d.ProductID,
			ProductName: d.Product.Name,
			Quantity:    d.Quantity,
			Price:       d.Price,
			Subtotal:    d.Subtotal,
		})
	}

	return ManagedOrderResponse{
		ID:      o.ID,
		Invoice: o.Invoice,
		Customer: CustomerResponse{
			ID:       o.User.ID,
			Name:     o.User.Name,
			Username: o.User.Username,
		},
		StoreID:           o.StoreID,
		OrderStatusID:     o.OrderStatusID,
		PaymentProof:      o.PaymentProof,
		TotalProductPrice: totalProductPrice,
		DeliveryPrice:     deliveryPrice,
		Details:           detailsResp,
		CreatedAt:         o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/warehouse/manage-orders?filter&search&sortBy&order&page&limit&storeId&startDate&endDate
func ManageOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.ClaimsFromCtx(c)
		if err != nil {
			return err
		}
		scope, err := auth.ResolveAdminScope(claims.UserID)
		if err != nil {
			return err
		}

		page, _ := strconv.Atoi(c.Query("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
		if limit < 1 || limit > 100 {
			limit = defaultPageSize
		}

		dbq, err := buildListQuery(c, scope)
		if err != nil {
			return err
		}

		var total int64
		if err := dbq.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count orders")
		}

		var orders []models.Order
		if err := dbq.
			Preload("User").
			Preload("Details", func(db *gorm.DB) *gorm.DB {
				return db.Order("order_details.id asc")
			}).
			Preload("Details.Product").
			Limit(limit).
			Offset((page - 1) * limit).
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list orders")
		}

		resp := make([]ManagedOrderResponse, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, toManagedOrderResponse(o))
		}

		return c.JSON(fiber.Map{
			"ok":     true,
			"orders": resp,
			"total":  total,
			"page":   page,
			"limit":  limit,
		})
	}
}
