package mutation

import (
	"strconv"

	"freshmart-backend/internal/audit"
	"freshmart-backend/internal/auth"
	"freshmart-backend/internal/database"
	"freshmart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// listings always page by 8, matching the admin console grid
const pageSize = 8

type StoreResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	CityName string `json:"city_name"`
}

type MutationResponse struct {
	ID             uint           `json:"id"`
	QtyChange      int            `json:"qty_change"`
	Type           string         `json:"type"`
	MutationType   string         `json:"mutation_type"`
	Detail         string         `json:"detail"`
	ProductID      uint           `json:"product_id"`
	ProductName    string         `json:"product_name"`
	OrderDetailID  *uint          `json:"order_detail_id"`
	FromStore      *StoreResponse `json:"from_store"`
	DestiniedStore *StoreResponse `json:"destinied_store"`
	CreatedAt      string         `json:"created_at"`
}

type ConfirmMutationRequest struct {
	PendingMutationID uint `json:"pendingMutationId"`
}

// GET /api/mutations/get-mutations?page&search&sort&store_id
func ListMutationsHandler() fiber.Handler {
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

		var requestedStore *uint
		if storeIDStr := c.Query("store_id"); storeIDStr != "" {
			parsed, err := strconv.Atoi(storeIDStr)
			if err != nil || parsed < 1 {
				return fiber.NewError(fiber.StatusBadRequest, "store_id is invalid")
			}
			id := uint(parsed)
			requestedStore = &id
		}

		dbq := database.DB.Model(&models.StockAdjustment{}).
			Where("stock_adjustments.mutation_type = ?", models.MutationPending).
			Not("stock_adjustments.adjustment_related_id IS NOT NULL")

		// store admins are pinned to their own store; the query
		// parameter only means something for super admins
		if storeID := scope.FilterStoreID(requestedStore); storeID != nil {
			dbq = dbq.Where("stock_adjustments.destinied_store_id = ?", *storeID)
		}

		// search matches the product name on the originating order
		// line; ILIKE keeps it case-insensitive regardless of the
		// database collation
		if search := c.Query("search"); search != "" {
			dbq = dbq.
				Joins("JOIN order_details ON order_details.id = stock_adjustments.order_detail_id").
				Joins("JOIN products ON products.id = order_details.product_id").
				Where("products.name ILIKE ?", "%"+search+"%")
		}

		sortDir := "desc"
		if c.Query("sort") == "asc" {
			sortDir = "asc"
		}

		var total int64
		if err := dbq.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count mutations")
		}

		var adjustments []models.StockAdjustment
		if err := dbq.
			Preload("Product").
			Preload("OrderDetail").
			Preload("FromStore").
			Preload("DestiniedStore").
			Order("stock_adjustments.created_at " + sortDir).
			Limit(pageSize).
			Offset((page - 1) * pageSize).
			Find(&adjustments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list mutations")
		}

		resp := make([]MutationResponse, 0, len(adjustments))
		for _, adj := range adjustments {
			mutationType := ""
			if adj.MutationType != nil {
				mutationType = *adj.MutationType
			}
			resp = append(resp, MutationResponse{
				ID:             adj.ID,
				QtyChange:      adj.QtyChange,
				Type:           string(adj.Type),
				MutationType:   mutationType,
				Detail:         adj.Detail,
				ProductID:      adj.ProductID,
				ProductName:    adj.Product.Name,
				OrderDetailID:  adj.OrderDetailID,
				FromStore:      storeWithCity(adj.FromStore),
				DestiniedStore: storeWithCity(adj.DestiniedStore),
				CreatedAt:      adj.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(fiber.Map{
			"ok":             true,
			"stockMutations": resp,
			"total":          total,
			"page":           page,
		})
	}
}

// storeWithCity resolves the store's city name with a secondary
// lookup per row, the way the admin console expects it.
func storeWithCity(store *models.Store) *StoreResponse {
	if store == nil {
		return nil
	}
	resp := &StoreResponse{ID: store.ID, Name: store.Name}
	if store.CityID != nil {
		var city models.City
		if err := database.DB.First(&city, *store.CityID).Error; err == nil {
			resp.CityName = city.Name
		}
	}
	return resp
}

// POST /api/mutations/confirm-mutations
func ConfirmMutationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.ClaimsFromCtx(c)
		if err != nil {
			return err
		}
		scope, err := auth.ResolveAdminScope(claims.UserID)
		if err != nil {
			return err
		}

		var body ConfirmMutationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.PendingMutationID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "pendingMutationId is required")
		}

		pending, err := FindPendingByID(body.PendingMutationID)
		if err != nil {
			return err
		}

		if !scope.IsSuperAdmin {
			if pending.DestiniedStoreID == nil || !scope.CanActOnStore(*pending.DestiniedStoreID) {
				return fiber.NewError(fiber.StatusForbidden, "You are not authorized to confirm mutations for this store")
			}
		}

		complete := CompletionRow(pending, claims.UserID)
		if err := database.DB.Create(&complete).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not confirm mutation")
		}

		var user models.User
		userName := ""
		if err := database.DB.First(&user, claims.UserID).Error; err == nil {
			userName = user.Name
		}
		_ = audit.WriteLog(audit.LogOptions{
			StoreID:     pending.DestiniedStoreID,
			UserID:      claims.UserID,
			UserName:    userName,
			EntityType:  "stock_adjustment",
			EntityID:    complete.ID,
			Action:      models.AuditActionCreate,
			Description: complete.Detail,
			Before:      nil,
			After:       complete,
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"ok":            true,
			"stockMutation": complete,
		})
	}
}
