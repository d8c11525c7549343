package order

import (
	"fmt"

	"freshmart-backend/internal/audit"
	"freshmart-backend/internal/auth"
	"freshmart-backend/internal/database"
	"freshmart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CheckoutItem struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateOrderRequest struct {
	UserID               uint           `json:"userId"`
	CheckoutItems        []CheckoutItem `json:"checkoutItems"`
	SelectedAddressID    uint           `json:"selectedAddressId"`
	StoreID              uint           `json:"storeId"`
	SelectedCourier      string         `json:"selectedCourier"`
	SelectedCourierPrice float64        `json:"selectedCourierPrice"`
}

type OrderDetailResponse struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

type OrderResponse struct {
	ID            uint                  `json:"id"`
	Invoice       string                `json:"invoice"`
	UserID        uint                  `json:"user_id"`
	StoreID       uint                  `json:"store_id"`
	ManagedByID   uint                  `json:"managed_by_id"`
	ExpeditionID  uint                  `json:"expedition_id"`
	OrderStatusID int                   `json:"order_status_id"`
	AddressID     uint                  `json:"address_id"`
	Details       []OrderDetailResponse `json:"details"`
	CreatedAt     string                `json:"created_at"`
}

// POST /api/orders/create-order
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.ClaimsFromCtx(c)
		if err != nil {
			return err
		}

		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		// customers only check out for themselves
		if body.UserID != claims.UserID {
			return fiber.NewError(fiber.StatusUnauthorized, "User does not match the authenticated account")
		}

		if len(body.CheckoutItems) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Checkout items are required")
		}
		for _, item := range body.CheckoutItems {
			if item.ProductID == 0 || item.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Every checkout item needs a product_id and a positive quantity")
			}
		}
		if body.StoreID == 0 || body.SelectedAddressID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "storeId and selectedAddressId are required")
		}

		// the fulfilling store must have someone to manage the order
		var storeAdmin models.StoreHasAdmin
		if err := database.DB.
			Where("store_id = ?", body.StoreID).
			Order("id asc").
			First(&storeAdmin).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No admin found for this store")
		}

		var expedition models.Expedition
		if err := database.DB.
			Where("name = ?", body.SelectedCourier).
			First(&expedition).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Expedition not found")
		}

		var address models.Address
		if err := database.DB.
			Where("id = ? AND user_id = ?", body.SelectedAddressID, claims.UserID).
			First(&address).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Address not found")
		}

		var orderCount int64
		if err := database.DB.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not number the order")
		}

		details := make([]models.OrderDetail, 0, len(body.CheckoutItems))
		for _, item := range body.CheckoutItems {
			details = append(details, models.OrderDetail{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Subtotal:  LineSubtotal(item.Price, item.Quantity, body.SelectedCourierPrice),
			})
		}

		newOrder := models.Order{
			Invoice:       FormatInvoice(orderCount),
			UserID:        body.UserID,
			StoreID:       body.StoreID,
			ManagedByID:   storeAdmin.UserID,
			ExpeditionID:  expedition.ID,
			OrderStatusID: models.OrderStatusAwaitingPayment,
			AddressID:     body.SelectedAddressID,
			Details:       details,
		}

		if err := database.DB.Create(&newOrder).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create order")
		}

		var user models.User
		userName := ""
		if err := database.DB.First(&user, claims.UserID).Error; err == nil {
			userName = user.Name
		}
		storeID := newOrder.StoreID
		_ = audit.WriteLog(audit.LogOptions{
			StoreID:     &storeID,
			UserID:      claims.UserID,
			UserName:    userName,
			EntityType:  "order",
			EntityID:    newOrder.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Order %s created with %d items", newOrder.Invoice, len(newOrder.Details)),
			Before:      nil,
			After:       newOrder,
		})

		detailsResp := make([]OrderDetailResponse, 0, len(newOrder.Details))
		for _, d := range newOrder.Details {
			detailsResp = append(detailsResp, OrderDetailResponse{
				ID:        d.ID,
				ProductID: d.ProductID,
				Quantity:  d.Quantity,
				Price:     d.Price,
				Subtotal:  d.Subtotal,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(OrderResponse{
			ID:            newOrder.ID,
			Invoice:       newOrder.Invoice,
			UserID:        newOrder.UserID,
			StoreID:       newOrder.StoreID,
			ManagedByID:   newOrder.ManagedByID,
			ExpeditionID:  newOrder.ExpeditionID,
			OrderStatusID: newOrder.OrderStatusID,
			AddressID:     newOrder.AddressID,
			Details:       detailsResp,
			CreatedAt:     newOrder.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}
