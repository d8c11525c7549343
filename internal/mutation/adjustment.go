package mutation

import (
	"fmt"

	"freshmart-backend/internal/database"
	"freshmart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FindPendingByID is the single place that decides whether a mutation
// is still open. A pending row is never updated or deleted; its state
// lives in the mutation_type tag and the absence of a linked complete
// row, so every caller must go through this lookup.
func FindPendingByID(id uint) (*models.StockAdjustment, error) {
	var pending models.StockAdjustment
	err := database.DB.
		Preload("Product").
		Where("id = ? AND mutation_type = ?", id, models.MutationPending).
		First(&pending).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Pending mutation not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load mutation")
	}
	return &pending, nil
}

// CompletionRow builds the paired "complete" record that closes out a
// pending transfer. The pending row itself stays untouched; the new
// row copies its references, carries no quantity change of its own,
// and links back through AdjustmentRelatedID.
func CompletionRow(pending *models.StockAdjustment, managedByID uint) models.StockAdjustment {
	mutationType := models.MutationComplete
	return models.StockAdjustment{
		QtyChange:           0,
		Type:                pending.Type,
		MutationType:        &mutationType,
		ManagedByID:         managedByID,
		ProductID:           pending.ProductID,
		Detail:              completionDetail(pending),
		FromStoreID:         pending.FromStoreID,
		DestiniedStoreID:    pending.DestiniedStoreID,
		OrderDetailID:       pending.OrderDetailID,
		AdjustmentRelatedID: &pending.ID,
	}
}

func completionDetail(pending *models.StockAdjustment) string {
	productName := pending.Product.Name
	if productName == "" {
		productName = fmt.Sprintf("product #%d", pending.ProductID)
	}
	return fmt.Sprintf("Confirmed receipt of %d x %s (transfer request #%d)", pending.QtyChange, productName, pending.ID)
}
