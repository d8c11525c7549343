package warehouse

import (
	"fmt"
	"time"

	"freshmart-backend/internal/auth"
	"freshmart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// GET /api/warehouse/manage-orders/export
// Same filters as the listing, streamed as an XLSX workbook.
func ExportOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.ClaimsFromCtx(c)
		if err != nil {
			return err
		}
		scope, err := auth.ResolveAdminScope(claims.UserID)
		if err != nil {
			return err
		}

		dbq, err := buildListQuery(c, scope)
		if err != nil {
			return err
		}

		var orders []models.Order
		if err := dbq.
			Preload("User").
			Preload("Details", func(db *gorm.DB) *gorm.DB {
				return db.Order("order_details.id asc")
			}).
			Preload("Details.Product").
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list orders")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Orders"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Invoice", "Customer", "Username", "Store ID", "Status", "Total Product Price", "Delivery Price", "Created At"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, o := range orders {
			totalProductPrice, deliveryPrice := OrderTotals(o.Details)
			values := []interface{}{
				o.Invoice,
				o.User.Name,
				o.User.Username,
				o.StoreID,
				o.OrderStatusID,
				totalProductPrice,
				deliveryPrice,
				o.CreatedAt.Format("2006-01-02 15:04:05"),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build export file")
		}

		filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102-150405"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(buf.Bytes())
	}
}
