package mutation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"freshmart-backend/internal/auth"
	"freshmart-backend/internal/config"
	"freshmart-backend/internal/database"
	"freshmart-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// a single connection keeps the in-memory schema alive
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.City{},
		&models.User{},
		&models.Role{},
		&models.UserHasRole{},
		&models.Permission{},
		&models.RoleHasPermission{},
		&models.Store{},
		&models.StoreHasAdmin{},
		&models.ProductCategory{},
		&models.Product{},
		&models.Address{},
		&models.Expedition{},
		&models.Order{},
		&models.OrderDetail{},
		&models.StockAdjustment{},
		&models.AuditLog{},
	))

	database.DB = db
}

func mutationTestApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Unexpected server error"})
		},
	})
	app.Get("/api/mutations/get-mutations", auth.Middleware(cfg), ListMutationsHandler())
	app.Post("/api/mutations/confirm-mutations", auth.Middleware(cfg), ConfirmMutationHandler())
	return app
}

// seedStoreAdmin creates a staff user holding store_admin and bound to
// the store, returning the user and a valid bearer token.
func seedStoreAdmin(t *testing.T, cfg *config.Config, storeID uint, email string) (*models.User, string) {
	t.Helper()

	var role models.Role
	if err := database.DB.Where("name = ?", models.RoleStoreAdmin).First(&role).Error; err != nil {
		role = models.Role{Name: models.RoleStoreAdmin}
		require.NoError(t, database.DB.Create(&role).Error)
	}

	user := models.User{Name: "Staff " + email, Username: email, Email: email, PasswordHash: "x"}
	require.NoError(t, database.DB.Create(&user).Error)
	require.NoError(t, database.DB.Create(&models.UserHasRole{UserID: user.ID, RoleID: role.ID}).Error)
	require.NoError(t, database.DB.Create(&models.StoreHasAdmin{StoreID: storeID, UserID: user.ID}).Error)

	token, err := auth.GenerateToken(cfg.JWTSecret, &user)
	require.NoError(t, err)
	return &user, token
}

func seedPending(t *testing.T, productID, fromStore, destStore uint) *models.StockAdjustment {
	t.Helper()

	pendingType := models.MutationPending
	pending := models.StockAdjustment{
		QtyChange:        10,
		Type:             models.AdjustmentTypeAddition,
		MutationType:     &pendingType,
		ManagedByID:      1,
		ProductID:        productID,
		FromStoreID:      &fromStore,
		DestiniedStoreID: &destStore,
	}
	require.NoError(t, database.DB.Create(&pending).Error)
	return &pending
}

func adjustmentCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.DB.Model(&models.StockAdjustment{}).Count(&count).Error)
	return count
}

func confirmRequest(token string, pendingID uint) *http.Request {
	body, _ := json.Marshal(ConfirmMutationRequest{PendingMutationID: pendingID})
	req := httptest.NewRequest(http.MethodPost, "/api/mutations/confirm-mutations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestConfirmUnknownIDReturns404AndInsertsNothing(t *testing.T) {
	setupTestDB(t)
	cfg := &config.Config{JWTSecret: testSecret}
	app := mutationTestApp(cfg)

	store := models.Store{Name: "Downtown"}
	require.NoError(t, database.DB.Create(&store).Error)
	_, token := seedStoreAdmin(t, cfg, store.ID, "downtown@freshmart.test")

	before := adjustmentCount(t)

	resp, err := app.Test(confirmRequest(token, 9999))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, before, adjustmentCount(t))
}

func TestConfirmAlreadyCompletedReturns404AndInsertsNothing(t *testing.T) {
	setupTestDB(t)
	cfg := &config.Config{JWTSecret: testSecret}
	app := mutationTestApp(cfg)

	store := models.Store{Name: "Downtown"}
	require.NoError(t, database.DB.Create(&store).Error)
	product := models.Product{Name: "Gala Apples", Slug: "gala-apples"}
	require.NoError(t, database.DB.Create(&product).Error)
	admin, token := seedStoreAdmin(t, cfg, store.ID, "downtown@freshmart.test")

	central := models.Store{Name: "Central"}
	require.NoError(t, database.DB.Create(&central).Error)

	pending := seedPending(t, product.ID, central.ID, store.ID)
	complete := CompletionRow(pending, admin.ID)
	require.NoError(t, database.DB.Create(&complete).Error)

	before := adjustmentCount(t)

	// the complete row is not pending; confirming it must 404
	resp, err := app.Test(confirmRequest(token, complete.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, before, adjustmentCount(t))
}

func TestConfirmForeignDestinationReturns403AndInsertsNothing(t *testing.T) {
	setupTestDB(t)
	cfg := &config.Config{JWTSecret: testSecret}
	app := mutationTestApp(cfg)

	mine := models.Store{Name: "Downtown"}
	require.NoError(t, database.DB.Create(&mine).Error)
	other := models.Store{Name: "Uptown"}
	require.NoError(t, database.DB.Create(&other).Error)
	central := models.Store{Name: "Central"}
	require.NoError(t, database.DB.Create(&central).Error)
	product := models.Product{Name: "Gala Apples", Slug: "gala-apples"}
	require.NoError(t, database.DB.Create(&product).Error)

	_, token := seedStoreAdmin(t, cfg, mine.ID, "downtown@freshmart.test")
	pending := seedPending(t, product.ID, central.ID, other.ID)

	before := adjustmentCount(t)

	resp, err := app.Test(confirmRequest(token, pending.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, before, adjustmentCount(t))
}

func TestConfirmOwnDestinationInsertsPairedCompleteRow(t *testing.T) {
	setupTestDB(t)
	cfg := &config.Config{JWTSecret: testSecret}
	app := mutationTestApp(cfg)

	store := models.Store{Name: "Downtown"}
	require.NoError(t, database.DB.Create(&store).Error)
	central := models.Store{Name: "Central"}
	require.NoError(t, database.DB.Create(&central).Error)
	product := models.Product{Name: "Gala Apples", Slug: "gala-apples"}
	require.NoError(t, database.DB.Create(&product).Error)

	admin, token := seedStoreAdmin(t, cfg, store.ID, "downtown@freshmart.test")
	pending := seedPending(t, product.ID, central.ID, store.ID)

	resp, err := app.Test(confirmRequest(token, pending.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var complete models.StockAdjustment
	require.NoError(t, database.DB.
		Where("adjustment_related_id = ?", pending.ID).
		First(&complete).Error)
	assert.Equal(t, 0, complete.QtyChange)
	assert.Equal(t, admin.ID, complete.ManagedByID)
	require.NotNil(t, complete.MutationType)
	assert.Equal(t, models.MutationComplete, *complete.MutationType)
	require.NotNil(t, complete.DestiniedStoreID)
	assert.Equal(t, store.ID, *complete.DestiniedStoreID)

	// the pending row itself stays untouched
	var reloaded models.StockAdjustment
	require.NoError(t, database.DB.First(&reloaded, pending.ID).Error)
	require.NotNil(t, reloaded.MutationType)
	assert.Equal(t, models.MutationPending, *reloaded.MutationType)
	assert.Nil(t, reloaded.AdjustmentRelatedID)
}

func TestListScopedToOwnStore(t *testing.T) {
	setupTestDB(t)
	cfg := &config.Config{JWTSecret: testSecret}
	app := mutationTestApp(cfg)

	mine := models.Store{Name: "Downtown"}
	require.NoError(t, database.DB.Create(&mine).Error)
	other := models.Store{Name: "Uptown"}
	require.NoError(t, database.DB.Create(&other).Error)
	central := models.Store{Name: "Central"}
	require.NoError(t, database.DB.Create(&central).Error)
	product := models.Product{Name: "Gala Apples", Slug: "gala-apples"}
	require.NoError(t, database.DB.Create(&product).Error)

	_, token := seedStoreAdmin(t, cfg, mine.ID, "downtown@freshmart.test")
	visible := seedPending(t, product.ID, central.ID, mine.ID)
	seedPending(t, product.ID, central.ID, other.ID)

	// a store_id override must not widen a store admin's scope
	url := fmt.Sprintf("/api/mutations/get-mutations?store_id=%d", other.ID)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Ok             bool               `json:"ok"`
		StockMutations []MutationResponse `json:"stockMutations"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Ok)
	require.Len(t, body.StockMutations, 1)
	assert.Equal(t, visible.ID, body.StockMutations[0].ID)
	require.NotNil(t, body.StockMutations[0].DestiniedStore)
	assert.Equal(t, mine.ID, body.StockMutations[0].DestiniedStore.ID)
}
