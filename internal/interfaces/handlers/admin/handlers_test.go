package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	usersvc "famfolio-backend/internal/application/user"
	"famfolio-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAdminHandlers(t *testing.T) (*fiber.App, uuid.UUID, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Family{}, &domain.User{}, &domain.Account{},
		&domain.Holding{}, &domain.Transaction{}, &domain.TradeEvent{},
	))

	svc := &usersvc.Service{DB: db}
	admin, err := svc.RegisterFamily(context.Background(), "Smiths", "Dad", "password123", decimal.RequireFromString("100000.00"))
	require.NoError(t, err)

	h := &Handlers{Service: svc}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id":   admin.UserID.String(),
			"username":  admin.Username,
			"is_admin":  true,
			"family_id": admin.FamilyID.String(),
		})
		return c.Next()
	})
	app.Post("/create-user", h.CreateUser)
	app.Post("/reset", h.Reset)
	return app, admin.FamilyID, db
}

func postJSON(t *testing.T, app *fiber.App, path string, payload map[string]interface{}) (int, map[string]interface{}) {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestCreateUser_DefaultsCash(t *testing.T) {
	app, familyID, db := setupAdminHandlers(t)

	code, out := postJSON(t, app, "/create-user", map[string]interface{}{
		"username": "Kid1", "password": "1234",
	})
	require.Equal(t, 201, code)
	assert.Equal(t, "success", out["status"])

	var u domain.User
	require.NoError(t, db.Where("family_id = ? AND username = ?", familyID, "Kid1").First(&u).Error)
	assert.False(t, u.IsAdmin)
	var acct domain.Account
	require.NoError(t, db.Where("user_id = ?", u.UserID).First(&acct).Error)
	assert.True(t, acct.Balance.Equal(decimal.RequireFromString("1000.00")))
}

func TestCreateUser_Duplicate(t *testing.T) {
	app, _, _ := setupAdminHandlers(t)

	code, _ := postJSON(t, app, "/create-user", map[string]interface{}{"username": "Kid1", "password": "1234"})
	require.Equal(t, 201, code)
	code, _ = postJSON(t, app, "/create-user", map[string]interface{}{"username": "Kid1", "password": "1234"})
	assert.Equal(t, 400, code)
}

func TestReset_DefaultsAmountAndScopesToFamily(t *testing.T) {
	app, familyID, db := setupAdminHandlers(t)

	svc := &usersvc.Service{DB: db}
	other, err := svc.RegisterFamily(context.Background(), "Jones", "Mum", "password123", decimal.RequireFromString("555.00"))
	require.NoError(t, err)

	code, out := postJSON(t, app, "/reset", map[string]interface{}{})
	require.Equal(t, 200, code)
	assert.Equal(t, "Game reset! Everyone starts with 10000.00", out["message"])
	data := out["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["users_reset"])

	var acct domain.Account
	var u domain.User
	require.NoError(t, db.Where("family_id = ?", familyID).First(&u).Error)
	require.NoError(t, db.Where("user_id = ?", u.UserID).First(&acct).Error)
	assert.True(t, acct.Balance.Equal(decimal.RequireFromString("10000.00")))

	// Other family untouched. Use a fresh struct so the previous query's
	// primary key is not carried into this lookup's conditions.
	var otherAcct domain.Account
	require.NoError(t, db.Where("user_id = ?", other.UserID).First(&otherAcct).Error)
	assert.True(t, otherAcct.Balance.Equal(decimal.RequireFromString("555.00")))
}

func TestReset_NegativeAmount(t *testing.T) {
	app, _, _ := setupAdminHandlers(t)

	code, _ := postJSON(t, app, "/reset", map[string]interface{}{"reset_amount": "-5"})
	assert.Equal(t, 400, code)
}

func TestAdmin_NoSession(t *testing.T) {
	h := &Handlers{Service: &usersvc.Service{}}
	app := fiber.New()
	app.Post("/create-user", h.CreateUser)

	body, _ := json.Marshal(map[string]interface{}{"username": "x", "password": "1234"})
	req := httptest.NewRequest("POST", "/create-user", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
