package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"axiso-backend/internal/application/auth"
	"axiso-backend/internal/config"
	"axiso-backend/internal/constants"
	"axiso-backend/internal/infrastructure/database"
	"axiso-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const password = "password123"

func setupApp(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	ctx := context.Background()
	accounts := []auth.CreateUserInput{
		{Email: constants.SuperAdminEmail, Role: "admin"},
		{Email: "office@axisogreen.in", Role: "admin"},
		{Email: constants.FinanceEmail},
	}
	for _, a := range accounts {
		a.Password = password
		_, err := auth.CreateUser(ctx, db, a)
		require.NoError(t, err)
	}

	cfg := &config.Config{
		Env:                 "test",
		HealthAdminKey:      "reset-key",
		RequestTimeout:      5 * time.Second,
		PaymentDedupeWindow: 5 * time.Second,
		LoginRatePerMinute:  3,
	}
	return New(cfg, db, rdb)
}

type client struct {
	t      *testing.T
	app    *fiber.App
	cookie string
}

func (cl *client) do(method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	cl.t.Helper()
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cl.cookie != "" {
		req.Header.Set("Cookie", cl.cookie)
	}
	resp, err := cl.app.Test(req, -1)
	require.NoError(cl.t, err)
	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func (cl *client) login(email string) {
	cl.t.Helper()
	resp, _ := cl.do("POST", "/api/v1/auth/login", map[string]string{"email": email, "password": password})
	require.Equal(cl.t, fiber.StatusOK, resp.StatusCode)
	for _, v := range resp.Header.Values("Set-Cookie") {
		if strings.HasPrefix(v, middleware.SessionCookieName+"=") {
			cl.cookie = strings.SplitN(v, ";", 2)[0]
		}
	}
	require.NotEmpty(cl.t, cl.cookie)
}

func TestRequiresSession(t *testing.T) {
	cl := &client{t: t, app: setupApp(t)}
	for _, path := range []string{"/api/v1/projects", "/api/v1/dashboard", "/api/v1/service-tickets", "/api/v1/finance"} {
		resp, _ := cl.do("GET", path, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
	resp, _ := cl.do("GET", "/health/json", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProjectPaymentReceiptFlow(t *testing.T) {
	cl := &client{t: t, app: setupApp(t)}
	cl.login(constants.SuperAdminEmail)

	resp, out := cl.do("POST", "/api/v1/projects", map[string]interface{}{
		"customer_name":   "Lakshmi Rao",
		"proposal_amount": 100000,
		"advance_payment": 20000,
		"project_type":    "DCR",
		"payment_mode":    "Cash",
		"start_date":      "2024-03-01",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := out["data"].(map[string]interface{})["id"].(string)

	payment := map[string]interface{}{"amount": 30000, "payment_mode": "UPI", "payment_date": "2024-03-10"}
	resp, out = cl.do("POST", "/api/v1/projects/"+id+"/payments", payment)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "50000", data["project"].(map[string]interface{})["balance"])
	paymentID := data["payment"].(map[string]interface{})["id"].(string)

	// an identical resubmission inside the window is rejected
	resp, _ = cl.do("POST", "/api/v1/projects/"+id+"/payments", payment)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, out = cl.do("POST", "/api/v1/projects/"+id+"/payments", map[string]interface{}{"amount": 60000, "payment_mode": "Cash"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "error", out["status"])

	resp, out = cl.do("GET", "/api/v1/payments/"+paymentID+"/receipt?format=json", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	receipt := out["data"].(map[string]interface{})["receipt"].(map[string]interface{})
	assert.Equal(t, "Indian Rupee Thirty Thousand Only", receipt["amount_in_words"])

	resp, out = cl.do("GET", "/api/v1/dashboard", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "100000", out["data"].(map[string]interface{})["totals"].(map[string]interface{})["revenue"])

	resp, _ = cl.do("GET", "/api/v1/finance", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestFinanceAccount(t *testing.T) {
	cl := &client{t: t, app: setupApp(t)}
	cl.login(constants.FinanceEmail)

	resp, out := cl.do("GET", "/api/v1/finance", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", out["status"])

	resp, out = cl.do("GET", "/api/v1/auth/me", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	caps := out["data"].(map[string]interface{})["capabilities"].(map[string]interface{})
	assert.Equal(t, true, caps[constants.ViewFinance])
	assert.Equal(t, false, caps[constants.ViewRevenue])
}

func TestServiceTicketsRoute(t *testing.T) {
	cl := &client{t: t, app: setupApp(t)}
	cl.login("office@axisogreen.in")

	resp, out := cl.do("POST", "/api/v1/service-tickets", map[string]string{"customer_name": "Ravi", "description": "Panel cracked"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := out["data"].(map[string]interface{})["id"].(string)

	resp, _ = cl.do("POST", "/api/v1/service-tickets/"+id+"/complete", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, out = cl.do("GET", "/api/v1/service-tickets?status=completed", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, out["data"], 1)
}

func TestLoginRateLimited(t *testing.T) {
	cl := &client{t: t, app: setupApp(t)}
	var last *http.Response
	for i := 0; i < 4; i++ {
		last, _ = cl.do("POST", "/api/v1/auth/login", map[string]string{"email": "nobody@axisogreen.in", "password": "x"})
	}
	assert.Equal(t, fiber.StatusTooManyRequests, last.StatusCode)
}
