package reports

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"axiso-backend/internal/application/access"
	reportsvc "axiso-backend/internal/application/reports"
	"axiso-backend/internal/constants"
	"axiso-backend/internal/domain"
	"axiso-backend/internal/infrastructure/database"
	"axiso-backend/internal/middleware"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var admin = access.Session{UserID: "u1", Email: "office@axisogreen.in", Role: "admin"}

func setupReportsTest(t *testing.T, sess access.Session) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	for i, kwh := range []float64{5, 3} {
		p := domain.Project{
			CustomerName:   []string{"Ravi", "Anita"}[i],
			ProposalAmount: decimal.NewFromInt(100000),
			ProjectType:    domain.ProjectTypeDCR,
			PaymentMode:    domain.FinancingCash,
			Kwh:            kwh,
			StartDate:      time.Date(2025, time.Month(i+1), 10, 0, 0, 0, 0, time.UTC),
			CurrentStage:   domain.Stages[i*3],
			Status:         domain.StatusActive,
		}
		require.NoError(t, db.Create(&p).Error)
	}

	fixed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	h := &Handlers{Service: &reportsvc.Service{DB: db, Now: func() time.Time { return fixed }}}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		middleware.SetCurrentSession(c, sess)
		return c.Next()
	})
	app.Get("/dashboard", h.Dashboard)
	app.Get("/reports", h.Report)
	app.Get("/reports/export", h.Export)
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestDashboard(t *testing.T) {
	app := setupReportsTest(t, admin)

	status, out := get(t, app, "/dashboard?sort=stage&order=asc")
	require.Equal(t, fiber.StatusOK, status)
	data := out["data"].(map[string]interface{})
	totals := data["totals"].(map[string]interface{})
	assert.Equal(t, float64(2), totals["projects"])
	assert.Equal(t, "200000", totals["revenue"])
	active := data["active_projects"].([]interface{})
	require.Len(t, active, 2)
	assert.Equal(t, "Ravi", active[0].(map[string]interface{})["customer_name"])

	status, _ = get(t, app, "/dashboard?sort=name")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestDashboard_NoRevenueForOperations(t *testing.T) {
	app := setupReportsTest(t, access.Session{UserID: "u2", Email: constants.OperationsEmail, Role: "admin"})

	status, out := get(t, app, "/dashboard")
	require.Equal(t, fiber.StatusOK, status)
	totals := out["data"].(map[string]interface{})["totals"].(map[string]interface{})
	_, present := totals["revenue"]
	assert.False(t, present)
}

func TestReport(t *testing.T) {
	app := setupReportsTest(t, admin)

	status, out := get(t, app, "/reports")
	require.Equal(t, fiber.StatusOK, status)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, float64(2025), data["year"])
	monthly := data["monthly_kwh"].([]interface{})
	assert.Equal(t, float64(5), monthly[0].(map[string]interface{})["kwh"])
	assert.Equal(t, float64(3), monthly[1].(map[string]interface{})["kwh"])

	status, _ = get(t, app, "/reports?year=abc")
	assert.Equal(t, fiber.StatusBadRequest, status)
	status, _ = get(t, app, "/reports?year=12")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestExport(t *testing.T) {
	app := setupReportsTest(t, admin)

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/export?year=2025", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "axiso-report-2025.xlsx")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()
	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Project report 2025", title)
}
