package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yung988/eliceli-salon/internal/config"
	dbpkg "github.com/yung988/eliceli-salon/internal/db"
	"github.com/yung988/eliceli-salon/internal/models"
	"github.com/yung988/eliceli-salon/internal/routes"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(gdb))

	cfg := &config.Config{JWTSecret: "test-secret"}

	r := gin.New()
	routes.RegisterRoutes(r, gdb, cfg, zerolog.Nop())
	return r, gdb
}

func seedTestService(t *testing.T, db *gorm.DB) models.Service {
	t.Helper()
	svc := models.Service{Name: "Dámský střih", DurationMin: 60, Price: 850}
	require.NoError(t, db.Create(&svc).Error)
	return svc
}

func doJSON(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ======================================================
// PUBLIC API
// ======================================================

func TestListServicesEndpoint(t *testing.T) {
	r, db := newTestServer(t)
	seedTestService(t, db)

	w := doJSON(r, http.MethodGet, "/api/services", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data  []models.Service `json:"data"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Dámský střih", resp.Data[0].Name)
}

func TestAvailabilityEndpoint(t *testing.T) {
	r, db := newTestServer(t)
	svc := seedTestService(t, db)

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/availability?date=2026-09-07&service_id=%d", svc.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Date  string   `json:"date"`
		Slots []string `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2026-09-07", resp.Date)
	assert.Contains(t, resp.Slots, "09:00")
	assert.Contains(t, resp.Slots, "18:00")
	assert.NotContains(t, resp.Slots, "18:30")

	w = doJSON(r, http.MethodGet, "/api/availability?date=2026-09-07", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingEndpoint(t *testing.T) {
	r, db := newTestServer(t)
	svc := seedTestService(t, db)

	payload := gin.H{
		"service_id": svc.ID,
		"date":       "2026-09-07",
		"time":       "10:00",
		"name":       "Jana Nováková",
		"email":      "jana@example.com",
		"phone":      "+420777123456",
	}

	w := doJSON(r, http.MethodPost, "/api/bookings", payload, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success   bool   `json:"success"`
		Reference string `json:"reference"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Reference)

	// stejný termín podruhé musí skončit konfliktem
	w = doJSON(r, http.MethodPost, "/api/bookings", payload, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	var errResp struct {
		Code string `json:"error_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "time_conflict", errResp.Code)
}

// ======================================================
// AUTH + ADMIN API
// ======================================================

func seedTestAdmin(t *testing.T, db *gorm.DB, password string) models.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	admin := models.AdminUser{Name: "Eliška", Email: "admin@eliceli.cz", PasswordHash: string(hash)}
	require.NoError(t, db.Create(&admin).Error)
	return admin
}

func TestAdminRequiresToken(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/admin/bookings", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/admin/bookings", nil, "neplatny-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginAndAdminAccess(t *testing.T) {
	r, db := newTestServer(t)
	seedTestAdmin(t, db, "tajneheslo")

	w := doJSON(r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "admin@eliceli.cz",
		"password": "spatne",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "Admin@Eliceli.cz",
		"password": "tajneheslo",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string `json:"token"`
		Admin struct {
			Email string `json:"email"`
		} `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "admin@eliceli.cz", login.Admin.Email)

	w = doJSON(r, http.MethodGet, "/api/admin/bookings", nil, login.Token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/admin/dashboard", nil, login.Token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/admin/business-hours", nil, login.Token)
	assert.Equal(t, http.StatusOK, w.Code)
}
