package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/travelbook/travelbook-backend/internal/middleware"
	"github.com/travelbook/travelbook-backend/internal/models"
	"github.com/travelbook/travelbook-backend/pkg/utils"
)

// setupTestDB opens a per-test in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.TravelOption{},
		&models.Booking{},
	))

	return db
}

// setupRouter wires the same routes as cmd/api/main.go, minus Redis and
// the WebSocket hub
func setupRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	r := gin.New()

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", Register(db))
			auth.POST("/login", Login(db))
		}

		travels := api.Group("/travels")
		{
			travels.GET("", ListTravelOptions(db))
			travels.GET("/:id", GetTravelOption(db))
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("/profile", GetProfile(db))
				users.PUT("/profile", UpdateProfile(db))
			}

			bookings := protected.Group("/bookings")
			{
				bookings.POST("", CreateBooking(db, nil))
				bookings.GET("", GetMyBookings(db))
				bookings.POST("/:id/cancel", CancelBooking(db, nil))
			}
		}
	}

	return r
}

// createUser inserts a user and returns it together with a valid token
func createUser(t *testing.T, db *gorm.DB, username string) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Username: username,
		Password: "testpass123",
	}
	require.NoError(t, user.HashPassword())
	require.NoError(t, db.Create(user).Error)

	token, err := utils.GenerateToken(user)
	require.NoError(t, err)

	return user, token
}

func performRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func reloadTravel(t *testing.T, db *gorm.DB, id uint) models.TravelOption {
	t.Helper()
	var travel models.TravelOption
	require.NoError(t, db.First(&travel, id).Error)
	return travel
}
