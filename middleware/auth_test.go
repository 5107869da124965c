package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clearview-backend/models"
	"clearview-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func newAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	r := gin.New()
	r.GET("/protected", Authenticate(db, testSecret), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	r.GET("/admin", Authenticate(db, testSecret), RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, db
}

func makeUser(t *testing.T, db *gorm.DB, role string, active bool) *models.User {
	t.Helper()
	user := models.User{
		Username: fmt.Sprintf("%s-user", role),
		Password: "secret123",
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	r, db := newAuthRouter(t)
	user := makeUser(t, db, models.RoleCleaner, true)

	token, err := utils.GenerateToken(user.ID.String(), testSecret, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, get(r, "/protected", token).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/protected", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/protected", "not-a-token").Code)
}

func TestAuthenticateRejectsInactiveUser(t *testing.T) {
	r, db := newAuthRouter(t)
	user := makeUser(t, db, models.RoleCleaner, false)

	// The inactive flag must survive the insert as-is.
	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	require.False(t, stored.IsActive)

	token, err := utils.GenerateToken(user.ID.String(), testSecret, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/protected", token).Code)
}

func TestRequireRole(t *testing.T) {
	r, db := newAuthRouter(t)

	admin := makeUser(t, db, models.RoleAdmin, true)
	cleaner := makeUser(t, db, models.RoleCleaner, true)

	adminToken, err := utils.GenerateToken(admin.ID.String(), testSecret, time.Hour)
	require.NoError(t, err)
	cleanerToken, err := utils.GenerateToken(cleaner.ID.String(), testSecret, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, get(r, "/admin", adminToken).Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", cleanerToken).Code)
}
