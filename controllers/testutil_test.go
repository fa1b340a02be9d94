package controllers

import (
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/storekart/PriceRules/config"
	"github.com/storekart/PriceRules/models"
)

// setupTestDB points config.DB at a fresh in-memory database with the full
// schema migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// An in-memory database exists per connection; keep the pool at one so
	// transactions and queries see the same schema
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.BlacklistedToken{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.DiscountRule{},
		&models.RuleProductFilter{},
		&models.RuleCategoryFilter{},
		&models.StoreSettings{},
	))

	config.DB = db
	return db
}

// testContext builds a gin context suitable for invoking a handler directly
func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func setJSONBody(c *gin.Context, method, body string) {
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
}

func setIDParam(c *gin.Context, key string, id uint) {
	c.Params = gin.Params{{Key: key, Value: strconv.FormatUint(uint64(id), 10)}}
}
