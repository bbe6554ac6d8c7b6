// internal/tests/api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kilnworks/ceramics-backend/internal/handlers"
	"github.com/kilnworks/ceramics-backend/internal/identity"
	"github.com/kilnworks/ceramics-backend/internal/middleware"
	"github.com/kilnworks/ceramics-backend/internal/models"
	"github.com/kilnworks/ceramics-backend/internal/services"
)

type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	suite.Require().NoError(db.AutoMigrate(&models.CeramicRecord{}))

	suite.db = db
	suite.router = buildRouter(db)
}

// buildRouter wires the API routes without the rate limiter so tests can
// hammer the server freely.
func buildRouter(db *gorm.DB) *gin.Engine {
	pricingHandler := handlers.NewPricingHandler(services.NewPricingService(db))
	saleHandler := handlers.NewSaleHandler(services.NewSaleService(db))
	statsHandler := handlers.NewStatsHandler(services.NewStatsService(db))

	r := gin.New()
	protected := r.Group("")
	protected.Use(middleware.AuthRequired(identity.NewClaimsResolver()))
	{
		protected.POST("/predict", pricingHandler.Predict)
		protected.GET("/history", statsHandler.History)
		protected.POST("/historical", saleHandler.Create)
		protected.GET("/stats", statsHandler.Statistics)
	}
	return r
}

func (suite *APITestSuite) token(subject string) string {
	claims := jwt.RegisteredClaims{Subject: subject}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	suite.Require().NoError(err)
	return token
}

func (suite *APITestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func predictPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":            "Glazed vase",
		"date_created":    "2024-01-05",
		"date_listed":     "2024-01-10",
		"material_cost":   100,
		"labor_cost":      50,
		"overhead_cost":   20,
		"glazing_quality": 8,
		"originality":     7,
		"beauty":          9,
		"demand":          6,
		"hours_worked":    12,
		"markup":          0.3,
	}
}

func historicalPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":            "Raku bowl",
		"date_created":    "2024-01-05",
		"date_listed":     "2024-01-10",
		"date_sold":       "2024-01-25",
		"material_cost":   100,
		"labor_cost":      50,
		"overhead_cost":   20,
		"glazing_quality": 8,
		"originality":     7,
		"beauty":          9,
		"demand":          6,
		"hours_worked":    10,
		"actual_price":    250,
	}
}

func (suite *APITestSuite) TestHistoryWithoutCredential() {
	// nil-backed services: any storage access would panic, proving the
	// request is rejected before the handler runs
	suite.router = buildRouter(nil)

	w := suite.request("GET", "/history", "", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	response := suite.decode(w)
	errBlock := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "UNAUTHENTICATED", errBlock["code"])
}

func (suite *APITestSuite) TestHistoryWithMalformedCredential() {
	suite.router = buildRouter(nil)

	w := suite.request("GET", "/history", "garbage", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	response := suite.decode(w)
	errBlock := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "INVALID_CREDENTIAL", errBlock["code"])
}

func (suite *APITestSuite) TestWrongAuthScheme() {
	suite.router = buildRouter(nil)

	req, _ := http.NewRequest("GET", "/history", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	response := suite.decode(w)
	errBlock := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "UNAUTHENTICATED", errBlock["code"])
}

func (suite *APITestSuite) TestPredictFlow() {
	token := suite.token("u1")

	w := suite.request("POST", "/predict", token, predictPayload())
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	response := suite.decode(w)
	assert.InDelta(suite.T(), 303.88, response["predicted_price"].(float64), 1e-9)
	assert.Equal(suite.T(), "v0.1.0-simple", response["model_version"])

	breakdown := response["breakdown"].(map[string]interface{})
	assert.InDelta(suite.T(), 170.0, breakdown["total_cost"].(float64), 1e-9)
	assert.InDelta(suite.T(), 221.0, breakdown["base_price"].(float64), 1e-9)

	interval := response["confidence_interval"].([]interface{})
	suite.Require().Len(interval, 2)
	assert.InDelta(suite.T(), 273.49, interval[0].(float64), 1e-9)
	assert.InDelta(suite.T(), 334.26, interval[1].(float64), 1e-9)

	// the submission is now visible in the owner's history
	w = suite.request("GET", "/history", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	history := suite.decode(w)
	assert.EqualValues(suite.T(), 1, history["count"])
	items := history["items"].([]interface{})
	suite.Require().Len(items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(suite.T(), "listed", item["status"])
	assert.Equal(suite.T(), "u1", item["user_id"])
	assert.Equal(suite.T(), "2024-01-10", item["date_listed"])

	// but not in anyone else's
	w = suite.request("GET", "/history", suite.token("u2"), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.EqualValues(suite.T(), 0, suite.decode(w)["count"])
}

func (suite *APITestSuite) TestPredictValidation() {
	payload := predictPayload()
	payload["glazing_quality"] = 11

	w := suite.request("POST", "/predict", suite.token("u1"), payload)
	assert.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)

	response := suite.decode(w)
	errBlock := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "VALIDATION_ERROR", errBlock["code"])
}

func (suite *APITestSuite) TestHistoricalSale() {
	w := suite.request("POST", "/historical", suite.token("u1"), historicalPayload())
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	response := suite.decode(w)
	assert.Equal(suite.T(), "success", response["status"])

	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), "Raku bowl", data["name"])
	assert.InDelta(suite.T(), 250.0, data["actual_price"].(float64), 1e-9)
	assert.InDelta(suite.T(), 80.0, data["profit"].(float64), 1e-9)
	assert.InDelta(suite.T(), 47.1, data["profit_margin"].(float64), 1e-9)
	assert.EqualValues(suite.T(), 15, data["days_to_sell"])
	assert.NotEmpty(suite.T(), data["id"])

	var stored models.CeramicRecord
	suite.Require().NoError(suite.db.First(&stored).Error)
	assert.Equal(suite.T(), models.CeramicStatusSold, stored.Status)
	assert.Nil(suite.T(), stored.PredictedPrice)
	assert.Nil(suite.T(), stored.Notes)
}

func (suite *APITestSuite) TestStats() {
	token := suite.token("u1")

	// no data yet
	w := suite.request("GET", "/stats", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	response := suite.decode(w)
	assert.EqualValues(suite.T(), 0, response["total_items"])
	assert.Equal(suite.T(), "No historical sales data yet", response["message"])
	assert.NotContains(suite.T(), response, "price_stats")

	// two sales for u1, one for someone else
	for _, price := range []float64{100, 200} {
		payload := historicalPayload()
		payload["actual_price"] = price
		w = suite.request("POST", "/historical", token, payload)
		suite.Require().Equal(http.StatusOK, w.Code)
	}
	w = suite.request("POST", "/historical", suite.token("u2"), historicalPayload())
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request("GET", "/stats", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	response = suite.decode(w)
	assert.EqualValues(suite.T(), 2, response["total_items"])
	assert.EqualValues(suite.T(), 2, response["sold_items"])
	assert.EqualValues(suite.T(), 0, response["listed_items"])
	assert.Equal(suite.T(), false, response["ready_for_training"])

	priceStats := response["price_stats"].(map[string]interface{})
	assert.InDelta(suite.T(), 100.0, priceStats["min"].(float64), 1e-9)
	assert.InDelta(suite.T(), 200.0, priceStats["max"].(float64), 1e-9)
	assert.InDelta(suite.T(), 150.0, priceStats["average"].(float64), 1e-9)
	assert.InDelta(suite.T(), 300.0, priceStats["total_revenue"].(float64), 1e-9)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
