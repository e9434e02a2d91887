// internal/handlers/trade_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bookswap/bookswap-api/internal/models"
	"github.com/bookswap/bookswap-api/internal/services"
)

var handlerTestDBCounter int64

type TradeHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine

	alice *models.User
	bob   *models.User

	aliceBook *models.Book
	bobBook   *models.Book
}

func (suite *TradeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	n := atomic.AddInt64(&handlerTestDBCounter, 1)
	dsn := fmt.Sprintf("file:trade_handler_test_%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), db.AutoMigrate(&models.User{}, &models.Book{}, &models.Trade{}))
	suite.db = db

	tradeHandler := NewTradeHandler(services.NewTradeService(db))

	suite.router = gin.New()
	trades := suite.router.Group("/trades")
	trades.Use(testAuth())
	{
		trades.POST("", tradeHandler.InitiateTrade)
		trades.GET("", tradeHandler.GetMyTrades)
		trades.GET("/:id", tradeHandler.GetTrade)
		trades.PUT("/:id", tradeHandler.RespondToTrade)
		trades.PUT("/:id/counter", tradeHandler.RespondToCounter)
		trades.PUT("/:id/complete", tradeHandler.CompleteTrade)
		trades.DELETE("/:id", tradeHandler.CancelTrade)
	}

	suite.alice = suite.createUser("Alice", "alice@example.com")
	suite.bob = suite.createUser("Bob", "bob@example.com")
	suite.aliceBook = suite.createBook(suite.alice.ID, "Snow Crash")
	suite.bobBook = suite.createBook(suite.bob.ID, "Cryptonomicon")
}

// testAuth stands in for the JWT middleware: the test identifies the
// caller via the X-Test-User header.
func testAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("user_id", id)
		}
		c.Next()
	}
}

func (suite *TradeHandlerTestSuite) createUser(name, email string) *models.User {
	user := &models.User{Name: name, Email: email, Role: models.UserRoleUser}
	assert.NoError(suite.T(), user.SetPassword("password123"))
	assert.NoError(suite.T(), suite.db.Create(user).Error)
	return user
}

func (suite *TradeHandlerTestSuite) createBook(ownerID uuid.UUID, title string) *models.Book {
	book := &models.Book{
		Title:       title,
		Author:      "Neal Stephenson",
		Description: "A novel",
		Genre:       "Science Fiction",
		Language:    "English",
		Edition:     "1st",
		OwnerID:     ownerID,
		Status:      models.BookStatusAvailable,
	}
	assert.NoError(suite.T(), suite.db.Create(book).Error)
	return book
}

func (suite *TradeHandlerTestSuite) request(method, path string, asUser uuid.UUID, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", asUser.String())

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TradeHandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (suite *TradeHandlerTestSuite) initiateTrade() string {
	w := suite.request("POST", "/trades", suite.alice.ID, map[string]interface{}{
		"offered_book_id":   suite.aliceBook.ID,
		"requested_book_id": suite.bobBook.ID,
		"notes":             "Trade?",
	})
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	response := suite.decode(w)
	trade := response["data"].(map[string]interface{})["trade"].(map[string]interface{})
	return trade["id"].(string)
}

func (suite *TradeHandlerTestSuite) TestInitiateTrade() {
	tradeID := suite.initiateTrade()
	assert.NotEmpty(suite.T(), tradeID)

	w := suite.request("GET", "/trades/"+tradeID, suite.alice.ID, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	trade := response["data"].(map[string]interface{})["trade"].(map[string]interface{})
	assert.Equal(suite.T(), "proposed", trade["status"])
}

func (suite *TradeHandlerTestSuite) TestInitiateTradeUnauthenticated() {
	req, _ := http.NewRequest("POST", "/trades", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *TradeHandlerTestSuite) TestRespondAcceptedByWrongUser() {
	tradeID := suite.initiateTrade()

	w := suite.request("PUT", "/trades/"+tradeID, suite.alice.ID, map[string]interface{}{
		"status": "accepted",
	})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	response := suite.decode(w)
	assert.False(suite.T(), response["success"].(bool))
}

func (suite *TradeHandlerTestSuite) TestFullLifecycleOverHTTP() {
	tradeID := suite.initiateTrade()

	// Owner accepts.
	w := suite.request("PUT", "/trades/"+tradeID, suite.bob.ID, map[string]interface{}{
		"status": "accepted",
		"notes":  "Sounds good",
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Owner confirms the exchange.
	w = suite.request("PUT", "/trades/"+tradeID+"/complete", suite.bob.ID, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	response := suite.decode(w)
	trade := response["data"].(map[string]interface{})["trade"].(map[string]interface{})
	assert.Equal(suite.T(), "awaiting_requester", trade["status"])

	// Requester finalizes.
	w = suite.request("PUT", "/trades/"+tradeID+"/complete", suite.alice.ID, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	response = suite.decode(w)
	trade = response["data"].(map[string]interface{})["trade"].(map[string]interface{})
	assert.Equal(suite.T(), "completed", trade["status"])

	// Ownership swapped.
	var book models.Book
	assert.NoError(suite.T(), suite.db.First(&book, "id = ?", suite.bobBook.ID).Error)
	assert.Equal(suite.T(), suite.alice.ID, book.OwnerID)
}

func (suite *TradeHandlerTestSuite) TestCompleteOutOfOrder() {
	tradeID := suite.initiateTrade()

	w := suite.request("PUT", "/trades/"+tradeID, suite.bob.ID, map[string]interface{}{
		"status": "accepted",
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Requester cannot finalize before the owner confirms.
	w = suite.request("PUT", "/trades/"+tradeID+"/complete", suite.alice.ID, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	response := suite.decode(w)
	errObj := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "AWAITING_COUNTERPARTY", errObj["code"])
}

func (suite *TradeHandlerTestSuite) TestCounterOverHTTP() {
	counterBook := suite.createBook(suite.bob.ID, "Anathem")
	tradeID := suite.initiateTrade()

	w := suite.request("PUT", "/trades/"+tradeID, suite.bob.ID, map[string]interface{}{
		"status":           "countered",
		"proposed_book_id": counterBook.ID,
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request("PUT", "/trades/"+tradeID+"/counter", suite.alice.ID, map[string]interface{}{
		"accept": true,
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	trade := response["data"].(map[string]interface{})["trade"].(map[string]interface{})
	assert.Equal(suite.T(), "accepted", trade["status"])
}

func (suite *TradeHandlerTestSuite) TestCancelTrade() {
	tradeID := suite.initiateTrade()

	w := suite.request("DELETE", "/trades/"+tradeID, suite.alice.ID, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	trade := response["data"].(map[string]interface{})["trade"].(map[string]interface{})
	assert.Equal(suite.T(), "cancelled", trade["status"])
}

func (suite *TradeHandlerTestSuite) TestGetMyTrades() {
	suite.initiateTrade()

	w := suite.request("GET", "/trades", suite.bob.ID, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	trades := response["data"].(map[string]interface{})["trades"].([]interface{})
	assert.Len(suite.T(), trades, 1)
}

func TestTradeHandlerSuite(t *testing.T) {
	suite.Run(t, new(TradeHandlerTestSuite))
}
