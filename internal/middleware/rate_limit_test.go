// internal/middleware/rate_limit_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/bookswap/bookswap-api/internal/config"
)

func limiterRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", handler, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hit(r *gin.Engine, ip string) int {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/login", nil)
	req.RemoteAddr = ip + ":51234"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAuthLimiterBlocksAfterConfiguredBurst(t *testing.T) {
	limits := NewRateLimiters(config.RateLimitConfig{
		GeneralPerSecond: 100,
		GeneralBurst:     100,
		AuthPerMinute:    1,
		AuthBurst:        2,
		UploadPerMinute:  1,
		UploadBurst:      1,
	})
	r := limiterRouter(limits.Auth())

	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.7"))
	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.7"))
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "10.0.0.7"))
}

func TestLimiterTracksClientsIndependently(t *testing.T) {
	limits := NewRateLimiters(config.RateLimitConfig{
		GeneralPerSecond: 100,
		GeneralBurst:     100,
		AuthPerMinute:    1,
		AuthBurst:        1,
		UploadPerMinute:  1,
		UploadBurst:      1,
	})
	r := limiterRouter(limits.Upload())

	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.7"))
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "10.0.0.7"))

	// A second client gets its own bucket
	assert.Equal(t, http.StatusOK, hit(r, "10.0.0.8"))
}
