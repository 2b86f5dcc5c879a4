package http

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterConfig(t *testing.T) {
	tests := []struct {
		name              string
		requestsPerSecond float64
		allowed           int
	}{
		{"fractional rate still admits one request", 0.5, 1},
		{"fractional rate rounds the burst up", 2.5, 3},
		{"whole rate", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			e := echo.New()
			e.Use(middleware.RateLimiterWithConfig(RateLimiterConfig(tt.requestsPerSecond)))
			e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
			headers := actorHeaders("CUSTOMER")

			// When
			codes := make([]int, 0, tt.allowed+1)
			for range tt.allowed + 1 {
				codes = append(codes, serve(e, http.MethodGet, "/ping", "", headers).Code)
			}

			// Then
			for i := range tt.allowed {
				assert.Equal(t, http.StatusOK, codes[i], "request %d", i+1)
			}
			assert.Equal(t, http.StatusTooManyRequests, codes[tt.allowed])
		})
	}
}
