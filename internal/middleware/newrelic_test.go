package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewRelicErrorMiddleware_PassesThroughWithoutTransaction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(NewRelicErrorMiddleware())
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	for _, path := range []string{"/boom", "/ok"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)

		if path == "/ok" && w.Code != http.StatusOK {
			t.Errorf("expected 200 for %s, got %d", path, w.Code)
		}
		if path == "/boom" && w.Code != http.StatusInternalServerError {
			t.Errorf("expected 500 for %s, got %d", path, w.Code)
		}
	}
}
